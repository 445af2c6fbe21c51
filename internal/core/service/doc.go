// Package service implements the endpoint token protocol.
//
// Domain services contain the protocol logic and orchestrate the domain
// models, keyring and framing codec. They define small interfaces for
// their collaborators so transports and tests can inject them.
//
// This package contains:
//
//   - TokenProvider / ProviderV1: version-specific token generation and
//     clock-tolerant validation
//   - Providers: the registry that dispatches on a token's version
//   - AuthService: the policy state machine over framed envelopes
//
// Hard failures (malformed envelopes, unknown versions, oversize tokens)
// are returned as errors. Stale or forged tokens are a successful
// validation whose result is Invalid.
package service
