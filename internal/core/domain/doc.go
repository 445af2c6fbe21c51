// Package domain defines the core domain models for endpoint
// authentication.
//
// Domain models are pure value objects without IO dependencies or
// framework coupling. This package contains:
//
//   - EndpointIdentity: the (domain, identifier) pair naming a caller
//   - AuthenticationToken: the versioned, identity-bound credential
//   - TokenPolicy / ValidationResult: policy configuration and outcomes
//   - Wire codec: protobuf encoding of the token message
//   - Errors: coded domain errors
//
// Values are treated as immutable once constructed. Byte slices handed
// to constructors are copied.
package domain
