// Package rpcauth attaches and checks endpoint authentication tokens on
// Connect RPCs.
//
// The token travels in the binary metadata slot AuthenticationToken-Bin.
// ServerInterceptor validates it through service.AuthService and
// rejects calls with CodeUnauthenticated when the outcome is Invalid or
// validation fails outright. The authenticated identity is stored in
// the handler context; see FromContext and IdentityFromContext.
//
// ClientInterceptor generates a fresh envelope for every call.
//
// Guard holds the transport-neutral decision logic and is shared with
// the gRPC adapter in internal/server/grpcauth.
package rpcauth
