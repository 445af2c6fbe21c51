package grpcauth

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
	"github.com/yndnr/endpointauth-go/internal/server/rpcauth"
)

// TokenCredentials attaches a freshly generated token to every call.
type TokenCredentials struct {
	generator  rpcauth.Generator
	identity   domain.EndpointIdentity
	requireTLS bool
}

var _ credentials.PerRPCCredentials = (*TokenCredentials)(nil)

// NewTokenCredentials creates per-RPC credentials presenting identity.
// When requireTLS is set gRPC refuses to send them over plaintext
// connections.
func NewTokenCredentials(generator rpcauth.Generator, identity domain.EndpointIdentity, requireTLS bool) *TokenCredentials {
	return &TokenCredentials{
		generator:  generator,
		identity:   identity,
		requireTLS: requireTLS,
	}
}

// GetRequestMetadata implements credentials.PerRPCCredentials.
func (c *TokenCredentials) GetRequestMetadata(ctx context.Context, uri ...string) (map[string]string, error) {
	envelope, err := c.generator.GenerateToken(c.identity)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}
	return map[string]string{MetadataKey: string(envelope)}, nil
}

// RequireTransportSecurity implements credentials.PerRPCCredentials.
func (c *TokenCredentials) RequireTransportSecurity() bool {
	return c.requireTLS
}
