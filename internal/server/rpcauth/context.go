package rpcauth

import (
	"context"
	"time"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
)

// Caller describes the endpoint behind the current call.
type Caller struct {
	Identity domain.EndpointIdentity
	Result   domain.ValidationResult

	// IssuedAt is set when Result is Valid.
	IssuedAt time.Time
}

type callerKey struct{}

// WithCaller returns a context carrying c.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// FromContext returns the caller recorded by the server interceptor,
// including callers whose token was decoded but not validated.
func FromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}

// IdentityFromContext returns the caller identity only if its token
// was validated.
func IdentityFromContext(ctx context.Context) (domain.EndpointIdentity, bool) {
	c, ok := FromContext(ctx)
	if !ok || c.Result != domain.Valid {
		return domain.EndpointIdentity{}, false
	}
	return c.Identity, true
}
