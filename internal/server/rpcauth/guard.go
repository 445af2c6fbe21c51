package rpcauth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
	"github.com/yndnr/endpointauth-go/internal/core/service"
	"github.com/yndnr/endpointauth-go/internal/telemetry/metric"
)

// MetadataKey is the binary metadata slot carrying the token envelope.
// gRPC lower-cases it on the wire.
const MetadataKey = "AuthenticationToken-Bin"

// RejectPrefix starts every rejection message.
const RejectPrefix = "rejected by authentication service: "

// Validator validates token envelopes.
type Validator interface {
	ValidateToken(envelope []byte) (*service.ValidationOutcome, error)
}

// ErrRateLimited is returned by Guard.Check for throttled peers.
var ErrRateLimited = errors.New("too many rejected authentication attempts")

// Rejection is returned by Guard.Check when a call must be refused as
// unauthenticated.
type Rejection struct {
	Cause error
}

// Error returns the client-facing message: the cause chain joined by
// " => ".
func (r *Rejection) Error() string {
	return RejectPrefix + strings.Join(domain.ErrorChain(r.Cause), " => ")
}

// Unwrap returns the cause.
func (r *Rejection) Unwrap() error {
	return r.Cause
}

// GuardConfig configures a Guard.
type GuardConfig struct {
	// Transport labels logs and metrics ("connect", "grpc").
	Transport string

	// Logger for auth events (default: slog.Default()).
	Logger *slog.Logger

	// Metrics records rejections (optional).
	Metrics *metric.AuthMetrics

	// Limiter throttles repeatedly rejected peers (optional).
	Limiter *PeerLimiter
}

// Guard decides whether a call may proceed.
type Guard struct {
	validator Validator
	transport string
	logger    *slog.Logger
	metrics   *metric.AuthMetrics
	limiter   *PeerLimiter
}

// NewGuard creates a Guard over validator.
func NewGuard(validator Validator, cfg GuardConfig) *Guard {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Transport == "" {
		cfg.Transport = "connect"
	}
	return &Guard{
		validator: validator,
		transport: cfg.Transport,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		limiter:   cfg.Limiter,
	}
}

// Check validates envelope for a call to procedure from peer. On
// success the returned context carries the Caller, if any. Refusals are
// ErrRateLimited or a *Rejection.
func (g *Guard) Check(ctx context.Context, envelope []byte, procedure, peer string) (context.Context, error) {
	if g.limiter.Limited(peer) {
		if g.metrics != nil {
			g.metrics.ObserveRateLimited(g.transport)
		}
		g.logger.Warn("rpc auth rate limited",
			"transport", g.transport,
			"method", procedure,
			"peer", peer)
		return ctx, ErrRateLimited
	}

	outcome, err := g.validator.ValidateToken(envelope)
	if err != nil {
		return ctx, g.Reject(err, procedure, peer)
	}

	switch outcome.Result {
	case domain.Valid:
		g.logger.Debug("rpc auth valid token",
			"transport", g.transport,
			"method", procedure,
			"identity", outcome.Identity.String(),
			"issued_at", outcome.IssuedAt)
		return WithCaller(ctx, Caller{
			Identity: *outcome.Identity,
			Result:   domain.Valid,
			IssuedAt: outcome.IssuedAt,
		}), nil

	case domain.NotValidated:
		if outcome.Identity == nil {
			return ctx, nil
		}
		g.logger.Warn("rpc auth token present but not validated",
			"transport", g.transport,
			"method", procedure,
			"identity", outcome.Identity.String())
		return WithCaller(ctx, Caller{
			Identity: *outcome.Identity,
			Result:   domain.NotValidated,
		}), nil

	default:
		cause := outcome.Cause
		if !domain.IsDomainError(cause, domain.ErrTokenRejected.Code) {
			rejected := domain.ErrTokenRejected
			if outcome.Identity != nil {
				rejected = rejected.WithDetails(outcome.Identity.String())
			}
			cause = rejected.WithCause(cause)
		}
		return ctx, g.Reject(cause, procedure, peer)
	}
}

// Reject refuses a call for cause, counting it against peer.
func (g *Guard) Reject(cause error, procedure, peer string) error {
	g.limiter.Reject(peer)
	if g.metrics != nil {
		g.metrics.ObserveRejection(g.transport, cause)
	}

	r := &Rejection{Cause: cause}
	g.logger.Warn("rpc auth rejected",
		"transport", g.transport,
		"method", procedure,
		"peer", peer,
		"error", r.Error())
	return r
}
