package rpcauth

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"

	"connectrpc.com/connect"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
)

// ServerInterceptor authenticates incoming Connect calls.
type ServerInterceptor struct {
	guard *Guard
}

// NewServerInterceptor creates a server interceptor backed by guard.
func NewServerInterceptor(guard *Guard) *ServerInterceptor {
	return &ServerInterceptor{guard: guard}
}

// WrapUnary implements connect.Interceptor.
func (i *ServerInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		envelope, err := tokenFromHeader(req.Header().Values(MetadataKey))
		if err != nil {
			return nil, toConnectError(i.guard.Reject(err, req.Spec().Procedure, req.Peer().Addr))
		}
		ctx, err = i.guard.Check(ctx, envelope, req.Spec().Procedure, req.Peer().Addr)
		if err != nil {
			return nil, toConnectError(err)
		}
		return next(ctx, req)
	}
}

// WrapStreamingClient implements connect.Interceptor.
func (i *ServerInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next // No-op for server-side
}

// WrapStreamingHandler implements connect.Interceptor.
func (i *ServerInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		envelope, err := tokenFromHeader(conn.RequestHeader().Values(MetadataKey))
		if err != nil {
			return toConnectError(i.guard.Reject(err, conn.Spec().Procedure, conn.Peer().Addr))
		}
		ctx, err = i.guard.Check(ctx, envelope, conn.Spec().Procedure, conn.Peer().Addr)
		if err != nil {
			return toConnectError(err)
		}
		return next(ctx, conn)
	}
}

// tokenFromHeader decodes the binary header. An absent header yields a
// nil envelope.
func tokenFromHeader(values []string) ([]byte, error) {
	switch len(values) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, domain.ErrMalformedEnvelope.WithDetails("multiple " + MetadataKey + " headers")
	}
	envelope, err := connect.DecodeBinaryHeader(values[0])
	if err != nil {
		return nil, domain.ErrMalformedEnvelope.WithDetails("undecodable "+MetadataKey+" header").WithCause(err)
	}
	return envelope, nil
}

func toConnectError(err error) error {
	if errors.Is(err, ErrRateLimited) {
		return connect.NewError(connect.CodeResourceExhausted, err)
	}
	return connect.NewError(connect.CodeUnauthenticated, errors.New(err.Error()))
}

// RecoveryInterceptor converts handler panics into CodeInternal errors.
type RecoveryInterceptor struct {
	logger *slog.Logger
}

// NewRecoveryInterceptor creates a recovery interceptor.
func NewRecoveryInterceptor(logger *slog.Logger) *RecoveryInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecoveryInterceptor{logger: logger}
}

// WrapUnary implements connect.Interceptor.
func (i *RecoveryInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (resp connect.AnyResponse, err error) {
		defer func() {
			if r := recover(); r != nil {
				i.logger.Error("rpc panic recovered",
					"method", req.Spec().Procedure,
					"panic", r,
					"stack", string(debug.Stack()))
				err = connect.NewError(connect.CodeInternal, errors.New("internal error"))
			}
		}()
		return next(ctx, req)
	}
}

// WrapStreamingClient implements connect.Interceptor.
func (i *RecoveryInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

// WrapStreamingHandler implements connect.Interceptor.
func (i *RecoveryInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) (err error) {
		defer func() {
			if r := recover(); r != nil {
				i.logger.Error("rpc panic recovered",
					"method", conn.Spec().Procedure,
					"panic", r,
					"stack", string(debug.Stack()))
				err = connect.NewError(connect.CodeInternal, errors.New("internal error"))
			}
		}()
		return next(ctx, conn)
	}
}
