package rpcauth

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
)

// Generator produces token envelopes.
type Generator interface {
	GenerateToken(identity domain.EndpointIdentity) ([]byte, error)
}

// ClientInterceptor stamps every outgoing Connect call with a freshly
// generated token for a fixed identity.
type ClientInterceptor struct {
	generator Generator
	identity  domain.EndpointIdentity
}

// NewClientInterceptor creates a client interceptor presenting identity.
func NewClientInterceptor(generator Generator, identity domain.EndpointIdentity) *ClientInterceptor {
	return &ClientInterceptor{generator: generator, identity: identity}
}

// WrapUnary implements connect.Interceptor.
func (i *ClientInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if !req.Spec().IsClient {
			return next(ctx, req)
		}
		if err := i.stamp(req.Header()); err != nil {
			return nil, err
		}
		return next(ctx, req)
	}
}

// WrapStreamingClient implements connect.Interceptor.
func (i *ClientInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return func(ctx context.Context, spec connect.Spec) connect.StreamingClientConn {
		conn := next(ctx, spec)
		if err := i.stamp(conn.RequestHeader()); err != nil {
			return &failedClientConn{StreamingClientConn: conn, err: err}
		}
		return conn
	}
}

// WrapStreamingHandler implements connect.Interceptor.
func (i *ClientInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return next // No-op for client-side
}

func (i *ClientInterceptor) stamp(h http.Header) error {
	envelope, err := i.generator.GenerateToken(i.identity)
	if err != nil {
		return connect.NewError(connect.CodeUnauthenticated, err)
	}
	h.Set(MetadataKey, connect.EncodeBinaryHeader(envelope))
	return nil
}

// failedClientConn reports a token generation failure on first use.
type failedClientConn struct {
	connect.StreamingClientConn
	err error
}

func (c *failedClientConn) Send(any) error {
	return c.err
}

func (c *failedClientConn) Receive(any) error {
	return c.err
}
