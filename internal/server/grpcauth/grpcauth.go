// Package grpcauth carries endpoint authentication tokens over gRPC.
//
// The server side mirrors rpcauth.ServerInterceptor using gRPC
// interceptors; the client side is a credentials.PerRPCCredentials that
// generates a fresh token for every call.
package grpcauth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
	"github.com/yndnr/endpointauth-go/internal/server/rpcauth"
)

// MetadataKey is rpcauth.MetadataKey as gRPC stores it.
var MetadataKey = strings.ToLower(rpcauth.MetadataKey)

// Interceptor authenticates incoming gRPC calls.
type Interceptor struct {
	guard *rpcauth.Guard
}

// NewInterceptor creates an interceptor backed by guard.
func NewInterceptor(guard *rpcauth.Guard) *Interceptor {
	return &Interceptor{guard: guard}
}

// UnaryServerInterceptor returns a gRPC unary server interceptor.
func (i *Interceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		ctx, err := i.authenticate(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// StreamServerInterceptor returns a gRPC stream server interceptor.
func (i *Interceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		stream grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		ctx, err := i.authenticate(stream.Context(), info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &authenticatedStream{ServerStream: stream, ctx: ctx})
	}
}

func (i *Interceptor) authenticate(ctx context.Context, method string) (context.Context, error) {
	addr := ""
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		addr = p.Addr.String()
	}

	envelope, err := tokenFromMetadata(ctx)
	if err != nil {
		return ctx, toStatus(i.guard.Reject(err, method, addr))
	}

	ctx, err = i.guard.Check(ctx, envelope, method, addr)
	if err != nil {
		return ctx, toStatus(err)
	}
	return ctx, nil
}

// tokenFromMetadata returns the raw envelope; gRPC has already decoded
// the -bin value.
func tokenFromMetadata(ctx context.Context) ([]byte, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, nil
	}
	values := md.Get(MetadataKey)
	switch len(values) {
	case 0:
		return nil, nil
	case 1:
		return []byte(values[0]), nil
	default:
		return nil, domain.ErrMalformedEnvelope.WithDetails("multiple " + MetadataKey + " entries")
	}
}

func toStatus(err error) error {
	if errors.Is(err, rpcauth.ErrRateLimited) {
		return status.Error(codes.ResourceExhausted, err.Error())
	}
	return status.Error(codes.Unauthenticated, err.Error())
}

// authenticatedStream overrides the stream context with the
// authenticated one.
type authenticatedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authenticatedStream) Context() context.Context {
	return s.ctx
}
