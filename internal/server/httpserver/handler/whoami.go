package handler

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
	"github.com/yndnr/endpointauth-go/internal/server/rpcauth"
)

// Anonymous is returned by WhoAmI for calls without a token.
const Anonymous = "anonymous"

// HeaderIssuedAt reports the validated token's issue time (RFC 3339).
const HeaderIssuedAt = "X-Token-Issued-At"

// WhoAmI echoes the caller identity established by the token
// interceptor. Unverified identities carry a "(not validated)" suffix.
func (h *Handler) WhoAmI(ctx context.Context, _ *connect.Request[emptypb.Empty]) (*connect.Response[wrapperspb.StringValue], error) {
	caller, ok := rpcauth.FromContext(ctx)
	if !ok {
		return connect.NewResponse(wrapperspb.String(Anonymous)), nil
	}

	if caller.Result != domain.Valid {
		return connect.NewResponse(wrapperspb.String(caller.Identity.String() + " (not validated)")), nil
	}

	resp := connect.NewResponse(wrapperspb.String(caller.Identity.String()))
	resp.Header().Set(HeaderIssuedAt, caller.IssuedAt.UTC().Format(time.RFC3339))
	return resp, nil
}
