package httpserver

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
	"github.com/yndnr/endpointauth-go/internal/server/httpserver/handler"
	"github.com/yndnr/endpointauth-go/internal/server/rpcauth"
)

// WhoAmIProcedure is the Connect procedure echoing the caller identity.
const WhoAmIProcedure = "/endpointauth.v1.AuthService/WhoAmI"

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Guard authenticates Connect calls.
	Guard *rpcauth.Guard

	// Policy is reported by the health endpoints.
	Policy domain.TokenPolicy

	// Logger for request logging.
	Logger *slog.Logger

	// MetricsHandler serves MetricsPath; nil disables the endpoint.
	MetricsHandler http.Handler
	MetricsPath    string

	// EnableAccessLog logs every request.
	EnableAccessLog bool
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	if cfg == nil {
		cfg = DefaultRouterConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	h := handler.New(cfg.Policy, cfg.Logger)

	interceptors := []connect.Interceptor{rpcauth.NewRecoveryInterceptor(cfg.Logger)}
	if cfg.Guard != nil {
		interceptors = append(interceptors, rpcauth.NewServerInterceptor(cfg.Guard))
	}

	mux := http.NewServeMux()

	// Health endpoints - no authentication required
	mux.Handle("GET /healthz", h)
	mux.Handle("GET /readyz", h)

	if cfg.MetricsHandler != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, cfg.MetricsHandler)
	}

	mux.Handle(WhoAmIProcedure, connect.NewUnaryHandler(
		WhoAmIProcedure,
		h.WhoAmI,
		connect.WithInterceptors(interceptors...),
	))

	// Order: RequestID -> Recover -> AccessLog -> mux
	middlewares := []Middleware{RequestID(), Recover(cfg.Logger)}
	if cfg.EnableAccessLog {
		middlewares = append(middlewares, AccessLog(cfg.Logger))
	}
	return Chain(mux, middlewares...)
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Policy:          domain.DefaultTokenPolicy,
		MetricsPath:     "/metrics",
		EnableAccessLog: true,
	}
}
