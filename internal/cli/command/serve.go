package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/yndnr/endpointauth-go/internal/core/keyring"
	"github.com/yndnr/endpointauth-go/internal/core/service"
	"github.com/yndnr/endpointauth-go/internal/infra/buildinfo"
	"github.com/yndnr/endpointauth-go/internal/infra/confloader"
	"github.com/yndnr/endpointauth-go/internal/infra/shutdown"
	"github.com/yndnr/endpointauth-go/internal/server/config"
	"github.com/yndnr/endpointauth-go/internal/server/grpcauth"
	"github.com/yndnr/endpointauth-go/internal/server/httpserver"
	"github.com/yndnr/endpointauth-go/internal/server/rpcauth"
	"github.com/yndnr/endpointauth-go/internal/telemetry/logger"
	"github.com/yndnr/endpointauth-go/internal/telemetry/metric"
)

// limiterPruneInterval is how often idle peer limiters are dropped.
const limiterPruneInterval = time.Minute

// ServeCommand returns the serve command.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the demo server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "HTTP listen address (default: server.http.addr)",
			},
			&cli.StringFlag{
				Name:  "grpc-addr",
				Usage: "gRPC listen address, empty to disable (default: server.grpc.addr)",
			},
			&cli.StringFlag{
				Name:  "policy",
				Usage: "Token policy: none, optional, required (default: auth.policy)",
			},
		},
		Action: serve,
	}
}

func serveOverrides(c *cli.Context) map[string]any {
	overrides := map[string]any{}
	if c.IsSet("addr") {
		overrides["server.http.addr"] = c.String("addr")
	}
	if c.IsSet("grpc-addr") {
		overrides["server.grpc.addr"] = c.String("grpc-addr")
	}
	if c.IsSet("policy") {
		overrides["auth.policy"] = c.String("policy")
	}
	return overrides
}

// serverStack is the assembled demo server.
type serverStack struct {
	cfg     *config.ServerConfig
	log     *slog.Logger
	keys    *keyring.Keyring
	auth    *service.AuthService
	limiter *rpcauth.PeerLimiter
	http    *httpserver.Server
	grpc    *grpc.Server
}

// newServerStack wires the auth service, metrics and transports for cfg.
func newServerStack(cfg *config.ServerConfig, log *slog.Logger) (*serverStack, error) {
	keys := keyring.New()

	var (
		metrics        *metric.AuthMetrics
		recorder       service.Recorder
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		registry := metric.NewRegistry()
		metrics = metric.NewAuthMetrics().RegisterMetrics(registry)
		registry.MustRegister(metric.NewKeyringCollector(keys))
		recorder = metrics
		metricsHandler = metric.Handler(registry)
	}

	auth, err := newAuthService(cfg, keys, recorder)
	if err != nil {
		return nil, err
	}
	limiter := rpcauth.NewPeerLimiter(cfg.Auth.RateLimit)

	guard := func(transport string) *rpcauth.Guard {
		return rpcauth.NewGuard(auth, rpcauth.GuardConfig{
			Transport: transport,
			Logger:    log,
			Metrics:   metrics,
			Limiter:   limiter,
		})
	}

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Guard:           guard("connect"),
		Policy:          auth.Policy(),
		Logger:          log,
		MetricsHandler:  metricsHandler,
		MetricsPath:     cfg.Metrics.Path,
		EnableAccessLog: true,
	})

	stack := &serverStack{
		cfg:     cfg,
		log:     log,
		keys:    keys,
		auth:    auth,
		limiter: limiter,
		http:    httpserver.New(cfg.Server.HTTP.Addr, router),
	}

	if cfg.Server.GRPC.Addr != "" {
		interceptor := grpcauth.NewInterceptor(guard("grpc"))
		stack.grpc = grpc.NewServer(
			grpc.UnaryInterceptor(interceptor.UnaryServerInterceptor()),
			grpc.StreamInterceptor(interceptor.StreamServerInterceptor()),
		)
		healthpb.RegisterHealthServer(stack.grpc, health.NewServer())
	}

	return stack, nil
}

// start binds the listeners and serves in the background. Serve errors
// are sent to errCh.
func (s *serverStack) start(errCh chan<- error) (net.Addr, error) {
	httpLis, err := net.Listen("tcp", s.cfg.Server.HTTP.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen http: %w", err)
	}

	var grpcLis net.Listener
	if s.grpc != nil {
		grpcLis, err = net.Listen("tcp", s.cfg.Server.GRPC.Addr)
		if err != nil {
			httpLis.Close()
			return nil, fmt.Errorf("listen grpc: %w", err)
		}
	}

	go func() {
		s.log.Info("HTTP server listening", "addr", httpLis.Addr().String())

		var err error
		if s.cfg.Server.HTTP.TLSCertFile != "" {
			err = s.http.ServeTLS(httpLis, s.cfg.Server.HTTP.TLSCertFile, s.cfg.Server.HTTP.TLSKeyFile)
		} else {
			err = s.http.Serve(httpLis)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if grpcLis != nil {
		go func() {
			s.log.Info("gRPC server listening", "addr", grpcLis.Addr().String())
			if err := s.grpc.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	return httpLis.Addr(), nil
}

// stop shuts both transports down within ctx.
func (s *serverStack) stop(ctx context.Context) error {
	if s.grpc != nil {
		stopped := make(chan struct{})
		go func() {
			s.grpc.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-ctx.Done():
			s.grpc.Stop()
		}
	}
	return s.http.Shutdown(ctx)
}

// pruneLimiter drops idle peer limiters until ctx is done.
func (s *serverStack) pruneLimiter(ctx context.Context) {
	if s.limiter == nil {
		return
	}
	ticker := time.NewTicker(limiterPruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			tracked := s.limiter.Prune()
			s.log.Debug("pruned peer limiters", "tracked", tracked)
		case <-ctx.Done():
			return
		}
	}
}

// watchConfig reloads the log level when the config file changes.
func watchConfig(path string, overrides map[string]any, log *slog.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil, err
	}

	w.OnChange(func(changed string) {
		cfg, err := config.Load(changed, overrides)
		if err != nil {
			log.Warn("ignoring invalid configuration change", "file", changed, "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			logger.SetLevel(cfg.Log.Level)
			log.Info("log level changed", "level", cfg.Log.Level)
		}
	})
	w.StartAsync()
	return w, nil
}

func serve(c *cli.Context) error {
	overrides := serveOverrides(c)
	cfg, err := loadConfig(c, overrides)
	if err != nil {
		return err
	}

	appLog, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(appLog)
	log := appLog.Slog()

	stack, err := newServerStack(cfg, log)
	if err != nil {
		return err
	}

	log.Info("starting endpointauth server",
		"version", buildinfo.Get().Version,
		"config", c.String("config"),
		"policy", stack.auth.Policy().String(),
		"tolerance", cfg.Auth.Tolerance.String())

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	errCh := make(chan error, 2)
	if _, err := stack.start(errCh); err != nil {
		return err
	}

	handler := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout)

	// Hooks run in reverse order of registration.
	handler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down servers")
		return stack.stop(ctx)
	})

	go stack.pruneLimiter(ctx)

	if path := c.String("config"); path != "" {
		watcher, err := watchConfig(path, overrides, log)
		if err != nil {
			log.Warn("configuration watch disabled", "error", err)
		} else {
			handler.OnShutdown(func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	failed := make(chan error, 1)
	go func() {
		select {
		case err := <-errCh:
			log.Error("server error", "error", err)
			failed <- err
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	waitErr := handler.Wait(ctx)
	cancel()

	var serveErr error
	select {
	case serveErr = <-failed:
	default:
	}

	if err := errors.Join(serveErr, waitErr); err != nil {
		return err
	}
	log.Info("server stopped gracefully")
	return nil
}
