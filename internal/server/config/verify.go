package config

import (
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyAuth(&cfg.Auth); err != nil {
		return err
	}
	if err := verifyClient(&cfg.Client); err != nil {
		return err
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	return verifyMetrics(&cfg.Metrics)
}

func invalid(format string, args ...any) error {
	return domain.ErrInvalidArgument.WithDetails(fmt.Sprintf(format, args...))
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return invalid("server.http.addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.HTTP.Addr); err != nil {
		return invalid("server.http.addr %q: %v", cfg.HTTP.Addr, err)
	}

	if (cfg.HTTP.TLSCertFile == "") != (cfg.HTTP.TLSKeyFile == "") {
		return invalid("server.http.tls_cert_file and server.http.tls_key_file must be set together")
	}
	for _, f := range []string{cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			return invalid("tls file %s: %v", f, err)
		}
	}

	if cfg.GRPC.Addr != "" {
		if _, _, err := net.SplitHostPort(cfg.GRPC.Addr); err != nil {
			return invalid("server.grpc.addr %q: %v", cfg.GRPC.Addr, err)
		}
		if cfg.GRPC.Addr == cfg.HTTP.Addr {
			return invalid("server.grpc.addr must differ from server.http.addr")
		}
	}

	if cfg.HTTP.ShutdownTimeout < 0 {
		return invalid("server.http.shutdown_timeout must not be negative")
	}
	return nil
}

func verifyAuth(cfg *AuthSection) error {
	if _, err := domain.ParseTokenPolicy(cfg.Policy); err != nil {
		return err
	}
	if cfg.Tolerance < 0 {
		return invalid("auth.tolerance must not be negative, got %s", cfg.Tolerance)
	}
	if cfg.RateLimit < 0 {
		return invalid("auth.rate_limit must not be negative, got %d", cfg.RateLimit)
	}
	return nil
}

func verifyClient(cfg *ClientSection) error {
	if cfg.Identifier == "" {
		return nil
	}
	if _, err := hex.DecodeString(cfg.Identifier); err != nil {
		return invalid("client.identifier must be hex: %v", err)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}

	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return invalid("log.format %q is not one of json, text", cfg.Format)
	}
	return nil
}

func verifyMetrics(cfg *MetricsSection) error {
	if cfg.Enabled && !strings.HasPrefix(cfg.Path, "/") {
		return invalid("metrics.path %q must start with /", cfg.Path)
	}
	return nil
}
