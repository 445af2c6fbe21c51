package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:5080"
	DefaultShutdownTimeout = 10 * time.Second

	DefaultPolicy    = "optional"
	DefaultTolerance = 30 * time.Second

	DefaultServerURL = "http://127.0.0.1:5080"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsPath = "/metrics"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:            DefaultHTTPAddr,
				ShutdownTimeout: DefaultShutdownTimeout,
			},
		},
		Auth: AuthSection{
			Policy:    DefaultPolicy,
			Tolerance: DefaultTolerance,
		},
		Client: ClientSection{
			ServerURL: DefaultServerURL,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsSection{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
	}
}

// DefaultMap returns Default as dotted koanf keys.
func DefaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"server.http.addr":             d.Server.HTTP.Addr,
		"server.http.tls_cert_file":    d.Server.HTTP.TLSCertFile,
		"server.http.tls_key_file":     d.Server.HTTP.TLSKeyFile,
		"server.http.shutdown_timeout": d.Server.HTTP.ShutdownTimeout.String(),
		"server.grpc.addr":             d.Server.GRPC.Addr,
		"auth.policy":                  d.Auth.Policy,
		"auth.tolerance":               d.Auth.Tolerance.String(),
		"auth.rate_limit":              d.Auth.RateLimit,
		"client.server_url":            d.Client.ServerURL,
		"client.domain":                d.Client.Domain,
		"client.identifier":            d.Client.Identifier,
		"log.level":                    d.Log.Level,
		"log.format":                   d.Log.Format,
		"metrics.enabled":              d.Metrics.Enabled,
		"metrics.path":                 d.Metrics.Path,
	}
}

// Keys returns every configuration key.
func Keys() []string {
	m := DefaultMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
