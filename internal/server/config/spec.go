package config

import "time"

// ServerConfig is the root configuration for endpointauth.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server" yaml:"server"`
	Auth    AuthSection    `koanf:"auth" yaml:"auth"`
	Client  ClientSection  `koanf:"client" yaml:"client"`
	Log     LogSection     `koanf:"log" yaml:"log"`
	Metrics MetricsSection `koanf:"metrics" yaml:"metrics"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http" yaml:"http"`
	GRPC GRPCConfig `koanf:"grpc" yaml:"grpc"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string        `koanf:"addr" yaml:"addr"`
	TLSCertFile     string        `koanf:"tls_cert_file" yaml:"tls_cert_file"`
	TLSKeyFile      string        `koanf:"tls_key_file" yaml:"tls_key_file"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// GRPCConfig configures the optional gRPC listener serving the health
// service behind the token interceptors.
type GRPCConfig struct {
	// Addr is empty when gRPC is disabled.
	Addr string `koanf:"addr" yaml:"addr"`
}

// AuthSection configures token validation.
type AuthSection struct {
	// Policy is none, optional or required.
	Policy string `koanf:"policy" yaml:"policy"`

	// Tolerance is the accepted clock skew between issuer and verifier.
	Tolerance time.Duration `koanf:"tolerance" yaml:"tolerance"`

	// RateLimit caps rejected calls per second per peer; 0 disables it.
	RateLimit int `koanf:"rate_limit" yaml:"rate_limit"`
}

// ClientSection holds the identity a client presents.
type ClientSection struct {
	ServerURL string `koanf:"server_url" yaml:"server_url"`
	Domain    string `koanf:"domain" yaml:"domain"`

	// Identifier is the hex-encoded identifier. It is key material.
	Identifier string `koanf:"identifier" yaml:"identifier"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// MetricsSection configures Prometheus exposition.
type MetricsSection struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Path    string `koanf:"path" yaml:"path"`
}
