// Package config defines the endpointauth server configuration.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: default values and the key list for env resolution
//   - verify.go: validation
//   - sanitize.go: masking for logs and `config show`
//   - load.go: layering defaults, file, env and flags via confloader
package config
