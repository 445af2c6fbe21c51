// Package confloader loads layered configuration with koanf.
//
// Sources, lowest priority first:
//
//  1. Defaults (LoadMap, usually from the config package)
//  2. YAML file
//  3. Environment variables (ENDPOINTAUTH_ prefix)
//  4. Flags (LoadMap after Load)
//
// Environment names are matched against known keys, so
// ENDPOINTAUTH_SERVER_HTTP_TLS_CERT_FILE sets server.http.tls_cert_file.
//
// Watcher reports writes to the configuration file via fsnotify.
package confloader
