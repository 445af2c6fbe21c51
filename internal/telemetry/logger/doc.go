// Package logger provides structured logging on top of log/slog.
//
//   - logger.go: handler selection, global level, default logger
//   - context.go: context-carried logger and request IDs
//   - redact.go: masking of credential-bearing attributes
//
// Token envelopes, derived keys and identifiers that act as key
// material never reach log output in clear text.
package logger
