package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Attribute keys whose values are credentials or key material.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"envelope",
	"key",
	"credential",
}

const redactedValue = "***REDACTED***"

// redactSensitive masks string and byte-slice values under sensitive keys.
// Groups are walked recursively.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}

	case slog.KindString:
		if IsSensitiveKey(a.Key) && a.Value.String() != "" {
			return slog.String(a.Key, redactedValue)
		}

	case slog.KindAny:
		if b, ok := a.Value.Any().([]byte); ok && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, RedactBytes(b))
		}
	}

	return a
}

// RedactBytes describes b without revealing it.
func RedactBytes(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return fmt.Sprintf("%s (%d bytes)", redactedValue, len(b))
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
