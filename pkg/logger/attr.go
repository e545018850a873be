package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// TrustKey records the tenant key under the key "trust_key".
func TrustKey(key string) slog.Attr {
	return slog.String("trust_key", key)
}

// Scope records the resolved request scope under the key "scope".
func Scope(scope string) slog.Attr {
	return slog.String("scope", scope)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
