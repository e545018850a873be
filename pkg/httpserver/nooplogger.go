package httpserver

import "log/slog"

func newNoopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
