// Package httpserver provides the graceful HTTP server used by the
// backend binary: signal handling, bounded shutdown, stop hooks for
// resource teardown (connection registry, caches) and probe handlers.
package httpserver
