// Package logger provides structured logging functionality for the application.
//
// It builds on the standard library log/slog package for JSON output and can
// additionally forward error records to Sentry. Loggers travel through
// request contexts so lower layers (stores, transaction scopes) log with the
// request's trace ID attached.
package logger
