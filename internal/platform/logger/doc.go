// Package logger provides structured logging functionality for the application.
//
// It builds a log/slog JSON logger with a configurable level and carries
// request-scoped loggers (annotated with a trace ID) through context.Context.
package logger
