// Package logger sets up the process-wide slog JSON logger and passes
// request-scoped loggers, tagged with a trace ID, through context.Context.
package logger
