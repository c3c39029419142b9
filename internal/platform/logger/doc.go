// Package logger provides structured JSON logging over log/slog, plus the
// context plumbing used to carry a request-scoped logger (with trace ID)
// from middleware down into handlers and stores.
package logger
