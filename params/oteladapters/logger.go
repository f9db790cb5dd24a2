// Package oteladapters provides OpenTelemetry adapters for the params
// observability interfaces. These adapters enable plug-and-play observability
// for users who do not want to implement the interfaces themselves.
package oteladapters

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"

	"github.com/numkit/constrained-parameters-go/params"
)

// SlogBridgeLogger implements params.Logger and params.ContextualLogger on
// top of log/slog. With the OpenTelemetry slog bridge as its handler, log
// records flow into the global OpenTelemetry LoggerProvider; with any other
// handler, it is a plain slog adapter.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a logger backed by the OpenTelemetry slog
// bridge, using the global OpenTelemetry LoggerProvider.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogBridgeLoggerWithHandler creates a logger that uses the provided
// slog.Handler as-is, without OpenTelemetry integration. Useful for wiring
// the params.Logger contract to handlers like tint or slog.JSONHandler.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

// Debug logs a debug message.
func (l *SlogBridgeLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info message.
func (l *SlogBridgeLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *SlogBridgeLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message.
func (l *SlogBridgeLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// DebugContext logs a debug message with context.
func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

// InfoContext logs an info message with context.
func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

// WarnContext logs a warning message with context.
func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

// ErrorContext logs an error message with context.
func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

// Ensure SlogBridgeLogger implements params.Logger.
var _ params.Logger = (*SlogBridgeLogger)(nil)

// Ensure SlogBridgeLogger implements params.ContextualLogger.
var _ params.ContextualLogger = (*SlogBridgeLogger)(nil)

// OTelLogger implements params.Logger and params.ContextualLogger using the
// OpenTelemetry logging API directly. This provides more control over log
// record creation but requires manual setup of the logger. The context-free
// methods emit with a background context; the ContextualLogger methods pass
// the caller's context through for trace correlation.
type OTelLogger struct {
	logger log.Logger
}

// NewOTelLogger creates a logger on top of an OpenTelemetry log.Logger.
func NewOTelLogger(logger log.Logger) *OTelLogger {
	return &OTelLogger{logger: logger}
}

// Debug logs a debug message using the OpenTelemetry log API.
func (l *OTelLogger) Debug(msg string, args ...any) {
	l.emit(context.Background(), log.SeverityDebug, msg, args...)
}

// Info logs an info message using the OpenTelemetry log API.
func (l *OTelLogger) Info(msg string, args ...any) {
	l.emit(context.Background(), log.SeverityInfo, msg, args...)
}

// Warn logs a warning message using the OpenTelemetry log API.
func (l *OTelLogger) Warn(msg string, args ...any) {
	l.emit(context.Background(), log.SeverityWarn, msg, args...)
}

// Error logs an error message using the OpenTelemetry log API.
func (l *OTelLogger) Error(msg string, args ...any) {
	l.emit(context.Background(), log.SeverityError, msg, args...)
}

// DebugContext logs a debug message with context using the OpenTelemetry log API.
func (l *OTelLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityDebug, msg, args...)
}

// InfoContext logs an info message with context using the OpenTelemetry log API.
func (l *OTelLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityInfo, msg, args...)
}

// WarnContext logs a warning message with context using the OpenTelemetry log API.
func (l *OTelLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityWarn, msg, args...)
}

// ErrorContext logs an error message with context using the OpenTelemetry log API.
func (l *OTelLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityError, msg, args...)
}

// emit creates and emits an OpenTelemetry log record with the specified severity.
func (l *OTelLogger) emit(ctx context.Context, severity log.Severity, msg string, args ...any) {
	record := log.Record{}
	record.SetSeverity(severity)
	record.SetBody(log.StringValue(msg))

	// Args come in key-value pairs like slog
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			if key, ok := args[i].(string); ok {
				record.AddAttributes(log.String(key, stringValue(args[i+1])))
			}
		}
	}

	l.logger.Emit(ctx, record)
}

// stringValue converts any value to string for OpenTelemetry attributes.
func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return slog.AnyValue(v).String()
}

// Ensure OTelLogger implements params.Logger.
var _ params.Logger = (*OTelLogger)(nil)

// Ensure OTelLogger implements params.ContextualLogger.
var _ params.ContextualLogger = (*OTelLogger)(nil)
