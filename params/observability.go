package params

import (
	"context"
	"time"
)

// Logger interface for recomputation logging, sink failures, warnings, and
// error reporting. This interface follows a dependency-free pattern, allowing
// users to integrate with any logging backend (log/slog, OpenTelemetry
// bridges, test spies) by implementing it. Components in this module accept
// a Logger through a WithLogger option and stay silent without one.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting performance and operational
// metrics from parameter consumers. This interface follows the same
// dependency-free pattern as Logger, allowing users to integrate with any
// metrics backend by implementing it.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware
// methods for trace correlation. The components in this package are
// synchronous and context-free and consume the base interface; the contextual
// variants serve callers that carry a context of their own and want
// correlated measurements from the same collector.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// ContextualLogger interface for context-aware logging with automatic trace
// correlation. This interface follows the same dependency-free pattern as
// Logger and MetricsCollector, allowing users to integrate with any logging
// backend that supports context-based correlation.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}
