// Package log provides the structured logging interface used by wineml.
//
// The interface mirrors log/slog so that the backend can be swapped without
// touching call sites. Two backends ship with the package: a JSON slog handler
// that expands cockroachdb/errors stack traces, and a zerolog console writer
// for humans.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("pipeline").With(
//	    log.ModelNameKey, "FastTreeRegressor",
//	)
//	logger.Info("Training started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 3918,
//	    log.FeaturesKey, 11,
//	)
package log

import (
	"context"
)

// Logger is a structured logger compatible with log/slog semantics.
//
// Fields are alternating key/value pairs. The With method returns a child
// logger that prefixes every record with the given fields.
type Logger interface {
	// Debug logs a diagnostic message.
	//
	// Example:
	//   logger.Debug("Histogram built",
	//       "feature", "Alcohol",
	//       "bins", 103,
	//   )
	Debug(msg string, fields ...any)

	// Info logs general progress.
	//
	// Example:
	//   logger.Info("Model evaluated",
	//       log.R2ScoreKey, 0.41,
	//       log.RMSEKey, 0.68,
	//   )
	Info(msg string, fields ...any)

	// Warn logs a condition that does not stop the run.
	Warn(msg string, fields ...any)

	// Error logs a failure. Pass the error under log.ErrAttrKey ("error") so
	// that backends can attach its stack trace.
	//
	// Example:
	//   logger.Error("Scenario failed",
	//       log.ErrAttrKey, err,
	//       log.OperationKey, log.OperationFit,
	//   )
	Error(msg string, fields ...any)

	// With returns a Logger that includes fields in every record.
	With(fields ...any) Logger

	// Enabled reports whether a record at level would be emitted.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level; values are compatible with slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates loggers. It exists so tests can inject a TestLogger.
type LoggerProvider interface {
	// GetLogger returns the default logger.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel changes the minimum level of all loggers from this provider.
	SetLevel(level Level)
}
