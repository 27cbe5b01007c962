package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	wmerrors "github.com/YuminosukeSato/wineml/pkg/errors"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// Output formats accepted by SetupLogger.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = newSlogProvider(os.Stderr, LevelWarn)
)

// SetupLogger installs the global logger. level is one of debug, info, warn,
// error; format is "json" (slog) or "console" (zerolog). Records go to w, or
// to stderr when w is nil. Warnings raised through pkg/errors are routed to
// the new logger.
func SetupLogger(level, format string, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	if w == nil {
		w = os.Stderr
	}

	var p LoggerProvider
	switch strings.ToLower(format) {
	case FormatJSON, "":
		p = newSlogProvider(w, lvl)
	case FormatConsole:
		p = newZerologProvider(w, lvl)
	default:
		return wmerrors.NewValidationError("log.format", "must be json or console", format)
	}

	SetProvider(p)
	wmerrors.SetZerologWarnFunc(func(warning error) {
		GetLoggerWithName("warnings").Warn(warning.Error(), ErrAttrKey, warning)
	})
	return nil
}

// SetProvider replaces the global provider. Tests use it with a
// TestLoggerProvider. A nil provider restores the default: warn-level JSON
// on stderr.
func SetProvider(p LoggerProvider) {
	if p == nil {
		p = newSlogProvider(os.Stderr, LevelWarn)
	}
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// GetLogger returns the global logger.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns the global logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// ParseLevel converts a level name into a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return 0, wmerrors.NewValidationError("log.level", "must be one of debug, info, warn, error", level)
	}
}

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// Since returns the milliseconds elapsed since start, for DurationMsKey.
func Since(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}

// ===========================================================================
//
//	slog backend
//
// ===========================================================================

func newJSONLogger(w io.Writer, lvl *slog.LevelVar) *slog.Logger {
	ops := slog.HandlerOptions{
		AddSource: lvl.Level() <= slog.LevelDebug,
		Level:     lvl,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr.Key = "severity"
			case slog.MessageKey:
				attr.Key = "message"
			}
			return attr
		},
	}
	return slog.New(WrapByErrFmtHandler(slog.NewJSONHandler(w, &ops)))
}

type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, fields...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, fields...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, fields...) }
func (s *slogLogger) Error(msg string, fields ...any) { s.l.Error(msg, fields...) }

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(fields...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

type slogProvider struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

func newSlogProvider(w io.Writer, lvl Level) *slogProvider {
	v := &slog.LevelVar{}
	v.Set(slog.Level(lvl))
	return &slogProvider{logger: newJSONLogger(w, v), level: v}
}

func (p *slogProvider) GetLogger() Logger { return &slogLogger{l: p.logger} }

func (p *slogProvider) GetLoggerWithName(name string) Logger {
	return &slogLogger{l: p.logger.With(ComponentKey, name)}
}

func (p *slogProvider) SetLevel(level Level) { p.level.Set(slog.Level(level)) }

// ===========================================================================
//
//	zerolog backend
//
// ===========================================================================

type zerologLogger struct {
	l zerolog.Logger
}

func (z *zerologLogger) Debug(msg string, fields ...any) { z.emit(z.l.Debug(), msg, fields) }
func (z *zerologLogger) Info(msg string, fields ...any)  { z.emit(z.l.Info(), msg, fields) }
func (z *zerologLogger) Warn(msg string, fields ...any)  { z.emit(z.l.Warn(), msg, fields) }
func (z *zerologLogger) Error(msg string, fields ...any) { z.emit(z.l.Error(), msg, fields) }

func (z *zerologLogger) emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
			var m zerolog.LogObjectMarshaler
			if errors.As(v, &m) {
				e = e.Object(key+"_detail", m)
			}
		default:
			e = e.Interface(key, v)
		}
	}
	e.Msg(msg)
}

func (z *zerologLogger) With(fields ...any) Logger {
	ctx := z.l.With()
	for i := 0; i+1 < len(fields); i += 2 {
		ctx = ctx.Interface(fmt.Sprint(fields[i]), fields[i+1])
	}
	return &zerologLogger{l: ctx.Logger()}
}

func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= z.l.GetLevel()
}

type zerologProvider struct {
	base zerolog.Logger
}

func newZerologProvider(w io.Writer, lvl Level) *zerologProvider {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: w != os.Stderr}
	return &zerologProvider{
		base: zerolog.New(out).Level(toZerologLevel(lvl)).With().Timestamp().Logger(),
	}
}

func (p *zerologProvider) GetLogger() Logger { return &zerologLogger{l: p.base} }

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{l: p.base.With().Str(ComponentKey, name).Logger()}
}

func (p *zerologProvider) SetLevel(level Level) {
	p.base = p.base.Level(toZerologLevel(level))
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
