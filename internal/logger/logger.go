package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Config holds the configuration of the logger.
type Config struct {
	Level  slog.Level
	Format string
	// Output defaults to os.Stdout.
	Output io.Writer
}

// contextKey is used for context values.
type contextKey string

const (
	// ContextKeyRequestID is the key for request ID in the context.
	ContextKeyRequestID contextKey = "request_id"
	// ContextKeyOperation is the key for operation name in the context.
	ContextKeyOperation contextKey = "operation"
)

// Logger wraps slog.Logger.
type Logger struct {
	*slog.Logger
}

// New creates a logger writing JSON when Format is "json" and colored text
// otherwise.
func New(config Config) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	var handler slog.Handler
	switch config.Format {
	case "json":
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level:       config.Level,
			AddSource:   true,
			ReplaceAttr: rfc3339Time,
		})
	default:
		handler = tint.NewHandler(out, &tint.Options{
			Level:      config.Level,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})
	}

	return &Logger{Logger: slog.New(handler)}
}

func rfc3339Time(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.String(a.Key, a.Value.Time().Format(time.RFC3339))
	}
	return a
}

// FromConfig turns LOG_LEVEL and LOG_FORMAT into a logger Config. Unknown levels
// fall back to debug. APP_ENV=production forces JSON.
func FromConfig(logLevel, logFormat string) Config {
	config := Config{
		Level:  slog.LevelDebug,
		Format: "text",
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err == nil {
		config.Level = level
	}

	if logFormat != "" {
		config.Format = logFormat
	}

	if os.Getenv("APP_ENV") == "production" {
		config.Format = "json"
	}

	return config
}

// WithContext adds the request ID and operation stored in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	var attrs []any
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}
	if operation, _ := ctx.Value(ContextKeyOperation).(string); operation != "" {
		attrs = append(attrs, slog.String("operation", operation))
	}

	if len(attrs) == 0 {
		return l
	}
	return &Logger{Logger: l.With(attrs...)}
}

// WithComponent tags entries with the emitting component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.With(slog.String("component", component))}
}

// LogError logs err at error level with the context attributes.
func (l *Logger) LogError(ctx context.Context, err error, msg string, args ...any) {
	l.WithContext(ctx).Error(msg, append([]any{slog.Any("error", err)}, args...)...)
}
