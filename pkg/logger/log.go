package logger

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface is the structured logger used across the service.
//
//go:generate mockgen -source log.go -destination=mock/log_mock.go -package=logger_mock
type Interface interface {
	Debug(message string, fields ...Field)
	DebugContext(ctx context.Context, message string, fields ...Field)
	Error(err error, fields ...Field)
	ErrorContext(ctx context.Context, err error, fields ...Field)
	Info(message string, fields ...Field)
	InfoContext(ctx context.Context, message string, fields ...Field)
	Sync() error
	Warn(message string, fields ...Field)
	WarnContext(ctx context.Context, message string, fields ...Field)
	WithFields(fields ...Field) Interface
}

// Logger is a wrapper around zap.Logger to provide structured logging.
type Logger struct {
	logger *zap.Logger
}

// Field holds key-value to be written to log.
type Field struct {
	Key   string
	Value any
}

// Level represents the severity level of the log.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

const (
	messageKey = "message"
	timeKey    = "timestamp"

	// public method + write helper
	wrapperDepth = 2
)

// ParseLevel maps a configuration string onto a Level. Unknown values fall back to info.
func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case DebugLevel:
		return DebugLevel
	case WarnLevel:
		return WarnLevel
	case ErrorLevel:
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func (level Level) zapLevel() zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

type options struct {
	level       Level
	development bool
	service     string
}

// Option configures NewLogger.
type Option func(*options)

// WithLoggingLevel sets the minimum level written. Defaults to info.
func WithLoggingLevel(level Level) Option {
	return func(o *options) { o.level = level }
}

// WithDevelopment switches to the human readable console encoder.
func WithDevelopment(enabled bool) Option {
	return func(o *options) { o.development = enabled }
}

// WithService tags every entry with the service name.
func WithService(name string) Option {
	return func(o *options) { o.service = name }
}

// NewLogger creates a JSON logger writing to stderr, or a console logger in
// development.
func NewLogger(opts ...Option) (*Logger, error) {
	o := options{level: InfoLevel}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := zap.NewProductionConfig()
	if o.development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(o.level.zapLevel())
	cfg.EncoderConfig.MessageKey = messageKey
	cfg.EncoderConfig.TimeKey = timeKey
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build(zap.AddCallerSkip(wrapperDepth))
	if err != nil {
		return nil, err
	}
	if o.service != "" {
		z = z.With(zap.String("service", o.service))
	}

	return &Logger{logger: z}, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return &Logger{logger: zap.NewNop()}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

// NewField returns Field with given key and value.
func NewField(key string, value any) Field {
	return Field{key, value}
}

func (l *Logger) Info(message string, fields ...Field) {
	l.write(zapcore.InfoLevel, message, fields)
}

// InfoContext logs at info with the request id, price source and user id from ctx.
func (l *Logger) InfoContext(ctx context.Context, message string, fields ...Field) {
	l.write(zapcore.InfoLevel, message, contextFields(ctx, fields))
}

func (l *Logger) Warn(message string, fields ...Field) {
	l.write(zapcore.WarnLevel, message, fields)
}

func (l *Logger) WarnContext(ctx context.Context, message string, fields ...Field) {
	l.write(zapcore.WarnLevel, message, contextFields(ctx, fields))
}

func (l *Logger) Debug(message string, fields ...Field) {
	l.write(zapcore.DebugLevel, message, fields)
}

func (l *Logger) DebugContext(ctx context.Context, message string, fields ...Field) {
	l.write(zapcore.DebugLevel, message, contextFields(ctx, fields))
}

// Error logs err at error level. When err carries a stack from pkg/errors,
// that stack replaces the one zap captured. A nil err is ignored.
func (l *Logger) Error(err error, fields ...Field) {
	l.writeError(err, fields)
}

func (l *Logger) ErrorContext(ctx context.Context, err error, fields ...Field) {
	l.writeError(err, contextFields(ctx, fields))
}

// WithFields returns a child logger with additional fields.
func (l *Logger) WithFields(fields ...Field) Interface {
	return &Logger{logger: l.logger.With(convertFields(fields)...)}
}

func (l *Logger) write(level zapcore.Level, message string, fields []Field) {
	if ce := l.logger.Check(level, message); ce != nil {
		ce.Write(convertFields(fields)...)
	}
}

func (l *Logger) writeError(err error, fields []Field) {
	if err == nil {
		return
	}

	ce := l.logger.Check(zapcore.ErrorLevel, err.Error())
	if ce == nil {
		return
	}
	if tracer, ok := err.(errors.StackTracer); ok {
		if stack := strings.TrimSpace(fmt.Sprintf("%+v", tracer.StackTrace())); stack != "" {
			ce.Stack = stack
		}
	}
	ce.Write(convertFields(fields)...)
}

func convertFields(fields []Field) []zapcore.Field {
	zapFields := make([]zapcore.Field, 0, len(fields))
	for _, field := range fields {
		zapFields = append(zapFields, zap.Any(field.Key, field.Value))
	}
	return zapFields
}

// contextFields appends the request id, and the price source and user id
// when ctx carries them.
func contextFields(ctx context.Context, fields []Field) []Field {
	out := make([]Field, 0, len(fields)+3)
	out = append(out, fields...)
	out = append(out, NewField("request_id", util.GetRequestID(ctx)))
	if source := util.GetSource(ctx); source != "" {
		out = append(out, NewField("source", source))
	}
	if userID, ok := util.GetUserID(ctx); ok {
		out = append(out, NewField("user_id", userID))
	}
	return out
}
