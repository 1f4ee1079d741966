package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes GORM logs to zap. Statements run on behalf of an HTTP
// request are logged through that request's logger, so they carry its
// request_id and user_id. Record-not-found is never logged: repositories
// translate it into a domain NotFound error.
type GormLogger struct {
	base          *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement is logged as slow.
// Zero disables slow statement logging.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) {
		l.slowThreshold = threshold
	}
}

func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{base: zapLogger, level: level, slowThreshold: 200 * time.Millisecond}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, min gormlogger.LogLevel, lvl zapcore.Level, msg string, data []any) {
	if l.level < min {
		return
	}
	l.loggerFor(ctx).Log(lvl, fmt.Sprintf(msg, data...))
}

// Trace logs one executed statement: failures at error, slow statements at
// warn, everything else at debug when the gorm level is Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	var (
		lvl    zapcore.Level
		msg    string
		extras []zap.Field
	)
	switch {
	case failed && l.level >= gormlogger.Error:
		lvl, msg, extras = zapcore.ErrorLevel, "SQL Error", []zap.Field{zap.Error(err)}
	case slow && l.level >= gormlogger.Warn:
		lvl, msg, extras = zapcore.WarnLevel, "Slow SQL", []zap.Field{zap.Duration("threshold", l.slowThreshold)}
	case !failed && l.level >= gormlogger.Info:
		lvl, msg = zapcore.DebugLevel, "SQL Query"
	default:
		return
	}

	sql, rows := fc()
	fields := append([]zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}, extras...)
	l.loggerFor(ctx).Log(lvl, msg, fields...)
}

func (l *GormLogger) loggerFor(ctx context.Context) *zap.Logger {
	return FromContext(ctx, l.base).Named("gorm")
}

// MapGormLogLevel converts the database.log_level setting. Unknown values
// fall back to warn.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	levels := map[string]gormlogger.LogLevel{
		"silent": gormlogger.Silent,
		"error":  gormlogger.Error,
		"warn":   gormlogger.Warn,
		"info":   gormlogger.Info,
		"debug":  gormlogger.Info,
	}
	if lv, ok := levels[level]; ok {
		return lv
	}
	return gormlogger.Warn
}
