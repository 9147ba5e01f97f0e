package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ddd-order/infrastructure/persistence"
)

// slowQueryThreshold marks queries worth a warning.
const slowQueryThreshold = 200 * time.Millisecond

// GormAdapter routes GORM's logging through zap, tagging each entry with the
// request correlation id when one is in the context.
type GormAdapter struct {
	logger *zap.Logger
	level  gormlogger.LogLevel
}

func NewGormAdapter(logger *zap.Logger) *GormAdapter {
	return &GormAdapter{
		logger: logger.WithOptions(zap.AddCallerSkip(2)),
		level:  gormlogger.Warn,
	}
}

func (a *GormAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &GormAdapter{logger: a.logger, level: level}
}

func (a *GormAdapter) Info(ctx context.Context, msg string, args ...any) {
	if a.level >= gormlogger.Info {
		a.with(ctx).Sugar().Infof(msg, args...)
	}
}

func (a *GormAdapter) Warn(ctx context.Context, msg string, args ...any) {
	if a.level >= gormlogger.Warn {
		a.with(ctx).Sugar().Warnf(msg, args...)
	}
}

func (a *GormAdapter) Error(ctx context.Context, msg string, args ...any) {
	if a.level >= gormlogger.Error {
		a.with(ctx).Sugar().Errorf(msg, args...)
	}
}

func (a *GormAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if a.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	log := a.with(ctx)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		log.Error("query failed",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	case elapsed > slowQueryThreshold:
		log.Warn("slow query",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed))
	case a.level >= gormlogger.Info:
		log.Debug("query",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed))
	}
}

func (a *GormAdapter) with(ctx context.Context) *zap.Logger {
	if requestID := persistence.RequestIDFromContext(ctx); requestID != "" {
		return a.logger.With(zap.String("request_id", requestID))
	}
	return a.logger
}
