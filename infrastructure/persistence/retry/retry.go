// Package retry provides bounded retry with exponential backoff and jitter
// for transient database failures.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// Config bounds the retry loop.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultConfig retries twice after the first attempt, starting at 50ms.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     2 * time.Second,
	}
}

// MySQL error numbers worth retrying: deadlock victim and lock wait timeout.
const (
	mysqlErrDeadlock        = 1213
	mysqlErrLockWaitTimeout = 1205
)

// IsRetryableError reports whether err is a transient MySQL failure. Business
// errors and data errors never retry.
func IsRetryableError(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDeadlock || mysqlErr.Number == mysqlErrLockWaitTimeout
	}
	return false
}

// ExponentialBackoffWithJitter doubles the delay per attempt, caps it at
// MaxDelay, and randomizes within [delay/2, delay) to avoid thundering herds.
func ExponentialBackoffWithJitter(cfg Config, attempt int) time.Duration {
	delay := cfg.InitialDelay << uint(attempt)
	if delay > cfg.MaxDelay || delay <= 0 {
		delay = cfg.MaxDelay
	}
	half := delay / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}

// ExecuteWithRetry runs fn up to cfg.MaxAttempts times, backing off between
// attempts. Non-retryable errors and context cancellation end the loop
// immediately.
func ExecuteWithRetry(ctx context.Context, cfg Config, logger *zap.Logger, fn func(ctx context.Context) error) error {
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultConfig()
	}

	var err error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := ExponentialBackoffWithJitter(cfg, attempt-1)
			logger.Warn("retrying transient database error",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
				zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !IsRetryableError(err) {
			return err
		}
	}
	return err
}
