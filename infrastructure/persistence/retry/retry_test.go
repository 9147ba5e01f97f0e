package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func deadlockErr() error {
	return &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
}

func TestIsRetryableError(t *testing.T) {
	if !IsRetryableError(deadlockErr()) {
		t.Error("deadlock not classified retryable")
	}
	if !IsRetryableError(&mysqlDriver.MySQLError{Number: 1205}) {
		t.Error("lock wait timeout not classified retryable")
	}
	if IsRetryableError(&mysqlDriver.MySQLError{Number: 1062}) {
		t.Error("duplicate key classified retryable")
	}
	if IsRetryableError(errors.New("business error")) {
		t.Error("plain error classified retryable")
	}
	if IsRetryableError(nil) {
		t.Error("nil classified retryable")
	}

	// Wrapped driver errors still classify.
	wrapped := errors.Join(errors.New("save order"), deadlockErr())
	if !IsRetryableError(wrapped) {
		t.Error("wrapped deadlock not classified retryable")
	}
}

func TestExecuteWithRetrySucceedsAfterTransientFailure(t *testing.T) {
	cfg := Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond}

	attempts := 0
	err := ExecuteWithRetry(context.Background(), cfg, zap.NewNop(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return deadlockErr()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("got %d attempts, want 3", attempts)
	}
}

func TestExecuteWithRetryStopsOnNonRetryable(t *testing.T) {
	cfg := Config{MaxAttempts: 5, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond}
	wantErr := errors.New("validation failed")

	attempts := 0
	err := ExecuteWithRetry(context.Background(), cfg, zap.NewNop(), func(ctx context.Context) error {
		attempts++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want the original error", err)
	}
	if attempts != 1 {
		t.Errorf("got %d attempts, want 1", attempts)
	}
}

func TestExecuteWithRetryExhaustsAttempts(t *testing.T) {
	cfg := Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond}

	attempts := 0
	err := ExecuteWithRetry(context.Background(), cfg, zap.NewNop(), func(ctx context.Context) error {
		attempts++
		return deadlockErr()
	})
	if !IsRetryableError(err) {
		t.Fatalf("got %v, want the last transient error", err)
	}
	if attempts != 3 {
		t.Errorf("got %d attempts, want 3", attempts)
	}
}

func TestExecuteWithRetryHonorsContext(t *testing.T) {
	cfg := Config{MaxAttempts: 10, InitialDelay: 50 * time.Millisecond, MaxDelay: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := ExecuteWithRetry(ctx, cfg, zap.NewNop(), func(ctx context.Context) error {
		attempts++
		return deadlockErr()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestExponentialBackoffWithJitter(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second}

	for attempt := 0; attempt < 8; attempt++ {
		delay := ExponentialBackoffWithJitter(cfg, attempt)
		if delay <= 0 {
			t.Errorf("attempt %d: non-positive delay %v", attempt, delay)
		}
		if delay > cfg.MaxDelay {
			t.Errorf("attempt %d: delay %v exceeds cap %v", attempt, delay, cfg.MaxDelay)
		}
	}
}
