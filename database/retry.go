package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// RetryConfig defines retry behavior for transient database failures.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	}
}

// isRetryableError determines if an error should trigger a retry.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Context errors and missing rows are never retried
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		// Integrity violations: retrying cannot succeed
		case "23000", "23001", "23502", "23503", "23505", "23514", "23P01":
			return false

		// Syntax / access-rule violations: programmer errors
		case "42601", "42501", "42703", "42P01", "42804", "42883":
			return false

		// Connection and resource failures are worth retrying
		case "08000", "08003", "08006", "08001", "08004", // connection_exception family
			"53300", // too_many_connections
			"57P03", // cannot_connect_now
			"40001", // serialization_failure
			"40P01": // deadlock_detected
			return true
		}
		return false
	}

	// Driver-level connection drops surface as plain errors
	msg := err.Error()
	for _, marker := range []string{"EOF", "broken pipe", "connection reset", "connection refused", "i/o timeout"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// WithRetry executes an operation with exponential backoff on transient
// failures.
func WithRetry(ctx context.Context, operation func() error) error {
	cfg := DefaultRetryConfig()

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = operation()
		if lastErr == nil {
			return nil
		}

		if !isRetryableError(lastErr) || attempt == cfg.MaxAttempts {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return lastErr
}
