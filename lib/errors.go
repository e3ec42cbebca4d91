package lib

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Business errors
var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrCartFull          = errors.New("cart line limit reached")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrQuoteAlreadyPaid  = errors.New("quote already paid")
	ErrQuoteExpired      = errors.New("quote expired")

	ErrCouponInactive      = errors.New("coupon is not active")
	ErrCouponRequiresLogin = errors.New("coupon requires an account")
	ErrCouponNotStarted    = errors.New("coupon is not yet valid")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrCouponExhausted     = errors.New("coupon usage limit reached")
	ErrCouponMinOrder      = errors.New("order total below coupon minimum")

	ErrPaymentNotSettled = errors.New("payment not settled")
	ErrAmountMismatch    = errors.New("paid amount does not match expected total")
	ErrSessionMismatch   = errors.New("payment does not belong to this session")

	ErrFeatureDisabled = errors.New("feature is disabled")
	ErrTooManyImages   = errors.New("reference image limit reached")
	ErrRateLimited     = errors.New("rate limit exceeded")
)

// IsNotFound reports whether an error resolves to the not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// MapPgError converts driver-level Postgres errors into sentinel errors.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
		return err
	}

	var drvErr pgdriver.Error
	if errors.As(err, &drvErr) {
		switch drvErr.Field('C') { // SQLSTATE
		case "23505":
			return ErrConflict
		case "P0002":
			return ErrNotFound
		}
	}

	return err
}
