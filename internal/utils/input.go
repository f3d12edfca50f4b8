package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Amounts are stored as NUMERIC(20,4): at most four fractional and sixteen integer digits.
const (
	AmountScale         = 4
	AmountIntegerDigits = 16
)

var maxAmountExclusive = decimal.New(1, AmountIntegerDigits)

// CheckAmountBounds rejects amounts the storage column cannot hold without rounding or overflow.
func CheckAmountBounds(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return fmt.Errorf("%w: %s maksimal %d angka desimal", apperrors.ErrValidation, field, AmountScale)
	}
	if amount.Abs().GreaterThanOrEqual(maxAmountExclusive) {
		return fmt.Errorf("%w: %s maksimal %d digit sebelum koma", apperrors.ErrValidation, field, AmountIntegerDigits)
	}
	return nil
}

// ParsePositiveAmount parses a decimal amount and requires it to be strictly positive.
func ParsePositiveAmount(field, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s bukan angka yang valid", apperrors.ErrValidation, field)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s harus lebih dari 0", apperrors.ErrValidation, field)
	}
	if err := CheckAmountBounds(field, amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// ParseNonNegativeAmount parses a decimal amount that may be empty (zero) but not negative.
func ParseNonNegativeAmount(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s bukan angka yang valid", apperrors.ErrValidation, field)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s tidak boleh negatif", apperrors.ErrValidation, field)
	}
	if err := CheckAmountBounds(field, amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC3339 timestamp and returns the
// calendar date at midnight UTC.
func ParseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(domain.DateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %s harus berformat YYYY-MM-DD", apperrors.ErrValidation, field)
}
