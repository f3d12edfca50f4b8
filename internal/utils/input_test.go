package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePositiveAmount(t *testing.T) {
	amount, err := ParsePositiveAmount("amount", " 1500000.50 ")
	require.NoError(t, err)
	assert.Equal(t, "1500000.5", amount.String())

	for _, raw := range []string{"0", "-10", "abc", ""} {
		_, err := ParsePositiveAmount("amount", raw)
		assert.True(t, errors.Is(err, apperrors.ErrValidation), "raw=%q", raw)
	}
}

func TestParsePositiveAmount_StorageBounds(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
	}{
		{"0.0001", true},
		{"123.4560", true},
		{"1.50000000", true},
		{"9999999999999999.9999", true},
		{"0.00001", false},
		{"123.456789", false},
		{"1e-30", false},
		{"1e25", false},
		{"10000000000000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			amount, err := ParsePositiveAmount("amount", tt.raw)
			if tt.valid {
				require.NoError(t, err)
				assert.True(t, amount.Equal(amount.Truncate(AmountScale)))
				return
			}
			assert.True(t, errors.Is(err, apperrors.ErrValidation), "err=%v", err)
		})
	}
}

func TestParseNonNegativeAmount(t *testing.T) {
	amount, err := ParseNonNegativeAmount("debit", "")
	require.NoError(t, err)
	assert.True(t, amount.IsZero())

	_, err = ParseNonNegativeAmount("debit", "-1")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	for _, raw := range []string{"0.00001", "1e16"} {
		_, err = ParseNonNegativeAmount("credit", raw)
		assert.True(t, errors.Is(err, apperrors.ErrValidation), "raw=%q", raw)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("date", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("date", "2024-03-01T15:04:05+07:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("date", "01/03/2024")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}
