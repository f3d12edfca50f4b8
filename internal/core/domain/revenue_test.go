package domain_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		paid   string
		amount string
		want   domain.ReceivableStatus
	}{
		{name: "nothing paid", paid: "0", amount: "1000", want: domain.Unpaid},
		{name: "partially paid", paid: "400", amount: "1000", want: domain.Partial},
		{name: "fractional partial", paid: "0.01", amount: "1000", want: domain.Partial},
		{name: "fully paid", paid: "1000", amount: "1000", want: domain.Paid},
		{name: "fully paid with trailing zeros", paid: "1000.00", amount: "1000", want: domain.Paid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.StatusFor(dec(tt.paid), dec(tt.amount)))
		})
	}
}

func TestCreditRevenue_ApplyPayment(t *testing.T) {
	credit := domain.CreditRevenue{
		Amount:     dec("1000000"),
		PaidAmount: dec("400000"),
		Status:     domain.Partial,
	}

	t.Run("partial payment keeps PARTIAL", func(t *testing.T) {
		paid, status, err := credit.ApplyPayment(dec("100000"))
		assert.NoError(t, err)
		assert.True(t, paid.Equal(dec("500000")))
		assert.Equal(t, domain.Partial, status)
	})

	t.Run("exact remainder settles the receivable", func(t *testing.T) {
		paid, status, err := credit.ApplyPayment(dec("600000"))
		assert.NoError(t, err)
		assert.True(t, paid.Equal(credit.Amount))
		assert.Equal(t, domain.Paid, status)
	})

	t.Run("overpayment is rejected and changes nothing", func(t *testing.T) {
		paid, status, err := credit.ApplyPayment(dec("600000.01"))
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
		assert.Contains(t, err.Error(), "Jumlah pembayaran melebihi sisa piutang")
		assert.True(t, paid.Equal(credit.PaidAmount))
		assert.Equal(t, domain.Partial, status)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		_, _, err := credit.ApplyPayment(decimal.Zero)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})
}
