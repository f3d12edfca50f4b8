package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// newestFirst orders by transaction date and then creation time, both descending.
func newestFirst(aDate, aCreated, bDate, bCreated time.Time) bool {
	if !aDate.Equal(bDate) {
		return aDate.After(bDate)
	}
	return aCreated.After(bCreated)
}

func (s *Store) SaveCashRevenue(ctx context.Context, revenue domain.CashRevenue) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.cashRevenues[revenue.CashRevenueID]; ok {
			return fmt.Errorf("%w: cash revenue %s", apperrors.ErrDuplicate, revenue.CashRevenueID)
		}
		d.cashRevenues[revenue.CashRevenueID] = revenue
		return nil
	})
}

func (s *Store) SetCashRevenueJournal(ctx context.Context, cashRevenueID, journalEntryID string) error {
	return s.write(ctx, func(d *dataset) error {
		r, ok := d.cashRevenues[cashRevenueID]
		if !ok {
			return fmt.Errorf("%w: cash revenue %s", apperrors.ErrNotFound, cashRevenueID)
		}
		r.JournalID = &journalEntryID
		d.cashRevenues[cashRevenueID] = r
		return nil
	})
}

func (s *Store) ListCashRevenues(ctx context.Context, limit int) ([]domain.CashRevenue, error) {
	var out []domain.CashRevenue
	err := s.read(ctx, func(d *dataset) error {
		out = make([]domain.CashRevenue, 0, len(d.cashRevenues))
		for _, r := range d.cashRevenues {
			out = append(out, r)
		}
		sort.Slice(out, func(i, j int) bool {
			return newestFirst(out[i].Date, out[i].CreatedAt, out[j].Date, out[j].CreatedAt)
		})
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

func (s *Store) SaveCreditRevenue(ctx context.Context, revenue domain.CreditRevenue) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.creditRevenues[revenue.CreditRevenueID]; ok {
			return fmt.Errorf("%w: credit revenue %s", apperrors.ErrDuplicate, revenue.CreditRevenueID)
		}
		if _, ok := d.customers[revenue.CustomerID]; !ok {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, revenue.CustomerID)
		}
		revenue.CustomerName = ""
		revenue.Payments = nil
		d.creditRevenues[revenue.CreditRevenueID] = revenue
		return nil
	})
}

func (s *Store) SetCreditRevenueJournal(ctx context.Context, creditRevenueID, journalEntryID string) error {
	return s.write(ctx, func(d *dataset) error {
		r, ok := d.creditRevenues[creditRevenueID]
		if !ok {
			return fmt.Errorf("%w: credit revenue %s", apperrors.ErrNotFound, creditRevenueID)
		}
		r.JournalID = &journalEntryID
		d.creditRevenues[creditRevenueID] = r
		return nil
	})
}

func (d *dataset) joinCredit(r domain.CreditRevenue) domain.CreditRevenue {
	if c, ok := d.customers[r.CustomerID]; ok {
		r.CustomerName = c.Name
	}
	return r
}

func (s *Store) FindCreditRevenueByID(ctx context.Context, creditRevenueID string) (*domain.CreditRevenue, error) {
	var out *domain.CreditRevenue
	err := s.read(ctx, func(d *dataset) error {
		r, ok := d.creditRevenues[creditRevenueID]
		if !ok {
			return fmt.Errorf("%w: credit revenue %s", apperrors.ErrNotFound, creditRevenueID)
		}
		r = d.joinCredit(r)
		r.Payments = d.paymentsFor(creditRevenueID)
		out = &r
		return nil
	})
	return out, err
}

// FindCreditRevenueForUpdate is a plain read here: inside RunInTx the caller already holds the
// store's write lock.
func (s *Store) FindCreditRevenueForUpdate(ctx context.Context, creditRevenueID string) (*domain.CreditRevenue, error) {
	var out *domain.CreditRevenue
	err := s.read(ctx, func(d *dataset) error {
		r, ok := d.creditRevenues[creditRevenueID]
		if !ok {
			return fmt.Errorf("%w: credit revenue %s", apperrors.ErrNotFound, creditRevenueID)
		}
		r = d.joinCredit(r)
		out = &r
		return nil
	})
	return out, err
}

func (s *Store) UpdateCreditRevenuePayment(ctx context.Context, creditRevenueID string, expectedVersion int,
	paidAmount decimal.Decimal, status domain.ReceivableStatus, userID string, now time.Time) error {
	return s.write(ctx, func(d *dataset) error {
		r, ok := d.creditRevenues[creditRevenueID]
		if !ok {
			return fmt.Errorf("%w: credit revenue %s", apperrors.ErrNotFound, creditRevenueID)
		}
		if r.Version != expectedVersion {
			return fmt.Errorf("%w: credit revenue %s was modified concurrently", apperrors.ErrConcurrency, creditRevenueID)
		}
		if paidAmount.IsNegative() || paidAmount.GreaterThan(r.Amount) {
			return fmt.Errorf("%w: paid amount out of range", apperrors.ErrValidation)
		}
		r.PaidAmount = paidAmount
		r.Status = status
		r.Version++
		r.LastUpdatedAt = now
		r.LastUpdatedBy = userID
		d.creditRevenues[creditRevenueID] = r
		return nil
	})
}

func (d *dataset) paymentsFor(creditRevenueID string) []domain.ReceivablePayment {
	var out []domain.ReceivablePayment
	for _, p := range d.payments {
		if p.CreditID == creditRevenueID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].Date, out[i].CreatedAt, out[j].Date, out[j].CreatedAt)
	})
	return out
}

func (s *Store) ListCreditRevenues(ctx context.Context) ([]domain.CreditRevenue, error) {
	var out []domain.CreditRevenue
	err := s.read(ctx, func(d *dataset) error {
		out = make([]domain.CreditRevenue, 0, len(d.creditRevenues))
		for _, r := range d.creditRevenues {
			r = d.joinCredit(r)
			r.Payments = d.paymentsFor(r.CreditRevenueID)
			out = append(out, r)
		}
		sort.Slice(out, func(i, j int) bool {
			return newestFirst(out[i].Date, out[i].CreatedAt, out[j].Date, out[j].CreatedAt)
		})
		return nil
	})
	return out, err
}

func (s *Store) SumOutstandingReceivables(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := s.read(ctx, func(d *dataset) error {
		for _, r := range d.creditRevenues {
			if r.Status != domain.Paid {
				total = total.Add(r.Remaining())
			}
		}
		return nil
	})
	return total, err
}

func (s *Store) SaveReceivablePayment(ctx context.Context, payment domain.ReceivablePayment) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.payments[payment.PaymentID]; ok {
			return fmt.Errorf("%w: receivable payment %s", apperrors.ErrDuplicate, payment.PaymentID)
		}
		if _, ok := d.creditRevenues[payment.CreditID]; !ok {
			return fmt.Errorf("%w: credit revenue %s", apperrors.ErrNotFound, payment.CreditID)
		}
		d.payments[payment.PaymentID] = payment
		return nil
	})
}

func (s *Store) SetReceivablePaymentJournal(ctx context.Context, paymentID, journalEntryID string) error {
	return s.write(ctx, func(d *dataset) error {
		p, ok := d.payments[paymentID]
		if !ok {
			return fmt.Errorf("%w: receivable payment %s", apperrors.ErrNotFound, paymentID)
		}
		p.JournalID = &journalEntryID
		d.payments[paymentID] = p
		return nil
	})
}

func (s *Store) ListReceivablePayments(ctx context.Context) ([]domain.ReceivablePayment, error) {
	var out []domain.ReceivablePayment
	err := s.read(ctx, func(d *dataset) error {
		out = make([]domain.ReceivablePayment, 0, len(d.payments))
		for _, p := range d.payments {
			out = append(out, p)
		}
		sort.Slice(out, func(i, j int) bool {
			return newestFirst(out[i].Date, out[i].CreatedAt, out[j].Date, out[j].CreatedAt)
		})
		return nil
	})
	return out, err
}

func (s *Store) SaveOtherIncome(ctx context.Context, income domain.OtherIncome) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.otherIncomes[income.OtherIncomeID]; ok {
			return fmt.Errorf("%w: other income %s", apperrors.ErrDuplicate, income.OtherIncomeID)
		}
		d.otherIncomes[income.OtherIncomeID] = income
		return nil
	})
}

func (s *Store) SetOtherIncomeJournal(ctx context.Context, otherIncomeID, journalEntryID string) error {
	return s.write(ctx, func(d *dataset) error {
		o, ok := d.otherIncomes[otherIncomeID]
		if !ok {
			return fmt.Errorf("%w: other income %s", apperrors.ErrNotFound, otherIncomeID)
		}
		o.JournalID = &journalEntryID
		d.otherIncomes[otherIncomeID] = o
		return nil
	})
}

func (s *Store) ListOtherIncomes(ctx context.Context) ([]domain.OtherIncome, error) {
	var out []domain.OtherIncome
	err := s.read(ctx, func(d *dataset) error {
		out = make([]domain.OtherIncome, 0, len(d.otherIncomes))
		for _, o := range d.otherIncomes {
			out = append(out, o)
		}
		sort.Slice(out, func(i, j int) bool {
			return newestFirst(out[i].Date, out[i].CreatedAt, out[j].Date, out[j].CreatedAt)
		})
		return nil
	})
	return out, err
}
