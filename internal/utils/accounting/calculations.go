package accounting

import (
	"fmt"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NetChange returns the effect of one line on the balance of an account of the given type.
//
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func NetChange(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// FoldLedger computes the running balance of account over lines, which must already be in
// posting order. An account without lines has a zero balance.
func FoldLedger(account domain.Account, lines []domain.JournalLine) (domain.AccountLedger, error) {
	ledger := domain.AccountLedger{
		Account:        account,
		Entries:        make([]domain.LedgerEntry, 0, len(lines)),
		CurrentBalance: decimal.Zero,
	}

	balance := decimal.Zero
	for _, line := range lines {
		change, err := NetChange(account.AccountType, line.Debit, line.Credit)
		if err != nil {
			return domain.AccountLedger{}, fmt.Errorf("account %s: %w", account.AccountID, err)
		}
		balance = balance.Add(change)
		ledger.Entries = append(ledger.Entries, domain.LedgerEntry{
			JournalLineID:  line.JournalLineID,
			JournalEntryID: line.JournalEntryID,
			Date:           line.EntryDate,
			Description:    line.EntryDescription,
			Reference:      line.EntryReference,
			Debit:          line.Debit,
			Credit:         line.Credit,
			Balance:        balance,
		})
	}
	ledger.CurrentBalance = balance
	return ledger, nil
}

// ValidateManualLines checks the shape of a hand-entered journal: at least two lines, no negative
// amounts, no empty lines and debits matching credits within domain.ManualBalanceTolerance.
func ValidateManualLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal must have at least two lines")
	}

	entry := domain.JournalEntry{Lines: lines}
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line %d: debit and credit must not be negative", i+1)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return fmt.Errorf("line %d: debit or credit must be filled", i+1)
		}
	}

	debit, credit := entry.Totals()
	if debit.Sub(credit).Abs().GreaterThan(domain.ManualBalanceTolerance) {
		return fmt.Errorf("total debit (%s) dan kredit (%s) harus seimbang", debit.String(), credit.String())
	}
	return nil
}
