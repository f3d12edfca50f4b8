package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account classes.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether debits increase accounts of this type.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents an entry of the chart of accounts.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (e.g., UUID)
	Code        string      `json:"code"`        // Unique human code, e.g. "101"
	Name        string      `json:"name"`        // Display name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	Description string      `json:"description"` // Nullable
	AuditFields
}

// Codes of the accounts the posting engine relies on.
const (
	CashAccountCode         = "101"
	ReceivableAccountCode   = "102"
	SalesRevenueAccountCode = "401"
	OtherIncomeAccountCode  = "402"
)

// FixedAccountCodes lists the codes that must exist before any transaction can be posted.
var FixedAccountCodes = []string{
	CashAccountCode,
	ReceivableAccountCode,
	SalesRevenueAccountCode,
	OtherIncomeAccountCode,
}

// FixedAccounts is the resolved set of accounts used by the automatic journal recipes.
type FixedAccounts struct {
	Cash         Account
	Receivable   Account
	SalesRevenue Account
	OtherIncome  Account
}
