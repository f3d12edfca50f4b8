package domain

import "github.com/shopspring/decimal"

// DashboardSummary holds the headline figures of the revenue cycle.
type DashboardSummary struct {
	TotalRevenue           decimal.Decimal `json:"totalRevenue"`
	OutstandingReceivables decimal.Decimal `json:"outstandingReceivables"`
	TotalCashIn            decimal.Decimal `json:"totalCashIn"`
	RecentCashRevenues     []CashRevenue   `json:"recentCashRevenues"`
}
