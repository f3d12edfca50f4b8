package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_cycle_app/internal/core/services"
	"github.com/SscSPs/revenue_cycle_app/internal/dto"
	"github.com/SscSPs/revenue_cycle_app/internal/platform/config"
	"github.com/SscSPs/revenue_cycle_app/internal/repositories/database/memory"
	"github.com/SscSPs/revenue_cycle_app/internal/seed"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const fullChart = `
accounts:
  - { code: "101", name: "Kas", type: ASSET }
  - { code: "102", name: "Piutang Usaha", type: ASSET }
  - { code: "401", name: "Pendapatan Penjualan", type: REVENUE }
  - { code: "402", name: "Pendapatan Lain-lain", type: REVENUE }
  - { code: "501", name: "Beban Gaji", type: EXPENSE }
`

const chartWithout401 = `
accounts:
  - { code: "101", name: "Kas", type: ASSET }
  - { code: "102", name: "Piutang Usaha", type: ASSET }
  - { code: "402", name: "Pendapatan Lain-lain", type: REVENUE }
`

// conflictingRevenueRepo loses every optimistic update, as if another writer got there first.
type conflictingRevenueRepo struct {
	portsrepo.RevenueRepositoryFacade
}

func (conflictingRevenueRepo) UpdateCreditRevenuePayment(ctx context.Context, creditRevenueID string, expectedVersion int,
	paidAmount decimal.Decimal, status domain.ReceivableStatus, userID string, now time.Time) error {
	return fmt.Errorf("%w: credit revenue %s changed since version %d", apperrors.ErrConcurrency, creditRevenueID, expectedVersion)
}

// RevenueCycleTestSuite runs the transaction workflows against the in-memory store.
type RevenueCycleTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	services *portssvc.ServiceContainer
	cashier  domain.Caller
	customer *domain.Customer
}

func (suite *RevenueCycleTestSuite) build(chart string, wrap func(portsrepo.RepositoryProvider) portsrepo.RepositoryProvider) {
	if suite.services != nil {
		suite.services.Audit.Close()
	}
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	repos := memory.NewRepositoryProvider(suite.store)

	file, err := seed.ParseChartOfAccounts([]byte(chart))
	suite.Require().NoError(err)
	_, err = seed.Apply(suite.ctx, repos.TxManager, repos.AccountRepo, file, time.Now().UTC())
	suite.Require().NoError(err)

	if wrap != nil {
		repos = wrap(repos)
	}
	suite.services = services.NewServiceContainer(&config.Config{AuditTimeout: time.Second, BalanceWorkers: 3}, repos, nil)

	suite.cashier = domain.Caller{UserID: "kasir-1", Role: domain.RoleCashier}
	suite.customer, err = suite.services.Customer.CreateCustomer(suite.ctx, dto.CreateCustomerRequest{Name: "Toko Maju"}, suite.cashier)
	suite.Require().NoError(err)
}

func (suite *RevenueCycleTestSuite) SetupTest() {
	suite.build(fullChart, nil)
}

func (suite *RevenueCycleTestSuite) TearDownTest() {
	suite.services.Audit.Close()
}

func (suite *RevenueCycleTestSuite) journalCount() int {
	entries, err := suite.store.ListJournalEntries(suite.ctx, 1000, nil)
	suite.Require().NoError(err)
	return len(entries)
}

func (suite *RevenueCycleTestSuite) balances() map[string]decimal.Decimal {
	all, err := suite.services.Ledger.ComputeAllAccountBalances(suite.ctx)
	suite.Require().NoError(err)
	byCode := make(map[string]decimal.Decimal, len(all))
	for _, b := range all {
		byCode[b.Code] = b.Balance
	}
	return byCode
}

func (suite *RevenueCycleTestSuite) newCredit(amount string) *domain.CreditRevenue {
	posted, err := suite.services.Revenue.CreateCreditRevenue(suite.ctx, dto.CreateCreditRevenueRequest{
		Date:       "2024-05-01",
		DueDate:    "2024-05-31",
		Amount:     dto.Amount(amount),
		CustomerID: suite.customer.CustomerID,
	}, suite.cashier)
	suite.Require().NoError(err)
	return &posted.Transaction
}

func (suite *RevenueCycleTestSuite) pay(creditID, amount string) (*domain.Posted[domain.ReceivablePayment], error) {
	return suite.services.Revenue.CreateReceivablePayment(suite.ctx, dto.CreateReceivablePaymentRequest{
		CreditID: creditID,
		Date:     "2024-05-10",
		Amount:   dto.Amount(amount),
	}, suite.cashier)
}

func (suite *RevenueCycleTestSuite) TestCashSaleWithoutCustomer() {
	posted, err := suite.services.Revenue.CreateCashRevenue(suite.ctx, dto.CreateCashRevenueRequest{
		Date:        "2024-05-01",
		Amount:      "250000",
		Description: "Penjualan tunai",
	}, suite.cashier)

	suite.Require().NoError(err)
	suite.Nil(posted.Transaction.CustomerID)
	suite.Equal(domain.RefCashRevenue, posted.Journal.RefType)
	suite.Require().Len(posted.Journal.Lines, 2)
	suite.Equal(domain.CashAccountCode, posted.Journal.Lines[0].AccountCode)
	suite.True(posted.Journal.Lines[0].Debit.Equal(decimal.NewFromInt(250000)))
	suite.Equal(domain.SalesRevenueAccountCode, posted.Journal.Lines[1].AccountCode)
	suite.True(posted.Journal.Lines[1].Credit.Equal(decimal.NewFromInt(250000)))
	suite.Require().NotNil(posted.Transaction.JournalID)
	suite.Equal(posted.Journal.JournalEntryID, *posted.Transaction.JournalID)
	suite.Equal("CASH-"+posted.Transaction.CashRevenueID, posted.Journal.Reference)

	stored, err := suite.store.ListCashRevenues(suite.ctx, 0)
	suite.Require().NoError(err)
	suite.Require().Len(stored, 1)
	suite.Equal(posted.Journal.JournalEntryID, *stored[0].JournalID)

	b := suite.balances()
	suite.True(b["101"].Equal(decimal.NewFromInt(250000)))
	suite.True(b["401"].Equal(decimal.NewFromInt(250000)))
}

func (suite *RevenueCycleTestSuite) TestCashSale_UnknownCustomer() {
	unknown := "nobody"
	_, err := suite.services.Revenue.CreateCashRevenue(suite.ctx, dto.CreateCashRevenueRequest{
		Date: "2024-05-01", Amount: "10", Description: "x", CustomerID: &unknown,
	}, suite.cashier)

	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.Zero(suite.journalCount())
}

func (suite *RevenueCycleTestSuite) TestCreditSaleSettledInTwoPayments() {
	credit := suite.newCredit("1000000")
	suite.Equal(domain.Unpaid, credit.Status)
	suite.Equal("Toko Maju", credit.CustomerName)

	_, err := suite.pay(credit.CreditRevenueID, "400000")
	suite.Require().NoError(err)
	stored, err := suite.services.Revenue.GetCreditRevenueByID(suite.ctx, credit.CreditRevenueID)
	suite.Require().NoError(err)
	suite.Equal(domain.Partial, stored.Status)
	suite.True(stored.PaidAmount.Equal(decimal.NewFromInt(400000)))

	payment, err := suite.pay(credit.CreditRevenueID, "600000")
	suite.Require().NoError(err)
	suite.Equal("Pembayaran Piutang - Toko Maju", payment.Transaction.Description)
	stored, err = suite.services.Revenue.GetCreditRevenueByID(suite.ctx, credit.CreditRevenueID)
	suite.Require().NoError(err)
	suite.Equal(domain.Paid, stored.Status)
	suite.True(stored.PaidAmount.Equal(stored.Amount))

	_, err = suite.pay(credit.CreditRevenueID, "1")
	suite.True(errors.Is(err, apperrors.ErrValidation))

	b := suite.balances()
	suite.True(b["102"].IsZero())
	suite.True(b["101"].Equal(decimal.NewFromInt(1000000)))
	suite.True(b["401"].Equal(decimal.NewFromInt(1000000)))
	suite.Equal(3, suite.journalCount())
}

func (suite *RevenueCycleTestSuite) TestOverpaymentLeavesStateUnchanged() {
	credit := suite.newCredit("100")
	_, err := suite.pay(credit.CreditRevenueID, "40")
	suite.Require().NoError(err)
	before := suite.journalCount()

	_, err = suite.pay(credit.CreditRevenueID, "70")

	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.Equal(before, suite.journalCount())
	stored, err := suite.services.Revenue.GetCreditRevenueByID(suite.ctx, credit.CreditRevenueID)
	suite.Require().NoError(err)
	suite.True(stored.PaidAmount.Equal(decimal.NewFromInt(40)))
	suite.Equal(domain.Partial, stored.Status)
	payments, err := suite.services.Revenue.ListReceivablePayments(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(payments, 1)
}

func (suite *RevenueCycleTestSuite) TestUnknownCredit() {
	_, err := suite.pay("missing", "10")
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *RevenueCycleTestSuite) TestConcurrentPaymentsNeverOverpay() {
	credit := suite.newCredit("100")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = suite.pay(credit.CreditRevenueID, "60")
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		suite.True(errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrConcurrency), err.Error())
	}
	suite.Equal(1, succeeded)
	stored, err := suite.services.Revenue.GetCreditRevenueByID(suite.ctx, credit.CreditRevenueID)
	suite.Require().NoError(err)
	suite.True(stored.PaidAmount.Equal(decimal.NewFromInt(60)))
}

func (suite *RevenueCycleTestSuite) TestLostVersionRaceRollsBack() {
	suite.build(fullChart, func(r portsrepo.RepositoryProvider) portsrepo.RepositoryProvider {
		r.RevenueRepo = conflictingRevenueRepo{r.RevenueRepo}
		return r
	})
	credit := suite.newCredit("100")
	before := suite.journalCount()

	_, err := suite.pay(credit.CreditRevenueID, "40")

	suite.True(errors.Is(err, apperrors.ErrConcurrency))
	suite.Equal(before, suite.journalCount())
	payments, err := suite.services.Revenue.ListReceivablePayments(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(payments)
}

func (suite *RevenueCycleTestSuite) TestMissingSalesRevenueAccountPersistsNothing() {
	suite.build(chartWithout401, nil)

	_, err := suite.services.Revenue.CreateCashRevenue(suite.ctx, dto.CreateCashRevenueRequest{
		Date: "2024-05-01", Amount: "10", Description: "Penjualan tunai",
	}, suite.cashier)

	suite.True(errors.Is(err, apperrors.ErrConfiguration))
	stored, err := suite.store.ListCashRevenues(suite.ctx, 0)
	suite.Require().NoError(err)
	suite.Empty(stored)
	suite.Zero(suite.journalCount())
}

func (suite *RevenueCycleTestSuite) TestOtherIncomeAndDashboard() {
	_, err := suite.services.Revenue.CreateOtherIncome(suite.ctx, dto.CreateOtherIncomeRequest{
		Date: "2024-05-02", Amount: "25.50", Description: "Bunga bank",
	}, suite.cashier)
	suite.Require().NoError(err)
	credit := suite.newCredit("100")
	_, err = suite.pay(credit.CreditRevenueID, "30")
	suite.Require().NoError(err)

	dash, err := suite.services.Reporting.GetDashboard(suite.ctx)
	suite.Require().NoError(err)

	suite.True(dash.TotalRevenue.Equal(decimal.RequireFromString("125.50")), dash.TotalRevenue.String())
	suite.True(dash.OutstandingReceivables.Equal(decimal.NewFromInt(70)))
	suite.True(dash.TotalCashIn.Equal(decimal.RequireFromString("55.50")))
}

func (suite *RevenueCycleTestSuite) TestAuditRecordedAfterCommit() {
	_, err := suite.services.Revenue.CreateOtherIncome(suite.ctx, dto.CreateOtherIncomeRequest{
		Date: "2024-05-02", Amount: "5", Description: "Bunga bank",
	}, suite.cashier)
	suite.Require().NoError(err)
	_, err = suite.pay("missing", "10")
	suite.Require().Error(err)

	suite.services.Audit.Close()
	records, err := suite.services.Audit.ListAuditTrail(suite.ctx, 0)
	suite.Require().NoError(err)

	entities := make([]string, 0, len(records))
	for _, r := range records {
		entities = append(entities, r.Entity)
	}
	suite.ElementsMatch([]string{domain.EntityCustomers, domain.EntityOtherIncomes}, entities)
}

func (suite *RevenueCycleTestSuite) TestCreditSalePartiallyCollected() {
	sale, err := suite.services.Revenue.CreateCreditRevenue(suite.ctx, dto.CreateCreditRevenueRequest{
		Date:       "2024-05-01",
		DueDate:    "2024-05-31",
		Amount:     "1000000",
		CustomerID: suite.customer.CustomerID,
	}, suite.cashier)
	suite.Require().NoError(err)
	suite.Equal(domain.RefCreditRevenue, sale.Journal.RefType)
	suite.Require().Len(sale.Journal.Lines, 2)
	suite.Equal(domain.ReceivableAccountCode, sale.Journal.Lines[0].AccountCode)
	suite.True(sale.Journal.Lines[0].Debit.Equal(decimal.NewFromInt(1000000)))
	suite.Equal(domain.SalesRevenueAccountCode, sale.Journal.Lines[1].AccountCode)
	suite.True(sale.Journal.Lines[1].Credit.Equal(decimal.NewFromInt(1000000)))

	payment, err := suite.pay(sale.Transaction.CreditRevenueID, "400000")
	suite.Require().NoError(err)
	suite.Equal(domain.RefReceivablePayment, payment.Journal.RefType)
	suite.Require().Len(payment.Journal.Lines, 2)
	suite.Equal(domain.CashAccountCode, payment.Journal.Lines[0].AccountCode)
	suite.True(payment.Journal.Lines[0].Debit.Equal(decimal.NewFromInt(400000)))
	suite.Equal(domain.ReceivableAccountCode, payment.Journal.Lines[1].AccountCode)
	suite.True(payment.Journal.Lines[1].Credit.Equal(decimal.NewFromInt(400000)))

	stored, err := suite.services.Revenue.GetCreditRevenueByID(suite.ctx, sale.Transaction.CreditRevenueID)
	suite.Require().NoError(err)
	suite.Equal(domain.Partial, stored.Status)
	suite.True(stored.PaidAmount.Equal(decimal.NewFromInt(400000)))
	suite.Equal(2, suite.journalCount())

	receivable, err := suite.services.ChartOfAccounts.LookupAccountByCode(suite.ctx, domain.ReceivableAccountCode)
	suite.Require().NoError(err)
	ledger, err := suite.services.Ledger.ComputeAccountLedger(suite.ctx, receivable.AccountID)
	suite.Require().NoError(err)

	suite.Require().Len(ledger.Entries, 2)
	suite.True(ledger.Entries[0].Balance.Equal(decimal.NewFromInt(1000000)))
	suite.True(ledger.Entries[1].Balance.Equal(decimal.NewFromInt(600000)))
	suite.True(ledger.CurrentBalance.Equal(decimal.NewFromInt(600000)))

	_, err = suite.services.Ledger.ComputeAccountLedger(suite.ctx, "missing")
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func TestRevenueCycleTestSuite(t *testing.T) {
	suite.Run(t, new(RevenueCycleTestSuite))
}
