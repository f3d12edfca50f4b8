package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_cycle_app/internal/core/services"
	"github.com/SscSPs/revenue_cycle_app/internal/dto"
	"github.com/SscSPs/revenue_cycle_app/internal/handlers"
	"github.com/SscSPs/revenue_cycle_app/internal/repositories/database/memory"
	"github.com/SscSPs/revenue_cycle_app/internal/seed"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// RevenueFlowTestSuite drives the API end to end over the in-memory store.
type RevenueFlowTestSuite struct {
	suite.Suite
	router     *gin.Engine
	services   *portssvc.ServiceContainer
	cashierTok string
	adminTok   string
	customerID string
}

func (suite *RevenueFlowTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.AuditTimeout = time.Second
	cfg.BalanceWorkers = 2

	repos := memory.NewRepositoryProvider(memory.NewStore())
	file, err := seed.LoadChartOfAccounts("../../configs/chart_of_accounts.yaml")
	suite.Require().NoError(err)
	_, err = seed.Apply(context.Background(), repos.TxManager, repos.AccountRepo, file, time.Now().UTC())
	suite.Require().NoError(err)

	suite.services = services.NewServiceContainer(cfg, repos, nil)
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, suite.services, nil)

	suite.cashierTok = signTestToken(suite.T(), "kasir-1", domain.RoleCashier)
	suite.adminTok = signTestToken(suite.T(), "admin-1", domain.RoleAdmin)

	w := suite.do(http.MethodPost, "/api/v1/customers", map[string]string{"name": "Toko Maju"}, suite.cashierTok)
	suite.Require().Equal(http.StatusCreated, w.Code)
	var customer domain.Customer
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &customer))
	suite.customerID = customer.CustomerID
}

func (suite *RevenueFlowTestSuite) TearDownTest() {
	suite.services.Audit.Close()
}

func (suite *RevenueFlowTestSuite) do(method, url string, body any, token string) *httptest.ResponseRecorder {
	raw := []byte(nil)
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		suite.Require().NoError(err)
	}
	req, _ := http.NewRequest(method, url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RevenueFlowTestSuite) TestCashRevenue_Created() {
	w := suite.do(http.MethodPost, "/api/v1/cash-revenues", map[string]any{
		"date":        "2024-05-01",
		"amount":      1500000,
		"description": "Penjualan tunai",
	}, suite.cashierTok)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.PostedResponse[domain.CashRevenue]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.Transaction.JournalID)
	suite.Equal(resp.Journal.JournalEntryID, *resp.Transaction.JournalID)
	suite.Equal("CASH-"+resp.Transaction.CashRevenueID, resp.Journal.Reference)
	suite.Require().Len(resp.Journal.Lines, 2)
	suite.Equal("101", resp.Journal.Lines[0].AccountCode)
	suite.Equal("401", resp.Journal.Lines[1].AccountCode)
	suite.True(resp.Journal.TotalDebit.Equal(decimal.NewFromInt(1500000)))
	suite.True(resp.Journal.TotalCredit.Equal(resp.Journal.TotalDebit))
}

func (suite *RevenueFlowTestSuite) TestCashRevenue_RejectsInvalidAmount() {
	for _, amount := range []any{0, -5, "abc", "0.00001", "123.456789", "1e25"} {
		w := suite.do(http.MethodPost, "/api/v1/cash-revenues", map[string]any{
			"date":        "2024-05-01",
			"amount":      amount,
			"description": "Penjualan tunai",
		}, suite.cashierTok)
		suite.Equal(http.StatusBadRequest, w.Code, "amount %v", amount)
	}

	w := suite.do(http.MethodGet, "/api/v1/journal-entries", nil, suite.cashierTok)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list dto.ListJournalEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Empty(list.JournalEntries)
}

func (suite *RevenueFlowTestSuite) TestCreditThenPayments() {
	w := suite.do(http.MethodPost, "/api/v1/credit-revenues", map[string]any{
		"date":       "2024-05-01",
		"dueDate":    "2024-05-31",
		"amount":     "100",
		"customerId": suite.customerID,
	}, suite.cashierTok)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var credit dto.PostedResponse[domain.CreditRevenue]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &credit))
	suite.Equal("Penjualan Kredit", credit.Journal.Description)
	creditID := credit.Transaction.CreditRevenueID

	w = suite.do(http.MethodPost, "/api/v1/receivable-payments", map[string]any{
		"creditId": creditID,
		"date":     "2024-05-10",
		"amount":   "40",
	}, suite.cashierTok)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var payment dto.PostedResponse[domain.ReceivablePayment]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &payment))
	suite.Equal("Pembayaran Piutang - Toko Maju", payment.Journal.Description)

	w = suite.do(http.MethodPost, "/api/v1/receivable-payments", map[string]any{
		"creditId": creditID,
		"date":     "2024-05-11",
		"amount":   "70",
	}, suite.cashierTok)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/credit-revenues/"+creditID, nil, suite.cashierTok)
	suite.Require().Equal(http.StatusOK, w.Code)
	var stored domain.CreditRevenue
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &stored))
	suite.Equal(domain.Partial, stored.Status)
	suite.True(stored.PaidAmount.Equal(decimal.NewFromInt(40)))

	w = suite.do(http.MethodGet, "/api/v1/dashboard", nil, suite.cashierTok)
	suite.Require().Equal(http.StatusOK, w.Code)
	var dash domain.DashboardSummary
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &dash))
	suite.True(dash.TotalRevenue.Equal(decimal.NewFromInt(100)))
	suite.True(dash.OutstandingReceivables.Equal(decimal.NewFromInt(60)))
	suite.True(dash.TotalCashIn.Equal(decimal.NewFromInt(40)))
}

func (suite *RevenueFlowTestSuite) TestUnknownCredit_NotFound() {
	w := suite.do(http.MethodPost, "/api/v1/receivable-payments", map[string]any{
		"creditId": "does-not-exist",
		"date":     "2024-05-10",
		"amount":   "10",
	}, suite.cashierTok)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/credit-revenues/does-not-exist", nil, suite.cashierTok)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RevenueFlowTestSuite) TestCashierCannotCreateAccount() {
	body := map[string]string{"code": "106", "name": "Kas Kecil", "accountType": "ASSET"}

	w := suite.do(http.MethodPost, "/api/v1/accounts", body, suite.cashierTok)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/accounts", body, suite.adminTok)
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/accounts", body, suite.adminTok)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *RevenueFlowTestSuite) TestLedgerAndBalances() {
	suite.Require().Equal(http.StatusCreated, suite.do(http.MethodPost, "/api/v1/other-incomes", map[string]any{
		"date": "2024-05-02", "amount": "25", "description": "Bunga bank",
	}, suite.cashierTok).Code)
	suite.Require().Equal(http.StatusCreated, suite.do(http.MethodPost, "/api/v1/cash-revenues", map[string]any{
		"date": "2024-05-03", "amount": "75", "description": "Penjualan tunai",
	}, suite.cashierTok).Code)

	w := suite.do(http.MethodGet, "/api/v1/accounts/code/101", nil, suite.cashierTok)
	suite.Require().Equal(http.StatusOK, w.Code)
	var cash dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cash))

	w = suite.do(http.MethodGet, "/api/v1/ledger/accounts/"+cash.AccountID, nil, suite.cashierTok)
	suite.Require().Equal(http.StatusOK, w.Code)
	var ledger domain.AccountLedger
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &ledger))
	suite.Require().Len(ledger.Entries, 2)
	suite.True(ledger.Entries[0].Balance.Equal(decimal.NewFromInt(25)))
	suite.True(ledger.Entries[1].Balance.Equal(decimal.NewFromInt(100)))
	suite.True(ledger.CurrentBalance.Equal(decimal.NewFromInt(100)))

	w = suite.do(http.MethodGet, "/api/v1/ledger/balances", nil, suite.cashierTok)
	suite.Require().Equal(http.StatusOK, w.Code)
	var balances []domain.AccountBalance
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &balances))
	byCode := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		byCode[b.Code] = b.Balance
	}
	suite.True(byCode["101"].Equal(decimal.NewFromInt(100)))
	suite.True(byCode["401"].Equal(decimal.NewFromInt(75)))
	suite.True(byCode["402"].Equal(decimal.NewFromInt(25)))
	suite.True(byCode["102"].IsZero())
}

func (suite *RevenueFlowTestSuite) TestManualJournal() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/code/501", nil, suite.adminTok)
	suite.Require().Equal(http.StatusOK, w.Code)
	var expense dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &expense))
	w = suite.do(http.MethodGet, "/api/v1/accounts/code/101", nil, suite.adminTok)
	suite.Require().Equal(http.StatusOK, w.Code)
	var cash dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cash))

	body := map[string]any{
		"date":        "2024-05-04",
		"description": "Bayar gaji",
		"lines": []map[string]any{
			{"accountId": expense.AccountID, "debit": "500"},
			{"accountId": cash.AccountID, "credit": "500"},
		},
	}

	w = suite.do(http.MethodPost, "/api/v1/journal-entries", body, suite.cashierTok)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/journal-entries", body, suite.adminTok)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var entry dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entry))
	suite.Equal(domain.RefManual, entry.RefType)
	suite.Nil(entry.RefID)

	body["lines"] = []map[string]any{
		{"accountId": expense.AccountID, "debit": "500"},
		{"accountId": cash.AccountID, "credit": "499"},
	}
	w = suite.do(http.MethodPost, "/api/v1/journal-entries", body, suite.adminTok)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestRevenueFlowTestSuite(t *testing.T) {
	suite.Run(t, new(RevenueFlowTestSuite))
}
