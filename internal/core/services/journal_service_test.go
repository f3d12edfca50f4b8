package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_cycle_app/internal/core/services"
	"github.com/SscSPs/revenue_cycle_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockResolver    *MockFixedAccountResolver
	mockAudit       *MockAuditSink
	service         portssvc.JournalSvcFacade
	fixed           domain.FixedAccounts
	expenseAccount  domain.Account
	admin           domain.Caller
	cashier         domain.Caller
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockResolver = new(MockFixedAccountResolver)
	suite.mockAudit = new(MockAuditSink)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockResolver, passThroughTx{}, suite.mockAudit)

	account := func(code, name string, t domain.AccountType) domain.Account {
		return domain.Account{AccountID: uuid.NewString(), Code: code, Name: name, AccountType: t}
	}
	suite.fixed = domain.FixedAccounts{
		Cash:         account(domain.CashAccountCode, "Kas", domain.Asset),
		Receivable:   account(domain.ReceivableAccountCode, "Piutang Usaha", domain.Asset),
		SalesRevenue: account(domain.SalesRevenueAccountCode, "Pendapatan Penjualan", domain.Revenue),
		OtherIncome:  account(domain.OtherIncomeAccountCode, "Pendapatan Lain-lain", domain.Revenue),
	}
	suite.expenseAccount = account("501", "Beban Gaji", domain.Expense)
	suite.admin = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	suite.cashier = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleCashier}
}

// assertTwoLine checks the shape every automatic entry must have.
func (suite *JournalServiceTestSuite) assertTwoLine(entry *domain.JournalEntry, debit, credit domain.Account, amount decimal.Decimal) {
	suite.Require().NotNil(entry)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(debit.AccountID, entry.Lines[0].AccountID)
	suite.True(entry.Lines[0].Debit.Equal(amount))
	suite.True(entry.Lines[0].Credit.IsZero())
	suite.Equal(credit.AccountID, entry.Lines[1].AccountID)
	suite.True(entry.Lines[1].Credit.Equal(amount))
	suite.True(entry.Lines[1].Debit.IsZero())
	suite.True(entry.IsBalanced())
	suite.Equal(1, entry.Lines[0].Seq)
	suite.Equal(2, entry.Lines[1].Seq)
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestAutomaticRecipes() {
	ctx := context.Background()
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"1500000.50", "0.0001", "9999999999999999.9999"} {
		suite.assertRecipesPostAmount(ctx, date, decimal.RequireFromString(raw))
	}
}

func (suite *JournalServiceTestSuite) assertRecipesPostAmount(ctx context.Context, date time.Time, amount decimal.Decimal) {
	credit := domain.CreditRevenue{CreditRevenueID: uuid.NewString(), CustomerName: "Toko Maju", Amount: amount, Date: date}

	tests := []struct {
		name        string
		post        func() (*domain.JournalEntry, error)
		debit       domain.Account
		credit      domain.Account
		refType     domain.RefType
		description string
	}{
		{
			name: "cash revenue",
			post: func() (*domain.JournalEntry, error) {
				return suite.service.PostCashRevenueJournal(ctx, domain.CashRevenue{CashRevenueID: "c1", Date: date, Amount: amount})
			},
			debit: suite.fixed.Cash, credit: suite.fixed.SalesRevenue,
			refType: domain.RefCashRevenue, description: services.DefaultCashRevenueDescription,
		},
		{
			name: "credit revenue",
			post: func() (*domain.JournalEntry, error) {
				return suite.service.PostCreditRevenueJournal(ctx, credit)
			},
			debit: suite.fixed.Receivable, credit: suite.fixed.SalesRevenue,
			refType: domain.RefCreditRevenue, description: services.DefaultCreditRevenueDescription,
		},
		{
			name: "receivable payment",
			post: func() (*domain.JournalEntry, error) {
				return suite.service.PostReceivablePaymentJournal(ctx,
					domain.ReceivablePayment{PaymentID: "p1", CreditID: credit.CreditRevenueID, Date: date, Amount: amount}, credit)
			},
			debit: suite.fixed.Cash, credit: suite.fixed.Receivable,
			refType: domain.RefReceivablePayment, description: "Pembayaran Piutang - Toko Maju",
		},
		{
			name: "other income",
			post: func() (*domain.JournalEntry, error) {
				return suite.service.PostOtherIncomeJournal(ctx, domain.OtherIncome{OtherIncomeID: "o1", Date: date, Amount: amount})
			},
			debit: suite.fixed.Cash, credit: suite.fixed.OtherIncome,
			refType: domain.RefOtherIncome, description: services.DefaultOtherIncomeDescription,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name+" "+amount.String(), func() {
			suite.mockResolver.On("FixedAccounts", ctx).Return(suite.fixed, nil).Once()
			suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

			entry, err := tt.post()

			suite.Require().NoError(err)
			suite.assertTwoLine(entry, tt.debit, tt.credit, amount)
			suite.Equal(tt.refType, entry.RefType)
			suite.Equal(tt.description, entry.Description)
			suite.Require().NotNil(entry.RefID)
			suite.Equal(domain.BuildReference(tt.refType, *entry.RefID), entry.Reference)
			suite.mockJournalRepo.AssertExpectations(suite.T())
		})
	}
}

func (suite *JournalServiceTestSuite) TestCashRevenueKeepsGivenDescription() {
	ctx := context.Background()
	suite.mockResolver.On("FixedAccounts", ctx).Return(suite.fixed, nil).Once()
	suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.PostCashRevenueJournal(ctx, domain.CashRevenue{
		CashRevenueID: "c1", Amount: decimal.NewFromInt(10), Description: "Penjualan kue",
	})

	suite.Require().NoError(err)
	suite.Equal("Penjualan kue", entry.Description)
	suite.Equal("CASH-c1", entry.Reference)
}

func (suite *JournalServiceTestSuite) TestMissingFixedAccountStopsPosting() {
	ctx := context.Background()
	cfgErr := fmt.Errorf("%w: akun 401 tidak ditemukan di bagan akun", apperrors.ErrConfiguration)
	suite.mockResolver.On("FixedAccounts", ctx).Return(domain.FixedAccounts{}, cfgErr).Once()

	entry, err := suite.service.PostCashRevenueJournal(ctx, domain.CashRevenue{CashRevenueID: "c1", Amount: decimal.NewFromInt(10)})

	suite.Nil(entry)
	suite.True(errors.Is(err, apperrors.ErrConfiguration))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestNonPositiveAmountRejected() {
	ctx := context.Background()
	suite.mockResolver.On("FixedAccounts", ctx).Return(suite.fixed, nil)

	_, err := suite.service.PostOtherIncomeJournal(ctx, domain.OtherIncome{OtherIncomeID: "o1", Amount: decimal.Zero})

	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestAmountOutsideStorageBoundsRejected() {
	ctx := context.Background()
	suite.mockResolver.On("FixedAccounts", ctx).Return(suite.fixed, nil)

	for _, raw := range []string{"0.00001", "10000000000000000"} {
		_, err := suite.service.PostCashRevenueJournal(ctx, domain.CashRevenue{CashRevenueID: "c1", Amount: decimal.RequireFromString(raw)})
		suite.True(errors.Is(err, apperrors.ErrValidation), "amount %s", raw)
	}
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) manualRequest(debit, credit string) dto.CreateManualJournalRequest {
	return dto.CreateManualJournalRequest{
		Date:        "2024-05-04",
		Description: "Bayar gaji",
		Lines: []dto.ManualJournalLineRequest{
			{AccountID: suite.expenseAccount.AccountID, Debit: dto.Amount(debit)},
			{AccountID: suite.fixed.Cash.AccountID, Credit: dto.Amount(credit)},
		},
	}
}

func (suite *JournalServiceTestSuite) TestCreateManualJournal_Success() {
	ctx := context.Background()
	accounts := map[string]domain.Account{
		suite.expenseAccount.AccountID: suite.expenseAccount,
		suite.fixed.Cash.AccountID:     suite.fixed.Cash,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.expenseAccount.AccountID, suite.fixed.Cash.AccountID}).
		Return(accounts, nil).Once()
	suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, suite.admin, domain.AuditCreate, domain.EntityJournalEntries, mock.Anything, "Jurnal manual: Bayar gaji").Once()

	// 0.01 apart is still accepted.
	entry, err := suite.service.CreateManualJournal(ctx, suite.manualRequest("500.00", "499.99"), suite.admin)

	suite.Require().NoError(err)
	suite.Equal(domain.RefManual, entry.RefType)
	suite.Nil(entry.RefID)
	suite.Equal("MANUAL-"+entry.JournalEntryID, entry.Reference)
	suite.Equal("501", entry.Lines[0].AccountCode)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateManualJournal_Rejections() {
	ctx := context.Background()

	_, err := suite.service.CreateManualJournal(ctx, suite.manualRequest("500", "500"), suite.cashier)
	suite.True(errors.Is(err, apperrors.ErrForbidden), "cashier")

	_, err = suite.service.CreateManualJournal(ctx, suite.manualRequest("500", "499.98"), suite.admin)
	suite.True(errors.Is(err, apperrors.ErrValidation), "imbalance beyond tolerance")

	_, err = suite.service.CreateManualJournal(ctx, suite.manualRequest("", ""), suite.admin)
	suite.True(errors.Is(err, apperrors.ErrValidation), "empty lines")

	_, err = suite.service.CreateManualJournal(ctx, suite.manualRequest("-1", "-1"), suite.admin)
	suite.True(errors.Is(err, apperrors.ErrValidation), "negative amounts")

	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateManualJournal_UnknownAccount() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Account{suite.fixed.Cash.AccountID: suite.fixed.Cash}, nil).Once()

	_, err := suite.service.CreateManualJournal(ctx, suite.manualRequest("500", "500"), suite.admin)

	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListJournalEntries_Paginates() {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	entries := make([]domain.JournalEntry, 3)
	for i := range entries {
		entries[i] = domain.JournalEntry{
			JournalEntryID: uuid.NewString(),
			Date:           base.AddDate(0, 0, -i),
			AuditFields:    domain.AuditFields{CreatedAt: base},
		}
	}
	suite.mockJournalRepo.On("ListJournalEntries", ctx, 3, mock.Anything).Return(entries, nil).Once()

	resp, err := suite.service.ListJournalEntries(ctx, dto.ListJournalEntriesParams{Limit: 2})

	suite.Require().NoError(err)
	suite.Len(resp.JournalEntries, 2)
	suite.Require().NotNil(resp.NextToken)

	_, err = suite.service.ListJournalEntries(ctx, dto.ListJournalEntriesParams{Limit: 2, NextToken: "not-a-token"})
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
