//go:build integration

package pgsql_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/revenue_cycle_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/revenue_cycle_app/internal/utils/pagination"
	"github.com/SscSPs/revenue_cycle_app/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PgsqlRepositorySuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
	now       time.Time
}

func TestPgsqlRepositorySuite(t *testing.T) {
	suite.Run(t, new(PgsqlRepositorySuite))
}

func (s *PgsqlRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("revenue_cycle_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "..", "migrations"))
	s.Require().NoError(err)
	s.Require().NoError(database.MigrateUp("file://"+migrationsDir, dsn, logger))

	s.pool, err = database.NewPgxPool(s.ctx, dsn, logger)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool)
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PgsqlRepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.NoError(s.container.Terminate(s.ctx))
	}
}

func (s *PgsqlRepositorySuite) audit() domain.AuditFields {
	return domain.AuditFields{CreatedAt: s.now, CreatedBy: "tester", LastUpdatedAt: s.now, LastUpdatedBy: "tester"}
}

func (s *PgsqlRepositorySuite) newAccount(code string, t domain.AccountType) domain.Account {
	acc := domain.Account{AccountID: uuid.NewString(), Code: code, Name: "Akun " + code, AccountType: t, AuditFields: s.audit()}
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, acc))
	return acc
}

func (s *PgsqlRepositorySuite) newCustomer(name string) domain.Customer {
	c := domain.Customer{CustomerID: uuid.NewString(), Name: name, AuditFields: s.audit()}
	s.Require().NoError(s.repos.CustomerRepo.SaveCustomer(s.ctx, c))
	return c
}

func (s *PgsqlRepositorySuite) entry(ref string, date time.Time, lines ...domain.JournalLine) domain.JournalEntry {
	id := uuid.NewString()
	for i := range lines {
		lines[i].JournalLineID = uuid.NewString()
		lines[i].JournalEntryID = id
		lines[i].Seq = i + 1
		lines[i].CreatedAt = s.now
	}
	return domain.JournalEntry{
		JournalEntryID: id, Date: date, Description: ref, Reference: ref + "-" + id,
		RefType: domain.RefManual, Lines: lines, AuditFields: s.audit(),
	}
}

func (s *PgsqlRepositorySuite) TestAccounts_DuplicateCodeAndUpsert() {
	acc := s.newAccount("901", domain.Asset)

	err := s.repos.AccountRepo.SaveAccount(s.ctx, domain.Account{
		AccountID: uuid.NewString(), Code: "901", Name: "dup", AccountType: domain.Asset, AuditFields: s.audit(),
	})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	created, err := s.repos.AccountRepo.UpsertAccountByCode(s.ctx, domain.Account{
		AccountID: uuid.NewString(), Code: "901", Name: "Renamed", AccountType: domain.Asset, AuditFields: s.audit(),
	})
	s.Require().NoError(err)
	s.False(created)

	got, err := s.repos.AccountRepo.FindAccountByCode(s.ctx, "901")
	s.Require().NoError(err)
	s.Equal(acc.AccountID, got.AccountID)
	s.Equal("Renamed", got.Name)

	_, err = s.repos.AccountRepo.FindAccountByCode(s.ctx, "does-not-exist")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PgsqlRepositorySuite) TestRunInTx_RollsBackEverything() {
	cash := s.newAccount("911", domain.Asset)
	customerID := uuid.NewString()

	err := s.repos.TxManager.RunInTx(s.ctx, func(txCtx context.Context) error {
		if err := s.repos.CustomerRepo.SaveCustomer(txCtx, domain.Customer{CustomerID: customerID, Name: "Ghost", AuditFields: s.audit()}); err != nil {
			return err
		}
		e := s.entry("ROLLBACK", s.now, domain.JournalLine{AccountID: cash.AccountID, Debit: decimal.NewFromInt(1), Credit: decimal.Zero})
		if err := s.repos.JournalRepo.SaveJournalEntry(txCtx, e); err != nil {
			return err
		}
		return apperrors.ErrConfiguration
	})
	s.ErrorIs(err, apperrors.ErrConfiguration)

	_, err = s.repos.CustomerRepo.FindCustomerByID(s.ctx, customerID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	lines, err := s.repos.JournalRepo.ListLinesByAccountID(s.ctx, cash.AccountID)
	s.Require().NoError(err)
	s.Empty(lines)
}

func (s *PgsqlRepositorySuite) TestCreditPayment_VersionedUpdate() {
	customer := s.newCustomer("Budi")
	credit := domain.CreditRevenue{
		CreditRevenueID: uuid.NewString(), Date: s.now, DueDate: s.now.AddDate(0, 0, 30),
		Description: "Penjualan Kredit", Amount: decimal.NewFromInt(1000), PaidAmount: decimal.Zero,
		Status: domain.Unpaid, CustomerID: customer.CustomerID, Version: 1, AuditFields: s.audit(),
	}
	s.Require().NoError(s.repos.RevenueRepo.SaveCreditRevenue(s.ctx, credit))

	err := s.repos.TxManager.RunInTx(s.ctx, func(txCtx context.Context) error {
		locked, err := s.repos.RevenueRepo.FindCreditRevenueForUpdate(txCtx, credit.CreditRevenueID)
		if err != nil {
			return err
		}
		s.Equal("Budi", locked.CustomerName)
		return s.repos.RevenueRepo.UpdateCreditRevenuePayment(txCtx, credit.CreditRevenueID, locked.Version,
			decimal.NewFromInt(400), domain.Partial, "tester", s.now)
	})
	s.Require().NoError(err)

	err = s.repos.RevenueRepo.UpdateCreditRevenuePayment(s.ctx, credit.CreditRevenueID, 1,
		decimal.NewFromInt(900), domain.Partial, "tester", s.now)
	s.ErrorIs(err, apperrors.ErrConcurrency)

	got, err := s.repos.RevenueRepo.FindCreditRevenueByID(s.ctx, credit.CreditRevenueID)
	s.Require().NoError(err)
	s.True(got.PaidAmount.Equal(decimal.NewFromInt(400)))
	s.Equal(domain.Partial, got.Status)
	s.Equal(2, got.Version)
}

func (s *PgsqlRepositorySuite) TestCreditPayment_ConcurrentLocksSerialise() {
	customer := s.newCustomer("Sari")
	credit := domain.CreditRevenue{
		CreditRevenueID: uuid.NewString(), Date: s.now, DueDate: s.now,
		Description: "Penjualan Kredit", Amount: decimal.NewFromInt(100), PaidAmount: decimal.Zero,
		Status: domain.Unpaid, CustomerID: customer.CustomerID, Version: 1, AuditFields: s.audit(),
	}
	s.Require().NoError(s.repos.RevenueRepo.SaveCreditRevenue(s.ctx, credit))

	pay := func() error {
		return s.repos.TxManager.RunInTx(s.ctx, func(txCtx context.Context) error {
			locked, err := s.repos.RevenueRepo.FindCreditRevenueForUpdate(txCtx, credit.CreditRevenueID)
			if err != nil {
				return err
			}
			newPaid, status, err := locked.ApplyPayment(decimal.NewFromInt(70))
			if err != nil {
				return err
			}
			return s.repos.RevenueRepo.UpdateCreditRevenuePayment(txCtx, locked.CreditRevenueID, locked.Version,
				newPaid, status, "tester", s.now)
		})
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = pay()
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.ErrorIs(err, apperrors.ErrValidation)
		}
	}
	s.Equal(1, succeeded)

	got, err := s.repos.RevenueRepo.FindCreditRevenueByID(s.ctx, credit.CreditRevenueID)
	s.Require().NoError(err)
	s.True(got.PaidAmount.Equal(decimal.NewFromInt(70)))
}

func (s *PgsqlRepositorySuite) TestJournal_LinesInPostingOrderAndPagination() {
	cash := s.newAccount("921", domain.Asset)
	sales := s.newAccount("922", domain.Revenue)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		e := s.entry("PAGE", day,
			domain.JournalLine{AccountID: cash.AccountID, Debit: decimal.NewFromInt(int64(i + 1)), Credit: decimal.Zero},
			domain.JournalLine{AccountID: sales.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(int64(i + 1))},
		)
		s.Require().NoError(s.repos.JournalRepo.SaveJournalEntry(s.ctx, e))
		ids = append(ids, e.JournalEntryID)
	}

	lines, err := s.repos.JournalRepo.ListLinesByAccountID(s.ctx, cash.AccountID)
	s.Require().NoError(err)
	s.Require().Len(lines, 3)
	for i, l := range lines {
		s.Equal(ids[i], l.JournalEntryID)
		s.Equal("921", l.AccountCode)
	}

	first, err := s.repos.JournalRepo.ListJournalEntries(s.ctx, 2, nil)
	s.Require().NoError(err)
	s.Require().Len(first, 2)
	s.Len(first[0].Lines, 2)

	last := first[len(first)-1]
	cursor := &pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.JournalEntryID}
	next, err := s.repos.JournalRepo.ListJournalEntries(s.ctx, 2, cursor)
	s.Require().NoError(err)
	for _, e := range next {
		s.NotEqual(first[0].JournalEntryID, e.JournalEntryID)
		s.NotEqual(first[1].JournalEntryID, e.JournalEntryID)
	}

	debit, credit, err := s.repos.ReportingRepo.SumByAccountCode(s.ctx, "921")
	s.Require().NoError(err)
	s.True(debit.Equal(decimal.NewFromInt(6)))
	s.True(credit.IsZero())
}

func (s *PgsqlRepositorySuite) TestAudit_AppendAndList() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.repos.AuditRepo.AppendAudit(s.ctx, domain.AuditRecord{
			AuditID: uuid.NewString(), UserID: "tester", Action: domain.AuditCreate,
			Entity: domain.EntityCustomers, EntityID: uuid.NewString(), Description: "Customer baru",
			CreatedAt: s.now.Add(time.Duration(i) * time.Second),
		}))
	}
	records, err := s.repos.AuditRepo.ListAudit(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.True(!records[0].CreatedAt.Before(records[1].CreatedAt))
}
