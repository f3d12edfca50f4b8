package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/revenue_cycle_app/internal/models"
	"github.com/SscSPs/revenue_cycle_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxRevenueRepository struct {
	BaseRepository
}

// newPgxRevenueRepository creates the repository for the four revenue-cycle transaction tables.
func newPgxRevenueRepository(pool *pgxpool.Pool) portsrepo.RevenueRepositoryFacade {
	return &PgxRevenueRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RevenueRepositoryFacade = (*PgxRevenueRepository)(nil)

func saveError(kind, id string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s %s already exists", apperrors.ErrDuplicate, kind, id)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %s %s references a missing row", apperrors.ErrNotFound, kind, id)
	default:
		return fmt.Errorf("failed to save %s %s: %w", kind, id, err)
	}
}

// setJournal backfills journal_entry_id on one row of table.
func (r *PgxRevenueRepository) setJournal(ctx context.Context, table, idColumn, id, journalEntryID string) error {
	query := fmt.Sprintf(`UPDATE %s SET journal_entry_id = $1 WHERE %s = $2;`, table, idColumn)
	tag, err := r.db(ctx).Exec(ctx, query, journalEntryID, id)
	if err != nil {
		return fmt.Errorf("failed to link journal entry to %s %s: %w", table, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, table, id)
	}
	return nil
}

// limitClause appends a LIMIT when limit is positive.
func limitClause(query string, limit int, args []any) (string, []any) {
	if limit <= 0 {
		return query, args
	}
	args = append(args, limit)
	return query + fmt.Sprintf(` LIMIT $%d`, len(args)), args
}

// --- cash revenues ---

const cashRevenueColumns = `cash_revenue_id, revenue_date, description, amount, customer_id, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxRevenueRepository) SaveCashRevenue(ctx context.Context, revenue domain.CashRevenue) error {
	m := mapping.ToModelCashRevenue(revenue)
	query := `INSERT INTO cash_revenues (` + cashRevenueColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.CashRevenueID, m.RevenueDate, m.Description, m.Amount, m.CustomerID, m.JournalID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return saveError("cash revenue", m.CashRevenueID, err)
	}
	return nil
}

func (r *PgxRevenueRepository) SetCashRevenueJournal(ctx context.Context, cashRevenueID, journalEntryID string) error {
	return r.setJournal(ctx, "cash_revenues", "cash_revenue_id", cashRevenueID, journalEntryID)
}

func (r *PgxRevenueRepository) ListCashRevenues(ctx context.Context, limit int) ([]domain.CashRevenue, error) {
	query, args := limitClause(`SELECT `+cashRevenueColumns+` FROM cash_revenues ORDER BY revenue_date DESC, created_at DESC`, limit, nil)
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash revenues: %w", err)
	}
	defer rows.Close()

	revenues := []domain.CashRevenue{}
	for rows.Next() {
		var m models.CashRevenue
		if err := rows.Scan(&m.CashRevenueID, &m.RevenueDate, &m.Description, &m.Amount, &m.CustomerID, &m.JournalID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan cash revenue row: %w", err)
		}
		revenues = append(revenues, mapping.ToDomainCashRevenue(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash revenue rows: %w", err)
	}
	return revenues, nil
}

// --- credit revenues ---

const creditRevenueInsertColumns = `credit_revenue_id, revenue_date, due_date, description, amount, paid_amount, status,
	customer_id, journal_entry_id, version, created_at, created_by, last_updated_at, last_updated_by`

const creditRevenueSelect = `
	SELECT cr.credit_revenue_id, cr.revenue_date, cr.due_date, cr.description, cr.amount, cr.paid_amount, cr.status,
	       cr.customer_id, c.name, cr.journal_entry_id, cr.version,
	       cr.created_at, cr.created_by, cr.last_updated_at, cr.last_updated_by
	FROM credit_revenues cr
	JOIN customers c ON c.customer_id = cr.customer_id
`

func scanCreditRevenue(row rowScanner) (domain.CreditRevenue, error) {
	var m models.CreditRevenue
	err := row.Scan(
		&m.CreditRevenueID,
		&m.RevenueDate,
		&m.DueDate,
		&m.Description,
		&m.Amount,
		&m.PaidAmount,
		&m.Status,
		&m.CustomerID,
		&m.CustomerName,
		&m.JournalID,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.CreditRevenue{}, err
	}
	return mapping.ToDomainCreditRevenue(m), nil
}

func (r *PgxRevenueRepository) SaveCreditRevenue(ctx context.Context, revenue domain.CreditRevenue) error {
	m := mapping.ToModelCreditRevenue(revenue)
	query := `INSERT INTO credit_revenues (` + creditRevenueInsertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.CreditRevenueID, m.RevenueDate, m.DueDate, m.Description, m.Amount, m.PaidAmount, m.Status,
		m.CustomerID, m.JournalID, m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return saveError("credit revenue", m.CreditRevenueID, err)
	}
	return nil
}

func (r *PgxRevenueRepository) SetCreditRevenueJournal(ctx context.Context, creditRevenueID, journalEntryID string) error {
	return r.setJournal(ctx, "credit_revenues", "credit_revenue_id", creditRevenueID, journalEntryID)
}

func (r *PgxRevenueRepository) findCredit(ctx context.Context, creditRevenueID, suffix string) (*domain.CreditRevenue, error) {
	query := creditRevenueSelect + ` WHERE cr.credit_revenue_id = $1` + suffix
	credit, err := scanCreditRevenue(r.db(ctx).QueryRow(ctx, query, creditRevenueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: credit revenue %s", apperrors.ErrNotFound, creditRevenueID)
		}
		return nil, fmt.Errorf("failed to find credit revenue %s: %w", creditRevenueID, err)
	}
	return &credit, nil
}

func (r *PgxRevenueRepository) FindCreditRevenueByID(ctx context.Context, creditRevenueID string) (*domain.CreditRevenue, error) {
	credit, err := r.findCredit(ctx, creditRevenueID, "")
	if err != nil {
		return nil, err
	}
	payments, err := r.listPayments(ctx, &creditRevenueID)
	if err != nil {
		return nil, err
	}
	credit.Payments = payments
	return credit, nil
}

// FindCreditRevenueForUpdate locks the credit row until the surrounding transaction ends.
func (r *PgxRevenueRepository) FindCreditRevenueForUpdate(ctx context.Context, creditRevenueID string) (*domain.CreditRevenue, error) {
	return r.findCredit(ctx, creditRevenueID, " FOR UPDATE OF cr")
}

func (r *PgxRevenueRepository) UpdateCreditRevenuePayment(ctx context.Context, creditRevenueID string, expectedVersion int,
	paidAmount decimal.Decimal, status domain.ReceivableStatus, userID string, now time.Time) error {
	query := `
		UPDATE credit_revenues
		SET paid_amount = $1, status = $2, version = version + 1, last_updated_at = $3, last_updated_by = $4
		WHERE credit_revenue_id = $5 AND version = $6;
	`
	tag, err := r.db(ctx).Exec(ctx, query, paidAmount, string(status), now, userID, creditRevenueID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update payment state of credit revenue %s: %w", creditRevenueID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: credit revenue %s was modified concurrently", apperrors.ErrConcurrency, creditRevenueID)
	}
	return nil
}

func (r *PgxRevenueRepository) ListCreditRevenues(ctx context.Context) ([]domain.CreditRevenue, error) {
	query := creditRevenueSelect + ` ORDER BY cr.revenue_date DESC, cr.created_at DESC`
	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit revenues: %w", err)
	}
	defer rows.Close()

	credits := []domain.CreditRevenue{}
	for rows.Next() {
		credit, err := scanCreditRevenue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit revenue row: %w", err)
		}
		credits = append(credits, credit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit revenue rows: %w", err)
	}
	rows.Close()

	payments, err := r.listPayments(ctx, nil)
	if err != nil {
		return nil, err
	}
	byCredit := make(map[string][]domain.ReceivablePayment)
	for _, p := range payments {
		byCredit[p.CreditID] = append(byCredit[p.CreditID], p)
	}
	for i := range credits {
		credits[i].Payments = byCredit[credits[i].CreditRevenueID]
	}
	return credits, nil
}

func (r *PgxRevenueRepository) SumOutstandingReceivables(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount - paid_amount), 0) FROM credit_revenues WHERE status <> 'PAID';`
	var total decimal.Decimal
	if err := r.db(ctx).QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum outstanding receivables: %w", err)
	}
	return total, nil
}

// --- receivable payments ---

const paymentColumns = `payment_id, credit_revenue_id, payment_date, description, amount, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxRevenueRepository) SaveReceivablePayment(ctx context.Context, payment domain.ReceivablePayment) error {
	m := mapping.ToModelReceivablePayment(payment)
	query := `INSERT INTO receivable_payments (` + paymentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.PaymentID, m.CreditID, m.PaymentDate, m.Description, m.Amount, m.JournalID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return saveError("receivable payment", m.PaymentID, err)
	}
	return nil
}

func (r *PgxRevenueRepository) SetReceivablePaymentJournal(ctx context.Context, paymentID, journalEntryID string) error {
	return r.setJournal(ctx, "receivable_payments", "payment_id", paymentID, journalEntryID)
}

func (r *PgxRevenueRepository) ListReceivablePayments(ctx context.Context) ([]domain.ReceivablePayment, error) {
	return r.listPayments(ctx, nil)
}

// listPayments lists payments newest first, optionally restricted to one credit sale.
func (r *PgxRevenueRepository) listPayments(ctx context.Context, creditRevenueID *string) ([]domain.ReceivablePayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM receivable_payments`
	args := []any{}
	if creditRevenueID != nil {
		query += ` WHERE credit_revenue_id = $1`
		args = append(args, *creditRevenueID)
	}
	query += ` ORDER BY payment_date DESC, created_at DESC`

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list receivable payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.ReceivablePayment{}
	for rows.Next() {
		var m models.ReceivablePayment
		if err := rows.Scan(&m.PaymentID, &m.CreditID, &m.PaymentDate, &m.Description, &m.Amount, &m.JournalID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan receivable payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainReceivablePayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receivable payment rows: %w", err)
	}
	return payments, nil
}

// --- other incomes ---

const otherIncomeColumns = `other_income_id, income_date, description, amount, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxRevenueRepository) SaveOtherIncome(ctx context.Context, income domain.OtherIncome) error {
	m := mapping.ToModelOtherIncome(income)
	query := `INSERT INTO other_incomes (` + otherIncomeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.db(ctx).Exec(ctx, query,
		m.OtherIncomeID, m.IncomeDate, m.Description, m.Amount, m.JournalID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return saveError("other income", m.OtherIncomeID, err)
	}
	return nil
}

func (r *PgxRevenueRepository) SetOtherIncomeJournal(ctx context.Context, otherIncomeID, journalEntryID string) error {
	return r.setJournal(ctx, "other_incomes", "other_income_id", otherIncomeID, journalEntryID)
}

func (r *PgxRevenueRepository) ListOtherIncomes(ctx context.Context) ([]domain.OtherIncome, error) {
	query := `SELECT ` + otherIncomeColumns + ` FROM other_incomes ORDER BY income_date DESC, created_at DESC`
	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list other incomes: %w", err)
	}
	defer rows.Close()

	incomes := []domain.OtherIncome{}
	for rows.Next() {
		var m models.OtherIncome
		if err := rows.Scan(&m.OtherIncomeID, &m.IncomeDate, &m.Description, &m.Amount, &m.JournalID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan other income row: %w", err)
		}
		incomes = append(incomes, mapping.ToDomainOtherIncome(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating other income rows: %w", err)
	}
	return incomes, nil
}
