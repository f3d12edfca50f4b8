package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/revenue_cycle_app/internal/models"
	"github.com/SscSPs/revenue_cycle_app/internal/utils/mapping"
	"github.com/SscSPs/revenue_cycle_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalEntryColumns = `journal_entry_id, entry_date, description, reference, ref_type, ref_id,
	created_at, created_by, last_updated_at, last_updated_by`

// lineSelect joins each line with its account and entry header.
const lineSelect = `
	SELECT jl.journal_line_id, jl.journal_entry_id, jl.account_id, jl.debit, jl.credit, jl.seq, jl.created_at,
	       a.code, a.name, je.entry_date, je.description, je.reference
	FROM journal_lines jl
	JOIN accounts a ON a.account_id = jl.account_id
	JOIN journal_entries je ON je.journal_entry_id = jl.journal_entry_id
`

func scanJournalEntry(row rowScanner) (domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.RefType,
		&m.RefID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	return mapping.ToDomainJournalEntry(m), nil
}

func scanJoinedLine(row rowScanner) (domain.JournalLine, error) {
	var m models.JournalLine
	var line domain.JournalLine
	err := row.Scan(
		&m.JournalLineID,
		&m.JournalEntryID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.Seq,
		&m.CreatedAt,
		&line.AccountCode,
		&line.AccountName,
		&line.EntryDate,
		&line.EntryDescription,
		&line.EntryReference,
	)
	if err != nil {
		return domain.JournalLine{}, err
	}
	base := mapping.ToDomainJournalLine(m)
	base.AccountCode = line.AccountCode
	base.AccountName = line.AccountName
	base.EntryDate = line.EntryDate
	base.EntryDescription = line.EntryDescription
	base.EntryReference = line.EntryReference
	return base, nil
}

// SaveJournalEntry inserts the entry header and all of its lines atomically. When ctx carries
// a transaction the writes join it.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	return r.RunInTx(ctx, func(txCtx context.Context) error {
		db := r.db(txCtx)
		m := mapping.ToModelJournalEntry(entry)

		headerQuery := `INSERT INTO journal_entries (` + journalEntryColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
		_, err := db.Exec(txCtx, headerQuery,
			m.JournalEntryID,
			m.EntryDate,
			m.Description,
			m.Reference,
			m.RefType,
			m.RefID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: journal reference %s already exists", apperrors.ErrDuplicate, m.Reference)
			}
			return apperrors.NewAppError(500, "failed to insert journal entry "+m.JournalEntryID, err)
		}

		batch := &pgx.Batch{}
		lineQuery := `
			INSERT INTO journal_lines (journal_line_id, journal_entry_id, account_id, debit, credit, seq, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`
		for _, l := range entry.Lines {
			ml := mapping.ToModelJournalLine(l)
			batch.Queue(lineQuery,
				ml.JournalLineID,
				m.JournalEntryID,
				ml.AccountID,
				ml.Debit,
				ml.Credit,
				ml.Seq,
				ml.CreatedAt,
			)
		}

		br := db.SendBatch(txCtx, batch)
		// Close reports the first failed command in the batch.
		if err := br.Close(); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: journal line references an unknown account", apperrors.ErrNotFound)
			}
			return apperrors.NewAppError(500, "failed to insert lines for journal entry "+m.JournalEntryID, err)
		}
		return nil
	})
}

// FindJournalEntryByID retrieves a journal entry with its lines in seq order.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE journal_entry_id = $1;`
	entry, err := scanJournalEntry(r.db(ctx).QueryRow(ctx, query, journalEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, journalEntryID)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+journalEntryID, err)
	}

	linesByEntry, err := r.linesForEntries(ctx, []string{journalEntryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = linesByEntry[journalEntryID]
	return &entry, nil
}

func (r *PgxJournalRepository) linesForEntries(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}

	query := lineSelect + ` WHERE jl.journal_entry_id = ANY($1) ORDER BY jl.journal_entry_id, jl.seq;`
	rows, err := r.db(ctx).Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		line, err := scanJoinedLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		result[line.JournalEntryID] = append(result[line.JournalEntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return result, nil
}

// ListJournalEntries returns up to limit entries, newest first, strictly after the cursor.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context, limit int, after *pagination.Cursor) ([]domain.JournalEntry, error) {
	args := []any{}
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries`
	if after != nil {
		query += ` WHERE (entry_date, created_at, journal_entry_id) < ($1::date, $2::timestamptz, $3)`
		args = append(args, after.Date, after.CreatedAt, after.ID)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC, journal_entry_id DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	ids := []string{}
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, entry)
		ids = append(ids, entry.JournalEntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	linesByEntry, err := r.linesForEntries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].JournalEntryID]
	}
	return entries, nil
}

// ListLinesByAccountID returns every line posted to the account in posting order.
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, accountID string) ([]domain.JournalLine, error) {
	query := lineSelect + ` WHERE jl.account_id = $1 ORDER BY jl.created_at ASC, jl.line_no ASC;`
	rows, err := r.db(ctx).Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines for account "+accountID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		line, err := scanJoinedLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row for account "+accountID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows for account "+accountID, err)
	}
	return lines, nil
}
