package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portsrepo "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/repositories"
	"github.com/clearbooks-dev/clearbooks_backend/internal/models"
	"github.com/clearbooks-dev/clearbooks_backend/internal/utils/mapping"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountReader
}

func newPgxJournalRepository(db *pgxpool.Pool, accountRepo portsrepo.AccountReader) portsrepo.JournalEntryRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: db},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalEntryRepository = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, company_id, entry_date, description, source_document_id, is_adjusting, created_at, created_by, last_updated_at, last_updated_by`
const lineColumns = `line_id, entry_id, account_id, line_type, amount, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.EntryDate,
		&m.Description,
		&m.SourceDocumentID,
		&m.IsAdjusting,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalEntryLine, error) {
	var m models.JournalEntryLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.LineType,
		&m.Amount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry persists the header and every line inside one transaction. A
// failure anywhere rolls the whole entry back; the ledger never holds a
// header without its lines.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) outcome.Outcome[outcome.Unit] {
	tx, err := r.Begin(ctx)
	if err != nil {
		return outcome.Fail[outcome.Unit](err)
	}
	defer r.Rollback(ctx, tx) // no-op after a successful commit

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID, m.CompanyID, m.EntryDate, m.Description, m.SourceDocumentID, m.IsAdjusting,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return outcome.Fail[outcome.Unit](fmt.Errorf("%w: source document already referenced by another entry", apperrors.ErrConflict))
		}
		if isForeignKeyViolation(err) {
			return outcome.Fail[outcome.Unit](fmt.Errorf("%w: referenced company or document", apperrors.ErrNotFound))
		}
		return outcome.Failf[outcome.Unit]("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, line := range entry.Lines {
		lm := mapping.ToModelJournalEntryLine(line)
		batch.Queue(lineQuery,
			lm.LineID, lm.EntryID, lm.AccountID, lm.LineType, lm.Amount,
			lm.CreatedAt, lm.CreatedBy, lm.LastUpdatedAt, lm.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range entry.Lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return outcome.Failf[outcome.Unit]("failed to insert journal entry line: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return outcome.Failf[outcome.Unit]("failed to close line batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return outcome.Fail[outcome.Unit](err)
	}
	return outcome.Done()
}

func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) outcome.Outcome[outcome.Unit] {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, is_adjusting = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.EntryID, m.EntryDate, m.Description, m.IsAdjusting,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return outcome.Failf[outcome.Unit]("failed to update journal entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return outcome.Failf[outcome.Unit]("%w: journal entry %s", apperrors.ErrNotFound, m.EntryID)
	}
	return outcome.Done()
}

// DeleteEntry removes an entry; its lines follow via ON DELETE CASCADE.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) outcome.Outcome[outcome.Unit] {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return outcome.Failf[outcome.Unit]("failed to delete journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return outcome.Failf[outcome.Unit]("%w: journal entry %s", apperrors.ErrNotFound, entryID)
	}
	return outcome.Done()
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) outcome.Outcome[domain.JournalEntry] {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outcome.Failf[domain.JournalEntry]("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return outcome.Failf[domain.JournalEntry]("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := r.findLinesByEntryIDs(ctx, []string{m.EntryID})
	if err != nil {
		return outcome.Fail[domain.JournalEntry](err)
	}
	return outcome.Ok(mapping.ToDomainJournalEntry(m, lines[m.EntryID]))
}

func (r *PgxJournalRepository) FindEntryBySourceDocument(ctx context.Context, documentID string) outcome.Outcome[domain.JournalEntry] {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE source_document_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outcome.Failf[domain.JournalEntry]("%w: no entry references document %s", apperrors.ErrNotFound, documentID)
		}
		return outcome.Failf[domain.JournalEntry]("failed to find entry for document %s: %w", documentID, err)
	}

	lines, err := r.findLinesByEntryIDs(ctx, []string{m.EntryID})
	if err != nil {
		return outcome.Fail[domain.JournalEntry](err)
	}
	return outcome.Ok(mapping.ToDomainJournalEntry(m, lines[m.EntryID]))
}

func (r *PgxJournalRepository) FindEntriesByCompany(ctx context.Context, companyID string) outcome.Outcome[[]domain.JournalEntry] {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE company_id = $1 ORDER BY entry_date, entry_id;`
	return r.queryEntriesWithLines(ctx, query, companyID)
}

func (r *PgxJournalRepository) FindEntriesByDateRange(ctx context.Context, companyID string, from, to time.Time) outcome.Outcome[[]domain.JournalEntry] {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND entry_date >= $2 AND entry_date <= $3
		ORDER BY entry_date, entry_id;
	`
	return r.queryEntriesWithLines(ctx, query, companyID, from, to)
}

func (r *PgxJournalRepository) queryEntriesWithLines(ctx context.Context, query string, args ...any) outcome.Outcome[[]domain.JournalEntry] {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return outcome.Failf[[]domain.JournalEntry]("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var headers []models.JournalEntry
	entryIDs := make([]string, 0)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return outcome.Failf[[]domain.JournalEntry]("failed to scan journal entry row: %w", err)
		}
		headers = append(headers, m)
		entryIDs = append(entryIDs, m.EntryID)
	}
	if err := rows.Err(); err != nil {
		return outcome.Failf[[]domain.JournalEntry]("failed while iterating journal entry rows: %w", err)
	}

	lines, err := r.findLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return outcome.Fail[[]domain.JournalEntry](err)
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, m := range headers {
		entries[i] = mapping.ToDomainJournalEntry(m, lines[m.EntryID])
	}
	return outcome.Ok(entries)
}

// findLinesByEntryIDs fetches the lines for a set of entries in one query
// and groups them by entry ID.
func (r *PgxJournalRepository) findLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]models.JournalEntryLine, error) {
	grouped := make(map[string][]models.JournalEntryLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return grouped, nil
	}

	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_id;`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entry lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry line row: %w", err)
		}
		grouped[m.EntryID] = append(grouped[m.EntryID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating journal entry line rows: %w", err)
	}
	return grouped, nil
}

// ComputeTrialBalance loads the company's chart and every line dated on or
// before asOf, then folds them with the pure aggregation. The heavy lifting
// stays in the database only as far as filtering; the arithmetic is the
// domain's.
func (r *PgxJournalRepository) ComputeTrialBalance(ctx context.Context, companyID string, asOf time.Time) outcome.Outcome[domain.TrialBalance] {
	accounts := r.accountRepo.FindAccountsByCompany(ctx, companyID)
	if accounts.IsFailure() {
		return outcome.Fail[domain.TrialBalance](accounts.Err())
	}

	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.line_type, l.amount,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.company_id = $1 AND e.entry_date <= $2;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return outcome.Failf[domain.TrialBalance]("failed to query lines for trial balance: %w", err)
	}
	defer rows.Close()

	var lines []domain.JournalEntryLine
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return outcome.Failf[domain.TrialBalance]("failed to scan trial balance line: %w", err)
		}
		lines = append(lines, mapping.ToDomainJournalEntryLine(m))
	}
	if err := rows.Err(); err != nil {
		return outcome.Failf[domain.TrialBalance]("failed while iterating trial balance lines: %w", err)
	}

	return outcome.Ok(domain.ComputeTrialBalance(companyID, asOf, accounts.Value(), lines))
}
