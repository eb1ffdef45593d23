package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/athena_ledger/internal/apperrors"
	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/athena_ledger/internal/models"
	"github.com/SscSPs/athena_ledger/internal/utils/mapping"
	"github.com/SscSPs/athena_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const entryColumns = `entry_id, organization_id, user_id, description, reference, entry_date, status, currency_code,
	metadata, posted_at, voided_at, created_at, created_by, last_updated_at, last_updated_by, version`

const lineColumns = `line_id, entry_id, account_id, debit, credit, description, line_no`

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool PgxPool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.OrganizationID, &m.UserID, &m.Description, &m.Reference, &m.EntryDate, &m.Status, &m.CurrencyCode,
		&m.Metadata, &m.PostedAt, &m.VoidedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

// loadLines fetches the lines of the given entries keyed by entry id, in line order.
func (r *PgxJournalRepository) loadLines(ctx context.Context, entryIDs []string) (map[string][]models.JournalLine, error) {
	out := make(map[string][]models.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_no`

	rows, err := r.db(ctx).Query(ctx, query, entryIDs)
	if err != nil {
		return nil, mapPgError(err, "load journal lines")
	}
	defer rows.Close()
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountID, &l.Debit, &l.Credit, &l.Description, &l.LineNo); err != nil {
			return nil, mapPgError(err, "scan journal line")
		}
		out[l.EntryID] = append(out[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "load journal lines")
	}
	return out, nil
}

func (r *PgxJournalRepository) findOne(ctx context.Context, scope domain.Scope, entryID string, suffix string) (*domain.JournalEntry, error) {
	scopeClause, owner := scopeFilter("", scope, 2)
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 AND ` + scopeClause + ` ` + suffix

	header, err := scanEntry(r.db(ctx).QueryRow(ctx, query, entryID, owner))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("journal entry %s", entryID)
		}
		return nil, mapPgError(err, "find journal entry")
	}
	lines, err := r.loadLines(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry, err := mapping.ToDomainJournalEntry(header, lines[entryID])
	if err != nil {
		return nil, fmt.Errorf("map journal entry %s: %w", entryID, err)
	}
	return &entry, nil
}

func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	return r.findOne(ctx, scope, entryID, "")
}

// FindJournalForUpdate must run inside WithinTx.
func (r *PgxJournalRepository) FindJournalForUpdate(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	return r.findOne(ctx, scope, entryID, "FOR UPDATE")
}

func (r *PgxJournalRepository) ListJournals(ctx context.Context, scope domain.Scope, status *domain.JournalStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	scopeClause, owner := scopeFilter("", scope, 1)
	conds := []string{scopeClause}
	args := []any{owner}

	if status != nil {
		args = append(args, string(*status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.Validationf("%s", err.Error())
		}
		args = append(args, cursor.EntryDate, cursor.CreatedAt, cursor.EntryID)
		n := len(args)
		conds = append(conds, fmt.Sprintf("(entry_date, created_at, entry_id) < ($%d, $%d, $%d)", n-2, n-1, n))
	}
	// One extra row tells us whether another page exists.
	args = append(args, limit+1)
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE %s
		ORDER BY entry_date DESC, created_at DESC, entry_id DESC
		LIMIT $%d`, entryColumns, strings.Join(conds, " AND "), len(args))

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapPgError(err, "list journal entries")
	}
	var headers []models.JournalEntry
	for rows.Next() {
		header, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, nil, mapPgError(err, "scan journal entry")
		}
		headers = append(headers, header)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, mapPgError(err, "list journal entries")
	}

	var token *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		t := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
		token = &t
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.EntryID
	}
	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.JournalEntry, 0, len(headers))
	for _, h := range headers {
		entry, err := mapping.ToDomainJournalEntry(h, lines[h.EntryID])
		if err != nil {
			return nil, nil, fmt.Errorf("map journal entry %s: %w", h.EntryID, err)
		}
		entries = append(entries, entry)
	}
	return entries, token, nil
}

func (r *PgxJournalRepository) AccountHasLines(ctx context.Context, accountID string, statuses ...domain.JournalStatus) (bool, error) {
	wanted := make([]string, len(statuses))
	for i, st := range statuses {
		wanted[i] = string(st)
	}
	query := `
		SELECT EXISTS (
			SELECT 1 FROM journal_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE l.account_id = $1 AND e.status = ANY($2)
		)`

	var found bool
	if err := r.db(ctx).QueryRow(ctx, query, accountID, wanted).Scan(&found); err != nil {
		return false, mapPgError(err, "check account usage")
	}
	return found, nil
}

// insertLines sends all line inserts in one batch.
func (r *PgxJournalRepository) insertLines(ctx context.Context, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `INSERT INTO journal_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	batch := &pgx.Batch{}
	for _, l := range lines {
		m := mapping.ToModelJournalLine(l)
		batch.Queue(query, m.LineID, m.EntryID, m.AccountID, m.Debit, m.Credit, m.Description, m.LineNo)
	}
	br := r.db(ctx).SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return mapPgError(err, "insert journal line")
		}
	}
	return mapPgError(br.Close(), "insert journal lines")
}

func (r *PgxJournalRepository) SaveJournal(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	return r.WithinTx(ctx, func(ctx context.Context) error {
		_, err := r.db(ctx).Exec(ctx, query,
			m.EntryID, m.OrganizationID, m.UserID, m.Description, m.Reference, m.EntryDate, m.Status, m.CurrencyCode,
			m.Metadata, m.PostedAt, m.VoidedAt,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
		)
		if err != nil {
			return mapPgError(err, "save journal entry")
		}
		return r.insertLines(ctx, entry.Lines)
	})
}

func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, entry domain.JournalEntry, expectedStatus domain.JournalStatus, expectedVersion int64) error {
	m := mapping.ToModelJournalEntry(entry)
	scopeClause, owner := scopeFilter("", entry.Scope, 14)
	query := `
		UPDATE journal_entries
		SET description = $2, reference = $3, entry_date = $4, status = $5, currency_code = $6, metadata = $7,
			posted_at = $8, voided_at = $9, last_updated_at = $10, last_updated_by = $11, version = $12
		WHERE entry_id = $1 AND status = $13 AND version = $15 AND ` + scopeClause

	tag, err := r.db(ctx).Exec(ctx, query,
		m.EntryID, m.Description, m.Reference, m.EntryDate, m.Status, m.CurrencyCode, m.Metadata,
		m.PostedAt, m.VoidedAt, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
		string(expectedStatus), owner, expectedVersion,
	)
	if err != nil {
		return mapPgError(err, "update journal entry")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflictf("journal entry %s was modified concurrently", entry.EntryID)
	}
	return nil
}

func (r *PgxJournalRepository) ReplaceJournalLines(ctx context.Context, entryID string, lines []domain.JournalLine) error {
	return r.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1`, entryID); err != nil {
			return mapPgError(err, "delete journal lines")
		}
		return r.insertLines(ctx, lines)
	})
}
