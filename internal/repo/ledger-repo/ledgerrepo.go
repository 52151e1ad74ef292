package ledgerrepo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/pg"
)

const uniqueViolation = "23505"

const entryColumns = `id, uuid, allocation_id, credit_id, account_id, entry_type, direction,
		amount, balance_after, description, reference_type, reference_id,
		created_by, previous_entry_id, entry_hash, created_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// Filter narrows entry listings.
type Filter struct {
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
	Ascending bool
}

// Append inserts a new ledger entry with its running balance, serialized per
// account: the account row is locked for the duration of the
// read-balance-then-insert sequence. Entries are immutable after this point;
// there is no update or delete path.
//
// Insufficient-funds policy deliberately lives in the calling workflow, not
// here: system-authorized credits (reversals) must append unconditionally.
func (r *Repository) Append(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if !entry.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: entry amount must be positive", domain.ErrValidation)
	}

	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		var lockedID int
		err := r.db.QueryRow(ctx, `SELECT id FROM accounts WHERE id = $1 FOR UPDATE`, entry.AccountID).Scan(&lockedID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return fmt.Errorf("%w: account %d", domain.ErrNotFound, entry.AccountID)
			}
			zap.L().Error("failed to lock account for ledger append", zap.Error(err))
			return err
		}

		last, err := r.findLatestLocked(ctx, entry.AccountID)
		if err != nil {
			return err
		}

		balance := decimal.Zero
		var prevID *int64
		var prevHash string
		if last != nil {
			balance = last.BalanceAfter
			prevID = &last.ID
			prevHash = last.EntryHash
		}

		if entry.Direction == domain.DirectionDebit {
			entry.BalanceAfter = balance.Sub(entry.Amount)
		} else {
			entry.BalanceAfter = balance.Add(entry.Amount)
		}
		entry.PreviousEntryID = prevID
		entry.EntryHash = ChainHash(entry, prevHash)
		if entry.UUID == "" {
			entry.UUID = uuid.NewString()
		}

		query := `
			INSERT INTO ledger_entries (uuid, allocation_id, credit_id, account_id, entry_type, direction,
				amount, balance_after, description, reference_type, reference_id,
				created_by, previous_entry_id, entry_hash)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id, created_at
		`
		err = r.db.QueryRow(ctx, query,
			entry.UUID, entry.AllocationID, entry.CreditID, entry.AccountID, entry.EntryType, entry.Direction,
			entry.Amount, entry.BalanceAfter, entry.Description, entry.ReferenceType, entry.ReferenceID,
			entry.CreatedBy, entry.PreviousEntryID, entry.EntryHash,
		).Scan(&entry.ID, &entry.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("%w: reversal for %s already exists", domain.ErrConflict, entry.ReferenceID)
			}
			zap.L().Error("can't insert ledger entry", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *Repository) findLatestLocked(ctx context.Context, accountID int) (*domain.LedgerEntry, error) {
	return r.scanOne(ctx, fmt.Sprintf(`
        SELECT %s
        FROM ledger_entries
        WHERE account_id = $1
        ORDER BY id DESC
        LIMIT 1
    `, entryColumns), accountID)
}

// FindLatestByAccount returns the most recent entry of the account, or nil if
// the account has no entries yet.
func (r *Repository) FindLatestByAccount(ctx context.Context, accountID int) (*domain.LedgerEntry, error) {
	return r.findLatestLocked(ctx, accountID)
}

// BalanceForUpdate locks the account row and returns the current balance.
// Must run inside a transaction; the lock is held until that transaction
// ends, so a balance check made through this read stays authoritative for a
// subsequent Append in the same transaction.
func (r *Repository) BalanceForUpdate(ctx context.Context, accountID int) (decimal.Decimal, error) {
	var lockedID int
	err := r.db.QueryRow(ctx, `SELECT id FROM accounts WHERE id = $1 FOR UPDATE`, accountID).Scan(&lockedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Zero, fmt.Errorf("%w: account %d", domain.ErrNotFound, accountID)
		}
		zap.L().Error("failed to lock account for balance read", zap.Error(err))
		return decimal.Zero, err
	}

	last, err := r.findLatestLocked(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if last == nil {
		return decimal.Zero, nil
	}
	return last.BalanceAfter, nil
}

// FindLastBefore returns the account's last entry strictly before the given
// time; used as the opening balance of a statement period.
func (r *Repository) FindLastBefore(ctx context.Context, accountID int, before time.Time) (*domain.LedgerEntry, error) {
	return r.scanOne(ctx, fmt.Sprintf(`
        SELECT %s
        FROM ledger_entries
        WHERE account_id = $1 AND created_at < $2
        ORDER BY id DESC
        LIMIT 1
    `, entryColumns), accountID, before)
}

// FindByReference returns the first entry carrying the external correlation
// id, used to locate the original debit when a settlement fails.
func (r *Repository) FindByReference(ctx context.Context, referenceType, referenceID string) (*domain.LedgerEntry, error) {
	return r.scanOne(ctx, fmt.Sprintf(`
        SELECT %s
        FROM ledger_entries
        WHERE reference_type = $1 AND reference_id = $2
        ORDER BY id
        LIMIT 1
    `, entryColumns), referenceType, referenceID)
}

// FindByAccount lists the account's entries. Newest-first by default,
// oldest-first when the filter asks for statement order.
func (r *Repository) FindByAccount(ctx context.Context, accountID int, filter Filter) ([]domain.LedgerEntry, error) {
	order := "DESC"
	if filter.Ascending {
		order = "ASC"
	}
	query := fmt.Sprintf(`
        SELECT %s
        FROM ledger_entries
        WHERE account_id = $1
          AND ($2::timestamptz IS NULL OR created_at >= $2)
          AND ($3::timestamptz IS NULL OR created_at <= $3)
        ORDER BY id %s
        LIMIT $4 OFFSET $5
    `, entryColumns, order)

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, query, accountID, filter.From, filter.To, limit, filter.Offset)
	if err != nil {
		zap.L().Error("failed to fetch ledger entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// FindAllByAccount returns every entry of the account in insertion order,
// for chain verification and statement reconstruction.
func (r *Repository) FindAllByAccount(ctx context.Context, accountID int) ([]domain.LedgerEntry, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM ledger_entries
        WHERE account_id = $1
        ORDER BY id ASC
    `, entryColumns)

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("failed to fetch ledger chain", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// SumByDirection aggregates credited and debited totals over the period.
// Totals are always aggregate queries; they are never re-derived from cached
// or denormalized fields.
func (r *Repository) SumByDirection(ctx context.Context, accountID int, from, to *time.Time) (credits, debits decimal.Decimal, err error) {
	query := `
        SELECT
            COALESCE(SUM(amount) FILTER (WHERE direction = 'CREDIT'), 0),
            COALESCE(SUM(amount) FILTER (WHERE direction = 'DEBIT'), 0)
        FROM ledger_entries
        WHERE account_id = $1
          AND ($2::timestamptz IS NULL OR created_at >= $2)
          AND ($3::timestamptz IS NULL OR created_at <= $3)
    `
	err = r.db.QueryRow(ctx, query, accountID, from, to).Scan(&credits, &debits)
	if err != nil {
		zap.L().Error("failed to aggregate ledger totals", zap.Error(err))
		return decimal.Zero, decimal.Zero, err
	}
	return credits, debits, nil
}

func (r *Repository) scanOne(ctx context.Context, query string, args ...any) (*domain.LedgerEntry, error) {
	row := r.db.QueryRow(ctx, query, args...)
	var e domain.LedgerEntry
	err := row.Scan(
		&e.ID, &e.UUID, &e.AllocationID, &e.CreditID, &e.AccountID, &e.EntryType, &e.Direction,
		&e.Amount, &e.BalanceAfter, &e.Description, &e.ReferenceType, &e.ReferenceID,
		&e.CreatedBy, &e.PreviousEntryID, &e.EntryHash, &e.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to scan ledger entry", zap.Error(err))
		return nil, err
	}
	return &e, nil
}

func scanEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(
			&e.ID, &e.UUID, &e.AllocationID, &e.CreditID, &e.AccountID, &e.EntryType, &e.Direction,
			&e.Amount, &e.BalanceAfter, &e.Description, &e.ReferenceType, &e.ReferenceID,
			&e.CreatedBy, &e.PreviousEntryID, &e.EntryHash, &e.CreatedAt,
		)
		if err != nil {
			zap.L().Error("failed to scan ledger entry row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ChainHash links each entry to its predecessor's hash so an auditor can
// detect tampering by replaying the chain.
func ChainHash(e *domain.LedgerEntry, previousHash string) string {
	payload := fmt.Sprintf("%d|%s|%s|%s|%s|%s",
		e.AccountID, e.EntryType, e.Direction,
		e.Amount.StringFixed(2), e.BalanceAfter.StringFixed(2), previousHash)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
