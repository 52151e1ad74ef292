package accountrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/pg"
)

const accountColumns = `id, uuid, email, password_hash, full_name, document, role, status, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.scanOne(ctx, fmt.Sprintf(`SELECT %s FROM accounts WHERE email = $1`, accountColumns), email)
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Account, error) {
	return r.scanOne(ctx, fmt.Sprintf(`SELECT %s FROM accounts WHERE id = $1`, accountColumns), id)
}

func (r *Repository) FindByUUID(ctx context.Context, accountUUID string) (*domain.Account, error) {
	return r.scanOne(ctx, fmt.Sprintf(`SELECT %s FROM accounts WHERE uuid = $1`, accountColumns), accountUUID)
}

func (r *Repository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if account.UUID == "" {
		account.UUID = uuid.NewString()
	}
	query := `
		INSERT INTO accounts (uuid, email, password_hash, full_name, document, role, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		account.UUID, account.Email, account.PasswordHash, account.FullName,
		account.Document, account.Role, account.Status,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		zap.L().Error("can't save account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

// UpdateStatus flips the account lifecycle status. Accounts are never
// physically deleted; blocking plus anonymization substitutes for deletion so
// the ledger chain stays intact.
func (r *Repository) UpdateStatus(ctx context.Context, accountID int, status domain.AccountStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE accounts SET status = $1 WHERE id = $2`, status, accountID)
	if err != nil {
		zap.L().Error("can't update account status", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", domain.ErrNotFound, accountID)
	}
	return nil
}

// Anonymize obfuscates personal fields of a blocked account while keeping the
// row and its ledger references.
func (r *Repository) Anonymize(ctx context.Context, accountID int) error {
	query := `
		UPDATE accounts
		SET email = 'removed+' || uuid || '@anon.invalid',
		    full_name = 'Removed Account',
		    document = ''
		WHERE id = $1 AND status = 'BLOCKED'
	`
	tag, err := r.db.Exec(ctx, query, accountID)
	if err != nil {
		zap.L().Error("can't anonymize account", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d is not blocked", domain.ErrInvalidState, accountID)
	}
	return nil
}

func (r *Repository) FindAll(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM accounts ORDER BY id LIMIT $1 OFFSET $2
	`, accountColumns), limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch accounts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		err := rows.Scan(&a.ID, &a.UUID, &a.Email, &a.PasswordHash, &a.FullName, &a.Document, &a.Role, &a.Status, &a.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan account row", zap.Error(err))
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (r *Repository) scanOne(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, query, args...)
	var a domain.Account
	err := row.Scan(&a.ID, &a.UUID, &a.Email, &a.PasswordHash, &a.FullName, &a.Document, &a.Role, &a.Status, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to scan account", zap.Error(err))
		return nil, err
	}
	return &a, nil
}
