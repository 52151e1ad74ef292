package creditrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/pg"
)

const uniqueViolation = "23505"

const creditColumns = `id, uuid, external_id, amount, payer_name, payer_document, description,
		status, allocation_id, transaction_date, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Create inserts a new incoming credit in Pending state. A duplicate
// external id surfaces as domain.ErrConflict so the caller can fall back to
// the already-registered record (webhook redelivery).
func (r *Repository) Create(ctx context.Context, credit *domain.IncomingCredit) (*domain.IncomingCredit, error) {
	if credit.UUID == "" {
		credit.UUID = uuid.NewString()
	}
	query := `
		INSERT INTO incoming_credits (uuid, external_id, amount, payer_name, payer_document, description, status, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		credit.UUID, credit.ExternalID, credit.Amount, credit.PayerName, credit.PayerDocument,
		credit.Description, credit.Status, credit.TransactionDate,
	).Scan(&credit.ID, &credit.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: external id %s", domain.ErrConflict, credit.ExternalID)
		}
		zap.L().Error("can't save incoming credit", zap.Error(err))
		return nil, err
	}
	return credit, nil
}

func (r *Repository) FindByExternalID(ctx context.Context, externalID string) (*domain.IncomingCredit, error) {
	return r.scanOne(ctx, fmt.Sprintf(`SELECT %s FROM incoming_credits WHERE external_id = $1`, creditColumns), externalID)
}

func (r *Repository) FindByUUID(ctx context.Context, creditUUID string) (*domain.IncomingCredit, error) {
	return r.scanOne(ctx, fmt.Sprintf(`SELECT %s FROM incoming_credits WHERE uuid = $1`, creditColumns), creditUUID)
}

// FindByUUIDForUpdate locks the credit row for the duration of the enclosing
// transaction, so two operators racing on the same credit serialize and the
// loser observes a non-pending status.
func (r *Repository) FindByUUIDForUpdate(ctx context.Context, creditUUID string) (*domain.IncomingCredit, error) {
	return r.scanOne(ctx, fmt.Sprintf(`SELECT %s FROM incoming_credits WHERE uuid = $1 FOR UPDATE`, creditColumns), creditUUID)
}

// UpdateStatus transitions the credit between lifecycle states. The
// fromStatus guard makes illegal transitions fail without touching the row.
func (r *Repository) UpdateStatus(ctx context.Context, creditID int, fromStatus, toStatus domain.CreditStatus, allocationID *int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE incoming_credits
		SET status = $1, allocation_id = $2
		WHERE id = $3 AND status = $4
	`, toStatus, allocationID, creditID, fromStatus)
	if err != nil {
		zap.L().Error("can't update credit status", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: credit %d is not %s", domain.ErrInvalidState, creditID, fromStatus)
	}
	return nil
}

// FindPending lists credits awaiting allocation, newest first, with the count
// and total pending amount for the operator dashboard.
func (r *Repository) FindPending(ctx context.Context, limit, offset int) ([]domain.IncomingCredit, int, decimal.Decimal, error) {
	var total int
	var totalAmount decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM incoming_credits
		WHERE status = 'PENDING'
	`).Scan(&total, &totalAmount)
	if err != nil {
		zap.L().Error("failed to count pending credits", zap.Error(err))
		return nil, 0, decimal.Zero, err
	}

	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM incoming_credits
		WHERE status = 'PENDING'
		ORDER BY transaction_date DESC
		LIMIT $1 OFFSET $2
	`, creditColumns), limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch pending credits", zap.Error(err))
		return nil, 0, decimal.Zero, err
	}
	defer rows.Close()

	credits, err := scanCredits(rows)
	if err != nil {
		return nil, 0, decimal.Zero, err
	}
	return credits, total, totalAmount, nil
}

func (r *Repository) scanOne(ctx context.Context, query string, args ...any) (*domain.IncomingCredit, error) {
	row := r.db.QueryRow(ctx, query, args...)
	var c domain.IncomingCredit
	err := row.Scan(
		&c.ID, &c.UUID, &c.ExternalID, &c.Amount, &c.PayerName, &c.PayerDocument, &c.Description,
		&c.Status, &c.AllocationID, &c.TransactionDate, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to scan incoming credit", zap.Error(err))
		return nil, err
	}
	return &c, nil
}

func scanCredits(rows pgx.Rows) ([]domain.IncomingCredit, error) {
	var credits []domain.IncomingCredit
	for rows.Next() {
		var c domain.IncomingCredit
		err := rows.Scan(
			&c.ID, &c.UUID, &c.ExternalID, &c.Amount, &c.PayerName, &c.PayerDocument, &c.Description,
			&c.Status, &c.AllocationID, &c.TransactionDate, &c.CreatedAt,
		)
		if err != nil {
			zap.L().Error("failed to scan incoming credit row", zap.Error(err))
			return nil, err
		}
		credits = append(credits, c)
	}
	return credits, nil
}
