package allocationrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/pg"
)

const uniqueViolation = "23505"

const allocationColumns = `a.id, a.uuid, a.credit_id, a.account_id, a.allocated_by, a.gross_amount,
		a.discount_type, a.discount_value, a.discount_amount, a.net_amount, a.company_margin,
		a.notes, a.allocated_at, c.uuid AS credit_uuid, acc.uuid AS account_uuid`

const allocationJoins = `allocations a
		JOIN incoming_credits c ON c.id = a.credit_id
		JOIN accounts acc ON acc.id = a.account_id`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Create persists an allocation. The credit_id unique constraint is the
// at-most-one-allocation-per-credit backstop; a violation surfaces as
// domain.ErrConflict.
func (r *Repository) Create(ctx context.Context, allocation *domain.Allocation) (*domain.Allocation, error) {
	if allocation.UUID == "" {
		allocation.UUID = uuid.NewString()
	}
	query := `
		INSERT INTO allocations (uuid, credit_id, account_id, allocated_by, gross_amount,
			discount_type, discount_value, discount_amount, net_amount, company_margin, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, allocated_at
	`
	err := r.db.QueryRow(ctx, query,
		allocation.UUID, allocation.CreditID, allocation.AccountID, allocation.AllocatedBy,
		allocation.GrossAmount, allocation.DiscountType, allocation.DiscountValue,
		allocation.DiscountAmount, allocation.NetAmount, allocation.CompanyMargin, allocation.Notes,
	).Scan(&allocation.ID, &allocation.AllocatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: credit %d already allocated", domain.ErrConflict, allocation.CreditID)
		}
		zap.L().Error("can't save allocation", zap.Error(err))
		return nil, err
	}
	return allocation, nil
}

func (r *Repository) FindByUUID(ctx context.Context, allocationUUID string) (*domain.Allocation, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM %s WHERE a.uuid = $1`, allocationColumns, allocationJoins), allocationUUID)
	return scanAllocation(row)
}

// FindAll lists allocations, optionally narrowed to one target account.
func (r *Repository) FindAll(ctx context.Context, accountID *int, limit, offset int) ([]domain.Allocation, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE ($1::int IS NULL OR a.account_id = $1)
		ORDER BY a.allocated_at DESC
		LIMIT $2 OFFSET $3
	`, allocationColumns, allocationJoins)

	rows, err := r.db.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch allocations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var allocations []domain.Allocation
	for rows.Next() {
		var a domain.Allocation
		err := rows.Scan(
			&a.ID, &a.UUID, &a.CreditID, &a.AccountID, &a.AllocatedBy, &a.GrossAmount,
			&a.DiscountType, &a.DiscountValue, &a.DiscountAmount, &a.NetAmount, &a.CompanyMargin,
			&a.Notes, &a.AllocatedAt, &a.CreditUUID, &a.AccountUUID,
		)
		if err != nil {
			zap.L().Error("failed to scan allocation row", zap.Error(err))
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, nil
}

func scanAllocation(row pgx.Row) (*domain.Allocation, error) {
	var a domain.Allocation
	err := row.Scan(
		&a.ID, &a.UUID, &a.CreditID, &a.AccountID, &a.AllocatedBy, &a.GrossAmount,
		&a.DiscountType, &a.DiscountValue, &a.DiscountAmount, &a.NetAmount, &a.CompanyMargin,
		&a.Notes, &a.AllocatedAt, &a.CreditUUID, &a.AccountUUID,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to scan allocation", zap.Error(err))
		return nil, err
	}
	return &a, nil
}
