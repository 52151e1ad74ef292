package outboundrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/pg"
)

const requestColumns = `id, uuid, account_id, amount, recipient_key, recipient_key_type, recipient_name,
		notes, status, processed_by, processed_at, rejection_reason, receipt_ref, settlement_id, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, req *domain.OutboundRequest) (*domain.OutboundRequest, error) {
	if req.UUID == "" {
		req.UUID = uuid.NewString()
	}
	query := `
		INSERT INTO outbound_requests (uuid, account_id, amount, recipient_key, recipient_key_type, recipient_name, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		req.UUID, req.AccountID, req.Amount, req.RecipientKey, req.RecipientKeyType,
		req.RecipientName, req.Notes, req.Status,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		zap.L().Error("can't save outbound request", zap.Error(err))
		return nil, err
	}
	return req, nil
}

func (r *Repository) FindByUUID(ctx context.Context, requestUUID string) (*domain.OutboundRequest, error) {
	return r.scanOne(ctx, fmt.Sprintf(`SELECT %s FROM outbound_requests WHERE uuid = $1`, requestColumns), requestUUID)
}

// FindByUUIDForUpdate locks the request row so that concurrent process/cancel
// attempts serialize and losers observe the final status.
func (r *Repository) FindByUUIDForUpdate(ctx context.Context, requestUUID string) (*domain.OutboundRequest, error) {
	return r.scanOne(ctx, fmt.Sprintf(`SELECT %s FROM outbound_requests WHERE uuid = $1 FOR UPDATE`, requestColumns), requestUUID)
}

// Transition moves the request between states with a from-status guard, and
// records the processing metadata on approval/rejection.
func (r *Repository) Transition(ctx context.Context, req *domain.OutboundRequest, fromStatus domain.OutboundStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE outbound_requests
		SET status = $1, processed_by = $2, processed_at = $3, rejection_reason = $4,
		    receipt_ref = $5, settlement_id = $6
		WHERE id = $7 AND status = $8
	`, req.Status, req.ProcessedBy, req.ProcessedAt, req.RejectionReason,
		req.ReceiptRef, req.SettlementID, req.ID, fromStatus)
	if err != nil {
		zap.L().Error("can't transition outbound request", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s is not %s", domain.ErrInvalidState, req.UUID, fromStatus)
	}
	return nil
}

// FindByAccount lists the requester's own requests, newest first, optionally
// filtered by status.
func (r *Repository) FindByAccount(ctx context.Context, accountID int, status *domain.OutboundStatus, limit, offset int) ([]domain.OutboundRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM outbound_requests
		WHERE account_id = $1 AND ($2::varchar IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, requestColumns)

	rows, err := r.db.Query(ctx, query, accountID, status, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch outbound requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

// FindByStatus lists requests in one state across all accounts, oldest first
// so the operator queue is FIFO.
func (r *Repository) FindByStatus(ctx context.Context, status domain.OutboundStatus, limit, offset int) ([]domain.OutboundRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM outbound_requests
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`, requestColumns), status, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch outbound requests by status", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

// FindBySettlementID locates the request tied to a gateway correlation id.
func (r *Repository) FindBySettlementID(ctx context.Context, settlementID string) (*domain.OutboundRequest, error) {
	return r.scanOne(ctx, fmt.Sprintf(`SELECT %s FROM outbound_requests WHERE settlement_id = $1`, requestColumns), settlementID)
}

// FindUnconfirmed returns completed requests whose settlement the gateway has
// not yet confirmed, for the background settlement watcher.
func (r *Repository) FindUnconfirmed(ctx context.Context, olderThan time.Time, limit int) ([]domain.OutboundRequest, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM outbound_requests
		WHERE status = 'COMPLETED' AND settlement_id <> '' AND receipt_ref = '' AND processed_at < $1
		ORDER BY processed_at ASC
		LIMIT $2
	`, requestColumns), olderThan, limit)
	if err != nil {
		zap.L().Error("failed to fetch unconfirmed outbound requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

// ConfirmReceipt stores the gateway receipt on an already-completed request.
// This is processing metadata, not ledger state.
func (r *Repository) ConfirmReceipt(ctx context.Context, requestID int, receiptRef string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE outbound_requests SET receipt_ref = $1 WHERE id = $2 AND status = 'COMPLETED'
	`, receiptRef, requestID)
	if err != nil {
		zap.L().Error("can't confirm outbound receipt", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %d is not completed", domain.ErrInvalidState, requestID)
	}
	return nil
}

func (r *Repository) scanOne(ctx context.Context, query string, args ...any) (*domain.OutboundRequest, error) {
	row := r.db.QueryRow(ctx, query, args...)
	var o domain.OutboundRequest
	err := row.Scan(
		&o.ID, &o.UUID, &o.AccountID, &o.Amount, &o.RecipientKey, &o.RecipientKeyType, &o.RecipientName,
		&o.Notes, &o.Status, &o.ProcessedBy, &o.ProcessedAt, &o.RejectionReason, &o.ReceiptRef,
		&o.SettlementID, &o.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to scan outbound request", zap.Error(err))
		return nil, err
	}
	return &o, nil
}

func scanRequests(rows pgx.Rows) ([]domain.OutboundRequest, error) {
	var requests []domain.OutboundRequest
	for rows.Next() {
		var o domain.OutboundRequest
		err := rows.Scan(
			&o.ID, &o.UUID, &o.AccountID, &o.Amount, &o.RecipientKey, &o.RecipientKeyType, &o.RecipientName,
			&o.Notes, &o.Status, &o.ProcessedBy, &o.ProcessedAt, &o.RejectionReason, &o.ReceiptRef,
			&o.SettlementID, &o.CreatedAt,
		)
		if err != nil {
			zap.L().Error("failed to scan outbound request row", zap.Error(err))
			return nil, err
		}
		requests = append(requests, o)
	}
	return requests, nil
}
