package auditrepo

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Record appends one audit row. Audit rows are never updated or deleted.
func (r *Repository) Record(ctx context.Context, rec *domain.AuditRecord) error {
	oldJSON, err := json.Marshal(rec.OldValues)
	if err != nil {
		return err
	}
	newJSON, err := json.Marshal(rec.NewValues)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO audit_logs (actor_id, actor_email, actor_role, action, entity_type, entity_id, old_values, new_values, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err = r.db.QueryRow(ctx, query,
		rec.ActorID, rec.ActorEmail, rec.ActorRole, rec.Action,
		rec.EntityType, rec.EntityID, oldJSON, newJSON, rec.IPAddress,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		zap.L().Error("can't save audit record", zap.Error(err))
		return err
	}
	return nil
}

// FindRecent lists audit entries, newest first, for operator review.
func (r *Repository) FindRecent(ctx context.Context, limit, offset int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, actor_id, actor_email, actor_role, action, entity_type, entity_id, old_values, new_values, ip_address, created_at
		FROM audit_logs
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch audit records", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var rec domain.AuditRecord
		var oldJSON, newJSON []byte
		err := rows.Scan(&rec.ID, &rec.ActorID, &rec.ActorEmail, &rec.ActorRole, &rec.Action,
			&rec.EntityType, &rec.EntityID, &oldJSON, &newJSON, &rec.IPAddress, &rec.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan audit record row", zap.Error(err))
			return nil, err
		}
		if len(oldJSON) > 0 {
			if err := json.Unmarshal(oldJSON, &rec.OldValues); err != nil {
				return nil, err
			}
		}
		if len(newJSON) > 0 {
			if err := json.Unmarshal(newJSON, &rec.NewValues); err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
