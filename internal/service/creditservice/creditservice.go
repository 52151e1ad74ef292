package creditservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/pg"
	"github.com/brpay/pixledger/pkg/metrics"
)

type CreditRepo interface {
	Create(ctx context.Context, credit *domain.IncomingCredit) (*domain.IncomingCredit, error)
	FindByExternalID(ctx context.Context, externalID string) (*domain.IncomingCredit, error)
	FindByUUID(ctx context.Context, creditUUID string) (*domain.IncomingCredit, error)
	FindByUUIDForUpdate(ctx context.Context, creditUUID string) (*domain.IncomingCredit, error)
	UpdateStatus(ctx context.Context, creditID int, fromStatus, toStatus domain.CreditStatus, allocationID *int) error
	FindPending(ctx context.Context, limit, offset int) ([]domain.IncomingCredit, int, decimal.Decimal, error)
}

type AuditRepo interface {
	Record(ctx context.Context, rec *domain.AuditRecord) error
}

var (
	ErrCreditNotFound   = fmt.Errorf("incoming credit: %w", domain.ErrNotFound)
	ErrCreditNotPending = fmt.Errorf("incoming credit not pending: %w", domain.ErrInvalidState)
	ErrInvalidAmount    = fmt.Errorf("amount must be positive: %w", domain.ErrValidation)
)

type Service struct {
	creditRepo CreditRepo
	auditRepo  AuditRepo
	txManager  pg.TXManager
	collector  *metrics.Collector
}

func New(creditRepo CreditRepo, auditRepo AuditRepo, txManager pg.TXManager, collector *metrics.Collector) *Service {
	return &Service{
		creditRepo: creditRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		collector:  collector,
	}
}

// RegisterParams carries one gateway payment notification.
type RegisterParams struct {
	ExternalID      string
	Amount          decimal.Decimal
	PayerName       string
	PayerDocument   string
	Description     string
	TransactionDate time.Time
}

// Register records an incoming payment in the pending registry. Registration
// is idempotent on ExternalID: replays return the already stored credit with
// created=false and never produce a second row.
func (s *Service) Register(ctx context.Context, params RegisterParams, actorID int) (*domain.IncomingCredit, bool, error) {
	if !params.Amount.IsPositive() {
		return nil, false, ErrInvalidAmount
	}

	existing, err := s.creditRepo.FindByExternalID(ctx, params.ExternalID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		zap.L().Info("duplicate credit notification ignored",
			zap.String("external_id", params.ExternalID),
			zap.String("credit_uuid", existing.UUID),
		)
		return existing, false, nil
	}

	txDate := params.TransactionDate
	if txDate.IsZero() {
		txDate = time.Now().UTC()
	}

	var credit *domain.IncomingCredit
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		credit, err = s.creditRepo.Create(ctx, &domain.IncomingCredit{
			ExternalID:      params.ExternalID,
			Amount:          params.Amount.Round(2),
			PayerName:       params.PayerName,
			PayerDocument:   params.PayerDocument,
			Description:     params.Description,
			Status:          domain.CreditPending,
			TransactionDate: txDate,
		})
		if err != nil {
			return err
		}

		return s.auditRepo.Record(ctx, &domain.AuditRecord{
			ActorID:    actorID,
			Action:     "CREDIT_REGISTERED",
			EntityType: "INCOMING_CREDIT",
			EntityID:   credit.UUID,
			NewValues: map[string]any{
				"external_id": credit.ExternalID,
				"amount":      credit.Amount.StringFixed(2),
				"payer_name":  credit.PayerName,
			},
		})
	})
	if err != nil {
		// Another notification for the same payment raced us into the
		// unique index. Fetch what it stored and report the replay.
		if errors.Is(err, domain.ErrConflict) {
			existing, findErr := s.creditRepo.FindByExternalID(ctx, params.ExternalID)
			if findErr != nil {
				return nil, false, findErr
			}
			if existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	s.collector.CreditsRegistered.Inc()
	zap.L().Info("incoming credit registered",
		zap.String("credit_uuid", credit.UUID),
		zap.String("external_id", credit.ExternalID),
		zap.String("amount", credit.Amount.StringFixed(2)),
	)
	return credit, true, nil
}

// Cancel marks a still pending credit as cancelled, e.g. when the gateway
// retracts the payment. Allocated credits cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, creditUUID, reason string, actor *domain.Account) (*domain.IncomingCredit, error) {
	var credit *domain.IncomingCredit
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		credit, err = s.creditRepo.FindByUUIDForUpdate(ctx, creditUUID)
		if err != nil {
			return err
		}
		if credit == nil {
			return ErrCreditNotFound
		}
		if !credit.IsPending() {
			return ErrCreditNotPending
		}

		if err := s.creditRepo.UpdateStatus(ctx, credit.ID, domain.CreditPending, domain.CreditCancelled, nil); err != nil {
			return err
		}
		credit.Status = domain.CreditCancelled

		return s.auditRepo.Record(ctx, &domain.AuditRecord{
			ActorID:    actor.ID,
			ActorEmail: actor.Email,
			ActorRole:  string(actor.Role),
			Action:     "CREDIT_CANCELLED",
			EntityType: "INCOMING_CREDIT",
			EntityID:   credit.UUID,
			OldValues:  map[string]any{"status": string(domain.CreditPending)},
			NewValues:  map[string]any{"status": string(domain.CreditCancelled), "reason": reason},
		})
	})
	if err != nil {
		return nil, err
	}
	return credit, nil
}

// MarkRefunded transitions a pending credit to refunded after the money was
// returned to the payer outside the ledger.
func (s *Service) MarkRefunded(ctx context.Context, creditUUID string, actor *domain.Account) (*domain.IncomingCredit, error) {
	var credit *domain.IncomingCredit
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		credit, err = s.creditRepo.FindByUUIDForUpdate(ctx, creditUUID)
		if err != nil {
			return err
		}
		if credit == nil {
			return ErrCreditNotFound
		}
		if !credit.IsPending() {
			return ErrCreditNotPending
		}

		if err := s.creditRepo.UpdateStatus(ctx, credit.ID, domain.CreditPending, domain.CreditRefunded, nil); err != nil {
			return err
		}
		credit.Status = domain.CreditRefunded

		return s.auditRepo.Record(ctx, &domain.AuditRecord{
			ActorID:    actor.ID,
			ActorEmail: actor.Email,
			ActorRole:  string(actor.Role),
			Action:     "CREDIT_REFUNDED",
			EntityType: "INCOMING_CREDIT",
			EntityID:   credit.UUID,
			OldValues:  map[string]any{"status": string(domain.CreditPending)},
			NewValues:  map[string]any{"status": string(domain.CreditRefunded)},
		})
	})
	if err != nil {
		return nil, err
	}
	return credit, nil
}

// GetCredit returns one credit by its public identifier.
func (s *Service) GetCredit(ctx context.Context, creditUUID string) (*domain.IncomingCredit, error) {
	credit, err := s.creditRepo.FindByUUID(ctx, creditUUID)
	if err != nil {
		return nil, err
	}
	if credit == nil {
		return nil, ErrCreditNotFound
	}
	return credit, nil
}

// GetPending lists credits awaiting allocation, newest first, with the count
// and total amount of the whole pending set.
func (s *Service) GetPending(ctx context.Context, limit, offset int) ([]domain.IncomingCredit, int, decimal.Decimal, error) {
	credits, total, totalAmount, err := s.creditRepo.FindPending(ctx, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch pending credits", zap.Error(err))
		return nil, 0, decimal.Zero, err
	}
	return credits, total, totalAmount, nil
}
