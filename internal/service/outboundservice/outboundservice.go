package outboundservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/gateway"
	"github.com/brpay/pixledger/internal/notify"
	"github.com/brpay/pixledger/internal/pg"
	"github.com/brpay/pixledger/pkg/metrics"
	"github.com/brpay/pixledger/pkg/validate"
)

type OutboundRepo interface {
	Create(ctx context.Context, req *domain.OutboundRequest) (*domain.OutboundRequest, error)
	FindByUUID(ctx context.Context, requestUUID string) (*domain.OutboundRequest, error)
	FindByUUIDForUpdate(ctx context.Context, requestUUID string) (*domain.OutboundRequest, error)
	Transition(ctx context.Context, req *domain.OutboundRequest, fromStatus domain.OutboundStatus) error
	FindByAccount(ctx context.Context, accountID int, status *domain.OutboundStatus, limit, offset int) ([]domain.OutboundRequest, error)
	FindByStatus(ctx context.Context, status domain.OutboundStatus, limit, offset int) ([]domain.OutboundRequest, error)
	ConfirmReceipt(ctx context.Context, requestID int, receiptRef string) error
}

type AccountRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Account, error)
}

type LedgerRepo interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	FindLatestByAccount(ctx context.Context, accountID int) (*domain.LedgerEntry, error)
	BalanceForUpdate(ctx context.Context, accountID int) (decimal.Decimal, error)
	FindByReference(ctx context.Context, referenceType, referenceID string) (*domain.LedgerEntry, error)
}

type AuditRepo interface {
	Record(ctx context.Context, rec *domain.AuditRecord) error
}

var (
	ErrRequestNotFound      = fmt.Errorf("outbound request: %w", domain.ErrNotFound)
	ErrRequestNotPending    = fmt.Errorf("outbound request not pending: %w", domain.ErrInvalidState)
	ErrNotRequester         = fmt.Errorf("only the requesting account may cancel: %w", domain.ErrValidation)
	ErrAccountNotEligible   = fmt.Errorf("account cannot send transfers: %w", domain.ErrValidation)
	ErrInvalidAmount        = fmt.Errorf("amount must be positive: %w", domain.ErrValidation)
	ErrInvalidRecipientKey  = fmt.Errorf("invalid recipient key: %w", domain.ErrValidation)
	ErrRejectionNeedsReason = fmt.Errorf("rejection requires a reason: %w", domain.ErrValidation)
	ErrDebitNotFound        = fmt.Errorf("original debit: %w", domain.ErrNotFound)
)

type Service struct {
	outboundRepo OutboundRepo
	accountRepo  AccountRepo
	ledgerRepo   LedgerRepo
	auditRepo    AuditRepo
	gateway      gateway.Client
	notifier     notify.Notifier
	txManager    pg.TXManager
	collector    *metrics.Collector
}

func New(outboundRepo OutboundRepo, accountRepo AccountRepo, ledgerRepo LedgerRepo, auditRepo AuditRepo, gw gateway.Client, notifier notify.Notifier, txManager pg.TXManager, collector *metrics.Collector) *Service {
	return &Service{
		outboundRepo: outboundRepo,
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		auditRepo:    auditRepo,
		gateway:      gw,
		notifier:     notifier,
		txManager:    txManager,
		collector:    collector,
	}
}

// RequestParams carries a holder's transfer instruction.
type RequestParams struct {
	Amount           decimal.Decimal
	RecipientKey     string
	RecipientKeyType string
	RecipientName    string
	Notes            string
}

// Request records a holder's intent to send money out. The balance check
// here is advisory: it rejects requests that are plainly unfundable at
// submission time. Nothing touches the ledger until an operator approves.
func (s *Service) Request(ctx context.Context, accountID int, params RequestParams) (*domain.OutboundRequest, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !validate.IsPixKey(params.RecipientKeyType, params.RecipientKey) {
		return nil, ErrInvalidRecipientKey
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account: %w", domain.ErrNotFound)
	}
	if !account.IsActive() {
		return nil, ErrAccountNotEligible
	}

	last, err := s.ledgerRepo.FindLatestByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	balance := decimal.Zero
	if last != nil {
		balance = last.BalanceAfter
	}
	if params.Amount.GreaterThan(balance) {
		return nil, fmt.Errorf("%w: requested %s, available %s",
			domain.ErrInsufficientFunds, params.Amount.StringFixed(2), balance.StringFixed(2))
	}

	var request *domain.OutboundRequest
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		request, err = s.outboundRepo.Create(ctx, &domain.OutboundRequest{
			AccountID:        accountID,
			Amount:           params.Amount.Round(2),
			RecipientKey:     params.RecipientKey,
			RecipientKeyType: params.RecipientKeyType,
			RecipientName:    params.RecipientName,
			Notes:            params.Notes,
			Status:           domain.OutboundPending,
		})
		if err != nil {
			return err
		}

		return s.auditRepo.Record(ctx, &domain.AuditRecord{
			ActorID:    account.ID,
			ActorEmail: account.Email,
			ActorRole:  string(account.Role),
			Action:     "OUTBOUND_REQUESTED",
			EntityType: "OUTBOUND_REQUEST",
			EntityID:   request.UUID,
			NewValues: map[string]any{
				"amount":        request.Amount.StringFixed(2),
				"recipient_key": request.RecipientKey,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, account, "OUTBOUND_REQUESTED", request.Amount, string(request.Status), request.UUID)
	return request, nil
}

// CancelRequest withdraws a still pending request. Only the requester may
// cancel; approved or rejected requests are final.
func (s *Service) CancelRequest(ctx context.Context, requestUUID string, accountID int) (*domain.OutboundRequest, error) {
	var request *domain.OutboundRequest
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.outboundRepo.FindByUUIDForUpdate(ctx, requestUUID)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrRequestNotFound
		}
		if request.AccountID != accountID {
			return ErrNotRequester
		}
		if request.Status != domain.OutboundPending {
			return ErrRequestNotPending
		}

		request.Status = domain.OutboundCancelled
		if err := s.outboundRepo.Transition(ctx, request, domain.OutboundPending); err != nil {
			return err
		}

		return s.auditRepo.Record(ctx, &domain.AuditRecord{
			ActorID:    accountID,
			Action:     "OUTBOUND_CANCELLED",
			EntityType: "OUTBOUND_REQUEST",
			EntityID:   request.UUID,
			OldValues:  map[string]any{"status": string(domain.OutboundPending)},
			NewValues:  map[string]any{"status": string(domain.OutboundCancelled)},
		})
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// Reject refuses a pending request without touching the ledger. The reason is
// mandatory and kept on the request for the holder to see.
func (s *Service) Reject(ctx context.Context, requestUUID string, operator *domain.Account, reason string) (*domain.OutboundRequest, error) {
	if reason == "" {
		return nil, ErrRejectionNeedsReason
	}

	var request *domain.OutboundRequest
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.outboundRepo.FindByUUIDForUpdate(ctx, requestUUID)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrRequestNotFound
		}
		if request.Status != domain.OutboundPending {
			return ErrRequestNotPending
		}

		now := time.Now().UTC()
		request.Status = domain.OutboundRejected
		request.RejectionReason = reason
		request.ProcessedBy = &operator.ID
		request.ProcessedAt = &now
		if err := s.outboundRepo.Transition(ctx, request, domain.OutboundPending); err != nil {
			return err
		}

		return s.auditRepo.Record(ctx, &domain.AuditRecord{
			ActorID:    operator.ID,
			ActorEmail: operator.Email,
			ActorRole:  string(operator.Role),
			Action:     "OUTBOUND_REJECTED",
			EntityType: "OUTBOUND_REQUEST",
			EntityID:   request.UUID,
			OldValues:  map[string]any{"status": string(domain.OutboundPending)},
			NewValues:  map[string]any{"status": string(domain.OutboundRejected), "reason": reason},
		})
	})
	if err != nil {
		return nil, err
	}

	s.collector.OutboundProcessed.WithLabelValues("reject").Inc()
	return request, nil
}

// Approve debits the holder and marks the request completed, atomically. The
// balance is re-read under the account lock inside the same transaction as
// the debit, so approval can never overdraw regardless of what has happened
// since the request was made. The operator may attach a receipt reference and
// an external settlement id; both land on the request row. The gateway call
// happens after commit; if the gateway refuses the transfer the debit is
// compensated through Reverse.
func (s *Service) Approve(ctx context.Context, requestUUID string, operator *domain.Account, receiptRef, settlementID string) (*domain.OutboundRequest, error) {
	var request *domain.OutboundRequest
	var entry *domain.LedgerEntry

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.outboundRepo.FindByUUIDForUpdate(ctx, requestUUID)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrRequestNotFound
		}
		if request.Status != domain.OutboundPending {
			return ErrRequestNotPending
		}

		balance, err := s.ledgerRepo.BalanceForUpdate(ctx, request.AccountID)
		if err != nil {
			return err
		}
		if request.Amount.GreaterThan(balance) {
			return fmt.Errorf("%w: requested %s, available %s",
				domain.ErrInsufficientFunds, request.Amount.StringFixed(2), balance.StringFixed(2))
		}

		entry, err = s.ledgerRepo.Append(ctx, &domain.LedgerEntry{
			AccountID:     request.AccountID,
			EntryType:     domain.EntryTransferOut,
			Direction:     domain.DirectionDebit,
			Amount:        request.Amount,
			Description:   fmt.Sprintf("PIX sent to %s", request.RecipientKey),
			ReferenceType: domain.ReferencePixOut,
			ReferenceID:   request.UUID,
			CreatedBy:     operator.ID,
		})
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		request.Status = domain.OutboundCompleted
		request.ProcessedBy = &operator.ID
		request.ProcessedAt = &now
		request.ReceiptRef = receiptRef
		request.SettlementID = settlementID
		if err := s.outboundRepo.Transition(ctx, request, domain.OutboundPending); err != nil {
			return err
		}

		return s.auditRepo.Record(ctx, &domain.AuditRecord{
			ActorID:    operator.ID,
			ActorEmail: operator.Email,
			ActorRole:  string(operator.Role),
			Action:     "OUTBOUND_APPROVED",
			EntityType: "OUTBOUND_REQUEST",
			EntityID:   request.UUID,
			OldValues:  map[string]any{"status": string(domain.OutboundPending)},
			NewValues: map[string]any{
				"status":        string(domain.OutboundCompleted),
				"amount":        request.Amount.StringFixed(2),
				"balance_after": entry.BalanceAfter.StringFixed(2),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.collector.OutboundProcessed.WithLabelValues("approve").Inc()
	s.collector.LedgerAppends.WithLabelValues(string(domain.EntryTransferOut)).Inc()

	s.submitTransfer(ctx, request)
	return request, nil
}

// submitTransfer hands the committed debit to the gateway. A refused or
// unreachable gateway triggers an immediate compensating reversal.
func (s *Service) submitTransfer(ctx context.Context, request *domain.OutboundRequest) {
	result, err := s.gateway.CreateTransfer(ctx, gateway.TransferRequest{
		CorrelationID:    request.UUID,
		Amount:           request.Amount,
		RecipientKey:     request.RecipientKey,
		RecipientKeyType: request.RecipientKeyType,
		RecipientName:    request.RecipientName,
	})
	if err != nil || !result.Accepted {
		reason := "gateway unreachable"
		if err == nil {
			reason = result.Message
		}
		zap.L().Warn("gateway refused transfer, reversing",
			zap.String("request_uuid", request.UUID), zap.String("reason", reason), zap.Error(err))
		if _, revErr := s.Reverse(ctx, request.UUID, reason); revErr != nil {
			zap.L().Error("failed to reverse refused transfer",
				zap.String("request_uuid", request.UUID), zap.Error(revErr))
		}
		return
	}

	request.SettlementID = result.GatewayRef
	if err := s.outboundRepo.Transition(ctx, request, domain.OutboundCompleted); err != nil {
		zap.L().Error("failed to store settlement id",
			zap.String("request_uuid", request.UUID), zap.Error(err))
	}
}

// Reverse credits back a previously debited outbound transfer. It is
// idempotent on the correlation id: replays return the already existing
// compensating entry, and the unique index on reversal references backstops
// any race between concurrent callers.
func (s *Service) Reverse(ctx context.Context, correlationID, reason string) (*domain.LedgerEntry, error) {
	existing, err := s.ledgerRepo.FindByReference(ctx, domain.ReferencePixReversal, correlationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		zap.L().Info("reversal already applied", zap.String("correlation_id", correlationID))
		return existing, nil
	}

	original, err := s.ledgerRepo.FindByReference(ctx, domain.ReferencePixOut, correlationID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrDebitNotFound
	}

	var entry *domain.LedgerEntry
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		entry, err = s.ledgerRepo.Append(ctx, &domain.LedgerEntry{
			AccountID:     original.AccountID,
			EntryType:     domain.EntryAdjustmentCredit,
			Direction:     domain.DirectionCredit,
			Amount:        original.Amount,
			Description:   fmt.Sprintf("Reversal of transfer %s: %s", correlationID, reason),
			ReferenceType: domain.ReferencePixReversal,
			ReferenceID:   correlationID,
			CreatedBy:     original.CreatedBy,
		})
		if err != nil {
			return err
		}

		return s.auditRepo.Record(ctx, &domain.AuditRecord{
			ActorID:    original.CreatedBy,
			Action:     "TRANSFER_REVERSED",
			EntityType: "LEDGER_ENTRY",
			EntityID:   entry.UUID,
			NewValues: map[string]any{
				"correlation_id": correlationID,
				"amount":         entry.Amount.StringFixed(2),
				"reason":         reason,
			},
		})
	})
	if err != nil {
		// A concurrent reversal won the unique index; return what it wrote.
		if errors.Is(err, domain.ErrConflict) {
			return s.ledgerRepo.FindByReference(ctx, domain.ReferencePixReversal, correlationID)
		}
		return nil, err
	}

	s.collector.Reversals.Inc()
	s.collector.LedgerAppends.WithLabelValues(string(domain.EntryAdjustmentCredit)).Inc()
	zap.L().Info("transfer reversed",
		zap.String("correlation_id", correlationID),
		zap.String("amount", entry.Amount.StringFixed(2)),
	)
	return entry, nil
}

// ProcessSettlement applies a gateway settlement report, whether it arrived
// by webhook or by polling. Completed settlements pin the receipt reference;
// failed or rejected ones are compensated. Replays are harmless.
func (s *Service) ProcessSettlement(ctx context.Context, correlationID, status, message string) error {
	request, err := s.outboundRepo.FindByUUID(ctx, correlationID)
	if err != nil {
		return err
	}
	if request == nil {
		return ErrRequestNotFound
	}

	switch status {
	case gateway.StatusCompleted:
		if request.ReceiptRef != "" {
			return nil
		}
		receiptRef := message
		if receiptRef == "" {
			receiptRef = request.SettlementID
		}
		return s.outboundRepo.ConfirmReceipt(ctx, request.ID, receiptRef)
	case gateway.StatusFailed, gateway.StatusRejected:
		_, err := s.Reverse(ctx, correlationID, fmt.Sprintf("settlement %s: %s", status, message))
		return err
	case gateway.StatusProcessing:
		return nil
	default:
		zap.L().Warn("unrecognized settlement status",
			zap.String("correlation_id", correlationID), zap.String("status", status))
		return nil
	}
}

// GetRequest returns one request by its public identifier.
func (s *Service) GetRequest(ctx context.Context, requestUUID string) (*domain.OutboundRequest, error) {
	request, err := s.outboundRepo.FindByUUID(ctx, requestUUID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	return request, nil
}

// GetRequests lists one account's requests, optionally filtered by status.
func (s *Service) GetRequests(ctx context.Context, accountID int, status *domain.OutboundStatus, limit, offset int) ([]domain.OutboundRequest, error) {
	return s.outboundRepo.FindByAccount(ctx, accountID, status, limit, offset)
}

// GetPendingRequests lists requests awaiting operator action, oldest first.
func (s *Service) GetPendingRequests(ctx context.Context, limit, offset int) ([]domain.OutboundRequest, error) {
	return s.outboundRepo.FindByStatus(ctx, domain.OutboundPending, limit, offset)
}

func (s *Service) notify(ctx context.Context, account *domain.Account, action string, amount decimal.Decimal, status, correlationID string) {
	err := s.notifier.Notify(ctx, notify.Event{
		RecipientEmail: account.Email,
		RecipientName:  account.FullName,
		Action:         action,
		Amount:         amount,
		Status:         status,
		CorrelationID:  correlationID,
	})
	if err != nil {
		zap.L().Warn("notification failed", zap.String("action", action), zap.Error(err))
	}
}
