package allocationservice

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/pg"
	"github.com/brpay/pixledger/pkg/metrics"
)

type CreditRepo interface {
	FindByUUID(ctx context.Context, creditUUID string) (*domain.IncomingCredit, error)
	FindByUUIDForUpdate(ctx context.Context, creditUUID string) (*domain.IncomingCredit, error)
	UpdateStatus(ctx context.Context, creditID int, fromStatus, toStatus domain.CreditStatus, allocationID *int) error
}

type AccountRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Account, error)
	FindByUUID(ctx context.Context, accountUUID string) (*domain.Account, error)
}

type AllocationRepo interface {
	Create(ctx context.Context, allocation *domain.Allocation) (*domain.Allocation, error)
	FindByUUID(ctx context.Context, allocationUUID string) (*domain.Allocation, error)
	FindAll(ctx context.Context, accountID *int, limit, offset int) ([]domain.Allocation, error)
}

type LedgerRepo interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
}

type AuditRepo interface {
	Record(ctx context.Context, rec *domain.AuditRecord) error
}

var (
	ErrCreditNotFound        = fmt.Errorf("incoming credit: %w", domain.ErrNotFound)
	ErrCreditNotPending      = fmt.Errorf("incoming credit already allocated or cancelled: %w", domain.ErrInvalidState)
	ErrAccountNotEligible    = fmt.Errorf("target account not eligible: %w", domain.ErrValidation)
	ErrDiscountExceedsAmount = fmt.Errorf("discount exceeds gross amount: %w", domain.ErrValidation)
	ErrInvalidDiscount       = fmt.Errorf("invalid discount: %w", domain.ErrValidation)
)

type Service struct {
	creditRepo     CreditRepo
	accountRepo    AccountRepo
	allocationRepo AllocationRepo
	ledgerRepo     LedgerRepo
	auditRepo      AuditRepo
	txManager      pg.TXManager
	collector      *metrics.Collector
}

func New(creditRepo CreditRepo, accountRepo AccountRepo, allocationRepo AllocationRepo, ledgerRepo LedgerRepo, auditRepo AuditRepo, txManager pg.TXManager, collector *metrics.Collector) *Service {
	return &Service{
		creditRepo:     creditRepo,
		accountRepo:    accountRepo,
		allocationRepo: allocationRepo,
		ledgerRepo:     ledgerRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
		collector:      collector,
	}
}

// Simulation holds the figures an allocation would produce, without any
// persistence.
type Simulation struct {
	GrossAmount        decimal.Decimal
	DiscountType       domain.DiscountType
	DiscountValue      decimal.Decimal
	DiscountAmount     decimal.Decimal
	NetAmount          decimal.Decimal
	CompanyMargin      decimal.Decimal
	DiscountPercentage decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// computeDiscount rounds half-up to 2 decimals. net + discount == gross holds
// exactly: net is derived by subtraction, never rounded independently.
func computeDiscount(gross decimal.Decimal, discountType domain.DiscountType, discountValue decimal.Decimal) (decimal.Decimal, error) {
	if discountValue.IsNegative() {
		return decimal.Zero, ErrInvalidDiscount
	}

	var discountAmount decimal.Decimal
	switch discountType {
	case domain.DiscountPercentage:
		discountAmount = gross.Mul(discountValue).Div(hundred).Round(2)
	case domain.DiscountFixed:
		discountAmount = discountValue.Round(2)
	default:
		return decimal.Zero, ErrInvalidDiscount
	}

	if discountAmount.GreaterThan(gross) {
		return decimal.Zero, ErrDiscountExceedsAmount
	}
	return discountAmount, nil
}

// Simulate computes the allocation figures for a pending credit without
// locking or persisting anything. Used for operator preview.
func (s *Service) Simulate(ctx context.Context, creditUUID string, discountType domain.DiscountType, discountValue decimal.Decimal) (*Simulation, error) {
	credit, err := s.creditRepo.FindByUUID(ctx, creditUUID)
	if err != nil {
		return nil, err
	}
	if credit == nil {
		return nil, ErrCreditNotFound
	}
	if !credit.IsPending() {
		return nil, ErrCreditNotPending
	}

	discountAmount, err := computeDiscount(credit.Amount, discountType, discountValue)
	if err != nil {
		return nil, err
	}

	netAmount := credit.Amount.Sub(discountAmount)
	percentage := decimal.Zero
	if credit.Amount.IsPositive() {
		percentage = discountAmount.Div(credit.Amount).Mul(hundred).Round(2)
	}

	return &Simulation{
		GrossAmount:        credit.Amount,
		DiscountType:       discountType,
		DiscountValue:      discountValue,
		DiscountAmount:     discountAmount,
		NetAmount:          netAmount,
		CompanyMargin:      discountAmount,
		DiscountPercentage: percentage,
	}, nil
}

// Allocate distributes one pending incoming credit to a holder account:
// the credit row is locked, the discount computed, the allocation recorded,
// the net amount credited on the ledger, the credit marked Allocated and the
// action audited. All of it commits or none of it does.
func (s *Service) Allocate(ctx context.Context, creditUUID, accountUUID string, discountType domain.DiscountType, discountValue decimal.Decimal, operatorID int, notes string) (*domain.Allocation, *domain.LedgerEntry, error) {
	start := time.Now()

	var allocation *domain.Allocation
	var entry *domain.LedgerEntry

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		credit, err := s.creditRepo.FindByUUIDForUpdate(ctx, creditUUID)
		if err != nil {
			return err
		}
		if credit == nil {
			return ErrCreditNotFound
		}
		if !credit.IsPending() {
			return ErrCreditNotPending
		}

		operator, err := s.accountRepo.FindByID(ctx, operatorID)
		if err != nil {
			return err
		}
		if operator == nil {
			return fmt.Errorf("operator account: %w", domain.ErrNotFound)
		}

		target, err := s.accountRepo.FindByUUID(ctx, accountUUID)
		if err != nil {
			return err
		}
		if target == nil || !target.CanReceiveAllocation() {
			return ErrAccountNotEligible
		}

		discountAmount, err := computeDiscount(credit.Amount, discountType, discountValue)
		if err != nil {
			return err
		}
		netAmount := credit.Amount.Sub(discountAmount)

		allocation, err = s.allocationRepo.Create(ctx, &domain.Allocation{
			CreditID:       credit.ID,
			AccountID:      target.ID,
			AllocatedBy:    operator.ID,
			GrossAmount:    credit.Amount,
			DiscountType:   discountType,
			DiscountValue:  discountValue,
			DiscountAmount: discountAmount,
			NetAmount:      netAmount,
			CompanyMargin:  discountAmount,
			Notes:          notes,
		})
		if err != nil {
			return err
		}
		allocation.CreditUUID = credit.UUID
		allocation.AccountUUID = target.UUID

		description := fmt.Sprintf("PIX received from %s - net of discount", payerOrUnknown(credit))
		entry, err = s.ledgerRepo.Append(ctx, &domain.LedgerEntry{
			AllocationID:  &allocation.ID,
			CreditID:      &credit.ID,
			AccountID:     target.ID,
			EntryType:     domain.EntryPixCredit,
			Direction:     domain.DirectionCredit,
			Amount:        netAmount,
			Description:   description,
			ReferenceType: domain.ReferencePix,
			ReferenceID:   credit.UUID,
			CreatedBy:     operator.ID,
		})
		if err != nil {
			return err
		}

		if err := s.creditRepo.UpdateStatus(ctx, credit.ID, domain.CreditPending, domain.CreditAllocated, &allocation.ID); err != nil {
			return err
		}

		return s.auditRepo.Record(ctx, &domain.AuditRecord{
			ActorID:    operator.ID,
			ActorEmail: operator.Email,
			ActorRole:  string(operator.Role),
			Action:     "CREDIT_ALLOCATED",
			EntityType: "ALLOCATION",
			EntityID:   allocation.UUID,
			NewValues: map[string]any{
				"credit_uuid":     credit.UUID,
				"account_uuid":    target.UUID,
				"gross_amount":    credit.Amount.StringFixed(2),
				"discount_type":   string(discountType),
				"discount_value":  discountValue.String(),
				"discount_amount": discountAmount.StringFixed(2),
				"net_amount":      netAmount.StringFixed(2),
				"company_margin":  discountAmount.StringFixed(2),
				"balance_after":   entry.BalanceAfter.StringFixed(2),
			},
		})
	})
	if err != nil {
		s.collector.AllocationFailures.Inc()
		zap.L().Error("allocation failed", zap.String("credit_uuid", creditUUID), zap.Error(err))
		return nil, nil, err
	}

	s.collector.Allocations.Inc()
	s.collector.LedgerAppends.WithLabelValues(string(domain.EntryPixCredit)).Inc()
	s.collector.AllocationDuration.Observe(time.Since(start).Seconds())

	zap.L().Info("credit allocated",
		zap.String("allocation_uuid", allocation.UUID),
		zap.String("credit_uuid", creditUUID),
		zap.String("net_amount", allocation.NetAmount.StringFixed(2)),
	)
	return allocation, entry, nil
}

// GetAllocation returns one allocation by its public identifier.
func (s *Service) GetAllocation(ctx context.Context, allocationUUID string) (*domain.Allocation, error) {
	allocation, err := s.allocationRepo.FindByUUID(ctx, allocationUUID)
	if err != nil {
		return nil, err
	}
	if allocation == nil {
		return nil, fmt.Errorf("allocation: %w", domain.ErrNotFound)
	}
	return allocation, nil
}

// GetAllocations lists allocations, optionally narrowed to one account.
func (s *Service) GetAllocations(ctx context.Context, accountID *int, limit, offset int) ([]domain.Allocation, error) {
	allocations, err := s.allocationRepo.FindAll(ctx, accountID, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch allocations", zap.Error(err))
		return nil, err
	}
	return allocations, nil
}

func payerOrUnknown(credit *domain.IncomingCredit) string {
	if credit.PayerName == "" {
		return "unknown payer"
	}
	return credit.PayerName
}
