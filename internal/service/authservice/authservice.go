package authservice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/pg"
	"github.com/brpay/pixledger/pkg/auth"
)

type AccountRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id int) (*domain.Account, error)
	FindByUUID(ctx context.Context, accountUUID string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdateStatus(ctx context.Context, accountID int, status domain.AccountStatus) error
	Anonymize(ctx context.Context, accountID int) error
	FindAll(ctx context.Context, limit, offset int) ([]domain.Account, error)
}

type AuditRepo interface {
	Record(ctx context.Context, rec *domain.AuditRecord) error
}

var (
	ErrEmailTaken         = fmt.Errorf("email already registered: %w", domain.ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrValidation)
	ErrAccountNotFound    = fmt.Errorf("account: %w", domain.ErrNotFound)
	ErrAccountBlocked     = fmt.Errorf("account is blocked: %w", domain.ErrInvalidState)
	ErrAccountNotBlocked  = fmt.Errorf("account is not blocked: %w", domain.ErrInvalidState)
)

const tokenTTL = 15 * time.Minute

type Service struct {
	accountRepo AccountRepo
	auditRepo   AuditRepo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	txManager   pg.TXManager
}

func New(accountRepo AccountRepo, auditRepo AuditRepo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, txManager pg.TXManager) *Service {
	return &Service{
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		hashService: hashService,
		jwtService:  jwtService,
		txManager:   txManager,
	}
}

// Register creates an active holder account. Operators are never created
// through this path; they are seeded or promoted administratively.
func (s *Service) Register(ctx context.Context, email, password, fullName, document string) (*domain.Account, error) {
	existing, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find account", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		zap.L().Info("email already registered", zap.String("email", email))
		return nil, ErrEmailTaken
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, err
	}

	account, err := s.accountRepo.Create(ctx, &domain.Account{
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     fullName,
		Document:     document,
		Role:         domain.RoleHolder,
		Status:       domain.AccountActive,
	})
	if err != nil {
		zap.L().Error("can't create account", zap.Error(err))
		return nil, err
	}

	zap.L().Info("account registered", zap.String("email", email), zap.String("account_uuid", account.UUID))
	return account, nil
}

// Authenticate checks the credentials and rejects anything but an active
// account.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil || account == nil {
		zap.L().Info("authentication failed", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(account.PasswordHash, password); !ok {
		zap.L().Info("authentication failed", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	if account.Status == domain.AccountBlocked {
		return nil, ErrAccountBlocked
	}
	zap.L().Info("account authenticated", zap.String("email", email))
	return account, nil
}

// GenerateToken issues a short-lived JWT carrying the account's role.
func (s *Service) GenerateToken(account *domain.Account) (string, error) {
	token, err := s.jwtService.GenerateJWT(account.ID, string(account.Role), time.Now().Add(tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}

// GetAccount returns one account by its public identifier.
func (s *Service) GetAccount(ctx context.Context, accountUUID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindByUUID(ctx, accountUUID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// GetAccountByID returns one account by its internal id, used to resolve the
// authenticated caller.
func (s *Service) GetAccountByID(ctx context.Context, id int) (*domain.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// ListAccounts pages through all accounts for operator views.
func (s *Service) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	return s.accountRepo.FindAll(ctx, limit, offset)
}

// BlockAccount blocks an account and strips its personal data. History stays:
// the ledger keeps every entry, only the identity fields are anonymized.
func (s *Service) BlockAccount(ctx context.Context, accountUUID string, operator *domain.Account) (*domain.Account, error) {
	var account *domain.Account
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.accountRepo.FindByUUID(ctx, accountUUID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFound
		}

		if err := s.accountRepo.UpdateStatus(ctx, account.ID, domain.AccountBlocked); err != nil {
			return err
		}
		if err := s.accountRepo.Anonymize(ctx, account.ID); err != nil {
			return err
		}
		oldStatus := account.Status
		account.Status = domain.AccountBlocked

		return s.auditRepo.Record(ctx, &domain.AuditRecord{
			ActorID:    operator.ID,
			ActorEmail: operator.Email,
			ActorRole:  string(operator.Role),
			Action:     "ACCOUNT_BLOCKED",
			EntityType: "ACCOUNT",
			EntityID:   account.UUID,
			OldValues:  map[string]any{"status": string(oldStatus)},
			NewValues:  map[string]any{"status": string(domain.AccountBlocked)},
		})
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("account blocked", zap.String("account_uuid", accountUUID), zap.Int("by", operator.ID))
	return account, nil
}

// UnblockAccount reinstates a blocked account as inactive; an operator marks
// it active again once the holder re-verifies.
func (s *Service) UnblockAccount(ctx context.Context, accountUUID string, operator *domain.Account) (*domain.Account, error) {
	var account *domain.Account
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.accountRepo.FindByUUID(ctx, accountUUID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFound
		}
		if account.Status != domain.AccountBlocked {
			return ErrAccountNotBlocked
		}

		if err := s.accountRepo.UpdateStatus(ctx, account.ID, domain.AccountInactive); err != nil {
			return err
		}
		account.Status = domain.AccountInactive

		return s.auditRepo.Record(ctx, &domain.AuditRecord{
			ActorID:    operator.ID,
			ActorEmail: operator.Email,
			ActorRole:  string(operator.Role),
			Action:     "ACCOUNT_UNBLOCKED",
			EntityType: "ACCOUNT",
			EntityID:   account.UUID,
			OldValues:  map[string]any{"status": string(domain.AccountBlocked)},
			NewValues:  map[string]any{"status": string(domain.AccountInactive)},
		})
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// ActivateAccount marks an inactive account active.
func (s *Service) ActivateAccount(ctx context.Context, accountUUID string, operator *domain.Account) (*domain.Account, error) {
	var account *domain.Account
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.accountRepo.FindByUUID(ctx, accountUUID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFound
		}
		if account.Status == domain.AccountBlocked {
			return ErrAccountBlocked
		}

		if err := s.accountRepo.UpdateStatus(ctx, account.ID, domain.AccountActive); err != nil {
			return err
		}
		oldStatus := account.Status
		account.Status = domain.AccountActive

		return s.auditRepo.Record(ctx, &domain.AuditRecord{
			ActorID:    operator.ID,
			ActorEmail: operator.Email,
			ActorRole:  string(operator.Role),
			Action:     "ACCOUNT_ACTIVATED",
			EntityType: "ACCOUNT",
			EntityID:   account.UUID,
			OldValues:  map[string]any{"status": string(oldStatus)},
			NewValues:  map[string]any{"status": string(domain.AccountActive)},
		})
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}
