package ledgerservice

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/brpay/pixledger/internal/domain"
	ledgerrepo "github.com/brpay/pixledger/internal/repo/ledger-repo"
)

type LedgerRepo interface {
	FindLatestByAccount(ctx context.Context, accountID int) (*domain.LedgerEntry, error)
	FindLastBefore(ctx context.Context, accountID int, before time.Time) (*domain.LedgerEntry, error)
	FindByAccount(ctx context.Context, accountID int, filter ledgerrepo.Filter) ([]domain.LedgerEntry, error)
	FindAllByAccount(ctx context.Context, accountID int) ([]domain.LedgerEntry, error)
	SumByDirection(ctx context.Context, accountID int, from, to *time.Time) (credits, debits decimal.Decimal, err error)
}

type AccountRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Account, error)
}

var ErrAccountNotFound = fmt.Errorf("account: %w", domain.ErrNotFound)

type Service struct {
	ledgerRepo  LedgerRepo
	accountRepo AccountRepo
}

func New(ledgerRepo LedgerRepo, accountRepo AccountRepo) *Service {
	return &Service{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

// Balance is a projection of the latest ledger entry; no stored balance
// column exists anywhere.
type Balance struct {
	AccountID   int
	Current     decimal.Decimal
	LastEntryID *int64
	AsOf        time.Time
}

// Extract is a statement of one account over a period, reconciled against
// the ledger itself.
type Extract struct {
	AccountID      int
	From           *time.Time
	To             *time.Time
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	TotalCredits   decimal.Decimal
	TotalDebits    decimal.Decimal
	Entries        []domain.LedgerEntry
}

// ChainReport is the result of replaying one account's chain from zero.
type ChainReport struct {
	AccountID  int
	Entries    int
	Valid      bool
	BrokenAtID int64
	Detail     string
}

// GetBalance returns the account's current balance, taken from the latest
// entry's balance_after.
func (s *Service) GetBalance(ctx context.Context, accountID int) (*Balance, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	last, err := s.ledgerRepo.FindLatestByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if last == nil {
		return &Balance{AccountID: accountID, Current: decimal.Zero, AsOf: time.Now().UTC()}, nil
	}
	return &Balance{
		AccountID:   accountID,
		Current:     last.BalanceAfter,
		LastEntryID: &last.ID,
		AsOf:        last.CreatedAt,
	}, nil
}

// GetExtract builds the account statement for a period. The opening balance
// is the last entry before the period, the closing balance the last entry
// inside it, and the totals are aggregated from the entries themselves.
func (s *Service) GetExtract(ctx context.Context, accountID int, from, to *time.Time, limit, offset int) (*Extract, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	opening := decimal.Zero
	if from != nil {
		prev, err := s.ledgerRepo.FindLastBefore(ctx, accountID, *from)
		if err != nil {
			return nil, err
		}
		if prev != nil {
			opening = prev.BalanceAfter
		}
	}

	entries, err := s.ledgerRepo.FindByAccount(ctx, accountID, ledgerrepo.Filter{
		From:      from,
		To:        to,
		Limit:     limit,
		Offset:    offset,
		Ascending: true,
	})
	if err != nil {
		return nil, err
	}

	credits, debits, err := s.ledgerRepo.SumByDirection(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}

	// Closing comes from the ledger itself, not from arithmetic over the
	// period, so a corrupted chain surfaces as a reconciliation mismatch.
	closing := opening
	lastInPeriod, err := s.ledgerRepo.FindByAccount(ctx, accountID, ledgerrepo.Filter{From: from, To: to, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(lastInPeriod) > 0 {
		closing = lastInPeriod[0].BalanceAfter
	}

	return &Extract{
		AccountID:      accountID,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		ClosingBalance: closing,
		TotalCredits:   credits,
		TotalDebits:    debits,
		Entries:        entries,
	}, nil
}

// GetEntries lists the account's ledger entries, newest first.
func (s *Service) GetEntries(ctx context.Context, accountID int, limit, offset int) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.FindByAccount(ctx, accountID, ledgerrepo.Filter{Limit: limit, Offset: offset})
	if err != nil {
		zap.L().Error("failed to fetch entries", zap.Int("account_id", accountID), zap.Error(err))
		return nil, err
	}
	return entries, nil
}

// VerifyChain replays the account's entire chain from a zero balance and
// reports the first entry, if any, whose running balance or hash link does
// not match what is stored.
func (s *Service) VerifyChain(ctx context.Context, accountID int) (*ChainReport, error) {
	entries, err := s.ledgerRepo.FindAllByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	report := &ChainReport{AccountID: accountID, Entries: len(entries), Valid: true}

	running := decimal.Zero
	prevHash := ""
	var prevID *int64
	for i := range entries {
		e := &entries[i]
		running = running.Add(e.SignedAmount())

		if !running.Equal(e.BalanceAfter) {
			report.Valid = false
			report.BrokenAtID = e.ID
			report.Detail = fmt.Sprintf("entry %d: stored balance %s, replayed %s",
				e.ID, e.BalanceAfter.StringFixed(2), running.StringFixed(2))
			return report, nil
		}

		if (prevID == nil) != (e.PreviousEntryID == nil) ||
			(prevID != nil && *prevID != *e.PreviousEntryID) {
			report.Valid = false
			report.BrokenAtID = e.ID
			report.Detail = fmt.Sprintf("entry %d: previous entry link mismatch", e.ID)
			return report, nil
		}

		if ledgerrepo.ChainHash(e, prevHash) != e.EntryHash {
			report.Valid = false
			report.BrokenAtID = e.ID
			report.Detail = fmt.Sprintf("entry %d: hash mismatch", e.ID)
			return report, nil
		}

		prevHash = e.EntryHash
		prevID = &e.ID
	}
	return report, nil
}
