package ledgerservice

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/brpay/pixledger/internal/domain"
	ledgerrepo "github.com/brpay/pixledger/internal/repo/ledger-repo"
)

func NewMock(t *testing.T) (*Service, *MockLedgerRepo, *MockAccountRepo) {
	ctrl := gomock.NewController(t)
	ledgerRepo := NewMockLedgerRepo(ctrl)
	accountRepo := NewMockAccountRepo(ctrl)
	service := New(ledgerRepo, accountRepo)
	defer ctrl.Finish()
	return service, ledgerRepo, accountRepo
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// buildChain produces a well formed entry chain for one account, replaying
// the running balance and hash links the same way appends do.
func buildChain(accountID int, moves []struct {
	entryType domain.EntryType
	direction domain.EntryDirection
	amount    string
}) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, 0, len(moves))
	running := decimal.Zero
	prevHash := ""
	var prevID *int64
	for i, m := range moves {
		e := domain.LedgerEntry{
			ID:        int64(i + 1),
			AccountID: accountID,
			EntryType: m.entryType,
			Direction: m.direction,
			Amount:    dec(m.amount),
			CreatedAt: time.Date(2024, 9, 1, 10, i, 0, 0, time.UTC),
		}
		running = running.Add(e.SignedAmount())
		e.BalanceAfter = running
		e.PreviousEntryID = prevID
		e.EntryHash = ledgerrepo.ChainHash(&e, prevHash)

		entries = append(entries, e)
		prevHash = e.EntryHash
		id := e.ID
		prevID = &id
	}
	return entries
}

func TestGetBalance(t *testing.T) {
	holder := &domain.Account{ID: 7, Role: domain.RoleHolder, Status: domain.AccountActive}

	tests := []struct {
		name            string
		prepareMock     func(ledgerRepo *MockLedgerRepo, accountRepo *MockAccountRepo)
		expectedBalance decimal.Decimal
		expectedError   error
	}{
		{
			name: "Balance is the latest entry's balance_after",
			prepareMock: func(ledgerRepo *MockLedgerRepo, accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().FindByID(gomock.Any(), 7).Return(holder, nil)
				ledgerRepo.EXPECT().FindLatestByAccount(gomock.Any(), 7).Return(
					&domain.LedgerEntry{ID: 42, AccountID: 7, BalanceAfter: dec("90.00")}, nil)
			},
			expectedBalance: dec("90.00"),
		},
		{
			name: "Account with no entries has zero balance",
			prepareMock: func(ledgerRepo *MockLedgerRepo, accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().FindByID(gomock.Any(), 7).Return(holder, nil)
				ledgerRepo.EXPECT().FindLatestByAccount(gomock.Any(), 7).Return(nil, nil)
			},
			expectedBalance: decimal.Zero,
		},
		{
			name: "Unknown account",
			prepareMock: func(_ *MockLedgerRepo, accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().FindByID(gomock.Any(), 7).Return(nil, nil)
			},
			expectedError: ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, ledgerRepo, accountRepo := NewMock(t)
			tt.prepareMock(ledgerRepo, accountRepo)

			balance, err := service.GetBalance(context.Background(), 7)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.expectedBalance.Equal(balance.Current))
			}
		})
	}
}

func TestGetExtract(t *testing.T) {
	holder := &domain.Account{ID: 7, Role: domain.RoleHolder, Status: domain.AccountActive}
	from := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 9, 30, 23, 59, 59, 0, time.UTC)

	service, ledgerRepo, accountRepo := NewMock(t)
	accountRepo.EXPECT().FindByID(gomock.Any(), 7).Return(holder, nil)
	ledgerRepo.EXPECT().FindLastBefore(gomock.Any(), 7, from).Return(
		&domain.LedgerEntry{ID: 10, AccountID: 7, BalanceAfter: dec("100.00")}, nil)
	ledgerRepo.EXPECT().FindByAccount(gomock.Any(), 7, ledgerrepo.Filter{
		From: &from, To: &to, Limit: 50, Offset: 0, Ascending: true,
	}).Return([]domain.LedgerEntry{
		{ID: 11, Direction: domain.DirectionCredit, Amount: dec("90.00"), BalanceAfter: dec("190.00")},
		{ID: 12, Direction: domain.DirectionDebit, Amount: dec("40.00"), BalanceAfter: dec("150.00")},
	}, nil)
	ledgerRepo.EXPECT().SumByDirection(gomock.Any(), 7, &from, &to).Return(dec("90.00"), dec("40.00"), nil)
	ledgerRepo.EXPECT().FindByAccount(gomock.Any(), 7, ledgerrepo.Filter{
		From: &from, To: &to, Limit: 1,
	}).Return([]domain.LedgerEntry{
		{ID: 12, Direction: domain.DirectionDebit, Amount: dec("40.00"), BalanceAfter: dec("150.00")},
	}, nil)

	extract, err := service.GetExtract(context.Background(), 7, &from, &to, 50, 0)
	assert.NoError(t, err)
	assert.True(t, dec("100.00").Equal(extract.OpeningBalance))
	assert.True(t, dec("150.00").Equal(extract.ClosingBalance))
	assert.True(t, dec("90.00").Equal(extract.TotalCredits))
	assert.True(t, dec("40.00").Equal(extract.TotalDebits))
	assert.True(t, extract.ClosingBalance.Equal(
		extract.OpeningBalance.Add(extract.TotalCredits).Sub(extract.TotalDebits)))
	assert.Len(t, extract.Entries, 2)
}

func TestGetExtractOpenPeriod(t *testing.T) {
	holder := &domain.Account{ID: 7, Role: domain.RoleHolder, Status: domain.AccountActive}

	service, ledgerRepo, accountRepo := NewMock(t)
	accountRepo.EXPECT().FindByID(gomock.Any(), 7).Return(holder, nil)
	ledgerRepo.EXPECT().FindByAccount(gomock.Any(), 7, ledgerrepo.Filter{
		Limit: 50, Offset: 0, Ascending: true,
	}).Return(nil, nil)
	ledgerRepo.EXPECT().SumByDirection(gomock.Any(), 7, nil, nil).Return(dec("90.00"), dec("40.00"), nil)
	ledgerRepo.EXPECT().FindByAccount(gomock.Any(), 7, ledgerrepo.Filter{Limit: 1}).Return([]domain.LedgerEntry{
		{ID: 12, Direction: domain.DirectionDebit, Amount: dec("40.00"), BalanceAfter: dec("50.00")},
	}, nil)

	extract, err := service.GetExtract(context.Background(), 7, nil, nil, 50, 0)
	assert.NoError(t, err)
	assert.True(t, extract.OpeningBalance.IsZero())
	assert.True(t, dec("50.00").Equal(extract.ClosingBalance))
}

func TestGetExtractClosingFromStoredBalance(t *testing.T) {
	holder := &domain.Account{ID: 7, Role: domain.RoleHolder, Status: domain.AccountActive}
	from := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 9, 30, 23, 59, 59, 0, time.UTC)

	service, ledgerRepo, accountRepo := NewMock(t)
	accountRepo.EXPECT().FindByID(gomock.Any(), 7).Return(holder, nil)
	ledgerRepo.EXPECT().FindLastBefore(gomock.Any(), 7, from).Return(
		&domain.LedgerEntry{ID: 10, AccountID: 7, BalanceAfter: dec("100.00")}, nil)
	ledgerRepo.EXPECT().FindByAccount(gomock.Any(), 7, ledgerrepo.Filter{
		From: &from, To: &to, Limit: 50, Offset: 0, Ascending: true,
	}).Return([]domain.LedgerEntry{
		{ID: 11, Direction: domain.DirectionCredit, Amount: dec("90.00"), BalanceAfter: dec("190.00")},
	}, nil)
	ledgerRepo.EXPECT().SumByDirection(gomock.Any(), 7, &from, &to).Return(dec("90.00"), dec("40.00"), nil)
	// The last stored entry disagrees with the period sums: the statement must
	// report what the ledger says so the discrepancy is visible.
	ledgerRepo.EXPECT().FindByAccount(gomock.Any(), 7, ledgerrepo.Filter{
		From: &from, To: &to, Limit: 1,
	}).Return([]domain.LedgerEntry{
		{ID: 12, Direction: domain.DirectionDebit, Amount: dec("40.00"), BalanceAfter: dec("999.99")},
	}, nil)

	extract, err := service.GetExtract(context.Background(), 7, &from, &to, 50, 0)
	assert.NoError(t, err)
	assert.True(t, dec("999.99").Equal(extract.ClosingBalance))
	assert.False(t, extract.ClosingBalance.Equal(
		extract.OpeningBalance.Add(extract.TotalCredits).Sub(extract.TotalDebits)))
}

func TestVerifyChain(t *testing.T) {
	moves := []struct {
		entryType domain.EntryType
		direction domain.EntryDirection
		amount    string
	}{
		{domain.EntryPixCredit, domain.DirectionCredit, "90.00"},
		{domain.EntryTransferOut, domain.DirectionDebit, "40.00"},
		{domain.EntryAdjustmentCredit, domain.DirectionCredit, "40.00"},
	}

	t.Run("Valid chain replays cleanly", func(t *testing.T) {
		service, ledgerRepo, _ := NewMock(t)
		ledgerRepo.EXPECT().FindAllByAccount(gomock.Any(), 7).Return(buildChain(7, moves), nil)

		report, err := service.VerifyChain(context.Background(), 7)
		assert.NoError(t, err)
		assert.True(t, report.Valid)
		assert.Equal(t, 3, report.Entries)
	})

	t.Run("Tampered balance is detected", func(t *testing.T) {
		service, ledgerRepo, _ := NewMock(t)
		entries := buildChain(7, moves)
		entries[1].BalanceAfter = dec("60.00")
		ledgerRepo.EXPECT().FindAllByAccount(gomock.Any(), 7).Return(entries, nil)

		report, err := service.VerifyChain(context.Background(), 7)
		assert.NoError(t, err)
		assert.False(t, report.Valid)
		assert.Equal(t, int64(2), report.BrokenAtID)
	})

	t.Run("Tampered amount breaks the hash link", func(t *testing.T) {
		service, ledgerRepo, _ := NewMock(t)
		entries := buildChain(7, moves)
		// Consistent balances but a rewritten amount: the replayed running
		// balance diverges at the altered entry.
		entries[2].Amount = dec("45.00")
		ledgerRepo.EXPECT().FindAllByAccount(gomock.Any(), 7).Return(entries, nil)

		report, err := service.VerifyChain(context.Background(), 7)
		assert.NoError(t, err)
		assert.False(t, report.Valid)
		assert.Equal(t, int64(3), report.BrokenAtID)
	})

	t.Run("Empty account is trivially valid", func(t *testing.T) {
		service, ledgerRepo, _ := NewMock(t)
		ledgerRepo.EXPECT().FindAllByAccount(gomock.Any(), 7).Return(nil, nil)

		report, err := service.VerifyChain(context.Background(), 7)
		assert.NoError(t, err)
		assert.True(t, report.Valid)
		assert.Equal(t, 0, report.Entries)
	})
}
