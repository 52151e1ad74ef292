package allocationservice

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/pg"
	"github.com/brpay/pixledger/pkg/metrics"
)

func NewMock(t *testing.T) (*Service, *MockCreditRepo, *MockAccountRepo, *MockAllocationRepo, *MockLedgerRepo, *MockAuditRepo, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	creditRepo := NewMockCreditRepo(ctrl)
	accountRepo := NewMockAccountRepo(ctrl)
	allocationRepo := NewMockAllocationRepo(ctrl)
	ledgerRepo := NewMockLedgerRepo(ctrl)
	auditRepo := NewMockAuditRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	service := New(creditRepo, accountRepo, allocationRepo, ledgerRepo, auditRepo, txManager, metrics.NewCollector())
	defer ctrl.Finish()
	return service, creditRepo, accountRepo, allocationRepo, ledgerRepo, auditRepo, txManager
}

func passthroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name          string
		gross         decimal.Decimal
		discountType  domain.DiscountType
		discountValue decimal.Decimal
		expected      decimal.Decimal
		expectedError error
	}{
		{
			name:          "Percentage discount",
			gross:         dec("100.00"),
			discountType:  domain.DiscountPercentage,
			discountValue: dec("10"),
			expected:      dec("10.00"),
		},
		{
			name:          "Percentage discount rounds half up",
			gross:         dec("33.33"),
			discountType:  domain.DiscountPercentage,
			discountValue: dec("2.5"),
			expected:      dec("0.83"),
		},
		{
			name:          "Fixed discount",
			gross:         dec("250.00"),
			discountType:  domain.DiscountFixed,
			discountValue: dec("12.50"),
			expected:      dec("12.50"),
		},
		{
			name:          "Fixed discount equal to gross",
			gross:         dec("50.00"),
			discountType:  domain.DiscountFixed,
			discountValue: dec("50.00"),
			expected:      dec("50.00"),
		},
		{
			name:          "Discount exceeds gross",
			gross:         dec("50.00"),
			discountType:  domain.DiscountFixed,
			discountValue: dec("50.01"),
			expectedError: ErrDiscountExceedsAmount,
		},
		{
			name:          "Percentage over 100",
			gross:         dec("50.00"),
			discountType:  domain.DiscountPercentage,
			discountValue: dec("101"),
			expectedError: ErrDiscountExceedsAmount,
		},
		{
			name:          "Negative discount value",
			gross:         dec("50.00"),
			discountType:  domain.DiscountFixed,
			discountValue: dec("-1"),
			expectedError: ErrInvalidDiscount,
		},
		{
			name:          "Unknown discount type",
			gross:         dec("50.00"),
			discountType:  domain.DiscountType("BOGUS"),
			discountValue: dec("1"),
			expectedError: ErrInvalidDiscount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := computeDiscount(tt.gross, tt.discountType, tt.discountValue)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.expected.Equal(got), "expected %s got %s", tt.expected, got)
			}
		})
	}
}

func TestAllocate(t *testing.T) {
	operator := &domain.Account{ID: 1, UUID: "op-uuid", Email: "operator@pixledger.dev", Role: domain.RoleOperator, Status: domain.AccountActive}
	holder := &domain.Account{ID: 7, UUID: "acct-uuid", Email: "holder@pixledger.dev", Role: domain.RoleHolder, Status: domain.AccountActive}
	pendingCredit := func() *domain.IncomingCredit {
		return &domain.IncomingCredit{ID: 3, UUID: "credit-uuid", Amount: dec("100.00"), PayerName: "ACME LTDA", Status: domain.CreditPending}
	}

	tests := []struct {
		name           string
		discountType   domain.DiscountType
		discountValue  decimal.Decimal
		prepareMock    func(creditRepo *MockCreditRepo, accountRepo *MockAccountRepo, allocationRepo *MockAllocationRepo, ledgerRepo *MockLedgerRepo, auditRepo *MockAuditRepo, txManager *pg.MockTXManager)
		expectedNet    decimal.Decimal
		expectedMargin decimal.Decimal
		expectedError  error
	}{
		{
			name:          "Allocates with percentage discount",
			discountType:  domain.DiscountPercentage,
			discountValue: dec("10"),
			prepareMock: func(creditRepo *MockCreditRepo, accountRepo *MockAccountRepo, allocationRepo *MockAllocationRepo, ledgerRepo *MockLedgerRepo, auditRepo *MockAuditRepo, txManager *pg.MockTXManager) {
				passthroughTx(txManager)
				creditRepo.EXPECT().FindByUUIDForUpdate(gomock.Any(), "credit-uuid").Return(pendingCredit(), nil)
				accountRepo.EXPECT().FindByID(gomock.Any(), 1).Return(operator, nil)
				accountRepo.EXPECT().FindByUUID(gomock.Any(), "acct-uuid").Return(holder, nil)
				allocationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, a *domain.Allocation) (*domain.Allocation, error) {
						assert.True(t, dec("100.00").Equal(a.GrossAmount))
						assert.True(t, dec("10.00").Equal(a.DiscountAmount))
						assert.True(t, dec("90.00").Equal(a.NetAmount))
						assert.True(t, dec("10.00").Equal(a.CompanyMargin))
						a.ID = 11
						a.UUID = "alloc-uuid"
						return a, nil
					})
				ledgerRepo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error) {
						assert.Equal(t, domain.EntryPixCredit, e.EntryType)
						assert.Equal(t, domain.DirectionCredit, e.Direction)
						assert.True(t, dec("90.00").Equal(e.Amount))
						assert.Equal(t, "credit-uuid", e.ReferenceID)
						e.ID = 21
						e.BalanceAfter = dec("90.00")
						return e, nil
					})
				creditRepo.EXPECT().UpdateStatus(gomock.Any(), 3, domain.CreditPending, domain.CreditAllocated, gomock.Any()).Return(nil)
				auditRepo.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedNet:    dec("90.00"),
			expectedMargin: dec("10.00"),
		},
		{
			name:          "Allocates with fixed discount",
			discountType:  domain.DiscountFixed,
			discountValue: dec("15.50"),
			prepareMock: func(creditRepo *MockCreditRepo, accountRepo *MockAccountRepo, allocationRepo *MockAllocationRepo, ledgerRepo *MockLedgerRepo, auditRepo *MockAuditRepo, txManager *pg.MockTXManager) {
				passthroughTx(txManager)
				creditRepo.EXPECT().FindByUUIDForUpdate(gomock.Any(), "credit-uuid").Return(pendingCredit(), nil)
				accountRepo.EXPECT().FindByID(gomock.Any(), 1).Return(operator, nil)
				accountRepo.EXPECT().FindByUUID(gomock.Any(), "acct-uuid").Return(holder, nil)
				allocationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, a *domain.Allocation) (*domain.Allocation, error) {
						a.ID = 12
						a.UUID = "alloc-uuid-2"
						return a, nil
					})
				ledgerRepo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error) {
						e.ID = 22
						e.BalanceAfter = e.Amount
						return e, nil
					})
				creditRepo.EXPECT().UpdateStatus(gomock.Any(), 3, domain.CreditPending, domain.CreditAllocated, gomock.Any()).Return(nil)
				auditRepo.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedNet:    dec("84.50"),
			expectedMargin: dec("15.50"),
		},
		{
			name:          "Credit not found",
			discountType:  domain.DiscountPercentage,
			discountValue: dec("10"),
			prepareMock: func(creditRepo *MockCreditRepo, _ *MockAccountRepo, _ *MockAllocationRepo, _ *MockLedgerRepo, _ *MockAuditRepo, txManager *pg.MockTXManager) {
				passthroughTx(txManager)
				creditRepo.EXPECT().FindByUUIDForUpdate(gomock.Any(), "credit-uuid").Return(nil, nil)
			},
			expectedError: ErrCreditNotFound,
		},
		{
			name:          "Credit already allocated",
			discountType:  domain.DiscountPercentage,
			discountValue: dec("10"),
			prepareMock: func(creditRepo *MockCreditRepo, _ *MockAccountRepo, _ *MockAllocationRepo, _ *MockLedgerRepo, _ *MockAuditRepo, txManager *pg.MockTXManager) {
				passthroughTx(txManager)
				allocated := pendingCredit()
				allocated.Status = domain.CreditAllocated
				creditRepo.EXPECT().FindByUUIDForUpdate(gomock.Any(), "credit-uuid").Return(allocated, nil)
			},
			expectedError: ErrCreditNotPending,
		},
		{
			name:          "Blocked account is not eligible",
			discountType:  domain.DiscountPercentage,
			discountValue: dec("10"),
			prepareMock: func(creditRepo *MockCreditRepo, accountRepo *MockAccountRepo, _ *MockAllocationRepo, _ *MockLedgerRepo, _ *MockAuditRepo, txManager *pg.MockTXManager) {
				passthroughTx(txManager)
				creditRepo.EXPECT().FindByUUIDForUpdate(gomock.Any(), "credit-uuid").Return(pendingCredit(), nil)
				accountRepo.EXPECT().FindByID(gomock.Any(), 1).Return(operator, nil)
				blocked := &domain.Account{ID: 8, UUID: "acct-uuid", Role: domain.RoleHolder, Status: domain.AccountBlocked}
				accountRepo.EXPECT().FindByUUID(gomock.Any(), "acct-uuid").Return(blocked, nil)
			},
			expectedError: ErrAccountNotEligible,
		},
		{
			name:          "Discount exceeds gross",
			discountType:  domain.DiscountFixed,
			discountValue: dec("100.01"),
			prepareMock: func(creditRepo *MockCreditRepo, accountRepo *MockAccountRepo, _ *MockAllocationRepo, _ *MockLedgerRepo, _ *MockAuditRepo, txManager *pg.MockTXManager) {
				passthroughTx(txManager)
				creditRepo.EXPECT().FindByUUIDForUpdate(gomock.Any(), "credit-uuid").Return(pendingCredit(), nil)
				accountRepo.EXPECT().FindByID(gomock.Any(), 1).Return(operator, nil)
				accountRepo.EXPECT().FindByUUID(gomock.Any(), "acct-uuid").Return(holder, nil)
			},
			expectedError: ErrDiscountExceedsAmount,
		},
		{
			name:          "Concurrent allocation rejected by unique constraint",
			discountType:  domain.DiscountPercentage,
			discountValue: dec("10"),
			prepareMock: func(creditRepo *MockCreditRepo, accountRepo *MockAccountRepo, allocationRepo *MockAllocationRepo, _ *MockLedgerRepo, _ *MockAuditRepo, txManager *pg.MockTXManager) {
				passthroughTx(txManager)
				creditRepo.EXPECT().FindByUUIDForUpdate(gomock.Any(), "credit-uuid").Return(pendingCredit(), nil)
				accountRepo.EXPECT().FindByID(gomock.Any(), 1).Return(operator, nil)
				accountRepo.EXPECT().FindByUUID(gomock.Any(), "acct-uuid").Return(holder, nil)
				allocationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, domain.ErrConflict)
			},
			expectedError: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, creditRepo, accountRepo, allocationRepo, ledgerRepo, auditRepo, txManager := NewMock(t)
			tt.prepareMock(creditRepo, accountRepo, allocationRepo, ledgerRepo, auditRepo, txManager)

			allocation, entry, err := service.Allocate(context.Background(), "credit-uuid", "acct-uuid", tt.discountType, tt.discountValue, 1, "")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, allocation)
				assert.Nil(t, entry)
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.expectedNet.Equal(allocation.NetAmount), "net: expected %s got %s", tt.expectedNet, allocation.NetAmount)
				assert.True(t, tt.expectedMargin.Equal(allocation.CompanyMargin))
				assert.True(t, allocation.GrossAmount.Equal(allocation.DiscountAmount.Add(allocation.NetAmount)))
				assert.NotNil(t, entry)
			}
		})
	}
}

func TestSimulate(t *testing.T) {
	tests := []struct {
		name          string
		prepareMock   func(creditRepo *MockCreditRepo)
		discountType  domain.DiscountType
		discountValue decimal.Decimal
		expectedNet   decimal.Decimal
		expectedError error
	}{
		{
			name: "Simulates percentage discount",
			prepareMock: func(creditRepo *MockCreditRepo) {
				creditRepo.EXPECT().FindByUUID(gomock.Any(), "credit-uuid").Return(
					&domain.IncomingCredit{ID: 3, UUID: "credit-uuid", Amount: dec("200.00"), Status: domain.CreditPending}, nil)
			},
			discountType:  domain.DiscountPercentage,
			discountValue: dec("7.5"),
			expectedNet:   dec("185.00"),
		},
		{
			name: "Cancelled credit cannot be simulated",
			prepareMock: func(creditRepo *MockCreditRepo) {
				creditRepo.EXPECT().FindByUUID(gomock.Any(), "credit-uuid").Return(
					&domain.IncomingCredit{ID: 3, UUID: "credit-uuid", Amount: dec("200.00"), Status: domain.CreditCancelled}, nil)
			},
			discountType:  domain.DiscountPercentage,
			discountValue: dec("7.5"),
			expectedError: ErrCreditNotPending,
		},
		{
			name: "Repository error propagates",
			prepareMock: func(creditRepo *MockCreditRepo) {
				creditRepo.EXPECT().FindByUUID(gomock.Any(), "credit-uuid").Return(nil, errors.New("db error"))
			},
			discountType:  domain.DiscountPercentage,
			discountValue: dec("7.5"),
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, creditRepo, _, _, _, _, _ := NewMock(t)
			tt.prepareMock(creditRepo)

			sim, err := service.Simulate(context.Background(), "credit-uuid", tt.discountType, tt.discountValue)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.expectedNet.Equal(sim.NetAmount))
				assert.True(t, sim.GrossAmount.Equal(sim.DiscountAmount.Add(sim.NetAmount)))
				assert.True(t, sim.CompanyMargin.Equal(sim.DiscountAmount))
			}
		})
	}
}

func TestGetAllocations(t *testing.T) {
	service, _, _, allocationRepo, _, _, _ := NewMock(t)

	accountID := 7
	expected := []domain.Allocation{{ID: 1, UUID: "alloc-uuid", AccountID: 7, NetAmount: dec("90.00")}}
	allocationRepo.EXPECT().FindAll(gomock.Any(), &accountID, 50, 0).Return(expected, nil)

	got, err := service.GetAllocations(context.Background(), &accountID, 50, 0)
	assert.NoError(t, err)
	assert.Equal(t, expected, got)
}
