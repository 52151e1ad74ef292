package allocations

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/dto"
	"github.com/brpay/pixledger/internal/service/allocationservice"
	"github.com/brpay/pixledger/pkg/auth"
)

const (
	creditUUID  = "7b8a27d1-4e53-4f26-a2c9-88f1a22f73cd"
	accountUUID = "a908f2a7-0d0e-4b9f-bd01-5fcf8c9d3f1f"
)

func NewMock(t *testing.T) (*AllocationHandler, *MockService, *MockAccountResolver) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	accounts := NewMockAccountResolver(ctrl)
	handler := New(service, accounts)
	return handler, service, accounts
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func operatorContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, auth.AccountIDKey, 1)
	return context.WithValue(ctx, auth.RoleKey, "OPERATOR")
}

func TestSimulateHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	t.Run("Percentage simulation", func(t *testing.T) {
		service.EXPECT().
			Simulate(gomock.Any(), creditUUID, domain.DiscountPercentage, dec("10")).
			Return(&allocationservice.Simulation{
				GrossAmount:        dec("100.00"),
				DiscountType:       domain.DiscountPercentage,
				DiscountValue:      dec("10"),
				DiscountAmount:     dec("10.00"),
				NetAmount:          dec("90.00"),
				CompanyMargin:      dec("10.00"),
				DiscountPercentage: dec("10"),
			}, nil)

		body := `{"credit_uuid":"` + creditUUID + `","discount_type":"PERCENTAGE","discount_value":"10"}`
		r := httptest.NewRequest(http.MethodPost, "/api/allocations/simulate", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		handler.Simulate(w, r)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.SimulationResponseDTO
		_ = json.NewDecoder(w.Body).Decode(&resp)
		assert.Equal(t, "90", resp.NetAmount.String())
		assert.Equal(t, "10", resp.CompanyMargin.String())
	})

	t.Run("Credit not found", func(t *testing.T) {
		service.EXPECT().
			Simulate(gomock.Any(), creditUUID, domain.DiscountFixed, dec("5")).
			Return(nil, allocationservice.ErrCreditNotFound)

		body := `{"credit_uuid":"` + creditUUID + `","discount_type":"FIXED","discount_value":"5"}`
		r := httptest.NewRequest(http.MethodPost, "/api/allocations/simulate", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		handler.Simulate(w, r)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Unknown discount type rejected by validation", func(t *testing.T) {
		body := `{"credit_uuid":"` + creditUUID + `","discount_type":"GIFT","discount_value":"5"}`
		r := httptest.NewRequest(http.MethodPost, "/api/allocations/simulate", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		handler.Simulate(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAllocateHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	allocation := &domain.Allocation{
		UUID:           "alloc-uuid",
		CreditUUID:     creditUUID,
		AccountUUID:    accountUUID,
		GrossAmount:    dec("100.00"),
		DiscountType:   domain.DiscountPercentage,
		DiscountValue:  dec("10"),
		DiscountAmount: dec("10.00"),
		NetAmount:      dec("90.00"),
		CompanyMargin:  dec("10.00"),
		AllocatedAt:    time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	entry := &domain.LedgerEntry{BalanceAfter: dec("90.00")}

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful allocation",
			body: `{"credit_uuid":"` + creditUUID + `","account_uuid":"` + accountUUID + `","discount_type":"PERCENTAGE","discount_value":"10"}`,
			prepareMock: func() {
				service.EXPECT().
					Allocate(gomock.Any(), creditUUID, accountUUID, domain.DiscountPercentage, dec("10"), 1, "").
					Return(allocation, entry, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Credit already allocated",
			body: `{"credit_uuid":"` + creditUUID + `","account_uuid":"` + accountUUID + `","discount_type":"PERCENTAGE","discount_value":"10"}`,
			prepareMock: func() {
				service.EXPECT().
					Allocate(gomock.Any(), creditUUID, accountUUID, domain.DiscountPercentage, dec("10"), 1, "").
					Return(nil, nil, allocationservice.ErrCreditNotPending)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Blocked target account",
			body: `{"credit_uuid":"` + creditUUID + `","account_uuid":"` + accountUUID + `","discount_type":"FIXED","discount_value":"5"}`,
			prepareMock: func() {
				service.EXPECT().
					Allocate(gomock.Any(), creditUUID, accountUUID, domain.DiscountFixed, dec("5"), 1, "").
					Return(nil, nil, allocationservice.ErrAccountNotEligible)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Discount exceeds amount",
			body: `{"credit_uuid":"` + creditUUID + `","account_uuid":"` + accountUUID + `","discount_type":"FIXED","discount_value":"500"}`,
			prepareMock: func() {
				service.EXPECT().
					Allocate(gomock.Any(), creditUUID, accountUUID, domain.DiscountFixed, dec("500"), 1, "").
					Return(nil, nil, allocationservice.ErrDiscountExceedsAmount)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Malformed credit uuid",
			body:         `{"credit_uuid":"not-a-uuid","account_uuid":"` + accountUUID + `","discount_type":"FIXED","discount_value":"5"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/allocations", bytes.NewBufferString(tt.body))
			r = r.WithContext(operatorContext(r.Context()))
			w := httptest.NewRecorder()
			handler.Allocate(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var resp dto.AllocationResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&resp)
				assert.Equal(t, "90", resp.NetAmount.String())
				assert.Equal(t, "90", resp.BalanceAfter.String())
				assert.Equal(t, accountUUID, resp.AccountUUID)
			}
		})
	}
}

func TestGetAllocationsHandler(t *testing.T) {
	handler, service, accounts := NewMock(t)

	t.Run("Holder sees only own allocations", func(t *testing.T) {
		holder := &domain.Account{ID: 7, Role: domain.RoleHolder}
		accounts.EXPECT().GetAccountByID(gomock.Any(), 7).Return(holder, nil)
		service.EXPECT().
			GetAllocations(gomock.Any(), &holder.ID, 20, 0).
			Return([]domain.Allocation{}, nil)

		r := httptest.NewRequest(http.MethodGet, "/api/allocations", nil)
		ctx := context.WithValue(r.Context(), auth.AccountIDKey, 7)
		ctx = context.WithValue(ctx, auth.RoleKey, "HOLDER")
		r = r.WithContext(ctx)
		w := httptest.NewRecorder()
		handler.GetAllocations(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Operator filters by account", func(t *testing.T) {
		operator := &domain.Account{ID: 1, Role: domain.RoleOperator}
		target := &domain.Account{ID: 7, UUID: accountUUID}
		accounts.EXPECT().GetAccountByID(gomock.Any(), 1).Return(operator, nil)
		accounts.EXPECT().GetAccount(gomock.Any(), accountUUID).Return(target, nil)
		service.EXPECT().
			GetAllocations(gomock.Any(), &target.ID, 20, 0).
			Return([]domain.Allocation{}, nil)

		r := httptest.NewRequest(http.MethodGet, "/api/allocations?account="+accountUUID, nil)
		r = r.WithContext(operatorContext(r.Context()))
		w := httptest.NewRecorder()
		handler.GetAllocations(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Operator without filter sees everything", func(t *testing.T) {
		operator := &domain.Account{ID: 1, Role: domain.RoleOperator}
		accounts.EXPECT().GetAccountByID(gomock.Any(), 1).Return(operator, nil)
		service.EXPECT().
			GetAllocations(gomock.Any(), gomock.Nil(), 20, 0).
			Return([]domain.Allocation{}, nil)

		r := httptest.NewRequest(http.MethodGet, "/api/allocations", nil)
		r = r.WithContext(operatorContext(r.Context()))
		w := httptest.NewRecorder()
		handler.GetAllocations(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
