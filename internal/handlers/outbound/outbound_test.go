package outbound

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/dto"
	"github.com/brpay/pixledger/internal/service/outboundservice"
	"github.com/brpay/pixledger/pkg/auth"
)

const requestUUID = "b5f1a0c2-91d3-4e14-8a77-2f35dd0a1c55"

func NewMock(t *testing.T) (*OutboundHandler, *MockService, *MockAccountResolver) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	accounts := NewMockAccountResolver(ctrl)
	handler := New(service, accounts)
	return handler, service, accounts
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func withAccount(r *http.Request, id int, role string) *http.Request {
	ctx := context.WithValue(r.Context(), auth.AccountIDKey, id)
	ctx = context.WithValue(ctx, auth.RoleKey, role)
	return r.WithContext(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func pendingRequest() *domain.OutboundRequest {
	return &domain.OutboundRequest{
		UUID:             requestUUID,
		AccountID:        7,
		Amount:           dec("80.00"),
		RecipientKey:     "payee@example.com",
		RecipientKeyType: "EMAIL",
		Status:           domain.OutboundPending,
	}
}

func TestGetRequestHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	tests := []struct {
		name         string
		accountID    int
		role         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:      "Requester sees own request",
			accountID: 7,
			role:      "HOLDER",
			prepareMock: func() {
				service.EXPECT().GetRequest(gomock.Any(), requestUUID).Return(pendingRequest(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:      "Operator sees any request",
			accountID: 1,
			role:      "OPERATOR",
			prepareMock: func() {
				service.EXPECT().GetRequest(gomock.Any(), requestUUID).Return(pendingRequest(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:      "Other holder gets not found",
			accountID: 9,
			role:      "HOLDER",
			prepareMock: func() {
				service.EXPECT().GetRequest(gomock.Any(), requestUUID).Return(pendingRequest(), nil)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:      "Unknown request",
			accountID: 7,
			role:      "HOLDER",
			prepareMock: func() {
				service.EXPECT().GetRequest(gomock.Any(), requestUUID).Return(nil, domain.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/api/outbound/"+requestUUID, http.NoBody)
			r = withURLParam(r, "uuid", requestUUID)
			r = withAccount(r, tt.accountID, tt.role)
			w := httptest.NewRecorder()
			handler.Get(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestRequestHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful request",
			body: `{"amount":"80.00","recipient_key":"payee@example.com","recipient_key_type":"EMAIL"}`,
			prepareMock: func() {
				service.EXPECT().
					Request(gomock.Any(), 7, outboundservice.RequestParams{
						Amount:           dec("80.00"),
						RecipientKey:     "payee@example.com",
						RecipientKeyType: "EMAIL",
					}).
					Return(pendingRequest(), nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Insufficient balance",
			body: `{"amount":"8000.00","recipient_key":"payee@example.com","recipient_key_type":"EMAIL"}`,
			prepareMock: func() {
				service.EXPECT().
					Request(gomock.Any(), 7, gomock.Any()).
					Return(nil, domain.ErrInsufficientFunds)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name: "Malformed recipient key",
			body: `{"amount":"80.00","recipient_key":"not-an-email","recipient_key_type":"EMAIL"}`,
			prepareMock: func() {
				service.EXPECT().
					Request(gomock.Any(), 7, gomock.Any()).
					Return(nil, outboundservice.ErrInvalidRecipientKey)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Unknown key type rejected by validation",
			body:         `{"amount":"80.00","recipient_key":"payee@example.com","recipient_key_type":"IBAN"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/outbound", bytes.NewBufferString(tt.body))
			r = withAccount(r, 7, "HOLDER")
			w := httptest.NewRecorder()
			handler.Request(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestCancelHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful cancel",
			prepareMock: func() {
				cancelled := pendingRequest()
				cancelled.Status = domain.OutboundCancelled
				service.EXPECT().
					CancelRequest(gomock.Any(), requestUUID, 7).
					Return(cancelled, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Someone else's request",
			prepareMock: func() {
				service.EXPECT().
					CancelRequest(gomock.Any(), requestUUID, 7).
					Return(nil, outboundservice.ErrNotRequester)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "Already processed",
			prepareMock: func() {
				service.EXPECT().
					CancelRequest(gomock.Any(), requestUUID, 7).
					Return(nil, outboundservice.ErrRequestNotPending)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/outbound/"+requestUUID+"/cancel", nil)
			r = withURLParam(withAccount(r, 7, "HOLDER"), "uuid", requestUUID)
			w := httptest.NewRecorder()
			handler.Cancel(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestProcessHandler(t *testing.T) {
	handler, service, accounts := NewMock(t)

	operator := &domain.Account{ID: 1, Role: domain.RoleOperator}

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Approve",
			body: `{"action":"approve"}`,
			prepareMock: func() {
				accounts.EXPECT().GetAccountByID(gomock.Any(), 1).Return(operator, nil)
				completed := pendingRequest()
				completed.Status = domain.OutboundCompleted
				service.EXPECT().
					Approve(gomock.Any(), requestUUID, operator, "", "").
					Return(completed, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Approve with receipt and settlement id",
			body: `{"action":"approve","receipt_ref":"REC-77","settlement_id":"EXT-SETTLE-9"}`,
			prepareMock: func() {
				accounts.EXPECT().GetAccountByID(gomock.Any(), 1).Return(operator, nil)
				completed := pendingRequest()
				completed.Status = domain.OutboundCompleted
				completed.ReceiptRef = "REC-77"
				completed.SettlementID = "EXT-SETTLE-9"
				service.EXPECT().
					Approve(gomock.Any(), requestUUID, operator, "REC-77", "EXT-SETTLE-9").
					Return(completed, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Approve with insufficient funds",
			body: `{"action":"approve"}`,
			prepareMock: func() {
				accounts.EXPECT().GetAccountByID(gomock.Any(), 1).Return(operator, nil)
				service.EXPECT().
					Approve(gomock.Any(), requestUUID, operator, "", "").
					Return(nil, domain.ErrInsufficientFunds)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name: "Reject with reason",
			body: `{"action":"reject","rejection_reason":"recipient key mismatch"}`,
			prepareMock: func() {
				accounts.EXPECT().GetAccountByID(gomock.Any(), 1).Return(operator, nil)
				rejected := pendingRequest()
				rejected.Status = domain.OutboundRejected
				rejected.RejectionReason = "recipient key mismatch"
				service.EXPECT().
					Reject(gomock.Any(), requestUUID, operator, "recipient key mismatch").
					Return(rejected, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Reject without reason",
			body: `{"action":"reject"}`,
			prepareMock: func() {
				accounts.EXPECT().GetAccountByID(gomock.Any(), 1).Return(operator, nil)
				service.EXPECT().
					Reject(gomock.Any(), requestUUID, operator, "").
					Return(nil, outboundservice.ErrRejectionNeedsReason)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Unknown action",
			body:         `{"action":"defer"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/outbound/"+requestUUID+"/process", bytes.NewBufferString(tt.body))
			r = withURLParam(withAccount(r, 1, "OPERATOR"), "uuid", requestUUID)
			w := httptest.NewRecorder()
			handler.Process(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestWebhookHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	t.Run("Failed settlement triggers reversal path", func(t *testing.T) {
		service.EXPECT().
			ProcessSettlement(gomock.Any(), requestUUID, "failed", "recipient bank refused").
			Return(nil)

		body := `{"correlation_id":"` + requestUUID + `","status":"failed","message":"recipient bank refused"}`
		r := httptest.NewRequest(http.MethodPost, "/api/outbound/webhook", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		handler.Webhook(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown correlation id", func(t *testing.T) {
		service.EXPECT().
			ProcessSettlement(gomock.Any(), requestUUID, "completed", "").
			Return(outboundservice.ErrRequestNotFound)

		body := `{"correlation_id":"` + requestUUID + `","status":"completed"}`
		r := httptest.NewRequest(http.MethodPost, "/api/outbound/webhook", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		handler.Webhook(w, r)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetMyRequestsHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	t.Run("Filter by status", func(t *testing.T) {
		pending := domain.OutboundPending
		service.EXPECT().
			GetRequests(gomock.Any(), 7, &pending, 20, 0).
			Return([]domain.OutboundRequest{*pendingRequest()}, nil)

		r := httptest.NewRequest(http.MethodGet, "/api/outbound/my?status=PENDING", nil)
		r = withAccount(r, 7, "HOLDER")
		w := httptest.NewRecorder()
		handler.GetMyRequests(w, r)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp []dto.OutboundResponseDTO
		_ = json.NewDecoder(w.Body).Decode(&resp)
		assert.Len(t, resp, 1)
		assert.Equal(t, "PENDING", resp[0].Status)
	})
}

func TestGetPendingHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	service.EXPECT().
		GetPendingRequests(gomock.Any(), 20, 0).
		Return([]domain.OutboundRequest{*pendingRequest()}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/outbound/pending", nil)
	r = withAccount(r, 1, "OPERATOR")
	w := httptest.NewRecorder()
	handler.GetPending(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}
