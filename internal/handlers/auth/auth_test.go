package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/dto"
	"github.com/brpay/pixledger/internal/service/authservice"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)

	account := &domain.Account{UUID: "acc-uuid", Email: "holder@example.com", Role: domain.RoleHolder}

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful registration",
			body: `{"email":"holder@example.com","password":"s3cure-pa55word","full_name":"Maria Souza","document":"12345678901"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "holder@example.com", "s3cure-pa55word", "Maria Souza", "12345678901").
					Return(account, nil)
				service.EXPECT().GenerateToken(account).Return("token-123", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request body",
			body:         `{"email":invalid}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Password too short",
			body:         `{"email":"holder@example.com","password":"short","full_name":"Maria Souza"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Email already taken",
			body: `{"email":"holder@example.com","password":"s3cure-pa55word","full_name":"Maria Souza"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "holder@example.com", "s3cure-pa55word", "Maria Souza", "").
					Return(nil, authservice.ErrEmailTaken)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Internal error",
			body: `{"email":"holder@example.com","password":"s3cure-pa55word","full_name":"Maria Souza"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "holder@example.com", "s3cure-pa55word", "Maria Souza", "").
					Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.Register(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.AuthResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, "acc-uuid", body.AccountUUID)
				assert.Equal(t, "token-123", body.Token)
				assert.Equal(t, "HOLDER", body.Role)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)

	account := &domain.Account{UUID: "acc-uuid", Email: "holder@example.com", Role: domain.RoleHolder}

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful login",
			body: `{"email":"holder@example.com","password":"s3cure-pa55word"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(gomock.Any(), "holder@example.com", "s3cure-pa55word").
					Return(account, nil)
				service.EXPECT().GenerateToken(account).Return("token-123", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Invalid credentials",
			body: `{"email":"holder@example.com","password":"wrong-pa55word"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(gomock.Any(), "holder@example.com", "wrong-pa55word").
					Return(nil, authservice.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Blocked account",
			body: `{"email":"holder@example.com","password":"s3cure-pa55word"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(gomock.Any(), "holder@example.com", "s3cure-pa55word").
					Return(nil, authservice.ErrAccountBlocked)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "Invalid request body",
			body:         `{"email":}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.Login(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
