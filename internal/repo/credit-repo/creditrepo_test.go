package creditrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/brpay/pixledger/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func creditRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "uuid", "external_id", "amount", "payer_name", "payer_document", "description",
		"status", "allocation_id", "transaction_date", "created_at",
	})
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	credit := func() *domain.IncomingCredit {
		return &domain.IncomingCredit{
			UUID:            "credit-uuid-1",
			ExternalID:      "E2E-2024-001",
			Amount:          decimal.RequireFromString("150.00"),
			PayerName:       "Maria Souza",
			Status:          domain.CreditPending,
			TransactionDate: now,
		}
	}

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr error
	}{
		{
			name: "create credit successfully",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO incoming_credits`)).
					WithArgs("credit-uuid-1", "E2E-2024-001", pgxmock.AnyArg(), "Maria Souza", "", "",
						domain.CreditPending, pgxmock.AnyArg()).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))
			},
		},
		{
			name: "duplicate external id",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO incoming_credits`)).
					WithArgs("credit-uuid-1", "E2E-2024-001", pgxmock.AnyArg(), "Maria Souza", "", "",
						domain.CreditPending, pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: uniqueViolation})
			},
			expectErr: domain.ErrConflict,
		},
		{
			name: "database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO incoming_credits`)).
					WithArgs("credit-uuid-1", "E2E-2024-001", pgxmock.AnyArg(), "Maria Souza", "", "",
						domain.CreditPending, pgxmock.AnyArg()).
					WillReturnError(errors.New("database error"))
			},
			expectErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			result, err := repo.Create(ctx, credit())

			if tt.expectErr != nil {
				assert.Error(t, err)
				if errors.Is(tt.expectErr, domain.ErrConflict) {
					assert.ErrorIs(t, err, domain.ErrConflict)
				}
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, result.ID)
		})
	}
}

func TestRepository_FindByExternalID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantNil   bool
	}{
		{
			name: "credit found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM incoming_credits WHERE external_id = $1`)).
					WithArgs("E2E-2024-001").
					WillReturnRows(creditRows().AddRow(
						1, "credit-uuid-1", "E2E-2024-001", decimal.RequireFromString("150.00"),
						"Maria Souza", "", "", domain.CreditPending, (*int)(nil), now, now,
					))
			},
		},
		{
			name: "credit missing",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM incoming_credits WHERE external_id = $1`)).
					WithArgs("E2E-2024-001").
					WillReturnError(pgx.ErrNoRows)
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			credit, err := repo.FindByExternalID(ctx, "E2E-2024-001")

			assert.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, credit)
			} else {
				assert.Equal(t, "E2E-2024-001", credit.ExternalID)
			}
		})
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	allocationID := 3

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr error
	}{
		{
			name: "credit allocated",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE incoming_credits`)).
					WithArgs(domain.CreditAllocated, &allocationID, 1, domain.CreditPending).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "credit no longer pending",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE incoming_credits`)).
					WithArgs(domain.CreditAllocated, &allocationID, 1, domain.CreditPending).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectErr: domain.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			err := repo.UpdateStatus(ctx, 1, domain.CreditPending, domain.CreditAllocated, &allocationID)

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_FindPending(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name       string
		mockSetup  func(mock pgxmock.PgxPoolIface)
		expectErr  bool
		wantCount  int
		wantTotal  int
		wantAmount string
	}{
		{
			name: "pending credits with totals",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*), COALESCE(SUM(amount), 0)`)).
					WillReturnRows(pgxmock.NewRows([]string{"count", "sum"}).
						AddRow(2, decimal.RequireFromString("250.00")))
				rows := creditRows().
					AddRow(2, "credit-uuid-2", "E2E-2024-002", decimal.RequireFromString("100.00"),
						"Joao Lima", "", "", domain.CreditPending, (*int)(nil), now, now).
					AddRow(1, "credit-uuid-1", "E2E-2024-001", decimal.RequireFromString("150.00"),
						"Maria Souza", "", "", domain.CreditPending, (*int)(nil), now, now)
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = 'PENDING'`)).
					WithArgs(20, 0).
					WillReturnRows(rows)
			},
			wantCount:  2,
			wantTotal:  2,
			wantAmount: "250",
		},
		{
			name: "count query fails",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*), COALESCE(SUM(amount), 0)`)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			credits, total, totalAmount, err := repo.FindPending(ctx, 20, 0)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, credits, tt.wantCount)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantAmount, totalAmount.String())
		})
	}
}
