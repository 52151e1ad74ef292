package allocationrepo

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

func allocationRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "uuid", "credit_id", "account_id", "allocated_by", "gross_amount",
		"discount_type", "discount_value", "discount_amount", "net_amount", "company_margin",
		"notes", "allocated_at", "credit_uuid", "account_uuid",
	})
}

func addAllocationRow(rows *pgxmock.Rows, id int, allocationUUID string, now time.Time) *pgxmock.Rows {
	return rows.AddRow(
		id, allocationUUID, 1, 1, 2, decimal.RequireFromString("150.00"),
		domain.DiscountPercentage, decimal.RequireFromString("10"), decimal.RequireFromString("15.00"),
		decimal.RequireFromString("135.00"), decimal.RequireFromString("15.00"),
		"", now, "credit-uuid-1", "account-uuid-1",
	)
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	allocation := func() *domain.Allocation {
		return &domain.Allocation{
			UUID:           "allocation-uuid-1",
			CreditID:       1,
			AccountID:      1,
			AllocatedBy:    2,
			GrossAmount:    decimal.RequireFromString("150.00"),
			DiscountType:   domain.DiscountPercentage,
			DiscountValue:  decimal.RequireFromString("10"),
			DiscountAmount: decimal.RequireFromString("15.00"),
			NetAmount:      decimal.RequireFromString("135.00"),
			CompanyMargin:  decimal.RequireFromString("15.00"),
		}
	}

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr error
	}{
		{
			name: "create allocation successfully",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO allocations`)).
					WithArgs("allocation-uuid-1", 1, 1, 2, pgxmock.AnyArg(),
						domain.DiscountPercentage, pgxmock.AnyArg(), pgxmock.AnyArg(),
						pgxmock.AnyArg(), pgxmock.AnyArg(), "").
					WillReturnRows(pgxmock.NewRows([]string{"id", "allocated_at"}).AddRow(1, now))
			},
		},
		{
			name: "credit already allocated",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO allocations`)).
					WithArgs("allocation-uuid-1", 1, 1, 2, pgxmock.AnyArg(),
						domain.DiscountPercentage, pgxmock.AnyArg(), pgxmock.AnyArg(),
						pgxmock.AnyArg(), pgxmock.AnyArg(), "").
					WillReturnError(&pgconn.PgError{Code: uniqueViolation})
			},
			expectErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			result, err := repo.Create(ctx, allocation())

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, result.ID)
			assert.Equal(t, now, result.AllocatedAt)
		})
	}
}

func TestRepository_FindByUUID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantNil   bool
	}{
		{
			name: "allocation found with joined uuids",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE a.uuid = $1`)).
					WithArgs("allocation-uuid-1").
					WillReturnRows(addAllocationRow(allocationRows(), 1, "allocation-uuid-1", now))
			},
		},
		{
			name: "allocation missing",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE a.uuid = $1`)).
					WithArgs("allocation-uuid-1").
					WillReturnError(pgx.ErrNoRows)
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			allocation, err := repo.FindByUUID(ctx, "allocation-uuid-1")

			assert.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, allocation)
			} else {
				assert.Equal(t, "credit-uuid-1", allocation.CreditUUID)
				assert.Equal(t, "account-uuid-1", allocation.AccountUUID)
			}
		})
	}
}

func TestRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	accountID := 1

	tests := []struct {
		name      string
		accountID *int
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr bool
		wantCount int
	}{
		{
			name:      "all allocations",
			accountID: nil,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := allocationRows()
				rows = addAllocationRow(rows, 2, "allocation-uuid-2", now)
				rows = addAllocationRow(rows, 1, "allocation-uuid-1", now)
				mock.ExpectQuery(regexp.QuoteMeta(`FROM allocations a`)).
					WithArgs((*int)(nil), 20, 0).
					WillReturnRows(rows)
			},
			wantCount: 2,
		},
		{
			name:      "filtered by account",
			accountID: &accountID,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM allocations a`)).
					WithArgs(&accountID, 20, 0).
					WillReturnRows(addAllocationRow(allocationRows(), 1, "allocation-uuid-1", now))
			},
			wantCount: 1,
		},
		{
			name:      "database error",
			accountID: nil,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM allocations a`)).
					WithArgs((*int)(nil), 20, 0).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			allocations, err := repo.FindAll(ctx, tt.accountID, 20, 0)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, allocations, tt.wantCount)
		})
	}
}
