package accountrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
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

func accountRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "uuid", "email", "password_hash", "full_name", "document", "role", "status", "created_at",
	})
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	account := func() *domain.Account {
		return &domain.Account{
			UUID:         "account-uuid-1",
			Email:        "maria@example.com",
			PasswordHash: "hashed",
			FullName:     "Maria Souza",
			Role:         domain.RoleHolder,
			Status:       domain.AccountActive,
		}
	}

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr bool
	}{
		{
			name: "create account successfully",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO accounts`)).
					WithArgs("account-uuid-1", "maria@example.com", "hashed", "Maria Souza", "",
						domain.RoleHolder, domain.AccountActive).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))
			},
		},
		{
			name: "database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO accounts`)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			result, err := repo.Create(ctx, account())

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, result.ID)
		})
	}
}

func TestRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantNil   bool
	}{
		{
			name: "account found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM accounts WHERE email = $1`)).
					WithArgs("maria@example.com").
					WillReturnRows(accountRows().AddRow(
						1, "account-uuid-1", "maria@example.com", "hashed", "Maria Souza", "",
						domain.RoleHolder, domain.AccountActive, now,
					))
			},
		},
		{
			name: "account missing",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM accounts WHERE email = $1`)).
					WithArgs("maria@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			result, err := repo.FindByEmail(ctx, "maria@example.com")

			assert.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, result)
			} else {
				assert.Equal(t, "maria@example.com", result.Email)
			}
		})
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr error
	}{
		{
			name: "status updated",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE accounts SET status = $1 WHERE id = $2`)).
					WithArgs(domain.AccountBlocked, 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "account missing",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE accounts SET status = $1 WHERE id = $2`)).
					WithArgs(domain.AccountBlocked, 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			err := repo.UpdateStatus(ctx, 1, domain.AccountBlocked)

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_Anonymize(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr error
	}{
		{
			name: "blocked account anonymized",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE accounts`)).
					WithArgs(1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "account is not blocked",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE accounts`)).
					WithArgs(1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectErr: domain.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			err := repo.Anonymize(ctx, 1)

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr bool
		wantCount int
	}{
		{
			name: "accounts listed",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := accountRows().
					AddRow(1, "account-uuid-1", "operator@example.com", "hashed", "Operator", "",
						domain.RoleOperator, domain.AccountActive, now).
					AddRow(2, "account-uuid-2", "maria@example.com", "hashed", "Maria Souza", "",
						domain.RoleHolder, domain.AccountActive, now)
				mock.ExpectQuery(regexp.QuoteMeta(`FROM accounts ORDER BY id LIMIT $1 OFFSET $2`)).
					WithArgs(50, 0).
					WillReturnRows(rows)
			},
			wantCount: 2,
		},
		{
			name: "database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM accounts ORDER BY id LIMIT $1 OFFSET $2`)).
					WithArgs(50, 0).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			accounts, err := repo.FindAll(ctx, 50, 0)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, accounts, tt.wantCount)
		})
	}
}
