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

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()
	return repo, mockDB
}

func TestRepository_Ensure(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Inserts new account",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO accounts (id, username)`)).
					WithArgs(int64(1), "alice").
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO accounts (id, username)`)).
					WithArgs(int64(1), "alice").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Ensure(context.Background(), 1, "alice")

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_Get(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		accountID int64
		mockSetup func()
		expectErr bool
		result    *domain.Account
	}{
		{
			name:      "Existing account",
			accountID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "username", "diamonds", "created_at"}).
					AddRow(int64(1), "alice", int64(100), now)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, diamonds, created_at`)).
					WithArgs(int64(1)).
					WillReturnRows(rows)
			},
			result: &domain.Account{ID: 1, Username: "alice", Diamonds: 100, CreatedAt: now},
		},
		{
			name:      "Unknown account returns nil",
			accountID: 99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, diamonds, created_at`)).
					WithArgs(int64(99)).
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:      "Database error",
			accountID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, diamonds, created_at`)).
					WithArgs(int64(1)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Get(context.Background(), tt.accountID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_GetForUpdate(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "username", "diamonds", "created_at"}).
		AddRow(int64(1), "alice", int64(100), now)
	mock.ExpectQuery(`SELECT id, username, diamonds, created_at[\s\S]*FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	account, err := repo.GetForUpdate(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, &domain.Account{ID: 1, Username: "alice", Diamonds: 100, CreatedAt: now}, account)

	mock.ExpectQuery(`SELECT id, username, diamonds, created_at[\s\S]*FOR UPDATE`).
		WithArgs(int64(2)).
		WillReturnError(pgx.ErrNoRows)

	account, err = repo.GetForUpdate(context.Background(), 2)
	assert.NoError(t, err)
	assert.Nil(t, account)
}

func TestRepository_AddDiamonds(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		delta     int64
		mockSetup func()
		expectErr bool
		balance   int64
	}{
		{
			name:  "Credit",
			delta: 50,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"diamonds"}).AddRow(int64(150))
				mock.ExpectQuery(regexp.QuoteMeta(`UPDATE accounts`)).
					WithArgs(int64(50), int64(1)).
					WillReturnRows(rows)
			},
			balance: 150,
		},
		{
			name:  "Debit",
			delta: -30,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"diamonds"}).AddRow(int64(70))
				mock.ExpectQuery(regexp.QuoteMeta(`UPDATE accounts`)).
					WithArgs(int64(-30), int64(1)).
					WillReturnRows(rows)
			},
			balance: 70,
		},
		{
			name:  "Debit below zero hits the check constraint",
			delta: -500,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`UPDATE accounts`)).
					WithArgs(int64(-500), int64(1)).
					WillReturnError(errors.New("violates check constraint"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			balance, err := repo.AddDiamonds(context.Background(), 1, tt.delta)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.balance, balance)
			}
		})
	}
}
