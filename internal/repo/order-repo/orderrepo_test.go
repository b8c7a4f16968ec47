package orderrepo

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

func orderColumns() []string {
	return []string{"id", "account_id", "reference", "kind", "method", "amount", "diamonds", "details", "evidence", "status", "created_at"}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	order := &domain.Order{
		AccountID: 42,
		Reference: "ref-1",
		Kind:      domain.OrderKindDeposit,
		Method:    "UPI",
		Amount:    100,
		Diamonds:  100,
		Details:   "payer=alice",
		Evidence:  "photo1",
		Status:    domain.OrderStatusPending,
	}

	rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs(int64(42), "ref-1", domain.OrderKindDeposit, "UPI", int64(100), int64(100), "payer=alice", "photo1", domain.OrderStatusPending).
		WillReturnRows(rows)

	err := repo.Create(context.Background(), order)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)
	assert.Equal(t, now, order.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs(int64(42), "ref-1", domain.OrderKindDeposit, "UPI", int64(100), int64(100), "payer=alice", "photo1", domain.OrderStatusPending).
		WillReturnError(errors.New("database error"))

	assert.Error(t, repo.Create(context.Background(), order))
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		orderID   int64
		mockSetup func()
		expectErr bool
		result    *domain.Order
	}{
		{
			name:    "Existing order",
			orderID: 7,
			mockSetup: func() {
				rows := pgxmock.NewRows(orderColumns()).
					AddRow(int64(7), int64(42), "ref-1", domain.OrderKindDeposit, "UPI",
						int64(100), int64(100), "payer=alice", "photo1", domain.OrderStatusPending, now)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, account_id, reference, kind, method, amount, diamonds, details, evidence, status, created_at`)).
					WithArgs(int64(7)).
					WillReturnRows(rows)
			},
			result: &domain.Order{
				ID: 7, AccountID: 42, Reference: "ref-1", Kind: domain.OrderKindDeposit,
				Method: "UPI", Amount: 100, Diamonds: 100, Details: "payer=alice",
				Evidence: "photo1", Status: domain.OrderStatusPending, CreatedAt: now,
			},
		},
		{
			name:    "Unknown order returns nil",
			orderID: 99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, account_id, reference, kind, method, amount, diamonds, details, evidence, status, created_at`)).
					WithArgs(int64(99)).
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:    "Database error",
			orderID: 7,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, account_id, reference, kind, method, amount, diamonds, details, evidence, status, created_at`)).
					WithArgs(int64(7)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByID(context.Background(), tt.orderID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr bool
		flipped   bool
	}{
		{
			name: "Pending order flips",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders`)).
					WithArgs(domain.OrderStatusApproved, int64(7)).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			flipped: true,
		},
		{
			name: "Already resolved order does not flip",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders`)).
					WithArgs(domain.OrderStatusApproved, int64(7)).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			flipped: false,
		},
		{
			name: "Database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders`)).
					WithArgs(domain.OrderStatusApproved, int64(7)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			flipped, err := repo.Resolve(context.Background(), 7, domain.OrderStatusApproved)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.flipped, flipped)
			}
		})
	}
}

func TestRepository_ListRecentByAccount(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	rows := pgxmock.NewRows(orderColumns()).
		AddRow(int64(9), int64(42), "ref-9", domain.OrderKindPurchase, "BuyCoupon",
			int64(50), int64(50), "type=500, qty=5, price_each=10", "", domain.OrderStatusApproved, now).
		AddRow(int64(7), int64(42), "ref-7", domain.OrderKindDeposit, "UPI",
			int64(100), int64(100), "payer=alice", "photo1", domain.OrderStatusApproved, now)
	mock.ExpectQuery(`SELECT id, account_id[\s\S]*ORDER BY id DESC`).
		WithArgs(int64(42), 10).
		WillReturnRows(rows)

	orders, err := repo.ListRecentByAccount(context.Background(), 42, 10)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, int64(9), orders[0].ID)
	assert.Equal(t, int64(7), orders[1].ID)
}
