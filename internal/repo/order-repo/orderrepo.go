package orderrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/domain"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) error {
	query := `
        INSERT INTO orders (account_id, reference, kind, method, amount, diamonds, details, evidence, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		order.AccountID, order.Reference, order.Kind, order.Method,
		order.Amount, order.Diamonds, order.Details, order.Evidence, order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		zap.L().Error("can't save order", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	query := `
        SELECT id, account_id, reference, kind, method, amount, diamonds, details, evidence, status, created_at
        FROM orders
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, orderID)

	var order domain.Order
	err := row.Scan(&order.ID, &order.AccountID, &order.Reference, &order.Kind, &order.Method,
		&order.Amount, &order.Diamonds, &order.Details, &order.Evidence, &order.Status, &order.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

// GetForUpdate locks the order row within the surrounding transaction, so a
// concurrent resolution of the same order waits behind this one.
func (r *Repository) GetForUpdate(ctx context.Context, orderID int64) (*domain.Order, error) {
	query := `
        SELECT id, account_id, reference, kind, method, amount, diamonds, details, evidence, status, created_at
        FROM orders
        WHERE id = $1
        FOR UPDATE
    `
	row := r.db.QueryRow(ctx, query, orderID)

	var order domain.Order
	err := row.Scan(&order.ID, &order.AccountID, &order.Reference, &order.Kind, &order.Method,
		&order.Amount, &order.Diamonds, &order.Details, &order.Evidence, &order.Status, &order.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock order", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

// Resolve flips a pending order to its terminal status. It reports false
// when the order was already resolved (or never existed), so duplicate
// approval taps are harmless.
func (r *Repository) Resolve(ctx context.Context, orderID int64, status string) (bool, error) {
	query := `
        UPDATE orders
        SET status = $1
        WHERE id = $2 AND status = 'pending'
    `
	tag, err := r.db.Exec(ctx, query, status, orderID)
	if err != nil {
		zap.L().Error("can't resolve order", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) ListRecentByAccount(ctx context.Context, accountID int64, limit int) ([]domain.Order, error) {
	query := `
        SELECT id, account_id, reference, kind, method, amount, diamonds, details, evidence, status, created_at
        FROM orders
        WHERE account_id = $1
        ORDER BY id DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, accountID, limit)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(&order.ID, &order.AccountID, &order.Reference, &order.Kind, &order.Method,
			&order.Amount, &order.Diamonds, &order.Details, &order.Evidence, &order.Status, &order.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
