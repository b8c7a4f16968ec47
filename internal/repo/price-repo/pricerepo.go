package pricerepo

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

// Get returns the unit price for a coupon type, or 0 when unset. Callers in
// a purchase transaction read it here so the price in effect at commit time
// is the one charged.
func (r *Repository) Get(ctx context.Context, couponType string) (int64, error) {
	query := `
        SELECT price
        FROM prices
        WHERE type = $1
    `
	var price int64
	err := r.db.QueryRow(ctx, query, couponType).Scan(&price)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		zap.L().Error("can't get price", zap.Error(err))
		return 0, err
	}
	return price, nil
}

func (r *Repository) Set(ctx context.Context, couponType string, price int64) error {
	query := `
        INSERT INTO prices (type, price)
        VALUES ($1, $2)
        ON CONFLICT (type) DO UPDATE SET price = EXCLUDED.price
    `
	_, err := r.db.Exec(ctx, query, couponType, price)
	if err != nil {
		zap.L().Error("can't set price", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Price, error) {
	query := `
        SELECT type, price
        FROM prices
        ORDER BY type
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't list prices", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var prices []domain.Price
	for rows.Next() {
		var p domain.Price
		if err := rows.Scan(&p.Type, &p.Price); err != nil {
			zap.L().Error("can't scan price row", zap.Error(err))
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}
