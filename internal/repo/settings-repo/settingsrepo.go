package settingsrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/pg"
	"go.uber.org/zap"
)

// Keys stored in the settings table.
const KeyUPIQR = "upi_qr"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	query := `
        SELECT value
        FROM settings
        WHERE key = $1
    `
	var value string
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		zap.L().Error("can't get setting", zap.Error(err))
		return "", err
	}
	return value, nil
}

func (r *Repository) Set(ctx context.Context, key, value string) error {
	query := `
        INSERT INTO settings (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
    `
	_, err := r.db.Exec(ctx, query, key, value)
	if err != nil {
		zap.L().Error("can't set setting", zap.Error(err))
		return err
	}
	return nil
}
