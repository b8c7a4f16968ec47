package accountrepo

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

// Ensure creates the account on first contact and refreshes the username on
// every later one. The balance is never touched here.
func (r *Repository) Ensure(ctx context.Context, accountID int64, username string) error {
	query := `
        INSERT INTO accounts (id, username)
        VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username
    `
	_, err := r.db.Exec(ctx, query, accountID, username)
	if err != nil {
		zap.L().Error("can't ensure account", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `
        SELECT id, username, diamonds, created_at
        FROM accounts
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, accountID)
	var account domain.Account
	err := row.Scan(&account.ID, &account.Username, &account.Diamonds, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to get account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

// GetForUpdate locks the account row for the remainder of the surrounding
// transaction. All financial mutations of one account serialize on this lock.
func (r *Repository) GetForUpdate(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `
        SELECT id, username, diamonds, created_at
        FROM accounts
        WHERE id = $1
        FOR UPDATE
    `
	row := r.db.QueryRow(ctx, query, accountID)
	var account domain.Account
	err := row.Scan(&account.ID, &account.Username, &account.Diamonds, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to lock account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

// AddDiamonds applies a signed delta and returns the resulting balance.
// The CHECK constraint on the column rejects any debit below zero.
func (r *Repository) AddDiamonds(ctx context.Context, accountID int64, delta int64) (int64, error) {
	query := `
        UPDATE accounts
        SET diamonds = diamonds + $1
        WHERE id = $2
        RETURNING diamonds
    `
	var balance int64
	err := r.db.QueryRow(ctx, query, delta, accountID).Scan(&balance)
	if err != nil {
		zap.L().Error("failed to update account balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}
