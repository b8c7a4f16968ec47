package accountservice

import (
	"context"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/domain"
	"go.uber.org/zap"
)

//go:generate mockgen -source=accountservice.go -destination=accountservice_mock.go -package=accountservice

// AccountRepo is the full account surface; other services narrow it to the
// methods they need.
type AccountRepo interface {
	Ensure(ctx context.Context, accountID int64, username string) error
	Get(ctx context.Context, accountID int64) (*domain.Account, error)
	GetForUpdate(ctx context.Context, accountID int64) (*domain.Account, error)
	AddDiamonds(ctx context.Context, accountID int64, delta int64) (int64, error)
}

type OrderRepo interface {
	ListRecentByAccount(ctx context.Context, accountID int64, limit int) ([]domain.Order, error)
}

const historyLimit = 10

type Service struct {
	accountRepo AccountRepo
	orderRepo   OrderRepo
}

func New(accountRepo AccountRepo, orderRepo OrderRepo) *Service {
	return &Service{
		accountRepo: accountRepo,
		orderRepo:   orderRepo,
	}
}

// Ensure registers the account on first contact.
func (s *Service) Ensure(ctx context.Context, accountID int64, username string) error {
	if err := s.accountRepo.Ensure(ctx, accountID, username); err != nil {
		zap.L().Error("failed to ensure account", zap.Int64("accountID", accountID), zap.Error(err))
		return err
	}
	return nil
}

// Balance returns the spendable diamond balance, zero for unknown accounts.
func (s *Service) Balance(ctx context.Context, accountID int64) (int64, error) {
	account, err := s.accountRepo.Get(ctx, accountID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Int64("accountID", accountID), zap.Error(err))
		return 0, err
	}
	if account == nil {
		return 0, nil
	}
	return account.Diamonds, nil
}

// History returns the account's most recent orders, newest first.
func (s *Service) History(ctx context.Context, accountID int64) ([]domain.Order, error) {
	orders, err := s.orderRepo.ListRecentByAccount(ctx, accountID, historyLimit)
	if err != nil {
		zap.L().Error("failed to fetch order history", zap.Int64("accountID", accountID), zap.Error(err))
		return nil, err
	}
	return orders, nil
}
