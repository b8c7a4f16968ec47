package depositservice

import (
	"context"

	"github.com/google/uuid"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/domain"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/events"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/pg"
	settingsrepo "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/repo/settings-repo"
	"go.uber.org/zap"
)

//go:generate mockgen -source=depositservice.go -destination=depositservice_mock.go -package=depositservice

type OrderRepo interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, orderID int64) (*domain.Order, error)
	GetForUpdate(ctx context.Context, orderID int64) (*domain.Order, error)
	Resolve(ctx context.Context, orderID int64, status string) (bool, error)
	ListRecentByAccount(ctx context.Context, accountID int64, limit int) ([]domain.Order, error)
}

type AccountRepo interface {
	AddDiamonds(ctx context.Context, accountID int64, delta int64) (int64, error)
}

type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ResolutionStatus tags the outcome of an approve/decline attempt.
type ResolutionStatus int

const (
	ResolutionApplied ResolutionStatus = iota
	ResolutionAlreadyResolved
	ResolutionNotFound
)

type Resolution struct {
	Status ResolutionStatus
	Order  *domain.Order // set except for NotFound
}

type Service struct {
	orderRepo    OrderRepo
	accountRepo  AccountRepo
	settingsRepo SettingsRepo
	txManager    pg.TXManager
	publisher    events.Publisher
}

func New(orderRepo OrderRepo, accountRepo AccountRepo, settingsRepo SettingsRepo, txManager pg.TXManager, publisher events.Publisher) *Service {
	return &Service{
		orderRepo:    orderRepo,
		accountRepo:  accountRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		publisher:    publisher,
	}
}

// Submit records a pending top-up order awaiting operator review.
func (s *Service) Submit(ctx context.Context, accountID int64, method string, amount int64, details, evidence string) (*domain.Order, error) {
	order := &domain.Order{
		AccountID: accountID,
		Reference: uuid.NewString(),
		Kind:      domain.OrderKindDeposit,
		Method:    method,
		Amount:    amount,
		Diamonds:  amount,
		Details:   details,
		Evidence:  evidence,
		Status:    domain.OrderStatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		zap.L().Error("failed to submit deposit", zap.Int64("accountID", accountID), zap.Error(err))
		return nil, err
	}
	return order, nil
}

// Approve flips a pending order to approved and, for deposits, credits the
// account in the same transaction. The conditional status flip makes the
// credit at-most-once even when the approval is delivered twice.
func (s *Service) Approve(ctx context.Context, orderID int64) (*Resolution, error) {
	return s.resolve(ctx, orderID, domain.OrderStatusApproved)
}

// Decline flips a pending order to declined. No balance effect.
func (s *Service) Decline(ctx context.Context, orderID int64) (*Resolution, error) {
	return s.resolve(ctx, orderID, domain.OrderStatusDeclined)
}

func (s *Service) resolve(ctx context.Context, orderID int64, target string) (*Resolution, error) {
	res := &Resolution{}

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			res.Status = ResolutionNotFound
			return nil
		}
		res.Order = order

		flipped, err := s.orderRepo.Resolve(ctx, orderID, target)
		if err != nil {
			return err
		}
		if !flipped {
			res.Status = ResolutionAlreadyResolved
			return nil
		}

		if target == domain.OrderStatusApproved && order.Kind == domain.OrderKindDeposit {
			if _, err := s.accountRepo.AddDiamonds(ctx, order.AccountID, order.Diamonds); err != nil {
				return err
			}
		}

		order.Status = target
		res.Status = ResolutionApplied
		return nil
	})
	if err != nil {
		zap.L().Error("order resolution failed",
			zap.Int64("orderID", orderID),
			zap.String("target", target),
			zap.Error(err))
		return nil, err
	}

	if res.Status == ResolutionApplied {
		delta := res.Order.Diamonds
		if target != domain.OrderStatusApproved || res.Order.Kind != domain.OrderKindDeposit {
			delta = 0
		}
		s.publisher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			OrderID:   res.Order.ID,
			Reference: res.Order.Reference,
			AccountID: res.Order.AccountID,
			Kind:      res.Order.Kind,
			Status:    target,
			Diamonds:  delta,
		})
	}

	return res, nil
}

// Get returns an order for rendering operator notifications.
func (s *Service) Get(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

// UPIQR returns the stored payment QR image reference, empty when unset.
func (s *Service) UPIQR(ctx context.Context) (string, error) {
	return s.settingsRepo.Get(ctx, settingsrepo.KeyUPIQR)
}

func (s *Service) SetUPIQR(ctx context.Context, fileID string) error {
	return s.settingsRepo.Set(ctx, settingsrepo.KeyUPIQR, fileID)
}
