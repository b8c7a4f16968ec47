package stockservice

import (
	"context"
	"errors"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/domain"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/pg"
	"go.uber.org/zap"
)

//go:generate mockgen -source=stockservice.go -destination=stockservice_mock.go -package=stockservice

type CouponRepo interface {
	Claim(ctx context.Context, couponType string, qty int64) (codes []string, available int64, err error)
	CountByType(ctx context.Context, couponType string) (int64, error)
	BulkInsert(ctx context.Context, couponType string, codes []string) (int64, error)
	Remove(ctx context.Context, couponType string, qty int64) (int64, error)
}

type PriceRepo interface {
	Get(ctx context.Context, couponType string) (int64, error)
	Set(ctx context.Context, couponType string, price int64) error
	List(ctx context.Context) ([]domain.Price, error)
}

var (
	ErrInvalidType  = errors.New("invalid coupon type")
	ErrInvalidValue = errors.New("value must be a positive number")
	ErrNoStock      = errors.New("no stock available")
)

type Service struct {
	couponRepo CouponRepo
	priceRepo  PriceRepo
	txManager  pg.TXManager
}

func New(couponRepo CouponRepo, priceRepo PriceRepo, txManager pg.TXManager) *Service {
	return &Service{
		couponRepo: couponRepo,
		priceRepo:  priceRepo,
		txManager:  txManager,
	}
}

// AddStock bulk-inserts codes for a tier and reports how many landed.
// Duplicate codes are silently skipped.
func (s *Service) AddStock(ctx context.Context, couponType string, codes []string) (int64, error) {
	if !domain.IsCouponType(couponType) {
		return 0, ErrInvalidType
	}
	clean := make([]string, 0, len(codes))
	for _, code := range codes {
		if code != "" {
			clean = append(clean, code)
		}
	}
	if len(clean) == 0 {
		return 0, ErrInvalidValue
	}

	added, err := s.couponRepo.BulkInsert(ctx, couponType, clean)
	if err != nil {
		zap.L().Error("failed to add stock", zap.String("couponType", couponType), zap.Error(err))
		return 0, err
	}
	return added, nil
}

// RemoveStock retires up to qty codes of the tier; partial removal is
// reported, not treated as an error.
func (s *Service) RemoveStock(ctx context.Context, couponType string, qty int64) (int64, error) {
	if !domain.IsCouponType(couponType) {
		return 0, ErrInvalidType
	}
	if qty <= 0 {
		return 0, ErrInvalidValue
	}

	removed, err := s.couponRepo.Remove(ctx, couponType, qty)
	if err != nil {
		zap.L().Error("failed to remove stock", zap.String("couponType", couponType), zap.Error(err))
		return 0, err
	}
	return removed, nil
}

func (s *Service) SetPrice(ctx context.Context, couponType string, price int64) error {
	if !domain.IsCouponType(couponType) {
		return ErrInvalidType
	}
	if price <= 0 {
		return ErrInvalidValue
	}
	return s.priceRepo.Set(ctx, couponType, price)
}

// GrantFree claims a single code of the tier without charging anyone.
func (s *Service) GrantFree(ctx context.Context, couponType string) (string, error) {
	if !domain.IsCouponType(couponType) {
		return "", ErrInvalidType
	}

	var code string
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		codes, _, err := s.couponRepo.Claim(ctx, couponType, 1)
		if err != nil {
			return err
		}
		if len(codes) == 0 {
			return ErrNoStock
		}
		code = codes[0]
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNoStock) {
			zap.L().Error("failed to grant free coupon", zap.String("couponType", couponType), zap.Error(err))
		}
		return "", err
	}
	return code, nil
}

// StockCounts returns the unconsumed code count per tier, in tier order.
func (s *Service) StockCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(domain.CouponTypes))
	for _, t := range domain.CouponTypes {
		count, err := s.couponRepo.CountByType(ctx, t)
		if err != nil {
			return nil, err
		}
		counts[t] = count
	}
	return counts, nil
}

func (s *Service) Price(ctx context.Context, couponType string) (int64, error) {
	return s.priceRepo.Get(ctx, couponType)
}

func (s *Service) Prices(ctx context.Context) ([]domain.Price, error) {
	return s.priceRepo.List(ctx)
}
