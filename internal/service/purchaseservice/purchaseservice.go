package purchaseservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/domain"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/events"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/pg"
	"go.uber.org/zap"
)

//go:generate mockgen -source=purchaseservice.go -destination=purchaseservice_mock.go -package=purchaseservice

type AccountRepo interface {
	GetForUpdate(ctx context.Context, accountID int64) (*domain.Account, error)
	AddDiamonds(ctx context.Context, accountID int64, delta int64) (int64, error)
}

type CouponRepo interface {
	Claim(ctx context.Context, couponType string, qty int64) (codes []string, available int64, err error)
}

type PriceRepo interface {
	Get(ctx context.Context, couponType string) (int64, error)
}

type OrderRepo interface {
	Create(ctx context.Context, order *domain.Order) error
}

// Status tags the outcome of one purchase attempt. Exactly one case applies
// and each carries only the fields needed to report it.
type Status int

const (
	StatusSuccess Status = iota
	StatusInvalidType
	StatusInvalidQuantity
	StatusPriceNotSet
	StatusInsufficientFunds
	StatusInsufficientStock
	StatusTransactionFailed
)

type Result struct {
	Status     Status
	Codes      []string // Success
	NewBalance int64    // Success
	Required   int64    // InsufficientFunds
	Available  int64    // InsufficientFunds (balance) / InsufficientStock (lockable stock)
	Detail     string   // TransactionFailed
}

// errAbort carries a business refusal out of the transaction closure so the
// manager rolls back; the Result built before returning it is the answer.
var errAbort = errors.New("purchase aborted")

var errAccountNotFound = errors.New("account not found")

type Service struct {
	accountRepo AccountRepo
	couponRepo  CouponRepo
	priceRepo   PriceRepo
	orderRepo   OrderRepo
	txManager   pg.TXManager
	publisher   events.Publisher
}

func New(accountRepo AccountRepo, couponRepo CouponRepo, priceRepo PriceRepo, orderRepo OrderRepo, txManager pg.TXManager, publisher events.Publisher) *Service {
	return &Service{
		accountRepo: accountRepo,
		couponRepo:  couponRepo,
		priceRepo:   priceRepo,
		orderRepo:   orderRepo,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// Purchase runs one atomic purchase attempt: lock the account, read the
// current price, check funds, claim stock, debit and record the order.
// Funds are checked before stock; both checks and all mutations share one
// transaction, so no failure leaves a partial effect behind.
func (s *Service) Purchase(ctx context.Context, accountID int64, couponType string, qty int64) *Result {
	if !domain.IsCouponType(couponType) {
		return &Result{Status: StatusInvalidType}
	}
	if qty <= 0 {
		return &Result{Status: StatusInvalidQuantity}
	}

	res := &Result{}
	var order *domain.Order

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return errAccountNotFound
		}

		price, err := s.priceRepo.Get(ctx, couponType)
		if err != nil {
			return err
		}
		if price <= 0 {
			res.Status = StatusPriceNotSet
			return errAbort
		}

		total := price * qty
		if account.Diamonds < total {
			res.Status = StatusInsufficientFunds
			res.Required = total
			res.Available = account.Diamonds
			return errAbort
		}

		codes, available, err := s.couponRepo.Claim(ctx, couponType, qty)
		if err != nil {
			return err
		}
		if int64(len(codes)) < qty {
			res.Status = StatusInsufficientStock
			res.Available = available
			return errAbort
		}

		newBalance, err := s.accountRepo.AddDiamonds(ctx, accountID, -total)
		if err != nil {
			return err
		}

		order = &domain.Order{
			AccountID: accountID,
			Reference: uuid.NewString(),
			Kind:      domain.OrderKindPurchase,
			Method:    "BuyCoupon",
			Amount:    total,
			Diamonds:  total,
			Details:   fmt.Sprintf("type=%s, qty=%d, price_each=%d", couponType, qty, price),
			Status:    domain.OrderStatusApproved,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		res.Status = StatusSuccess
		res.Codes = codes
		res.NewBalance = newBalance
		return nil
	})

	if err != nil && !errors.Is(err, errAbort) {
		zap.L().Error("purchase transaction failed",
			zap.Int64("accountID", accountID),
			zap.String("couponType", couponType),
			zap.Int64("qty", qty),
			zap.Error(err))
		return &Result{Status: StatusTransactionFailed, Detail: err.Error()}
	}

	if res.Status == StatusSuccess {
		s.publisher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			Reference: order.Reference,
			AccountID: accountID,
			Kind:      domain.OrderKindPurchase,
			Status:    domain.OrderStatusApproved,
			Diamonds:  -order.Diamonds,
		})
	}

	return res
}
