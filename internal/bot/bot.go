// Package bot drives the chat conversation: it classifies inbound updates
// and calls into the purchase, deposit and stock engines. All financial
// decisions happen inside those engines; this layer only collects input and
// renders results.
package bot

import (
	"context"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/config"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/domain"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/depositservice"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/purchaseservice"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/session"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/telegram"
	"go.uber.org/zap"
)

// Gateway is the outbound notification channel.
type Gateway interface {
	SendText(ctx context.Context, chatID int64, text string, keyboard any) error
	SendImage(ctx context.Context, chatID int64, fileID, caption string, keyboard any) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

type AccountService interface {
	Ensure(ctx context.Context, accountID int64, username string) error
	Balance(ctx context.Context, accountID int64) (int64, error)
	History(ctx context.Context, accountID int64) ([]domain.Order, error)
}

type PurchaseService interface {
	Purchase(ctx context.Context, accountID int64, couponType string, qty int64) *purchaseservice.Result
}

type DepositService interface {
	Submit(ctx context.Context, accountID int64, method string, amount int64, details, evidence string) (*domain.Order, error)
	Approve(ctx context.Context, orderID int64) (*depositservice.Resolution, error)
	Decline(ctx context.Context, orderID int64) (*depositservice.Resolution, error)
	Get(ctx context.Context, orderID int64) (*domain.Order, error)
	UPIQR(ctx context.Context) (string, error)
	SetUPIQR(ctx context.Context, fileID string) error
}

type StockService interface {
	AddStock(ctx context.Context, couponType string, codes []string) (int64, error)
	RemoveStock(ctx context.Context, couponType string, qty int64) (int64, error)
	SetPrice(ctx context.Context, couponType string, price int64) error
	GrantFree(ctx context.Context, couponType string) (string, error)
	StockCounts(ctx context.Context) (map[string]int64, error)
	Price(ctx context.Context, couponType string) (int64, error)
	Prices(ctx context.Context) ([]domain.Price, error)
}

// Conversation steps stored in the session store.
const (
	stepAmazonAmount   = "amazon_amount"
	stepAmazonGiftText = "amazon_gift_text"
	stepAmazonWaitSS   = "amazon_wait_ss"
	stepUPIAmount      = "upi_amount"
	stepUPIPayer       = "upi_payer"
	stepUPIWaitSS      = "upi_wait_ss"
	stepBuyQty         = "buy_qty"
	stepAdminAddCodes  = "admin_add_codes"
	stepAdminRemoveQty = "admin_remove_qty"
	stepAdminNewPrice  = "admin_new_price"
	stepAdminUpdateQR  = "admin_update_qr"
)

type Bot struct {
	cfg       *config.Config
	gateway   Gateway
	sessions  *session.Store
	accounts  AccountService
	purchases PurchaseService
	deposits  DepositService
	stock     StockService
}

func New(cfg *config.Config, gateway Gateway, sessions *session.Store, accounts AccountService, purchases PurchaseService, deposits DepositService, stock StockService) *Bot {
	return &Bot{
		cfg:       cfg,
		gateway:   gateway,
		sessions:  sessions,
		accounts:  accounts,
		purchases: purchases,
		deposits:  deposits,
		stock:     stock,
	}
}

// Handle processes one inbound update. Errors are logged, not returned:
// the webhook always acknowledges so the provider does not redeliver.
func (b *Bot) Handle(ctx context.Context, upd *telegram.Update) {
	switch {
	case upd.Message != nil && upd.Message.From != nil:
		b.handleMessage(ctx, upd.Message)
	case upd.Callback != nil && upd.Callback.From != nil:
		b.handleCallback(ctx, upd.Callback)
	default:
		zap.L().Debug("ignoring update without sender", zap.Int64("updateID", upd.UpdateID))
	}
}

func (b *Bot) isAdmin(accountID int64) bool {
	return b.cfg.IsAdmin(accountID)
}
