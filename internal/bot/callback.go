package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/domain"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/depositservice"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/purchaseservice"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/stockservice"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/telegram"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// codesPerMessage keeps each coupon delivery under the provider's message
// size limit.
const codesPerMessage = 25

func (b *Bot) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	accountID := cb.From.ID

	if err := b.gateway.AnswerCallback(ctx, cb.ID); err != nil {
		zap.L().Debug("can't answer callback", zap.Error(err))
	}

	data := cb.Data
	switch {
	case data == "pay_amazon":
		b.sessions.Set(accountID, stepAmazonAmount, "")
		b.send(ctx, chatID, fmt.Sprintf("Enter the number of coins to add (Method: Amazon):\nMinimum is %d", b.cfg.MinDeposit), nil)

	case data == "amazon_submit":
		_, payload := b.sessions.Get(accountID)
		b.sessions.Set(accountID, stepAmazonGiftText, payload)
		b.send(ctx, chatID, "Enter your Amazon Gift Card code:", nil)

	case data == "pay_upi":
		b.sessions.Set(accountID, stepUPIAmount, "")
		b.send(ctx, chatID, fmt.Sprintf("How many diamonds you need to buy? Minimum is %d:", b.cfg.MinDeposit), nil)

	case data == "upi_done":
		_, payload := b.sessions.Get(accountID)
		b.sessions.Set(accountID, stepUPIPayer, payload)
		b.send(ctx, chatID, "What Is The Payer Name?", nil)

	case strings.HasPrefix(data, "buytype_"):
		couponType := strings.TrimPrefix(data, "buytype_")
		b.sessions.Set(accountID, stepBuyQty, couponType)
		b.send(ctx, chatID, fmt.Sprintf("How many %s coupons do you want to buy?\nPlease send the quantity:", couponType), nil)

	case strings.HasPrefix(data, "admin_acc_") && b.isAdmin(accountID):
		b.resolveOrder(ctx, chatID, strings.TrimPrefix(data, "admin_acc_"), true)

	case strings.HasPrefix(data, "admin_dec_") && b.isAdmin(accountID):
		b.resolveOrder(ctx, chatID, strings.TrimPrefix(data, "admin_dec_"), false)

	case strings.HasPrefix(data, "admin_add_") && b.isAdmin(accountID):
		couponType := strings.TrimPrefix(data, "admin_add_")
		b.sessions.Set(accountID, stepAdminAddCodes, couponType)
		b.send(ctx, chatID, fmt.Sprintf("Send %s coupon codes line-by-line:", couponType), nil)

	case strings.HasPrefix(data, "admin_remove_") && b.isAdmin(accountID):
		couponType := strings.TrimPrefix(data, "admin_remove_")
		b.sessions.Set(accountID, stepAdminRemoveQty, couponType)
		b.send(ctx, chatID, fmt.Sprintf("How many %s coupons do you want to remove? Send a number:", couponType), nil)

	case strings.HasPrefix(data, "admin_price_") && b.isAdmin(accountID):
		couponType := strings.TrimPrefix(data, "admin_price_")
		b.sessions.Set(accountID, stepAdminNewPrice, couponType)
		b.send(ctx, chatID, fmt.Sprintf("Send new price (diamonds) for %s:", couponType), nil)

	case strings.HasPrefix(data, "admin_free_") && b.isAdmin(accountID):
		b.grantFree(ctx, chatID, strings.TrimPrefix(data, "admin_free_"))
	}
}

func (b *Bot) resolveOrder(ctx context.Context, chatID int64, rawID string, approve bool) {
	orderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		b.send(ctx, chatID, "❌ Order not found.", nil)
		return
	}

	var res *depositservice.Resolution
	if approve {
		res, err = b.deposits.Approve(ctx, orderID)
	} else {
		res, err = b.deposits.Decline(ctx, orderID)
	}
	if err != nil {
		b.send(ctx, chatID, "⚠️ Could not resolve the order. Try again.", nil)
		return
	}

	switch res.Status {
	case depositservice.ResolutionNotFound:
		b.send(ctx, chatID, "❌ Order not found.", nil)

	case depositservice.ResolutionAlreadyResolved:
		b.send(ctx, chatID, fmt.Sprintf("⚠️ Already %s.", res.Order.Status), nil)

	case depositservice.ResolutionApplied:
		if approve {
			b.send(ctx, chatID, fmt.Sprintf("✅ Approved Order #%d", orderID), nil)
			b.send(ctx, res.Order.AccountID, fmt.Sprintf("✅ Approved! %d Diamonds added.", res.Order.Diamonds), nil)
		} else {
			b.send(ctx, chatID, fmt.Sprintf("❌ Declined Order #%d", orderID), nil)
			b.send(ctx, res.Order.AccountID, "❌ Your request was declined by admin.", nil)
		}
	}
}

func (b *Bot) grantFree(ctx context.Context, chatID int64, couponType string) {
	code, err := b.stock.GrantFree(ctx, couponType)
	if errors.Is(err, stockservice.ErrNoStock) {
		b.send(ctx, chatID, fmt.Sprintf("❌ No stock for %s.", couponType), nil)
		return
	}
	if err != nil {
		b.send(ctx, chatID, "❌ Failed to grant a coupon.", nil)
		return
	}
	b.send(ctx, chatID, fmt.Sprintf("🎁 Free Coupon (%s):\n%s", couponType, code), nil)
}

func (b *Bot) sendPurchaseResult(ctx context.Context, chatID int64, res *purchaseservice.Result) {
	switch res.Status {
	case purchaseservice.StatusSuccess:
		total := len(res.Codes)
		b.send(ctx, chatID, fmt.Sprintf("✅ Purchase successful! New balance: %d 💎", res.NewBalance), nil)
		for start := 0; start < total; start += codesPerMessage {
			end := start + codesPerMessage
			if end > total {
				end = total
			}
			b.send(ctx, chatID, "🎟️ Your Coupons:\n"+strings.Join(res.Codes[start:end], "\n"), nil)
		}

	case purchaseservice.StatusInvalidType:
		b.send(ctx, chatID, "❌ Invalid coupon type.", nil)

	case purchaseservice.StatusInvalidQuantity:
		b.send(ctx, chatID, "❌ Please send a valid quantity.", nil)

	case purchaseservice.StatusPriceNotSet:
		b.send(ctx, chatID, "❌ Price not set by admin.", nil)

	case purchaseservice.StatusInsufficientFunds:
		b.send(ctx, chatID, fmt.Sprintf("❌ Not enough diamonds! Needed: %d | You have: %d", res.Required, res.Available), nil)

	case purchaseservice.StatusInsufficientStock:
		b.send(ctx, chatID, fmt.Sprintf("❌ Not enough stock! Available: %d", res.Available), nil)

	case purchaseservice.StatusTransactionFailed:
		b.send(ctx, chatID, "❌ Purchase failed. Nothing was charged, please try again.", nil)
	}
}

func (b *Bot) sendCouponCatalog(ctx context.Context, chatID int64) {
	counts, err := b.stock.StockCounts(ctx)
	if err != nil {
		b.send(ctx, chatID, "⚠️ Can't read the catalog right now.", nil)
		return
	}

	rows := make([][]telegram.InlineButton, 0, len(domain.CouponTypes))
	for _, t := range domain.CouponTypes {
		price, err := b.stock.Price(ctx, t)
		if err != nil {
			b.send(ctx, chatID, "⚠️ Can't read the catalog right now.", nil)
			return
		}
		rows = append(rows, []telegram.InlineButton{{
			Text:         fmt.Sprintf("%s (💎%d) Stock:%d", t, price, counts[t]),
			CallbackData: "buytype_" + t,
		}})
	}
	b.send(ctx, chatID, "Select a coupon type:", &telegram.InlineKeyboard{InlineKeyboard: rows})
}

func (b *Bot) sendPriceList(ctx context.Context, chatID int64) {
	prices, err := b.stock.Prices(ctx)
	if err != nil {
		b.send(ctx, chatID, "⚠️ Can't read prices right now.", nil)
		return
	}

	lines := []string{"💰 Current Prices:", ""}
	for _, p := range prices {
		lines = append(lines, fmt.Sprintf("%s: %d 💎", p.Type, p.Price))
	}
	b.send(ctx, chatID, strings.Join(lines, "\n"), nil)
}

func (b *Bot) sendOrderHistory(ctx context.Context, chatID, accountID int64) {
	orders, err := b.accounts.History(ctx, accountID)
	if err != nil {
		b.send(ctx, chatID, "⚠️ Can't read your orders right now.", nil)
		return
	}
	if len(orders) == 0 {
		b.send(ctx, chatID, "📦 No orders yet.", nil)
		return
	}

	lines := []string{"📦 Your Orders (last 10):", ""}
	for _, o := range orders {
		lines = append(lines, fmt.Sprintf("#%d | %s/%s | %d💎 | %s | %s",
			o.ID, o.Kind, o.Method, o.Diamonds, o.Status, o.CreatedAt.Format("02-01 15:04")))
	}
	b.send(ctx, chatID, strings.Join(lines, "\n"), nil)
}

// notifyAdmins fans the pending-order notification out to every operator.
func (b *Bot) notifyAdmins(ctx context.Context, order *domain.Order) {
	text := orderNotification(order)
	kb := approvalKeyboard(order.ID)

	var g errgroup.Group
	for _, adminID := range b.cfg.AdminIDs {
		adminID := adminID
		g.Go(func() error {
			if order.Evidence != "" {
				return b.gateway.SendImage(ctx, adminID, order.Evidence, text, kb)
			}
			return b.gateway.SendText(ctx, adminID, text, kb)
		})
	}
	if err := g.Wait(); err != nil {
		zap.L().Error("admin notification failed", zap.Int64("orderID", order.ID), zap.Error(err))
	}
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, keyboard any) {
	if err := b.gateway.SendText(ctx, chatID, text, keyboard); err != nil {
		zap.L().Error("can't deliver message", zap.Int64("chatID", chatID), zap.Error(err))
	}
}
