package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/domain"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/telegram"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/pkg/validate"
	"go.uber.org/zap"
)

// depositDraft travels through the multi-step deposit flows as the session
// payload.
type depositDraft struct {
	Diamonds int64  `json:"diamonds"`
	GiftText string `json:"gift_text,omitempty"`
	Payer    string `json:"payer,omitempty"`
}

func (b *Bot) handleMessage(ctx context.Context, msg *telegram.Message) {
	chatID := msg.Chat.ID
	accountID := msg.From.ID

	if err := b.accounts.Ensure(ctx, accountID, msg.From.Username); err != nil {
		b.send(ctx, chatID, "⚠️ Something went wrong. Try again later.", nil)
		return
	}

	if b.handleCommand(ctx, chatID, accountID, msg.Text) {
		return
	}

	step, payload := b.sessions.Get(accountID)
	if step == "" {
		return
	}
	b.handleStep(ctx, msg, step, payload)
}

// handleCommand covers /start and the persistent menu buttons; it reports
// whether the message was consumed.
func (b *Bot) handleCommand(ctx context.Context, chatID, accountID int64, text string) bool {
	switch text {
	case "/start":
		b.sessions.Clear(accountID)
		if b.isAdmin(accountID) {
			b.send(ctx, chatID, "Welcome ✅", adminMenu())
		} else {
			b.send(ctx, chatID, "Welcome 💎", userMenu())
		}
		return true

	case "💰 Balance":
		balance, err := b.accounts.Balance(ctx, accountID)
		if err != nil {
			b.send(ctx, chatID, "⚠️ Something went wrong. Try again later.", nil)
			return true
		}
		b.send(ctx, chatID, fmt.Sprintf("💎 Your Balance: %d", balance), nil)
		return true

	case "📦 My Orders":
		b.sendOrderHistory(ctx, chatID, accountID)
		return true

	case "💎 Add Diamonds":
		b.send(ctx, chatID, "💳 Select Payment Method:", payMethodKeyboard())
		return true

	case "🛒 Buy Coupon":
		b.sendCouponCatalog(ctx, chatID)
		return true
	}

	if b.isAdmin(accountID) {
		return b.handleAdminCommand(ctx, chatID, accountID, text)
	}
	return false
}

func (b *Bot) handleAdminCommand(ctx context.Context, chatID, accountID int64, text string) bool {
	switch text {
	case "🛠 Admin Panel":
		b.send(ctx, chatID, "🛠 Admin Panel", adminPanelMenu())

	case "⬅️ Back to User Menu":
		b.send(ctx, chatID, "Back ✅", adminMenu())

	case "📊 Stock":
		counts, err := b.stock.StockCounts(ctx)
		if err != nil {
			b.send(ctx, chatID, "⚠️ Can't read stock right now.", nil)
			return true
		}
		lines := []string{"📊 Stock:", ""}
		for _, t := range domain.CouponTypes {
			lines = append(lines, fmt.Sprintf("%s: %d", t, counts[t]))
		}
		b.send(ctx, chatID, strings.Join(lines, "\n"), nil)

	case "💰 Change Prices":
		b.sendPriceList(ctx, chatID)
		b.send(ctx, chatID, "Select type to change price:", couponSelectKeyboard("admin_price_"))

	case "➕ Add Coupon":
		b.send(ctx, chatID, "Select type to add coupons:", couponSelectKeyboard("admin_add_"))

	case "➖ Remove Coupon":
		b.send(ctx, chatID, "Select type to remove coupons:", couponSelectKeyboard("admin_remove_"))

	case "🎁 Free Coupon":
		b.send(ctx, chatID, "Select type to get a free coupon:", couponSelectKeyboard("admin_free_"))

	case "🔄 Update QR":
		b.sessions.Set(accountID, stepAdminUpdateQR, "")
		b.send(ctx, chatID, "📸 Send the new UPI QR photo now:", nil)

	default:
		return false
	}
	return true
}

func (b *Bot) handleStep(ctx context.Context, msg *telegram.Message, step, payload string) {
	chatID := msg.Chat.ID
	accountID := msg.From.ID

	switch step {
	case stepAmazonAmount:
		b.collectDepositAmount(ctx, msg, "Amazon Gift Card", "amazon_submit", "Submit a Gift Card")

	case stepAmazonGiftText:
		draft := decodeDraft(payload)
		draft.GiftText = msg.Text
		b.sessions.Set(accountID, stepAmazonWaitSS, encodeDraft(draft))
		b.send(ctx, chatID, "📸 Now upload a screenshot of the gift card:", nil)

	case stepAmazonWaitSS:
		b.collectDepositScreenshot(ctx, msg, payload, "Amazon", func(d depositDraft) string {
			return "gift=" + d.GiftText
		})

	case stepUPIAmount:
		b.collectUPIAmount(ctx, msg)

	case stepUPIPayer:
		draft := decodeDraft(payload)
		draft.Payer = msg.Text
		b.sessions.Set(accountID, stepUPIWaitSS, encodeDraft(draft))
		b.send(ctx, chatID, "📸 Send screenshot of the payment:", nil)

	case stepUPIWaitSS:
		b.collectDepositScreenshot(ctx, msg, payload, "UPI", func(d depositDraft) string {
			return "payer=" + d.Payer
		})

	case stepBuyQty:
		b.collectPurchaseQty(ctx, msg, payload)

	case stepAdminAddCodes:
		b.collectStockCodes(ctx, msg, payload)

	case stepAdminRemoveQty:
		b.collectRemoveQty(ctx, msg, payload)

	case stepAdminNewPrice:
		b.collectNewPrice(ctx, msg, payload)

	case stepAdminUpdateQR:
		b.collectQRPhoto(ctx, msg)
	}
}

// collectDepositAmount validates the requested top-up and shows the order
// summary with a confirmation button.
func (b *Bot) collectDepositAmount(ctx context.Context, msg *telegram.Message, method, confirmData, confirmLabel string) {
	chatID := msg.Chat.ID
	accountID := msg.From.ID

	amount, ok := validate.AmountAtLeast(msg.Text, b.cfg.MinDeposit)
	if !ok {
		b.send(ctx, chatID, fmt.Sprintf("❌ Minimum coin is %d. Send a number.", b.cfg.MinDeposit), nil)
		return
	}

	b.sessions.Set(accountID, "", encodeDraft(depositDraft{Diamonds: amount}))
	kb := &telegram.InlineKeyboard{InlineKeyboard: [][]telegram.InlineButton{
		{{Text: confirmLabel, CallbackData: confirmData}},
	}}
	b.send(ctx, chatID, orderSummary(method, amount), kb)
}

func (b *Bot) collectUPIAmount(ctx context.Context, msg *telegram.Message) {
	chatID := msg.Chat.ID
	accountID := msg.From.ID

	amount, ok := validate.AmountAtLeast(msg.Text, b.cfg.MinDeposit)
	if !ok {
		b.send(ctx, chatID, fmt.Sprintf("❌ Minimum coin is %d. Send a number.", b.cfg.MinDeposit), nil)
		return
	}

	qr, err := b.deposits.UPIQR(ctx)
	if err != nil {
		b.send(ctx, chatID, "⚠️ Something went wrong. Try again later.", nil)
		return
	}
	if qr == "" {
		b.sessions.Clear(accountID)
		b.send(ctx, chatID, "⚠️ UPI is not available right now. Admin has not updated QR.", nil)
		return
	}

	b.sessions.Set(accountID, "", encodeDraft(depositDraft{Diamonds: amount}))
	kb := &telegram.InlineKeyboard{InlineKeyboard: [][]telegram.InlineButton{
		{{Text: "✅ Done the Payment", CallbackData: "upi_done"}},
	}}
	caption := orderSummary("UPI", amount) + "\n\n✅ Pay and then click: Done the Payment"
	if err := b.gateway.SendImage(ctx, chatID, qr, caption, kb); err != nil {
		zap.L().Error("can't send UPI QR", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

// collectDepositScreenshot finishes a deposit flow: the uploaded photo is
// the payment evidence, the order goes in pending and operators are told.
func (b *Bot) collectDepositScreenshot(ctx context.Context, msg *telegram.Message, payload, method string, details func(depositDraft) string) {
	chatID := msg.Chat.ID
	accountID := msg.From.ID

	fileID := msg.LargestPhoto()
	if fileID == "" {
		b.send(ctx, chatID, "📸 Please upload screenshot image.", nil)
		return
	}

	draft := decodeDraft(payload)
	order, err := b.deposits.Submit(ctx, accountID, method, draft.Diamonds, details(draft), fileID)
	if err != nil {
		b.send(ctx, chatID, "⚠️ Could not submit your order. Try again later.", nil)
		return
	}

	b.sessions.Clear(accountID)
	b.send(ctx, chatID, "⏳ Admin is checking your payment. Wait for approval.", nil)
	b.notifyAdmins(ctx, order)
}

func (b *Bot) collectPurchaseQty(ctx context.Context, msg *telegram.Message, couponType string) {
	chatID := msg.Chat.ID
	accountID := msg.From.ID

	qty, ok := validate.PositiveInt(msg.Text)
	if !ok {
		b.send(ctx, chatID, "❌ Please send the quantity as a number.", nil)
		return
	}

	b.sessions.Clear(accountID)
	res := b.purchases.Purchase(ctx, accountID, couponType, qty)
	b.sendPurchaseResult(ctx, chatID, res)
}

func (b *Bot) collectStockCodes(ctx context.Context, msg *telegram.Message, couponType string) {
	chatID := msg.Chat.ID
	accountID := msg.From.ID

	var codes []string
	for _, line := range strings.Split(msg.Text, "\n") {
		if code := strings.TrimSpace(line); code != "" {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		b.send(ctx, chatID, "❌ Send coupon codes line-by-line.", nil)
		return
	}

	added, err := b.stock.AddStock(ctx, couponType, codes)
	if err != nil {
		b.send(ctx, chatID, "❌ Add failed. Check the codes and try again.", nil)
		return
	}

	b.sessions.Clear(accountID)
	b.send(ctx, chatID, fmt.Sprintf("✅ Added %d coupons to %s.", added, couponType), adminPanelMenu())
}

func (b *Bot) collectRemoveQty(ctx context.Context, msg *telegram.Message, couponType string) {
	chatID := msg.Chat.ID
	accountID := msg.From.ID

	qty, ok := validate.PositiveInt(msg.Text)
	if !ok {
		b.send(ctx, chatID, "❌ Send remove quantity as a number.", nil)
		return
	}

	removed, err := b.stock.RemoveStock(ctx, couponType, qty)
	if err != nil {
		b.send(ctx, chatID, "❌ Remove failed.", nil)
		return
	}
	if removed == 0 {
		b.send(ctx, chatID, fmt.Sprintf("❌ No stock to remove for %s.", couponType), nil)
		return
	}

	b.sessions.Clear(accountID)
	b.send(ctx, chatID, fmt.Sprintf("✅ Removed %d coupons from %s.", removed, couponType), adminPanelMenu())
}

func (b *Bot) collectNewPrice(ctx context.Context, msg *telegram.Message, couponType string) {
	chatID := msg.Chat.ID
	accountID := msg.From.ID

	price, ok := validate.PositiveInt(msg.Text)
	if !ok {
		b.send(ctx, chatID, "❌ Send new price as a number.", nil)
		return
	}

	if err := b.stock.SetPrice(ctx, couponType, price); err != nil {
		b.send(ctx, chatID, "❌ Price update failed.", nil)
		return
	}

	b.sessions.Clear(accountID)
	b.send(ctx, chatID, fmt.Sprintf("✅ Updated price: %s = %d 💎", couponType, price), adminPanelMenu())
}

func (b *Bot) collectQRPhoto(ctx context.Context, msg *telegram.Message) {
	chatID := msg.Chat.ID
	accountID := msg.From.ID

	fileID := msg.LargestPhoto()
	if fileID == "" {
		b.send(ctx, chatID, "📸 Send QR as photo only.", nil)
		return
	}

	if err := b.deposits.SetUPIQR(ctx, fileID); err != nil {
		b.send(ctx, chatID, "❌ QR update failed.", nil)
		return
	}

	b.sessions.Clear(accountID)
	b.send(ctx, chatID, "✅ UPI QR Updated.", adminPanelMenu())
}

func encodeDraft(d depositDraft) string {
	payload, err := json.Marshal(d)
	if err != nil {
		zap.L().Error("can't encode deposit draft", zap.Error(err))
		return "{}"
	}
	return string(payload)
}

func decodeDraft(payload string) depositDraft {
	var d depositDraft
	if payload == "" {
		return d
	}
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		zap.L().Error("can't decode deposit draft", zap.Error(err))
	}
	return d
}
