package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/config"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/domain"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/depositservice"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/purchaseservice"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/session"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/telegram"
)

const (
	userID  = int64(100)
	adminID = int64(900)
)

type sent struct {
	chatID   int64
	text     string
	keyboard any
}

type fakeGateway struct {
	texts    []sent
	images   []sent
	answered []string
}

func (g *fakeGateway) SendText(_ context.Context, chatID int64, text string, keyboard any) error {
	g.texts = append(g.texts, sent{chatID, text, keyboard})
	return nil
}

func (g *fakeGateway) SendImage(_ context.Context, chatID int64, fileID, caption string, keyboard any) error {
	g.images = append(g.images, sent{chatID, fileID + "|" + caption, keyboard})
	return nil
}

func (g *fakeGateway) AnswerCallback(_ context.Context, callbackID string) error {
	g.answered = append(g.answered, callbackID)
	return nil
}

func (g *fakeGateway) lastText() string {
	if len(g.texts) == 0 {
		return ""
	}
	return g.texts[len(g.texts)-1].text
}

type fakeAccounts struct {
	balance int64
	orders  []domain.Order
	ensured []int64
}

func (f *fakeAccounts) Ensure(_ context.Context, accountID int64, _ string) error {
	f.ensured = append(f.ensured, accountID)
	return nil
}

func (f *fakeAccounts) Balance(context.Context, int64) (int64, error) {
	return f.balance, nil
}

func (f *fakeAccounts) History(context.Context, int64) ([]domain.Order, error) {
	return f.orders, nil
}

type purchaseCall struct {
	accountID  int64
	couponType string
	qty        int64
}

type fakePurchases struct {
	result *purchaseservice.Result
	calls  []purchaseCall
}

func (f *fakePurchases) Purchase(_ context.Context, accountID int64, couponType string, qty int64) *purchaseservice.Result {
	f.calls = append(f.calls, purchaseCall{accountID, couponType, qty})
	return f.result
}

type fakeDeposits struct {
	qr         string
	submitted  []*domain.Order
	resolution *depositservice.Resolution
	resolved   []int64
	declined   []int64
}

func (f *fakeDeposits) Submit(_ context.Context, accountID int64, method string, amount int64, details, evidence string) (*domain.Order, error) {
	order := &domain.Order{
		ID:        int64(len(f.submitted) + 1),
		AccountID: accountID,
		Kind:      domain.OrderKindDeposit,
		Method:    method,
		Amount:    amount,
		Diamonds:  amount,
		Details:   details,
		Evidence:  evidence,
		Status:    domain.OrderStatusPending,
	}
	f.submitted = append(f.submitted, order)
	return order, nil
}

func (f *fakeDeposits) Approve(_ context.Context, orderID int64) (*depositservice.Resolution, error) {
	f.resolved = append(f.resolved, orderID)
	return f.resolution, nil
}

func (f *fakeDeposits) Decline(_ context.Context, orderID int64) (*depositservice.Resolution, error) {
	f.declined = append(f.declined, orderID)
	return f.resolution, nil
}

func (f *fakeDeposits) Get(context.Context, int64) (*domain.Order, error) { return nil, nil }
func (f *fakeDeposits) UPIQR(context.Context) (string, error)             { return f.qr, nil }
func (f *fakeDeposits) SetUPIQR(context.Context, string) error            { return nil }

type fakeStock struct {
	counts map[string]int64
	prices map[string]int64
	added  int64
}

func (f *fakeStock) AddStock(context.Context, string, []string) (int64, error) { return f.added, nil }
func (f *fakeStock) RemoveStock(context.Context, string, int64) (int64, error) { return 0, nil }
func (f *fakeStock) SetPrice(context.Context, string, int64) error             { return nil }
func (f *fakeStock) GrantFree(context.Context, string) (string, error)         { return "FREE1", nil }

func (f *fakeStock) StockCounts(context.Context) (map[string]int64, error) {
	return f.counts, nil
}

func (f *fakeStock) Price(_ context.Context, couponType string) (int64, error) {
	return f.prices[couponType], nil
}

func (f *fakeStock) Prices(context.Context) ([]domain.Price, error) {
	var prices []domain.Price
	for _, t := range domain.CouponTypes {
		if p, ok := f.prices[t]; ok {
			prices = append(prices, domain.Price{Type: t, Price: p})
		}
	}
	return prices, nil
}

type env struct {
	bot       *Bot
	gateway   *fakeGateway
	sessions  *session.Store
	accounts  *fakeAccounts
	purchases *fakePurchases
	deposits  *fakeDeposits
	stock     *fakeStock
}

func newEnv() *env {
	cfg := &config.Config{AdminIDs: []int64{adminID}, MinDeposit: 30}
	e := &env{
		gateway:  &fakeGateway{},
		sessions: session.NewStore(),
		accounts: &fakeAccounts{},
		purchases: &fakePurchases{
			result: &purchaseservice.Result{Status: purchaseservice.StatusSuccess},
		},
		deposits: &fakeDeposits{},
		stock: &fakeStock{
			counts: map[string]int64{"500": 5, "1K": 0, "2K": 0, "4K": 0},
			prices: map[string]int64{"500": 10},
		},
	}
	e.bot = New(cfg, e.gateway, e.sessions, e.accounts, e.purchases, e.deposits, e.stock)
	return e
}

func message(accountID, chatID int64, text string) *telegram.Update {
	return &telegram.Update{
		Message: &telegram.Message{
			From: &telegram.User{ID: accountID, Username: "u"},
			Chat: telegram.Chat{ID: chatID},
			Text: text,
		},
	}
}

func photo(accountID, chatID int64, fileID string) *telegram.Update {
	return &telegram.Update{
		Message: &telegram.Message{
			From:  &telegram.User{ID: accountID, Username: "u"},
			Chat:  telegram.Chat{ID: chatID},
			Photo: []telegram.PhotoSize{{FileID: fileID}},
		},
	}
}

func callback(accountID, chatID int64, data string) *telegram.Update {
	return &telegram.Update{
		Callback: &telegram.CallbackQuery{
			ID:      "cb-1",
			From:    &telegram.User{ID: accountID},
			Message: &telegram.Message{Chat: telegram.Chat{ID: chatID}},
			Data:    data,
		},
	}
}

func TestStartShowsMenuPerRole(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	e.bot.Handle(ctx, message(userID, userID, "/start"))
	assert.Equal(t, userMenu(), e.gateway.texts[0].keyboard)
	assert.Contains(t, e.gateway.texts[0].text, "Welcome")
	assert.Equal(t, []int64{userID}, e.accounts.ensured)

	e.bot.Handle(ctx, message(adminID, adminID, "/start"))
	assert.Equal(t, adminMenu(), e.gateway.texts[1].keyboard)
}

func TestBalanceCommand(t *testing.T) {
	e := newEnv()
	e.accounts.balance = 120

	e.bot.Handle(context.Background(), message(userID, userID, "💰 Balance"))
	assert.Equal(t, "💎 Your Balance: 120", e.gateway.lastText())
}

func TestBuyFlow(t *testing.T) {
	e := newEnv()
	e.purchases.result = &purchaseservice.Result{
		Status:     purchaseservice.StatusSuccess,
		Codes:      []string{"C1", "C2", "C3"},
		NewBalance: 70,
	}
	ctx := context.Background()

	e.bot.Handle(ctx, message(userID, userID, "🛒 Buy Coupon"))
	kb, ok := e.gateway.texts[len(e.gateway.texts)-1].keyboard.(*telegram.InlineKeyboard)
	if assert.True(t, ok) {
		assert.Equal(t, "buytype_500", kb.InlineKeyboard[0][0].CallbackData)
		assert.Contains(t, kb.InlineKeyboard[0][0].Text, "Stock:5")
	}

	e.bot.Handle(ctx, callback(userID, userID, "buytype_500"))
	assert.Contains(t, e.gateway.lastText(), "How many 500 coupons")

	e.bot.Handle(ctx, message(userID, userID, "3"))
	assert.Equal(t, []purchaseCall{{userID, "500", 3}}, e.purchases.calls)
	assert.Contains(t, e.gateway.texts[len(e.gateway.texts)-2].text, "New balance: 70")
	assert.Contains(t, e.gateway.lastText(), "C1\nC2\nC3")

	// Session is cleared after the attempt; another number does nothing.
	before := len(e.purchases.calls)
	e.bot.Handle(ctx, message(userID, userID, "3"))
	assert.Len(t, e.purchases.calls, before)
}

func TestBuyQtyRejectsGarbage(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	e.bot.Handle(ctx, callback(userID, userID, "buytype_500"))
	e.bot.Handle(ctx, message(userID, userID, "lots"))

	assert.Empty(t, e.purchases.calls)
	assert.Contains(t, e.gateway.lastText(), "quantity as a number")
}

func TestPurchaseRefusalsAreRendered(t *testing.T) {
	tests := []struct {
		name   string
		result *purchaseservice.Result
		expect string
	}{
		{
			name:   "Insufficient funds",
			result: &purchaseservice.Result{Status: purchaseservice.StatusInsufficientFunds, Required: 10, Available: 5},
			expect: "Needed: 10 | You have: 5",
		},
		{
			name:   "Insufficient stock",
			result: &purchaseservice.Result{Status: purchaseservice.StatusInsufficientStock, Available: 2},
			expect: "Available: 2",
		},
		{
			name:   "Price not set",
			result: &purchaseservice.Result{Status: purchaseservice.StatusPriceNotSet},
			expect: "Price not set",
		},
		{
			name:   "Transaction failed",
			result: &purchaseservice.Result{Status: purchaseservice.StatusTransactionFailed, Detail: "db down"},
			expect: "Nothing was charged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			e.purchases.result = tt.result
			ctx := context.Background()

			e.bot.Handle(ctx, callback(userID, userID, "buytype_500"))
			e.bot.Handle(ctx, message(userID, userID, "5"))

			assert.Contains(t, e.gateway.lastText(), tt.expect)
		})
	}
}

func TestSuccessCodesAreChunked(t *testing.T) {
	e := newEnv()
	codes := make([]string, 60)
	for i := range codes {
		codes[i] = fmt.Sprintf("CODE%02d", i)
	}
	e.purchases.result = &purchaseservice.Result{
		Status:     purchaseservice.StatusSuccess,
		Codes:      codes,
		NewBalance: 0,
	}
	ctx := context.Background()

	e.bot.Handle(ctx, callback(userID, userID, "buytype_500"))
	e.bot.Handle(ctx, message(userID, userID, "60"))

	var chunks []string
	for _, s := range e.gateway.texts {
		if strings.HasPrefix(s.text, "🎟️ Your Coupons:") {
			chunks = append(chunks, s.text)
		}
	}
	// 60 codes, 25 per message.
	assert.Len(t, chunks, 3)
}

func TestUPIFlowWithoutQR(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	e.bot.Handle(ctx, callback(userID, userID, "pay_upi"))
	e.bot.Handle(ctx, message(userID, userID, "100"))

	assert.Contains(t, e.gateway.lastText(), "Admin has not updated QR")
	step, _ := e.sessions.Get(userID)
	assert.Equal(t, "", step)
}

func TestUPIFlowSubmitsAndNotifiesAdmins(t *testing.T) {
	e := newEnv()
	e.deposits.qr = "qr-file"
	ctx := context.Background()

	e.bot.Handle(ctx, callback(userID, userID, "pay_upi"))
	e.bot.Handle(ctx, message(userID, userID, "100"))

	// Amount accepted: QR image goes out with the pay button.
	if assert.Len(t, e.gateway.images, 1) {
		assert.Contains(t, e.gateway.images[0].text, "qr-file|")
		assert.Contains(t, e.gateway.images[0].text, "Amount: 100")
	}

	e.bot.Handle(ctx, callback(userID, userID, "upi_done"))
	assert.Contains(t, e.gateway.lastText(), "Payer Name")

	e.bot.Handle(ctx, message(userID, userID, "Alice"))
	assert.Contains(t, e.gateway.lastText(), "screenshot")

	e.bot.Handle(ctx, photo(userID, userID, "proof-1"))

	if assert.Len(t, e.deposits.submitted, 1) {
		order := e.deposits.submitted[0]
		assert.Equal(t, "UPI", order.Method)
		assert.Equal(t, int64(100), order.Amount)
		assert.Equal(t, "payer=Alice", order.Details)
		assert.Equal(t, "proof-1", order.Evidence)
	}

	// The evidence photo lands in the admin chat with accept/decline buttons.
	admin := e.gateway.images[len(e.gateway.images)-1]
	assert.Equal(t, adminID, admin.chatID)
	assert.Equal(t, approvalKeyboard(1), admin.keyboard)
}

func TestDepositAmountBelowMinimum(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	e.bot.Handle(ctx, callback(userID, userID, "pay_amazon"))
	e.bot.Handle(ctx, message(userID, userID, "10"))

	assert.Contains(t, e.gateway.lastText(), "Minimum coin is 30")
	assert.Empty(t, e.deposits.submitted)
}

func TestApprovalCallbacks(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		resolution *depositservice.Resolution
		expect     string
	}{
		{
			name: "Approve credits and notifies the user",
			data: "admin_acc_7",
			resolution: &depositservice.Resolution{
				Status: depositservice.ResolutionApplied,
				Order:  &domain.Order{ID: 7, AccountID: userID, Diamonds: 100, Status: domain.OrderStatusApproved},
			},
			expect: "✅ Approved! 100 Diamonds added.",
		},
		{
			name: "Second tap reports already resolved",
			data: "admin_acc_7",
			resolution: &depositservice.Resolution{
				Status: depositservice.ResolutionAlreadyResolved,
				Order:  &domain.Order{ID: 7, AccountID: userID, Status: domain.OrderStatusApproved},
			},
			expect: "Already approved",
		},
		{
			name:       "Unknown order",
			data:       "admin_acc_999",
			resolution: &depositservice.Resolution{Status: depositservice.ResolutionNotFound},
			expect:     "Order not found",
		},
		{
			name: "Decline notifies the user",
			data: "admin_dec_7",
			resolution: &depositservice.Resolution{
				Status: depositservice.ResolutionApplied,
				Order:  &domain.Order{ID: 7, AccountID: userID, Diamonds: 100, Status: domain.OrderStatusDeclined},
			},
			expect: "declined by admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			e.deposits.resolution = tt.resolution

			e.bot.Handle(context.Background(), callback(adminID, adminID, tt.data))
			assert.Contains(t, e.gateway.lastText(), tt.expect)
		})
	}
}

func TestApprovalIgnoredForNonAdmin(t *testing.T) {
	e := newEnv()
	e.deposits.resolution = &depositservice.Resolution{Status: depositservice.ResolutionApplied}

	e.bot.Handle(context.Background(), callback(userID, userID, "admin_acc_7"))

	assert.Empty(t, e.deposits.resolved)
	assert.Empty(t, e.gateway.texts)
}

func TestAdminAddStockFlow(t *testing.T) {
	e := newEnv()
	e.stock.added = 2
	ctx := context.Background()

	e.bot.Handle(ctx, message(adminID, adminID, "🛠 Admin Panel"))
	assert.Equal(t, adminPanelMenu(), e.gateway.texts[len(e.gateway.texts)-1].keyboard)

	e.bot.Handle(ctx, callback(adminID, adminID, "admin_add_500"))
	assert.Contains(t, e.gateway.lastText(), "coupon codes line-by-line")

	e.bot.Handle(ctx, message(adminID, adminID, "AAA\nBBB"))
	assert.Contains(t, e.gateway.lastText(), "Added 2 coupons to 500")
}

func TestAdminStockOverview(t *testing.T) {
	e := newEnv()

	e.bot.Handle(context.Background(), message(adminID, adminID, "📊 Stock"))
	text := e.gateway.lastText()
	assert.Contains(t, text, "500: 5")
	assert.Contains(t, text, "1K: 0")
}

func TestOrderHistory(t *testing.T) {
	e := newEnv()

	e.bot.Handle(context.Background(), message(userID, userID, "📦 My Orders"))
	assert.Equal(t, "📦 No orders yet.", e.gateway.lastText())
}
