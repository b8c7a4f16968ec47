package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/domain"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/telegram"
)

func userMenu() *telegram.ReplyKeyboard {
	return &telegram.ReplyKeyboard{
		Keyboard: [][]string{
			{"💎 Add Diamonds", "🛒 Buy Coupon"},
			{"📦 My Orders", "💰 Balance"},
		},
		ResizeKeyboard: true,
	}
}

func adminMenu() *telegram.ReplyKeyboard {
	return &telegram.ReplyKeyboard{
		Keyboard: [][]string{
			{"🛠 Admin Panel"},
			{"💎 Add Diamonds", "🛒 Buy Coupon"},
			{"📦 My Orders", "💰 Balance"},
		},
		ResizeKeyboard: true,
	}
}

func adminPanelMenu() *telegram.ReplyKeyboard {
	return &telegram.ReplyKeyboard{
		Keyboard: [][]string{
			{"📊 Stock", "💰 Change Prices"},
			{"➕ Add Coupon", "➖ Remove Coupon"},
			{"🎁 Free Coupon", "🔄 Update QR"},
			{"⬅️ Back to User Menu"},
		},
		ResizeKeyboard: true,
	}
}

func payMethodKeyboard() *telegram.InlineKeyboard {
	return &telegram.InlineKeyboard{
		InlineKeyboard: [][]telegram.InlineButton{
			{{Text: "Amazon Gift Card", CallbackData: "pay_amazon"}},
			{{Text: "UPI", CallbackData: "pay_upi"}},
		},
	}
}

// couponSelectKeyboard builds one row per tier with the given callback
// prefix, e.g. "admin_add_" -> admin_add_1K.
func couponSelectKeyboard(prefix string) *telegram.InlineKeyboard {
	rows := make([][]telegram.InlineButton, 0, len(domain.CouponTypes))
	for _, t := range domain.CouponTypes {
		rows = append(rows, []telegram.InlineButton{{Text: t, CallbackData: prefix + t}})
	}
	return &telegram.InlineKeyboard{InlineKeyboard: rows}
}

func approvalKeyboard(orderID int64) *telegram.InlineKeyboard {
	return &telegram.InlineKeyboard{
		InlineKeyboard: [][]telegram.InlineButton{{
			{Text: "✅ Accept", CallbackData: fmt.Sprintf("admin_acc_%d", orderID)},
			{Text: "❌ Decline", CallbackData: fmt.Sprintf("admin_dec_%d", orderID)},
		}},
	}
}

func orderSummary(method string, diamonds int64) string {
	return strings.Join([]string{
		"📝 Order Summary:",
		"━━━━━━━━━━━━━━━",
		"💹 Rate: 1 Rs = 1 Diamond 💎",
		fmt.Sprintf("💵 Amount: %d", diamonds),
		fmt.Sprintf("💎 Diamonds to Receive: %d", diamonds),
		fmt.Sprintf("💳 Method: %s", method),
		fmt.Sprintf("📅 Time: %s", time.Now().Format("15:04:05")),
		"━━━━━━━━━━━━━━━",
		"Click below to proceed.",
	}, "\n")
}

func orderNotification(order *domain.Order) string {
	return strings.Join([]string{
		fmt.Sprintf("🧾 Order #%d", order.ID),
		fmt.Sprintf("👤 User: %d", order.AccountID),
		fmt.Sprintf("📦 Kind: %s", order.Kind),
		fmt.Sprintf("💳 Method: %s", order.Method),
		fmt.Sprintf("💵 Amount: %d", order.Amount),
		fmt.Sprintf("💎 Diamonds: %d", order.Diamonds),
		fmt.Sprintf("📝 Details: %s", order.Details),
		fmt.Sprintf("📅 Time: %s", order.CreatedAt.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("📌 Status: %s", order.Status),
	}, "\n")
}
