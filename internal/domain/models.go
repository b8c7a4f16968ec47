package domain

import "time"

// Coupon tiers sold by the shop. Stock and prices are keyed by these values.
const (
	CouponType500 = "500"
	CouponType1K  = "1K"
	CouponType2K  = "2K"
	CouponType4K  = "4K"
)

var CouponTypes = []string{CouponType500, CouponType1K, CouponType2K, CouponType4K}

func IsCouponType(t string) bool {
	for _, ct := range CouponTypes {
		if ct == t {
			return true
		}
	}
	return false
}

const (
	OrderKindDeposit  = "deposit"
	OrderKindPurchase = "purchase"
)

const (
	OrderStatusPending  = "pending"
	OrderStatusApproved = "approved"
	OrderStatusDeclined = "declined"
)

type Account struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Diamonds  int64     `db:"diamonds"`
	CreatedAt time.Time `db:"created_at"`
}

type Coupon struct {
	ID        int64     `db:"id"`
	Type      string    `db:"type"`
	Code      string    `db:"code"`
	CreatedAt time.Time `db:"created_at"`
}

type Price struct {
	Type  string `db:"type"`
	Price int64  `db:"price"`
}

// Order is the audit record of a balance-affecting event. A deposit is
// created pending and resolved by an operator; a purchase is created
// approved because it is paid from the in-app balance.
type Order struct {
	ID        int64     `db:"id"`
	AccountID int64     `db:"account_id"`
	Reference string    `db:"reference"`
	Kind      string    `db:"kind"`
	Method    string    `db:"method"`
	Amount    int64     `db:"amount"`
	Diamonds  int64     `db:"diamonds"`
	Details   string    `db:"details"`
	Evidence  string    `db:"evidence"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}
