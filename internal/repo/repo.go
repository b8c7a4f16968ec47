package repo

import (
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/pg"
	accountrepo "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/repo/account-repo"
	couponrepo "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/repo/coupon-repo"
	orderrepo "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/repo/order-repo"
	pricerepo "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/repo/price-repo"
	settingsrepo "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/repo/settings-repo"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/accountservice"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/depositservice"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/stockservice"
)

type Repositories struct {
	AccountRepo  accountservice.AccountRepo
	CouponRepo   stockservice.CouponRepo
	PriceRepo    stockservice.PriceRepo
	OrderRepo    depositservice.OrderRepo
	SettingsRepo depositservice.SettingsRepo
}

func New(conn pg.Database) *Repositories {
	accountRepo := accountrepo.New(conn)
	couponRepo := couponrepo.New(conn)
	priceRepo := pricerepo.New(conn)
	orderRepo := orderrepo.New(conn)
	settingsRepo := settingsrepo.New(conn)

	return &Repositories{
		AccountRepo:  accountRepo,
		CouponRepo:   couponRepo,
		PriceRepo:    priceRepo,
		OrderRepo:    orderRepo,
		SettingsRepo: settingsRepo,
	}
}
