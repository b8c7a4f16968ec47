package service

import (
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/bot"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/events"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/pg"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/repo"
	accountservice "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/accountservice"
	depositservice "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/depositservice"
	purchaseservice "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/purchaseservice"
	stockservice "github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service/stockservice"
)

type Services struct {
	AccountService  bot.AccountService
	PurchaseService bot.PurchaseService
	DepositService  bot.DepositService
	StockService    bot.StockService
}

func New(repo *repo.Repositories, txManager pg.TXManager, publisher events.Publisher) *Services {
	accountService := accountservice.New(repo.AccountRepo, repo.OrderRepo)
	purchaseService := purchaseservice.New(repo.AccountRepo, repo.CouponRepo, repo.PriceRepo, repo.OrderRepo, txManager, publisher)
	depositService := depositservice.New(repo.OrderRepo, repo.AccountRepo, repo.SettingsRepo, txManager, publisher)
	stockService := stockservice.New(repo.CouponRepo, repo.PriceRepo, txManager)

	return &Services{
		AccountService:  accountService,
		PurchaseService: purchaseService,
		DepositService:  depositService,
		StockService:    stockService,
	}
}
