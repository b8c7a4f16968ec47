package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/bot"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/config"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/events"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/handlers"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/pg"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/repo"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/service"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/session"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/telegram"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/pkg/clients"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg      *config.Config
	api      *handlers.Handlers
	srv      *service.Services
	repo     *repo.Repositories
	bot      *bot.Bot
	sessions *session.Store
	pub      events.Publisher

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)
	conn := pg.New(pool)

	a.cfg = cfg
	a.pub = newPublisher(cfg)
	a.repo = repo.New(conn)
	a.srv = service.New(a.repo, txManager, a.pub)
	a.sessions = session.NewStore()

	gateway := telegram.NewClient(cfg.BotAPIURL, cfg.BotToken, clients.NewHTTPClient())
	a.bot = bot.New(cfg, gateway, a.sessions,
		a.srv.AccountService, a.srv.PurchaseService, a.srv.DepositService, a.srv.StockService)
	a.api = handlers.New(a.bot)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startSessionSweeper(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func newPublisher(cfg *config.Config) events.Publisher {
	if cfg.KafkaBrokers == "" {
		zap.L().Info("order events disabled, no kafka brokers configured")
		return events.NoopPublisher{}
	}
	pub, err := events.NewKafkaPublisher(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
	if err != nil {
		zap.L().Error("can't build kafka publisher, order events disabled", zap.Error(err))
		return events.NoopPublisher{}
	}
	return pub
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting webhook server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startSessionSweeper(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.sessions.Start(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	if closer, ok := a.pub.(*events.KafkaPublisher); ok {
		closer.Close()
	}
	close(a.errCh)
	wg.Wait()

	return appErr
}
