package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/pos-ledger-api/internal/application/auth"
	"github.com/jhoicas/pos-ledger-api/internal/application/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/application/orders"
	"github.com/jhoicas/pos-ledger-api/internal/application/purchases"
	"github.com/jhoicas/pos-ledger-api/internal/application/ratelimit"
	"github.com/jhoicas/pos-ledger-api/internal/application/sales"
	"github.com/jhoicas/pos-ledger-api/internal/application/usecase"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/ledgerstore"
	infrapdf "github.com/jhoicas/pos-ledger-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/pos-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/pos-ledger-api/pkg/config"
	"github.com/jhoicas/pos-ledger-api/pkg/keylock"
	"github.com/jhoicas/pos-ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ledger Store según backend configurado
	var store repository.LedgerStore
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		pool, err := ledgerstore.NewPool(ctx, cfg.Store)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pgStore, err := ledgerstore.NewPostgresStore(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("inicialización del almacén PostgreSQL")
		}
		store = pgStore
	case config.StoreBackendRedis:
		redisStore, err := ledgerstore.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisStore.Close()
		store = redisStore
	case config.StoreBackendMemory:
		store = ledgerstore.NewMemoryStore()
	default:
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("backend de almacén desconocido")
	}

	productRepo := ledgerstore.NewProductRepository(store)
	historyRepo := ledgerstore.NewStockHistoryRepository(store)
	transactionRepo := ledgerstore.NewTransactionRepository(store)
	orderRepo := ledgerstore.NewOrderRepository(store)
	purchaseRepo := ledgerstore.NewPurchaseRepository(store)
	userRepo := ledgerstore.NewUserRepository(store)

	locks := keylock.New()
	stockLedgerUC := inventory.NewStockLedgerUseCase(locks, productRepo, historyRepo, log)

	pdfGenerator := infrapdf.NewReceiptGenerator(cfg.App.Name)
	transactionUC := sales.NewTransactionUseCase(stockLedgerUC, productRepo, transactionRepo, pdfGenerator, log)
	orderUC := orders.NewOrderUseCase(locks, orderRepo, productRepo, stockLedgerUC, log)
	purchaseUC := purchases.NewPurchaseUseCase(purchaseRepo)
	productUC := usecase.NewProductUseCase(productRepo, stockLedgerUC, log)
	reportUC := usecase.NewReportUseCase(transactionRepo, productRepo)

	limiter := ratelimit.New(ratelimit.Config{
		MaxAttempts: cfg.RateLimit.MaxAttempts,
		Window:      time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute,
		Lockout:     time.Duration(cfg.RateLimit.LockoutMinutes) * time.Minute,
		Capacity:    cfg.RateLimit.Capacity,
	}, nil)
	limiter.StartSweeper(ctx, 5*time.Minute)

	authUC := auth.NewAuthUseCase(userRepo, limiter, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	if err := authUC.EnsureAdmin(ctx, cfg.App.AdminEmail, cfg.App.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("creación del admin inicial")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		ReportUC:      reportUC,
		StockLedger:   stockLedgerUC,
		TransactionUC: transactionUC,
		OrderUC:       orderUC,
		PurchaseUC:    purchaseUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
