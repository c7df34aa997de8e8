package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warungpos/internal/auth"
	"warungpos/internal/checkout"
	"warungpos/internal/config"
	"warungpos/internal/db"
	"warungpos/internal/events"
	"warungpos/internal/ledger"
	"warungpos/internal/menu"
	"warungpos/internal/observability"
	"warungpos/internal/order"
	"warungpos/internal/receipt"
	"warungpos/internal/router"
	"warungpos/internal/sequence"
	"warungpos/internal/storage"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warungpos: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ───────────────────────── OBSERVABILITY ─────────────────────────
	tp, otelShutdown, otelErr := observability.Setup(ctx, cfg)

	logger := observability.NewLogger(zapcore.InfoLevel)
	defer func() { _ = logger.Sync() }()

	if otelErr != nil {
		logger.Error("Failed to setup OpenTelemetry", zap.Error(otelErr))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	tracer := otel.Tracer(config.ServiceName)

	// ───────────────────────── STORAGE ─────────────────────────
	var (
		menuRepo  menu.Repository
		orderRepo order.Repository
		userRepo  auth.UserRepository
	)

	if cfg.DatabaseURL != "" {
		pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer pgDB.Close()

		menuRepo = menu.NewPostgresRepository(pgDB)
		orderRepo = order.NewPostgresRepository(pgDB)
		userRepo = auth.NewPostgresUserRepository(pgDB)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		menuRepo = menu.NewInMemoryRepository()
		orderRepo = order.NewInMemoryRepository()
		userRepo = auth.NewInMemoryUserRepository()
	}

	var archive checkout.ReceiptArchive
	if cfg.ReceiptArchiveEnabled() {
		r2Client, err := storage.NewR2Client(ctx, cfg)
		if err != nil {
			return fmt.Errorf("R2 init failed: %w", err)
		}
		archive = r2Client
	}

	// ───────────────────────── EVENTS ─────────────────────────
	var producer events.Producer
	if cfg.KafkaBroker != "" {
		producer, err = events.NewKafkaProducer(cfg, tp)
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
	}
	publisher := events.NewPublisher(producer, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close message producer", zap.Error(err))
		}
	}()

	// ───────────────────────── CATALOG + LEDGER ─────────────────────────
	menuService := menu.NewService(
		menu.NewCatalog(sequence.New()),
		menuRepo,
		logger,
		cfg.LowStockThreshold,
	)
	if err := menuService.Bootstrap(ctx, menu.DefaultMenu()); err != nil {
		return err
	}

	orderFactory := order.NewFactory(sequence.New(), order.SystemClock{})
	sales := ledger.New()

	completed, err := orderRepo.LoadCompletedOrders(ctx, menuService.Catalog())
	if err != nil {
		return fmt.Errorf("load completed orders: %w", err)
	}
	orderFactory.Observe(completed)
	if err := sales.Load(completed); err != nil {
		return fmt.Errorf("rebuild sales ledger: %w", err)
	}
	logger.Info("Sales ledger loaded", zap.Int("orders", sales.Count()))

	// ───────────────────────── SERVICES ─────────────────────────
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		return err
	}
	authService := auth.NewService(userRepo, tokens)
	if cfg.ManagerEmail != "" {
		created, err := authService.EnsureManager(ctx, cfg.ManagerName, cfg.ManagerEmail, cfg.ManagerPassword)
		if err != nil {
			return fmt.Errorf("bootstrap manager: %w", err)
		}
		if created {
			logger.Info("Created bootstrap manager", zap.String("email", cfg.ManagerEmail))
		}
	}

	till := checkout.NewService(checkout.Dependencies{
		Menu:    menuService,
		Orders:  orderRepo,
		Ledger:  sales,
		Factory: orderFactory,
		Header: receipt.Header{
			StoreName: cfg.StoreName,
			Address:   cfg.StoreAddress,
		},
		PaymentMethods: cfg.PaymentMethods,
		Archive:        archive,
		Publisher:      publisher,
		Logger:         logger,
		Tracer:         tracer,
	})

	// ───────────────────────── HTTP ─────────────────────────
	r := router.NewRouter(router.Deps{
		Auth:        auth.NewHandler(authService),
		Menu:        menu.NewHandler(menuService),
		Checkout:    checkout.NewHandler(till),
		Reports:     ledger.NewHandler(sales),
		Tokens:      tokens,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ───────────────────────── START ─────────────────────────
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("API running", zap.String("addr", cfg.HTTPAddr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
