package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vendorbridge/bizops/internal/api"
	"github.com/vendorbridge/bizops/internal/billing"
	"github.com/vendorbridge/bizops/internal/chat"
	"github.com/vendorbridge/bizops/internal/config"
	"github.com/vendorbridge/bizops/internal/payments"
	"github.com/vendorbridge/bizops/internal/presence"
	"github.com/vendorbridge/bizops/internal/realtime"
	"github.com/vendorbridge/bizops/internal/report"
	"github.com/vendorbridge/bizops/internal/repository"
	"github.com/vendorbridge/bizops/internal/worker"
	"github.com/vendorbridge/bizops/pkg/database"
	"github.com/vendorbridge/bizops/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting business operations server",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Initialize database
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db.DB, logger)
	vendorRepo := repository.NewVendorRepository(db.DB, logger)
	invoiceRepo := repository.NewInvoiceRepository(db.DB, logger)
	rfpRepo := repository.NewRFPRepository(db.DB, logger)
	proposalRepo := repository.NewProposalRepository(db.DB, logger)
	paymentRepo := repository.NewPaymentRepository(db.DB, logger)
	messageRepo := repository.NewMessageRepository(db.DB, logger)

	// Initialize payment processor client
	processor := payments.NewClient(payments.Config{
		APIKey:     cfg.Stripe.APIKey,
		SuccessURL: cfg.Stripe.SuccessURL,
		Simulate:   cfg.Stripe.Simulate,
	}, logger)

	// Initialize chat messenger
	messenger := chat.NewMessenger(chat.Config{
		BotToken:      cfg.Slack.BotToken,
		ChannelPrefix: cfg.Slack.ChannelPrefix,
		Enabled:       cfg.Slack.Enabled,
	}, logger)

	// Initialize realtime plumbing. The tracker subscribes to typing events
	// so signals from websocket clients and the HTTP fallback land in the
	// same expiring set.
	dispatcher := realtime.NewDispatcher(logger)
	hub := realtime.NewHub(dispatcher, logger)
	tracker := presence.NewTracker(cfg.Realtime.TypingTTL)
	dispatcher.Subscribe(realtime.TypeTyping, "presence-tracker",
		func(_ context.Context, evt *realtime.Event) error {
			tracker.Touch(evt.ChannelKey, evt.Sender)
			return nil
		})

	// Initialize background workers
	workers := worker.NewManager(logger)
	workers.Register(presence.NewSweeper(tracker, cfg.Realtime.SweepInterval, logger))
	if err := workers.StartAll(context.Background()); err != nil {
		logger.Fatal("Failed to start workers", zap.Error(err))
	}

	// Initialize invoice document renderer
	renderer, err := billing.NewRenderer(billing.RendererConfig{
		OutputDir:   cfg.Billing.DocumentsDir,
		CompanyName: cfg.Billing.CompanyName,
		FooterNote:  cfg.Billing.FooterNote,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize invoice renderer", zap.Error(err))
	}

	// Set Gin mode based on logger level
	if cfg.Logger.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.New(api.Deps{
		DB:         db,
		Customers:  customerRepo,
		Vendors:    vendorRepo,
		Invoices:   invoiceRepo,
		RFPs:       rfpRepo,
		Proposals:  proposalRepo,
		Payments:   paymentRepo,
		Messages:   messageRepo,
		Processor:  processor,
		Messenger:  messenger,
		Tracker:    tracker,
		Dispatcher: dispatcher,
		Hub:        hub,
		Renderer:   renderer,
		Reports:    report.NewInvoiceReport(logger),
		Defaults: api.Defaults{
			Currency:   cfg.Billing.Currency,
			TaxPercent: cfg.Billing.DefaultTax,
		},
		Logger: logger,
	}).Router()

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := workers.StopAll(); err != nil {
		logger.Error("Failed to stop workers", zap.Error(err))
	}
	if err := dispatcher.Close(); err != nil {
		logger.Error("Failed to close dispatcher", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
