package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catering-backend/config"
	"catering-backend/controllers"
	"catering-backend/models"
	"catering-backend/repository"
	"catering-backend/routes"
	"catering-backend/services"
	"catering-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	now := func() time.Time { return time.Now().In(loc) }

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("database ready")

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		created, err := controllers.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if created {
			logger.Info("admin account created", zap.String("email", cfg.AdminEmail))
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := services.NewMetrics(registry)

	var cache services.OccupiedCache = services.NoopOccupiedCache{}
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = services.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn("redis unavailable, availability cache disabled", zap.Error(err))
		} else {
			cache = services.NewRedisOccupiedCache(redisClient, cfg.AvailabilityCacheTTL)
			logger.Info("availability cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	var sender services.MessageSender
	if cfg.TwilioEnabled() {
		sender = services.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken)
	} else {
		logger.Info("twilio not configured, notifications disabled")
	}

	var uploader services.ImageUploader
	if cfg.CloudinaryURL != "" {
		cu, err := services.NewCloudinaryUploader(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			return fmt.Errorf("cloudinary: %w", err)
		}
		uploader = cu
	}

	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	notificationRepo := repository.NewNotificationLogRepository(db)

	notifier := services.NewNotifier(sender, notificationRepo, services.NotifierConfig{
		PhoneNumber:    cfg.TwilioPhoneNumber,
		WhatsAppNumber: cfg.TwilioWhatsAppNumber,
	}, metrics, logger.Named("notifier"))

	bookingService := services.NewBookingService(bookingRepo, packageRepo, cache, notifier, logger.Named("bookings"), now)
	paymentService := services.NewPaymentService(paymentRepo, bookingRepo, metrics, logger.Named("payments"))
	reminderService := services.NewReminderService(bookingRepo, notifier, logger.Named("reminders"), now)
	exportService := services.NewExportService(bookingRepo, paymentRepo)

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiryHours)

	if cfg.LogFormat != "console" {
		gin.SetMode(gin.ReleaseMode)
	}
	r, err := routes.SetupRouter(routes.Dependencies{
		Log:         logger.Named("http"),
		Observer:    metrics,
		Gatherer:    registry,
		Tokens:      tokens,
		CORSOrigins: cfg.CORSOrigins,

		Auth:         controllers.NewAuthController(db, tokens),
		Bookings:     controllers.NewBookingController(bookingService, paymentService, logger),
		Availability: controllers.NewAvailabilityController(bookingService, logger),
		Payments:     controllers.NewPaymentController(paymentService, logger),
		Items:        controllers.NewItemController(db, uploader, logger),
		Packages:     controllers.NewPackageController(db),
		Feedback:     controllers.NewFeedbackController(db),
		Dashboard:    controllers.NewDashboardController(db, now),
		Reports:      controllers.NewReportController(db, now),
		Exports:      controllers.NewExportController(exportService, logger, now),
		Health:       controllers.NewHealthController(db, logger),
	})
	if err != nil {
		return fmt.Errorf("setup router: %w", err)
	}
	printRoutes(r)

	scheduler := services.NewScheduler(loc, logger.Named("scheduler"))
	if err := scheduler.Add("reconcile-payments", cfg.ReconcileSchedule, func(ctx context.Context) error {
		_, err := paymentService.Reconcile(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("schedule reconciliation: %w", err)
	}
	if err := scheduler.Add("event-reminders", cfg.ReminderSchedule, func(ctx context.Context) error {
		_, err := reminderService.SendDailyReminders(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	scheduler.Stop(ctx)
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", zap.Error(err))
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	return nil
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
