package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/bramliclinic/clinic-platform/internal/analytics"
	"github.com/bramliclinic/clinic-platform/internal/api/router"
	"github.com/bramliclinic/clinic-platform/internal/assistant"
	"github.com/bramliclinic/clinic-platform/internal/clinic"
	appconfig "github.com/bramliclinic/clinic-platform/internal/config"
	"github.com/bramliclinic/clinic-platform/internal/contact"
	"github.com/bramliclinic/clinic-platform/internal/medicalfiles"
	"github.com/bramliclinic/clinic-platform/internal/notify"
	"github.com/bramliclinic/clinic-platform/internal/observability/metrics"
	"github.com/bramliclinic/clinic-platform/internal/scheduling"
	"github.com/bramliclinic/clinic-platform/internal/triage"
	"github.com/bramliclinic/clinic-platform/internal/updates"
	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	loc, err := time.LoadLocation(cfg.ClinicTimezone)
	if err != nil {
		logger.Error("invalid clinic timezone", "tz", cfg.ClinicTimezone, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	defer func() { _ = redisClient.Close() }()

	triageMetrics := metrics.NewTriageMetrics(nil)
	schedulingMetrics := metrics.NewSchedulingMetrics(nil)
	assistantMetrics := metrics.NewAssistantMetrics(nil)

	// Email notifications
	sender := buildEmailSender(ctx, cfg, logger)
	notifier := notify.NewService(sender, cfg.ClinicEmail, loc, logger)

	// Appointment scheduling
	apptRepo := scheduling.NewRepository(pool)
	calendar := scheduling.NewCalendar(apptRepo, loc)
	schedulingService := scheduling.NewService(apptRepo, calendar, notifier, loc, logger, schedulingMetrics)
	schedulingHandler := scheduling.NewHandler(schedulingService, logger)

	// Symptom triage chat
	triageHandler := triage.NewHandler(logger, triageMetrics)

	// Guided assistant widget
	machineCfg := assistant.Config{
		WelcomeDelay: cfg.AssistantWelcomeDelay,
		TypingDelay:  cfg.AssistantTypingDelay,
	}
	if cfg.AssistantTriageFreeText {
		machineCfg.FreeTextResponder = func(text string) string {
			return triage.Classify(text).Response
		}
	}
	assistantHandler := assistant.NewHandler(assistant.NewMachine(machineCfg), logger, assistantMetrics)

	// Contact form
	contactRepo := contact.NewRepository(pool)
	contactHandler := contact.NewHandler(contactRepo, notifier, logger)

	// Medical updates feed
	updatesHandler := updates.NewHandler(updates.NewRepository(pool), logger)

	// Analytics
	analyticsHandler := analytics.NewHandler(analytics.NewRepository(pool), logger)

	// Medical file uploads
	var filesHandler *medicalfiles.Handler
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		logger.Warn("aws config unavailable, file uploads disabled", "error", err)
	} else {
		presigner := s3.NewPresignClient(s3.NewFromConfig(awsCfg))
		filesStore := medicalfiles.NewStore(presigner, cfg.MedicalFilesBucket, cfg.UploadURLTTL, logger)
		filesHandler = medicalfiles.NewHandler(filesStore, logger)
	}

	// Clinic profile
	clinicHandler := clinic.NewHandler(clinic.NewStore(redisClient), logger)

	r := router.New(&router.Config{
		Logger:             logger,
		TriageHandler:      triageHandler,
		SchedulingHandler:  schedulingHandler,
		AssistantHandler:   assistantHandler,
		ContactHandler:     contactHandler,
		UpdatesHandler:     updatesHandler,
		AnalyticsHandler:   analyticsHandler,
		MedicalFiles:       filesHandler,
		ClinicHandler:      clinicHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildEmailSender picks the provider: explicit EMAIL_PROVIDER wins, auto
// prefers SendGrid when a key is set, then SES, then the logging stub.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	sendgridSender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)

	newSES := func() notify.EmailSender {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Warn("aws config unavailable for ses", "error", err)
			return nil
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender == nil {
			return nil
		}
		return sender
	}

	switch cfg.EmailProvider {
	case "sendgrid":
		if sendgridSender != nil {
			return sendgridSender
		}
	case "ses":
		if s := newSES(); s != nil {
			return s
		}
	default:
		if sendgridSender != nil {
			return sendgridSender
		}
		if cfg.ClinicEmail != "" {
			if s := newSES(); s != nil {
				return s
			}
		}
	}
	return notify.NewStubEmailSender(logger)
}
