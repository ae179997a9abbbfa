package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/bcrypt"

	"eventregistration/config"
	_ "eventregistration/docs"
	"eventregistration/internal/adapters/auth"
	"eventregistration/internal/adapters/email"
	"eventregistration/internal/adapters/storage"
	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/metrics"
	"eventregistration/internal/repository"
	"eventregistration/internal/services"

	transporthttp "eventregistration/internal/delivery/http"
)

const (
	shutdownTimeout = 10 * time.Second
	requestTimeout  = 5 * time.Second
)

// @title Event Registration API
// @version 1.0
// @description Events, seat-limited registrations, admin moderation of contact messages and feedback.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	startupCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	stores, err := repository.Open(startupCtx, cfg.DataStore, cfg.DBUrl, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.Region,
			AccessKeyID:        cfg.Email.AccessKeyID,
			SecretAccessKey:    cfg.Email.SecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	notifier := services.NewNotifier(
		services.NewEmailService(mailer, email.NewTemplateRenderer(), logger),
		services.NotifierOptions{
			QueueSize:   cfg.Email.QueueSize,
			Workers:     cfg.Email.Workers,
			MaxAttempts: cfg.Email.MaxAttempts,
			RetryDelay:  cfg.Email.RetryDelay,
			SendTimeout: cfg.Email.SendTimeout,
		}, m, logger)
	notifier.Start()

	banners, err := storage.New(storage.Config{
		Provider:      cfg.Storage.Provider,
		UploadDir:     cfg.Storage.UploadDir,
		PublicBaseURL: cfg.PublicBaseURL,
		S3: storage.S3Config{
			Bucket:          cfg.Storage.Bucket,
			Region:          cfg.Storage.Region,
			Endpoint:        cfg.Storage.Endpoint,
			PublicURL:       cfg.Storage.PublicURL,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
		},
	}, logger)
	if err != nil {
		return err
	}
	var uploadDir string
	if local, ok := banners.(*storage.LocalStore); ok {
		uploadDir = local.Dir()
	}

	jwt := auth.NewJWT(cfg.JWTSecret)
	authSvc := services.NewAuthService(stores.Admins, auth.NewBcryptHasher(bcrypt.DefaultCost), jwt, cfg.JWTExpiry)
	eventSvc := services.NewEventService(stores.Tx, stores.Events, stores.Registrations, banners, logger, requestTimeout)
	regSvc := services.NewRegistrationService(stores.Tx, stores.Events, stores.Registrations, notifier, m, logger, requestTimeout)

	handler := transporthttp.NewRouter(transporthttp.RouterConfig{
		Logger:         logger,
		Metrics:        m,
		Verifier:       jwt,
		HasAdmins:      authSvc.HasAdmins,
		Health:         stores.Ping,
		Events:         controllers.NewEventController(logger, eventSvc),
		Registrations:  controllers.NewRegistrationController(logger, regSvc),
		Auth:           controllers.NewAuthController(logger, authSvc),
		Contact:        controllers.NewContactController(logger, services.NewContactService(stores.Contacts)),
		Feedback:       controllers.NewFeedbackController(logger, services.NewFeedbackService(stores.Feedback)),
		UploadDir:      uploadDir,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("api listening", "addr", server.Addr, "env", cfg.Environment, "datastore", cfg.DataStore)
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var serveErr error
	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "err", err)
	}
	// Pending confirmation emails get whatever is left of the shutdown budget.
	if err := notifier.Close(shutdownCtx); err != nil {
		logger.Warn("confirmation queue not drained", "err", err)
	}
	logger.Info("server stopped")
	return serveErr
}
