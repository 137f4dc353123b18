package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"cinematicketing/config"
	authadapter "cinematicketing/internal/adapters/auth"
	"cinematicketing/internal/adapters/email"
	"cinematicketing/internal/adapters/holds"
	"cinematicketing/internal/adapters/queue"
	httpdelivery "cinematicketing/internal/delivery/http"
	"cinematicketing/internal/delivery/http/controllers"
	"cinematicketing/internal/delivery/http/middleware"
	"cinematicketing/internal/domain"
	"cinematicketing/internal/repository/postgres"
	"cinematicketing/internal/scheduler"
	"cinematicketing/internal/services"
)

const (
	contextTimeout    = 5 * time.Second
	holdSweepInterval = time.Minute
	shutdownTimeout   = 10 * time.Second
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "error", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("invalid redis url", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	var publisher domain.BookingPublisher
	if cfg.AMQPUrl != "" {
		amqpPublisher, err := queue.NewAMQPPublisher(cfg.AMQPUrl, logger)
		if err != nil {
			logger.Error("failed to connect to broker", "error", err)
			os.Exit(1)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	} else {
		logger.Info("no broker configured, booking events are dropped")
		publisher = queue.NewNoopPublisher()
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to build mailer", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	hallRepo := postgres.NewHallRepository(db)
	movieRepo := postgres.NewMovieRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	holdStore := holds.NewRedisHoldStore(redisClient)

	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := authadapter.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer)

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	authService := services.NewAuthService(userRepo, hasher, tokens, tokens, cfg.TokenExpiry, contextTimeout)
	hallService := services.NewHallService(hallRepo, contextTimeout)
	movieService := services.NewMovieService(movieRepo, contextTimeout)
	scheduleService := services.NewScheduleService(sessionRepo, movieRepo, hallRepo, contextTimeout)
	bookingService := services.NewBookingService(
		sessionRepo, hallRepo, movieRepo,
		holdStore, publisher, emailService,
		logger, cfg.SeatHoldTTL, contextTimeout,
	)

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:    controllers.NewAuthController(logger, authService),
		Hall:    controllers.NewHallController(logger, hallService),
		Movie:   controllers.NewMovieController(logger, movieService),
		Session: controllers.NewSessionController(logger, scheduleService),
		Booking: controllers.NewBookingController(logger, bookingService),
	}, tokens)

	jobs, err := scheduler.New(logger, holdStore, sessionRepo, holdSweepInterval)
	if err != nil {
		logger.Error("failed to build scheduler", "error", err)
		os.Exit(1)
	}
	jobs.Start()
	defer func() {
		if err := jobs.Stop(); err != nil {
			logger.Error("scheduler shutdown failed", "error", err)
		}
	}()

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, router))
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
}
