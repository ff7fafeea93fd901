package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/orghub/orghub-api/internal/config"
	"github.com/orghub/orghub-api/internal/database"
	"github.com/orghub/orghub-api/internal/github"
	"github.com/orghub/orghub-api/internal/handler"
	"github.com/orghub/orghub-api/internal/middleware"
	"github.com/orghub/orghub-api/internal/models"
	"github.com/orghub/orghub-api/internal/repository"
	"github.com/orghub/orghub-api/internal/router"
	"github.com/orghub/orghub-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	location, err := time.LoadLocation(cfg.PortfolioTimezone)
	if err != nil {
		log.Fatalf("failed to load portfolio timezone: %v", err)
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Member{}, &models.Portfolio{}, &models.Shoutout{}, &models.SubmissionLog{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	defer natsConn.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())
	pulls := github.NewClient(cfg.GithubToken, logger)
	publisher := service.NewNATSSubmissionPublisher(natsConn, cfg.SubmissionSubject, logger)

	portfolioRepo := repository.NewPortfolioRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	shoutoutRepo := repository.NewShoutoutRepository(db)
	submissionLogRepo := repository.NewSubmissionLogRepository(db)

	memberService := service.NewMemberService(memberRepo, redisClient, cfg.MemberCacheTTL, validate, logger)
	portfolioService := service.NewPortfolioService(portfolioRepo, redisClient, cfg.InfoCacheTTL, location, validate, logger)
	submissionService := service.NewSubmissionService(portfolioRepo, submissionLogRepo, memberService, pulls, publisher, logger)
	shoutoutService := service.NewShoutoutService(shoutoutRepo, memberService, validate, logger)

	portfolioHandler := handler.NewPortfolioHandler(portfolioService, submissionService, memberService, validate, logger)
	memberHandler := handler.NewMemberHandler(memberService, logger)
	shoutoutHandler := handler.NewShoutoutHandler(shoutoutService, memberService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		PortfolioHandler: portfolioHandler,
		MemberHandler:    memberHandler,
		ShoutoutHandler:  shoutoutHandler,
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
