package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/crestline/origination-backend/internal/config"
	"github.com/crestline/origination-backend/internal/data/repos"
	"github.com/crestline/origination-backend/internal/db"
	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/events"
	"github.com/crestline/origination-backend/internal/http/handlers"
	"github.com/crestline/origination-backend/internal/http/middleware"
	"github.com/crestline/origination-backend/internal/observability"
	"github.com/crestline/origination-backend/internal/pkg/logger"
	"github.com/crestline/origination-backend/internal/server"
	"github.com/crestline/origination-backend/internal/services"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Mode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	shutdownOtel := observability.InitOTel(context.Background(), log, cfg.Otel)
	if shutdownOtel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOtel(ctx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	dbService, err := db.New(cfg.Database, log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Auto migration failed", "error", err)
	}
	conn := dbService.DB()

	// Repos
	log.Info("Setting up repos...")
	applicationRepo := repos.NewApplicationRepo(conn, log)
	borrowerRepo := repos.NewBorrowerRepo(conn, log)
	directorRepo := repos.NewDirectorRepo(conn, log)
	assetRepo := repos.NewAssetRepo(conn, log)
	liabilityRepo := repos.NewLiabilityRepo(conn, log)
	guarantorRepo := repos.NewGuarantorRepo(conn, log)
	propertyRepo := repos.NewSecurityPropertyRepo(conn, log)
	requirementRepo := repos.NewLoanRequirementRepo(conn, log)
	noteRepo := repos.NewNoteRepo(conn, log)
	documentRepo := repos.NewDocumentRepo(conn, log)
	fundingRepo := repos.NewFundingCalculationRepo(conn, log)
	stageHistoryRepo := repos.NewStageHistoryRepo(conn, log)
	servicingRepo := repos.NewLoanServicingRepo(conn, log)
	staffRepo := repos.NewStaffRepo(conn, log)

	// Events
	dispatcher := events.NewDispatcher(log)
	servicingService := services.NewServicingService(conn, log, applicationRepo, servicingRepo)
	dispatcher.Register(servicingService.HandleEvent)

	publisher := events.NewNoopPublisher()
	if cfg.Redis.Addr != "" {
		redisPublisher, err := events.NewRedisPublisher(cfg.Redis, log)
		if err != nil {
			log.Warn("Redis publisher init failed, events stay local", "error", err)
		} else {
			publisher = redisPublisher
		}
	}
	defer publisher.Close()
	dispatcher.Register(func(ctx context.Context, ev types.Event) error {
		return publisher.Publish(ctx, ev)
	})

	// Services
	log.Info("Setting up services...")
	applicationService := services.NewApplicationService(conn, log, services.ApplicationRepos{
		Applications: applicationRepo,
		Borrowers:    borrowerRepo,
		Directors:    directorRepo,
		Assets:       assetRepo,
		Liabilities:  liabilityRepo,
		Guarantors:   guarantorRepo,
		Properties:   propertyRepo,
		Requirements: requirementRepo,
		Notes:        noteRepo,
		Documents:    documentRepo,
		Fundings:     fundingRepo,
		StageHistory: stageHistoryRepo,
	}, dispatcher)
	fundingService := services.NewFundingService(conn, log, applicationRepo, fundingRepo)
	authService := services.NewAuthService(cfg.Auth, log, staffRepo)

	// Handlers
	log.Info("Setting up handlers...")
	applicationHandler := handlers.NewApplicationHandler(log, applicationService, servicingService)
	fundingHandler := handlers.NewFundingHandler(log, fundingService)
	authHandler := handlers.NewAuthHandler(log, authService)
	healthHandler := handlers.NewHealthHandler()
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	router := server.NewRouter(server.RouterConfig{
		Log:                log,
		Mode:               cfg.Mode,
		OtelEnabled:        cfg.Otel.Enabled,
		ServiceName:        cfg.Otel.ServiceName,
		AuthHandler:        authHandler,
		ApplicationHandler: applicationHandler,
		FundingHandler:     fundingHandler,
		HealthHandler:      healthHandler,
		AuthMiddleware:     authMiddleware,
	})

	log.Info("Server listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
