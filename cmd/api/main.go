package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	httptransport "github.com/suroriente/helpdesk-service/internal/api/http"
	"github.com/suroriente/helpdesk-service/internal/api/http/handlers"
	"github.com/suroriente/helpdesk-service/internal/auth"
	"github.com/suroriente/helpdesk-service/internal/config"
	"github.com/suroriente/helpdesk-service/internal/events"
	"github.com/suroriente/helpdesk-service/internal/observability"
	"github.com/suroriente/helpdesk-service/internal/persistence"
	"github.com/suroriente/helpdesk-service/internal/repository"
	"github.com/suroriente/helpdesk-service/internal/service"
	"github.com/suroriente/helpdesk-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	supportRepo := repository.NewSupportRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	municipalityRepo := repository.NewMunicipalityRepository(pool)
	positionRepo := repository.NewPositionRepository(pool)
	supportTypeRepo := repository.NewSupportTypeRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens)

	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		UserRepo: userRepo,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:       ticketRepo,
		SupportRepo:      supportRepo,
		MunicipalityRepo: municipalityRepo,
		Assigner:         assignmentService,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo: reportRepo,
		TicketRepo: ticketRepo,
		Cache:      redis.Client,
		TTL:        time.Duration(cfg.Redis.DashboardTTLSeconds) * time.Second,
		Logger:     logger,
	})
	userService := service.NewUserService(service.UserDependencies{
		UserRepo: userRepo,
		Tokens:   tokens,
		Auth:     cfg.Auth,
		Logger:   logger,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		MunicipalityRepo: municipalityRepo,
		PositionRepo:     positionRepo,
		SupportTypeRepo:  supportTypeRepo,
	})
	notificationService := service.NewNotificationService(
		dispatcher,
		userRepo,
		service.LogSender{Logger: logger},
		logger,
		cfg.Notification,
	)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.FrontendURL,
		AllowCredentials: true,
	}))
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, pg, redis),
		Users:          handlers.NewUsersHandler(userService, cfg.Auth.CookieSecure, cfg.Auth.BcryptCost),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Supports:       handlers.NewSupportsHandler(ticketService),
		Reports:        handlers.NewReportsHandler(reportService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
