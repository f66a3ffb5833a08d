package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/campus-kit/registrar-service/internal/api/http"
	"github.com/campus-kit/registrar-service/internal/api/http/handlers"
	"github.com/campus-kit/registrar-service/internal/config"
	"github.com/campus-kit/registrar-service/internal/events"
	"github.com/campus-kit/registrar-service/internal/observability"
	"github.com/campus-kit/registrar-service/internal/persistence"
	"github.com/campus-kit/registrar-service/internal/repository"
	"github.com/campus-kit/registrar-service/internal/service"
	"github.com/campus-kit/registrar-service/internal/worker"
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
	ticketRepo := repository.NewTicketRepository(pool, cfg.Tables.RegistrarTickets)
	maintenanceRepo := repository.NewMaintenanceRepository(pool, cfg.Tables.MaintenanceTickets)
	classroomRepo := repository.NewClassroomRepository(pool, cfg.Tables.ClassroomTickets)
	libraryRepo := repository.NewLibraryLogRepository(pool, cfg.Tables.LibraryLogs)
	userRepo := repository.NewUserRepository(pool, cfg.Tables.Users)

	dispatcher := events.NewInMemoryDispatcher()

	ticketService := service.NewTicketService(ticketRepo, dispatcher)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, dispatcher)
	classroomService := service.NewClassroomService(classroomRepo, dispatcher)
	libraryService := service.NewLibraryService(libraryRepo, dispatcher)
	reportService := service.NewReportService(ticketRepo, redis, cfg.Reports.CacheTTL(), logger)
	authService := service.NewAuthService(cfg.Auth, userRepo, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)

	worker.StartNotificationWorker(notificationService, logger)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(pg, redis),
		Auth:        handlers.NewAuthHandler(authService),
		Tickets:     handlers.NewTicketsHandler(ticketService),
		Maintenance: handlers.NewMaintenanceHandler(maintenanceService),
		Classroom:   handlers.NewClassroomHandler(classroomService),
		Logs:        handlers.NewLogsHandler(libraryService),
		Reports:     handlers.NewReportsHandler(reportService),
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
