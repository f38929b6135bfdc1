package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/tennis-league/config"
	"github.com/Dosada05/tennis-league/db"
	"github.com/Dosada05/tennis-league/handlers"
	"github.com/Dosada05/tennis-league/realtime"
	"github.com/Dosada05/tennis-league/repositories"
	api "github.com/Dosada05/tennis-league/routes"
	"github.com/Dosada05/tennis-league/seed"
	"github.com/Dosada05/tennis-league/services"
	"github.com/Dosada05/tennis-league/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("timezone", cfg.Location.String()),
		slog.Duration("auto_start_interval", cfg.MatchAutoStartInterval))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(ctx, dbConn); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Архив снимков в Cloudflare R2 необязателен
	r2Config := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	var archiver services.Archiver
	if r2Config.Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, r2Config)
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		archiver = storage.NewSnapshotArchive(uploader)
		logger.Info("Cloudflare R2 snapshot archive enabled", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Info("Cloudflare R2 not configured, match resets will not be archived")
	}

	seedData, err := seed.Default()
	if err != nil {
		return err
	}

	// Инициализация WebSocket Hub
	wsHub := realtime.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	leagueRepo := repositories.NewPostgresLeagueRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	transactor := repositories.NewPostgresTransactor(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	notifier := services.NewBroadcastService(matchRepo, teamRepo, leagueRepo, wsHub, logger)
	authService := services.NewAuthService(userRepo, logger)
	statsService := services.NewStatsService(teamRepo, matchRepo, transactor, notifier, logger)
	matchService := services.NewMatchService(matchRepo, teamRepo, statsService, transactor, notifier, logger)
	teamService := services.NewTeamService(teamRepo, leagueRepo, matchRepo, transactor, notifier, logger)
	leagueService := services.NewLeagueService(leagueRepo, notifier, logger)
	standingsService := services.NewStandingsService(leagueRepo, teamRepo, matchRepo, cfg.Location)
	seedService := services.NewSeedService(seedData, leagueRepo, teamRepo, matchRepo, statsService, transactor, archiver, notifier, cfg.Location, logger)
	logger.Info("Services initialized")

	if cfg.AdminEmail != "" {
		if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("failed to ensure admin account: %w", err)
		}
	}

	if report, err := seedService.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize league data: %w", err)
	} else if !report.Skipped {
		logger.Info("Seed data loaded", slog.Int("teams", report.TeamsCreated), slog.Int("matches", report.MatchesCreated))
	}

	// Запуск планировщика автостарта матчей
	if cfg.MatchAutoStartInterval > 0 {
		sched, err := services.StartMatchAutoStart(ctx, matchService, cfg.MatchAutoStartInterval, cfg.Location, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				logger.Error("failed to stop scheduler", slog.Any("error", err))
			}
		}()
	}

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	matchHandler := handlers.NewMatchHandler(matchService)
	teamHandler := handlers.NewTeamHandler(teamService)
	leagueHandler := handlers.NewLeagueHandler(leagueService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	adminHandler := handlers.NewAdminHandler(statsService, seedService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, notifier, cfg.CORSAllowedOrigins, logger)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		cfg.CORSAllowedOrigins,
		authHandler,
		matchHandler,
		teamHandler,
		leagueHandler,
		standingsHandler,
		adminHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// WriteTimeout не задаем: он бы обрывал WebSocket-соединения.
		IdleTimeout: 120 * time.Second,
		ErrorLog:    slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return err
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
	return nil
}
