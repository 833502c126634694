package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/scrabble-director/config"
	"github.com/Dosada05/scrabble-director/handlers"
	"github.com/Dosada05/scrabble-director/live"
	"github.com/Dosada05/scrabble-director/middleware"
	"github.com/Dosada05/scrabble-director/push"
	"github.com/Dosada05/scrabble-director/repositories"
	api "github.com/Dosada05/scrabble-director/routes"
	"github.com/Dosada05/scrabble-director/services"
	"github.com/Dosada05/scrabble-director/storage"
	"github.com/Dosada05/scrabble-director/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	issueToken := flag.String("issue-token", "", "print a director token for the given name and exit")
	tokenTTL := flag.Duration("token-ttl", 12*time.Hour, "lifetime of a token printed by -issue-token")
	flag.Parse()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if *issueToken != "" {
		token, err := middleware.IssueToken([]byte(cfg.JWTSecretKey), *issueToken, middleware.RoleDirector, *tokenTTL)
		if err != nil {
			logger.Error("failed to issue token", slog.Any("error", err))
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("api", cfg.APIBaseURL),
		slog.String("push", cfg.PushURL),
	)

	// Клиент API турнирного сервера
	client, err := repositories.NewClient(repositories.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		Token:   cfg.APIToken,
		Timeout: cfg.HTTPTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	// Инициализация репозиториев
	tournamentRepo := repositories.NewAPITournamentRepository(client)
	participantRepo := repositories.NewAPIParticipantRepository(client)
	roundRepo := repositories.NewAPIRoundRepository(client)
	resultRepo := repositories.NewAPIResultRepository(client)
	pairingRepo := repositories.NewAPIPairingRepository(client)
	boardRepo := repositories.NewAPIBoardRepository(client)
	logger.Info("repositories initialized")

	state := store.New(logger)

	// Инициализация сервисов
	sessionService := services.NewSessionService(tournamentRepo, participantRepo, roundRepo, resultRepo, state, logger)
	participantService := services.NewParticipantService(participantRepo, state, logger)
	resultService := services.NewResultService(resultRepo, sessionService, state, logger)
	pairingService := services.NewPairingService(pairingRepo, sessionService, logger)
	teamService := services.NewTeamService(participantRepo, boardRepo, state, logger)
	logger.Info("services initialized")

	g, gctx := errgroup.WithContext(ctx)

	// Рассылка снимков консолям наблюдателей
	hub := live.NewHub(logger)
	hubSub := state.Subscribe()
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		defer hubSub.Unsubscribe()
		hub.Follow(gctx, hubSub.C)
		return nil
	})

	// Канал обновлений от турнирного сервера
	header := http.Header{}
	if cfg.APIToken != "" {
		header.Set("Authorization", "Bearer "+cfg.APIToken)
	}
	supervisor := push.NewSupervisor(cfg.PushURL, header, state, logger)
	pushSub := state.Subscribe()
	g.Go(func() error {
		defer pushSub.Unsubscribe()
		supervisor.Run(gctx, pushSub.C)
		return nil
	})

	// Публикация таблицы в Cloudflare R2, если настроено
	if cfg.R2Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
			Endpoint:        cfg.R2Endpoint,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		publisher := storage.NewStandingsPublisher(uploader, logger)
		standingsSub := state.Subscribe()
		g.Go(func() error {
			defer standingsSub.Unsubscribe()
			publisher.Run(gctx, standingsSub.C)
			return nil
		})
		logger.Info("standings publishing enabled", slog.String("bucket", cfg.R2BucketName))
	}

	if cfg.TournamentSlug != "" {
		loadCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout*2)
		t, err := sessionService.Load(loadCtx, cfg.TournamentSlug)
		cancel()
		if err != nil {
			// Не фатально: турнир можно загрузить позже через POST /tournament/load.
			logger.Error("initial tournament load failed",
				slog.String("slug", cfg.TournamentSlug), slog.Any("error", err))
		} else {
			logger.Info("tournament loaded", slog.Int("tournament_id", t.ID), slog.String("slug", t.Slug))
		}
	}

	// Инициализация обработчиков HTTP
	tournamentHandler := handlers.NewTournamentHandler(sessionService, state, logger)
	participantHandler := handlers.NewParticipantHandler(participantService)
	roundHandler := handlers.NewRoundHandler(resultService, pairingService)
	teamHandler := handlers.NewTeamHandler(teamService)
	webSocketHandler := handlers.NewWebSocketHandler(hub, cfg.AllowedOrigins, logger)

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Options{
		JWTSecret:      []byte(cfg.JWTSecretKey),
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	}, tournamentHandler, participantHandler, roundHandler, teamHandler, webSocketHandler)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			// Если корректное завершение не удалось, закрываем принудительно.
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}
