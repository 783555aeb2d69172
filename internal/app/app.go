// Package app wires configuration, storage and services for both binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/seatboard/internal/api/http"
	"github.com/spec-kit/seatboard/internal/api/http/handlers"
	"github.com/spec-kit/seatboard/internal/auth"
	"github.com/spec-kit/seatboard/internal/board"
	"github.com/spec-kit/seatboard/internal/command"
	"github.com/spec-kit/seatboard/internal/config"
	"github.com/spec-kit/seatboard/internal/events"
	"github.com/spec-kit/seatboard/internal/observability"
	"github.com/spec-kit/seatboard/internal/persistence"
	"github.com/spec-kit/seatboard/internal/photo"
	"github.com/spec-kit/seatboard/internal/repository"
	"github.com/spec-kit/seatboard/internal/service"
	"github.com/spec-kit/seatboard/internal/worker"
)

// App holds the wired services.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Dispatcher events.Dispatcher
	Postgres   *persistence.Postgres
	Redis      *persistence.Redis

	Boards    *service.BoardService
	Scenarios *service.ScenarioService
	Photos    *service.PhotoService
	Commands  *service.CommandService
	Auth      *service.AuthService
}

// New connects the configured backends and loads the board.
// Postgres is used when POSTGRES_DSN is set, else BOARD_STATE_FILE, else memory.
// Photos live in redis when REDIS_ADDR is set, else in memory.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{
		Config:     cfg,
		Logger:     logger,
		Metrics:    observability.NewMetrics(),
		Dispatcher: events.NewInMemoryDispatcher(),
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	a.Postgres = pg
	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			a.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	a.Redis = persistence.NewRedis(ctx, cfg.Redis, logger)

	boardStore, scenarioStore := a.stores()
	photoStore := repository.NewMemoryPhotoRepository()
	if a.Redis.Enabled() {
		photoStore = repository.NewRedisPhotoRepository(a.Redis.Client, 0)
	}

	keywords := command.DefaultKeywords()
	if cfg.Board.KeywordsFile != "" {
		if keywords, err = command.LoadKeywords(cfg.Board.KeywordsFile); err != nil {
			a.Close()
			return nil, err
		}
		logger.Info("keyword tables loaded", zap.String("path", cfg.Board.KeywordsFile))
	}

	a.Boards = service.NewBoardService(service.BoardDependencies{
		Store:      boardStore,
		Seed:       repository.NewFileSeedLoader(cfg.Board.DataFile, board.NewID),
		Dispatcher: a.Dispatcher,
		Logger:     logger,
	})
	a.Scenarios = service.NewScenarioService(service.ScenarioDependencies{
		Repo:       scenarioStore,
		Boards:     a.Boards,
		Dispatcher: a.Dispatcher,
		Logger:     logger,
	})
	a.Photos = service.NewPhotoService(service.PhotoDependencies{
		Repo:       photoStore,
		Boards:     a.Boards,
		Normalizer: photo.NewNormalizer(cfg.Photo.MaxWidth, cfg.Photo.MaxHeight, cfg.Photo.JPEGQuality),
		Dispatcher: a.Dispatcher,
		Logger:     logger,
	})
	a.Commands = service.NewCommandService(service.CommandDependencies{
		Parser:        command.NewParser(keywords),
		Boards:        a.Boards,
		Scenarios:     a.Scenarios,
		Metrics:       a.Metrics,
		Logger:        logger,
		NearestRadius: cfg.Board.NearestRadius,
	})
	if a.Auth, err = service.NewAuthService(cfg.Auth); err != nil {
		a.Close()
		return nil, fmt.Errorf("init auth: %w", err)
	}
	if !a.Auth.Enabled() {
		logger.Warn("no login configured; set AUTH_OPERATOR_PASSWORD to use the HTTP API")
	}

	worker.StartBoardPersister(service.NewPersisterService(a.Dispatcher, boardStore, logger))

	if err := a.Boards.Init(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) stores() (repository.BoardRepository, repository.ScenarioRepository) {
	switch {
	case a.Postgres.Enabled():
		pool := a.Postgres.PoolHandle()
		return repository.NewBoardRepository(pool), repository.NewScenarioRepository(pool)
	case a.Config.Board.StateFile != "":
		a.Logger.Info("board state kept in file", zap.String("path", a.Config.Board.StateFile))
		return repository.NewFileBoardRepository(a.Config.Board.StateFile), repository.NewMemoryScenarioRepository(time.Now)
	default:
		a.Logger.Warn("no board store configured; changes last until exit")
		return repository.NewMemoryBoardRepository(), repository.NewMemoryScenarioRepository(time.Now)
	}
}

// HTTP builds the fiber application.
func (a *App) HTTP() *fiber.App {
	bodyLimit := a.Config.Photo.MaxUploadKB * 1024
	if bodyLimit <= 0 {
		bodyLimit = 4 * 1024 * 1024
	}
	server := fiber.New(fiber.Config{
		AppName:      a.Config.App.Name,
		BodyLimit:    bodyLimit,
		ErrorHandler: httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(server, a.Logger, a.Metrics, a.Config.App.RequestTimeout())

	httptransport.RegisterRoutes(server, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(a.Config.App.Name, a.Config.App.Version, map[string]handlers.Pinger{
			"postgres": a.Postgres,
			"redis":    a.Redis,
		}),
		Auth:           handlers.NewAuthHandler(a.Auth),
		Commands:       handlers.NewCommandHandler(a.Commands),
		Board:          handlers.NewBoardHandler(a.Boards),
		Scenarios:      handlers.NewScenarioHandler(a.Scenarios),
		Photos:         handlers.NewPhotoHandler(a.Photos),
		Metrics:        handlers.NewMetricsHandler(a.Metrics),
		AuthMiddleware: auth.NewAuthMiddleware(a.Auth.TokenManager()),
	})
	return server
}

// Close releases backend connections.
func (a *App) Close() {
	a.Redis.Close()
	a.Postgres.Close()
}
