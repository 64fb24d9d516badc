package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/greenpitch/dotball-tracker/external/cricfeed"
	"github.com/greenpitch/dotball-tracker/internal/config"
	"github.com/greenpitch/dotball-tracker/internal/domain/match"
	"github.com/greenpitch/dotball-tracker/internal/domain/player"
	"github.com/greenpitch/dotball-tracker/internal/domain/summary"
	"github.com/greenpitch/dotball-tracker/internal/domain/team"
	"github.com/greenpitch/dotball-tracker/internal/infrastructure/repository/memory"
	"github.com/greenpitch/dotball-tracker/internal/infrastructure/repository/postgres"
	"github.com/greenpitch/dotball-tracker/internal/interfaces/httpapi"
	"github.com/greenpitch/dotball-tracker/internal/platform/logging"
	"github.com/greenpitch/dotball-tracker/internal/usecase"
)

// App owns the wired service graph: repositories, feed client, the
// sync driver, and the HTTP server around it.
type App struct {
	Config      config.Config
	Logger      *logging.Logger
	SyncService *usecase.SyncService
	Server      *http.Server

	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{Config: cfg, Logger: logger}

	var (
		matchRepo   match.Repository
		teamRepo    team.Repository
		playerRepo  player.Repository
		summaryRepo summary.Repository
	)

	if cfg.DBURL == "" {
		// Dev mode: everything lives in process memory.
		logger.Warn("DB_URL is empty, using in-memory repositories")
		matchRepo = memory.NewMatchRepository()
		teamRepo = memory.NewTeamRepository()
		playerRepo = memory.NewPlayerRepository()
		summaryRepo = memory.NewSummaryRepository()
	} else {
		db, err := openDB(ctx, cfg.DBURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		matchRepo = postgres.NewMatchRepository(db)
		teamRepo = postgres.NewTeamRepository(db)
		playerRepo = postgres.NewPlayerRepository(db)
		summaryRepo = postgres.NewSummaryRepository(db)
	}

	feedClient := cricfeed.NewClient(cricfeed.ClientConfig{
		BaseURL:        cfg.FeedBaseURL,
		Timeout:        cfg.FeedTimeout,
		RequestsPerSec: cfg.FeedRateLimitRPS,
		CircuitBreaker: cfg.FeedCircuitBreakerConfig(),
		Logger:         logger,
	})

	aggregator := usecase.NewAggregationService(logger)
	ingestion := usecase.NewIngestionService(matchRepo, teamRepo, playerRepo, summaryRepo, cfg.TeamNames, logger)
	a.SyncService = usecase.NewSyncService(feedClient, aggregator, ingestion, matchRepo, cfg.MatchURLs, logger)

	handler := httpapi.NewHandler(a.SyncService, logger)
	router := httpapi.NewRouter(handler, logger, cfg.InternalJobToken)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if a.Server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return a, nil
}

func (a *App) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
