package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/greenpitch/dotball-tracker/external/cricfeed"
	"github.com/greenpitch/dotball-tracker/internal/domain/match"
	"github.com/greenpitch/dotball-tracker/internal/platform/logging"
)

// FeedFetcher is the feed client surface the driver needs.
type FeedFetcher interface {
	FetchMatchInnings(ctx context.Context, matchID string) ([]cricfeed.Innings, error)
}

// SyncService is the scheduled driver: it walks the configured match
// URLs, skips matches already recorded today (IST), and runs
// fetch → aggregate → persist for the rest. One failing match never
// stops the others.
type SyncService struct {
	feed       FeedFetcher
	aggregator *AggregationService
	ingestion  *IngestionService
	matchRepo  match.Repository
	matchURLs  []string
	logger     *logging.Logger
	now        func() time.Time
}

func NewSyncService(
	feed FeedFetcher,
	aggregator *AggregationService,
	ingestion *IngestionService,
	matchRepo match.Repository,
	matchURLs []string,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SyncService{
		feed:       feed,
		aggregator: aggregator,
		ingestion:  ingestion,
		matchRepo:  matchRepo,
		matchURLs:  append([]string(nil), matchURLs...),
		logger:     logger,
		now:        time.Now,
	}
}

type SyncResult struct {
	Date              string `json:"date"`
	Processed         int    `json:"processed"`
	Skipped           int    `json:"skipped"`
	Failed            int    `json:"failed"`
	TotalTreesPlanted int    `json:"total_trees_planted"`
}

func (s *SyncService) RunDailySync(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.RunDailySync")
	defer span.End()

	if len(s.matchURLs) == 0 {
		return SyncResult{}, fmt.Errorf("%w: no match urls configured", ErrInvalidInput)
	}

	today := match.DateKey(s.now())
	result := SyncResult{Date: today}

	recorded, err := s.matchRepo.CountByDate(ctx, today)
	if err != nil {
		// Best effort only; the per-match check below decides skips.
		s.logger.WarnContext(ctx, "count matches for today failed", "date", today, "error", err)
	}
	s.logger.InfoContext(ctx, "daily sync starting", "date", today, "match_urls", len(s.matchURLs), "already_recorded", recorded)

	for _, sourceURL := range s.matchURLs {
		matchID := MatchIDFromURL(sourceURL)
		if matchID == "" {
			s.logger.WarnContext(ctx, "skipping url with no match id", "url", sourceURL)
			result.Failed++
			continue
		}

		exists, err := s.matchRepo.ExistsByIDAndDate(ctx, matchID, today)
		if err != nil {
			s.logger.WarnContext(ctx, "dedup check failed, processing anyway", "match_id", matchID, "error", err)
		}
		if exists {
			s.logger.InfoContext(ctx, "match already recorded today, skipping", "match_id", matchID, "date", today)
			result.Skipped++
			continue
		}

		trees, err := s.processMatch(ctx, sourceURL, matchID)
		if err != nil {
			// Match-fatal, not run-fatal.
			s.logger.ErrorContext(ctx, "match processing failed", "match_id", matchID, "url", sourceURL, "error", err)
			result.Failed++
		} else {
			result.Processed++
			result.TotalTreesPlanted += trees
			s.logger.InfoContext(ctx, "match processed", "match_id", matchID, "trees_planted", trees)
		}

		s.logger.InfoContext(ctx, "daily sync progress",
			"date", today,
			"processed", result.Processed,
			"skipped", result.Skipped,
			"failed", result.Failed,
			"total_trees_planted", result.TotalTreesPlanted,
		)
	}

	s.logger.InfoContext(ctx, "daily sync finished",
		"date", today,
		"processed", result.Processed,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"total_trees_planted", result.TotalTreesPlanted,
	)

	return result, nil
}

func (s *SyncService) processMatch(ctx context.Context, sourceURL, matchID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.processMatch")
	defer span.End()

	innings, err := s.feed.FetchMatchInnings(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("fetch innings: %w", err)
	}

	data, err := s.aggregator.Aggregate(ctx, innings)
	if err != nil {
		return 0, fmt.Errorf("aggregate innings: %w", err)
	}

	if err := s.ingestion.PersistMatch(ctx, sourceURL, data); err != nil {
		return 0, fmt.Errorf("persist match: %w", err)
	}

	return data.TotalTreesPlanted(), nil
}
