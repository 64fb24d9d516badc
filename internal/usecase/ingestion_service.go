package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/greenpitch/dotball-tracker/internal/domain/match"
	"github.com/greenpitch/dotball-tracker/internal/domain/matchstats"
	"github.com/greenpitch/dotball-tracker/internal/domain/player"
	"github.com/greenpitch/dotball-tracker/internal/domain/summary"
	"github.com/greenpitch/dotball-tracker/internal/domain/team"
	"github.com/greenpitch/dotball-tracker/internal/platform/logging"
)

// IngestionService maps one match's aggregated stats onto the
// relational upserts. Writes are sequential and untransacted: a
// mid-match failure leaves partial rows, but each individual write is
// an idempotent upsert except the additive summary (see AddTrees).
type IngestionService struct {
	matchRepo   match.Repository
	teamRepo    team.Repository
	playerRepo  player.Repository
	summaryRepo summary.Repository
	teamNames   map[string]string
	logger      *logging.Logger
}

func NewIngestionService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	summaryRepo summary.Repository,
	teamNames map[string]string,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}

	// Own copy: the name table is injected configuration and must not
	// change under us.
	names := make(map[string]string, len(teamNames))
	for id, name := range teamNames {
		names[id] = name
	}

	return &IngestionService{
		matchRepo:   matchRepo,
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		summaryRepo: summaryRepo,
		teamNames:   names,
		logger:      logger,
	}
}

// MatchIDFromURL extracts the match identifier as the final path
// segment of a match page URL.
func MatchIDFromURL(sourceURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(sourceURL), "/")
	if trimmed == "" {
		return ""
	}
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

func (s *IngestionService) PersistMatch(ctx context.Context, sourceURL string, data matchstats.MatchData) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.PersistMatch")
	defer span.End()

	matchID := MatchIDFromURL(sourceURL)
	if matchID == "" {
		return fmt.Errorf("%w: cannot derive match id from url %q", ErrInvalidInput, sourceURL)
	}

	item := match.Match{
		ID:        matchID,
		SourceURL: sourceURL,
		Date:      match.DateKey(data.Timestamp),
		Timestamp: data.Timestamp,
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.matchRepo.Upsert(ctx, item); err != nil {
		return fmt.Errorf("upsert match %s: %w", matchID, err)
	}

	for _, teamStat := range data.Teams {
		if err := s.persistTeam(ctx, matchID, teamStat, data); err != nil {
			return err
		}
	}

	return nil
}

func (s *IngestionService) persistTeam(ctx context.Context, matchID string, teamStat matchstats.TeamStat, data matchstats.MatchData) error {
	name, ok := s.teamNames[teamStat.TeamID]
	if !ok {
		// The name table is intentionally incomplete; unknown ids keep
		// their raw identifier as the display name.
		s.logger.DebugContext(ctx, "team id missing from name table", "team_id", teamStat.TeamID)
		name = teamStat.TeamID
	}

	if err := s.teamRepo.Ensure(ctx, team.Team{ID: teamStat.TeamID, Name: name}); err != nil {
		return fmt.Errorf("ensure team %s: %w", teamStat.TeamID, err)
	}

	if err := s.teamRepo.UpsertMatchPerformance(ctx, team.MatchPerformance{
		MatchID:        matchID,
		TeamID:         teamStat.TeamID,
		DotBallsBowled: teamStat.DotBallsBowled,
		TreesPlanted:   teamStat.TreesPlanted,
	}); err != nil {
		return fmt.Errorf("upsert team performance match=%s team=%s: %w", matchID, teamStat.TeamID, err)
	}

	// Additive on purpose: the summary is a running total across
	// matches. Re-ingesting the same match double-counts, which the
	// sync driver's daily dedup check prevents.
	if err := s.summaryRepo.AddTrees(ctx, teamStat.TeamID, teamStat.TreesPlanted, data.Timestamp); err != nil {
		return fmt.Errorf("increment tree summary team=%s: %w", teamStat.TeamID, err)
	}

	for _, playerStat := range teamStat.Players {
		playerID := player.CompositeID(teamStat.TeamID, playerStat.Name)

		if err := s.playerRepo.Ensure(ctx, player.Player{
			ID:     playerID,
			Name:   playerStat.Name,
			TeamID: teamStat.TeamID,
		}); err != nil {
			return fmt.Errorf("ensure player %s: %w", playerID, err)
		}

		if err := s.playerRepo.UpsertMatchPerformance(ctx, player.MatchPerformance{
			MatchID:        matchID,
			PlayerID:       playerID,
			TeamID:         teamStat.TeamID,
			DotBallsBowled: playerStat.DotBallsBowled,
			TreesPlanted:   playerStat.TreesPlanted,
		}); err != nil {
			return fmt.Errorf("upsert player performance match=%s player=%s: %w", matchID, playerID, err)
		}
	}

	return nil
}
