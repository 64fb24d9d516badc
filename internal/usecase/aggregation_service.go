package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/greenpitch/dotball-tracker/external/cricfeed"
	"github.com/greenpitch/dotball-tracker/internal/domain/matchstats"
	"github.com/greenpitch/dotball-tracker/internal/platform/logging"
)

// AggregationService folds decoded innings feeds into per-team and
// per-player dot-ball totals. Aggregation is a pure function of its
// input apart from the result timestamp.
type AggregationService struct {
	logger *logging.Logger
	now    func() time.Time
}

func NewAggregationService(logger *logging.Logger) *AggregationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AggregationService{
		logger: logger,
		now:    time.Now,
	}
}

func (s *AggregationService) Aggregate(ctx context.Context, innings []cricfeed.Innings) (matchstats.MatchData, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.Aggregate")
	defer span.End()

	teamsByID := make(map[string]*matchstats.TeamStat, 2)
	teamOrder := make([]string, 0, 2)

	ensureTeam := func(teamID string) *matchstats.TeamStat {
		if existing, ok := teamsByID[teamID]; ok {
			return existing
		}
		created := &matchstats.TeamStat{TeamID: teamID}
		teamsByID[teamID] = created
		teamOrder = append(teamOrder, teamID)
		return created
	}

	for idx, item := range innings {
		sectionKey := fmt.Sprintf("Innings%d", idx+1)
		section := cricfeed.MapField(item.Payload, sectionKey)
		if section == nil {
			s.logger.WarnContext(ctx, "innings section missing, skipping", "section", sectionKey)
			continue
		}

		battingCard := cricfeed.SliceField(section, "BattingCard")
		bowlingCard := cricfeed.SliceField(section, "BowlingCard")

		battingTeamID := firstEntryTeamID(battingCard)
		if battingTeamID == "" {
			battingTeamID = placeholderTeamID(idx+1, "batting")
		}
		bowlingTeamID := firstEntryTeamID(bowlingCard)
		if bowlingTeamID == "" {
			bowlingTeamID = placeholderTeamID(idx+1, "bowling")
		}

		// Every innings contributes two team buckets even when a card
		// is empty upstream.
		ensureTeam(battingTeamID)
		bowlingTeam := ensureTeam(bowlingTeamID)

		for _, raw := range bowlingCard {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}

			dotBalls := cricfeed.ParseCountOrZero(entry["DotBalls"])
			trees := dotBalls * matchstats.TreesPerDotBall

			bowlingTeam.DotBallsBowled += dotBalls
			bowlingTeam.TreesPlanted += trees

			upsertPlayerStat(bowlingTeam, resolveBowlerName(entry), dotBalls, trees)
		}
	}

	teams := make([]matchstats.TeamStat, 0, len(teamOrder))
	for _, teamID := range teamOrder {
		teams = append(teams, *teamsByID[teamID])
	}

	return matchstats.MatchData{
		Timestamp: s.now(),
		Teams:     teams,
	}, nil
}

// upsertPlayerStat accumulates into an existing player record on exact
// name match, otherwise appends a new one.
func upsertPlayerStat(teamStat *matchstats.TeamStat, name string, dotBalls, trees int) {
	for i := range teamStat.Players {
		if teamStat.Players[i].Name == name {
			teamStat.Players[i].DotBallsBowled += dotBalls
			teamStat.Players[i].TreesPlanted += trees
			return
		}
	}
	teamStat.Players = append(teamStat.Players, matchstats.PlayerStat{
		Name:           name,
		DotBallsBowled: dotBalls,
		TreesPlanted:   trees,
	})
}

// resolveBowlerName prefers the short display name, then the full name,
// then a synthesized placeholder from the feed player id.
func resolveBowlerName(entry map[string]any) string {
	if name := cricfeed.StringField(entry, "PlayerShortName"); name != "" {
		return name
	}
	if name := cricfeed.StringField(entry, "PlayerName"); name != "" {
		return name
	}
	return "Player" + cricfeed.StringField(entry, "PlayerID")
}

func firstEntryTeamID(card []any) string {
	if len(card) == 0 {
		return ""
	}
	entry, ok := card[0].(map[string]any)
	if !ok {
		return ""
	}
	return cricfeed.StringField(entry, "TeamID")
}

// placeholderTeamID keeps malformed innings contributing two distinct
// buckets; the id is unique per innings and role.
func placeholderTeamID(inningsNumber int, role string) string {
	return fmt.Sprintf("unknown-innings%d-%s", inningsNumber, role)
}
