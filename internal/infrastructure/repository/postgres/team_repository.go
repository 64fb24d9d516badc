package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/greenpitch/dotball-tracker/internal/domain/team"
	qb "github.com/greenpitch/dotball-tracker/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Ensure(ctx context.Context, item team.Team) error {
	insertModel := teamInsertModel{
		TeamID:   item.ID,
		TeamName: item.Name,
	}

	// First write wins; a later run with a different display name does
	// not rename the team.
	query, args, err := qb.InsertModel("teams", insertModel, "ON CONFLICT (team_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build ensure team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("ensure team: %w", err)
	}
	return nil
}

func (r *TeamRepository) UpsertMatchPerformance(ctx context.Context, item team.MatchPerformance) error {
	insertModel := teamPerformanceInsertModel{
		MatchID:        item.MatchID,
		TeamID:         item.TeamID,
		DotBallsBowled: item.DotBallsBowled,
		TreesPlanted:   item.TreesPlanted,
	}

	query, args, err := qb.InsertModel("team_match_performance", insertModel, `ON CONFLICT (match_id, team_id) DO UPDATE SET
		dot_balls_bowled = EXCLUDED.dot_balls_bowled,
		trees_planted = EXCLUDED.trees_planted`)
	if err != nil {
		return fmt.Errorf("build upsert team performance query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team performance: %w", err)
	}
	return nil
}
