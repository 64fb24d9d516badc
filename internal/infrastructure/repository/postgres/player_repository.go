package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/greenpitch/dotball-tracker/internal/domain/player"
	qb "github.com/greenpitch/dotball-tracker/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Ensure(ctx context.Context, item player.Player) error {
	insertModel := playerInsertModel{
		PlayerID:   item.ID,
		PlayerName: item.Name,
		TeamID:     item.TeamID,
	}

	query, args, err := qb.InsertModel("players", insertModel, "ON CONFLICT (player_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build ensure player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("ensure player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) UpsertMatchPerformance(ctx context.Context, item player.MatchPerformance) error {
	insertModel := playerPerformanceInsertModel{
		MatchID:        item.MatchID,
		PlayerID:       item.PlayerID,
		TeamID:         item.TeamID,
		DotBallsBowled: item.DotBallsBowled,
		TreesPlanted:   item.TreesPlanted,
	}

	query, args, err := qb.InsertModel("player_match_performance", insertModel, `ON CONFLICT (match_id, player_id) DO UPDATE SET
		team_id = EXCLUDED.team_id,
		dot_balls_bowled = EXCLUDED.dot_balls_bowled,
		trees_planted = EXCLUDED.trees_planted`)
	if err != nil {
		return fmt.Errorf("build upsert player performance query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player performance: %w", err)
	}
	return nil
}
