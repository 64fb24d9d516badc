package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/greenpitch/dotball-tracker/internal/domain/summary"
	qb "github.com/greenpitch/dotball-tracker/internal/platform/querybuilder"
)

type SummaryRepository struct {
	db *sqlx.DB
}

func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// AddTrees increments the running total. The conflict action adds the
// new delta onto the stored total instead of replacing it.
func (r *SummaryRepository) AddTrees(ctx context.Context, teamID string, trees int, updatedAt time.Time) error {
	insertModel := summaryInsertModel{
		TeamID:            teamID,
		TotalTreesPlanted: trees,
		LastUpdated:       updatedAt,
	}

	query, args, err := qb.InsertModel("tree_planting_summary", insertModel, `ON CONFLICT (team_id) DO UPDATE SET
		total_trees_planted = tree_planting_summary.total_trees_planted + EXCLUDED.total_trees_planted,
		last_updated = EXCLUDED.last_updated`)
	if err != nil {
		return fmt.Errorf("build add trees query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add trees to summary: %w", err)
	}
	return nil
}

func (r *SummaryRepository) GetByTeam(ctx context.Context, teamID string) (summary.TreePlanting, bool, error) {
	query, args, err := qb.Select("team_id", "total_trees_planted", "last_updated").
		From("tree_planting_summary").
		Where(qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return summary.TreePlanting{}, false, fmt.Errorf("build get summary query: %w", err)
	}

	var row summaryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return summary.TreePlanting{}, false, nil
		}
		return summary.TreePlanting{}, false, fmt.Errorf("get summary by team: %w", err)
	}

	return summary.TreePlanting{
		TeamID:            row.TeamID,
		TotalTreesPlanted: row.TotalTreesPlanted,
		LastUpdated:       row.LastUpdated,
	}, true, nil
}
