package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/greenpitch/dotball-tracker/internal/domain/match"
	qb "github.com/greenpitch/dotball-tracker/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Upsert(ctx context.Context, item match.Match) error {
	insertModel := matchInsertModel{
		MatchID:   item.ID,
		MatchURL:  item.SourceURL,
		MatchDate: item.Date,
		Timestamp: item.Timestamp,
	}

	query, args, err := qb.InsertModel("matches", insertModel, `ON CONFLICT (match_id) DO UPDATE SET
		match_url = EXCLUDED.match_url,
		match_date = EXCLUDED.match_date,
		timestamp = EXCLUDED.timestamp`)
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) CountByDate(ctx context.Context, date string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("matches").
		Where(qb.Eq("match_date", date)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count matches by date: %w", err)
	}
	return count, nil
}

func (r *MatchRepository) ExistsByIDAndDate(ctx context.Context, matchID, date string) (bool, error) {
	query, args, err := qb.Select("1").From("matches").
		Where(
			qb.Eq("match_id", matchID),
			qb.Eq("match_date", date),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build match exists query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check match exists: %w", err)
	}
	return true, nil
}
