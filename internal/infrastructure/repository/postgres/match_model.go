package postgres

import "time"

type matchInsertModel struct {
	MatchID   string    `db:"match_id"`
	MatchURL  string    `db:"match_url"`
	MatchDate string    `db:"match_date"`
	Timestamp time.Time `db:"timestamp"`
}
