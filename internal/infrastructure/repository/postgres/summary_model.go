package postgres

import "time"

type summaryTableModel struct {
	TeamID            string    `db:"team_id"`
	TotalTreesPlanted int       `db:"total_trees_planted"`
	LastUpdated       time.Time `db:"last_updated"`
}

type summaryInsertModel struct {
	TeamID            string    `db:"team_id"`
	TotalTreesPlanted int       `db:"total_trees_planted"`
	LastUpdated       time.Time `db:"last_updated"`
}
