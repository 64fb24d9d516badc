package postgres

type teamInsertModel struct {
	TeamID   string `db:"team_id"`
	TeamName string `db:"team_name"`
}

type teamPerformanceInsertModel struct {
	MatchID        string `db:"match_id"`
	TeamID         string `db:"team_id"`
	DotBallsBowled int    `db:"dot_balls_bowled"`
	TreesPlanted   int    `db:"trees_planted"`
}
