package postgres

type playerInsertModel struct {
	PlayerID   string `db:"player_id"`
	PlayerName string `db:"player_name"`
	TeamID     string `db:"team_id"`
}

type playerPerformanceInsertModel struct {
	MatchID        string `db:"match_id"`
	PlayerID       string `db:"player_id"`
	TeamID         string `db:"team_id"`
	DotBallsBowled int    `db:"dot_balls_bowled"`
	TreesPlanted   int    `db:"trees_planted"`
}
