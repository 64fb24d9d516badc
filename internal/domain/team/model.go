package team

import "fmt"

// Team is one franchise as identified by the feed.
type Team struct {
	ID   string
	Name string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

// MatchPerformance is one team's bowling totals for one match.
type MatchPerformance struct {
	MatchID        string
	TeamID         string
	DotBallsBowled int
	TreesPlanted   int
}
