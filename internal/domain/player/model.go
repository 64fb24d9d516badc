package player

import (
	"fmt"
	"regexp"
	"strings"
)

// Player is one bowler, owned by a team. Feeds carry no stable global
// player id, so identity is derived from the team and name.
type Player struct {
	ID     string
	Name   string
	TeamID string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	return nil
}

// MatchPerformance is one player's bowling totals for one match.
type MatchPerformance struct {
	MatchID        string
	PlayerID       string
	TeamID         string
	DotBallsBowled int
	TreesPlanted   int
}

var unsafeIDCharRegex = regexp.MustCompile(`[^a-z0-9]+`)

// CompositeID derives the stable player key from the owning team and
// the resolved display name.
func CompositeID(teamID, name string) string {
	sanitized := unsafeIDCharRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	sanitized = strings.Trim(sanitized, "-")
	return teamID + "-" + sanitized
}
