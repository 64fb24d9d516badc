package matchstats

import "time"

// TreesPerDotBall is the fixed sponsorship conversion: every dot ball
// bowled funds this many saplings.
const TreesPerDotBall = 18

// PlayerStat accumulates one bowler's contribution within a team for a
// single match. Names are unique within a team.
type PlayerStat struct {
	Name           string
	DotBallsBowled int
	TreesPlanted   int
}

// TeamStat accumulates one team's bowling totals for a single match.
// Team totals always equal the sum of the owned player totals.
type TeamStat struct {
	TeamID         string
	DotBallsBowled int
	TreesPlanted   int
	Players        []PlayerStat
}

// MatchData is the aggregation result for one match: the teams observed
// across both innings, keyed uniquely by team id.
type MatchData struct {
	Timestamp time.Time
	Teams     []TeamStat
}

// TeamByID is a lookup helper for tests and summaries.
func (m MatchData) TeamByID(teamID string) (TeamStat, bool) {
	for _, item := range m.Teams {
		if item.TeamID == teamID {
			return item, true
		}
	}
	return TeamStat{}, false
}

// TotalTreesPlanted sums the derived tree count across all teams.
func (m MatchData) TotalTreesPlanted() int {
	total := 0
	for _, item := range m.Teams {
		total += item.TreesPlanted
	}
	return total
}
