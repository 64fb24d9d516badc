package summary

import "time"

// TreePlanting is a team's running sapling total across all processed
// matches. Writes are additive, never replacing: re-ingesting the same
// match increments the total again, which is why the sync driver
// guards ingestion with the daily dedup check.
type TreePlanting struct {
	TeamID            string
	TotalTreesPlanted int
	LastUpdated       time.Time
}
