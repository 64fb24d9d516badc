package match

import (
	"fmt"
	"time"
)

// IST is the fixed offset zone used for all date bucketing. Match days
// roll over at midnight Indian Standard Time regardless of host zone.
var IST = time.FixedZone("IST", 5*3600+30*60)

// DateKey formats an instant as the IST calendar day it falls on.
func DateKey(t time.Time) string {
	return t.In(IST).Format("2006-01-02")
}

// Match is one processed match feed.
type Match struct {
	ID        string
	SourceURL string
	Date      string
	Timestamp time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.Date == "" {
		return fmt.Errorf("match date is required")
	}
	return nil
}
