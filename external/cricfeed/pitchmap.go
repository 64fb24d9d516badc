package cricfeed

// CountPitchMapDotBalls counts dot balls from a pitch-map section,
// where deliveries are grouped into run/ball tuples: a group with zero
// runs contributes its whole ball count. This convention differs from
// the bowling-card counts the pipeline aggregates and exists for feed
// variants that ship a pitch map instead of per-bowler dot-ball
// columns. The active pipeline does not call it.
func CountPitchMapDotBalls(payload map[string]any) int {
	total := 0
	for _, entry := range SliceField(payload, "PitchMap") {
		group, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if ParseCountOrZero(group["Runs"]) != 0 {
			continue
		}
		total += ParseCountOrZero(group["Balls"])
	}
	return total
}
