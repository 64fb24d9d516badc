package usecase

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/greenpitch/dotball-tracker/external/cricfeed"
	"github.com/greenpitch/dotball-tracker/internal/domain/matchstats"
)

func inningsPayload(section string, battingTeamID string, bowlers ...map[string]any) map[string]any {
	batting := []any{}
	if battingTeamID != "" {
		batting = append(batting, map[string]any{"TeamID": battingTeamID})
	}
	bowling := make([]any, 0, len(bowlers))
	for _, entry := range bowlers {
		bowling = append(bowling, entry)
	}
	return map[string]any{
		section: map[string]any{
			"BattingCard": batting,
			"BowlingCard": bowling,
		},
	}
}

func TestAggregate_TwoInningsEndToEnd(t *testing.T) {
	svc := NewAggregationService(nil)

	innings := []cricfeed.Innings{
		{Number: 1, Payload: inningsPayload("Innings1", "13",
			map[string]any{"TeamID": "17", "PlayerShortName": "X", "DotBalls": "5"},
		)},
		{Number: 2, Payload: inningsPayload("Innings2", "17",
			map[string]any{"TeamID": "13", "PlayerShortName": "X", "DotBalls": "3"},
		)},
	}

	data, err := svc.Aggregate(context.Background(), innings)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	if len(data.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(data.Teams))
	}

	team17, ok := data.TeamByID("17")
	if !ok {
		t.Fatalf("team 17 missing")
	}
	if team17.DotBallsBowled != 5 || team17.TreesPlanted != 5*matchstats.TreesPerDotBall {
		t.Fatalf("unexpected team 17 totals: %+v", team17)
	}
	if len(team17.Players) != 1 || team17.Players[0].Name != "X" || team17.Players[0].DotBallsBowled != 5 {
		t.Fatalf("unexpected team 17 players: %+v", team17.Players)
	}

	team13, ok := data.TeamByID("13")
	if !ok {
		t.Fatalf("team 13 missing")
	}
	if team13.DotBallsBowled != 3 || team13.TreesPlanted != 3*matchstats.TreesPerDotBall {
		t.Fatalf("unexpected team 13 totals: %+v", team13)
	}
	// Same display name on both sides must stay in distinct team buckets.
	if len(team13.Players) != 1 || team13.Players[0].DotBallsBowled != 3 {
		t.Fatalf("player X merged across teams: %+v", team13.Players)
	}
}

func TestAggregate_TeamTotalsEqualPlayerSums(t *testing.T) {
	svc := NewAggregationService(nil)

	innings := []cricfeed.Innings{
		{Number: 1, Payload: inningsPayload("Innings1", "13",
			map[string]any{"TeamID": "17", "PlayerShortName": "Bumrah", "DotBalls": "11"},
			map[string]any{"TeamID": "17", "PlayerShortName": "Boult", "DotBalls": "8"},
			map[string]any{"TeamID": "17", "PlayerShortName": "Chahar", "DotBalls": float64(6)},
		)},
	}

	data, err := svc.Aggregate(context.Background(), innings)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	team17, _ := data.TeamByID("17")
	sumDots, sumTrees := 0, 0
	for _, item := range team17.Players {
		if item.TreesPlanted != item.DotBallsBowled*matchstats.TreesPerDotBall {
			t.Fatalf("player trees not derived from dots: %+v", item)
		}
		sumDots += item.DotBallsBowled
		sumTrees += item.TreesPlanted
	}
	if team17.DotBallsBowled != sumDots || team17.TreesPlanted != sumTrees {
		t.Fatalf("team totals diverge from player sums: team=%+v sums=%d/%d", team17, sumDots, sumTrees)
	}
	if team17.DotBallsBowled != 25 {
		t.Fatalf("expected 25 dot balls, got %d", team17.DotBallsBowled)
	}
}

func TestAggregate_SameTeamBowlingTwiceMergesPlayers(t *testing.T) {
	// Not reachable from a real two-innings match, but the accumulation
	// rule must hold for repeated team buckets.
	svc := NewAggregationService(nil)

	innings := []cricfeed.Innings{
		{Number: 1, Payload: inningsPayload("Innings1", "13",
			map[string]any{"TeamID": "17", "PlayerShortName": "X", "DotBalls": "5"},
		)},
		{Number: 2, Payload: inningsPayload("Innings2", "13",
			map[string]any{"TeamID": "17", "PlayerShortName": "X", "DotBalls": "3"},
		)},
	}

	data, err := svc.Aggregate(context.Background(), innings)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	team17, _ := data.TeamByID("17")
	if len(team17.Players) != 1 {
		t.Fatalf("expected merged player record, got %+v", team17.Players)
	}
	if team17.Players[0].DotBallsBowled != 8 || team17.Players[0].TreesPlanted != 8*matchstats.TreesPerDotBall {
		t.Fatalf("unexpected merged totals: %+v", team17.Players[0])
	}
}

func TestAggregate_DuplicateNamesWithinInningsAccumulate(t *testing.T) {
	svc := NewAggregationService(nil)

	innings := []cricfeed.Innings{
		{Number: 1, Payload: inningsPayload("Innings1", "13",
			map[string]any{"TeamID": "17", "PlayerShortName": "X", "DotBalls": "2"},
			map[string]any{"TeamID": "17", "PlayerShortName": "X", "DotBalls": "4"},
		)},
	}

	data, _ := svc.Aggregate(context.Background(), innings)
	team17, _ := data.TeamByID("17")
	if len(team17.Players) != 1 || team17.Players[0].DotBallsBowled != 6 {
		t.Fatalf("expected one accumulated record, got %+v", team17.Players)
	}
}

func TestAggregate_NonNumericDotBallsCountZero(t *testing.T) {
	svc := NewAggregationService(nil)

	innings := []cricfeed.Innings{
		{Number: 1, Payload: inningsPayload("Innings1", "13",
			map[string]any{"TeamID": "17", "PlayerShortName": "X", "DotBalls": "n/a"},
			map[string]any{"TeamID": "17", "PlayerShortName": "Y"},
		)},
	}

	data, err := svc.Aggregate(context.Background(), innings)
	if err != nil {
		t.Fatalf("aggregate must not fail on garbage counts: %v", err)
	}

	team17, _ := data.TeamByID("17")
	if team17.DotBallsBowled != 0 || team17.TreesPlanted != 0 {
		t.Fatalf("expected zero-filled totals, got %+v", team17)
	}
	if len(team17.Players) != 2 {
		t.Fatalf("zero-count bowlers still get player records: %+v", team17.Players)
	}
}

func TestAggregate_NamePrecedence(t *testing.T) {
	svc := NewAggregationService(nil)

	innings := []cricfeed.Innings{
		{Number: 1, Payload: inningsPayload("Innings1", "13",
			map[string]any{"TeamID": "17", "PlayerShortName": "SN", "PlayerName": "Sunil Narine", "DotBalls": "1"},
			map[string]any{"TeamID": "17", "PlayerName": "Andre Russell", "DotBalls": "1"},
			map[string]any{"TeamID": "17", "PlayerID": float64(107), "DotBalls": "1"},
		)},
	}

	data, _ := svc.Aggregate(context.Background(), innings)
	team17, _ := data.TeamByID("17")

	names := make([]string, 0, len(team17.Players))
	for _, item := range team17.Players {
		names = append(names, item.Name)
	}
	want := []string{"SN", "Andre Russell", "Player107"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("unexpected resolved names: got %v want %v", names, want)
	}
}

func TestAggregate_EmptyCardsSynthesizePlaceholders(t *testing.T) {
	svc := NewAggregationService(nil)

	innings := []cricfeed.Innings{
		{Number: 1, Payload: map[string]any{
			"Innings1": map[string]any{"BattingCard": []any{}, "BowlingCard": []any{}},
		}},
	}

	data, err := svc.Aggregate(context.Background(), innings)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	if _, ok := data.TeamByID("unknown-innings1-batting"); !ok {
		t.Fatalf("missing batting placeholder bucket: %+v", data.Teams)
	}
	if _, ok := data.TeamByID("unknown-innings1-bowling"); !ok {
		t.Fatalf("missing bowling placeholder bucket: %+v", data.Teams)
	}
	if len(data.Teams) != 2 {
		t.Fatalf("expected exactly two placeholder buckets, got %d", len(data.Teams))
	}
}

func TestAggregate_MissingSectionIsSkipped(t *testing.T) {
	svc := NewAggregationService(nil)

	innings := []cricfeed.Innings{
		{Number: 1, Payload: map[string]any{"SomethingElse": map[string]any{}}},
		{Number: 2, Payload: nil},
	}

	data, err := svc.Aggregate(context.Background(), innings)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(data.Teams) != 0 {
		t.Fatalf("expected no teams from missing sections, got %+v", data.Teams)
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	innings := []cricfeed.Innings{
		{Number: 1, Payload: inningsPayload("Innings1", "13",
			map[string]any{"TeamID": "17", "PlayerShortName": "X", "DotBalls": "5"},
		)},
		{Number: 2, Payload: inningsPayload("Innings2", "17",
			map[string]any{"TeamID": "13", "PlayerShortName": "Y", "DotBalls": "3"},
		)},
	}

	fixed := time.Date(2026, 4, 12, 19, 30, 0, 0, time.UTC)

	first := NewAggregationService(nil)
	first.now = func() time.Time { return fixed }
	second := NewAggregationService(nil)
	second.now = func() time.Time { return fixed }

	a, err := first.Aggregate(context.Background(), innings)
	if err != nil {
		t.Fatalf("first aggregate: %v", err)
	}
	b, err := second.Aggregate(context.Background(), innings)
	if err != nil {
		t.Fatalf("second aggregate: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("aggregation not deterministic:\nfirst  %+v\nsecond %+v", a, b)
	}
}
