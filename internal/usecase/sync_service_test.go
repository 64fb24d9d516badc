package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/greenpitch/dotball-tracker/external/cricfeed"
	"github.com/greenpitch/dotball-tracker/internal/infrastructure/repository/memory"
)

type stubFeed struct {
	fetch func(ctx context.Context, matchID string) ([]cricfeed.Innings, error)
}

func (s *stubFeed) FetchMatchInnings(ctx context.Context, matchID string) ([]cricfeed.Innings, error) {
	return s.fetch(ctx, matchID)
}

func feedWithDots(dotsByMatch map[string]string) *stubFeed {
	return &stubFeed{fetch: func(_ context.Context, matchID string) ([]cricfeed.Innings, error) {
		dots, ok := dotsByMatch[matchID]
		if !ok {
			return nil, cricfeed.ErrNoInningsData
		}
		return []cricfeed.Innings{
			{Number: 1, Payload: inningsPayload("Innings1", "13",
				map[string]any{"TeamID": "17", "PlayerShortName": "X", "DotBalls": dots},
			)},
		}, nil
	}}
}

func newSyncFixture(feed FeedFetcher, urls []string) (*SyncService, *memory.MatchRepository) {
	matches := memory.NewMatchRepository()
	ingestion := NewIngestionService(
		matches,
		memory.NewTeamRepository(),
		memory.NewPlayerRepository(),
		memory.NewSummaryRepository(),
		map[string]string{"13": "Kolkata Knight Riders", "17": "Mumbai Indians"},
		nil,
	)
	svc := NewSyncService(feed, NewAggregationService(nil), ingestion, matches, urls, nil)
	return svc, matches
}

func TestRunDailySync_ProcessesThenDedups(t *testing.T) {
	feed := feedWithDots(map[string]string{"1832": "5", "1833": "2"})
	svc, _ := newSyncFixture(feed, []string{
		"https://www.iplt20.com/match/2026/1832",
		"https://www.iplt20.com/match/2026/1833",
	})

	first, err := svc.RunDailySync(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Processed != 2 || first.Skipped != 0 || first.Failed != 0 {
		t.Fatalf("unexpected first run result: %+v", first)
	}
	if first.TotalTreesPlanted != (5+2)*18 {
		t.Fatalf("unexpected trees total: %+v", first)
	}

	second, err := svc.RunDailySync(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Processed != 0 || second.Skipped != 2 {
		t.Fatalf("second same-day run should skip everything: %+v", second)
	}
	if second.TotalTreesPlanted != 0 {
		t.Fatalf("skipped matches must not count trees: %+v", second)
	}
}

func TestRunDailySync_FailedMatchDoesNotStopOthers(t *testing.T) {
	feed := feedWithDots(map[string]string{"1833": "4"})
	svc, matches := newSyncFixture(feed, []string{
		"https://www.iplt20.com/match/2026/1832",
		"https://www.iplt20.com/match/2026/1833",
	})

	result, err := svc.RunDailySync(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Failed != 1 || result.Processed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if _, ok := matches.Get("1832"); ok {
		t.Fatalf("failed match must not leave a match row")
	}
	if _, ok := matches.Get("1833"); !ok {
		t.Fatalf("healthy match row missing")
	}
}

func TestRunDailySync_FailedMatchRetriesSameDay(t *testing.T) {
	feed := feedWithDots(nil)
	svc, _ := newSyncFixture(feed, []string{"https://www.iplt20.com/match/2026/1832"})

	if result, _ := svc.RunDailySync(context.Background()); result.Failed != 1 {
		t.Fatalf("expected failure: %+v", result)
	}

	// Nothing was recorded, so the next run attempts the match again.
	feed.fetch = feedWithDots(map[string]string{"1832": "5"}).fetch
	result, err := svc.RunDailySync(context.Background())
	if err != nil {
		t.Fatalf("retry run: %v", err)
	}
	if result.Processed != 1 || result.Skipped != 0 {
		t.Fatalf("expected retry to process: %+v", result)
	}
}

func TestRunDailySync_BadURLCountsAsFailed(t *testing.T) {
	feed := feedWithDots(map[string]string{"1832": "5"})
	svc, _ := newSyncFixture(feed, []string{"   ", "https://www.iplt20.com/match/2026/1832"})

	result, err := svc.RunDailySync(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Failed != 1 || result.Processed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRunDailySync_NoURLsIsInvalidInput(t *testing.T) {
	svc, _ := newSyncFixture(feedWithDots(nil), nil)

	_, err := svc.RunDailySync(context.Background())
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
