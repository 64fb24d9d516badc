package cricfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/greenpitch/dotball-tracker/internal/platform/resilience"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient:     server.Client(),
		BaseURL:        server.URL,
		RequestsPerSec: 1000,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})
}

func TestFetchMatchInnings_BothInnings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Referer") == "" || r.Header.Get("User-Agent") == "" {
			t.Errorf("missing static headers on %s", r.URL.Path)
		}
		switch {
		case strings.HasSuffix(r.URL.Path, "/1832-Innings1.js"):
			_, _ = w.Write([]byte(`onScoring({"Innings1":{"BowlingCard":[{"DotBalls":"5"}]}});`))
		case strings.HasSuffix(r.URL.Path, "/1832-Innings2.js"):
			_, _ = w.Write([]byte(`onScoring({"Innings2":{"BowlingCard":[{"DotBalls":"3"}]}});`))
		default:
			http.NotFound(w, r)
		}
	})

	innings, err := client.FetchMatchInnings(context.Background(), "1832")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(innings) != 2 {
		t.Fatalf("expected 2 innings, got %d", len(innings))
	}
	if innings[0].Number != 1 || innings[1].Number != 2 {
		t.Fatalf("innings out of order: %+v", innings)
	}
	if innings[0].Payload == nil || innings[1].Payload == nil {
		t.Fatalf("expected both payloads present")
	}
}

func TestFetchMatchInnings_OneSoftFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "-Innings1.js") {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`onScoring({"Innings2":{}});`))
	})

	innings, err := client.FetchMatchInnings(context.Background(), "1832")
	if err != nil {
		t.Fatalf("one live innings should not fail the match: %v", err)
	}
	if innings[0].Payload != nil {
		t.Fatalf("failed innings should carry nil payload")
	}
	if innings[1].Payload == nil {
		t.Fatalf("sibling innings should survive")
	}
}

func TestFetchMatchInnings_MalformedEnvelopeIsSoft(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "-Innings1.js") {
			_, _ = w.Write([]byte(`<html>blocked</html>`))
			return
		}
		_, _ = w.Write([]byte(`onScoring({"Innings2":{}});`))
	})

	innings, err := client.FetchMatchInnings(context.Background(), "1832")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if innings[0].Payload != nil {
		t.Fatalf("malformed envelope should decode to nothing")
	}
}

func TestFetchMatchInnings_AllFailed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	})

	_, err := client.FetchMatchInnings(context.Background(), "1832")
	if !crerr.Is(err, ErrNoInningsData) {
		t.Fatalf("expected ErrNoInningsData, got %v", err)
	}
}

func TestFetchMatchInnings_RequiresMatchID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	if _, err := client.FetchMatchInnings(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty match id")
	}
}
