package cricfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/greenpitch/dotball-tracker/internal/platform/logging"
	"github.com/greenpitch/dotball-tracker/internal/platform/resilience"
	"github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://scores.iplt20.com/ipl/feeds"
	defaultTimeout = 20 * time.Second
	defaultRPS     = 4

	maxBodyBytes    = 6 << 20
	bodyPreviewSize = 256

	inningsPerMatch = 2
)

// The origin serves feeds to its own scoreboard pages only; these
// static headers satisfy its access expectations.
const (
	headerUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	headerReferer   = "https://www.iplt20.com/"
	headerAccept    = "*/*"
)

// ErrNoInningsData marks a match whose every feed URL failed. The sync
// driver treats this as match-fatal, not run-fatal.
var ErrNoInningsData = crerr.New("no innings data for match")

var errFeedTransient = crerr.New("feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	RequestsPerSec float64
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches per-innings scorecard feeds for a match.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	limiter        *rate.Limiter
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = defaultRPS
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		logger:         logger,
		limiter:        rate.NewLimiter(rate.Limit(rps), inningsPerMatch),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Innings is one decoded per-innings feed. Payload is nil when that
// innings' URL soft-failed.
type Innings struct {
	Number  int
	Payload map[string]any
}

// FetchMatchInnings retrieves both innings feeds for a match in
// parallel. A single failed URL is logged and yields a nil payload; the
// sibling fetch is never aborted. When every URL fails the whole match
// fails with ErrNoInningsData.
func (c *Client) FetchMatchInnings(ctx context.Context, matchID string) ([]Innings, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, crerr.New("match id is required")
	}

	results := make([]Innings, inningsPerMatch)

	pool, err := ants.NewPool(inningsPerMatch)
	if err != nil {
		return nil, crerr.Wrap(err, "create fetch pool")
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := 0; i < inningsPerMatch; i++ {
		number := i + 1
		feedURL := fmt.Sprintf("%s/%s-Innings%d.js", c.baseURL, matchID, number)

		workers.Add(1)
		submitErr := pool.Submit(func() {
			defer workers.Done()
			results[number-1] = Innings{
				Number:  number,
				Payload: c.fetchInnings(ctx, feedURL, matchID, number),
			}
		})
		if submitErr != nil {
			workers.Done()
			return nil, crerr.Wrap(submitErr, "submit fetch task")
		}
	}
	workers.Wait()

	gotData := false
	for _, item := range results {
		if item.Payload != nil {
			gotData = true
			break
		}
	}
	if !gotData {
		return nil, crerr.Wrapf(ErrNoInningsData, "match_id=%s", matchID)
	}

	return results, nil
}

// fetchInnings resolves one innings URL. Every failure mode here is
// soft: log and return nil so the sibling innings still counts.
func (c *Client) fetchInnings(ctx context.Context, feedURL, matchID string, number int) map[string]any {
	if err := c.limiter.Wait(ctx); err != nil {
		c.logger.WarnContext(ctx, "feed rate limiter aborted", "match_id", matchID, "innings", number, "error", err)
		return nil
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "feed circuit breaker rejected request", "match_id", matchID, "innings", number, "state", c.breaker.State())
			return nil
		}
	}

	raw, err := c.executeRequest(ctx, feedURL)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errFeedTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		c.logger.WarnContext(ctx, "innings feed fetch failed", "match_id", matchID, "innings", number, "url", feedURL, "error", err)
		return nil
	}

	payload, err := DecodePayload(raw)
	if err != nil {
		c.logger.WarnContext(ctx, "innings feed decode failed", "match_id", matchID, "innings", number, "url", feedURL, "body_preview", bodyPreview(raw), "error", err)
		return nil
	}

	return payload
}

func (c *Client) executeRequest(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", headerUserAgent)
	req.Header.Set("Referer", headerReferer)
	req.Header.Set("Accept", headerAccept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errFeedTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errFeedTransient, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: feed status=%d body=%s", errFeedTransient, resp.StatusCode, bodyPreview(raw))
		}
		return nil, fmt.Errorf("feed status=%d body=%s", resp.StatusCode, bodyPreview(raw))
	}

	return raw, nil
}

func bodyPreview(raw []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	limit := len(raw)
	truncated := false
	if limit > bodyPreviewSize {
		limit = bodyPreviewSize
		truncated = true
	}
	_, _ = buf.Write(raw[:limit])
	if truncated {
		_, _ = buf.WriteString("...")
	}
	return buf.String()
}
