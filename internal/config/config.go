package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/greenpitch/dotball-tracker/internal/platform/logging"
	"github.com/greenpitch/dotball-tracker/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// DefaultFeedBaseURL is the scorecard feed origin the client was built
// against.
const DefaultFeedBaseURL = "https://scores.iplt20.com/ipl/feeds"

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	HTTPAddr                string
	LogLevel                logging.Level
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	DBURL                   string
	FeedBaseURL             string
	FeedTimeout             time.Duration
	FeedRateLimitRPS        float64
	FeedCircuitEnabled      bool
	FeedCircuitFailureCount int
	FeedCircuitOpenTimeout  time.Duration
	FeedCircuitHalfOpenMax  int
	MatchURLs               []string
	TeamNames               map[string]string
	JobSyncInterval         time.Duration
	InternalJobToken        string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	if readTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_READ_TIMEOUT must be > 0")
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}
	if writeTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_WRITE_TIMEOUT must be > 0")
	}

	feedTimeout, err := time.ParseDuration(getEnv("FEED_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_TIMEOUT: %w", err)
	}
	if feedTimeout <= 0 {
		return Config{}, fmt.Errorf("FEED_TIMEOUT must be > 0")
	}

	feedRateLimitRPS, err := getEnvAsFloat("FEED_RATE_LIMIT_RPS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_RATE_LIMIT_RPS: %w", err)
	}
	if feedRateLimitRPS <= 0 {
		return Config{}, fmt.Errorf("FEED_RATE_LIMIT_RPS must be > 0")
	}

	feedCircuitEnabled, err := strconv.ParseBool(getEnv("FEED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_ENABLED: %w", err)
	}
	feedCircuitFailureCount, err := getEnvAsInt("FEED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	feedCircuitOpenTimeout, err := time.ParseDuration(getEnv("FEED_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	feedCircuitHalfOpenMax, err := getEnvAsInt("FEED_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	matchURLs := splitCSV(getEnv("MATCH_URLS", ""))
	if len(matchURLs) == 0 {
		matchURLs = defaultMatchURLs()
	}

	teamNames, err := parseNameMap(getEnv("TEAM_NAME_MAP", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse TEAM_NAME_MAP: %w", err)
	}
	if len(teamNames) == 0 {
		teamNames = defaultTeamNames()
	}

	jobSyncInterval, err := time.ParseDuration(getEnv("JOB_SYNC_INTERVAL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_SYNC_INTERVAL: %w", err)
	}
	if jobSyncInterval < 0 {
		return Config{}, fmt.Errorf("JOB_SYNC_INTERVAL must be >= 0")
	}

	return Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "dotball-tracker"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:                parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		DBURL:                   strings.TrimSpace(getEnv("DB_URL", "")),
		FeedBaseURL:             strings.TrimRight(strings.TrimSpace(getEnv("FEED_BASE_URL", DefaultFeedBaseURL)), "/"),
		FeedTimeout:             feedTimeout,
		FeedRateLimitRPS:        feedRateLimitRPS,
		FeedCircuitEnabled:      feedCircuitEnabled,
		FeedCircuitFailureCount: feedCircuitFailureCount,
		FeedCircuitOpenTimeout:  feedCircuitOpenTimeout,
		FeedCircuitHalfOpenMax:  feedCircuitHalfOpenMax,
		MatchURLs:               matchURLs,
		TeamNames:               teamNames,
		JobSyncInterval:         jobSyncInterval,
		InternalJobToken:        strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
	}, nil
}

// FeedCircuitBreakerConfig maps the FEED_CIRCUIT_* keys onto the
// resilience knobs.
func (c Config) FeedCircuitBreakerConfig() resilience.CircuitBreakerConfig {
	return resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
		Enabled:          c.FeedCircuitEnabled,
		FailureThreshold: c.FeedCircuitFailureCount,
		OpenTimeout:      c.FeedCircuitOpenTimeout,
		HalfOpenMaxReq:   c.FeedCircuitHalfOpenMax,
	})
}

func defaultMatchURLs() []string {
	return []string{
		"https://www.iplt20.com/match/2025/1825",
		"https://www.iplt20.com/match/2025/1826",
		"https://www.iplt20.com/match/2025/1827",
		"https://www.iplt20.com/match/2025/1828",
		"https://www.iplt20.com/match/2025/1829",
	}
}

func defaultTeamNames() map[string]string {
	return map[string]string{
		"1":  "Royal Challengers Bengaluru",
		"2":  "Punjab Kings",
		"3":  "Delhi Capitals",
		"4":  "Kolkata Knight Riders",
		"5":  "Chennai Super Kings",
		"6":  "Rajasthan Royals",
		"7":  "Mumbai Indians",
		"8":  "Sunrisers Hyderabad",
		"9":  "Gujarat Titans",
		"10": "Lucknow Super Giants",
	}
}

func parseNameMap(v string) (map[string]string, error) {
	out := map[string]string{}
	for _, pair := range splitCSV(v) {
		id, name, found := strings.Cut(pair, ":")
		if !found {
			return nil, fmt.Errorf("invalid entry %q: expected id:name", pair)
		}
		id = strings.TrimSpace(id)
		name = strings.TrimSpace(name)
		if id == "" || name == "" {
			return nil, fmt.Errorf("invalid entry %q: id and name are required", pair)
		}
		out[id] = name
	}
	return out, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
