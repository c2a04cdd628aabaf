// Package statsbomb fetches the published open-data feed: competition and
// match indexes plus per-match event arrays. Event payloads are returned raw
// so callers can cache the bytes and normalize separately.
package statsbomb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/pitchlab/go-pitch-metrics/internal/logging"
)

const defaultBaseURL = "https://raw.githubusercontent.com/statsbomb/open-data/master/data"

var errTransient = errors.New("provider transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	logger     *logging.Logger
}

type Competition struct {
	CompetitionID   int    `json:"competition_id"`
	SeasonID        int    `json:"season_id"`
	CompetitionName string `json:"competition_name"`
	SeasonName      string `json:"season_name"`
	CountryName     string `json:"country_name"`
}

type MatchInfo struct {
	MatchID   int     `json:"match_id"`
	MatchDate string  `json:"match_date"`
	HomeTeam  teamRef `json:"home_team"`
	AwayTeam  teamRef `json:"away_team"`
	HomeScore int     `json:"home_score"`
	AwayScore int     `json:"away_score"`
}

type teamRef struct {
	Name string `json:"home_team_name"`
	Alt  string `json:"away_team_name"`
}

// TeamName tolerates the feed's asymmetric key names for home and away.
func (t teamRef) TeamName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Alt
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		maxRetries: retries,
		logger:     logger,
	}
}

func (c *Client) Competitions(ctx context.Context) ([]Competition, error) {
	var out []Competition
	if err := c.getJSON(ctx, "/competitions.json", &out); err != nil {
		return nil, errors.Wrap(err, "fetch competitions")
	}
	return out, nil
}

func (c *Client) Matches(ctx context.Context, competitionID, seasonID int) ([]MatchInfo, error) {
	path := fmt.Sprintf("/matches/%d/%d.json", competitionID, seasonID)
	var out []MatchInfo
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, errors.Wrapf(err, "fetch matches competition_id=%d season_id=%d", competitionID, seasonID)
	}
	return out, nil
}

// Events returns the raw event array for a match without decoding it.
func (c *Client) Events(ctx context.Context, matchID int) ([]byte, error) {
	raw, err := c.executeRequest(ctx, fmt.Sprintf("%s/events/%d.json", c.baseURL, matchID))
	if err != nil {
		return nil, errors.Wrapf(err, "fetch events match_id=%d", matchID)
	}
	return raw, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	raw, err := c.executeRequest(ctx, c.baseURL+path)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return errors.Wrap(err, "decode provider payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, errors.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = errors.Wrapf(errTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = errors.Wrapf(errTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = errors.Wrapf(errTransient, "provider status=%d", resp.StatusCode)
			default:
				return nil, errors.Newf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = errors.New("provider request failed")
	}
	c.logger.Warn("provider request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
