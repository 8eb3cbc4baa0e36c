package sheetfeed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"fantasy-war-room/internal/domain/player"
	"fantasy-war-room/internal/platform/logging"
)

type Config struct {
	URL          string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

func DefaultConfig() Config {
	return Config{
		Timeout:      20 * time.Second,
		MaxRetries:   2,
		RetryBackoff: time.Second,
	}
}

// Client downloads the published roster sheet as CSV.
type Client struct {
	url          string
	httpClient   *http.Client
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	defaults := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaults.RetryBackoff
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Client{
		url:          cfg.URL,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		logger:       logger,
	}
}

// FetchRoster downloads and parses the roster sheet.
func (c *Client) FetchRoster(ctx context.Context) ([]player.Record, error) {
	if c.url == "" {
		return nil, errors.New("roster sheet url is required")
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.WarnContext(ctx, "retrying roster sheet download",
				"attempt", attempt,
				"error", lastErr,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryBackoff * time.Duration(attempt)):
			}
		}

		records, err := c.fetchOnce(ctx)
		if err == nil {
			c.logger.DebugContext(ctx, "roster sheet fetched", "players", len(records))
			return records, nil
		}
		lastErr = err
	}

	return nil, errors.Wrap(lastErr, "fetch roster sheet")
}

func (c *Client) fetchOnce(ctx context.Context) ([]player.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster sheet returned status %d", resp.StatusCode)
	}

	return ParseRoster(resp.Body)
}
