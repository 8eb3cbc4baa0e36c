package sleeper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"fantasy-war-room/internal/domain/draft"
	"fantasy-war-room/internal/domain/identity"
	"fantasy-war-room/internal/platform/logging"
	"fantasy-war-room/internal/platform/resilience"
)

const DefaultBaseURL = "https://api.sleeper.app"

// errTransient marks failures worth retrying: network errors, 429 and 5xx.
var errTransient = errors.New("transient sleeper error")

func IsTransient(err error) bool {
	return errors.Is(err, errTransient)
}

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	RequestsPerSec float64
	Breaker        resilience.CircuitBreakerConfig
}

func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		Timeout:        15 * time.Second,
		MaxRetries:     2,
		RetryBackoff:   500 * time.Millisecond,
		RequestsPerSec: 5,
		Breaker:        resilience.DefaultCircuitBreakerConfig(),
	}
}

// Client talks to the Sleeper public API. Calls are rate limited, retried on
// transient failures, and guarded by a circuit breaker.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	maxRetries   int
	retryBackoff time.Duration
	limiter      *rate.Limiter
	breaker      *resilience.CircuitBreaker
	logger       *logging.Logger
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = DefaultConfig().RetryBackoff
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = DefaultConfig().RequestsPerSec
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	c := &Client{
		baseURL:      cfg.BaseURL,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		limiter:      rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), int(cfg.RequestsPerSec)+1),
		logger:       logger,
	}
	if cfg.Breaker.Enabled {
		c.breaker = resilience.NewCircuitBreaker(cfg.Breaker)
	}
	return c
}

// FetchCatalog downloads the full NFL player map and flattens it into
// catalog entries, sorted by player ID.
func (c *Client) FetchCatalog(ctx context.Context) ([]identity.Entry, error) {
	var players map[string]playerRecord
	if err := c.getJSON(ctx, "/v1/players/nfl", &players); err != nil {
		return nil, errors.Wrap(err, "fetch player catalog")
	}

	entries := catalogEntries(players)
	c.logger.DebugContext(ctx, "sleeper catalog fetched",
		"raw_players", len(players),
		"entries", len(entries),
	)
	return entries, nil
}

// FetchPicks downloads the picks made so far in the given draft.
func (c *Client) FetchPicks(ctx context.Context, draftID string) ([]draft.Pick, error) {
	if draftID == "" {
		return nil, errors.New("draft id is required")
	}

	var records []pickRecord
	if err := c.getJSON(ctx, "/v1/draft/"+draftID+"/picks", &records); err != nil {
		return nil, errors.Wrapf(err, "fetch picks for draft %s", draftID)
	}

	return draftPicks(records), nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return err
		}
	}

	body, err := c.executeRequest(ctx, path)
	if c.breaker != nil {
		if err != nil {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "decode %s response", path)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, path string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.retryBackoff * time.Duration(1<<(attempt-1))
			c.logger.WarnContext(ctx, "retrying sleeper request",
				"path", path,
				"attempt", attempt,
				"backoff", backoff.String(),
				"error", lastErr,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.doOnce(ctx, path)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !IsTransient(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Mark(err, errTransient)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "read response"), errTransient)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, errors.Mark(
			fmt.Errorf("sleeper %s returned status %d", path, resp.StatusCode),
			errTransient,
		)
	default:
		return nil, fmt.Errorf("sleeper %s returned status %d", path, resp.StatusCode)
	}
}
