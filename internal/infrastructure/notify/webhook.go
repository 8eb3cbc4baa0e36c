package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"fantasy-war-room/internal/platform/logging"
	"fantasy-war-room/internal/platform/resilience"
)

type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
	Breaker resilience.CircuitBreakerConfig
}

func DefaultConfig() Config {
	return Config{
		Timeout: 10 * time.Second,
		Breaker: resilience.DefaultCircuitBreakerConfig(),
	}
}

// Event is pushed to the configured webhook whenever the board changes.
type Event struct {
	Type        string    `json:"type"`
	DraftID     string    `json:"draftId"`
	PickCount   int       `json:"pickCount"`
	LastPick    string    `json:"lastPick,omitempty"`
	OnClockSlot int       `json:"onClockSlot,omitempty"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

// WebhookPublisher posts board events to an external webhook. A nil publisher
// or an empty URL disables delivery, so callers never need to branch.
type WebhookPublisher struct {
	url        string
	token      string
	httpClient *http.Client
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
}

func NewWebhookPublisher(cfg Config, logger *logging.Logger) *WebhookPublisher {
	if cfg.URL == "" {
		return nil
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	p := &WebhookPublisher{
		url:        cfg.URL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
	if cfg.Breaker.Enabled {
		p.breaker = resilience.NewCircuitBreaker(cfg.Breaker)
	}
	return p
}

// Publish delivers one event. Failures are logged and returned, never fatal
// to the refresh that produced the event.
func (p *WebhookPublisher) Publish(ctx context.Context, event Event) error {
	if p == nil {
		return nil
	}

	if p.breaker != nil {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "webhook skipped, breaker open", "type", event.Type)
			return err
		}
	}

	err := p.deliver(ctx, event)
	if p.breaker != nil {
		if err != nil {
			p.breaker.RecordFailure()
		} else {
			p.breaker.RecordSuccess()
		}
	}
	if err != nil {
		p.logger.ErrorContext(ctx, "webhook delivery failed", "type", event.Type, "error", err)
		return err
	}

	p.logger.DebugContext(ctx, "webhook delivered", "type", event.Type, "picks", event.PickCount)
	return nil
}

func (p *WebhookPublisher) deliver(ctx context.Context, event Event) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(event); err != nil {
		return errors.Wrap(err, "encode webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(buf.B))
	if err != nil {
		return errors.Wrap(err, "build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
