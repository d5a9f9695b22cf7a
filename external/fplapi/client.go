package fplapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/fpl-insights/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insights/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insights/internal/domain/live"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/domain/squad"
	"github.com/riskibarqy/fpl-insights/internal/domain/team"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/riskibarqy/fpl-insights/internal/platform/resilience"
	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

const (
	defaultBaseURL      = "https://fantasy.premierleague.com/api"
	defaultUserAgent    = "fpl-insights/1.0"
	defaultRetryBackoff = time.Second
	maxResponseBytes    = 6 << 20
)

var (
	errFPLTransient = crerr.New("fpl api transient failure")
	errFPLNotFound  = crerr.New("fpl api resource not found")
)

// PayloadCache stores raw upstream bodies between requests, keyed by path. *cache.RedisPayloadCache
// satisfies it.
type PayloadCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	PayloadCache   PayloadCache
	PayloadTTL     time.Duration
}

// Client reads the public Fantasy Premier League API. It implements usecase.SnapshotSource and
// squad.Repository.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.Breaker
	flight       singleflight.Group
	payloads     PayloadCache
	payloadTTL   time.Duration
}

var (
	_ usecase.SnapshotSource = (*Client)(nil)
	_ usecase.PayloadPurger  = (*Client)(nil)
	_ squad.Repository       = (*Client)(nil)
)

func NewClient(cfg ClientConfig) *Client {
	logger := logging.OrDefault(cfg.Logger)

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		userAgent:    userAgent,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger,
		breaker:      resilience.NewBreaker("fpl-api", cfg.CircuitBreaker, logger),
		payloads:     cfg.PayloadCache,
		payloadTTL:   cfg.PayloadTTL,
	}
}

func (c *Client) FetchBootstrap(ctx context.Context) (usecase.ExternalBootstrap, error) {
	var envelope bootstrapEnvelope
	if err := c.doJSON(ctx, "/bootstrap-static/", &envelope, false); err != nil {
		return usecase.ExternalBootstrap{}, fmt.Errorf("fetch bootstrap: %w", err)
	}

	out := usecase.ExternalBootstrap{
		Players:   make([]player.Record, 0, len(envelope.Elements)),
		Teams:     make([]team.Team, 0, len(envelope.Teams)),
		Gameweeks: make([]gameweek.Gameweek, 0, len(envelope.Events)),
	}
	for _, item := range envelope.Elements {
		out.Players = append(out.Players, item.toRecord())
	}
	for _, item := range envelope.Teams {
		out.Teams = append(out.Teams, item.toDomain())
	}
	for _, item := range envelope.Events {
		out.Gameweeks = append(out.Gameweeks, item.toDomain())
	}
	return out, nil
}

// FetchFixtures returns every fixture of the season. Fixtures without an assigned gameweek are dropped.
func (c *Client) FetchFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	var items []fixturePayload
	if err := c.doJSON(ctx, "/fixtures/", &items, false); err != nil {
		return nil, fmt.Errorf("fetch fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		if item.Event == nil || *item.Event <= 0 {
			continue
		}
		out = append(out, item.toDomain())
	}
	return out, nil
}

func (c *Client) FetchLive(ctx context.Context, gw int) ([]live.ElementStats, error) {
	if gw <= 0 {
		return nil, fmt.Errorf("%w: gameweek must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope liveEnvelope
	if err := c.doJSON(ctx, "/event/"+strconv.Itoa(gw)+"/live/", &envelope, false); err != nil {
		if stderrors.Is(err, errFPLNotFound) {
			return []live.ElementStats{}, nil
		}
		return nil, fmt.Errorf("fetch live gameweek=%d: %w", gw, err)
	}

	out := make([]live.ElementStats, 0, len(envelope.Elements))
	for _, item := range envelope.Elements {
		if item.ID <= 0 {
			continue
		}
		out = append(out, item.toDomain(gw))
	}
	return out, nil
}

// GetEntry loads the picks of a manager for one gameweek. An unknown entry or a gameweek the
// entry did not play reports found=false.
func (c *Client) GetEntry(ctx context.Context, entryID, gw int) (squad.Entry, bool, error) {
	if entryID <= 0 || gw <= 0 {
		return squad.Entry{}, false, fmt.Errorf("%w: entry id and gameweek must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope picksEnvelope
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gw)
	if err := c.doJSON(ctx, path, &envelope, true); err != nil {
		if stderrors.Is(err, errFPLNotFound) {
			return squad.Entry{}, false, nil
		}
		return squad.Entry{}, false, fmt.Errorf("fetch picks entry=%d gameweek=%d: %w", entryID, gw, err)
	}
	return envelope.toDomain(entryID, gw), true, nil
}

// PurgePayloadCache drops every cached upstream payload.
func (c *Client) PurgePayloadCache(ctx context.Context) (int, error) {
	if c.payloads == nil {
		return 0, nil
	}
	removed, err := c.payloads.DeletePrefix(ctx, "/")
	if err != nil {
		return removed, fmt.Errorf("purge fpl payload cache: %w", err)
	}
	return removed, nil
}

// doJSON decodes path into target. Snapshot endpoints pass cacheable=false so every sync reads
// upstream.
func (c *Client) doJSON(ctx context.Context, path string, target any, cacheable bool) error {
	raw, err := c.fetch(ctx, path, cacheable)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode fpl payload path=%s: %w", path, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path string, cacheable bool) ([]byte, error) {
	if cacheable {
		if raw, ok := c.cachedPayload(ctx, path); ok {
			return raw, nil
		}
	}

	out, err, _ := c.flight.Do(path, func() (any, error) {
		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, c.baseURL+path)
			return reqErr
		}, isCircuitFailure)
		if stderrors.Is(execErr, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "fpl api circuit breaker rejected request", "path", path, "state", c.breaker.State())
			return nil, fmt.Errorf("%w: fpl api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		if execErr != nil {
			if isCircuitFailure(execErr) {
				return nil, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, execErr)
			}
			return nil, execErr
		}
		if cacheable {
			c.storePayload(ctx, path, raw)
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("user-agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFPLTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFPLTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, fmt.Errorf("%w: url=%s", errFPLNotFound, fullURL)
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: status=%d body=%s", errFPLTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("fpl api status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("fpl api request failed")
	}
	c.logger.WarnContext(ctx, "fpl api request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) cachedPayload(ctx context.Context, path string) ([]byte, bool) {
	if c.payloads == nil || c.payloadTTL <= 0 {
		return nil, false
	}
	raw, err := c.payloads.Get(ctx, path)
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}

func (c *Client) storePayload(ctx context.Context, path string, raw []byte) {
	if c.payloads == nil || c.payloadTTL <= 0 {
		return
	}
	if err := c.payloads.Set(ctx, path, raw, c.payloadTTL); err != nil {
		c.logger.WarnContext(ctx, "store fpl payload in cache failed", "path", path, "error", err)
	}
}

func isCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errFPLTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
