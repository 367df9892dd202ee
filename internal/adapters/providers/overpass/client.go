package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/healthconnect/navigator-api/internal/domain/providers"
	apperrors "github.com/healthconnect/navigator-api/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// Client fetches healthcare POIs from an Overpass API endpoint. It implements
// providers.POISource. Requests go through a circuit breaker so a dead
// endpoint fails fast instead of holding every search for the full timeout.
type Client struct {
	endpoint   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a new Overpass client
func NewClient(endpoint string, timeout time.Duration) *Client {
	return NewClientWithHTTP(endpoint, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP allows overriding the HTTP client (used for tests)
func NewClientWithHTTP(endpoint string, httpClient *http.Client) *Client {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = "https://overpass-api.de/api/interpreter"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "overpass",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		breaker:    breaker,
	}
}

type overpassResponse struct {
	Elements []providers.POIElement `json:"elements"`
}

// FetchHealthcarePOIs runs a single spatial query against the Overpass
// endpoint and returns the raw elements. Cancellation of ctx cuts the network
// call short; no partial results are returned on failure.
func (c *Client) FetchHealthcarePOIs(ctx context.Context, lat, lon float64, radiusMeters int) ([]providers.POIElement, error) {
	query, err := BuildQuery(lat, lon, radiusMeters)
	if err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, query)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, apperrors.NewUnavailableError("facility data source is temporarily unavailable", err)
		}
		if ctx.Err() != nil {
			return nil, apperrors.NewUnavailableError("facility data source timed out", err)
		}
		return nil, apperrors.NewUnavailableError("facility data source request failed", err)
	}

	return result.([]providers.POIElement), nil
}

func (c *Client) post(ctx context.Context, query string) ([]providers.POIElement, error) {
	form := url.Values{"data": []string{query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("overpass returned status %d", resp.StatusCode)
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	return payload.Elements, nil
}
