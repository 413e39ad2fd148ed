package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/overhead/internal/models"
	"golang.org/x/time/rate"
)

const (
	// AeroAPIBaseURL -- FlightAware AeroAPI base URL.
	AeroAPIBaseURL = "https://aeroapi.flightaware.com/aeroapi/"
	// ProviderName labels AeroAPI errors and metrics.
	ProviderName = "aeroapi"

	// PageSize is the number of flights requested. Only the first page is ever fetched,
	// so a search returns at most PageSize flights.
	PageSize = 10

	apiKeyHeader = "x-apikey"
)

// ErrMissingFlights is returned when a successful AeroAPI response has no "flights" key.
var ErrMissingFlights = errors.New("aeroapi response has no flights key")

// AeroAPIProvider implements the Provider interface using FlightAware AeroAPI advanced search.
type AeroAPIProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the AeroAPI
	apiKey  string        // API key sent in the x-apikey header
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// AeroAPI search response. Flights is a pointer so that a missing key can be told
// apart from an empty result.
type searchResponse struct {
	Flights *[]models.RawFlight `json:"flights"`
}

// NewAeroAPIProvider creates a new AeroAPI flight-search provider.
func NewAeroAPIProvider(
	baseURL string,
	apiKey string,
	timeout time.Duration,
	rateLimit int,
	log *slog.Logger,
) *AeroAPIProvider {
	limit := rate.Limit(rateLimit)
	if rateLimit <= 0 {
		limit = rate.Inf
	}

	return &AeroAPIProvider{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: rate.NewLimiter(limit, max(rateLimit, 1)),
	}
}

// NewAeroAPIProviderWithClient allows injecting custom HTTP client.
func NewAeroAPIProviderWithClient(
	client HTTPClient,
	baseURL string,
	apiKey string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *AeroAPIProvider {
	return &AeroAPIProvider{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// BuildQuery renders the AeroAPI advanced-search filter selecting airborne flights in box.
func BuildQuery(box models.BoundingBox) string {
	return fmt.Sprintf("{range lat %s %s} {range lon %s %s} {true inAir}",
		formatCoord(box.LatMin), formatCoord(box.LatMax),
		formatCoord(box.LonMin), formatCoord(box.LonMax),
	)
}

// SearchFlights returns the first page of airborne flights inside box.
func (ap *AeroAPIProvider) SearchFlights(ctx context.Context, box models.BoundingBox) ([]models.RawFlight, error) {
	if err := ap.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	reqURL, err := url.JoinPath(ap.baseURL, "flights", "search", "advanced")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := url.Values{}
	query.Set("query", BuildQuery(box))
	query.Set("howMany", strconv.Itoa(PageSize))
	query.Set("offset", "0")
	reqURL += "?" + query.Encode()

	ap.log.DebugContext(ctx, "AeroAPI request URL", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, ap.apiKey)

	resp, err := ap.client.Do(req)
	if err != nil {
		return nil, &models.UpstreamError{Provider: ProviderName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.UpstreamError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		ap.log.ErrorContext(ctx, "AeroAPI error", "status", resp.StatusCode, "body", string(body))
		return nil, &models.UpstreamError{Provider: ProviderName, StatusCode: resp.StatusCode}
	}

	ap.log.DebugContext(ctx, "AeroAPI raw response", "body", string(body))

	var result searchResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode aeroapi response: %w", models.ErrMalformedResponse, err)
	}

	if result.Flights == nil {
		ap.log.ErrorContext(ctx, "AeroAPI response without flights", "body", string(body))
		return nil, &models.UpstreamError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Err:        ErrMissingFlights,
		}
	}

	flights := *result.Flights
	ap.log.DebugContext(ctx, "AeroAPI found flights", "count", len(flights), "query", query.Get("query"))

	return flights, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
