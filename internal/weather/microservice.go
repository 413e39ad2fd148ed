package weather

import (
	"context"
	"encoding/json"
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
	// MicroserviceBaseURL -- default weather microservice base URL.
	MicroserviceBaseURL = "https://weather-microservice.onrender.com"
	// ProviderName labels weather errors and metrics.
	ProviderName = "weather"
)

// MicroserviceProvider fetches weather descriptions from the weather microservice
// (GET /weather?latitude=..&longitude=..).
type MicroserviceProvider struct {
	client  HTTPClient
	baseURL string
	log     *slog.Logger
	limiter *rate.Limiter
}

type weatherResponse struct {
	Description *string `json:"weather_description"`
}

// NewMicroserviceProvider creates a weather provider with its own HTTP client.
func NewMicroserviceProvider(baseURL string, timeout time.Duration, rateLimit int, log *slog.Logger) *MicroserviceProvider {
	limit := rate.Limit(rateLimit)
	if rateLimit <= 0 {
		limit = rate.Inf
	}

	return &MicroserviceProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		log:     log,
		limiter: rate.NewLimiter(limit, max(rateLimit, 1)),
	}
}

// NewMicroserviceProviderWithClient allows injecting custom HTTP client.
func NewMicroserviceProviderWithClient(
	client HTTPClient,
	baseURL string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *MicroserviceProvider {
	return &MicroserviceProvider{
		client:  client,
		baseURL: baseURL,
		log:     log,
		limiter: limiter,
	}
}

// Describe returns the weather description for (lat, lon).
func (mp *MicroserviceProvider) Describe(ctx context.Context, lat, lon float64) (string, error) {
	if err := mp.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	reqURL, err := url.JoinPath(mp.baseURL, "weather")
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	reqURL += "?" + query.Encode()

	mp.log.DebugContext(ctx, "Weather request URL", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := mp.client.Do(req)
	if err != nil {
		return "", &models.UpstreamError{Provider: ProviderName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		mp.log.ErrorContext(ctx, "Weather API error", "status", resp.StatusCode, "body", string(body))
		return "", &models.UpstreamError{Provider: ProviderName, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &models.UpstreamError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	mp.log.DebugContext(ctx, "Weather raw response", "body", string(body))

	var result weatherResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to decode weather response: %w", models.ErrMalformedResponse, err)
	}

	if result.Description == nil {
		return "", fmt.Errorf("%w: weather_description is missing", models.ErrMalformedResponse)
	}

	return *result.Description, nil
}
