package weather_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/UnknownOlympus/overhead/internal/models"
	"github.com/UnknownOlympus/overhead/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func respond(status int, body string) (*http.Response, error) {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}, nil
}

func TestMicroserviceProvider_Describe(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	defaultRL := rate.NewLimiter(rate.Inf, 0)

	t.Run("successful lookup", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Equal(t, "/weather", req.URL.Path)
				assert.Equal(t, "33.6541267", req.URL.Query().Get("latitude"))
				assert.Equal(t, "-84.4171372", req.URL.Query().Get("longitude"))

				return respond(http.StatusOK, `{"weather_description": "scattered clouds", "temperature": 28.1}`)
			},
		}

		provider := weather.NewMicroserviceProviderWithClient(mockClient, weather.MicroserviceBaseURL, defaultRL, logger)
		desc, err := provider.Describe(ctx, 33.6541267, -84.4171372)

		require.NoError(t, err)
		assert.Equal(t, "scattered clouds", desc)
	})

	t.Run("missing description", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `{"temperature": 28.1}`)
			},
		}

		provider := weather.NewMicroserviceProviderWithClient(mockClient, weather.MicroserviceBaseURL, defaultRL, logger)
		desc, err := provider.Describe(ctx, 1, 2)

		require.ErrorIs(t, err, models.ErrMalformedResponse)
		assert.Empty(t, desc)
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `<html>`)
			},
		}

		provider := weather.NewMicroserviceProviderWithClient(mockClient, weather.MicroserviceBaseURL, defaultRL, logger)
		_, err := provider.Describe(ctx, 1, 2)

		require.ErrorIs(t, err, models.ErrMalformedResponse)
		assert.Contains(t, err.Error(), "failed to decode weather response")
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusServiceUnavailable, `upstream sleeping`)
			},
		}

		provider := weather.NewMicroserviceProviderWithClient(mockClient, weather.MicroserviceBaseURL, defaultRL, logger)
		_, err := provider.Describe(ctx, 1, 2)

		var upstreamErr *models.UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, weather.ProviderName, upstreamErr.Provider)
		assert.Equal(t, http.StatusServiceUnavailable, upstreamErr.StatusCode)
	})

	t.Run("HTTP client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := weather.NewMicroserviceProviderWithClient(mockClient, weather.MicroserviceBaseURL, defaultRL, logger)
		_, err := provider.Describe(ctx, 1, 2)

		var upstreamErr *models.UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("context cancellation", func(t *testing.T) {
		newCtx, cancel := context.WithCancel(context.Background())
		cancel()

		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				return nil, req.Context().Err()
			},
		}

		provider := weather.NewMicroserviceProviderWithClient(mockClient, weather.MicroserviceBaseURL, defaultRL, logger)
		_, err := provider.Describe(newCtx, 1, 2)

		require.ErrorIs(t, err, context.Canceled)
		assert.ErrorContains(t, err, "failed to wait for rate limiter")
	})
}

func TestMicroserviceProvider_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte(`{"weather_description": "late"}`))
	}))
	defer server.Close()

	provider := weather.NewMicroserviceProvider(server.URL, 50*time.Millisecond, 0, slog.Default())
	_, err := provider.Describe(t.Context(), 1, 2)

	var upstreamErr *models.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Zero(t, upstreamErr.StatusCode)
}
