package weather

import (
	"context"
	"net/http"
)

// Provider returns a short textual description of current conditions at a coordinate.
type Provider interface {
	Describe(ctx context.Context, lat, lon float64) (string, error)
}

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
