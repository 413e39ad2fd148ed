package flights

import (
	"context"
	"net/http"

	"github.com/UnknownOlympus/overhead/internal/models"
)

// Provider is an interface that defines a method for searching airborne flights.
// SearchFlights takes a context and a bounding box and returns the flights currently
// in the air inside it, in provider order.
type Provider interface {
	SearchFlights(ctx context.Context, box models.BoundingBox) ([]models.RawFlight, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
