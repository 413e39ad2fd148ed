package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/overhead/internal/flights"
	"github.com/UnknownOlympus/overhead/internal/geo"
	"github.com/UnknownOlympus/overhead/internal/metrics"
	"github.com/UnknownOlympus/overhead/internal/models"
	"github.com/UnknownOlympus/overhead/internal/weather"
)

// FlightService aggregates nearby flights with weather conditions.
// Weather is looked up at a single reference coordinate shared by every flight,
// not at the flight's own position.
type FlightService struct {
	log        *slog.Logger     // Logger for logging service activities
	flights    flights.Provider // Flight-search provider
	weather    weather.Provider // Weather provider used for enrichment
	metrics    *metrics.Metrics // Metrics for tracking service performance
	numWorkers int              // Number of concurrent weather lookups
	reference  models.Location  // Coordinate used for every weather lookup
}

// NewFlightService creates a new instance of FlightService.
func NewFlightService(
	log *slog.Logger,
	flightProvider flights.Provider,
	weatherProvider weather.Provider,
	metrics *metrics.Metrics,
	numWorkers int,
	reference models.Location,
) *FlightService {
	return &FlightService{
		log:        log,
		flights:    flightProvider,
		weather:    weatherProvider,
		metrics:    metrics,
		numWorkers: numWorkers,
		reference:  reference,
	}
}

// Aggregate returns the airborne flights within radiusMiles of loc, each enriched with weather.
//
// A failed flight search fails the whole aggregation. A failed weather lookup only marks the
// affected summary. The result keeps the provider's order. If ctx is canceled before
// enrichment completes, outstanding lookups are abandoned and ctx's error is returned.
func (fs *FlightService) Aggregate(
	ctx context.Context,
	loc models.Location,
	radiusMiles float64,
) ([]models.FlightSummary, error) {
	box, err := geo.ComputeBoundingBox(loc.Latitude, loc.Longitude, radiusMiles)
	if err != nil {
		fs.metrics.Aggregations.WithLabelValues("invalid").Inc()
		return nil, err
	}

	fs.log.DebugContext(ctx, "Searching flights", "box", box, "radius_miles", radiusMiles)

	startTime := time.Now()
	rawFlights, err := fs.flights.SearchFlights(ctx, box)
	fs.metrics.RequestSeconds.WithLabelValues(flights.ProviderName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		fs.metrics.APIErrors.WithLabelValues(flights.ProviderName).Inc()
		fs.metrics.Aggregations.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("failed to search flights: %w", err)
	}

	summaries := make([]models.FlightSummary, len(rawFlights))
	for i, flight := range rawFlights {
		summaries[i] = models.ProjectFlight(flight)
	}

	if len(summaries) > 0 {
		fs.enrich(ctx, summaries)
	}

	if err = ctx.Err(); err != nil {
		fs.metrics.Aggregations.WithLabelValues("canceled").Inc()
		return nil, fmt.Errorf("aggregation aborted: %w", err)
	}

	fs.metrics.Aggregations.WithLabelValues("success").Inc()
	fs.log.InfoContext(ctx, "Flights aggregated", "count", len(summaries))

	return summaries, nil
}

// enrich starts a worker pool that fills in weather for every summary and waits for it to finish.
// Each worker writes only to the index it received, so order is preserved.
func (fs *FlightService) enrich(ctx context.Context, summaries []models.FlightSummary) {
	numWorkers := max(min(fs.numWorkers, len(summaries)), 1)

	jobs := make(chan int, len(summaries))
	var wgr sync.WaitGroup

	for i := 1; i <= numWorkers; i++ {
		wgr.Add(1)
		go fs.worker(ctx, i, &wgr, jobs, summaries)
	}

	for idx := range summaries {
		jobs <- idx
	}
	close(jobs)

	wgr.Wait()
}

func (fs *FlightService) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	jobs <-chan int,
	summaries []models.FlightSummary,
) {
	defer wg.Done()
	for job := range jobs {
		// The caller is gone; drain the queue without calling the provider.
		if ctx.Err() != nil {
			continue
		}

		fs.metrics.ActiveWorkers.Inc()

		startTime := time.Now()
		description, err := fs.weather.Describe(ctx, fs.reference.Latitude, fs.reference.Longitude)
		fs.metrics.RequestSeconds.WithLabelValues(weather.ProviderName).Observe(time.Since(startTime).Seconds())

		switch {
		case err != nil && ctx.Err() != nil:
			// Aborted by the caller, not a provider failure.
			fs.log.DebugContext(ctx, "Weather lookup abandoned",
				"worker", idx,
				"flight", summaries[job].Ident,
				"error", err,
			)
		case err != nil:
			fs.log.ErrorContext(ctx, "Failed to fetch weather",
				"worker", idx,
				"flight", summaries[job].Ident,
				"error", err,
			)
			fs.metrics.APIErrors.WithLabelValues(weather.ProviderName).Inc()
			fs.metrics.EnrichmentFailures.Inc()
			summaries[job].MarkWeatherFailure(err)
		default:
			summaries[job].SetWeather(description)
		}

		fs.metrics.ActiveWorkers.Dec()
	}
}
