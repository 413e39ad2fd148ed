// Package api exposes the nearby-flights aggregation over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/overhead/internal/geo"
	"github.com/UnknownOlympus/overhead/internal/models"
	"github.com/rs/cors"
)

// Error messages returned to API callers.
const (
	MsgMissingCoordinates = "Latitude and longitude are required parameters."
	MsgInvalidCoordinates = "Latitude and longitude must be valid coordinates."
	MsgUpstreamFailure    = "Error fetching flight data."
	MsgMalformedUpstream  = "Invalid response from flight API."
	MsgUpstreamTimeout    = "Flight data request timed out."
	MsgMethodNotAllowed   = "Method not allowed."
	MsgInternal           = "Internal server error."
)

// Aggregator returns weather-enriched flights around a location.
type Aggregator interface {
	Aggregate(ctx context.Context, loc models.Location, radiusMiles float64) ([]models.FlightSummary, error)
}

type errorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
}

// Handler serves the /flights and /healthz routes.
type Handler struct {
	log         *slog.Logger
	aggregator  Aggregator
	radiusMiles float64
}

// NewHandler creates a Handler that searches radiusMiles around the requested point.
func NewHandler(log *slog.Logger, aggregator Aggregator, radiusMiles float64) *Handler {
	return &Handler{log: log, aggregator: aggregator, radiusMiles: radiusMiles}
}

// Register mounts the routes on mux. Cross-origin requests to /flights are allowed
// from allowedOrigins ("*" permits any origin).
func (h *Handler) Register(mux *http.ServeMux, allowedOrigins []string) {
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	})

	mux.Handle("/flights", corsMiddleware.Handler(http.HandlerFunc(h.handleFlights)))
	mux.HandleFunc("GET /healthz", h.handleHealthz)
}

func (h *Handler) handleFlights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
		return
	}

	loc, msg := parseLocation(r)
	if msg != "" {
		h.log.DebugContext(ctx, "Rejected flights request", "query", r.URL.RawQuery, "reason", msg)
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	summaries, err := h.aggregator.Aggregate(ctx, loc, h.radiusMiles)
	if err != nil {
		h.writeAggregateError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseLocation reads lat and lon from the query. It returns a non-empty message
// describing the problem when the parameters are missing or invalid.
func parseLocation(r *http.Request) (models.Location, string) {
	query := r.URL.Query()
	latStr, lonStr := query.Get("lat"), query.Get("lon")
	if latStr == "" || lonStr == "" {
		return models.Location{}, MsgMissingCoordinates
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return models.Location{}, MsgInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return models.Location{}, MsgInvalidCoordinates
	}
	if err = geo.ValidateLocation(lat, lon); err != nil {
		return models.Location{}, MsgInvalidCoordinates
	}

	return models.Location{Latitude: lat, Longitude: lon}, ""
}

func (h *Handler) writeAggregateError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var upstreamErr *models.UpstreamError
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, MsgInvalidCoordinates)
	case ctx.Err() != nil:
		h.log.InfoContext(ctx, "Client went away before flights were aggregated", "error", err)
	case isTimeout(err):
		h.log.ErrorContext(ctx, "Flight aggregation timed out", "error", err)
		writeError(w, http.StatusGatewayTimeout, MsgUpstreamTimeout)
	case errors.As(err, &upstreamErr):
		h.log.ErrorContext(ctx, "Flight provider request failed",
			"provider", upstreamErr.Provider,
			"status", upstreamErr.StatusCode,
			"error", err,
		)
		writeError(w, http.StatusBadGateway, MsgUpstreamFailure)
	case errors.Is(err, models.ErrMalformedResponse):
		h.log.ErrorContext(ctx, "Flight provider returned a malformed response", "error", err)
		writeError(w, http.StatusBadGateway, MsgMalformedUpstream)
	default:
		h.log.ErrorContext(ctx, "Flight aggregation failed", "error", err)
		writeError(w, http.StatusInternalServerError, MsgInternal)
	}
}

// isTimeout reports whether err comes from an upstream call that ran out of time,
// including http.Client timeouts wrapped in *models.UpstreamError.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, StatusCode: status})
}
