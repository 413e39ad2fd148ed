package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/overhead/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs every request and counts it by response status.
func RequestLogger(log *slog.Logger, appMetrics *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)

		appMetrics.HTTPRequests.WithLabelValues(strconv.Itoa(sr.status)).Inc()
		log.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sr.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// NewServer wraps handler with request logging. writeTimeout must cover a full aggregation.
func NewServer(
	port int,
	handler http.Handler,
	writeTimeout time.Duration,
	log *slog.Logger,
	appMetrics *metrics.Metrics,
) *http.Server {
	const readTimeout = 5 * time.Second

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      RequestLogger(log, appMetrics, handler),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}
