package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "smarthotel", Name: "api_requests_total", Help: "Outbound API requests."},
		[]string{"endpoint", "status"},
	)
	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smarthotel", Name: "api_request_duration_seconds",
			Help:    "Outbound API request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "smarthotel", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	WorkflowTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "smarthotel", Name: "workflow_transitions_total", Help: "Booking workflow step transitions."},
		[]string{"from", "to"},
	)
)

// Serve starts the optional metrics listener; an empty addr disables it.
func Serve(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(InitRegistry()))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(APIRequests, APILatency, CacheEvents, WorkflowTransitions)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveAPI(endpoint string, status int, dur time.Duration) {
	APIRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	APILatency.WithLabelValues(endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveTransition(from, to string) {
	WorkflowTransitions.WithLabelValues(from, to).Inc()
}
