package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotelrec", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotelrec", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	RecommendPasses = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotelrec", Name: "recommend_passes_total", Help: "Scoring passes by outcome."},
		[]string{"outcome"}, // outcome: results|empty
	)
	RecommendResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hotelrec", Name: "recommend_results",
			Help:    "Ranked hotels returned per pass.",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
	)
	ChatTurns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotelrec", Name: "chat_turns_total", Help: "Chat turns by resulting stage."},
		[]string{"stage"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotelrec", Name: "cache_events_total", Help: "Session store hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

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
	reg.MustRegister(HTTPRequests, HTTPLatency, RecommendPasses, RecommendResults, ChatTurns, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveRecommendPass(hasResults bool, n int) {
	outcome := "results"
	if !hasResults {
		outcome = "empty"
	}
	RecommendPasses.WithLabelValues(outcome).Inc()
	RecommendResults.Observe(float64(n))
}

func ObserveChatTurn(stage string) { ChatTurns.WithLabelValues(stage).Inc() }

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
