package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ripple_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LikeToggles counts like toggles by resulting action.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_like_toggles_total",
		Help: "Total number of like toggles by action",
	}, []string{"action"})

	// CommentsAppended counts comments appended to posts.
	CommentsAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_comments_appended_total",
		Help: "Total number of comments appended",
	})

	// TimelineFanIn records how many candidate authors a timeline read spans.
	TimelineFanIn = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ripple_timeline_fan_in_authors",
		Help:    "Number of authors unioned into a timeline query",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
