// ABOUTME: Prometheus instruments for the dashboard server.
// ABOUTME: Request counters plus gauges mirroring the latest dashboard.
package server

import (
	"github.com/harperreed/fitlog/internal/tracker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every instrument the server exports.
type Metrics struct {
	// counters
	CounterRequests        *prometheus.CounterVec
	CounterWorkoutsAdded   prometheus.Counter
	CounterWorkoutsDeleted prometheus.Counter
	CounterHandlerPanic    prometheus.Counter

	// gauges
	GaugeWorkouts       prometheus.Gauge
	GaugeStreak         prometheus.Gauge
	GaugeWeeklyProgress *prometheus.GaugeVec

	// histograms
	HistRequestDuration prometheus.Histogram
}

// NewMetrics registers the instruments with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "The total number of handled HTTP requests",
		}, []string{"method", "route", "status"}),
		CounterWorkoutsAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workouts_added_total",
			Help:      "Workouts logged through the API",
		}),
		CounterWorkoutsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workouts_deleted_total",
			Help:      "Workouts deleted through the API",
		}),
		CounterHandlerPanic: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_panics_total",
			Help:      "The total number of recovered handler panics",
		}),
		GaugeWorkouts: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workouts",
			Help:      "Number of stored workouts",
		}),
		GaugeStreak: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "streak_days",
			Help:      "Current consecutive-day workout streak",
		}),
		GaugeWeeklyProgress: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "weekly_goal_percent",
			Help:      "Progress toward this week's goals, 0 to 100",
		}, []string{"goal"}),
		HistRequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time spent serving HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Observe copies the dashboard aggregates into the gauges.
func (m *Metrics) Observe(d *tracker.Dashboard) {
	m.GaugeWorkouts.Set(float64(d.Totals.Count))
	m.GaugeStreak.Set(float64(d.Streak))
	m.GaugeWeeklyProgress.WithLabelValues("time").Set(d.Weekly.Time.Percent)
	m.GaugeWeeklyProgress.WithLabelValues("calories").Set(d.Weekly.Calories.Percent)
}
