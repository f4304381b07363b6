// Package metrics exposes Prometheus counters for the reservation engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "edurooms"

var (
	once sync.Once

	reservationTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_transitions_total",
			Help:      "Reservation lifecycle transitions by type.",
		},
		[]string{"transition"},
	)

	reservationRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_rejections_total",
			Help:      "Rejected booking attempts by reason.",
		},
		[]string{"reason"},
	)

	holidayFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "holiday_feed_fetches_total",
			Help:      "Remote holiday feed fetches by outcome.",
		},
		[]string{"outcome"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)
)

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(reservationTransitions, reservationRejections, holidayFetches, httpRequests)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func IncReservationTransition(transition string) {
	reservationTransitions.WithLabelValues(transition).Inc()
}

func AddReservationTransitions(transition string, count int64) {
	if count > 0 {
		reservationTransitions.WithLabelValues(transition).Add(float64(count))
	}
}

func IncReservationRejection(reason string) {
	reservationRejections.WithLabelValues(reason).Inc()
}

func IncHolidayFetch(outcome string) {
	holidayFetches.WithLabelValues(outcome).Inc()
}

func IncHTTPRequest(method, route, status string) {
	httpRequests.WithLabelValues(method, route, status).Inc()
}
