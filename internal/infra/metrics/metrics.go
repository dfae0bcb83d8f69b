// Package metrics holds the prometheus collectors for the storefront.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CheckoutMetrics struct {
	Outcomes   *prometheus.CounterVec
	DurationMS prometheus.Histogram
	AmountDue  prometheus.Histogram
}

func NewCheckoutMetrics() *CheckoutMetrics {
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gamestore",
		Subsystem: "checkout",
		Name:      "total",
		Help:      "Checkout invocations by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gamestore",
		Subsystem: "checkout",
		Name:      "duration_ms",
		Help:      "Checkout transaction latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})
	amount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gamestore",
		Subsystem: "checkout",
		Name:      "amount_cents",
		Help:      "Amount debited per successful checkout, in cents.",
		Buckets:   []float64{500, 1000, 2500, 5000, 10000, 25000, 50000},
	})

	prometheus.MustRegister(outcomes, duration, amount)

	return &CheckoutMetrics{Outcomes: outcomes, DurationMS: duration, AmountDue: amount}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
