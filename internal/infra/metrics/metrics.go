// Package metrics keeps the marketplace counters. The CLI runs as a short
// batch process, so the registry is flushed to a node_exporter textfile at exit
// instead of being scraped.
package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "campuscart"

// Metrics holds the counters of one process.
type Metrics struct {
	registry *prometheus.Registry

	LoginsTotal            *prometheus.CounterVec
	CartMutationsTotal     *prometheus.CounterVec
	CheckoutsTotal         prometheus.Counter
	CheckoutRevenueTotal   prometheus.Counter
	ListingsTotal          prometheus.Counter
	ModerationActionsTotal *prometheus.CounterVec
}

// New creates the counters on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Login attempts by result",
			},
			[]string{"result"}, // accepted|rejected
		),
		CartMutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_mutations_total",
				Help:      "Cart changes by operation",
			},
			[]string{"op"},
		),
		CheckoutsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkouts_total",
				Help:      "Completed checkouts",
			},
		),
		CheckoutRevenueTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkout_revenue_total",
				Help:      "Sum of checkout totals, tax included",
			},
		),
		ListingsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "listings_total",
				Help:      "Items listed for sale",
			},
		),
		ModerationActionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "moderation_actions_total",
				Help:      "Admin moderation actions by kind",
			},
			[]string{"action"}, // block|unblock|delete_listing
		),
	}

	m.registry.MustRegister(
		m.LoginsTotal,
		m.CartMutationsTotal,
		m.CheckoutsTotal,
		m.CheckoutRevenueTotal,
		m.ListingsTotal,
		m.ModerationActionsTotal,
	)

	return m
}

// Registry exposes the registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "write metrics textfile %s", path)
	}

	return nil
}
