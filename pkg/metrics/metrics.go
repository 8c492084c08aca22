package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Storefront records catalog loads, cart mutations and relay sends.
// A nil *Storefront is valid and records nothing.
type Storefront struct {
	catalogLoads    *prometheus.CounterVec
	catalogProducts prometheus.Gauge
	cartMutations   *prometheus.CounterVec
	cartPersistFail prometheus.Counter
	relaySends      *prometheus.CounterVec
	relayDuration   *prometheus.HistogramVec
}

// New registers the storefront metrics on the provided registerer.
func New(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	catalogLoads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_load_attempts_total",
		Help: "Catalog load attempts by source strategy and outcome.",
	}, []string{"source", "outcome"})
	catalogProducts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_products",
		Help: "Products held by the catalog store after the last load.",
	})
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Persisted cart mutations by kind.",
	}, []string{"kind"})
	cartPersistFail := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Cart writes rejected by the storage backend.",
	})
	relaySends := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_sends_total",
		Help: "Relay submissions by message kind and outcome.",
	}, []string{"kind", "outcome"})
	relayDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "relay_send_duration_seconds",
		Help:    "Duration of relay submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	reg.MustRegister(catalogLoads, catalogProducts, cartMutations, cartPersistFail, relaySends, relayDuration)
	return &Storefront{
		catalogLoads:    catalogLoads,
		catalogProducts: catalogProducts,
		cartMutations:   cartMutations,
		cartPersistFail: cartPersistFail,
		relaySends:      relaySends,
		relayDuration:   relayDuration,
	}
}

// CatalogLoad records one strategy attempt.
func (s *Storefront) CatalogLoad(source string, ok bool) {
	if s == nil || s.catalogLoads == nil {
		return
	}
	s.catalogLoads.WithLabelValues(normalizeLabel(source), outcome(ok)).Inc()
}

// CatalogSize sets the product gauge.
func (s *Storefront) CatalogSize(n int) {
	if s == nil || s.catalogProducts == nil {
		return
	}
	s.catalogProducts.Set(float64(n))
}

// CartMutation counts a persisted mutation.
func (s *Storefront) CartMutation(kind string) {
	if s == nil || s.cartMutations == nil {
		return
	}
	s.cartMutations.WithLabelValues(normalizeLabel(kind)).Inc()
}

// CartPersistFailure counts a rejected write.
func (s *Storefront) CartPersistFailure() {
	if s == nil || s.cartPersistFail == nil {
		return
	}
	s.cartPersistFail.Inc()
}

// RelaySend records one relay submission.
func (s *Storefront) RelaySend(kind string, ok bool, duration time.Duration) {
	if s == nil || s.relaySends == nil {
		return
	}
	kind = normalizeLabel(kind)
	s.relaySends.WithLabelValues(kind, outcome(ok)).Inc()
	s.relayDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
