package metrics

import "github.com/prometheus/client_golang/prometheus"

// StorefrontMetrics counts business events. A nil receiver is a no-op.
type StorefrontMetrics struct {
	checkouts        prometheus.Counter
	checkoutFailures *prometheus.CounterVec
	registrations    *prometheus.CounterVec
	cartMutations    *prometheus.CounterVec
	seeded           prometheus.Counter
}

func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	checkouts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_checkouts_recorded_total",
		Help: "Checkouts persisted together with their order.",
	})
	checkoutFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkout_failures_total",
		Help: "Checkout submissions that failed, by step.",
	}, []string{"step"})
	registrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_registrations_total",
		Help: "Registration attempts by outcome.",
	}, []string{"outcome"})
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_mutations_total",
		Help: "Cart add and remove operations.",
	}, []string{"op"})
	seeded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_catalog_products_seeded_total",
		Help: "Products inserted by catalog seeding.",
	})
	reg.MustRegister(checkouts, checkoutFailures, registrations, cartMutations, seeded)
	return &StorefrontMetrics{
		checkouts:        checkouts,
		checkoutFailures: checkoutFailures,
		registrations:    registrations,
		cartMutations:    cartMutations,
		seeded:           seeded,
	}
}

func (m *StorefrontMetrics) IncCheckout() {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.Inc()
}

func (m *StorefrontMetrics) IncCheckoutFailure(step string) {
	if m == nil || m.checkoutFailures == nil {
		return
	}
	m.checkoutFailures.WithLabelValues(normalizeLabel(step)).Inc()
}

func (m *StorefrontMetrics) IncRegistration(outcome string) {
	if m == nil || m.registrations == nil {
		return
	}
	m.registrations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

func (m *StorefrontMetrics) AddSeeded(n int) {
	if m == nil || m.seeded == nil || n <= 0 {
		return
	}
	m.seeded.Add(float64(n))
}
