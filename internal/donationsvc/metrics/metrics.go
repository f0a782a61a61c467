package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "donation"

var (
	DonationsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "donations_created_total",
		Help:      "Donations persisted, by payment method.",
	}, []string{"method"})

	PaymentVerifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_verifications_total",
		Help:      "Provider signature checks, by result.",
	}, []string{"result"})

	PaymentOrders = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_orders_total",
		Help:      "Provider order creation attempts, by result.",
	}, []string{"result"})
)

// Register adds the collectors to reg. Calling it twice with the same
// registry returns an AlreadyRegisteredError.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{DonationsCreated, PaymentVerifications, PaymentOrders} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
