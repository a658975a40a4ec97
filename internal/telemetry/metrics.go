package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PaymentsInitiated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boost_payments_initiated_total",
		Help: "Payment initiations by outcome (success, invalid_phone, gateway_error, error).",
	}, []string{"outcome"})

	CallbacksReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boost_payment_callbacks_total",
		Help: "PayHero callbacks by outcome (paid, unknown_reference, failed).",
	}, []string{"outcome"})
)
