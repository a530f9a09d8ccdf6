// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chamapro",
		Name:      "gateway_requests_total",
		Help:      "M-Pesa gateway requests by operation and outcome.",
	}, []string{"operation", "outcome"})

	GatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chamapro",
		Name:      "gateway_request_duration_seconds",
		Help:      "Latency of M-Pesa gateway requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	Callbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chamapro",
		Name:      "callbacks_total",
		Help:      "Payment callbacks processed, by result.",
	}, []string{"result"})

	PenaltiesAssessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chamapro",
		Name:      "penalties_assessed_total",
		Help:      "Late-contribution penalties created.",
	})

	LoanDisbursements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chamapro",
		Name:      "loan_disbursements_total",
		Help:      "Loan disbursement attempts by outcome.",
	}, []string{"outcome"})
)

// Callback results.
const (
	CallbackSuccess   = "success"
	CallbackFailed    = "failed"
	CallbackUnknown   = "unknown"
	CallbackDuplicate = "duplicate"
	CallbackError     = "error"
	CallbackB2C       = "b2c"
)
