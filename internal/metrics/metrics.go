// Package metrics holds the Prometheus collectors of the wallet.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "keypair_wallet"

var (
	// Transfers counts transfer attempts by terminal result (error kind or outcome)
	Transfers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transfers_total",
		Help:      "Transfer attempts by result.",
	}, []string{"result"})

	// Airdrops counts faucet requests by terminal result
	Airdrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "airdrops_total",
		Help:      "Faucet requests by result.",
	}, []string{"result"})

	// BalanceRefreshes counts balance lookups by result
	BalanceRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "balance_refreshes_total",
		Help:      "Balance refreshes by result.",
	}, []string{"result"})

	// ConfirmationSeconds observes how long confirmations took to resolve
	ConfirmationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "confirmation_duration_seconds",
		Help:      "Time from submission to a terminal confirmation outcome.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	})
)
