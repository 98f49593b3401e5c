package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dex_wallet"

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// SessionMode is 1 for the active session mode and 0 for the others.
	SessionMode = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "mode",
		Help:      "Current session mode (uninitialized, words, address).",
	}, []string{"mode"})

	// SessionOperations counts login, watch, logout and restore attempts.
	SessionOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "operations_total",
		Help:      "Session lifecycle operations by operation and result.",
	}, []string{"operation", "result"})

	// KitSyncs counts kit sync rounds.
	KitSyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "kit",
		Name:      "syncs_total",
		Help:      "Kit sync rounds by result.",
	}, []string{"result"})

	// KitBlockHeight is the last block height seen by the active kit.
	KitBlockHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "kit",
		Name:      "block_height",
		Help:      "Latest block height seen by the active kit.",
	})
)

// SetSessionMode marks mode as the active one among modes.
func SetSessionMode(mode string, modes ...string) {
	for _, m := range modes {
		value := 0.0
		if m == mode {
			value = 1
		}
		SessionMode.WithLabelValues(m).Set(value)
	}
}

// ObserveOperation records the outcome of a session operation.
func ObserveOperation(operation string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}

	SessionOperations.WithLabelValues(operation, result).Inc()
}
