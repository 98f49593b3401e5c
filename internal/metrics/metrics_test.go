package metrics_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github/chapool/dex-wallet/internal/metrics"
)

func TestSetSessionMode(t *testing.T) {
	metrics.SetSessionMode("words", "uninitialized", "words", "address")

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SessionMode.WithLabelValues("words")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.SessionMode.WithLabelValues("address")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.SessionMode.WithLabelValues("uninitialized")), 0)
}

func TestObserveOperation(t *testing.T) {
	before := testutil.ToFloat64(metrics.SessionOperations.WithLabelValues("metrics_test", metrics.ResultFailure))

	metrics.ObserveOperation("metrics_test", errors.New("boom"))
	metrics.ObserveOperation("metrics_test", nil)

	assert.InDelta(t, before+1, testutil.ToFloat64(metrics.SessionOperations.WithLabelValues("metrics_test", metrics.ResultFailure)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SessionOperations.WithLabelValues("metrics_test", metrics.ResultSuccess)), 0)
}
