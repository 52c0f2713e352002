package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRegisterOnFreshRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { Register(reg) })
	assert.Panics(t, func() { Register(reg) })
}

func TestObserveToggle(t *testing.T) {
	before := counterValue(t, MilestonesAwarded.WithLabelValues("7"))
	beforeFreezes := counterValue(t, FreezesEarned)

	ObserveToggle(true, []int{7}, 1)

	assert.Equal(t, before+1, counterValue(t, MilestonesAwarded.WithLabelValues("7")))
	assert.Equal(t, beforeFreezes+1, counterValue(t, FreezesEarned))
}
