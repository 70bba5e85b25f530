package observability_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/quarryworks/lode"
	"github.com/quarryworks/lode/pkg/adapters/memory"
	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsExcavation(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	rig := memory.NewSimRig()
	rig.SetBlock(memory.Vec3{X: 0, Y: 0, Z: -1}, "gold_ore")

	exc, err := lode.New(rig, domain.Forward, lode.WithHooks(metrics.Hooks()))
	require.NoError(t, err)
	require.NoError(t, exc.Run(context.Background()))

	assert.Greater(t, testutil.ToFloat64(metrics.TickCounter(domain.ResultRunning)), 0.0)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TickCounter(domain.ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ExpansionCounter(true)), "one ore cell expanded")
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.StackDepthGauge()), "stack drained at the end")
}

func TestMergeHooks_FansOut(t *testing.T) {
	var first, second int

	merged := observability.MergeHooks(
		domain.LifecycleHooks{OnTick: func(context.Context, *domain.TickEvent) { first++ }},
		domain.LifecycleHooks{OnTick: func(context.Context, *domain.TickEvent) { second++ }},
		domain.LifecycleHooks{}, // nil members are skipped
	)

	merged.OnTick(context.Background(), &domain.TickEvent{Result: domain.ResultRunning})

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}
