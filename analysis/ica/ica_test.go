package ica

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cwbudde/algo-ica/analysis/blend"
	"github.com/cwbudde/algo-ica/cell/segment"
	"github.com/cwbudde/algo-ica/cell/series"
	"github.com/cwbudde/algo-ica/cell/table"
	"github.com/cwbudde/algo-ica/config"
	"github.com/cwbudde/algo-ica/internal/testutil"
)

const samples = 1000

// chargeSeries builds an hour-long 1 A charge whose voltage carries a
// shallow plateau feature on top of a linear ramp.
func chargeSeries(t *testing.T, withCurrent bool, flatVoltage bool) *series.Series {
	t.Helper()
	c := testutil.NewChargeCurve(samples, 3600, 3.0, 4.2, 1, 0, 1)
	v := testutil.Add(c.V, testutil.GaussianPeak(samples, 400, 50, 0.02), testutil.GaussianNoise(7, 1e-4, samples))
	if flatVoltage {
		v = testutil.DC(3.7, samples)
	}

	tb := table.New()
	require.NoError(t, tb.AddColumn("Time(s)", c.T))
	require.NoError(t, tb.AddColumn("Voltage(V)", v))
	if withCurrent {
		require.NoError(t, tb.AddColumn("Current(A)", c.I))
	}
	require.NoError(t, tb.AddColumn("Capacity(mAh)", scaled(c.Q, 1000)))

	s, err := series.Construct(tb)
	require.NoError(t, err)
	return s
}

func scaled(x []float64, k float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v * k
	}
	return out
}

func TestRunWritesAllChannels(t *testing.T) {
	s := chargeSeries(t, true, false)
	p, err := New(nil)
	require.NoError(t, err)

	res, err := p.Run(context.Background(), s)
	require.NoError(t, err)

	assert.InDelta(t, 3.604, res.DT, 1e-12)
	assert.Equal(t, series.Charge, res.Direction)
	assert.Equal(t, 16, res.SlopeWindow)
	assert.Empty(t, res.Conditions)
	assert.Less(t, res.ValidStart, res.ValidEnd)

	for _, name := range []string{
		DVdt, DQdt, DVdtDenoised, DQdtDenoised,
		DVdQRaw, DQdVRaw, DVdQDenoised, DQdVDenoised,
		DVdQSmall, DQdVSmall, DVdQLarge, DQdVLarge,
		Confidence, DVdQGaussian, DQdVGaussian, DVdQ, DQdV,
	} {
		require.True(t, s.Has(name), name)
		require.Len(t, s.Values(name), samples, name)
	}

	for _, name := range []string{DVdQ, DQdV} {
		lead, trail, interior := testutil.NaNEdges(s.Values(name))
		assert.LessOrEqual(t, lead, 20, name)
		assert.LessOrEqual(t, trail, 20, name)
		assert.Zero(t, interior, name)
	}

	for _, c := range s.Values(segment.CycleChannel) {
		require.Equal(t, 1.0, c)
	}

	// The ramp gives dV/dQ of about 1.2 V/Ah away from the feature.
	vq := s.Values(DVdQ)
	assert.InDelta(t, 1.2, vq[800], 0.15)
	for _, c := range s.Values(Confidence) {
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 1.0)
	}
	assert.Equal(t, "V/Ah", s.Unit(DVdQ).Symbol)
}

func TestRunLinearCurves(t *testing.T) {
	tests := []struct {
		name      string
		v0, v1    float64
		current   float64
		direction series.Direction
	}{
		{name: "charge", v0: 3.0, v1: 4.2, current: 1, direction: series.Charge},
		{name: "discharge", v0: 4.2, v1: 3.0, current: -1, direction: series.Discharge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testutil.NewChargeCurve(samples, 3600, tt.v0, tt.v1, tt.current, 0.01, 3)
			tb := table.New()
			require.NoError(t, tb.AddColumn("시간(s)", c.T))
			require.NoError(t, tb.AddColumn("전압(V)", c.V))
			require.NoError(t, tb.AddColumn("전류(A)", c.I))
			require.NoError(t, tb.AddColumn("용량(Ah)", c.Q))
			s, err := series.Construct(tb)
			require.NoError(t, err)

			p, err := New(nil)
			require.NoError(t, err)
			res, err := p.Run(context.Background(), s)
			require.NoError(t, err)
			assert.Equal(t, tt.direction, res.Direction)

			for _, name := range []string{DVdQ, DQdV} {
				lead, trail, interior := testutil.NaNEdges(s.Values(name))
				assert.Positive(t, lead, name)
				assert.LessOrEqual(t, lead, 20, name)
				assert.LessOrEqual(t, trail, 20, name)
				assert.Zero(t, interior, name)
			}
			for _, cycle := range s.Values(segment.CycleChannel) {
				require.Equal(t, 1.0, cycle)
			}
		})
	}
}

func TestRunRequiresVoltageAndCapacity(t *testing.T) {
	tb := table.New()
	require.NoError(t, tb.AddColumn("Time(s)", testutil.Linspace(0, 10, 11)))
	require.NoError(t, tb.AddColumn("Voltage(V)", testutil.Linspace(3, 4, 11)))
	s, err := series.Construct(tb)
	require.NoError(t, err)

	p, err := New(nil)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), s)
	require.ErrorIs(t, err, series.ErrMissingChannel)

	var missing *series.MissingChannelError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, series.Capacity, missing.Channel)
}

func TestRunWithoutCurrent(t *testing.T) {
	s := chargeSeries(t, false, false)
	core, logs := observer.New(zapcore.InfoLevel)
	p, err := New(nil, WithLogger(zap.New(core)))
	require.NoError(t, err)

	res, err := p.Run(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, res.Has(series.ErrMissingChannel))
	assert.False(t, s.Has(segment.CycleChannel))
	assert.True(t, s.Has(DVdQ))
	assert.Equal(t, 1, logs.FilterMessage("skipping categorization").Len())
}

func TestRunParallelMatchesSequential(t *testing.T) {
	seq := chargeSeries(t, true, false)
	par := chargeSeries(t, true, false)

	p1, err := New(nil, WithParallel(false))
	require.NoError(t, err)
	p2, err := New(nil, WithParallel(true))
	require.NoError(t, err)

	_, err = p1.Run(context.Background(), seq)
	require.NoError(t, err)
	_, err = p2.Run(context.Background(), par)
	require.NoError(t, err)

	for _, name := range []string{DVdtDenoised, DQdtDenoised, DVdQ, DQdV, DVdQGaussian} {
		testutil.RequireSliceNearlyEqual(t, par.Values(name), seq.Values(name), 0)
	}
}

func TestRunInsufficientValidRange(t *testing.T) {
	s := chargeSeries(t, true, true)
	core, logs := observer.New(zapcore.WarnLevel)
	p, err := New(nil, WithLogger(zap.New(core)))
	require.NoError(t, err)

	res, err := p.Run(context.Background(), s)
	require.NoError(t, err)
	require.True(t, res.Has(blend.ErrInsufficientValidRange))
	assert.Equal(t, 1, logs.Len())

	testutil.RequireSliceNearlyEqual(t, s.Values(DVdQLarge), s.Values(DVdQDenoised), 0)
}

func TestRunCancelled(t *testing.T) {
	s := chargeSeries(t, true, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, parallel := range []bool{false, true} {
		p, err := New(nil, WithParallel(parallel))
		require.NoError(t, err)
		_, err = p.Run(ctx, s)
		require.ErrorIs(t, err, context.Canceled)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Crate = 0
	_, err := New(cfg)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestResultHas(t *testing.T) {
	var r Result
	assert.False(t, r.Has(blend.ErrInsufficientValidRange))
	r.note("valid range", errors.Join(errors.New("x"), blend.ErrInsufficientValidRange))
	assert.True(t, r.Has(blend.ErrInsufficientValidRange))
	assert.Equal(t, "valid range: x\n"+blend.ErrInsufficientValidRange.Error(), r.Conditions[0].String())
}
