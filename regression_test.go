package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticSamples(n int) []PoeSample {
	samples := make([]PoeSample, n)
	for i := 0; i < n; i++ {
		fp := 20 + float64(i%8)*3
		clock := 1500 + float64(i/8)*80
		samples[i] = PoeSample{
			FieldPos: fp,
			Clock:    clock,
			Points:   3 + 0.2*fp + 0.01*clock,
		}
	}
	return samples
}

func TestFitExpectedPointsRecoversCoefficients(t *testing.T) {
	samples := syntheticSamples(64)
	model, err := fitExpectedPoints(samples)
	require.NoError(t, err)

	assert.InDelta(t, 0.2, model.FieldPosCoef, 1e-3)
	assert.InDelta(t, 0.01, model.ClockCoef, 1e-3)
	assert.InDelta(t, 3.0, model.Intercept, 0.1)

	for _, s := range samples {
		assert.InDelta(t, s.Points, model.Expected(s.FieldPos, s.Clock), 0.05)
	}
}

func TestFitExpectedPointsTooFewSamples(t *testing.T) {
	_, err := fitExpectedPoints(syntheticSamples(minPoeSamples - 1))
	assert.Error(t, err)
}

func TestFitExpectedPointsConstantFeature(t *testing.T) {
	samples := make([]PoeSample, 40)
	for i := range samples {
		samples[i] = PoeSample{FieldPos: 25, Clock: float64(1500 + i), Points: float64(20 + i%7)}
	}
	_, err := fitExpectedPoints(samples)
	assert.ErrorContains(t, err, "zero-variance")
}

func TestPointsOverExpected(t *testing.T) {
	samples := syntheticSamples(64)
	model, err := fitExpectedPoints(samples)
	require.NoError(t, err)

	// Exact linear data residualizes to ~0 everywhere
	for _, p := range pointsOverExpected(model, samples) {
		assert.InDelta(t, 0, p, 0.05)
	}
}

func TestCorrelate(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}
	c, err := correlate("double", x, y)
	require.NoError(t, err)
	assert.Equal(t, 5, c.N)
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 2.0, c.Slope, 1e-9)

	yNeg := []float64{10, 8, 6, 4, 2}
	c, err = correlate("negative", x, yNeg)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, c.R, 1e-9)
}

func TestCorrelateDegenerate(t *testing.T) {
	_, err := correlate("short", []float64{1, 2}, []float64{1, 2})
	assert.Error(t, err)

	_, err = correlate("mismatch", []float64{1, 2, 3}, []float64{1, 2})
	assert.Error(t, err)

	_, err = correlate("constant", []float64{2, 2, 2, 2}, []float64{1, 2, 3, 4})
	assert.ErrorContains(t, err, "constant")
}
