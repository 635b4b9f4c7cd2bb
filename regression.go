package main

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	minPoeSamples = 32
	poeIters      = 500
	poeLR         = 0.05
)

// PoeSample is one team-game observation for the expected-points model:
// average drive start (yards from own goal), offensive clock held (seconds),
// and the points that came of it.
type PoeSample struct {
	FieldPos float64
	Clock    float64
	Points   float64
}

// PoeModel is a two-feature linear expected-points model. Training runs
// batch gradient descent on standardized features; the stored coefficients
// are mapped back to raw units so Expected takes unscaled inputs.
type PoeModel struct {
	Intercept    float64 `json:"intercept"`
	FieldPosCoef float64 `json:"field_pos_coef"`
	ClockCoef    float64 `json:"clock_coef"`
}

// fitExpectedPoints trains the expected-points model. It refuses degenerate
// inputs (too few samples, a constant feature) instead of returning NaN
// coefficients.
func fitExpectedPoints(samples []PoeSample) (*PoeModel, error) {
	if len(samples) < minPoeSamples {
		return nil, fmt.Errorf("expected points model needs at least %d samples, got %d", minPoeSamples, len(samples))
	}
	n := len(samples)
	fp := make([]float64, n)
	ck := make([]float64, n)
	pts := make([]float64, n)
	for i, s := range samples {
		fp[i] = s.FieldPos
		ck[i] = s.Clock
		pts[i] = s.Points
	}
	fpMean, fpStd := stat.MeanStdDev(fp, nil)
	ckMean, ckStd := stat.MeanStdDev(ck, nil)
	ptsMean := stat.Mean(pts, nil)
	if fpStd == 0 || ckStd == 0 {
		return nil, errors.New("expected points model: zero-variance feature")
	}

	// Gradient descent on squared loss over standardized features.
	var w0, w1, w2 float64
	for iter := 0; iter < poeIters; iter++ {
		var g0, g1, g2 float64
		for i := 0; i < n; i++ {
			x1 := (fp[i] - fpMean) / fpStd
			x2 := (ck[i] - ckMean) / ckStd
			err := (w0 + w1*x1 + w2*x2) - (pts[i] - ptsMean)
			g0 += err
			g1 += err * x1
			g2 += err * x2
		}
		w0 -= poeLR * g0 / float64(n)
		w1 -= poeLR * g1 / float64(n)
		w2 -= poeLR * g2 / float64(n)
	}

	// Undo the standardization so callers pass raw inputs.
	m := &PoeModel{
		FieldPosCoef: w1 / fpStd,
		ClockCoef:    w2 / ckStd,
	}
	m.Intercept = ptsMean + w0 - m.FieldPosCoef*fpMean - m.ClockCoef*ckMean
	return m, nil
}

// Expected returns the model's point estimate for a raw (field position,
// clock) pair.
func (m *PoeModel) Expected(fieldPos, clock float64) float64 {
	return m.Intercept + m.FieldPosCoef*fieldPos + m.ClockCoef*clock
}

// pointsOverExpected residualizes each sample against the model: actual
// points minus expected points.
func pointsOverExpected(m *PoeModel, samples []PoeSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Points - m.Expected(s.FieldPos, s.Clock)
	}
	return out
}

// Correlation is the relationship between a residualized outcome and a
// companion variable.
type Correlation struct {
	Variable string  `json:"variable"`
	N        int     `json:"n"`
	R        float64 `json:"r"`
	Slope    float64 `json:"slope"`
}

// correlate computes the Pearson r of y on x along with the OLS slope.
func correlate(name string, x, y []float64) (Correlation, error) {
	if len(x) != len(y) {
		return Correlation{}, fmt.Errorf("correlate %s: length mismatch %d vs %d", name, len(x), len(y))
	}
	if len(x) < 3 {
		return Correlation{}, fmt.Errorf("correlate %s: need at least 3 pairs, got %d", name, len(x))
	}
	if stat.Variance(x, nil) == 0 {
		return Correlation{}, fmt.Errorf("correlate %s: companion variable is constant", name)
	}
	r := stat.Correlation(x, y, nil)
	_, slope := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(r) {
		return Correlation{}, fmt.Errorf("correlate %s: undefined correlation", name)
	}
	return Correlation{Variable: name, N: len(x), R: r, Slope: slope}, nil
}
