// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package thermo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBisectFindsRoot(t *testing.T) {
	sol := Bisect(func(x float64) float64 { return x*x - 2 }, 1, 2)
	assert.True(t, sol.Converged)
	assert.LessOrEqual(t, sol.Gap, Tolerance)
	assert.LessOrEqual(t, sol.Iterations, MaxIterations)
	assert.InDelta(t, math.Sqrt2, sol.Root, 1e-6)
	assert.Equal(t, 0.5*(sol.Lower+sol.Upper), sol.Root)
}

func TestBisectReversedBracket(t *testing.T) {
	// the upper bound may be the smaller one
	sol := Bisect(func(x float64) float64 { return x - 1 }, 3, -2)
	assert.True(t, sol.Converged)
	assert.InDelta(t, 1.0, sol.Root, 1e-6)
}

func TestBisectAlreadyConverged(t *testing.T) {
	sol := Bisect(func(x float64) float64 { return 5 }, 0, 10)
	assert.True(t, sol.Converged)
	assert.Equal(t, 0, sol.Iterations)
	assert.Equal(t, 5.0, sol.Root)
}

func TestBisectIterationCap(t *testing.T) {
	// No sign change and residual magnitudes far apart: the upper bound
	// walks down and the gap halves each step, far too slow for the cap.
	sol := Bisect(func(x float64) float64 { return x }, 1, 1e30)
	assert.False(t, sol.Converged)
	assert.Equal(t, MaxIterations, sol.Iterations)
	assert.Greater(t, sol.Gap, Tolerance)
	assert.Equal(t, 0.5*(sol.Lower+sol.Upper), sol.Root)
	assert.Equal(t, 1.0, sol.Lower)

	w, ok := sol.Warning("test quantity")
	assert.True(t, ok)
	assert.True(t, errors.Is(w, ErrNonConvergence))
	assert.Contains(t, w.Error(), "test quantity: no convergence after 50 iterations")
}

func TestBisectNaNResidual(t *testing.T) {
	sol := Bisect(func(x float64) float64 { return math.NaN() }, 0, 1)
	assert.False(t, sol.Converged)
	assert.Equal(t, MaxIterations, sol.Iterations)
	assert.False(t, math.IsNaN(sol.Root))
}

func TestBisectAcceptsDriftWithoutRoot(t *testing.T) {
	// |x| is symmetric: both ends have the same magnitude although the
	// bracket [-1, 1] encloses no sign change of the residual.
	sol := Bisect(func(x float64) float64 { return math.Abs(x) + 1 }, -1, 1)
	assert.True(t, sol.Converged)
	assert.Equal(t, 0, sol.Iterations)
	assert.Equal(t, 0.0, sol.Root)

	// x² - 2 has equal magnitudes at 0 and 2, so the midpoint 1 is accepted.
	sol = Bisect(func(x float64) float64 { return x*x - 2 }, 0, 2)
	assert.True(t, sol.Converged)
	assert.Equal(t, 1.0, sol.Root)
}
