// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package thermo

import "math"

const (
	Tolerance     = 1e-6
	MaxIterations = 50
)

// solve is the root finder of the LCL and wet-bulb solvers.
var solve = Bisect

// Solution is the outcome of a bisection run.
type Solution struct {
	Root       float64 // midpoint of the final bracket
	Lower      float64
	Upper      float64
	Iterations int
	Gap        float64 // ||f(Upper)| - |f(Lower)||
	Converged  bool
}

// Bisect halves the bracket [lower, upper] until the absolute values of the
// residuals at both ends differ by no more than Tolerance. After each
// midpoint evaluation the lower bound moves to the midpoint when the residual
// changes sign between upper and midpoint, otherwise the upper bound does.
//
// The bracket does not need to contain a sign change. The stop criterion only
// compares residual magnitudes, so both ends drifting to similar magnitudes
// without enclosing a root is reported as converged.
//
// Bisect stops after MaxIterations and returns the midpoint with Converged
// set to false. A NaN residual never satisfies the stop criterion.
func Bisect(f func(float64) float64, lower, upper float64) Solution {
	fUpper := f(upper)
	fLower := f(lower)
	gap := residualGap(fUpper, fLower)

	n := 0
	for !(gap <= Tolerance) {
		if n >= MaxIterations {
			return Solution{
				Root:       0.5 * (lower + upper),
				Lower:      lower,
				Upper:      upper,
				Iterations: n,
				Gap:        gap,
			}
		}
		mid := 0.5 * (upper + lower)
		fMid := f(mid)
		if (fUpper > 0 && fMid < 0) || (fUpper < 0 && fMid > 0) {
			lower = mid
		} else {
			upper = mid
		}
		fUpper = f(upper)
		fLower = f(lower)
		gap = residualGap(fUpper, fLower)
		n++
	}

	return Solution{
		Root:       0.5 * (lower + upper),
		Lower:      lower,
		Upper:      upper,
		Iterations: n,
		Gap:        gap,
		Converged:  true,
	}
}

func residualGap(fUpper, fLower float64) float64 {
	return math.Abs(math.Abs(fUpper) - math.Abs(fLower))
}

// Warning returns the non-convergence warning for quantity, or false when the
// solver converged.
func (s Solution) Warning(quantity string) (NonConvergenceError, bool) {
	if s.Converged {
		return NonConvergenceError{}, false
	}
	return NonConvergenceError{Quantity: quantity, Iterations: s.Iterations, Gap: s.Gap}, true
}
