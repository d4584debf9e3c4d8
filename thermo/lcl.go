// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package thermo

import "math"

// lclLowerBound is the lowest LCL temperature in Kelvin the solver searches.
const lclLowerBound = 150.0

// LCL is the lifted condensation level of a surface parcel.
type LCL struct {
	Temperature float64 // K
	Pressure    float64 // Pa
	Solution    Solution
}

// poissonPressure returns the pressure a parcel starting at (t, p) reaches
// when it is lifted dry adiabatically until it has cooled down to tParcel.
func poissonPressure(tParcel, t, p float64) float64 {
	return math.Pow(tParcel/t, Cp/Rd) * p
}

// LiftedCondensationLevel finds the temperature and pressure at which a parcel
// lifted dry adiabatically from s becomes saturated, i.e. where its conserved
// surface mixing ratio equals the saturation mixing ratio.
//
// A saturated state (temperature equal to dew point) is its own LCL and is
// returned without iterating.
func LiftedCondensationLevel(s State) (LCL, error) {
	if err := s.Validate(); err != nil {
		return LCL{}, err
	}
	return liftedCondensationLevel(s), nil
}

func liftedCondensationLevel(s State) LCL {
	if s.Temperature == s.DewPoint {
		return LCL{
			Temperature: s.Temperature,
			Pressure:    s.Pressure,
			Solution: Solution{
				Root:      s.Temperature,
				Lower:     s.Temperature,
				Upper:     s.Temperature,
				Converged: true,
			},
		}
	}

	w := MixingRatio(s.DewPoint, s.Pressure)
	residual := func(t float64) float64 {
		return w - MixingRatio(t, poissonPressure(t, s.Temperature, s.Pressure))
	}
	sol := solve(residual, lclLowerBound, s.Temperature)

	return LCL{
		Temperature: sol.Root,
		Pressure:    poissonPressure(sol.Root, s.Temperature, s.Pressure),
		Solution:    sol,
	}
}
