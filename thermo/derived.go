// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package thermo

import "math"

// wetBulbPotentialUpper is the far end of the initial bracket for the wet-bulb
// potential temperature search in Kelvin. The bracket starts at the dry
// potential temperature, so it is given in descending order.
const wetBulbPotentialUpper = 100.0

// Result holds every derived quantity in canonical units: temperatures in K,
// pressures in Pa, mixing ratio in kg/kg, relative humidity in percent and
// absolute humidity in g/m³.
type Result struct {
	PotentialTemperature                    float64
	EquivalentPotentialTemperature          float64
	SaturatedEquivalentPotentialTemperature float64
	WetBulbPotentialTemperature             float64
	LCLPressure                             float64
	LCLTemperature                          float64
	MixingRatio                             float64
	RelativeHumidity                        float64
	AbsoluteHumidity                        float64
	DewPoint                                float64
	VirtualTemperature                      float64
	EquivalentTemperature                   float64
	WetBulbTemperature                      float64

	// Warnings lists the solvers that hit the iteration cap. Their values
	// above are best estimates.
	Warnings []NonConvergenceError
}

// Converged reports whether every solver met the tolerance.
func (r Result) Converged() bool {
	return len(r.Warnings) == 0
}

// PotentialTemperature returns the temperature in K a parcel at temperature t
// (K) and pressure p (Pa) has after being brought dry adiabatically to
// ReferencePressure.
func PotentialTemperature(t, p float64) float64 {
	return t * math.Pow(ReferencePressure/p, Rd/Cp)
}

// dryPotentialTemperature is the potential temperature of the dry air part of
// a saturated parcel, using the dry air partial pressure p - e_s(t).
func dryPotentialTemperature(t, p float64) float64 {
	return PotentialTemperature(t, p-SaturationVaporPressure(t))
}

func saturatedEquivalentPotential(t, p float64) float64 {
	ws := MixingRatio(t, p)
	return dryPotentialTemperature(t, p) * math.Exp(Lv*ws/(Cp*t))
}

// EquivalentPotentialTemperature returns θe in K, evaluated at the lifted
// condensation level where the parcel is just saturated.
func EquivalentPotentialTemperature(lcl LCL) float64 {
	return saturatedEquivalentPotential(lcl.Temperature, lcl.Pressure)
}

// SaturatedEquivalentPotentialTemperature returns θes in K, the equivalent
// potential temperature the parcel at (t, p) would have if it were saturated.
func SaturatedEquivalentPotentialTemperature(t, p float64) float64 {
	return saturatedEquivalentPotential(t, p)
}

// WetBulbPotentialTemperature solves
//
//	θd * exp((Lv / cp) * (w / Tlcl - w_s(θw) / θw)) - θw = 0
//
// for θw, where θd is the dry potential temperature at the LCL, w the surface
// mixing ratio and w_s the saturation mixing ratio at ReferencePressure.
func WetBulbPotentialTemperature(lcl LCL, w float64) Solution {
	thetaD := dryPotentialTemperature(lcl.Temperature, lcl.Pressure)
	residual := func(thetaW float64) float64 {
		ws := MixingRatio(thetaW, ReferencePressure)
		return thetaD*math.Exp((Lv/Cp)*(w/lcl.Temperature-ws/thetaW)) - thetaW
	}
	return solve(residual, thetaD, wetBulbPotentialUpper)
}

// VirtualTemperature returns the virtual temperature in K for temperature t
// (K) and mixing ratio w (kg/kg).
func VirtualTemperature(t, w float64) float64 {
	return t * (1 + 0.61*w)
}

// EquivalentTemperature returns the temperature in K after condensing all
// water vapor of mixing ratio w and using the latent heat to warm the parcel.
func EquivalentTemperature(t, w float64) float64 {
	return t + Lv*w/(Cp+w*Cw)
}

// WetBulbTemperature solves the isobaric evaporation balance
//
//	(cp / Lv) * (T - Twb) - w_s(Twb, P) + w = 0
//
// for Twb between the dew point and the air temperature.
func WetBulbTemperature(s State, w float64) Solution {
	residual := func(twb float64) float64 {
		return (Cp/Lv)*(s.Temperature-twb) - MixingRatio(twb, s.Pressure) + w
	}
	return solve(residual, s.DewPoint, s.Temperature)
}

// Derive computes the full result set for s. Invalid states are rejected
// before any solver runs; solvers hitting the iteration cap are reported in
// Result.Warnings and do not cause an error.
func Derive(s State) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	var r Result
	addWarning := func(quantity string, sol Solution) {
		if w, ok := sol.Warning(quantity); ok {
			r.Warnings = append(r.Warnings, w)
		}
	}

	lcl := liftedCondensationLevel(s)
	addWarning("lcl temperature", lcl.Solution)

	w := MixingRatio(s.DewPoint, s.Pressure)

	thetaW := WetBulbPotentialTemperature(lcl, w)
	addWarning("wet-bulb potential temperature", thetaW)

	twb := WetBulbTemperature(s, w)
	addWarning("wet-bulb temperature", twb)

	r.PotentialTemperature = PotentialTemperature(s.Temperature, s.Pressure)
	r.EquivalentPotentialTemperature = EquivalentPotentialTemperature(lcl)
	r.SaturatedEquivalentPotentialTemperature = SaturatedEquivalentPotentialTemperature(s.Temperature, s.Pressure)
	r.WetBulbPotentialTemperature = thetaW.Root
	r.LCLPressure = lcl.Pressure
	r.LCLTemperature = lcl.Temperature
	r.MixingRatio = w
	r.RelativeHumidity = RelativeHumidity(s.Temperature, s.DewPoint)
	r.AbsoluteHumidity = AbsoluteHumidity(s.Temperature, s.DewPoint)
	r.DewPoint = s.DewPoint
	r.VirtualTemperature = VirtualTemperature(s.Temperature, w)
	r.EquivalentTemperature = EquivalentTemperature(s.Temperature, w)
	r.WetBulbTemperature = twb.Root
	return r, nil
}
