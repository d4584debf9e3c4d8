// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package thermo

import "math"

// RelativeHumidityToDewPoint converts the relative humidity rh (as a decimal
// fraction) at temperature t in Kelvin to the dew point in Kelvin. Saturated
// air (rh == 1) returns t exactly and rh < 1 never yields a dew point above t.
func RelativeHumidityToDewPoint(t, rh float64) float64 {
	if rh == 1 {
		return t
	}
	td := dewPointFromVaporPressure(rh * SaturationVaporPressure(t))
	if rh < 1 {
		// exp and log round-trip may overshoot by an ulp
		return math.Min(td, t)
	}
	return td
}

// MixingRatio calculates the mixing ratio in kg/kg for dew point td in Kelvin
// and pressure p in Pa (Bohren, Atmospheric Thermodynamics, eq. 5.14).
// The result is meaningless when SaturationVaporPressure(td) >= p.
func MixingRatio(td, p float64) float64 {
	e := SaturationVaporPressure(td)
	return Epn * e / (p - e)
}

// MixingRatioToDewPoint returns the dew point in Kelvin for mixing ratio w in
// kg/kg and pressure p in Pa.
func MixingRatioToDewPoint(w, p float64) float64 {
	e := w * p / (w + Epn)
	return dewPointFromVaporPressure(e)
}

// RelativeHumidity returns the relative humidity in percent for temperature t
// and dew point td, both in Kelvin.
func RelativeHumidity(t, td float64) float64 {
	return SaturationVaporPressure(td) / SaturationVaporPressure(t) * 100
}

// AbsoluteHumidity returns the water vapor density in g/m³ for temperature t
// and dew point td, both in Kelvin. It follows from the ideal gas law for the
// vapor partial pressure e_s(td):
//
//	absoluteHumidity = e_s(td) / (Rv * t)
func AbsoluteHumidity(t, td float64) float64 {
	return 1000 * SaturationVaporPressure(td) / (Rv * t)
}
