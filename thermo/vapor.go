// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// Package thermo derives atmospheric thermodynamic quantities from temperature,
// pressure and a moisture measurement.
package thermo

import "math"

const (
	Lv  = 2.5e6  // enthalpy of vaporization in J / kg, assumed constant
	Rv  = 461.5  // specific gas constant for water vapor in J / (kg * K)
	Rd  = 287.04 // specific gas constant for dry air in J / (kg * K)
	Cp  = 1005.0 // specific heat of dry air at constant pressure in J / (kg * K)
	Cw  = 4218.0 // specific heat of liquid water in J / (kg * K)
	Epn = 0.622  // ratio of the molar masses of water vapor and dry air

	// ReferencePressure is the pressure in Pa potential temperatures refer to.
	ReferencePressure = 100000.0

	triplePointPressure = 611.0 // Pa, anchors the Clausius-Clapeyron curve at 273.15 K
)

// SaturationVaporPressure calculates the equilibrium vapor pressure of water
// in Pa at temperature t in Kelvin with the Clausius-Clapeyron equation.
//
//	e_s(T) = 611 * exp((Lv / Rv) * (1 / 273.15 - 1 / T))
//
// The function diverges for t <= 0; callers have to validate t first.
func SaturationVaporPressure(t float64) float64 {
	return triplePointPressure * math.Exp((Lv/Rv)*(1/celsiusZero-1/t))
}

// dewPointFromVaporPressure inverts SaturationVaporPressure: it returns the
// temperature in Kelvin at which e (in Pa) is the saturation vapor pressure.
func dewPointFromVaporPressure(e float64) float64 {
	return 1 / (1/celsiusZero - (Rv/Lv)*math.Log(e/triplePointPressure))
}
