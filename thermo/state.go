// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package thermo

// State is the normalized input of every calculation: temperature and dew
// point in Kelvin, pressure in Pa.
type State struct {
	Temperature float64
	Pressure    float64
	DewPoint    float64
}

// Validate rejects states the solvers cannot handle. Supersaturated air
// (dew point above temperature) is rejected as well, because the LCL residual
// has no sign change in that case.
func (s State) Validate() error {
	if err := checkPositive("temperature", s.Temperature); err != nil {
		return err
	}
	if err := checkPositive("pressure", s.Pressure); err != nil {
		return err
	}
	if err := checkPositive("dew point", s.DewPoint); err != nil {
		return err
	}
	if s.DewPoint > s.Temperature {
		return &InputError{Field: "dew point", Value: s.DewPoint, Reason: "above air temperature"}
	}
	// Td <= T, so this covers the dew point as well.
	if SaturationVaporPressure(s.Temperature) >= s.Pressure {
		return &InputError{
			Field:  "pressure",
			Value:  s.Pressure,
			Reason: "not above the saturation vapor pressure",
		}
	}
	return nil
}
