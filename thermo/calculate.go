// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package thermo

import "fmt"

// MoistureUnit tags the representation of a moisture measurement.
type MoistureUnit string

const (
	DewPointKelvin           MoistureUnit = "dewK"
	DewPointCelsius          MoistureUnit = "dewC"
	DewPointFahrenheit       MoistureUnit = "dewF"
	RelativeHumidityFraction MoistureUnit = "RH"  // 0 - 1
	RelativeHumidityPercent  MoistureUnit = "RH%" // 0 - 100
	MixingRatioKgPerKg       MoistureUnit = "w"
	MixingRatioGramsPerKg    MoistureUnit = "g/kg"
)

func ParseMoistureUnit(s string) (MoistureUnit, error) {
	switch u := MoistureUnit(s); u {
	case DewPointKelvin, DewPointCelsius, DewPointFahrenheit,
		RelativeHumidityFraction, RelativeHumidityPercent,
		MixingRatioKgPerKg, MixingRatioGramsPerKg:
		return u, nil
	case "%":
		return RelativeHumidityPercent, nil
	default:
		return "", &InputError{Field: "moisture unit", Value: s, Reason: "unknown unit"}
	}
}

func (u MoistureUnit) isRelativeHumidity() bool {
	return u == RelativeHumidityFraction || u == RelativeHumidityPercent
}

func (u MoistureUnit) isMixingRatio() bool {
	return u == MixingRatioKgPerKg || u == MixingRatioGramsPerKg
}

// Input is a raw measurement as read from a sensor or form.
type Input struct {
	Temperature     float64
	TemperatureUnit TemperatureUnit
	Pressure        float64
	PressureUnit    PressureUnit
	Moisture        float64
	MoistureUnit    MoistureUnit
}

// Display selects the units of a Report.
type Display struct {
	TemperatureUnit TemperatureUnit
	PressureUnit    PressureUnit
}

// Report is a Result converted to display units. The mixing ratio is given in
// g/kg and the relative humidity in percent.
type Report struct {
	TemperatureUnit TemperatureUnit `yaml:"temperature_unit"`
	PressureUnit    PressureUnit    `yaml:"pressure_unit"`

	PotentialTemperature                    float64 `yaml:"potential_temperature"`
	EquivalentPotentialTemperature          float64 `yaml:"equivalent_potential_temperature"`
	SaturatedEquivalentPotentialTemperature float64 `yaml:"saturated_equivalent_potential_temperature"`
	WetBulbPotentialTemperature             float64 `yaml:"wet_bulb_potential_temperature"`
	LCLPressure                             float64 `yaml:"lcl_pressure"`
	LCLTemperature                          float64 `yaml:"lcl_temperature"`
	MixingRatio                             float64 `yaml:"mixing_ratio_g_per_kg"`
	RelativeHumidity                        float64 `yaml:"relative_humidity_percent"`
	AbsoluteHumidity                        float64 `yaml:"absolute_humidity_g_per_m3"`
	DewPoint                                float64 `yaml:"dew_point"`
	VirtualTemperature                      float64 `yaml:"virtual_temperature"`
	EquivalentTemperature                   float64 `yaml:"equivalent_temperature"`
	WetBulbTemperature                      float64 `yaml:"wet_bulb_temperature"`

	Converged bool                  `yaml:"converged"`
	Warnings  []NonConvergenceError `yaml:"-"`
}

// State normalizes the input to Kelvin and Pa and converts the moisture
// measurement to a dew point.
func (in Input) State() (State, error) {
	t, err := ToKelvin(in.Temperature, in.TemperatureUnit)
	if err != nil {
		return State{}, err
	}
	if err := checkPositive("temperature", t); err != nil {
		return State{}, err
	}
	p, err := ToPascal(in.Pressure, in.PressureUnit)
	if err != nil {
		return State{}, err
	}
	if err := checkPositive("pressure", p); err != nil {
		return State{}, err
	}
	td, err := moistureToDewPoint(in.Moisture, in.MoistureUnit, t, p)
	if err != nil {
		return State{}, err
	}
	s := State{Temperature: t, Pressure: p, DewPoint: td}
	return s, s.Validate()
}

// Calculate normalizes in, derives all quantities and converts them to the
// units selected by out.
func Calculate(in Input, out Display) (Report, error) {
	s, err := in.State()
	if err != nil {
		return Report{}, err
	}
	r, err := Derive(s)
	if err != nil {
		return Report{}, err
	}
	return r.Display(out)
}

// Display converts r to the units selected by out.
func (r Result) Display(out Display) (Report, error) {
	report := Report{
		TemperatureUnit:  out.TemperatureUnit,
		PressureUnit:     out.PressureUnit,
		MixingRatio:      r.MixingRatio * 1000,
		RelativeHumidity: r.RelativeHumidity,
		AbsoluteHumidity: r.AbsoluteHumidity,
		Converged:        r.Converged(),
		Warnings:         r.Warnings,
	}

	temperatures := []struct {
		dst *float64
		src float64
	}{
		{&report.PotentialTemperature, r.PotentialTemperature},
		{&report.EquivalentPotentialTemperature, r.EquivalentPotentialTemperature},
		{&report.SaturatedEquivalentPotentialTemperature, r.SaturatedEquivalentPotentialTemperature},
		{&report.WetBulbPotentialTemperature, r.WetBulbPotentialTemperature},
		{&report.LCLTemperature, r.LCLTemperature},
		{&report.DewPoint, r.DewPoint},
		{&report.VirtualTemperature, r.VirtualTemperature},
		{&report.EquivalentTemperature, r.EquivalentTemperature},
		{&report.WetBulbTemperature, r.WetBulbTemperature},
	}
	for _, t := range temperatures {
		v, err := FromKelvin(t.src, out.TemperatureUnit)
		if err != nil {
			return Report{}, err
		}
		*t.dst = v
	}

	var err error
	report.LCLPressure, err = FromPascal(r.LCLPressure, out.PressureUnit)
	if err != nil {
		return Report{}, err
	}
	return report, nil
}

// VaporPressure returns the saturation vapor pressure at temperature t given
// in unit, converted to out.
func VaporPressure(t float64, unit TemperatureUnit, out PressureUnit) (float64, error) {
	k, err := ToKelvin(t, unit)
	if err != nil {
		return 0, err
	}
	if err := checkPositive("temperature", k); err != nil {
		return 0, err
	}
	return FromPascal(SaturationVaporPressure(k), out)
}

// ConvertTemperature converts t from one temperature unit to another.
func ConvertTemperature(t float64, from, to TemperatureUnit) (float64, error) {
	k, err := ToKelvin(t, from)
	if err != nil {
		return 0, err
	}
	if err := checkPositive("temperature", k); err != nil {
		return 0, err
	}
	return FromKelvin(k, to)
}

// ConvertMoisture converts the moisture measurement of in to out. Only the
// fields a conversion needs are read: the temperature when either side is a
// relative humidity, the pressure when either side is a mixing ratio.
func ConvertMoisture(in Input, out MoistureUnit) (float64, error) {
	if _, err := ParseMoistureUnit(string(out)); err != nil {
		return 0, err
	}

	var t, p float64
	var err error
	if in.MoistureUnit.isRelativeHumidity() || out.isRelativeHumidity() {
		if t, err = ToKelvin(in.Temperature, in.TemperatureUnit); err != nil {
			return 0, err
		}
		if err := checkPositive("temperature", t); err != nil {
			return 0, err
		}
	}
	if in.MoistureUnit.isMixingRatio() || out.isMixingRatio() {
		if p, err = ToPascal(in.Pressure, in.PressureUnit); err != nil {
			return 0, err
		}
		if err := checkPositive("pressure", p); err != nil {
			return 0, err
		}
	}

	td, err := moistureToDewPoint(in.Moisture, in.MoistureUnit, t, p)
	if err != nil {
		return 0, err
	}
	if err := checkPositive("dew point", td); err != nil {
		return 0, err
	}
	return dewPointToMoisture(td, out, t, p)
}

func moistureToDewPoint(v float64, unit MoistureUnit, t, p float64) (float64, error) {
	if err := checkFinite("moisture", v); err != nil {
		return 0, err
	}
	switch unit {
	case DewPointKelvin:
		return v, nil
	case DewPointCelsius:
		return CelsiusToKelvin(v), nil
	case DewPointFahrenheit:
		return FahrenheitToKelvin(v), nil
	case RelativeHumidityFraction, RelativeHumidityPercent:
		rh := v
		if unit == RelativeHumidityPercent {
			rh /= 100
		}
		if rh <= 0 || rh > 1 {
			return 0, &InputError{Field: "relative humidity", Value: v, Reason: "out of range"}
		}
		return RelativeHumidityToDewPoint(t, rh), nil
	case MixingRatioKgPerKg, MixingRatioGramsPerKg:
		w := v
		if unit == MixingRatioGramsPerKg {
			w /= 1000
		}
		if w <= 0 {
			return 0, &InputError{Field: "mixing ratio", Value: v, Reason: "must be greater than zero"}
		}
		return MixingRatioToDewPoint(w, p), nil
	default:
		return 0, &InputError{Field: "moisture unit", Value: string(unit), Reason: "unknown unit"}
	}
}

func dewPointToMoisture(td float64, unit MoistureUnit, t, p float64) (float64, error) {
	switch unit {
	case DewPointKelvin, DewPointCelsius, DewPointFahrenheit:
		return FromKelvin(td, dewPointTemperatureUnit(unit))
	case RelativeHumidityFraction, RelativeHumidityPercent:
		if td > t {
			return 0, &InputError{Field: "dew point", Value: td, Reason: "above air temperature"}
		}
		rh := RelativeHumidity(t, td)
		if unit == RelativeHumidityFraction {
			rh /= 100
		}
		return rh, nil
	case MixingRatioKgPerKg, MixingRatioGramsPerKg:
		if SaturationVaporPressure(td) >= p {
			return 0, &InputError{
				Field:  "pressure",
				Value:  p,
				Reason: fmt.Sprintf("not above the vapor pressure at dew point %g K", td),
			}
		}
		w := MixingRatio(td, p)
		if unit == MixingRatioGramsPerKg {
			w *= 1000
		}
		return w, nil
	default:
		return 0, &InputError{Field: "moisture unit", Value: string(unit), Reason: "unknown unit"}
	}
}

func dewPointTemperatureUnit(unit MoistureUnit) TemperatureUnit {
	switch unit {
	case DewPointCelsius:
		return Celsius
	case DewPointFahrenheit:
		return Fahrenheit
	default:
		return Kelvin
	}
}
