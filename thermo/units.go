// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package thermo

const (
	celsiusZero        = 273.15  // K
	standardPressure   = 1013.25 // mb
	standardInHg       = 29.92   // inHg at standardPressure
	standardMmHg       = 760.0   // mmHg at standardPressure
	pascalsPerMillibar = 100.0
)

type TemperatureUnit string

const (
	Kelvin     TemperatureUnit = "K"
	Celsius    TemperatureUnit = "degC"
	Fahrenheit TemperatureUnit = "degF"
)

type PressureUnit string

const (
	Pascal            PressureUnit = "Pa"
	Millibar          PressureUnit = "mb"
	InchMercury       PressureUnit = "inHg"
	MillimeterMercury PressureUnit = "mmHg"
)

// ParseTemperatureUnit accepts the unit tags used on the command line and in
// config files. The short forms "C" and "F" are accepted as well.
func ParseTemperatureUnit(s string) (TemperatureUnit, error) {
	switch s {
	case "K", "kelvin":
		return Kelvin, nil
	case "degC", "C", "celsius":
		return Celsius, nil
	case "degF", "F", "fahrenheit":
		return Fahrenheit, nil
	default:
		return "", &InputError{Field: "temperature unit", Value: s, Reason: "unknown unit"}
	}
}

func ParsePressureUnit(s string) (PressureUnit, error) {
	switch s {
	case "Pa":
		return Pascal, nil
	case "mb", "hPa", "mbar":
		return Millibar, nil
	case "inHg":
		return InchMercury, nil
	case "mmHg":
		return MillimeterMercury, nil
	default:
		return "", &InputError{Field: "pressure unit", Value: s, Reason: "unknown unit"}
	}
}

// FahrenheitToKelvin converts a temperature from degrees Fahrenheit to Kelvin.
func FahrenheitToKelvin(t float64) float64 {
	return (t-32)*5/9 + celsiusZero
}

// KelvinToFahrenheit converts a temperature from Kelvin to degrees Fahrenheit.
func KelvinToFahrenheit(t float64) float64 {
	return (t-celsiusZero)*9/5 + 32
}

func CelsiusToKelvin(t float64) float64 {
	return t + celsiusZero
}

func KelvinToCelsius(t float64) float64 {
	return t - celsiusZero
}

// InHgToMb converts inches of mercury to millibar.
func InHgToMb(p float64) float64 {
	return standardPressure / standardInHg * p
}

// MmHgToMb converts millimeters of mercury to millibar.
func MmHgToMb(p float64) float64 {
	return standardPressure / standardMmHg * p
}

// MbToInHg converts millibar to inches of mercury.
func MbToInHg(p float64) float64 {
	return standardInHg / standardPressure * p
}

// MbToMmHg converts millibar to millimeters of mercury.
func MbToMmHg(p float64) float64 {
	return standardMmHg / standardPressure * p
}

// ToKelvin normalizes a temperature given in unit to Kelvin.
func ToKelvin(t float64, unit TemperatureUnit) (float64, error) {
	switch unit {
	case Kelvin:
		return t, nil
	case Celsius:
		return CelsiusToKelvin(t), nil
	case Fahrenheit:
		return FahrenheitToKelvin(t), nil
	default:
		return 0, unknownTemperatureUnit(unit)
	}
}

// FromKelvin converts a temperature in Kelvin to unit.
func FromKelvin(t float64, unit TemperatureUnit) (float64, error) {
	switch unit {
	case Kelvin:
		return t, nil
	case Celsius:
		return KelvinToCelsius(t), nil
	case Fahrenheit:
		return KelvinToFahrenheit(t), nil
	default:
		return 0, unknownTemperatureUnit(unit)
	}
}

// ToPascal normalizes a pressure given in unit to Pascal.
func ToPascal(p float64, unit PressureUnit) (float64, error) {
	switch unit {
	case Pascal:
		return p, nil
	case Millibar:
		return p * pascalsPerMillibar, nil
	case InchMercury:
		return InHgToMb(p) * pascalsPerMillibar, nil
	case MillimeterMercury:
		return MmHgToMb(p) * pascalsPerMillibar, nil
	default:
		return 0, unknownPressureUnit(unit)
	}
}

// FromPascal converts a pressure in Pascal to unit.
func FromPascal(p float64, unit PressureUnit) (float64, error) {
	switch unit {
	case Pascal:
		return p, nil
	case Millibar:
		return p / pascalsPerMillibar, nil
	case InchMercury:
		return MbToInHg(p / pascalsPerMillibar), nil
	case MillimeterMercury:
		return MbToMmHg(p / pascalsPerMillibar), nil
	default:
		return 0, unknownPressureUnit(unit)
	}
}

func unknownTemperatureUnit(unit TemperatureUnit) error {
	return &InputError{Field: "temperature unit", Value: string(unit), Reason: "unknown unit"}
}

func unknownPressureUnit(unit PressureUnit) error {
	return &InputError{Field: "pressure unit", Value: string(unit), Reason: "unknown unit"}
}
