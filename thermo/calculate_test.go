// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package thermo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCelsiusMillibar(t *testing.T) {
	in := Input{
		Temperature:     26.85,
		TemperatureUnit: Celsius,
		Pressure:        1000,
		PressureUnit:    Millibar,
		Moisture:        16.85,
		MoistureUnit:    DewPointCelsius,
	}
	report, err := Calculate(in, Display{TemperatureUnit: Celsius, PressureUnit: Millibar})
	require.NoError(t, err)
	assert.True(t, report.Converged)
	assert.InDelta(t, 26.85, report.PotentialTemperature, 1e-9)
	assert.InDelta(t, 14.6014, report.LCLTemperature, 1e-3)
	assert.InDelta(t, 864.199, report.LCLPressure, 1e-2)
	assert.InDelta(t, 12.2675, report.MixingRatio, 1e-4)
	assert.InDelta(t, 53.6517, report.RelativeHumidity, 1e-3)
	assert.InDelta(t, 16.85, report.DewPoint, 1e-9)
	assert.Equal(t, Celsius, report.TemperatureUnit)
	assert.Equal(t, Millibar, report.PressureUnit)
}

func TestCalculateFahrenheitOutput(t *testing.T) {
	in := Input{
		Temperature:     300,
		TemperatureUnit: Kelvin,
		Pressure:        100000,
		PressureUnit:    Pascal,
		Moisture:        290,
		MoistureUnit:    DewPointKelvin,
	}
	report, err := Calculate(in, Display{TemperatureUnit: Fahrenheit, PressureUnit: InchMercury})
	require.NoError(t, err)
	// θe is converted on its own, not replaced by θ
	assert.InDelta(t, 144.1012, report.EquivalentPotentialTemperature, 1e-3)
	assert.InDelta(t, 80.33, report.PotentialTemperature, 1e-9)
	assert.InDelta(t, 25.5187, report.LCLPressure, 1e-3)
}

func TestCalculateRelativeHumidityInput(t *testing.T) {
	display := Display{TemperatureUnit: Kelvin, PressureUnit: Pascal}
	fraction := Input{
		Temperature:     80,
		TemperatureUnit: Fahrenheit,
		Pressure:        29.92,
		PressureUnit:    InchMercury,
		Moisture:        0.6,
		MoistureUnit:    RelativeHumidityFraction,
	}
	percent := fraction
	percent.Moisture = 60
	percent.MoistureUnit = RelativeHumidityPercent

	a, err := Calculate(fraction, display)
	require.NoError(t, err)
	b, err := Calculate(percent, display)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.InDelta(t, 60.0, a.RelativeHumidity, 1e-9)
	assert.InDelta(t, 291.5732, a.DewPoint, 1e-3)
	assert.InDelta(t, 289.6987, a.LCLTemperature, 1e-3)
	assert.InDelta(t, 294.0416, a.WetBulbTemperature, 1e-3)
}

func TestCalculateMixingRatioInput(t *testing.T) {
	in := Input{
		Temperature:     300,
		TemperatureUnit: Kelvin,
		Pressure:        760,
		PressureUnit:    MillimeterMercury,
		Moisture:        12.0,
		MoistureUnit:    MixingRatioGramsPerKg,
	}
	report, err := Calculate(in, Display{TemperatureUnit: Kelvin, PressureUnit: MillimeterMercury})
	require.NoError(t, err)
	assert.InDelta(t, 12.0, report.MixingRatio, 1e-9)

	in.Moisture = 0.012
	in.MoistureUnit = MixingRatioKgPerKg
	other, err := Calculate(in, Display{TemperatureUnit: Kelvin, PressureUnit: MillimeterMercury})
	require.NoError(t, err)
	assert.InDelta(t, report.DewPoint, other.DewPoint, 1e-9)
}

func TestCalculateInvalidInput(t *testing.T) {
	valid := Input{
		Temperature:     20,
		TemperatureUnit: Celsius,
		Pressure:        1013.25,
		PressureUnit:    Millibar,
		Moisture:        50,
		MoistureUnit:    RelativeHumidityPercent,
	}
	display := Display{TemperatureUnit: Celsius, PressureUnit: Millibar}

	tests := []struct {
		name   string
		modify func(in *Input)
		want   string
	}{
		{"NaN temperature", func(in *Input) { in.Temperature = math.NaN() }, "invalid temperature 'NaN': not a finite number"},
		{"below absolute zero", func(in *Input) { in.Temperature = -300 }, "invalid temperature '-26.850000000000023': must be greater than zero"},
		{"infinite pressure", func(in *Input) { in.Pressure = math.Inf(1) }, "invalid pressure '+Inf': not a finite number"},
		{"zero pressure", func(in *Input) { in.Pressure = 0 }, "invalid pressure '0': must be greater than zero"},
		{"humidity above 100", func(in *Input) { in.Moisture = 120 }, "invalid relative humidity '120': out of range"},
		{"zero humidity", func(in *Input) { in.Moisture = 0 }, "invalid relative humidity '0': out of range"},
		{"negative mixing ratio", func(in *Input) { in.Moisture = -1; in.MoistureUnit = MixingRatioGramsPerKg }, "invalid mixing ratio '-1': must be greater than zero"},
		{"unknown moisture unit", func(in *Input) { in.MoistureUnit = "ppm" }, "invalid moisture unit 'ppm': unknown unit"},
		{"unknown pressure unit", func(in *Input) { in.PressureUnit = "atm" }, "invalid pressure unit 'atm': unknown unit"},
		{"dew point above temperature", func(in *Input) { in.Moisture = 25; in.MoistureUnit = DewPointCelsius }, "invalid dew point '298.15': above air temperature"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			in := valid
			test.modify(&in)
			_, err := Calculate(in, display)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.EqualError(t, err, test.want)
		})
	}

	_, err := Calculate(valid, Display{TemperatureUnit: "degR", PressureUnit: Millibar})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResultDisplayKeepsWarnings(t *testing.T) {
	r := Result{Warnings: []NonConvergenceError{{Quantity: "wet-bulb temperature", Iterations: 50, Gap: 0.1}}}
	report, err := r.Display(Display{TemperatureUnit: Kelvin, PressureUnit: Pascal})
	require.NoError(t, err)
	assert.False(t, report.Converged)
	require.Len(t, report.Warnings, 1)
	var nc NonConvergenceError
	assert.True(t, errors.As(report.Warnings[0], &nc))
	assert.Equal(t, "wet-bulb temperature", nc.Quantity)
}

func TestVaporPressure(t *testing.T) {
	tests := []struct {
		unit PressureUnit
		want float64
	}{
		{Pascal, 2364.037},
		{Millibar, 23.64037},
		{InchMercury, 0.698071},
		{MillimeterMercury, 17.73174},
	}

	for _, test := range tests {
		t.Run(string(test.unit), func(t *testing.T) {
			got, err := VaporPressure(20, Celsius, test.unit)
			require.NoError(t, err)
			assert.InDelta(t, test.want, got, 1e-3)
		})
	}

	_, err := VaporPressure(-500, Fahrenheit, Pascal)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConvertTemperature(t *testing.T) {
	got, err := ConvertTemperature(98.6, Fahrenheit, Celsius)
	require.NoError(t, err)
	assert.InDelta(t, 37.0, got, 1e-9)

	_, err = ConvertTemperature(-1, Kelvin, Celsius)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConvertMoisture(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		out  MoistureUnit
		want float64
	}{
		{
			"relative humidity to dew point",
			Input{Temperature: 20, TemperatureUnit: Celsius, Moisture: 50, MoistureUnit: RelativeHumidityPercent},
			DewPointCelsius,
			9.4015,
		},
		{
			"dew point to relative humidity",
			Input{Temperature: 20, TemperatureUnit: Celsius, Moisture: 10, MoistureUnit: DewPointCelsius},
			RelativeHumidityPercent,
			52.0679,
		},
		{
			"mixing ratio to dew point",
			Input{Pressure: 1000, PressureUnit: Millibar, Moisture: 10, MoistureUnit: MixingRatioGramsPerKg},
			DewPointCelsius,
			13.7660,
		},
		{
			"dew point to mixing ratio",
			Input{Pressure: 1000, PressureUnit: Millibar, Moisture: 10, MoistureUnit: DewPointCelsius},
			MixingRatioGramsPerKg,
			7.7516,
		},
		{
			"dew point to fahrenheit",
			Input{Moisture: 283.15, MoistureUnit: DewPointKelvin},
			DewPointFahrenheit,
			50.0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ConvertMoisture(test.in, test.out)
			require.NoError(t, err)
			assert.InDelta(t, test.want, got, 1e-3)
		})
	}
}

func TestConvertMoistureInvalid(t *testing.T) {
	// relative humidity needs a temperature
	_, err := ConvertMoisture(Input{Moisture: 50, MoistureUnit: RelativeHumidityPercent}, DewPointCelsius)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// dew point of 110 °C cannot exist at 1000 mb
	_, err = ConvertMoisture(
		Input{Pressure: 1000, PressureUnit: Millibar, Moisture: 110, MoistureUnit: DewPointCelsius},
		MixingRatioKgPerKg,
	)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ConvertMoisture(Input{Moisture: 280, MoistureUnit: DewPointKelvin}, "ppm")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculateSaturatedRelativeHumidity(t *testing.T) {
	kelvin := Display{TemperatureUnit: Kelvin, PressureUnit: Pascal}
	for hundredths := -3000; hundredths <= 4000; hundredths++ {
		tc := float64(hundredths) / 100
		for _, in := range []Input{
			{Temperature: tc, TemperatureUnit: Celsius, Pressure: 1013.25, PressureUnit: Millibar,
				Moisture: 100, MoistureUnit: RelativeHumidityPercent},
			{Temperature: tc, TemperatureUnit: Celsius, Pressure: 1013.25, PressureUnit: Millibar,
				Moisture: 1, MoistureUnit: RelativeHumidityFraction},
		} {
			r, err := Calculate(in, kelvin)
			require.NoError(t, err, "T=%.2f degC %s=%g", tc, in.MoistureUnit, in.Moisture)
			want := CelsiusToKelvin(tc)
			require.Equal(t, want, r.DewPoint, "T=%.2f degC", tc)
			require.Equal(t, want, r.LCLTemperature, "T=%.2f degC", tc)
			require.Equal(t, 101325.0, r.LCLPressure, "T=%.2f degC", tc)
		}
	}
}

func TestRelativeHumidityToDewPointNeverAboveTemperature(t *testing.T) {
	for hundredths := -3000; hundredths <= 4000; hundredths++ {
		temp := CelsiusToKelvin(float64(hundredths) / 100)
		for _, rh := range []float64{math.Nextafter(1, 0), 0.999999, 1} {
			assert.LessOrEqual(t, RelativeHumidityToDewPoint(temp, rh), temp, "T=%g K rh=%g", temp, rh)
		}
	}
}

func TestConvertMoistureDewPointAboveTemperature(t *testing.T) {
	for _, out := range []MoistureUnit{RelativeHumidityPercent, RelativeHumidityFraction} {
		_, err := ConvertMoisture(
			Input{Temperature: 20, TemperatureUnit: Celsius, Moisture: 25, MoistureUnit: DewPointCelsius},
			out,
		)
		assert.ErrorIs(t, err, ErrInvalidInput, out)
		var inputErr *InputError
		require.True(t, errors.As(err, &inputErr))
		assert.Equal(t, "dew point", inputErr.Field)
	}

	// equal dew point and temperature is saturation, not an error
	rh, err := ConvertMoisture(
		Input{Temperature: 20, TemperatureUnit: Celsius, Moisture: 20, MoistureUnit: DewPointCelsius},
		RelativeHumidityFraction,
	)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rh, 1e-12)
}
