// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package thermo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLCLSaturated(t *testing.T) {
	lcl, err := LiftedCondensationLevel(State{Temperature: 288.0, Pressure: 100000, DewPoint: 288.0})
	require.NoError(t, err)
	assert.Equal(t, 288.0, lcl.Temperature)
	assert.Equal(t, 100000.0, lcl.Pressure)
	assert.Equal(t, 0, lcl.Solution.Iterations)
	assert.True(t, lcl.Solution.Converged)
}

func TestLCL(t *testing.T) {
	tests := []struct {
		name        string
		state       State
		temperature float64
		pressure    float64
	}{
		{"warm", State{Temperature: 300, Pressure: 100000, DewPoint: 290}, 287.7514, 86419.9},
		{"mild", State{Temperature: 293.15, Pressure: 101325, DewPoint: 283.15}, 280.9682, 87333.1},
		{"hot", State{Temperature: 310, Pressure: 101325, DewPoint: 300}, 297.6544, 87886.4},
		{"aloft", State{Temperature: 250, Pressure: 50000, DewPoint: 240}, 238.2080, 42218.3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			lcl, err := LiftedCondensationLevel(test.state)
			require.NoError(t, err)
			assert.True(t, lcl.Solution.Converged)
			assert.LessOrEqual(t, lcl.Solution.Gap, Tolerance)
			assert.InDelta(t, test.temperature, lcl.Temperature, 1e-3)
			assert.InDelta(t, test.pressure, lcl.Pressure, 1)
			assert.Less(t, lcl.Temperature, test.state.Temperature)
			assert.Less(t, lcl.Pressure, test.state.Pressure)
			assert.InDelta(t, poissonPressure(lcl.Temperature, test.state.Temperature, test.state.Pressure),
				lcl.Pressure, 1e-9)
		})
	}
}

func TestLCLInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"zero pressure", State{Temperature: 300, Pressure: 0, DewPoint: 290}, "invalid pressure '0': must be greater than zero"},
		{"negative temperature", State{Temperature: -1, Pressure: 100000, DewPoint: 290}, "invalid temperature '-1': must be greater than zero"},
		{"supersaturated", State{Temperature: 290, Pressure: 100000, DewPoint: 290.5}, "invalid dew point '290.5': above air temperature"},
		{"boiling", State{Temperature: 380, Pressure: 100000, DewPoint: 290}, "invalid pressure '100000': not above the saturation vapor pressure"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LiftedCondensationLevel(test.state)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.EqualError(t, err, test.want)
		})
	}
}
