// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// thermo-calc derives thermodynamic quantities from a single measurement
// given on the command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bdrung/prometheus-thermo-exporter/thermo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type options struct {
	mode               string
	output             string
	temperature        float64
	temperatureUnit    string
	pressure           float64
	pressureUnit       string
	moisture           float64
	moistureUnit       string
	outTemperatureUnit string
	outPressureUnit    string
	outMoistureUnit    string
}

func parseOptions(args []string) (options, error) {
	var o options
	flags := pflag.NewFlagSet("thermo-calc", pflag.ContinueOnError)
	flags.StringVar(&o.mode, "mode", "thermo", "Calculation: thermo, vapor, temperature or moisture.")
	flags.StringVar(&o.output, "output", "text", "Output format: text or yaml.")
	flags.Float64Var(&o.temperature, "temperature", 0, "Air temperature.")
	flags.StringVar(&o.temperatureUnit, "temperature-unit", "degC", "Unit of --temperature (K, degC, degF).")
	flags.Float64Var(&o.pressure, "pressure", 1013.25, "Air pressure.")
	flags.StringVar(&o.pressureUnit, "pressure-unit", "mb", "Unit of --pressure (Pa, mb, inHg, mmHg).")
	flags.Float64Var(&o.moisture, "moisture", 0, "Moisture measurement.")
	flags.StringVar(&o.moistureUnit, "moisture-unit", "RH%",
		"Unit of --moisture (dewK, dewC, dewF, RH, RH%, w, g/kg).")
	flags.StringVar(&o.outTemperatureUnit, "out-temperature-unit", "degC", "Unit of temperature results.")
	flags.StringVar(&o.outPressureUnit, "out-pressure-unit", "mb", "Unit of pressure results.")
	flags.StringVar(&o.outMoistureUnit, "out-moisture-unit", "dewC", "Unit of the moisture conversion result.")
	if err := flags.Parse(args); err != nil {
		return o, err
	}
	if flags.NArg() > 0 {
		return o, fmt.Errorf("Unexpected argument '%s'", flags.Arg(0))
	}
	switch o.output {
	case "text", "yaml":
	default:
		return o, fmt.Errorf("Invalid output format '%s' (allowed: text, yaml)", o.output)
	}
	return o, nil
}

func (o options) input() (thermo.Input, error) {
	temperatureUnit, err := thermo.ParseTemperatureUnit(o.temperatureUnit)
	if err != nil {
		return thermo.Input{}, err
	}
	pressureUnit, err := thermo.ParsePressureUnit(o.pressureUnit)
	if err != nil {
		return thermo.Input{}, err
	}
	moistureUnit, err := thermo.ParseMoistureUnit(o.moistureUnit)
	if err != nil {
		return thermo.Input{}, err
	}
	return thermo.Input{
		Temperature:     o.temperature,
		TemperatureUnit: temperatureUnit,
		Pressure:        o.pressure,
		PressureUnit:    pressureUnit,
		Moisture:        o.moisture,
		MoistureUnit:    moistureUnit,
	}, nil
}

func (o options) display() (thermo.Display, error) {
	temperatureUnit, err := thermo.ParseTemperatureUnit(o.outTemperatureUnit)
	if err != nil {
		return thermo.Display{}, err
	}
	pressureUnit, err := thermo.ParsePressureUnit(o.outPressureUnit)
	if err != nil {
		return thermo.Display{}, err
	}
	return thermo.Display{TemperatureUnit: temperatureUnit, PressureUnit: pressureUnit}, nil
}

func run(args []string, w io.Writer) error {
	o, err := parseOptions(args)
	if err != nil {
		return err
	}
	in, err := o.input()
	if err != nil {
		return err
	}
	display, err := o.display()
	if err != nil {
		return err
	}

	switch o.mode {
	case "thermo":
		report, err := thermo.Calculate(in, display)
		if err != nil {
			return err
		}
		for _, warning := range report.Warnings {
			logrus.Warn(warning)
		}
		return writeReport(w, o.output, report)
	case "vapor":
		e, err := thermo.VaporPressure(in.Temperature, in.TemperatureUnit, display.PressureUnit)
		if err != nil {
			return err
		}
		return writeValue(w, o.output, "vapor_pressure", e, string(display.PressureUnit))
	case "temperature":
		t, err := thermo.ConvertTemperature(in.Temperature, in.TemperatureUnit, display.TemperatureUnit)
		if err != nil {
			return err
		}
		return writeValue(w, o.output, "temperature", t, string(display.TemperatureUnit))
	case "moisture":
		out, err := thermo.ParseMoistureUnit(o.outMoistureUnit)
		if err != nil {
			return err
		}
		m, err := thermo.ConvertMoisture(in, out)
		if err != nil {
			return err
		}
		return writeValue(w, o.output, "moisture", m, string(out))
	default:
		return fmt.Errorf("Unknown mode '%s' (allowed: thermo, vapor, temperature, moisture)", o.mode)
	}
}

func writeReport(w io.Writer, format string, r thermo.Report) error {
	if format == "yaml" {
		return yaml.NewEncoder(w).Encode(r)
	}

	t := r.TemperatureUnit
	lines := []struct {
		label string
		value float64
		unit  string
	}{
		{"Potential temperature", r.PotentialTemperature, string(t)},
		{"Equivalent potential temperature", r.EquivalentPotentialTemperature, string(t)},
		{"Saturated equivalent potential temperature", r.SaturatedEquivalentPotentialTemperature, string(t)},
		{"Wet-bulb potential temperature", r.WetBulbPotentialTemperature, string(t)},
		{"LCL pressure", r.LCLPressure, string(r.PressureUnit)},
		{"LCL temperature", r.LCLTemperature, string(t)},
		{"Mixing ratio", r.MixingRatio, "g/kg"},
		{"Relative humidity", r.RelativeHumidity, "%"},
		{"Absolute humidity", r.AbsoluteHumidity, "g/m³"},
		{"Dew point", r.DewPoint, string(t)},
		{"Virtual temperature", r.VirtualTemperature, string(t)},
		{"Equivalent temperature", r.EquivalentTemperature, string(t)},
		{"Wet-bulb temperature", r.WetBulbTemperature, string(t)},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%-44s %10.2f %s\n", line.label+":", line.value, line.unit); err != nil {
			return err
		}
	}
	return nil
}

func writeValue(w io.Writer, format string, name string, value float64, unit string) error {
	if format == "yaml" {
		return yaml.NewEncoder(w).Encode(map[string]any{name: value, "unit": unit})
	}
	_, err := fmt.Fprintf(w, "%.2f %s\n", value, unit)
	return err
}

func main() {
	err := run(os.Args[1:], os.Stdout)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		logrus.Fatal(err)
	}
}
