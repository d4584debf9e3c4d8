// Copyright (C) 2021-2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"fmt"

	"github.com/bdrung/prometheus-thermo-exporter/thermo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// derivedMetric is a gauge filled from the thermodynamic report of a poll.
type derivedMetric struct {
	desc  *prometheus.Desc
	value func(r thermo.Report) float64
}

type sensorCollector struct {
	Sensor          Sensor
	Up              *prometheus.Desc
	TemperatureC    *prometheus.Desc
	HumidityRH      *prometheus.Desc
	HumidityGram    *prometheus.Desc
	RawTemperatureC *prometheus.Desc
	RawHumidityRH   *prometheus.Desc
	RawHumidityGram *prometheus.Desc
	Pressure        *prometheus.Desc
	Converged       *prometheus.Desc
	Derived         []derivedMetric
	TempOffset      float64
	HumidityOffset  float64
	StationPressure float64
	Display         thermo.Display
}

func temperatureSuffix(unit thermo.TemperatureUnit) string {
	switch unit {
	case thermo.Kelvin:
		return "kelvin"
	case thermo.Fahrenheit:
		return "fahrenheit"
	default:
		return "celsius"
	}
}

func pressureSuffix(unit thermo.PressureUnit) string {
	switch unit {
	case thermo.Pascal:
		return "pascals"
	case thermo.InchMercury:
		return "inches_of_mercury"
	case thermo.MillimeterMercury:
		return "millimeters_of_mercury"
	default:
		return "hectopascals"
	}
}

func newDerivedMetrics(labels prometheus.Labels, display thermo.Display) []derivedMetric {
	t := temperatureSuffix(display.TemperatureUnit)
	p := pressureSuffix(display.PressureUnit)
	gauge := func(name, help string, value func(r thermo.Report) float64) derivedMetric {
		return derivedMetric{
			desc:  prometheus.NewDesc(name, help, nil, labels),
			value: value,
		}
	}

	return []derivedMetric{
		gauge("sensor_dew_point_"+t, "Dew point in "+t,
			func(r thermo.Report) float64 { return r.DewPoint }),
		gauge("sensor_potential_temperature_"+t, "Potential temperature in "+t,
			func(r thermo.Report) float64 { return r.PotentialTemperature }),
		gauge("sensor_equivalent_potential_temperature_"+t, "Equivalent potential temperature in "+t,
			func(r thermo.Report) float64 { return r.EquivalentPotentialTemperature }),
		gauge("sensor_saturated_equivalent_potential_temperature_"+t,
			"Saturated equivalent potential temperature in "+t,
			func(r thermo.Report) float64 { return r.SaturatedEquivalentPotentialTemperature }),
		gauge("sensor_wet_bulb_potential_temperature_"+t, "Wet-bulb potential temperature in "+t,
			func(r thermo.Report) float64 { return r.WetBulbPotentialTemperature }),
		gauge("sensor_lcl_temperature_"+t, "Temperature at the lifted condensation level in "+t,
			func(r thermo.Report) float64 { return r.LCLTemperature }),
		gauge("sensor_lcl_pressure_"+p, "Pressure at the lifted condensation level in "+p,
			func(r thermo.Report) float64 { return r.LCLPressure }),
		gauge("sensor_mixing_ratio_grams_per_kilogram", "Mixing ratio in gram water vapor / kilogram dry air",
			func(r thermo.Report) float64 { return r.MixingRatio }),
		gauge("sensor_virtual_temperature_"+t, "Virtual temperature in "+t,
			func(r thermo.Report) float64 { return r.VirtualTemperature }),
		gauge("sensor_equivalent_temperature_"+t, "Equivalent temperature in "+t,
			func(r thermo.Report) float64 { return r.EquivalentTemperature }),
		gauge("sensor_wet_bulb_temperature_"+t, "Wet-bulb temperature in "+t,
			func(r thermo.Report) float64 { return r.WetBulbTemperature }),
	}
}

func NewSensorCollector(s Sensor, flags SensorFlags, display thermo.Display) *sensorCollector {
	labels := s.Labels()
	p := pressureSuffix(display.PressureUnit)
	return &sensorCollector{
		Sensor: s,
		TemperatureC: prometheus.NewDesc(
			"sensor_temperature_celsius",
			"Temperature in Celsius",
			nil,
			labels,
		),
		HumidityRH: prometheus.NewDesc(
			"sensor_humidity_percent",
			"Relative humidity in percent",
			nil,
			labels,
		),
		HumidityGram: prometheus.NewDesc(
			"sensor_humidity_grams_per_cubic_meter",
			"Absolute humidity in gram / cubic meter",
			nil,
			labels,
		),
		Up: prometheus.NewDesc(
			"sensor_up",
			"Value is 1 if reading sensor date was successful, 0 otherwise.",
			nil,
			labels,
		),
		RawTemperatureC: prometheus.NewDesc(
			"sensor_raw_temperature_celsius",
			"Uncorrected temperature in Celsius",
			nil,
			labels,
		),
		RawHumidityRH: prometheus.NewDesc(
			"sensor_raw_humidity_percent",
			"Uncorrected relative humidity in percent",
			nil,
			labels,
		),
		RawHumidityGram: prometheus.NewDesc(
			"sensor_raw_humidity_grams_per_cubic_meter",
			"Uncorrected absolute humidity in gram / cubic meter",
			nil,
			labels,
		),
		Pressure: prometheus.NewDesc(
			"sensor_pressure_"+p,
			"Air pressure in "+p,
			nil,
			labels,
		),
		Converged: prometheus.NewDesc(
			"sensor_derived_converged",
			"Value is 1 if every solver for the derived quantities converged, 0 otherwise.",
			nil,
			labels,
		),
		Derived:         newDerivedMetrics(labels, display),
		TempOffset:      flags.TempOffset,
		HumidityOffset:  flags.HumidityOffset,
		StationPressure: flags.StationPressure(),
		Display:         display,
	}
}

// absoluteHumidity returns the absolute humidity in g/m³ for a relative
// humidity in percent and a temperature in Celsius. The relative humidity has
// to be greater than zero.
func absoluteHumidity(relativeHumidity float64, temperatureCelsius float64) float64 {
	t := thermo.CelsiusToKelvin(temperatureCelsius)
	td := thermo.RelativeHumidityToDewPoint(t, relativeHumidity/100)
	return thermo.AbsoluteHumidity(t, td)
}

func (collector *sensorCollector) Collect(ch chan<- prometheus.Metric) {
	readings, err := collector.Sensor.Poll()
	if err != nil {
		logrus.Print(err)
		ch <- prometheus.MustNewConstMetric(collector.Up, prometheus.GaugeValue, 0.0)
	} else {
		ch <- prometheus.MustNewConstMetric(collector.Up, prometheus.GaugeValue, 1)
	}
	if readings.temperature != nil {
		ch <- prometheus.MustNewConstMetric(
			collector.TemperatureC,
			prometheus.GaugeValue,
			*readings.temperature+collector.TempOffset,
		)
		ch <- prometheus.MustNewConstMetric(
			collector.RawTemperatureC,
			prometheus.GaugeValue,
			*readings.temperature,
		)
	}

	pressure := collector.StationPressure
	if readings.pressure != nil {
		pressure = *readings.pressure
		value, err := thermo.ToPascal(pressure, thermo.Millibar)
		if err == nil {
			value, err = thermo.FromPascal(value, collector.Display.PressureUnit)
		}
		if err != nil {
			logrus.Warn(err)
		} else {
			ch <- prometheus.MustNewConstMetric(collector.Pressure, prometheus.GaugeValue, round64(value, 2))
		}
	}

	if readings.humidity == nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(
		collector.HumidityRH,
		prometheus.GaugeValue,
		*readings.humidity+collector.HumidityOffset,
	)
	ch <- prometheus.MustNewConstMetric(
		collector.RawHumidityRH,
		prometheus.GaugeValue,
		*readings.humidity,
	)
	if readings.temperature == nil {
		return
	}

	temperature := *readings.temperature + collector.TempOffset
	humidity := *readings.humidity + collector.HumidityOffset
	// a humidity offset can push the corrected value to zero or below
	if humidity > 0 {
		ch <- prometheus.MustNewConstMetric(
			collector.HumidityGram,
			prometheus.GaugeValue,
			round64(absoluteHumidity(humidity, temperature), 2),
		)
	}
	if *readings.humidity > 0 {
		ch <- prometheus.MustNewConstMetric(
			collector.RawHumidityGram,
			prometheus.GaugeValue,
			round64(absoluteHumidity(*readings.humidity, *readings.temperature), 2),
		)
	}
	collector.collectDerived(ch, temperature, humidity, pressure)
}

func (collector *sensorCollector) collectDerived(
	ch chan<- prometheus.Metric,
	temperature float64,
	humidity float64,
	pressure float64,
) {
	in := thermo.Input{
		Temperature:     temperature,
		TemperatureUnit: thermo.Celsius,
		Pressure:        pressure,
		PressureUnit:    thermo.Millibar,
		Moisture:        humidity,
		MoistureUnit:    thermo.RelativeHumidityPercent,
	}
	report, err := thermo.Calculate(in, collector.Display)
	if err != nil {
		logrus.Warnf("%s: skipping derived quantities: %s", labelString(collector.Sensor), err)
		return
	}
	lg.Debugf("%s: %+v", labelString(collector.Sensor), report)

	converged := 1.0
	for _, warning := range report.Warnings {
		logrus.Warnf("%s: %s", labelString(collector.Sensor), warning)
		converged = 0
	}
	for _, m := range collector.Derived {
		ch <- prometheus.MustNewConstMetric(m.desc, prometheus.GaugeValue, round64(m.value(report), 2))
	}
	ch <- prometheus.MustNewConstMetric(collector.Converged, prometheus.GaugeValue, converged)
}

func (collector *sensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.TemperatureC
	ch <- collector.HumidityRH
	ch <- collector.HumidityGram
	ch <- collector.Up
	ch <- collector.RawTemperatureC
	ch <- collector.RawHumidityRH
	ch <- collector.RawHumidityGram
	ch <- collector.Pressure
	ch <- collector.Converged
	for _, m := range collector.Derived {
		ch <- m.desc
	}
}

func labelString(s Sensor) string {
	labels := s.Labels()
	return fmt.Sprintf("%s,address=%s,bus=%s", labels["model"], labels["address"], labels["bus"])
}
