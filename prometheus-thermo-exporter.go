// Copyright (C) 2021-2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"math"
	"net/http"

	"github.com/bdrung/prometheus-thermo-exporter/thermo"
	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func round64(value float64, precision int) float64 {
	return math.Round(value*math.Pow10(precision)) / math.Pow10(precision)
}

// loadConfig reads the config file (if any) and lets explicitly given flags
// override its values.
func loadConfig(flags *pflag.FlagSet, args []string) (*Config, error) {
	cfg := NewConfig()
	cfgPath := flags.Lookup("config").Value.String()
	if cfgPath != "" {
		if err := cfg.Load(cfgPath); err != nil {
			return nil, err
		}
	}

	overrides := map[string]*string{
		"web.listen-address": &cfg.ListenAddress,
		"web.telemetry-path": &cfg.TelemetryPath,
		"log.level":          &cfg.LogLevel,
		"temperature-unit":   &cfg.TemperatureUnit,
		"pressure-unit":      &cfg.PressureUnit,
	}
	for name, value := range overrides {
		flag := flags.Lookup(name)
		if flag.Changed {
			*value = flag.Value.String()
		}
	}
	cfg.Sensors = append(cfg.Sensors, args...)
	return cfg, nil
}

func (c *Config) Display() (thermo.Display, error) {
	temperatureUnit, err := thermo.ParseTemperatureUnit(c.TemperatureUnit)
	if err != nil {
		return thermo.Display{}, err
	}
	pressureUnit, err := thermo.ParsePressureUnit(c.PressureUnit)
	if err != nil {
		return thermo.Display{}, err
	}
	return thermo.Display{TemperatureUnit: temperatureUnit, PressureUnit: pressureUnit}, nil
}

func defineFlags(flags *pflag.FlagSet) {
	flags.String(
		"web.listen-address", ":9775", "Address on which to expose metrics and web interface.",
	)
	flags.String(
		"web.telemetry-path", "/metrics", "Path under which to expose metrics.",
	)
	flags.String("config", "", "Path to a YAML config file.")
	flags.String("log.level", "info", "Log level (debug, info, warn, error).")
	flags.String(
		"temperature-unit", "degC", "Unit of derived temperatures (K, degC, degF).",
	)
	flags.String(
		"pressure-unit", "mb", "Unit of pressures (Pa, mb, inHg, mmHg).",
	)
}

func main() {
	defineFlags(pflag.CommandLine)
	pflag.Parse()

	cfg, err := loadConfig(pflag.CommandLine, pflag.Args())
	if err != nil {
		logrus.Fatal(err)
	}
	if err := setLogLevel(cfg.LogLevel); err != nil {
		logrus.Fatal(err)
	}
	display, err := cfg.Display()
	if err != nil {
		logrus.Fatal(err)
	}
	sensors, err := parseSensors(cfg.Sensors)
	if err != nil {
		logrus.Fatal(err)
	}

	for _, flags := range sensors {
		sensor, err := flags.NewSensor()
		if err != nil {
			logrus.Fatal(err)
		}
		collector := NewSensorCollector(sensor, flags, display)
		prometheus.MustRegister(collector)
	}
	prometheus.MustRegister(versioncollector.NewCollector("thermo_exporter"))

	logrus.Infof(
		"Serving Prometheus thermo exporter on %s%s - for example http://localhost%s%s",
		cfg.ListenAddress,
		cfg.TelemetryPath,
		cfg.ListenAddress,
		cfg.TelemetryPath,
	)
	http.Handle(cfg.TelemetryPath, promhttp.Handler())
	logrus.Fatal(http.ListenAndServe(cfg.ListenAddress, nil))
}
