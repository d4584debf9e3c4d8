// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file. Command line flags that are
// given explicitly take precedence, sensors from both sources are combined.
type Config struct {
	ListenAddress   string   `yaml:"listen_address"`
	TelemetryPath   string   `yaml:"telemetry_path"`
	LogLevel        string   `yaml:"log_level"`
	TemperatureUnit string   `yaml:"temperature_unit"`
	PressureUnit    string   `yaml:"pressure_unit"`
	Sensors         []string `yaml:"sensors"`
}

func NewConfig() *Config {
	return &Config{
		ListenAddress:   ":9775",
		TelemetryPath:   "/metrics",
		LogLevel:        "info",
		TemperatureUnit: "degC",
		PressureUnit:    "mb",
	}
}

func (c *Config) Load(cfgPath string) error {
	b, err := os.ReadFile(path.Clean(cfgPath))
	if err != nil {
		return err
	}
	err = yaml.Unmarshal(b, c)
	if err != nil {
		return fmt.Errorf("Failed to parse config file '%s': %w", cfgPath, err)
	}
	return nil
}
