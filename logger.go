// Copyright (C) 2021-2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"fmt"
	"strings"

	logger "github.com/d2r2/go-logger"
	"github.com/sirupsen/logrus"
)

var lg = logger.NewPackageLogger("exporter", logger.InfoLevel)

// setLogLevel applies level to logrus and to the package logger. The I2C
// driver packages stay at info level, their debug output is one line per
// register access.
func setLogLevel(level string) error {
	var packageLevel logger.LogLevel
	switch strings.ToLower(level) {
	case "debug":
		packageLevel = logger.DebugLevel
	case "info":
		packageLevel = logger.InfoLevel
	case "warn", "warning":
		packageLevel = logger.WarnLevel
	case "error":
		packageLevel = logger.ErrorLevel
	default:
		return fmt.Errorf("Invalid log level '%s' (allowed: debug, info, warn, error)", level)
	}

	logrusLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(logrusLevel)
	logger.ChangePackageLogLevel("exporter", packageLevel)
	logger.ChangePackageLogLevel("bsbmp", logger.InfoLevel)
	logger.ChangePackageLogLevel("i2c", logger.InfoLevel)
	logger.ChangePackageLogLevel("sht3x", logger.InfoLevel)
	return nil
}
