// Copyright (C) 2021-2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"fmt"
	"sync"

	bsbmp "github.com/d2r2/go-bsbmp"
	i2c "github.com/d2r2/go-i2c"
	sht3x "github.com/d2r2/go-sht3x"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Readings holds one poll of a sensor. Values the sensor cannot measure stay
// nil: temperature in °C, relative humidity in percent, pressure in hPa.
type Readings struct {
	temperature *float64
	humidity    *float64
	pressure    *float64
}

type Sensor interface {
	Poll() (Readings, error)
	Labels() prometheus.Labels
}

type BMPSensor struct {
	Address uint8
	Bus     int
	Model   string
	bmp     *bsbmp.BMP
	mutex   *sync.Mutex
}

func NewBMPSensor(
	address uint8,
	bus int,
	model string,
	sensorType bsbmp.SensorType,
) (*BMPSensor, error) {
	logrus.Infof("New BMP sensor: %s,address=0x%x,bus=%d", model, address, bus)
	i2c, err := i2c.NewI2C(address, bus)
	if err != nil {
		return nil, err
	}
	bmp, err := bsbmp.NewBMP(sensorType, i2c)
	if err != nil {
		return nil, err
	}
	return &BMPSensor{
		Address: address,
		Bus:     bus,
		Model:   model,
		bmp:     bmp,
		mutex:   &sync.Mutex{},
	}, nil
}

func (s BMPSensor) Labels() prometheus.Labels {
	return prometheus.Labels{
		"address": fmt.Sprintf("0x%x", s.Address),
		"bus":     fmt.Sprintf("%d", s.Bus),
		"model":   s.Model,
	}
}

func (s BMPSensor) Poll() (Readings, error) {
	var readings Readings
	s.mutex.Lock()
	defer s.mutex.Unlock()

	temp, err := s.bmp.ReadTemperatureC(bsbmp.ACCURACY_STANDARD)
	if err != nil {
		return readings, err
	}
	roundedTemp := round64(float64(temp), 2)
	readings.temperature = &roundedTemp

	// TODO: read temperature and humidity in one go for BME280
	supported, rh, err := s.bmp.ReadHumidityRH(bsbmp.ACCURACY_STANDARD)
	if err != nil {
		return readings, err
	}
	if supported {
		roundedRH := round64(float64(rh), 2)
		readings.humidity = &roundedRH
	}

	pa, err := s.bmp.ReadPressurePa(bsbmp.ACCURACY_STANDARD)
	if err != nil {
		return readings, err
	}
	hPa := round64(float64(pa)/100, 2)
	readings.pressure = &hPa
	return readings, nil
}

type SHT3xSensor struct {
	Address          uint8
	Bus              int
	Model            string
	I2C              *i2c.I2C
	SHT3X            *sht3x.SHT3X
	mutex            *sync.Mutex
	repeatability    sht3x.MeasureRepeatability
	repeatabilityStr string
}

func NewSHT3xSensor(
	address uint8,
	bus int,
	model string,
	repeatability sht3x.MeasureRepeatability,
	repeatabilityStr string,
) (*SHT3xSensor, error) {
	logrus.Infof(
		"New SHT3x sensor: %s,address=0x%x,bus=%d,repeatability=%s",
		model,
		address,
		bus,
		repeatabilityStr,
	)
	i2c, err := i2c.NewI2C(address, bus)
	if err != nil {
		return nil, err
	}
	return &SHT3xSensor{
		Address:          address,
		Bus:              bus,
		Model:            model,
		I2C:              i2c,
		SHT3X:            sht3x.NewSHT3X(),
		mutex:            &sync.Mutex{},
		repeatability:    repeatability,
		repeatabilityStr: repeatabilityStr,
	}, nil
}

func (s SHT3xSensor) Labels() prometheus.Labels {
	return prometheus.Labels{
		"address":       fmt.Sprintf("0x%x", s.Address),
		"bus":           fmt.Sprintf("%d", s.Bus),
		"model":         s.Model,
		"repeatability": s.repeatabilityStr,
	}
}

// Poll reads temperature and humidity. SHT3x sensors have no barometer, the
// collector falls back to the configured station pressure.
func (s SHT3xSensor) Poll() (Readings, error) {
	var readings Readings

	s.mutex.Lock()
	temp, rh, err := s.SHT3X.ReadTemperatureAndRelativeHumidity(s.I2C, s.repeatability)
	s.mutex.Unlock()
	if err != nil {
		return readings, err
	}

	roundedTemp := round64(float64(temp), 2)
	roundedRH := round64(float64(rh), 2)
	readings.temperature = &roundedTemp
	readings.humidity = &roundedRH
	return readings, nil
}
