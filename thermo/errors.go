// Copyright (C) 2025, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package thermo

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNonConvergence = errors.New("solver did not converge")
)

// InputError reports a value that is non-finite, outside of the physical
// range, or tagged with an unknown unit. It matches ErrInvalidInput.
type InputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s '%v': %s", e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// NonConvergenceError is a warning: the solver for Quantity hit the iteration
// cap and the reported value is the midpoint of the final bracket.
type NonConvergenceError struct {
	Quantity   string
	Iterations int
	Gap        float64
}

func (e NonConvergenceError) Error() string {
	return fmt.Sprintf("%s: no convergence after %d iterations (residual gap %g)",
		e.Quantity, e.Iterations, e.Gap)
}

func (e NonConvergenceError) Unwrap() error {
	return ErrNonConvergence
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InputError{Field: field, Value: v, Reason: "not a finite number"}
	}
	return nil
}

func checkPositive(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return &InputError{Field: field, Value: v, Reason: "must be greater than zero"}
	}
	return nil
}
