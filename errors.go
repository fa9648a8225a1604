// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"errors"
	"fmt"
)

// ErrBreakdown is matched by errors.Is for every *BreakdownError.
var ErrBreakdown = errors.New("krylov: breakdown")

// BreakdownError reports that a recurrence could not continue because a
// quantity it divides by vanished or stopped being finite.
type BreakdownError struct {
	// Method is the name of the method that broke down.
	Method string
	// Iteration is the zero-based index of the iteration during which
	// the breakdown was detected.
	Iteration int
	// Quantity names the offending divisor, for example "p·Ap".
	Quantity string
	// Value is the offending value.
	Value float64
}

func (e *BreakdownError) Error() string {
	return fmt.Sprintf("krylov: %s breakdown in iteration %d: %s = %g", e.Method, e.Iteration, e.Quantity, e.Value)
}

func (e *BreakdownError) Is(target error) bool { return target == ErrBreakdown }

// DimensionError is the panic value used when the operands of a solve have
// incompatible dimensions.
type DimensionError struct {
	// Op is the solver that rejected its operands.
	Op string
	// What describes the violated relation.
	What string
	// Got and Want are the dimensions that were compared.
	Got, Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("krylov: %s: %s: got %d, want %d", e.Op, e.What, e.Got, e.Want)
}
