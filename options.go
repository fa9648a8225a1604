// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"math"

	"github.com/rs/zerolog"
)

// Options holds various settings for
// solving a linear system. An Options value
// is never modified by a solver.
type Options[F Float] struct {
	// Tolerance is the stopping threshold
	// on the Euclidean norm of the
	// residual b-A*x. The iteration stops
	// as soon as
	//  |r_i| < Tolerance
	// or the residual is exactly zero.
	// For a tolerance relative to the
	// right-hand side pass tol * |b|.
	// It must not be negative.
	Tolerance F

	// MaxIterations is the hard limit on
	// the number of iterations. Reaching it
	// is not an error; Result.Converged is
	// false in that case. Zero means that
	// only the initial residual is
	// computed.
	MaxIterations int

	// Restart is the restart interval of
	// restarted methods. The conjugate
	// gradient family does not restart and
	// ignores it.
	Restart int

	// Logger receives progress of the
	// solve. If it is nil, nothing is
	// logged.
	Logger *zerolog.Logger
}

// DefaultOptions32 returns the default options for single precision systems.
func DefaultOptions32() Options[float32] {
	return Options[float32]{
		Tolerance:     1e-7,
		MaxIterations: 10000,
		Restart:       25,
	}
}

// DefaultOptions64 returns the default options for double precision systems.
func DefaultOptions64() Options[float64] {
	return Options[float64]{
		Tolerance:     1e-16,
		MaxIterations: 10000,
		Restart:       25,
	}
}

// DefaultOptions returns DefaultOptions32 or DefaultOptions64 depending on F.
func DefaultOptions[F Float]() Options[F] {
	var z F
	if _, ok := any(z).(float32); ok {
		d := DefaultOptions32()
		return Options[F]{
			Tolerance:     F(d.Tolerance),
			MaxIterations: d.MaxIterations,
			Restart:       d.Restart,
		}
	}
	d := DefaultOptions64()
	return Options[F]{
		Tolerance:     F(d.Tolerance),
		MaxIterations: d.MaxIterations,
		Restart:       d.Restart,
	}
}

// converged reports whether norm satisfies the stopping criterion. An exact
// zero residual stops the iteration even when Tolerance is zero.
func (o *Options[F]) converged(norm F) bool {
	return norm < o.Tolerance || norm == 0
}

func (o *Options[F]) check() {
	tol := float64(o.Tolerance)
	switch {
	case math.IsNaN(tol) || tol < 0:
		panic("krylov: invalid tolerance")
	case o.MaxIterations < 0:
		panic("krylov: negative iteration limit")
	case o.Restart < 0:
		panic("krylov: negative restart interval")
	}
}

func (o *Options[F]) logger() *zerolog.Logger {
	if o.Logger == nil {
		l := zerolog.Nop()
		return &l
	}
	return o.Logger
}
