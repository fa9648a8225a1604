// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vec dispatches the level 1 and level 2 BLAS kernels used by the
// solvers to blas32 or blas64 depending on the scalar type.
package vec

import (
	"math"
	"unsafe"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
)

// Float is the set of supported scalar types.
type Float interface {
	float32 | float64
}

func v64(x []float64) blas64.Vector { return blas64.Vector{N: len(x), Data: x, Inc: 1} }
func v32(x []float32) blas32.Vector { return blas32.Vector{N: len(x), Data: x, Inc: 1} }

// Dot returns x·y.
func Dot[F Float](x, y []F) F {
	if len(x) != len(y) {
		panic("vec: slice length mismatch")
	}
	switch x := any(x).(type) {
	case []float64:
		return F(blas64.Dot(v64(x), v64(any(y).([]float64))))
	case []float32:
		return F(blas32.Dot(v32(x), v32(any(y).([]float32))))
	}
	panic("unreachable")
}

// Norm returns the Euclidean norm of x.
func Norm[F Float](x []F) F {
	switch x := any(x).(type) {
	case []float64:
		return F(blas64.Nrm2(v64(x)))
	case []float32:
		return F(blas32.Nrm2(v32(x)))
	}
	panic("unreachable")
}

// AddScaled computes y += alpha*x.
func AddScaled[F Float](y []F, alpha F, x []F) {
	if len(x) != len(y) {
		panic("vec: slice length mismatch")
	}
	switch y := any(y).(type) {
	case []float64:
		blas64.Axpy(float64(alpha), v64(any(x).([]float64)), v64(y))
	case []float32:
		blas32.Axpy(float32(alpha), v32(any(x).([]float32)), v32(y))
	}
}

// ScaleAdd computes y = x + alpha*y.
func ScaleAdd[F Float](y []F, alpha F, x []F) {
	if len(x) != len(y) {
		panic("vec: slice length mismatch")
	}
	switch y := any(y).(type) {
	case []float64:
		blas64.Scal(float64(alpha), v64(y))
		blas64.Axpy(1, v64(any(x).([]float64)), v64(y))
	case []float32:
		blas32.Scal(float32(alpha), v32(y))
		blas32.Axpy(1, v32(any(x).([]float32)), v32(y))
	}
}

// Gemv computes y = A*x or y = A^T*x for the row-major r×c matrix stored in
// data with the given stride.
func Gemv[F Float](t blas.Transpose, r, c int, data []F, stride int, x, y []F) {
	switch a := any(data).(type) {
	case []float64:
		blas64.Gemv(t, 1, blas64.General{Rows: r, Cols: c, Data: a, Stride: stride},
			v64(any(x).([]float64)), 0, v64(any(y).([]float64)))
	case []float32:
		blas32.Gemv(t, 1, blas32.General{Rows: r, Cols: c, Data: a, Stride: stride},
			v32(any(x).([]float32)), 0, v32(any(y).([]float32)))
	}
}

// Usable reports whether v can be used as a divisor in a recurrence. Zero,
// subnormal, infinite and NaN values are not usable.
func Usable[F Float](v F) bool {
	a := math.Abs(float64(v))
	return a >= minNormal[F]() && !math.IsInf(a, 0)
}

func minNormal[F Float]() float64 {
	var z F
	if _, ok := any(z).(float32); ok {
		return 0x1p-126
	}
	return 0x1p-1022
}

// SameStorage reports whether the memory ranges of x and y overlap.
func SameStorage[F Float](x, y []F) bool {
	if len(x) == 0 || len(y) == 0 {
		return false
	}
	x0, x1 := uintptr(unsafe.Pointer(&x[0])), uintptr(unsafe.Pointer(&x[len(x)-1]))
	y0, y1 := uintptr(unsafe.Pointer(&y[0])), uintptr(unsafe.Pointer(&y[len(y)-1]))
	return x0 <= y1 && y0 <= x1
}
