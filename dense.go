// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/mat"

	"github.com/vladimir-ch/krylov/internal/vec"
)

// Dense is a dense matrix stored in row-major order. Its products are
// computed with BLAS Gemv.
type Dense[F Float] struct {
	rows, cols int
	data       []F
}

// NewDense returns an r×c dense matrix backed by data, which is stored in
// row-major order and must have length r*c. If data is nil, a new zeroed
// slice is allocated.
func NewDense[F Float](r, c int, data []F) *Dense[F] {
	if r < 0 || c < 0 {
		panic("krylov: negative dimension")
	}
	if data == nil {
		data = make([]F, r*c)
	}
	if len(data) != r*c {
		panic(&DimensionError{Op: "NewDense", What: "length of data does not match r*c", Got: len(data), Want: r * c})
	}
	return &Dense[F]{rows: r, cols: c, data: data}
}

// Dims implements the Matrix interface.
func (m *Dense[F]) Dims() (r, c int) { return m.rows, m.cols }

// At returns the element at row i, column j.
func (m *Dense[F]) At(i, j int) F {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set sets the element at row i, column j to v.
func (m *Dense[F]) Set(i, j int, v F) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

func (m *Dense[F]) check(i, j int) {
	if i < 0 || m.rows <= i {
		panic("krylov: row index out of range")
	}
	if j < 0 || m.cols <= j {
		panic("krylov: column index out of range")
	}
}

// MulVec implements the Matrix interface.
func (m *Dense[F]) MulVec(dst, x []F) {
	if len(x) != m.cols || len(dst) != m.rows {
		panic("krylov: dimension mismatch")
	}
	if m.rows == 0 || m.cols == 0 {
		clear(dst)
		return
	}
	vec.Gemv(blas.NoTrans, m.rows, m.cols, m.data, m.cols, x, dst)
}

// MulTransVec implements the Matrix interface.
func (m *Dense[F]) MulTransVec(dst, x []F) {
	if len(x) != m.rows || len(dst) != m.cols {
		panic("krylov: dimension mismatch")
	}
	if m.rows == 0 || m.cols == 0 {
		clear(dst)
		return
	}
	vec.Gemv(blas.Trans, m.rows, m.cols, m.data, m.cols, x, dst)
}

// FromMat returns a Matrix that computes its products with the gonum
// matrix m.
func FromMat(m mat.Matrix) Matrix[float64] {
	return matOps{m}
}

type matOps struct {
	m mat.Matrix
}

func (a matOps) Dims() (r, c int) { return a.m.Dims() }

func (a matOps) MulVec(dst, x []float64) {
	mulVec(dst, a.m, x)
}

func (a matOps) MulTransVec(dst, x []float64) {
	mulVec(dst, a.m.T(), x)
}

func mulVec(dst []float64, m mat.Matrix, x []float64) {
	r, c := m.Dims()
	if len(x) != c || len(dst) != r {
		panic("krylov: dimension mismatch")
	}
	if r == 0 || c == 0 {
		clear(dst)
		return
	}
	d := mat.NewVecDense(r, dst)
	d.MulVec(m, mat.NewVecDense(c, x))
}
