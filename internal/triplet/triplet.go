// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package triplet provides a coordinate-format sparse matrix that satisfies
// the krylov.Matrix interface.
package triplet

import "github.com/vladimir-ch/krylov/internal/vec"

type triplet[F vec.Float] struct {
	i, j int
	v    F
}

// Matrix is a sparse matrix stored as an unordered list of (i, j, v)
// entries. Duplicate entries are summed.
type Matrix[F vec.Float] struct {
	r, c int
	data []triplet[F]
}

func New[F vec.Float](r, c int) *Matrix[F] {
	if r < 0 || c < 0 {
		panic("triplet: negative dimension")
	}
	return &Matrix[F]{
		r: r,
		c: c,
	}
}

func (m *Matrix[F]) Dims() (r, c int) {
	return m.r, m.c
}

func (m *Matrix[F]) Append(i, j int, v F) {
	if i < 0 || m.r <= i {
		panic("triplet: row index out of range")
	}
	if j < 0 || m.c <= j {
		panic("triplet: column index out of range")
	}
	m.data = append(m.data, triplet[F]{i, j, v})
}

func (m *Matrix[F]) MulVec(dst, x []F) {
	if m.c != len(x) {
		panic("triplet: dimension mismatch")
	}
	if m.r != len(dst) {
		panic("triplet: dimension mismatch")
	}
	for i := range dst {
		dst[i] = 0
	}
	for _, aij := range m.data {
		dst[aij.i] += aij.v * x[aij.j]
	}
}

func (m *Matrix[F]) MulTransVec(dst, x []F) {
	if m.c != len(dst) {
		panic("triplet: dimension mismatch")
	}
	if m.r != len(x) {
		panic("triplet: dimension mismatch")
	}
	for i := range dst {
		dst[i] = 0
	}
	for _, aij := range m.data {
		dst[aij.j] += aij.v * x[aij.i]
	}
}
