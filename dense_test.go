// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestDense(t *testing.T) {
	a := NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	r, c := a.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 6.0, a.At(1, 2))

	a.Set(0, 0, -1)
	assert.Equal(t, -1.0, a.At(0, 0))

	dst := make([]float64, 2)
	a.MulVec(dst, []float64{1, 1, 1})
	assert.Equal(t, []float64{4, 15}, dst)

	dstT := make([]float64, 3)
	a.MulTransVec(dstT, []float64{1, 2})
	assert.Equal(t, []float64{7, 12, 15}, dstT)

	assert.Panics(t, func() { a.At(2, 0) })
	assert.Panics(t, func() { a.Set(0, 3, 1) })
	assert.Panics(t, func() { a.MulVec(make([]float64, 3), make([]float64, 3)) })
	assert.Panics(t, func() { a.MulTransVec(make([]float64, 3), make([]float64, 3)) })
	assert.Panics(t, func() { NewDense(2, 2, []float64{1, 2, 3}) })
	assert.Panics(t, func() { NewDense[float32](-1, 2, nil) })
}

func TestDenseMatchesMat(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	const r, c = 7, 5
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rnd.NormFloat64()
	}
	x := make([]float64, c)
	for i := range x {
		x[i] = rnd.NormFloat64()
	}
	y := make([]float64, r)
	for i := range y {
		y[i] = rnd.NormFloat64()
	}

	a := NewDense(r, c, append([]float64(nil), data...))
	m := FromMat(mat.NewDense(r, c, append([]float64(nil), data...)))
	rm, cm := m.Dims()
	assert.Equal(t, r, rm)
	assert.Equal(t, c, cm)

	got, want := make([]float64, r), make([]float64, r)
	a.MulVec(got, x)
	m.MulVec(want, x)
	assert.True(t, floats.EqualApprox(got, want, 1e-14))

	gotT, wantT := make([]float64, c), make([]float64, c)
	a.MulTransVec(gotT, y)
	m.MulTransVec(wantT, y)
	assert.True(t, floats.EqualApprox(gotT, wantT, 1e-14))
}

func TestSolveCGFromMat(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	const n = 30
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, rnd.Float64())
		}
		sym.SetSym(i, i, sym.At(i, i)+n)
	}
	a := FromMat(sym)
	want, b := onesRHS(a)
	x := make([]float64, n)

	res, err := SolveCG(a, x, b, &Options[float64]{Tolerance: 1e-10, MaxIterations: 10 * n})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.LessOrEqual(t, floats.Distance(x, want, math.Inf(1)), 1e-8)

	// The reference solution from a dense factorization.
	var ref mat.VecDense
	require.NoError(t, ref.SolveVec(sym, mat.NewVecDense(n, b)))
	assert.True(t, floats.EqualApprox(x, ref.RawVector().Data, 1e-8))
}

func TestFromMatScalar(t *testing.T) {
	a := FromMat(mat.NewDense(1, 1, []float64{3}))
	dst := []float64{9}
	a.MulVec(dst, []float64{2})
	assert.Equal(t, []float64{6}, dst)
	assert.Panics(t, func() { a.MulTransVec(make([]float64, 2), []float64{1}) })
}
