// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestSolveAll(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	var (
		tasks []Task[float64]
		wants [][]float64
	)
	for i, n := range []int{3, 10, 25, 40, 7, 16} {
		var tc testCase
		var method Method[float64]
		switch i % 3 {
		case 0:
			tc = randomSPD(n, rnd)
		case 1:
			tc = randomNonsym(n, rnd)
			method = &CGNR[float64]{}
		case 2:
			tc = randomNonsym(n, rnd)
			method = &CGNE[float64]{}
		}
		want, b := onesRHS(tc.a)
		tasks = append(tasks, Task[float64]{
			A:      tc.a,
			X:      make([]float64, n),
			B:      b,
			Method: method,
		})
		wants = append(wants, want)
	}
	spd := randomSPD(12, rnd)
	want, b := onesRHS(spd.a)
	tasks = append(tasks, Task[float64]{
		A:      spd.a,
		P:      identity(12),
		X:      make([]float64, 12),
		B:      b,
		Method: &PCG[float64]{},
	})
	wants = append(wants, want)

	results, err := SolveAll(context.Background(), tasks, &Options[float64]{Tolerance: 1e-10, MaxIterations: 1000}, 3)
	require.NoError(t, err)
	require.Len(t, results, len(tasks))
	for i, res := range results {
		assert.True(t, res.Converged, "task %d", i)
		assert.LessOrEqual(t, floats.Distance(tasks[i].X, wants[i], math.Inf(1)), 1e-8, "task %d", i)
	}
	assert.Equal(t, results[len(results)-1].Stats.Iterations, results[len(results)-1].Stats.PSolve)
}

func TestSolveAllError(t *testing.T) {
	good := NewDense(2, 2, []float64{
		4, 1,
		1, 3,
	})
	tasks := []Task[float64]{
		{A: good, X: []float64{0, 0}, B: []float64{1, 2}},
		{A: NewDense[float64](2, 2, nil), X: []float64{0, 0}, B: []float64{1, 2}},
	}
	_, err := SolveAll(context.Background(), tasks, &Options[float64]{Tolerance: 1e-10, MaxIterations: 10}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBreakdown))
	assert.Contains(t, err.Error(), "task 1")
}

func TestSolveAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	x := []float64{0}
	tasks := []Task[float64]{
		{A: NewDense(1, 1, []float64{2}), X: x, B: []float64{4}},
	}
	_, err := SolveAll(ctx, tasks, nil, 1)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []float64{0}, x)
}

func TestSolveAllValidation(t *testing.T) {
	a := NewDense(2, 2, []float64{
		1, 0,
		0, 1,
	})
	shared := make([]float64, 2)
	assert.Panics(t, func() {
		_, _ = SolveAll(context.Background(), []Task[float64]{
			{A: a, X: shared, B: []float64{1, 1}},
			{A: a, X: shared, B: []float64{2, 2}},
		}, nil, 0)
	}, "shared solution vector")

	buf := make([]float64, 3)
	v := panicValue(func() {
		_, _ = SolveAll(context.Background(), []Task[float64]{
			{A: a, X: buf[0:2], B: []float64{1, 1}},
			{A: a, X: buf[1:3], B: []float64{2, 2}},
		}, nil, 0)
	})
	require.NotNil(t, v, "overlapping solution vectors")
	assert.Contains(t, v, "share the solution vector")
	assert.Equal(t, []float64{0, 0, 0}, buf)

	assert.NotPanics(t, func() {
		_, err := SolveAll(context.Background(), []Task[float64]{
			{A: a, X: buf[0:2], B: []float64{1, 1}},
			{A: a, X: make([]float64, 2), B: []float64{2, 2}},
		}, nil, 0)
		require.NoError(t, err)
	}, "adjacent solution vectors")

	cg := &CG[float64]{}
	v = panicValue(func() {
		_, _ = SolveAll(context.Background(), []Task[float64]{
			{A: a, X: make([]float64, 2), B: []float64{1, 1}, Method: cg},
			{A: a, X: make([]float64, 2), B: []float64{2, 2}, Method: &CGNE[float64]{}},
			{A: a, X: make([]float64, 2), B: []float64{3, 3}, Method: cg},
		}, nil, 0)
	})
	require.NotNil(t, v, "shared method")
	assert.Contains(t, v, "tasks 0 and 2 share the method")

	v = panicValue(func() {
		_, _ = SolveAll(context.Background(), []Task[float64]{
			{A: a, X: make([]float64, 3), B: []float64{1, 1}},
		}, nil, 0)
	})
	de, ok := v.(*DimensionError)
	require.True(t, ok)
	assert.Equal(t, "SolveAll", de.Op)

	assert.Panics(t, func() {
		_, _ = SolveAll(context.Background(), []Task[float64]{
			{A: a, X: make([]float64, 2), B: []float64{1, 1}, Method: &PCG[float64]{}},
		}, nil, 0)
	}, "PCG without a preconditioner")
}
