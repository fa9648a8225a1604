// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"fmt"
	"math/rand"

	"github.com/vladimir-ch/krylov/internal/triplet"
)

type testCase struct {
	name  string
	n     int
	a     Matrix[float64]
	iters int
	tol   float64
}

// randomSPD returns a dense symmetric positive definite n×n matrix. Its
// off-diagonal elements are drawn from [0,1) and the diagonal is shifted by n
// so that the matrix is strictly diagonally dominant.
func randomSPD(n int, rnd *rand.Rand) testCase {
	a := NewDense[float64](n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := rnd.Float64()
			a.Set(i, j, v)
			a.Set(j, i, v)
		}
	}
	for i := 0; i < n; i++ {
		a.Set(i, i, a.At(i, i)+float64(n))
	}
	return testCase{
		name:  fmt.Sprintf("randomSPD(%d)", n),
		n:     n,
		a:     a,
		iters: 10*n + 50,
		tol:   1e-8,
	}
}

// randomNonsym returns a sparse non-symmetric n×n matrix with 5 on the
// diagonal and up to four further entries from (-1,1) in every row.
func randomNonsym(n int, rnd *rand.Rand) testCase {
	a := triplet.New[float64](n, n)
	for i := 0; i < n; i++ {
		a.Append(i, i, 5)
		for k := 0; k < 4; k++ {
			a.Append(i, rnd.Intn(n), 2*rnd.Float64()-1)
		}
	}
	return testCase{
		name:  fmt.Sprintf("randomNonsym(%d)", n),
		n:     n,
		a:     a,
		iters: 10*n + 50,
		tol:   1e-8,
	}
}

// onesRHS returns b = A*[1,1,...,1] so that the vector of ones is the
// solution.
func onesRHS(a Matrix[float64]) (want, b []float64) {
	_, n := a.Dims()
	want = make([]float64, n)
	for i := range want {
		want[i] = 1
	}
	b = make([]float64, n)
	a.MulVec(b, want)
	return want, b
}

// panicValue returns the value f panics with, or nil.
func panicValue(f func()) (v any) {
	defer func() {
		v = recover()
	}()
	f()
	return nil
}
