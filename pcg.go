// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import "github.com/vladimir-ch/krylov/internal/vec"

// PCG implements the preconditioned Conjugate Gradient iterative method for
// solving the system of linear equations
//  Ax = b,
// where A is a symmetric positive definite matrix. The preconditioner P must
// also be symmetric positive definite. Each iteration solves
//  P z = r
// after the convergence test and uses z in place of r when updating the
// search direction.
//
// PCG needs MatVec and PSolve matrix operations.
type PCG[F Float] struct {
	recurrence[F]
}

func pcgVariant[F Float]() variant[F] {
	return variant[F]{
		name:          "PCG",
		shape:         square,
		gradient:      PSolve,
		rho:           vec.Dot[F],
		rhoName:       "r·z",
		curvature:     vec.Dot[F],
		curvatureName: "p·Ap",
	}
}

// Init implements the Method interface.
func (m *PCG[F]) Init(dim int) { m.init(dim, pcgVariant[F]()) }

func (*PCG[F]) String() string { return "PCG" }

// SolvePCG solves the symmetric positive definite system A x = b with the
// Conjugate Gradient method preconditioned by p. x holds the initial estimate
// on entry and the approximate solution on return.
//
// SolvePCG panics with a *DimensionError unless A is n×n, x and b have length
// n, and p is n×n. An error returned by p.PSolve stops the iteration and is
// returned wrapped.
func SolvePCG[F Float](a Matrix[F], p Preconditioner[F], x, b []F, opts *Options[F]) (Result[F], error) {
	const op = "SolvePCG"
	checkSystem(op, a, x, b, pcgVariant[F]().shape)
	checkPreconditioner(op, a, p)
	return solve(a, p, x, b, &PCG[F]{}, opts)
}

// PreconditionerFunc is a Preconditioner whose solve is carried out by Solve.
type PreconditionerFunc[F Float] struct {
	Rows, Cols int

	// Solve stores into dst the solution of P z = rhs.
	Solve func(dst, rhs []F) error
}

// Dims implements the Preconditioner interface.
func (p PreconditionerFunc[F]) Dims() (r, c int) { return p.Rows, p.Cols }

// PSolve implements the Preconditioner interface.
func (p PreconditionerFunc[F]) PSolve(dst, rhs []F) error {
	if p.Solve == nil {
		panic("krylov: nil preconditioner solve")
	}
	return p.Solve(dst, rhs)
}
