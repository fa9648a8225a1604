// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import "github.com/vladimir-ch/krylov/internal/vec"

// CGNR implements the Conjugate Gradient method applied to the normal
// equations
//  A^T A x = A^T b
// for solving the system of linear equations
//  Ax = b,
// where A is a non-symmetric matrix. The step length and the direction update
// are computed from z = A^T r, while convergence is tested on the residual
// r = b - Ax of the original system.
//
// CGNR needs MatVec and MatTransVec matrix operations.
type CGNR[F Float] struct {
	recurrence[F]
}

func cgnrVariant[F Float]() variant[F] {
	return variant[F]{
		name: "CGNR",
		// The normal equations are also well defined for a full-rank
		// rectangular A, but only square systems are accepted for now.
		shape:    square,
		gradient: MatTransVec,
		rho: func(_, z []F) F {
			return vec.Dot(z, z)
		},
		rhoName: "z·z",
		curvature: func(_, w []F) F {
			return vec.Dot(w, w)
		},
		curvatureName: "Ap·Ap",
	}
}

// Init implements the Method interface.
func (m *CGNR[F]) Init(dim int) { m.init(dim, cgnrVariant[F]()) }

func (*CGNR[F]) String() string { return "CGNR" }

// SolveCGNR solves A x = b for a non-symmetric A with the CGNR method. x holds
// the initial estimate on entry and the approximate solution on return.
//
// SolveCGNR panics with a *DimensionError unless A is n×n and x and b have
// length n. The returned Result.ResidualNorm is the final norm of b-A*x.
func SolveCGNR[F Float](a Matrix[F], x, b []F, opts *Options[F]) (Result[F], error) {
	checkSystem("SolveCGNR", a, x, b, cgnrVariant[F]().shape)
	return solve(a, nil, x, b, &CGNR[F]{}, opts)
}

// CGNE implements the Conjugate Gradient method applied to the normal
// equations
//  A A^T y = b,  x = A^T y,
// for solving the system of linear equations
//  Ax = b,
// where A is a non-symmetric matrix. The recurrence is carried out directly on
// x and minimizes the error norm |x - x*| over the Krylov subspace.
//
// CGNE needs MatVec and MatTransVec matrix operations.
type CGNE[F Float] struct {
	recurrence[F]
}

func cgneVariant[F Float]() variant[F] {
	return variant[F]{
		name: "CGNE",
		// A consistent rectangular system could be admitted here too.
		shape:    square,
		gradient: MatTransVec,
		rho: func(r, _ []F) F {
			return vec.Dot(r, r)
		},
		rhoName: "r·r",
		curvature: func(p, _ []F) F {
			return vec.Dot(p, p)
		},
		curvatureName: "p·p",
	}
}

// Init implements the Method interface.
func (m *CGNE[F]) Init(dim int) { m.init(dim, cgneVariant[F]()) }

func (*CGNE[F]) String() string { return "CGNE" }

// SolveCGNE solves A x = b for a non-symmetric A with the CGNE method. x holds
// the initial estimate on entry and the approximate solution on return.
//
// SolveCGNE panics with a *DimensionError unless A is n×n and x and b have
// length n. The returned Result.ResidualNorm is the final norm of b-A*x.
func SolveCGNE[F Float](a Matrix[F], x, b []F, opts *Options[F]) (Result[F], error) {
	checkSystem("SolveCGNE", a, x, b, cgneVariant[F]().shape)
	return solve(a, nil, x, b, &CGNE[F]{}, opts)
}
