// Copyright ©2016 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package krylov provides conjugate gradient type iterative methods for
// solving systems of linear equations
//  A x = b,
// where A is a square matrix that is too large or too expensive to factorize.
//
// CG is intended for symmetric positive definite A. CGNR and CGNE apply the
// conjugate gradient recurrence to the normal equations A^T A x = A^T b and
// A A^T y = b, x = A^T y, respectively, and can be used with non-symmetric A.
// PCG is CG accelerated by a caller-supplied preconditioner.
package krylov

import (
	"time"

	"github.com/vladimir-ch/krylov/internal/vec"
)

// Float is the set of scalar types the solvers operate on.
type Float = vec.Float

// Matrix describes the matrix of the
// linear system in terms of A*x and A^T*x
// operations.
type Matrix[F Float] interface {
	// Dims returns the number of rows and
	// columns of the matrix.
	Dims() (r, c int)

	// MulVec computes A*x and stores the
	// result into dst.
	MulVec(dst, x []F)

	// MulTransVec computes A^T*x and stores
	// the result into dst.
	// CG and PCG never call it, so for
	// symmetric systems it may panic.
	MulTransVec(dst, x []F)
}

// Preconditioner describes a matrix P
// approximating A whose systems are cheap
// to solve.
type Preconditioner[F Float] interface {
	// Dims returns the number of rows and
	// columns of P.
	Dims() (r, c int)

	// PSolve stores into dst the solution
	// of the system
	//  P z = rhs.
	PSolve(dst, rhs []F) error
}

// Operation specifies the type of operation.
type Operation uint64

// Operations commanded by Method.Iterate.
const (
	NoOperation Operation = 0

	// Multiply A*x where x is stored
	// in Context.Src and the result will
	// be stored in Context.Dst.
	MatVec Operation = 1 << (iota - 1)

	// Multiply A^T*x where x is stored
	// in Context.Src and the result will
	// be stored in Context.Dst.
	MatTransVec

	// Do the preconditioner solve
	//  P z = r,
	// where r is stored in Context.Src,
	// and store the solution z in
	// Context.Dst.
	PSolve

	// Check convergence using the
	// residual norm in Context.ResidualNorm.
	// If convergence is detected,
	// Context.Converged will be set to
	// true before Method.Iterate is
	// called again.
	CheckResidualNorm

	// EndIteration indicates that Method
	// has finished what it considers to
	// be one iteration. If
	// Context.Converged is true, or the
	// iteration limit has been reached,
	// the iterative process is
	// terminated, and Method.Init must
	// be called before calling
	// Method.Iterate again.
	EndIteration
)

func (op Operation) String() string {
	switch op {
	case NoOperation:
		return "NoOperation"
	case MatVec:
		return "MatVec"
	case MatTransVec:
		return "MatTransVec"
	case PSolve:
		return "PSolve"
	case CheckResidualNorm:
		return "CheckResidualNorm"
	case EndIteration:
		return "EndIteration"
	}
	return "Operation(?)"
}

// Method is an iterative method that produces a sequence of vectors converging
// to the vector x satisfying a system of linear equations
//  A x = b,
// where A is non-singular dim×dim matrix, and x and b are vectors of dimension
// dim.
//
// Method uses a reverse-communication interface between the iterative algorithm
// and the caller. Method acts as a client that commands the caller to perform
// needed operations via Operation returned from Iterate methods. This provides
// independence of Method on representation of the matrix A, and enables
// automation of common operations like checking for convergence and maintaining
// statistics.
type Method[F Float] interface {
	// Init initializes the method for solving an dim×dim linear system.
	Init(dim int)

	// Iterate retrieves data from Context, updates it, and returns the next
	// operation. The caller must perform the Operation using data in
	// Context, and depending on the state call Iterate again.
	Iterate(*Context[F]) (Operation, error)
}

// Context mediates the communication between a Method and the caller. It must
// not be modified or accessed apart from the commanded Operations.
type Context[F Float] struct {
	// X is the current approximate solution. On the first call to
	// Method.Iterate, X contains the initial estimate.
	X []F
	// Residual is the current residual b-A*x. On the first call to
	// Method.Iterate, Residual contains the initial residual.
	Residual []F
	// ResidualNorm is the norm of the current residual. Method must
	// update it when it commands CheckResidualNorm.
	ResidualNorm F
	// Converged indicates to Method that the ResidualNorm satisfies the
	// stopping criterion as a result of CheckResidualNorm operation.
	Converged bool
	// Iteration is the number of completed iterations.
	Iteration int

	// Src and Dst are the source and destination vectors for various
	// Operations.
	Src, Dst []F
}

// Stats holds statistics about an iterative solve.
type Stats struct {
	// Iterations is the number of
	// iteration done by Method.
	Iterations int
	// MatVec is the number of MatVec
	// operations, including the one
	// forming the initial residual.
	MatVec int
	// MatTransVec is the number of
	// MatTransVec operations.
	MatTransVec int
	// PSolve is the number of PSolve
	// operations.
	PSolve int
	// StartTime is an approximate time
	// when the solve was started.
	StartTime time.Time
	// Runtime is an approximate duration
	// of the solve.
	Runtime time.Duration
}

// Result holds the result of an iterative solve.
type Result[F Float] struct {
	// ResidualNorm is the final norm of
	// the residual b-A*x. It is the
	// diagnostic the caller must compare
	// against the accuracy it needs.
	ResidualNorm F
	// Converged reports whether
	// ResidualNorm dropped below the
	// tolerance.
	Converged bool
	// Stats holds the statistics of the
	// solve.
	Stats Stats
}
