// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"errors"
	"fmt"
	"time"

	"github.com/vladimir-ch/krylov/internal/vec"
)

// shape is the constraint a method places on the dimensions of A.
type shape int

const (
	// square requires an n×n A with len(x) == len(b) == n.
	square shape = iota
	// rectangular admits an m×n A with len(b) == m and len(x) == n.
	rectangular
)

// LinearSolve solves the system of n linear equations
//  A*x = b,
// using the given Method, starting from the initial estimate stored in x.
// On return x holds the approximate solution.
//
// p is the preconditioner used by methods that command PSolve. It may be nil
// for methods that do not.
//
// opts provides means for adjusting the iterative process. If it is nil,
// DefaultOptions is used.
//
// LinearSolve panics with a *DimensionError if the dimensions of A, p, x and b
// are not compatible. A nil error is returned when the iteration limit is
// reached without convergence; Result.Converged must be inspected.
func LinearSolve[F Float](a Matrix[F], p Preconditioner[F], x, b []F, method Method[F], opts *Options[F]) (Result[F], error) {
	const op = "LinearSolve"
	if method == nil {
		panic("krylov: nil method")
	}
	checkSystem(op, a, x, b, square)
	if p != nil {
		checkPreconditioner(op, a, p)
	}
	return solve(a, p, x, b, method, opts)
}

func methodName(m any) string {
	if s, ok := m.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", m)
}

// checkSystem panics if a, x and b do not form a system of the given shape.
func checkSystem[F Float](op string, a Matrix[F], x, b []F, s shape) {
	if a == nil {
		panic("krylov: nil matrix")
	}
	r, c := a.Dims()
	switch s {
	case square:
		if len(x) != len(b) {
			panic(&DimensionError{Op: op, What: "length of x does not match length of b", Got: len(x), Want: len(b)})
		}
		if r != c {
			panic(&DimensionError{Op: op, What: "A is not square, columns do not match rows", Got: c, Want: r})
		}
		if len(b) != r {
			panic(&DimensionError{Op: op, What: "length of b does not match rows of A", Got: len(b), Want: r})
		}
	case rectangular:
		if len(b) != r {
			panic(&DimensionError{Op: op, What: "length of b does not match rows of A", Got: len(b), Want: r})
		}
		if len(x) != c {
			panic(&DimensionError{Op: op, What: "length of x does not match columns of A", Got: len(x), Want: c})
		}
	default:
		panic("krylov: invalid shape")
	}
}

// checkPreconditioner panics unless p is square and has the dimensions of a.
func checkPreconditioner[F Float](op string, a Matrix[F], p Preconditioner[F]) {
	if p == nil {
		panic("krylov: nil preconditioner")
	}
	ar, ac := a.Dims()
	pr, pc := p.Dims()
	if pr != pc {
		panic(&DimensionError{Op: op, What: "P is not square, columns do not match rows", Got: pc, Want: pr})
	}
	if pr != ar {
		panic(&DimensionError{Op: op, What: "rows of P do not match rows of A", Got: pr, Want: ar})
	}
	if pc != ac {
		panic(&DimensionError{Op: op, What: "columns of P do not match columns of A", Got: pc, Want: ac})
	}
}

// solve runs method on an already validated system.
func solve[F Float](a Matrix[F], p Preconditioner[F], x, b []F, method Method[F], opts *Options[F]) (Result[F], error) {
	if opts == nil {
		d := DefaultOptions[F]()
		opts = &d
	}
	opts.check()
	name := methodName(method)

	stats := Stats{StartTime: time.Now()}
	dim := len(b)
	if dim == 0 {
		return Result[F]{Converged: true, Stats: stats}, nil
	}

	ctx := &Context[F]{
		X:        x,
		Residual: make([]F, dim),
	}
	a.MulVec(ctx.Residual, ctx.X)
	stats.MatVec++
	vec.ScaleAdd(ctx.Residual, -1, b) // r = b - Ax
	ctx.ResidualNorm = vec.Norm(ctx.Residual)
	ctx.Converged = opts.converged(ctx.ResidualNorm)

	var err error
	if !ctx.Converged && opts.MaxIterations > 0 {
		err = iterate(name, a, p, ctx, opts, method, &stats)
	}
	stats.Runtime = time.Since(stats.StartTime)

	log := opts.logger()
	var be *BreakdownError
	if errors.As(err, &be) {
		log.Warn().
			Str("method", be.Method).
			Int("iteration", be.Iteration).
			Str("quantity", be.Quantity).
			Float64("value", be.Value).
			Msg("krylov: breakdown")
	}
	log.Debug().
		Str("method", name).
		Int("dim", dim).
		Int("iterations", stats.Iterations).
		Float64("residual", float64(ctx.ResidualNorm)).
		Bool("converged", ctx.Converged).
		Dur("runtime", stats.Runtime).
		Msg("krylov: solve finished")

	return Result[F]{
		ResidualNorm: ctx.ResidualNorm,
		Converged:    ctx.Converged,
		Stats:        stats,
	}, err
}

func iterate[F Float](name string, a Matrix[F], p Preconditioner[F], ctx *Context[F], opts *Options[F], method Method[F], stats *Stats) error {
	log := opts.logger()
	method.Init(len(ctx.X))

	for {
		op, err := method.Iterate(ctx)
		if err != nil {
			return err
		}

		switch op {
		case NoOperation:

		case MatVec:
			a.MulVec(ctx.Dst, ctx.Src)
			stats.MatVec++

		case MatTransVec:
			a.MulTransVec(ctx.Dst, ctx.Src)
			stats.MatTransVec++

		case PSolve:
			if p == nil {
				panic("krylov: PSolve commanded without a preconditioner")
			}
			if err := p.PSolve(ctx.Dst, ctx.Src); err != nil {
				return fmt.Errorf("krylov: preconditioner solve in iteration %d: %w", ctx.Iteration, err)
			}
			stats.PSolve++

		case CheckResidualNorm:
			ctx.Converged = opts.converged(ctx.ResidualNorm)

		case EndIteration:
			stats.Iterations++
			ctx.Iteration = stats.Iterations
			log.Debug().
				Str("method", name).
				Int("iteration", stats.Iterations).
				Float64("residual", float64(ctx.ResidualNorm)).
				Msg("krylov: iteration")
			if ctx.Converged || stats.Iterations == opts.MaxIterations {
				return nil
			}

		default:
			panic("krylov: invalid operation")
		}
	}
}
