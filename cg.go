// Copyright ©2016 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import "github.com/vladimir-ch/krylov/internal/vec"

// variant holds what distinguishes the members of the conjugate gradient
// family. Each iteration of every member is
//  w = A p_i
//  μ = ρ_i / κ_i
//  x_i = x_{i-1} + μ p_i
//  r_i = r_{i-1} - μ w
//  (stop if |r_i| < tol)
//  z_i = G r_i
//  p_{i+1} = z_i + (ρ_{i+1} / ρ_i) p_i
// where the variant chooses G, ρ and κ.
type variant[F Float] struct {
	name  string
	shape shape

	// gradient is the operation that computes z = G r. NoOperation
	// means that z is the residual itself.
	gradient Operation

	// rho computes ρ from the residual r and z.
	rho     func(r, z []F) F
	rhoName string

	// curvature computes the step length denominator κ from the search
	// direction p and w = A p.
	curvature     func(p, w []F) F
	curvatureName string
}

// recurrence implements the Iterate method shared by CG, CGNR, CGNE and PCG.
type recurrence[F Float] struct {
	v      variant[F]
	first  bool
	resume int

	rho, rhoPrev F

	z []F
	p []F
	w []F
}

func (c *recurrence[F]) init(dim int, v variant[F]) {
	if dim <= 0 {
		panic("krylov: dimension not positive")
	}

	c.v = v
	if v.gradient == NoOperation {
		c.z = nil
	} else {
		c.z = reuse(c.z, dim)
	}
	c.p = reuse(c.p, dim)
	c.w = reuse(c.w, dim)

	c.first = true
	c.resume = 1
}

// Iterate implements the Method interface.
func (c *recurrence[F]) Iterate(ctx *Context[F]) (Operation, error) {
	switch c.resume {
	case 1:
		c.resume = 2
		if c.v.gradient != NoOperation {
			ctx.Src = ctx.Residual
			ctx.Dst = c.z
			return c.v.gradient, nil
			// z = G r_{i-1}
		}
		fallthrough
	case 2:
		z := c.z
		if z == nil {
			z = ctx.Residual
		}
		c.rho = c.v.rho(ctx.Residual, z)
		if c.first {
			copy(c.p, z)
		} else {
			if !vec.Usable(c.rhoPrev) {
				return c.breakdown(ctx, c.v.rhoName, c.rhoPrev)
			}
			tau := c.rho / c.rhoPrev
			vec.ScaleAdd(c.p, tau, z) // p_i = z + τ p_{i-1}
		}
		ctx.Src = c.p
		ctx.Dst = c.w
		c.resume = 3
		return MatVec, nil
		// w = A p_i
	case 3:
		kappa := c.v.curvature(c.p, c.w)
		if !vec.Usable(kappa) {
			return c.breakdown(ctx, c.v.curvatureName, kappa)
		}
		mu := c.rho / kappa
		vec.AddScaled(ctx.X, mu, c.p)          // x_i = x_{i-1} + μ p_i
		vec.AddScaled(ctx.Residual, -mu, c.w) // r_i = r_{i-1} - μ w

		ctx.Src = nil
		ctx.Dst = nil
		ctx.ResidualNorm = vec.Norm(ctx.Residual)
		ctx.Converged = false
		c.resume = 4
		return CheckResidualNorm, nil
	case 4:
		if ctx.Converged {
			c.resume = 0 // Calling Iterate again without Init will panic.
			return EndIteration, nil
		}
		// Prepare for the next iteration.
		c.rhoPrev = c.rho
		c.first = false
		c.resume = 1
		return EndIteration, nil

	default:
		panic("krylov: " + c.v.name + ".Init not called")
	}
}

func (c *recurrence[F]) breakdown(ctx *Context[F], quantity string, value F) (Operation, error) {
	c.resume = 0 // Calling Iterate again without Init will panic.
	ctx.Src = nil
	ctx.Dst = nil
	return NoOperation, &BreakdownError{
		Method:    c.v.name,
		Iteration: ctx.Iteration,
		Quantity:  quantity,
		Value:     float64(value),
	}
}

// CG implements the Conjugate Gradient iterative method for solving the
// system of linear equations
//  Ax = b,
// where A is a symmetric positive definite matrix.
//
// CG needs only the MatVec matrix operation.
type CG[F Float] struct {
	recurrence[F]
}

func cgVariant[F Float]() variant[F] {
	return variant[F]{
		name:          "CG",
		shape:         square,
		gradient:      NoOperation,
		rho:           vec.Dot[F],
		rhoName:       "r·r",
		curvature:     vec.Dot[F],
		curvatureName: "p·Ap",
	}
}

// Init implements the Method interface.
func (cg *CG[F]) Init(dim int) { cg.init(dim, cgVariant[F]()) }

func (*CG[F]) String() string { return "CG" }

// SolveCG solves the symmetric positive definite system A x = b with the
// Conjugate Gradient method. x holds the initial estimate on entry and the
// approximate solution on return.
//
// SolveCG panics with a *DimensionError unless A is n×n and x and b have
// length n. The returned Result.ResidualNorm is the final norm of b-A*x.
// If the recurrence breaks down, a *BreakdownError is returned and x holds
// the last computed estimate.
func SolveCG[F Float](a Matrix[F], x, b []F, opts *Options[F]) (Result[F], error) {
	checkSystem("SolveCG", a, x, b, cgVariant[F]().shape)
	return solve(a, nil, x, b, &CG[F]{}, opts)
}

func reuse[F Float](v []F, n int) []F {
	if cap(v) < n {
		return make([]F, n)
	}
	return v[:n]
}
