// Copyright ©2017 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"context"
	"fmt"
	"reflect"

	"golang.org/x/sync/errgroup"

	"github.com/vladimir-ch/krylov/internal/vec"
)

// Task is one linear system solved by SolveAll.
type Task[F Float] struct {
	// A is the matrix of the system.
	A Matrix[F]
	// P is the preconditioner. It is required by PCG and ignored
	// otherwise.
	P Preconditioner[F]
	// X holds the initial estimate and receives the solution. X must not
	// overlap the X of another Task.
	X []F
	// B is the right-hand side.
	B []F
	// Method solves the system. A Method value must not be shared
	// between tasks. If it is nil, CG is used.
	Method Method[F]
}

// SolveAll solves the independent systems in tasks concurrently, running at
// most limit solves at a time. If limit is not positive, there is no limit.
//
// The dimensions of every task are checked before any solve starts. The first
// error returned by a solve cancels the solves that have not started yet and
// is returned; results[i] is valid for every task that ran.
func SolveAll[F Float](ctx context.Context, tasks []Task[F], opts *Options[F], limit int) ([]Result[F], error) {
	const op = "SolveAll"
	for i, t := range tasks {
		checkSystem(op, t.A, t.X, t.B, square)
		if t.P != nil {
			checkPreconditioner(op, t.A, t.P)
		} else if _, ok := t.Method.(*PCG[F]); ok {
			panic(fmt.Sprintf("krylov: %s: task %d: PCG without a preconditioner", op, i))
		}
		for j := 0; j < i; j++ {
			if vec.SameStorage(t.X, tasks[j].X) {
				panic(fmt.Sprintf("krylov: %s: tasks %d and %d share the solution vector", op, j, i))
			}
			if sameMethod(t.Method, tasks[j].Method) {
				panic(fmt.Sprintf("krylov: %s: tasks %d and %d share the method", op, j, i))
			}
		}
	}

	results := make([]Result[F], len(tasks))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			method := t.Method
			if method == nil {
				method = &CG[F]{}
			}
			res, err := solve(t.A, t.P, t.X, t.B, method, opts)
			results[i] = res
			if err != nil {
				return fmt.Errorf("krylov: task %d: %w", i, err)
			}
			return nil
		})
	}
	return results, g.Wait()
}

// sameMethod reports whether m1 and m2 point to the same Method value.
func sameMethod[F Float](m1, m2 Method[F]) bool {
	if m1 == nil || m2 == nil {
		return false
	}
	v1, v2 := reflect.ValueOf(m1), reflect.ValueOf(m2)
	if v1.Kind() != reflect.Pointer || v2.Kind() != reflect.Pointer {
		return false
	}
	return v1.Type() == v2.Type() && v1.Pointer() == v2.Pointer()
}
