// Copyright ©2024 The admmqp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package admmqp solves convex quadratic programs
//
//	minimize    (1/2) xᵀPx + qᵀx
//	subject to  lA ≤ Ax ≤ uA
//
// with P symmetric positive semidefinite, using the Alternating Direction
// Method of Multipliers (ADMM). A Workspace is built once by Setup against
// a fixed sparsity pattern of P and A, then driven to a solution by Solve;
// UpdateLinCost, UpdateLowerBound and UpdateUpperBound mutate q/lA/uA
// in place between solves without re-factorizing the KKT system.
//
// The sparse storage, the KKT factorization backend and the Ruiz scaling
// live in the sibling sparse, linsys and scale packages; admmqp itself owns
// setup and updates, the ADMM iteration with its dense vector loops, the
// residual and termination logic, and the polishing step.
package admmqp
