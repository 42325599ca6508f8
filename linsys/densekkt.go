package linsys

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/quadsolve/admmqp/sparse"
)

// DenseKKT is the default, concrete Solver: it assembles the regularized
// KKT coefficient matrix as a dense gonum matrix and factorizes it with LU
// decomposition. The spec leaves the factorization strategy abstract
// ("the specific direct-factorization backend... is treated as an abstract
// 'linear system solver'"); dense LU is the simplest strategy that is
// correct for the symmetric-indefinite K this solver produces (the (2,2)
// block -I/ρ makes K indefinite, so a Cholesky factorization — as used
// elsewhere in the teacher for SPD systems, e.g. optimize.cmaes's
// mat.Cholesky — does not apply here).
type DenseKKT struct {
	lu  mat.LU
	dim int
}

// NewDenseKKT builds and factorizes
//
//	K = [ P + σI    Aᵀ  ]
//	    [  A     -1/ρ·I ]
//
// from P (n×n, upper-triangular canonical form) and A (m×n). It returns a
// *FactorizeError if K is numerically singular.
func NewDenseKKT(P, A *sparse.CSC, sigma, rho float64) (*DenseKKT, error) {
	n, _ := P.Dims()
	m, _ := A.Dims()
	dim := n + m

	full := mat.NewDense(dim, dim, nil)

	// Top-left: P + σI. P is stored upper-triangular; DenseSym mirrors it
	// into a full symmetric dense matrix, which is copied into the K block.
	pSym := P.DenseSym()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			full.Set(i, j, pSym.At(i, j))
		}
	}
	for i := 0; i < n; i++ {
		full.Set(i, i, full.At(i, i)+sigma)
	}

	// Top-right / bottom-left: Aᵀ and A.
	for j := 0; j < n; j++ {
		for k := A.ColPtr[j]; k < A.ColPtr[j+1]; k++ {
			i := A.RowIdx[k]
			full.Set(n+i, j, A.Val[k])
			full.Set(j, n+i, A.Val[k])
		}
	}

	// Bottom-right: -I/ρ.
	for i := 0; i < m; i++ {
		full.Set(n+i, n+i, -1/rho)
	}

	return newDenseFromFull(full, dim)
}

// newDenseFromFull factorizes an already-assembled dense square matrix.
// Shared by NewDenseKKT and the polish reduced-system solver.
func newDenseFromFull(full *mat.Dense, dim int) (*DenseKKT, error) {
	d := &DenseKKT{dim: dim}
	d.lu.Factorize(full)
	if cond := d.lu.Cond(); math.IsInf(cond, 1) || cond > 1/minPivot {
		return nil, &FactorizeError{Reason: "KKT matrix is numerically singular"}
	}
	return d, nil
}

// minPivot guards against treating a near-singular K as factorizable; a
// condition number beyond 1/minPivot is rejected as SetupFailed.
const minPivot = 1e-12

// Dim reports the dimension of the factored system.
func (d *DenseKKT) Dim() int { return d.dim }

// SolveInPlace overwrites rhs with the solution to K*x = rhs.
func (d *DenseKKT) SolveInPlace(rhs []float64) error {
	b := mat.NewVecDense(len(rhs), rhs)
	var x mat.VecDense
	if err := d.lu.SolveVecTo(&x, false, b); err != nil {
		return err
	}
	copy(rhs, x.RawVector().Data)
	return nil
}

// Close releases the factorization. DenseKKT holds no external resources,
// so Close is a no-op retained for symmetry with the Solver interface and
// spec.md's free_priv contract.
func (d *DenseKKT) Close() {}

// NewDensePolishSystem factorizes the reduced equality-constrained polish
// system
//
//	[ P + δI      A_redᵀ ]
//	[ A_red      −δI      ]
//
// given P (n×n upper-triangular) and the stacked active-row matrix A_red
// (r×n, dense — the active set is typically small so a dense reduced
// system is appropriate even though the parent problem's A is sparse).
func NewDensePolishSystem(P *sparse.CSC, Ared *mat.Dense, delta float64) (*DenseKKT, error) {
	n, _ := P.Dims()
	r, _ := Ared.Dims()
	dim := n + r

	full := mat.NewDense(dim, dim, nil)
	pSym := P.DenseSym()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			full.Set(i, j, pSym.At(i, j))
		}
	}
	for i := 0; i < n; i++ {
		full.Set(i, i, full.At(i, i)+delta)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < n; j++ {
			v := Ared.At(i, j)
			if v == 0 {
				continue
			}
			full.Set(n+i, j, v)
			full.Set(j, n+i, v)
		}
		full.Set(n+i, n+i, -delta)
	}

	return newDenseFromFull(full, dim)
}
