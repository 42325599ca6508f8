// Package scale implements the optional Ruiz-style equilibration scaling
// described in spec.md §4.3. It is a pre-processing step the ADMM core
// applies once at setup time; the core always iterates on the scaled
// problem in §4.2's RHS assembly, and uses the returned factors to un-scale
// its residuals every iteration and its solution at publication — see the
// root package's residuals.go and solution.go.
package scale

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/quadsolve/admmqp/sparse"
)

// Factors holds the diagonal scalings produced by Ruiz equilibration and
// their inverses, precomputed once so unscaling at publication never
// divides.
type Factors struct {
	D, Dinv []float64 // length n
	E, Einv []float64 // length m
}

// Identity returns the no-op scaling (D = I, E = I) for when scaling is
// disabled, so callers never need to special-case a nil *Factors.
func Identity(n, m int) *Factors {
	f := &Factors{
		D: ones(n), Dinv: ones(n),
		E: ones(m), Einv: ones(m),
	}
	return f
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

// Ruiz performs `iters` passes of Ruiz equilibration of
//
//	[ P  Aᵀ ]
//	[ A   0 ]
//
// using the given norm order (1, 2, or math.Inf(1), per spec.md's
// scaling_norm setting), and applies the resulting D, E in place to P, A, q,
// lA, uA. It returns the accumulated scaling factors.
//
// On each pass, the ∞-norm (or requested norm) of every row/column of the
// augmented matrix is computed; a zero norm is treated as 1 so that an
// all-zero row/column scales as identity rather than blowing up (spec.md
// §4.3: "guarded against zeros by substituting 1").
func Ruiz(P, A *sparse.CSC, q, lA, uA []float64, iters int, normOrd float64) *Factors {
	n, _ := P.Dims()
	m, _ := A.Dims()

	f := Identity(n, m)
	if iters <= 0 {
		return f
	}

	for pass := 0; pass < iters; pass++ {
		colNorm := make([]float64, n) // norm of column j across [P; A] stacked
		rowNorm := make([]float64, m) // norm of row i of A (and, symmetrically, column i of Aᵀ)

		accumulateColNorms(P, colNorm, normOrd, true)
		accumulateColNorms(A, colNorm, normOrd, false)
		accumulateRowNorms(A, rowNorm, normOrd)

		dScale := make([]float64, n)
		for j := range dScale {
			dScale[j] = invSqrtGuarded(colNorm[j])
		}
		eScale := make([]float64, m)
		for i := range eScale {
			eScale[i] = invSqrtGuarded(rowNorm[i])
		}

		applyDiagScaling(P, dScale, dScale, true)
		applyDiagScaling(A, eScale, dScale, false)

		floats.Mul(f.D, dScale)
		floats.Mul(f.E, eScale)
	}

	for i, d := range f.D {
		f.Dinv[i] = 1 / d
	}
	for i, e := range f.E {
		f.Einv[i] = 1 / e
	}

	floats.Mul(q, f.D)
	floats.Mul(lA, f.E)
	floats.Mul(uA, f.E)
	// ±∞ bounds must remain exactly ±∞ after scaling (spec.md §9): a
	// positive finite E[i] preserves the sign of an infinite bound, so no
	// special case is required here as long as E[i] > 0, which
	// invSqrtGuarded guarantees.

	return f
}

func invSqrtGuarded(norm float64) float64 {
	if norm == 0 {
		return 1
	}
	return 1 / math.Sqrt(norm)
}

func accumulateColNorms(m *sparse.CSC, dst []float64, normOrd float64, symmetric bool) {
	for j := 0; j < m.Cols; j++ {
		for k := m.ColPtr[j]; k < m.ColPtr[j+1]; k++ {
			v := math.Abs(m.Val[k])
			dst[j] = combine(dst[j], v, normOrd)
			if symmetric {
				i := m.RowIdx[k]
				if i != j {
					dst[i] = combine(dst[i], v, normOrd)
				}
			}
		}
	}
}

func accumulateRowNorms(a *sparse.CSC, dst []float64, normOrd float64) {
	for j := 0; j < a.Cols; j++ {
		for k := a.ColPtr[j]; k < a.ColPtr[j+1]; k++ {
			i := a.RowIdx[k]
			dst[i] = combine(dst[i], math.Abs(a.Val[k]), normOrd)
		}
	}
}

// combine folds a new magnitude into an accumulator according to normOrd.
func combine(acc, v, normOrd float64) float64 {
	switch {
	case math.IsInf(normOrd, 1):
		return math.Max(acc, v)
	case normOrd == 1:
		return acc + v
	default: // 2-norm
		return math.Hypot(acc, v)
	}
}

// applyDiagScaling rescales m in place as rowScale * m * colScale (when
// symmetric, m is P and rowScale==colScale; otherwise m is A, rowScale is E
// and colScale is D).
func applyDiagScaling(m *sparse.CSC, rowScale, colScale []float64, symmetric bool) {
	for j := 0; j < m.Cols; j++ {
		for k := m.ColPtr[j]; k < m.ColPtr[j+1]; k++ {
			i := m.RowIdx[k]
			m.Val[k] *= colScale[j]
			if symmetric {
				m.Val[k] *= colScale[i]
			} else {
				m.Val[k] *= rowScale[i]
			}
		}
	}
}
