package admmqp_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/quadsolve/admmqp"
	"github.com/quadsolve/admmqp/sparse"
)

const tol = 1e-3

func near(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, tol, tol)
}

// diagCSC builds an n×n upper-triangular CSC matrix with the given diagonal.
func diagCSC(d []float64) *sparse.CSC {
	n := len(d)
	colPtr := make([]int, n+1)
	rowIdx := make([]int, n)
	val := make([]float64, n)
	for i, v := range d {
		colPtr[i] = i
		rowIdx[i] = i
		val[i] = v
	}
	colPtr[n] = n
	return sparse.NewCSC(n, n, colPtr, rowIdx, val)
}

func rowCSC(rows, cols int, row []float64) *sparse.CSC {
	colPtr := make([]int, cols+1)
	var rowIdx []int
	var val []float64
	for j, v := range row {
		colPtr[j] = len(val)
		if v != 0 {
			rowIdx = append(rowIdx, 0)
			val = append(val, v)
		}
	}
	colPtr[cols] = len(val)
	return sparse.NewCSC(rows, cols, colPtr, rowIdx, val)
}

// S1 — 1-D unconstrained: n=1, m=0, P=[[4]], q=[-8]. Expect x*≈2, obj≈-8.
func TestS1Unconstrained(t *testing.T) {
	p := admmqp.Problem{N: 1, M: 0, P: diagCSC([]float64{4}), Q: []float64{-8}}
	s := admmqp.DefaultSettings()
	s.Polishing = false
	w, err := admmqp.Setup(p, s)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer w.Close()

	if err := w.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	info := w.Info()
	if info.Status != admmqp.StatusSolved {
		t.Fatalf("status = %v, want Solved", info.Status)
	}
	x, _ := w.Solution()
	if !near(x[0], 2) {
		t.Errorf("x* = %v, want ≈2", x[0])
	}
	if !near(info.ObjVal, -8) {
		t.Errorf("obj = %v, want ≈-8", info.ObjVal)
	}
}

// S2 — 1-D box-constrained: n=1, m=1, P=[[2]], q=[0], A=[[1]], lA=1, uA=3.
// Expect x*≈1, λ*≈-2.
func s2Problem() admmqp.Problem {
	return admmqp.Problem{
		N: 1, M: 1,
		P: diagCSC([]float64{2}), Q: []float64{0},
		A: rowCSC(1, 1, []float64{1}), LA: []float64{1}, UA: []float64{3},
	}
}

func TestS2BoxConstrained(t *testing.T) {
	w, err := admmqp.Setup(s2Problem(), admmqp.DefaultSettings())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer w.Close()

	if err := w.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	info := w.Info()
	if info.Status != admmqp.StatusSolved {
		t.Fatalf("status = %v, want Solved", info.Status)
	}
	x, lambda := w.Solution()
	if !near(x[0], 1) {
		t.Errorf("x* = %v, want ≈1", x[0])
	}
	if !near(lambda[0], -2) {
		t.Errorf("lambda* = %v, want ≈-2", lambda[0])
	}
}

// S3 — 2-D equality-like via tight bounds: n=2, P=2I, q=[-2,-2],
// A=[[1,1]], lA=uA=[1]. Expect x*≈[0.5,0.5].
func TestS3TightBounds(t *testing.T) {
	a := sparse.NewCSC(1, 2, []int{0, 1, 2}, []int{0, 0}, []float64{1, 1})
	p := admmqp.Problem{
		N: 2, M: 1,
		P: diagCSC([]float64{2, 2}), Q: []float64{-2, -2},
		A: a, LA: []float64{1}, UA: []float64{1},
	}
	s := admmqp.DefaultSettings()
	w, err := admmqp.Setup(p, s)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer w.Close()

	if err := w.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	x, _ := w.Solution()
	if !near(x[0], 0.5) || !near(x[1], 0.5) {
		t.Errorf("x* = %v, want ≈[0.5, 0.5]", x)
	}
}

// S4 — infeasible bounds on update: S2 workspace, update_lower_bound([5])
// returns non-nil; restoring lA=[1] then update_upper_bound([0]) (with
// lA=1) returns non-nil.
func TestS4InfeasibleBoundsOnUpdate(t *testing.T) {
	w, err := admmqp.Setup(s2Problem(), admmqp.DefaultSettings())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer w.Close()

	if err := w.UpdateLowerBound([]float64{5}); err == nil {
		t.Fatal("UpdateLowerBound(5) with uA=3 should report BoundsInconsistentError")
	}
	if err := w.UpdateLowerBound([]float64{1}); err != nil {
		t.Fatalf("restoring lA=1 should succeed: %v", err)
	}
	if err := w.UpdateUpperBound([]float64{0}); err == nil {
		t.Fatal("UpdateUpperBound(0) with lA=1 should report BoundsInconsistentError")
	}
}

// S5 — warm start cheapness: solve S2, then resolve with warm_start=true;
// second solve converges in under 5 iterations.
func TestS5WarmStartCheapness(t *testing.T) {
	s := admmqp.DefaultSettings()
	w, err := admmqp.Setup(s2Problem(), s)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer w.Close()

	if err := w.Solve(); err != nil {
		t.Fatalf("first Solve: %v", err)
	}
	x1, lambda1 := w.Solution()

	w.SetWarmStart(true)

	if err := w.Solve(); err != nil {
		t.Fatalf("second Solve: %v", err)
	}
	info := w.Info()
	if info.Iter >= 5 {
		t.Errorf("warm-started second solve took %d iterations, want < 5", info.Iter)
	}
	x2, lambda2 := w.Solution()
	if !near(x1[0], x2[0]) || !near(lambda1[0], lambda2[0]) {
		t.Errorf("warm-start solve diverged: x1=%v x2=%v lambda1=%v lambda2=%v", x1, x2, lambda1, lambda2)
	}
}

// S6 — max-iter surface: S2 with max_iter=1, tiny tolerances -> status =
// MaxIterReached; iterates remain finite.
func TestS6MaxIterSurface(t *testing.T) {
	s := admmqp.DefaultSettings()
	s.MaxIter = 1
	s.EpsAbs = 1e-12
	s.EpsRel = 1e-12
	s.Polishing = false
	w, err := admmqp.Setup(s2Problem(), s)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer w.Close()

	if err := w.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	info := w.Info()
	if info.Status != admmqp.StatusMaxIterReached {
		t.Fatalf("status = %v, want MaxIterReached", info.Status)
	}
	x, lambda := w.Solution()
	if math.IsNaN(x[0]) || math.IsInf(x[0], 0) {
		t.Errorf("x* is not finite: %v", x[0])
	}
	if math.IsNaN(lambda[0]) || math.IsInf(lambda[0], 0) {
		t.Errorf("lambda* is not finite: %v", lambda[0])
	}
}
