package admmqp

import (
	"math"
	"testing"

	"github.com/quadsolve/admmqp/sparse"
)

func boxProblem() Problem {
	a := sparse.NewCSC(1, 2, []int{0, 1, 2}, []int{0, 0}, []float64{1, 1})
	return Problem{
		N: 2, M: 1,
		P:  sparse.NewCSC(2, 2, []int{0, 1, 2}, []int{0, 1}, []float64{2, 2}),
		Q:  []float64{-2, -2},
		A:  a,
		LA: []float64{1}, UA: []float64{1},
	}
}

// Property 1: after any completed iteration, lA <= z[n:] <= uA.
func TestZFeasibilityDuringIteration(t *testing.T) {
	p := boxProblem()
	s := DefaultSettings()
	s.MaxIter = 50
	w, err := Setup(p, s)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer w.Close()

	w.coldStart()
	rhs := make([]float64, w.data.n+w.data.m)
	for iter := 0; iter < s.MaxIter; iter++ {
		copy(w.iter.zPrev, w.iter.z)
		w.assembleRHS(rhs)
		if err := w.kkt.SolveInPlace(rhs); err != nil {
			t.Fatalf("solve: %v", err)
		}
		w.updateX(rhs)
		w.projectZ()
		w.updateU()

		for i := 0; i < w.data.m; i++ {
			zi := w.iter.z[w.data.n+i]
			if zi < w.data.lA[i]-1e-9 || zi > w.data.uA[i]+1e-9 {
				t.Fatalf("iter %d: z[%d] = %v outside [%v, %v]", iter, i, zi, w.data.lA[i], w.data.uA[i])
			}
		}
	}
}

// Property 4: solving with scaling enabled vs disabled yields the same
// unscaled x*, lambda* to tolerance.
func TestScalingInvariance(t *testing.T) {
	p := boxProblem()

	sUnscaled := DefaultSettings()
	sUnscaled.Scaling = 0
	wUnscaled, err := Setup(p, sUnscaled)
	if err != nil {
		t.Fatalf("Setup (unscaled): %v", err)
	}
	defer wUnscaled.Close()
	if err := wUnscaled.Solve(); err != nil {
		t.Fatalf("Solve (unscaled): %v", err)
	}

	sScaled := DefaultSettings()
	sScaled.Scaling = 10
	wScaled, err := Setup(p, sScaled)
	if err != nil {
		t.Fatalf("Setup (scaled): %v", err)
	}
	defer wScaled.Close()
	if err := wScaled.Solve(); err != nil {
		t.Fatalf("Solve (scaled): %v", err)
	}

	xu, lu := wUnscaled.Solution()
	xs, ls := wScaled.Solution()
	for i := range xu {
		if math.Abs(xu[i]-xs[i]) > 1e-2 {
			t.Errorf("x*[%d]: unscaled=%v scaled=%v, want close", i, xu[i], xs[i])
		}
	}
	for i := range lu {
		if math.Abs(lu[i]-ls[i]) > 1e-2 {
			t.Errorf("lambda*[%d]: unscaled=%v scaled=%v, want close", i, lu[i], ls[i])
		}
	}
}

// Property 3: idempotence of warm start — solving twice with
// warm_start=true and unchanged data yields identical x*, lambda*, and the
// second call is cheap.
func TestWarmStartIdempotence(t *testing.T) {
	p := boxProblem()
	s := DefaultSettings()
	w, err := Setup(p, s)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer w.Close()

	if err := w.Solve(); err != nil {
		t.Fatalf("first Solve: %v", err)
	}
	x1, l1 := w.Solution()

	w.SetWarmStart(true)
	if err := w.Solve(); err != nil {
		t.Fatalf("second Solve: %v", err)
	}
	x2, l2 := w.Solution()

	for i := range x1 {
		if math.Abs(x1[i]-x2[i]) > s.EpsAbs {
			t.Errorf("x*[%d] changed across warm-started re-solve: %v -> %v", i, x1[i], x2[i])
		}
	}
	for i := range l1 {
		if math.Abs(l1[i]-l2[i]) > s.EpsAbs {
			t.Errorf("lambda*[%d] changed across warm-started re-solve: %v -> %v", i, l1[i], l2[i])
		}
	}
	if w.Info().Iter >= 5 {
		t.Errorf("warm-started re-solve took %d iterations, want < 5", w.Info().Iter)
	}
}

// Property 5 is covered by TestS4InfeasibleBoundsOnUpdate in the external
// test package; this adds the boundary case lA == uA (must succeed).
func TestBoundUpdateAcceptsEqualBounds(t *testing.T) {
	w, err := Setup(boxProblem(), DefaultSettings())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer w.Close()

	if err := w.UpdateLowerBound([]float64{1}); err != nil {
		t.Errorf("UpdateLowerBound(1) with uA=1 should succeed: %v", err)
	}
}

func TestSetupRejectsInvalidSettings(t *testing.T) {
	p := boxProblem()
	s := DefaultSettings()
	s.Rho = -1
	if _, err := Setup(p, s); err == nil {
		t.Fatal("expected InvalidSettingsError for Rho <= 0")
	}
}

func TestSetupRejectsInvalidData(t *testing.T) {
	p := boxProblem()
	p.Q = []float64{1} // wrong length
	if _, err := Setup(p, DefaultSettings()); err == nil {
		t.Fatal("expected InvalidDataError for mismatched Q length")
	}
}

func TestSetupForcesPolishingOffWhenUnconstrained(t *testing.T) {
	p := Problem{N: 1, P: sparse.NewCSC(1, 1, []int{0, 1}, []int{0}, []float64{4}), Q: []float64{-8}}
	s := DefaultSettings()
	s.Polishing = true
	w, err := Setup(p, s)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer w.Close()
	if w.Settings().Polishing {
		t.Error("Polishing should be forced off when M == 0")
	}
}
