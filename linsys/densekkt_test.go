package linsys

import (
	"math"
	"testing"

	"github.com/quadsolve/admmqp/sparse"
)

// P = [[4]], A = [[1]], sigma=1e-6, rho=1 ->
// K = [[4+1e-6, 1], [1, -1]]
func TestDenseKKTSolve(t *testing.T) {
	P := sparse.NewCSC(1, 1, []int{0, 1}, []int{0}, []float64{4})
	A := sparse.NewCSC(1, 1, []int{0, 1}, []int{0}, []float64{1})

	solver, err := NewDenseKKT(P, A, 1e-6, 1)
	if err != nil {
		t.Fatalf("NewDenseKKT: %v", err)
	}
	defer solver.Close()

	if solver.Dim() != 2 {
		t.Fatalf("Dim() = %d, want 2", solver.Dim())
	}

	rhs := []float64{1, 2}
	if err := solver.SolveInPlace(rhs); err != nil {
		t.Fatalf("SolveInPlace: %v", err)
	}

	// K*x = rhs, check residual directly rather than a hardcoded solution,
	// since the exact values depend on sigma's tiny perturbation.
	k := [2][2]float64{{4 + 1e-6, 1}, {1, -1}}
	res := [2]float64{
		k[0][0]*rhs[0] + k[0][1]*rhs[1] - 1,
		k[1][0]*rhs[0] + k[1][1]*rhs[1] - 2,
	}
	for _, r := range res {
		if math.Abs(r) > 1e-9 {
			t.Errorf("residual too large: %v", res)
		}
	}
}

func TestDenseKKTSingular(t *testing.T) {
	// P = [[0]], A = [[0]], rho huge -> K = [[sigma, 0],[0, -1/rho]] is
	// fine unless sigma is also ~0; force singularity with sigma=0, rho=inf-ish.
	P := sparse.NewCSC(1, 1, []int{0, 0}, nil, nil)
	A := sparse.NewCSC(1, 1, []int{0, 0}, nil, nil)
	_, err := NewDenseKKT(P, A, 0, 1e20)
	if err == nil {
		t.Fatal("expected a FactorizeError for a singular KKT matrix, got nil")
	}
	var fe *FactorizeError
	if !asFactorizeError(err, &fe) {
		t.Fatalf("error is not a *FactorizeError: %v", err)
	}
}

func asFactorizeError(err error, target **FactorizeError) bool {
	fe, ok := err.(*FactorizeError)
	if ok {
		*target = fe
	}
	return ok
}
