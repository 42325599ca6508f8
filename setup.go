package admmqp

import (
	"math"

	"github.com/quadsolve/admmqp/linsys"
	"github.com/quadsolve/admmqp/scale"
	"github.com/quadsolve/admmqp/sparse"
)

// Problem is the user-supplied QP data passed to Setup. P may be given in
// full or upper-triangular form; Setup canonicalizes it to the upper
// triangle internally (spec.md §4.1) by dropping entries strictly below the
// diagonal, so the off-diagonal entries of a P given only as its lower
// triangle are lost.
type Problem struct {
	N, M   int
	P      *sparse.CSC
	Q      []float64
	A      *sparse.CSC
	LA, UA []float64
}

// Setup validates data and settings, deep-copies the problem into a new
// Workspace, applies Ruiz scaling if enabled, and factorizes the KKT
// system once. It returns a non-nil error (and a nil Workspace) on any
// validation or factorization failure, matching spec.md §7's "Setup
// errors yield a null/absent workspace."
func Setup(p Problem, settings Settings) (*Workspace, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if err := validateProblem(p); err != nil {
		return nil, err
	}

	w := &Workspace{
		settings: settings,
	}
	w.timer.tic()

	a := p.A
	if a == nil {
		a = sparse.NewCSC(0, p.N, make([]int, p.N+1), nil, nil)
	}

	w.data = problemData{
		n:  p.N,
		m:  p.M,
		P:  p.P.ToUpperTriangle().Clone(),
		q:  append([]float64(nil), p.Q...),
		A:  a.Clone(),
		lA: append([]float64(nil), p.LA...),
		uA: append([]float64(nil), p.UA...),
	}

	if p.M == 0 {
		w.settings.Polishing = false
	}

	n, m := p.N, p.M
	w.iter = iterates{
		x:     make([]float64, n+m),
		z:     make([]float64, n+m),
		zPrev: make([]float64, n+m),
		u:     make([]float64, m),
	}
	w.pol = polishScratch{
		indLAct: make([]bool, m),
		indUAct: make([]bool, m),
		a2Ared:  make([]int, m),
		xPol:    make([]float64, n),
		AxPol:   make([]float64, m),
	}
	w.res = residualScratch{
		px: make([]float64, n), xOrig: make([]float64, n), pxOrig: make([]float64, n),
		qOrig: make([]float64, n), atY: make([]float64, n), atYOrig: make([]float64, n),
		rd: make([]float64, n),
		ax: make([]float64, m), axOrig: make([]float64, m), zOrig: make([]float64, m),
		rp: make([]float64, m), rhoU: make([]float64, m),
	}
	w.solutionX = make([]float64, n)
	w.solutionLambda = make([]float64, m)

	if w.settings.Scaling > 0 {
		w.scaling = scale.Ruiz(w.data.P, w.data.A, w.data.q, w.data.lA, w.data.uA,
			w.settings.Scaling, w.settings.ScalingNorm.normOrder())
	} else {
		w.scaling = scale.Identity(n, m)
	}

	kkt, err := linsys.NewDenseKKT(w.data.P, w.data.A, w.settings.Sigma, w.settings.Rho)
	if err != nil {
		return nil, &SetupFailedError{Err: err}
	}
	w.kkt = kkt

	w.info = Info{Status: StatusUnsolved}
	if w.settings.Verbose {
		w.out = &printer{w: verboseWriter}
	}

	w.info.SetupTime = w.timer.toc()
	if w.out != nil {
		w.out.header(n, m, w.settings)
	}

	return w, nil
}

func validateProblem(p Problem) error {
	if p.N < 1 {
		return &InvalidDataError{Field: "N", Reason: "must be >= 1"}
	}
	if p.M < 0 {
		return &InvalidDataError{Field: "M", Reason: "must be >= 0"}
	}
	if p.N > math.MaxInt-p.M {
		return &AllocationFailedError{Reason: "N+M overflows int"}
	}
	if p.P == nil {
		return &InvalidDataError{Field: "P", Reason: "must not be nil"}
	}
	if r, c := p.P.Dims(); r != p.N || c != p.N {
		return &InvalidDataError{Field: "P", Reason: "must be N×N"}
	}
	if len(p.Q) != p.N {
		return &InvalidDataError{Field: "Q", Reason: "must have length N"}
	}
	if p.M > 0 {
		if p.A == nil {
			return &InvalidDataError{Field: "A", Reason: "must not be nil when M > 0"}
		}
		if r, c := p.A.Dims(); r != p.M || c != p.N {
			return &InvalidDataError{Field: "A", Reason: "must be M×N"}
		}
		if len(p.LA) != p.M {
			return &InvalidDataError{Field: "LA", Reason: "must have length M"}
		}
		if len(p.UA) != p.M {
			return &InvalidDataError{Field: "UA", Reason: "must have length M"}
		}
		for i := 0; i < p.M; i++ {
			if p.LA[i] > p.UA[i] {
				return &InvalidDataError{Field: "LA/UA", Reason: "lA must be <= uA elementwise"}
			}
		}
	}
	if !allFinite(p.Q) {
		return &InvalidDataError{Field: "Q", Reason: "must be finite"}
	}
	for _, v := range p.P.Val {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidDataError{Field: "P", Reason: "must be finite"}
		}
	}
	if p.A != nil {
		for _, v := range p.A.Val {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &InvalidDataError{Field: "A", Reason: "must be finite"}
			}
		}
	}
	return nil
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
