package admmqp

import (
	"time"

	"github.com/quadsolve/admmqp/linsys"
	"github.com/quadsolve/admmqp/scale"
	"github.com/quadsolve/admmqp/sparse"
)

// problemData holds the problem in internal canonical form: P's upper
// triangle, q, A, and the box bounds lA/uA. All fields are scaled in place
// when scaling is active; the original, user-supplied values are not kept
// separately (spec.md does not require round-tripping the unscaled inputs,
// only the unscaled outputs — see solution.go).
type problemData struct {
	n, m   int
	P      *sparse.CSC
	q      []float64
	A      *sparse.CSC
	lA, uA []float64
}

// iterates holds the ADMM state vectors. x and z have length n+m (primal
// block followed by the slack/constraint block); u has length m.
type iterates struct {
	x, z, zPrev []float64
	u           []float64
}

// residualScratch holds the buffers the residual monitor reuses every
// iteration, so updateInfo never allocates on the hot path (spec.md §4.5,
// "dua_res_ws_n / dua_res_ws_m ... to avoid per-iteration allocation").
type residualScratch struct {
	px, xOrig, pxOrig, qOrig, atY, atYOrig, rd []float64 // length n
	ax, axOrig, zOrig, rp, rhoU                []float64 // length m
}

// polishScratch holds the buffers used only during the polish step
// (spec.md §3, "Polish workspace").
type polishScratch struct {
	indLAct, indUAct []bool
	a2Ared           []int // row i of A -> row in the active submatrix, or -1
	xPol             []float64
	AxPol            []float64
}

// Info is the solver-owned, mutable run report (spec.md §3 "Info").
type Info struct {
	Iter       int
	Status     StatusCode
	ObjVal     float64
	PriRes     float64
	DuaRes     float64
	SetupTime  time.Duration
	SolveTime  time.Duration
	PolishTime time.Duration
	RunTime    time.Duration

	// ResidualHistory records (PriRes, DuaRes) at every iteration when
	// Settings.Verbose is set, so admmqp/diag can chart convergence after
	// the fact. Nil when Verbose was false during the run.
	ResidualHistory []ResidualSample
}

// ResidualSample is one entry of Info.ResidualHistory.
type ResidualSample struct {
	Iter          int
	PriRes, DuaRes float64
}

// Workspace is the top-level, exclusively-owning handle produced by Setup.
// Every interior buffer (problem copies, iterates, scaling diagonals, the
// KKT factorization, polish scratch, info, solution) is reachable only
// through a Workspace; spec.md §5 requires this exclusive-ownership model
// so that distinct Workspaces never share state and can be solved
// concurrently on separate goroutines (see SolveAll).
type Workspace struct {
	data     problemData
	settings Settings
	scaling  *scale.Factors
	kkt      linsys.Solver
	iter     iterates
	pol      polishScratch
	info     Info

	res residualScratch // preallocated buffers reused every iteration (spec.md §4.5)

	epsPri, epsDua float64 // thresholds cached by updateInfo, read by residualsConverged

	solutionX      []float64
	solutionLambda []float64

	polishApplied  bool
	polishedXOrig  []float64
	polishedLambda []float64

	timer timer
	out   *printer

	closed bool
}

// Settings returns a copy of the workspace's current settings.
func (w *Workspace) Settings() Settings { return w.settings }

// Info returns a copy of the workspace's current run information.
func (w *Workspace) Info() Info { return w.info }

// SetWarmStart toggles warm-starting between Solve calls (spec.md
// Settings.warm_start is documented as mutable at solve entry).
func (w *Workspace) SetWarmStart(v bool) { w.settings.WarmStart = v }

// SetVerbose toggles progress printing between Solve calls.
func (w *Workspace) SetVerbose(v bool) {
	w.settings.Verbose = v
	if !v {
		w.out = nil
	} else if w.out == nil {
		w.out = &printer{w: verboseWriter}
	}
}
