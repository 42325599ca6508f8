package admmqp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Solve runs the ADMM loop to convergence or Settings.MaxIter, then
// optionally polishes the result (spec.md §4.2, §4.6). Non-convergence is
// reported through Info().Status rather than as an error value (spec.md
// §6); the only error Solve returns is a *SetupFailedError when the KKT
// backend fails to solve mid-iteration.
func (w *Workspace) Solve() error {
	w.timer.tic()
	n, m := w.data.n, w.data.m

	w.info.Status = StatusUnsolved
	w.polishApplied = false
	w.polishedXOrig = nil
	w.polishedLambda = nil

	if !w.settings.WarmStart {
		w.coldStart()
	}

	var history []ResidualSample
	if w.settings.Verbose {
		history = make([]ResidualSample, 0, w.settings.MaxIter)
	}

	rhs := make([]float64, n+m)

	iter := 0
	for ; iter < w.settings.MaxIter; iter++ {
		copy(w.iter.zPrev, w.iter.z)

		w.assembleRHS(rhs)
		if err := w.kkt.SolveInPlace(rhs); err != nil {
			// A breakdown mid-iteration has no spec-level recovery path;
			// surface it the same way a factorization failure at Setup
			// would be surfaced, since both mean the KKT backend could
			// not produce a usable solve.
			return &SetupFailedError{Err: err}
		}
		w.updateX(rhs)
		w.projectZ()
		w.updateU()

		w.updateInfo(iter)

		if w.out != nil && iter%printIntervalIters == 0 {
			w.out.summary(w.info)
		}
		if w.settings.Verbose {
			history = append(history, ResidualSample{Iter: iter, PriRes: w.info.PriRes, DuaRes: w.info.DuaRes})
		}

		if w.residualsConverged() {
			w.info.Status = StatusSolved
			iter++
			break
		}
	}
	w.info.Iter = iter
	if w.info.Status != StatusSolved {
		w.info.Status = StatusMaxIterReached
	}
	w.info.ResidualHistory = history

	if w.out != nil && (iter-1)%printIntervalIters != 0 {
		w.out.summary(w.info)
	}

	w.info.SolveTime = w.timer.toc()

	if w.settings.Polishing && w.info.Status == StatusSolved {
		w.timer.tic()
		w.polish()
		w.info.PolishTime = w.timer.toc()
	}

	w.info.RunTime = w.info.SetupTime + w.info.SolveTime + w.info.PolishTime
	if w.out != nil {
		w.out.footer(w.info)
	}

	w.publishSolution()
	return nil
}

// coldStart zeroes x, z, u (spec.md §4.2: "when warm_start is false at
// solve entry: x, z, u ← 0").
func (w *Workspace) coldStart() {
	zero(w.iter.x)
	zero(w.iter.z)
	zero(w.iter.u)
}

func zero(v []float64) {
	for i := range v {
		v[i] = 0
	}
}

// assembleRHS forms r[0:n] = σ·x[0:n] − q and r[n:n+m] = z[n:n+m] − u/ρ
// (spec.md §4.2 step 2), operating on the scaled problem.
func (w *Workspace) assembleRHS(rhs []float64) {
	n, m := w.data.n, w.data.m
	sigma, rho := w.settings.Sigma, w.settings.Rho

	for i := 0; i < n; i++ {
		rhs[i] = sigma*w.iter.x[i] - w.data.q[i]
	}
	for i := 0; i < m; i++ {
		rhs[n+i] = w.iter.z[n+i] - w.iter.u[i]/rho
	}
}

// updateX applies over-relaxation to the KKT solve xTilde, producing the
// new x (spec.md §4.2 step 4).
func (w *Workspace) updateX(xTilde []float64) {
	n, m := w.data.n, w.data.m
	alpha, rho := w.settings.Alpha, w.settings.Rho

	for i := 0; i < n; i++ {
		w.iter.x[i] = alpha*xTilde[i] + (1-alpha)*w.iter.zPrev[i]
	}
	for i := 0; i < m; i++ {
		w.iter.x[n+i] = alpha*xTilde[n+i] + (1-alpha)*w.iter.zPrev[n+i] + w.iter.u[i]/rho
	}
}

// projectZ sets z's primal block to x's (unconstrained) and projects the
// slack block onto [lA, uA] (spec.md §4.2 step 5).
func (w *Workspace) projectZ() {
	n, m := w.data.n, w.data.m
	rho := w.settings.Rho

	copy(w.iter.z[:n], w.iter.x[:n])
	for i := 0; i < m; i++ {
		v := w.iter.x[n+i] - w.iter.u[i]/rho
		w.iter.z[n+i] = projectBox(v, w.data.lA[i], w.data.uA[i])
	}
}

// projectBox projects v onto [lo, hi], treating ±∞ as identity on that
// side per spec.md §9 ("never materialize as a large finite number, which
// would bias residuals").
func projectBox(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// updateU performs the scaled-dual ascent step (spec.md §4.2 step 6).
func (w *Workspace) updateU() {
	n, m := w.data.n, w.data.m
	rho := w.settings.Rho
	for i := 0; i < m; i++ {
		w.iter.u[i] += rho * (w.iter.x[n+i] - w.iter.z[n+i])
	}
}

// infNorm is the ∞-norm collaborator, implemented via gonum/floats rather
// than a hand-rolled loop (SPEC_FULL.md §6, dense-vector collaborator).
func infNorm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, math.Inf(1))
}
