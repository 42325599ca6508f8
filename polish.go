package admmqp

import (
	"gonum.org/v1/gonum/mat"

	"github.com/quadsolve/admmqp/linsys"
	"github.com/quadsolve/admmqp/sparse"
)

// activeThreshold is the magnitude a constraint's multiplier must exceed
// before polish treats the row as active. spec.md leaves this threshold
// unspecified; OSQP-style solvers use a small fixed value rather than a
// setting, which is the choice made here.
const activeThreshold = 1e-4

// polish runs the active-set polish step of spec.md §4.6. It is only
// called when Settings.Polishing is set and the ADMM loop reported
// StatusSolved. If the polished point is not at least as good as the
// unpolished one, the ADMM iterate is kept — the source this solver is
// modeled on polishes unconditionally, but spec.md §9 flags that as a
// questionable choice and asks for an explicit pick; this implementation
// rejects regressions (see DESIGN.md).
func (w *Workspace) polish() {
	n, m := w.data.n, w.data.m
	if m == 0 {
		return
	}

	yOrig := make([]float64, m)
	for i := 0; i < m; i++ {
		yOrig[i] = w.scaling.E[i] * w.settings.Rho * w.iter.u[i]
	}

	nActive := 0
	for i := 0; i < m; i++ {
		w.pol.indLAct[i] = yOrig[i] < -activeThreshold
		w.pol.indUAct[i] = yOrig[i] > activeThreshold
		if w.pol.indLAct[i] || w.pol.indUAct[i] {
			w.pol.a2Ared[i] = nActive
			nActive++
		} else {
			w.pol.a2Ared[i] = -1
		}
	}
	if nActive == 0 {
		return
	}

	pOrig := unscaledUpperTriangle(w.data.P, w.scaling.Dinv)

	ARed := mat.NewDense(nActive, n, nil)
	bRed := make([]float64, nActive)
	unitRow := make([]float64, m)
	row := make([]float64, n)
	for i := 0; i < m; i++ {
		r := w.pol.a2Ared[i]
		if r < 0 {
			continue
		}
		for k := range unitRow {
			unitRow[k] = 0
		}
		unitRow[i] = 1
		w.data.A.MulTransVec(row, unitRow) // row = i-th row of scaled A
		for j := 0; j < n; j++ {
			ARed.Set(r, j, w.scaling.Einv[i]*row[j]*w.scaling.Dinv[j])
		}
		if w.pol.indLAct[i] {
			bRed[r] = w.scaling.Einv[i] * w.data.lA[i]
		} else {
			bRed[r] = w.scaling.Einv[i] * w.data.uA[i]
		}
	}

	qOrig := make([]float64, n)
	for i := 0; i < n; i++ {
		qOrig[i] = w.scaling.Dinv[i] * w.data.q[i]
	}

	system, err := linsys.NewDensePolishSystem(pOrig, ARed, w.settings.Delta)
	if err != nil {
		return // could not factorize the reduced system: keep the ADMM iterate
	}
	defer system.Close()

	rhs := make([]float64, n+nActive)
	for i := 0; i < n; i++ {
		rhs[i] = -qOrig[i]
	}
	copy(rhs[n:], bRed)
	if err := system.SolveInPlace(rhs); err != nil {
		return
	}

	for iter := 0; iter < w.settings.PolRefineIter; iter++ {
		correction := refineResidual(pOrig, ARed, qOrig, bRed, rhs, w.settings.Delta)
		if err := system.SolveInPlace(correction); err != nil {
			break
		}
		for i := range rhs {
			rhs[i] += correction[i]
		}
	}

	xPol := rhs[:n]
	yRed := rhs[n:]

	lambdaPol := make([]float64, m)
	for i := 0; i < m; i++ {
		if r := w.pol.a2Ared[i]; r >= 0 {
			lambdaPol[i] = yRed[r]
		}
	}

	priPol, duaPol := polishedResiduals(w, xPol, lambdaPol)
	if priPol <= w.info.PriRes && duaPol <= w.info.DuaRes {
		copy(w.pol.xPol, xPol)
		w.data.A.MulVec(w.pol.AxPol, scaleElemwise(xPol, w.scaling.Dinv))
		w.polishApplied = true
		w.polishedXOrig = append([]float64(nil), xPol...)
		w.polishedLambda = lambdaPol
		w.info.PriRes, w.info.DuaRes = priPol, duaPol
	}
}

// unscaledUpperTriangle returns a copy of the (scaled) upper-triangular P
// converted back to original units: P_orig[i][j] = Dinv[i]*P̃[i][j]*Dinv[j].
func unscaledUpperTriangle(p *sparse.CSC, dinv []float64) *sparse.CSC {
	out := p.Clone()
	for j := 0; j < out.Cols; j++ {
		for k := out.ColPtr[j]; k < out.ColPtr[j+1]; k++ {
			i := out.RowIdx[k]
			out.Val[k] *= dinv[i] * dinv[j]
		}
	}
	return out
}

func scaleElemwise(v, scale []float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] * scale[i]
	}
	return out
}

// polishedResiduals evaluates the primal/dual residual of the candidate
// polished point (xPolOrig in original units, lambdaPol the reconstructed
// dual) against the original problem, for the accept/reject comparison of
// spec.md §4.6 step 5.
func polishedResiduals(w *Workspace, xPolOrig, lambdaPol []float64) (pri, dua float64) {
	n, m := w.data.n, w.data.m

	xScaled := scaleElemwise(xPolOrig, w.scaling.Dinv)
	ax := make([]float64, m)
	if m > 0 {
		w.data.A.MulVec(ax, xScaled)
	}
	rp := make([]float64, m)
	for i := 0; i < m; i++ {
		axOrig := w.scaling.Einv[i] * ax[i]
		lo, hi := w.scaling.Einv[i]*w.data.lA[i], w.scaling.Einv[i]*w.data.uA[i]
		rp[i] = axOrig - projectBox(axOrig, lo, hi)
	}
	pri = infNorm(rp)

	px := make([]float64, n)
	w.data.P.MulSymVec(px, xScaled)
	lambdaScaled := scaleElemwise(lambdaPol, w.scaling.Einv)
	atY := make([]float64, n)
	if m > 0 {
		w.data.A.MulTransVec(atY, lambdaScaled)
	}
	rd := make([]float64, n)
	for i := 0; i < n; i++ {
		rd[i] = w.scaling.Dinv[i] * (px[i] + w.data.q[i] + atY[i])
	}
	dua = infNorm(rd)
	return pri, dua
}

// refineResidual computes the residual (b - M*[x;y]) of the reduced polish
// system, the standard ingredient of iterative refinement (spec.md §4.6
// step 3).
func refineResidual(pOrig *sparse.CSC, ARed *mat.Dense, q, bRed, xy []float64, delta float64) []float64 {
	n := len(q)
	r, _ := ARed.Dims()
	x := xy[:n]
	y := xy[n:]
	out := make([]float64, n+r)

	px := make([]float64, n)
	pOrig.MulSymVec(px, x)
	for i := 0; i < n; i++ {
		var atyi float64
		for k := 0; k < r; k++ {
			atyi += ARed.At(k, i) * y[k]
		}
		out[i] = -q[i] - (px[i] + delta*x[i] + atyi)
	}
	for k := 0; k < r; k++ {
		var aredx float64
		for i := 0; i < n; i++ {
			aredx += ARed.At(k, i) * x[i]
		}
		out[n+k] = bRed[k] - (aredx - delta*y[k])
	}
	return out
}
