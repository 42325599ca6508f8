package admmqp

// publishSolution assembles the final primal x* and dual λ*, undoing
// scaling (spec.md: "Solution publisher — assembles the final primal x*
// and dual λ* (undoing scaling)").
func (w *Workspace) publishSolution() {
	n, m := w.data.n, w.data.m

	if w.polishApplied {
		copy(w.solutionX, w.polishedXOrig)
		copy(w.solutionLambda, w.polishedLambda)
		return
	}

	for i := 0; i < n; i++ {
		w.solutionX[i] = w.scaling.D[i] * w.iter.x[i]
	}
	for i := 0; i < m; i++ {
		w.solutionLambda[i] = w.scaling.E[i] * w.settings.Rho * w.iter.u[i]
	}
}

// Solution returns the most recently published primal solution x* and
// dual solution λ*. Before the first Solve both are zero-filled (lengths n
// and m); both are snapshots safe for the caller to retain and mutate.
func (w *Workspace) Solution() (x, lambda []float64) {
	return append([]float64(nil), w.solutionX...), append([]float64(nil), w.solutionLambda...)
}
