package admmqp

// UpdateLinCost replaces q with qNew (length n) and, if scaling is active,
// re-applies the D scaling in place. It never refactorizes the KKT system
// (spec.md §4.7).
//
// spec.md §9 flags that the source this solver is modeled on appears to
// read a free-standing `settings` symbol here instead of `work->settings`
// — a latent bug, not a behavior to replicate. UpdateLinCost always reads
// w.settings through the receiver.
func (w *Workspace) UpdateLinCost(qNew []float64) error {
	if len(qNew) != w.data.n {
		return &InvalidDataError{Field: "qNew", Reason: "must have length N"}
	}
	copy(w.data.q, qNew)
	if w.settings.Scaling > 0 {
		for i := range w.data.q {
			w.data.q[i] *= w.scaling.D[i]
		}
	}
	return nil
}

// UpdateLowerBound replaces lA with lANew (length m), re-applies the E
// scaling if active, and reports BoundsInconsistentError if any row now
// has lA > uA. Per spec.md §7, the update is applied regardless — it is
// NOT rolled back on inconsistency; the caller must re-update before
// calling Solve.
func (w *Workspace) UpdateLowerBound(lANew []float64) error {
	if len(lANew) != w.data.m {
		return &InvalidDataError{Field: "lANew", Reason: "must have length M"}
	}
	copy(w.data.lA, lANew)
	if w.settings.Scaling > 0 {
		for i := range w.data.lA {
			w.data.lA[i] *= w.scaling.E[i]
		}
	}
	for i := 0; i < w.data.m; i++ {
		if w.data.lA[i] > w.data.uA[i] {
			return &BoundsInconsistentError{Row: i}
		}
	}
	return nil
}

// UpdateUpperBound replaces uA with uANew (length m); see UpdateLowerBound
// for the scaling and rollback semantics, which are symmetric.
func (w *Workspace) UpdateUpperBound(uANew []float64) error {
	if len(uANew) != w.data.m {
		return &InvalidDataError{Field: "uANew", Reason: "must have length M"}
	}
	copy(w.data.uA, uANew)
	if w.settings.Scaling > 0 {
		for i := range w.data.uA {
			w.data.uA[i] *= w.scaling.E[i]
		}
	}
	for i := 0; i < w.data.m; i++ {
		if w.data.uA[i] < w.data.lA[i] {
			return &BoundsInconsistentError{Row: i}
		}
	}
	return nil
}
