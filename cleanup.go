package admmqp

// Close releases the KKT factorization held by the Workspace. Go's
// garbage collector owns every other interior buffer, so Close's itemized
// structure exists mainly to document exclusive ownership (spec.md §5) and
// to make the KKT handle's lifetime explicit and tied to the Workspace, as
// spec.md requires; it mirrors osqp_cleanup in the original osqp.c, which
// frees every sub-structure by hand.
//
// Close is idempotent: calling it more than once is safe and a no-op
// after the first call.
func (w *Workspace) Close() {
	if w.closed {
		return
	}
	if w.kkt != nil {
		w.kkt.Close()
	}
	w.data.P.Free()
	w.data.A.Free()
	w.closed = true
}
