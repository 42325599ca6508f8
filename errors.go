package admmqp

import "fmt"

// InvalidDataError reports a problem-data validation failure at Setup:
// dimension mismatch, a non-finite entry, or lA > uA on input (spec.md §7).
type InvalidDataError struct {
	Field  string
	Reason string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("admmqp: invalid data in %s: %s", e.Field, e.Reason)
}

// InvalidSettingsError reports a Settings validation failure at Setup.
type InvalidSettingsError struct {
	Field  string
	Reason string
}

func (e *InvalidSettingsError) Error() string {
	return fmt.Sprintf("admmqp: invalid setting %s: %s", e.Field, e.Reason)
}

// AllocationFailedError reports the one Go-reachable analogue of spec.md's
// AllocationFailed: a requested problem size that would overflow slice
// indexing before any allocation is attempted. Go otherwise panics on true
// out-of-memory conditions rather than returning an error for them.
type AllocationFailedError struct {
	Reason string
}

func (e *AllocationFailedError) Error() string {
	return fmt.Sprintf("admmqp: allocation failed: %s", e.Reason)
}

// SetupFailedError wraps a KKT factorization failure surfaced by the
// linsys collaborator during Setup, or a failure of that factorization's
// solve during Solve.
type SetupFailedError struct {
	Err error
}

func (e *SetupFailedError) Error() string {
	return fmt.Sprintf("admmqp: setup failed: %v", e.Err)
}

func (e *SetupFailedError) Unwrap() error { return e.Err }

// BoundsInconsistentError is returned by UpdateLowerBound/UpdateUpperBound
// when the requested update would violate lA <= uA. Per spec.md §7, the
// update is still applied in place; the caller must re-update before
// solving.
type BoundsInconsistentError struct {
	Row int
}

func (e *BoundsInconsistentError) Error() string {
	return fmt.Sprintf("admmqp: bounds inconsistent at row %d: lA > uA", e.Row)
}
