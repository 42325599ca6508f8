// Package linsys defines the abstract linear-system-solver seam that the
// admmqp ADMM core consumes each iteration, and a concrete dense
// implementation of it.
//
// spec.md §4.4 treats "the specific direct-factorization backend used to
// solve KKT systems" as an external collaborator, exposing only
// init_priv/solve_lin_sys/free_priv to the core. Package linsys models that
// contract as a small interface (mirroring the reverse-communication seam
// the teacher's linsolve.Method interface uses to decouple an iterative
// method from its caller), so that multiple factorization strategies can
// coexist behind it, per spec.md §9's "abstract KKT solver" design note.
package linsys

// Solver is the capability set the ADMM core needs from a KKT backend: a
// one-time factorization and a repeated in-place solve against it.
type Solver interface {
	// SolveInPlace overwrites rhs with the solution of K*x = rhs, where K
	// is the matrix this Solver was built against.
	SolveInPlace(rhs []float64) error

	// Dim reports the dimension of the linear system this Solver factors.
	Dim() int

	// Close releases any resources held by the factorization.
	Close()
}

// FactorizeError reports that a KKT coefficient matrix could not be
// factorized (spec.md: SetupFailed). It is returned by factory functions
// such as NewDenseKKT, never by SolveInPlace.
type FactorizeError struct {
	Reason string
}

func (e *FactorizeError) Error() string {
	return "linsys: factorization failed: " + e.Reason
}
