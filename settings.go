package admmqp

import "math"

// NormOrder selects the vector/matrix norm used during Ruiz scaling
// (spec.md: scaling_norm ∈ {1, 2, ∞}).
type NormOrder float64

// Supported scaling norms.
const (
	NormL1 NormOrder = 1
	NormL2 NormOrder = 2
)

// NormInf is the ∞-norm, OSQP's default scaling norm.
var NormInf = NormOrder(math.Inf(1))

// normOrder converts a NormOrder to the float64 value the scale package
// expects.
func (n NormOrder) normOrder() float64 {
	return float64(n)
}

// Settings configures a Workspace. It is immutable for the lifetime of a
// Workspace once passed to Setup, except where individual fields document
// otherwise (Verbose and WarmStart may be changed between Solve calls).
//
// The zero value is not a valid Settings; use DefaultSettings and override
// individual fields, mirroring how the teacher's optimize.Settings
// documents per-field defaults on an otherwise-structural config type
// rather than parsing configuration from a file.
type Settings struct {
	// Rho is the ADMM penalty parameter for the constraint term. Must be > 0.
	Rho float64

	// Sigma is the regularization added to P in the KKT system to keep it
	// well-posed even when P is only positive semidefinite. Must be > 0.
	Sigma float64

	// Alpha is the over-relaxation parameter blending the new iterate with
	// the previous z. Must lie in (0, 2); Alpha=1 disables over-relaxation.
	Alpha float64

	// MaxIter bounds the number of ADMM iterations. Must be >= 1.
	MaxIter int

	// EpsAbs and EpsRel set the absolute/relative tolerances used to build
	// the primal/dual termination thresholds (spec.md §4.2). Must be >= 0.
	EpsAbs, EpsRel float64

	// Scaling is the number of Ruiz equilibration passes to run during
	// Setup. Zero disables scaling (identity D, E).
	Scaling int

	// ScalingNorm selects the norm used while equilibrating.
	ScalingNorm NormOrder

	// Polishing enables the post-solve active-set polish step (spec.md
	// §4.6). Forced off by Setup when m == 0, regardless of this setting.
	Polishing bool

	// PolRefineIter is the number of iterative-refinement passes applied
	// to the polish solve.
	PolRefineIter int

	// Delta is the regularization used when assembling the reduced polish
	// system.
	Delta float64

	// Verbose enables per-iteration progress printing via the printer
	// collaborator. May be toggled between Solve calls.
	Verbose bool

	// WarmStart controls whether Solve reuses the previous x, z, u (true)
	// or cold-starts them to zero (false). May be toggled between Solve
	// calls.
	WarmStart bool
}

// DefaultSettings returns the settings OSQP-style solvers conventionally
// ship with: rho=0.1, sigma=1e-6, alpha=1.6, max_iter=4000, eps=1e-3,
// scaling=10 passes of ∞-norm Ruiz equilibration, polishing enabled.
func DefaultSettings() Settings {
	return Settings{
		Rho:           0.1,
		Sigma:         1e-6,
		Alpha:         1.6,
		MaxIter:       4000,
		EpsAbs:        1e-3,
		EpsRel:        1e-3,
		Scaling:       10,
		ScalingNorm:   NormInf,
		Polishing:     true,
		PolRefineIter: 3,
		Delta:         1e-6,
		Verbose:       false,
		WarmStart:     false,
	}
}

// validate checks the invariants spec.md §4.1 requires of Settings,
// returning an *InvalidSettingsError describing the first violation found.
func (s Settings) validate() error {
	switch {
	case s.Rho <= 0:
		return &InvalidSettingsError{Field: "Rho", Reason: "must be > 0"}
	case s.Sigma <= 0:
		return &InvalidSettingsError{Field: "Sigma", Reason: "must be > 0"}
	case s.Alpha <= 0 || s.Alpha >= 2:
		return &InvalidSettingsError{Field: "Alpha", Reason: "must lie in (0, 2)"}
	case s.MaxIter < 1:
		return &InvalidSettingsError{Field: "MaxIter", Reason: "must be >= 1"}
	case s.EpsAbs < 0:
		return &InvalidSettingsError{Field: "EpsAbs", Reason: "must be >= 0"}
	case s.EpsRel < 0:
		return &InvalidSettingsError{Field: "EpsRel", Reason: "must be >= 0"}
	case s.Scaling < 0:
		return &InvalidSettingsError{Field: "Scaling", Reason: "must be >= 0"}
	case s.Polishing && s.Delta <= 0:
		return &InvalidSettingsError{Field: "Delta", Reason: "must be > 0 when Polishing is enabled"}
	}
	return nil
}
