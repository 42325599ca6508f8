package admmqp

import (
	"fmt"
	"io"
	"os"
)

// verboseWriter is where Settings.Verbose output goes. It is unexported and
// a Workspace's printer is unexported too, so only code inside this package
// can redirect the progress stream; there is no global logger to
// reconfigure.
var verboseWriter io.Writer = os.Stdout

// printIntervalIters is how often Solve prints a progress summary when
// Settings.Verbose is set (spec.md §6: "printed every PRINT_INTERVAL
// iterations").
const printIntervalIters = 25

// printer is the Printer collaborator from spec.md §6. It writes to an
// io.Writer rather than a global logging sink, matching the teacher's own
// convention of formatting through fmt/Stringer (e.g. mat's Format
// implementation) instead of reaching for a logging framework.
type printer struct {
	w io.Writer
}

func (p *printer) header(n, m int, s Settings) {
	if p == nil || p.w == nil {
		return
	}
	fmt.Fprintf(p.w, "admmqp: n=%d, m=%d, rho=%g, sigma=%g, alpha=%g, eps_abs=%g, eps_rel=%g\n",
		n, m, s.Rho, s.Sigma, s.Alpha, s.EpsAbs, s.EpsRel)
	fmt.Fprintf(p.w, "%6s %12s %12s %12s\n", "iter", "obj", "pri_res", "dua_res")
}

func (p *printer) summary(info Info) {
	if p == nil || p.w == nil {
		return
	}
	fmt.Fprintf(p.w, "%6d %12.4e %12.4e %12.4e\n", info.Iter, info.ObjVal, info.PriRes, info.DuaRes)
}

func (p *printer) footer(info Info) {
	if p == nil || p.w == nil {
		return
	}
	fmt.Fprintf(p.w, "status: %s, iterations: %d, run time: %s\n", info.Status, info.Iter, info.RunTime)
}
