// Package diag renders optional post-solve diagnostics. It is not part of
// the ADMM/KKT/residual/polish core described in spec.md — the core never
// imports it — but gives the "Printer" collaborator's spirit (spec.md §6:
// optional, human-facing solve output) a richer, chart-based form, and is
// the concrete home for the teacher's plotting dependency fan-out
// (gonum.org/v1/plot and its renderer backends) per SPEC_FULL.md §6/§9.
package diag

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/quadsolve/admmqp"
)

// PlotResidualHistory renders the primal and dual residual history of a
// completed, verbose solve (admmqp.Info.ResidualHistory) to a line chart
// and saves it to path. The file format is inferred from path's extension
// (".png", ".svg", ".pdf" are all supported by gonum/plot's backends).
//
// PlotResidualHistory returns an error if info has no recorded history —
// callers must run Solve with Settings.Verbose set to populate it.
func PlotResidualHistory(info admmqp.Info, path string) error {
	if len(info.ResidualHistory) == 0 {
		return fmt.Errorf("diag: info has no residual history; Solve must run with Settings.Verbose=true")
	}

	p := plot.New()
	p.Title.Text = "ADMM residual convergence"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "residual (log scale)"
	p.Y.Scale = plot.LogScale{}

	pri := make(plotter.XYs, len(info.ResidualHistory))
	dua := make(plotter.XYs, len(info.ResidualHistory))
	for i, s := range info.ResidualHistory {
		pri[i] = plotter.XY{X: float64(s.Iter), Y: clampPositive(s.PriRes)}
		dua[i] = plotter.XY{X: float64(s.Iter), Y: clampPositive(s.DuaRes)}
	}

	priLine, err := plotter.NewLine(pri)
	if err != nil {
		return fmt.Errorf("diag: building primal residual line: %w", err)
	}
	duaLine, err := plotter.NewLine(dua)
	if err != nil {
		return fmt.Errorf("diag: building dual residual line: %w", err)
	}
	priLine.Color = plotter.DefaultLineStyle.Color
	duaLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(priLine, duaLine)
	p.Legend.Add("primal residual", priLine)
	p.Legend.Add("dual residual", duaLine)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// clampPositive guards the log-scale axis against a zero or negative
// residual sample, which would otherwise be unplottable on a log axis.
func clampPositive(v float64) float64 {
	const floor = 1e-16
	if v < floor {
		return floor
	}
	return v
}
