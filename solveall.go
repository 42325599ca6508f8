package admmqp

import "golang.org/x/sync/errgroup"

// SolveAll solves each of the given Workspaces concurrently on its own
// goroutine and returns once all have finished, or the first error. It
// exists purely as Go-idiomatic sugar over spec.md §5's observation that
// "distinct workspace instances are independent and may be solved in
// parallel on separate threads without shared state" — it changes nothing
// about a single Workspace's solve semantics, and a caller who wants to
// drive workspaces on their own goroutines is free to call Solve directly
// instead.
func SolveAll(workspaces []*Workspace) error {
	var g errgroup.Group
	for _, w := range workspaces {
		w := w
		g.Go(func() error {
			return w.Solve()
		})
	}
	return g.Wait()
}
