package admmqp

import "time"

// timer is the Timer collaborator from spec.md §6 ("tic, toc returning
// seconds as floating point. Optional."), reworked into the idiomatic Go
// shape: a zero-value-safe wrapper over time.Now/time.Since. The teacher
// carries no dedicated timing library anywhere in the retrieved pack —
// optimize.Stats.Runtime is a plain time.Duration computed the same way —
// so this follows that precedent rather than introducing one.
type timer struct {
	start time.Time
}

func (t *timer) tic() { t.start = time.Now() }

func (t *timer) toc() time.Duration { return time.Since(t.start) }
