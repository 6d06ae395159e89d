package engine

import (
	"sync/atomic"
	"time"
)

// Clock tracks a search's wall-clock budget and node count, and carries
// the one piece of state search.go intentionally shares across goroutines:
// an abort flag that Stop can set asynchronously. No signal handler is
// installed anywhere in this module; the flag is set only by Stop or by
// Aborted once the deadline has passed. This mirrors blunext-chess's
// SearchContext/atomic-stop-flag idiom, generalized from a single
// deadline check to the overshoot-projecting stop rule iterative
// deepening needs (spec.md §4.7).
type Clock struct {
	deadline time.Time // zero means unbounded
	budget   time.Duration
	steps    int // 1 or 2; see ProjectsOvershoot
	aborted  atomic.Bool
	nodes    atomic.Int64

	prevElapsed time.Duration // the iteration before the last completed one
}

// NewClock starts a clock with budget remaining from now, projecting
// overshoot with the one- or two-step-per-deepening formula of spec.md
// §4.7 according to steps (1 or 2; anything else behaves as 1). A zero or
// negative budget means unbounded (fixed-depth search).
func NewClock(budget time.Duration, steps int) *Clock {
	c := &Clock{budget: budget, steps: steps}
	if budget > 0 {
		c.deadline = time.Now().Add(budget)
	}
	return c
}

// Stop requests that the current search return as soon as it next polls
// the clock, matching the reference implementation's signal-handler-set
// abort flag.
func (c *Clock) Stop() {
	c.aborted.Store(true)
}

// Aborted reports whether the search should stop now: either Stop was
// called, or the deadline (if any) has passed. Search loops poll this at
// recursion boundaries only — there is no preemption.
func (c *Clock) Aborted() bool {
	if c.aborted.Load() {
		return true
	}
	if !c.deadline.IsZero() && time.Now().After(c.deadline) {
		c.aborted.Store(true)
		return true
	}
	return false
}

// Remaining returns the time left until the deadline, or the largest
// representable duration if the clock is unbounded.
func (c *Clock) Remaining() time.Duration {
	if c.deadline.IsZero() {
		return time.Duration(1<<63 - 1)
	}
	return time.Until(c.deadline)
}

// CountNode increments and returns the node counter. Called once per
// position visited in the search tree.
func (c *Clock) CountNode() int64 {
	return c.nodes.Add(1)
}

// Nodes returns the current node count.
func (c *Clock) Nodes() int64 {
	return c.nodes.Load()
}

// overshootFactor stands in for the growth ratio r on the first couple of
// iterations, before two completed iterations exist to measure it from
// (Dvonn's branching factor shrinks as the board empties, but early
// stacking-phase plies can still fan out to M moves, so this default
// projects conservatively).
const overshootFactor = 4

// ProjectsOvershoot reports whether starting another iterative-deepening
// iteration at depth+1, given how long the last one (at depth) took, would
// likely blow the total time budget. Iterative deepening calls this
// between depths instead of starting a doomed iteration and aborting it
// partway through, which would waste the time already spent on it.
//
// It implements spec.md §4.7's two projection formulas: the ratio r is the
// last iteration's elapsed time over the one before it (falling back to
// overshootFactor until two iterations have completed); with c.steps == 1
// ("one-step-per-deepening") it stops when used·r² exceeds the budget,
// and with c.steps == 2 ("two-step-per-deepening") it stops when
// used·(even ? 2r : r/2) exceeds it, where "even" is the parity of the
// depth about to be searched.
func (c *Clock) ProjectsOvershoot(depth int, lastElapsed time.Duration) bool {
	if c.deadline.IsZero() {
		return false
	}

	r := float64(overshootFactor)
	if c.prevElapsed > 0 && lastElapsed > 0 {
		r = float64(lastElapsed) / float64(c.prevElapsed)
	}
	c.prevElapsed = lastElapsed

	used := float64(time.Since(c.deadline.Add(-c.budget)))
	budget := float64(c.budget)

	var factor float64
	if c.steps == 2 {
		if (depth+1)%2 == 0 {
			factor = 2 * r
		} else {
			factor = r / 2
		}
	} else {
		factor = r * r
	}
	return used*factor > budget
}
