package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockUnboundedNeverAbortsOnItsOwn(t *testing.T) {
	c := NewClock(0, 1)
	assert.False(t, c.Aborted())
	assert.False(t, c.ProjectsOvershoot(1, time.Hour))
}

func TestClockStopAborts(t *testing.T) {
	c := NewClock(time.Hour, 1)
	assert.False(t, c.Aborted())
	c.Stop()
	assert.True(t, c.Aborted())
}

func TestClockDeadlineExpires(t *testing.T) {
	c := NewClock(time.Millisecond, 1)
	time.Sleep(5 * time.Millisecond)
	assert.True(t, c.Aborted())
}

func TestClockCountNode(t *testing.T) {
	c := NewClock(0, 1)
	assert.EqualValues(t, 1, c.CountNode())
	assert.EqualValues(t, 2, c.CountNode())
	assert.EqualValues(t, 2, c.Nodes())
}

// TestClockProjectsOvershootOneStepFormula exercises the one-step-per-
// deepening branch (used·r² > budget): once the budget is already mostly
// spent, the very first call (r falls back to overshootFactor since there
// is no previous iteration to measure a ratio from) must report overshoot.
func TestClockProjectsOvershootOneStepFormula(t *testing.T) {
	c := NewClock(10*time.Millisecond, 1)
	time.Sleep(20 * time.Millisecond)
	assert.True(t, c.ProjectsOvershoot(1, 5*time.Millisecond))
}

// TestClockProjectsOvershootRatioNarrowsWithSmallerIterations shows the
// ratio, not just elapsed time, drives the one-step formula: a second
// iteration much shorter than the first produces r << 1, so a small
// amount of used time no longer projects overshoot even against a tight
// budget.
func TestClockProjectsOvershootRatioNarrowsWithSmallerIterations(t *testing.T) {
	c := NewClock(time.Second, 1)
	assert.False(t, c.ProjectsOvershoot(1, 100*time.Millisecond)) // establishes prevElapsed
	assert.False(t, c.ProjectsOvershoot(2, time.Millisecond))     // r = 1ms/100ms, factor tiny
}

// TestClockProjectsOvershootTwoStepFormulaFavorsOddDepth exercises the
// two-step-per-deepening branch: with the same used time and the same
// fallback ratio, projecting into an even depth (factor 2r) must overshoot
// sooner than projecting into an odd depth (factor r/2) against the same
// budget.
func TestClockProjectsOvershootTwoStepFormulaFavorsOddDepth(t *testing.T) {
	const budget = 200 * time.Millisecond

	even := NewClock(budget, 2)
	time.Sleep(40 * time.Millisecond)
	assert.True(t, even.ProjectsOvershoot(1, time.Millisecond), "depth+1 even: factor 2r should overshoot")

	odd := NewClock(budget, 2)
	time.Sleep(40 * time.Millisecond)
	assert.False(t, odd.ProjectsOvershoot(2, time.Millisecond), "depth+1 odd: factor r/2 should not overshoot")
}

func TestClockProjectsOvershootNeverOnUnboundedClock(t *testing.T) {
	c := NewClock(0, 1)
	assert.False(t, c.ProjectsOvershoot(1, 24*time.Hour))
}
