package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEloDiffEvenScoreIsZero(t *testing.T) {
	diff, _ := EloDiff(10, 0, 10)
	assert.InDelta(t, 0, diff, 0.001)
}

func TestEloDiffPerfectScoreCapsAt800(t *testing.T) {
	diff, errBound := EloDiff(20, 0, 0)
	assert.Equal(t, 800.0, diff)
	assert.Equal(t, 0.0, errBound)
}

func TestEloDiffNoGamesIsZero(t *testing.T) {
	diff, errBound := EloDiff(0, 0, 0)
	assert.Equal(t, 0.0, diff)
	assert.Equal(t, 0.0, errBound)
}

func TestLOSEvenRecordIsUndecided(t *testing.T) {
	assert.InDelta(t, 0.5, LOS(5, 0, 5), 0.001)
}

func TestLOSMoreWinsFavorsEngine1(t *testing.T) {
	assert.Greater(t, LOS(15, 0, 5), 0.5)
}

func TestSPRTNeedsMinimumSampleSize(t *testing.T) {
	_, conclusion := SPRT(3, 0, 2, -5, 0)
	assert.Empty(t, conclusion)
}

func TestSPRTRejectsH1WhenEngine1ClearlyWeaker(t *testing.T) {
	_, conclusion := SPRT(20, 0, 280, -5, 0)
	assert.Contains(t, conclusion, "H1")
}
