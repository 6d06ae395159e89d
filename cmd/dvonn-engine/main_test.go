package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withPipe hands the callback a readable/writable *os.File pair so run's
// *os.File-shaped stdin/stdout/stderr parameters can be exercised directly,
// without touching the process's real descriptors.
func withPipe(t *testing.T, data string) (*os.File, func()) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	if data != "" {
		_, err = w.WriteString(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return r, func() { r.Close() }
}

func devNull(t *testing.T) *os.File {
	t.Helper()
	f, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	require.NoError(t, err)
	return f
}

func TestRunHelpExitsZero(t *testing.T) {
	out := devNull(t)
	defer out.Close()
	assert.Equal(t, 0, run([]string{"--help"}, nil, out, out))
}

func TestRunBadFlagExitsNonzero(t *testing.T) {
	out := devNull(t)
	defer out.Close()
	assert.NotEqual(t, 0, run([]string{"--tt=9999"}, nil, out, out))
}

func TestRunGameQuitsCleanly(t *testing.T) {
	in, cleanup := withPipe(t, "Start\nQuit\n")
	defer cleanup()
	out := devNull(t)
	defer out.Close()
	assert.Equal(t, 0, run([]string{"--depth=1"}, in, out, out))
}

func TestRunSolveStateAnalyze(t *testing.T) {
	out := devNull(t)
	defer out.Close()
	// A state string whose header and all 49 cell digits are 'A' (index 0
	// in notation's stateDigits alphabet) decodes to an empty board in the
	// placement phase with White to move -- a valid notation.ParseState
	// input requiring no pieces on the board.
	blank := make([]byte, 49)
	for i := range blank {
		blank[i] = 'A'
	}
	stateStr := "A" + string(blank)
	code := run([]string{"--state=" + stateStr, "--analyze", "--depth=1"}, nil, out, out)
	assert.Equal(t, 0, code)
}
