package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maksverver/dvonn-engine/engine"
)

func newTestDriver(input string) (*Driver, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	session := engine.NewSession(engine.DefaultSearchConfig(), 1)
	limit := engine.AiLimit{MaxDepth: 1}
	return NewDriver(session, limit, strings.NewReader(input), &out, &errOut), &out, &errOut
}

func TestRunQuitsImmediatelyAfterStart(t *testing.T) {
	// Engine plays White from an empty board, makes its first move, and is
	// then told to quit: Run must exit cleanly with no error.
	d, _, _ := newTestDriver("Start\nQuit\nresult: 1-0\n")
	err := d.Run()
	assert.NoError(t, err)
}

func TestRunSkipsBlankLinesBeforeStart(t *testing.T) {
	d, _, _ := newTestDriver("\n\n  \nStart\nQuit\n")
	err := d.Run()
	assert.NoError(t, err)
}

func TestRunReturnsErrorOnUnparsableMove(t *testing.T) {
	d, _, _ := newTestDriver("not-a-move\n")
	err := d.Run()
	assert.Error(t, err)
}

func TestRunReturnsErrorOnUnexpectedEOF(t *testing.T) {
	d, _, _ := newTestDriver("")
	err := d.Run()
	assert.Error(t, err)
}

func TestRunEngineMovesAsBlackAfterOpponentOpens(t *testing.T) {
	// The opponent's first line is a placement move rather than "Start", so
	// the engine must infer it is Black and move immediately afterwards,
	// since placement strictly alternates.
	d, out, _ := newTestDriver("F3\nQuit\n")
	err := d.Run()
	require.NoError(t, err)
	assert.NotEmpty(t, out.String(), "engine infers it is Black and must place next")
}

func TestRunPrintsEngineMoveOnStdout(t *testing.T) {
	d, out, errOut := newTestDriver("Start\nQuit\n")
	err := d.Run()
	require.NoError(t, err)
	assert.NotEmpty(t, out.String(), "engine plays White and should print its opening placement")
	assert.NotEmpty(t, errOut.String(), "board state and move-arrow lines should go to stderr")
}
