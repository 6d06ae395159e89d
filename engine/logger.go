package engine

import (
	"time"

	"github.com/maksverver/dvonn-engine/board"
	"github.com/rs/zerolog"
)

// IterationLogger receives one callback per completed (or aborted)
// iterative-deepening iteration. Session.Logger is nil by default; set it
// to route search telemetry somewhere (a SearchLogger, a test spy, etc).
type IterationLogger interface {
	LogIteration(depth, score int, nodes int64, pv []board.Move, elapsed time.Duration, aborted bool)
}

// SearchLogger is the zerolog-backed IterationLogger used by
// cmd/dvonn-engine. Logging happens on a background goroutine reading from
// a bounded channel (blunext-chess/engine/logger.go's threaded-queue idiom,
// generalized from chess move logging to per-iteration search stats): a
// slow or blocked writer (a pipe, a redirected file on a full disk) must
// never stall the search loop that calls LogIteration.
type SearchLogger struct {
	log   zerolog.Logger
	queue chan iterationEvent
	done  chan struct{}
}

type iterationEvent struct {
	depth   int
	score   int
	nodes   int64
	pv      []board.Move
	elapsed time.Duration
	aborted bool
}

// NewSearchLogger starts a SearchLogger writing structured events to log
// (a zerolog.Logger) at info level. queueSize bounds how many pending
// events may buffer before LogIteration starts dropping them.
func NewSearchLogger(log zerolog.Logger, queueSize int) *SearchLogger {
	if queueSize <= 0 {
		queueSize = 64
	}
	l := &SearchLogger{
		log:   log,
		queue: make(chan iterationEvent, queueSize),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

// LogIteration implements IterationLogger. A full queue drops the event
// and logs a warning, rather than blocking the search.
func (l *SearchLogger) LogIteration(depth, score int, nodes int64, pv []board.Move, elapsed time.Duration, aborted bool) {
	select {
	case l.queue <- iterationEvent{depth, score, nodes, pv, elapsed, aborted}:
	default:
		l.log.Warn().Msg("search logger queue full, dropping iteration event")
	}
}

// Close drains the queue and stops the background goroutine.
func (l *SearchLogger) Close() {
	close(l.queue)
	<-l.done
}

func (l *SearchLogger) run() {
	defer close(l.done)
	for ev := range l.queue {
		nps := int64(0)
		if ev.elapsed > 0 {
			nps = ev.nodes * int64(time.Second) / int64(ev.elapsed)
		}
		l.log.Info().
			Int("depth", ev.depth).
			Int("score", ev.score).
			Int64("nodes", ev.nodes).
			Int64("nps", nps).
			Dur("elapsed", ev.elapsed).
			Str("pv", formatPV(ev.pv)).
			Bool("aborted", ev.aborted).
			Msg("iteration")
	}
}

func formatPV(pv []board.Move) string {
	s := ""
	for i, m := range pv {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}
