package watch

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/rileyhilliard/ntxmon/internal/logger"
)

// State is a refresh loop state.
type State int

const (
	StateRendering State = iota
	StateAwaitingInput
	StateExiting
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateRendering:
		return "rendering"
	case StateAwaitingInput:
		return "awaiting-input"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Refresher produces one rendered dashboard.
type Refresher interface {
	Refresh(ctx context.Context) string
}

// Loop alternates between rendering and waiting for operator input.
type Loop struct {
	refresher Refresher
	input     Input
	out       io.Writer
	interval  time.Duration
	log       logger.Logger
	onState   func(State)
}

// NewLoop creates a refresh loop. interval is how long to wait for input
// before refreshing on its own.
func NewLoop(refresher Refresher, input Input, out io.Writer, interval time.Duration) *Loop {
	return &Loop{
		refresher: refresher,
		input:     input,
		out:       out,
		interval:  interval,
		log:       logger.Noop(),
	}
}

// SetLogger sets the logger for command notices.
func (l *Loop) SetLogger(log logger.Logger) {
	l.log = log
}

// OnState registers a callback invoked on every state entry.
func (l *Loop) OnState(fn func(State)) {
	l.onState = fn
}

// Run drives the loop until a quit command or ctx is cancelled. A quit
// returns nil; cancellation returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	state := StateRendering
	for {
		if l.onState != nil {
			l.onState(state)
		}

		switch state {
		case StateRendering:
			out := l.refresher.Refresh(ctx)
			if ctx.Err() != nil {
				// Rows collected on a cancelled context are all unavailable.
				state = StateExiting
				continue
			}
			fmt.Fprintln(l.out)
			fmt.Fprint(l.out, out)
			fmt.Fprintf(l.out, " [%s] refresh  [%s] quit  (auto refresh every %s)\n", KeyRefresh, KeyQuit, l.interval)
			state = StateAwaitingInput

		case StateAwaitingInput:
			state = l.await(ctx)

		case StateExiting:
			return ctx.Err()
		}
	}
}

func (l *Loop) await(ctx context.Context) State {
	line, ok, err := l.input.Wait(ctx, l.interval)
	switch {
	case err != nil && ctx.Err() != nil:
		return StateExiting
	case stderrors.Is(err, io.EOF):
		l.log.Debug("input closed, refreshing every %s", l.interval)
		l.input = timerInput{}
		return StateAwaitingInput
	case err != nil:
		l.log.Warn("%s", errors.WrapWithCode(err, errors.ErrInput, "Can't read input", "").Short())
		l.input = timerInput{}
		return StateAwaitingInput
	case !ok:
		return StateRendering
	}

	switch ParseCommand(line) {
	case CommandQuit:
		return StateExiting
	case CommandRefresh:
		return StateRendering
	default:
		l.log.Warn("Unrecognized command %q, refreshing", line)
		return StateRendering
	}
}
