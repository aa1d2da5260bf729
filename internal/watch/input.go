package watch

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"
)

// Input waits for a line of operator input.
type Input interface {
	// Wait blocks until a line arrives, timeout elapses or ctx is done.
	// ok is false on timeout. err is io.EOF once the source is exhausted.
	Wait(ctx context.Context, timeout time.Duration) (line string, ok bool, err error)
}

// LineInput reads lines from a reader in a background goroutine so a wait
// can give up without losing input typed later.
type LineInput struct {
	r     io.Reader
	once  sync.Once
	lines chan string

	mu  sync.Mutex
	err error
}

// NewLineInput creates an input over r. Reading starts on the first Wait.
func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{r: r, lines: make(chan string)}
}

func (in *LineInput) start() {
	go func() {
		sc := bufio.NewScanner(in.r)
		for sc.Scan() {
			in.lines <- sc.Text()
		}
		err := sc.Err()
		if err == nil {
			err = io.EOF
		}
		in.mu.Lock()
		in.err = err
		in.mu.Unlock()
		close(in.lines)
	}()
}

// Wait implements Input.
func (in *LineInput) Wait(ctx context.Context, timeout time.Duration) (string, bool, error) {
	in.once.Do(in.start)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case line, open := <-in.lines:
		if !open {
			in.mu.Lock()
			defer in.mu.Unlock()
			return "", false, in.err
		}
		return line, true, nil
	case <-timer.C:
		return "", false, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

// timerInput only ever times out. It replaces an exhausted input so the
// loop keeps auto-refreshing.
type timerInput struct{}

func (timerInput) Wait(ctx context.Context, timeout time.Duration) (string, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-timer.C:
		return "", false, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}
