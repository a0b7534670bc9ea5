package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const (
	cursorHide = "\033[?25l"
	cursorShow = "\033[?25h"
	eraseLine  = "\r\033[K"

	// DefaultSpinnerInterval is the frame interval used when the caller
	// passes a non-positive one.
	DefaultSpinnerInterval = 500 * time.Millisecond
)

// spinnerFrames is the cyclic animation sequence, one frame per interval.
var spinnerFrames = []string{"|", "/", "-", "\\"}

// Spinner renders a small in-place liveness animation while a background
// operation is in flight. It is purely cosmetic: it never produces errors of
// its own, write failures are ignored, and on a non-terminal stream it stays
// silent while still blocking until the operation completes.
//
// The terminal cursor is hidden while the animation runs and restored by
// Stop, which is safe to call any number of times and from any exit path.
type Spinner struct {
	out      io.Writer
	message  string
	interval time.Duration
	enabled  bool

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a spinner writing to stderr. The animation is disabled
// automatically when stderr is not a terminal.
func NewSpinner(message string, interval time.Duration) *Spinner {
	return newSpinner(os.Stderr, message, interval, isTerminal())
}

func newSpinner(out io.Writer, message string, interval time.Duration, enabled bool) *Spinner {
	if interval <= 0 {
		interval = DefaultSpinnerInterval
	}
	return &Spinner{
		out:      out,
		message:  message,
		interval: interval,
		enabled:  enabled,
	}
}

// Start hides the cursor and begins rendering frames. Starting an already
// started spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	if !s.enabled {
		close(s.done)
		return
	}

	fmt.Fprint(s.out, cursorHide)
	go s.loop(s.stop, s.done)
}

// loop renders one frame per interval until the stop channel closes, then
// erases the line and restores the cursor before signalling done.
func (s *Spinner) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer fmt.Fprint(s.out, eraseLine+cursorShow)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	frame := 0
	s.render(frame)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			frame++
			s.render(frame)
		}
	}
}

// render overwrites the current line with the next frame. No newline is ever
// emitted and write errors are deliberately ignored.
func (s *Spinner) render(frame int) {
	fmt.Fprintf(s.out, "\r%s %s", spinnerFrames[frame%len(spinnerFrames)], s.message)
}

// Stop ends the animation and restores the cursor. It blocks until the render
// goroutine has written the cursor-restore sequence, so the terminal is back
// in a sane state when Stop returns. Calling Stop before Start, or more than
// once, is harmless.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	close(s.stop)
	<-s.done
}

// Run executes fn in the background while the spinner animates, blocks until
// fn returns, and passes fn's error through verbatim. The cursor is restored
// on every path out.
func (s *Spinner) Run(fn func() error) error {
	s.Start()
	defer s.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()
	return <-errCh
}

// RestoreCursor unconditionally writes the cursor-show sequence. It is
// idempotent and intended for program-level cleanup paths (signal handlers,
// deferred shutdown) that must leave the terminal usable even if a spinner
// was interrupted mid-frame.
func RestoreCursor(out io.Writer) {
	if out == nil {
		return
	}
	fmt.Fprint(out, cursorShow)
}
