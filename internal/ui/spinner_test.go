package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

const testInterval = 50 * time.Millisecond

func TestSpinner_RunPassesErrorThrough(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "working", testInterval, true)

	sentinel := errors.New("operation failed")
	err := s.Run(func() error { return sentinel })

	if !errors.Is(err, sentinel) {
		t.Errorf("Run() = %v, want %v", err, sentinel)
	}
	if !strings.HasSuffix(buf.String(), cursorShow) {
		t.Error("cursor was not restored after a failed operation")
	}
}

func TestSpinner_CursorHiddenAndRestored(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "working", testInterval, true)

	if err := s.Run(func() error {
		time.Sleep(testInterval / 2)
		return nil
	}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, cursorHide) {
		t.Error("cursor was not hidden at spinner start")
	}
	if !strings.HasSuffix(out, cursorShow) {
		t.Error("cursor was not restored at spinner end")
	}
}

func TestSpinner_ImmediateCompletion(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "working", testInterval, true)

	start := time.Now()
	if err := s.Run(func() error { return nil }); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed >= testInterval {
		t.Errorf("Run() took %v for an instant operation, want < %v", elapsed, testInterval)
	}
	if !strings.HasSuffix(buf.String(), cursorShow) {
		t.Error("cursor was not restored")
	}
}

func TestSpinner_WaitReturnsWithinInterval(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "working", testInterval, true)

	duration := 3 * testInterval
	start := time.Now()
	if err := s.Run(func() error {
		time.Sleep(duration)
		return nil
	}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < duration {
		t.Errorf("Run() returned after %v, before the operation's %v duration", elapsed, duration)
	}
	// Generous upper bound to tolerate scheduler jitter on loaded machines.
	if elapsed > duration+5*testInterval {
		t.Errorf("Run() returned after %v, want close to %v", elapsed, duration)
	}
}

func TestSpinner_AtMostOneFramePerInterval(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "working", testInterval, true)

	// 2.2 intervals of work: one initial frame plus one per elapsed tick.
	duration := testInterval*2 + testInterval/5
	if err := s.Run(func() error {
		time.Sleep(duration)
		return nil
	}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	// Each frame starts with \r; the final erase sequence contributes one more.
	frames := strings.Count(buf.String(), "\r") - 1
	if frames < 1 {
		t.Errorf("rendered %d frames, want at least 1", frames)
	}
	if frames > 4 {
		t.Errorf("rendered %d frames over ~2.2 intervals, exceeds one frame per interval", frames)
	}
}

func TestSpinner_CancelledOperationRestoresCursor(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "working", testInterval, true)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(testInterval)
		cancel()
	}()

	err := s.Run(func() error {
		<-ctx.Done()
		return ctx.Err()
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if !strings.HasSuffix(buf.String(), cursorShow) {
		t.Error("cursor was not restored after cancellation mid-wait")
	}
}

func TestSpinner_StopIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "working", testInterval, true)

	// Stop before Start is harmless.
	s.Stop()

	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()

	if !strings.HasSuffix(buf.String(), cursorShow) {
		t.Error("cursor was not restored")
	}
	if n := strings.Count(buf.String(), cursorShow); n != 1 {
		t.Errorf("cursor restore written %d times for repeated Stop, want 1", n)
	}
}

func TestSpinner_StartIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "working", testInterval, true)

	s.Start()
	s.Start()
	s.Stop()

	if n := strings.Count(buf.String(), cursorHide); n != 1 {
		t.Errorf("cursor hide written %d times for repeated Start, want 1", n)
	}
}

func TestSpinner_DisabledOnNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "working", testInterval, false)

	sentinel := errors.New("still surfaced")
	err := s.Run(func() error {
		time.Sleep(testInterval)
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Errorf("Run() = %v, want %v", err, sentinel)
	}
	if buf.Len() != 0 {
		t.Errorf("disabled spinner wrote %q, want no output", buf.String())
	}
}

func TestSpinner_DefaultIntervalApplied(t *testing.T) {
	s := newSpinner(&bytes.Buffer{}, "working", 0, false)
	if s.interval != DefaultSpinnerInterval {
		t.Errorf("interval = %v, want default %v", s.interval, DefaultSpinnerInterval)
	}
}

func TestRestoreCursor(t *testing.T) {
	var buf bytes.Buffer
	RestoreCursor(&buf)
	RestoreCursor(&buf)

	if got := buf.String(); got != cursorShow+cursorShow {
		t.Errorf("RestoreCursor wrote %q, want two cursor-show sequences", got)
	}

	// Nil writer must not panic.
	RestoreCursor(nil)
}
