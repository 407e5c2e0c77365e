// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package poll implements blocking waits on asynchronous operations owned
// by an external process: a status poller for render jobs and a
// filesystem waiter for output materialization. Both are single-threaded
// cooperative waits; the only cancellation mechanism is the timeout.
package poll

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Clock abstracts time for the pollers. Tests substitute a fake whose
// Sleep advances Now without real waiting.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// systemClock is the production clock.
type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the real-time clock.
func SystemClock() Clock { return systemClock{} }

// Config controls one completion wait.
type Config struct {
	// Timeout is the total budget before the wait gives up.
	Timeout time.Duration

	// Interval is the pause between polls.
	Interval time.Duration

	// Clock supplies time; nil means the system clock.
	Clock Clock

	// Progress receives edge-triggered status-transition lines; nil
	// discards them.
	Progress io.Writer
}

func (c Config) clock() Clock {
	if c.Clock == nil {
		return systemClock{}
	}
	return c.Clock
}

func (c Config) progress() io.Writer {
	if c.Progress == nil {
		return io.Discard
	}
	return c.Progress
}

// OperationFailedError reports that the external operation reached its
// failure state.
type OperationFailedError struct {
	// Label identifies the operation's target, typically the output file name.
	Label string

	// Status is the observed failure status.
	Status any
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("operation failed for %s (status %v)", e.Label, e.Status)
}

// TimeoutError reports that an operation never reached a terminal state
// within its budget.
type TimeoutError struct {
	// Label identifies the operation's target.
	Label string

	// Elapsed is how long the wait ran before giving up.
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout waiting for %s after %v", e.Label, e.Elapsed)
}

// AwaitCompletion polls an asynchronous operation until it terminates.
// pollFn is called once per interval and may have side effects: the COM
// adapter pumps the application's message queue inside it, which the
// external process needs to advance its own state machine.
//
// A status satisfying isFailed fails immediately with
// OperationFailedError. A status satisfying isDone succeeds. Otherwise
// the wait sleeps one interval and retries until the elapsed time
// reaches cfg.Timeout, then fails with TimeoutError. Status transitions
// are logged on change only.
func AwaitCompletion[S comparable](cfg Config, label string, pollFn func() (S, error), isDone, isFailed func(S) bool) error {
	clock := cfg.clock()
	start := clock.Now()

	var last S
	seen := false

	for {
		status, err := pollFn()
		if err != nil {
			return fmt.Errorf("polling status for %s: %w", label, err)
		}

		if !seen || status != last {
			fmt.Fprintf(cfg.progress(), "  status = %v\n", status)
			last, seen = status, true
		}

		if isFailed(status) {
			return &OperationFailedError{Label: label, Status: status}
		}
		if isDone(status) {
			return nil
		}

		if elapsed := clock.Now().Sub(start); elapsed >= cfg.Timeout {
			return &TimeoutError{Label: label, Elapsed: elapsed}
		}
		clock.Sleep(cfg.Interval)
	}
}

// FileConfig controls one file materialization wait.
type FileConfig struct {
	// MinBytes is the size the file must reach to count as materialized.
	MinBytes int64

	// Timeout is the total budget before the wait gives up.
	Timeout time.Duration

	// Interval is the pause between stat attempts.
	Interval time.Duration

	// Clock supplies time; nil means the system clock.
	Clock Clock

	// Stat probes the path; nil means os.Stat.
	Stat func(path string) (os.FileInfo, error)

	// Pump, when set, runs once per cycle before the stat. The COM
	// adapter uses it to keep servicing the application's message queue
	// while the flush completes.
	Pump func()
}

// AwaitFile blocks until the file at path exists and holds at least
// cfg.MinBytes, or the timeout elapses. The external application can
// report an export done before the OS-visible write has flushed; this
// wait closes that race. Transient stat errors mean "not ready yet" and
// are retried, never propagated.
func AwaitFile(cfg FileConfig, path string) error {
	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}
	stat := cfg.Stat
	if stat == nil {
		stat = os.Stat
	}

	start := clock.Now()
	for {
		if cfg.Pump != nil {
			cfg.Pump()
		}

		if info, err := stat(path); err == nil && info.Size() >= cfg.MinBytes {
			return nil
		}

		if elapsed := clock.Now().Sub(start); elapsed >= cfg.Timeout {
			return &TimeoutError{Label: path, Elapsed: elapsed}
		}
		clock.Sleep(cfg.Interval)
	}
}
