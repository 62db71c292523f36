package logger

import (
	"fmt"
	"os"
)

// Start opens the log file (truncating when Overwrite is set, appending
// otherwise), starts capturing the console streams, and emits the session
// start markers. Filesystem errors propagate and leave the session closed.
// Calling Start while a session is already open is a programmer error: a
// Logger holds a single file handle and is not re-entrant.
func (l *Logger) Start() error {
	flags := os.O_CREATE | os.O_WRONLY
	if l.overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(l.filePath, flags, 0644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", l.filePath, err)
	}

	l.mu.Lock()
	l.file = f
	l.mu.Unlock()

	if err := l.StartCapture(); err != nil {
		l.mu.Lock()
		l.file = nil
		l.mu.Unlock()
		_ = f.Close()
		return err
	}

	_ = l.Info("===== Logging started =====")
	_ = l.Info("Log file path: " + l.filePath)
	return nil
}

// Stop ends the session. The order is strict: restore the console streams
// first so nothing below is re-captured, record runErr if one is in flight,
// emit the end marker, and only then close the file. Marker and fault lines
// are best-effort; Stop never fails. Safe to call when no session is open.
func (l *Logger) Stop(runErr error) {
	l.StopCapture()
	if runErr != nil {
		_ = l.Error(fmt.Sprintf("Task failure: %T - %v", runErr, runErr))
	}
	_ = l.Info("===== Logging finished =====")

	l.mu.Lock()
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
	l.mu.Unlock()
}

// Run executes fn inside a scoped session: Start, invoke, and a guaranteed
// Stop in the order documented there. An error returned by fn is recorded in
// the log and returned unchanged; a panic is recorded and re-raised after
// cleanup. Faults are never swallowed.
func (l *Logger) Run(fn func() error) (err error) {
	if serr := l.Start(); serr != nil {
		return serr
	}
	defer func() {
		if r := recover(); r != nil {
			l.Stop(fmt.Errorf("panic: %v", r))
			panic(r)
		}
		l.Stop(err)
	}()
	return fn()
}
