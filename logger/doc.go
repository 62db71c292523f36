// Package logger provides a session-scoped leveled logger that writes every
// message to both the terminal and a log file, and can transparently capture
// everything the process prints to stdout and stderr while a session is open.
//
// # Features
//
//   - Classic severity levels: DEBUG, INFO, WARNING, ERROR, CRITICAL
//   - Dual output: original terminal handle plus a flushed-per-line log file
//   - Stream capture: plain print statements are recorded without
//     instrumentation (stdout at INFO, stderr at ERROR)
//   - Scoped sessions with guaranteed stream restoration and file close,
//     even when the enclosed code fails or panics
//   - Per-run log files named <program>_<timestamp>.log, or a fixed filename
//     with append or truncate on open
//   - Customizable line template with <asctime>, <level> and <message> slots
//   - Optional ANSI colors on terminal output (files stay plain)
//   - A Viewer for tailing, following and filtering the produced files
//
// # Usage
//
// Run a scoped session:
//
//	lg, err := logger.New(logger.Config{Dir: "logs", Level: "DEBUG"})
//	if err != nil {
//	    return err
//	}
//	err = lg.Run(func() error {
//	    lg.Info("work starting")
//	    fmt.Println("this print is captured too")
//	    return doWork()
//	})
//
// Or manage the session explicitly:
//
//	if err := lg.Start(); err != nil {
//	    return err
//	}
//	defer lg.Stop(nil)
//
// # Sessions
//
// A session brackets the interval between Start and Stop. Start opens the
// file and installs the stream capture; Stop restores the streams saved at
// construction, records an in-flight fault if any, emits the end marker and
// closes the file, in that strict order. Faults are recorded, never
// swallowed: Run returns the error (or re-raises the panic) after cleanup.
//
// A Logger is not re-entrant: it owns a single file handle, so do not enter
// a second session before the first one stopped.
package logger
