package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Console represents a pair of standard output streams as an explicit
// resource with save/restore semantics. The handles current at creation are
// saved once: they are the destination for the Logger's own terminal writes
// and the restoration target for StopCapture, no matter how many capture
// cycles ran in between.
type Console struct {
	stdout **os.File
	stderr **os.File

	origOut *os.File
	origErr *os.File

	pipes []*os.File
	pumps sync.WaitGroup
}

// SystemConsole wraps the process's os.Stdout and os.Stderr.
func SystemConsole() *Console {
	return NewConsole(&os.Stdout, &os.Stderr)
}

// NewConsole builds a Console over the given stream slots, saving their
// current values as the originals. Tests inject their own slots instead of
// the process-wide ones.
func NewConsole(stdout, stderr **os.File) *Console {
	return &Console{
		stdout:  stdout,
		stderr:  stderr,
		origOut: *stdout,
		origErr: *stderr,
	}
}

// Stdout returns the original standard output handle saved at creation.
func (c *Console) Stdout() *os.File {
	return c.origOut
}

// Stderr returns the original standard error handle saved at creation.
func (c *Console) Stderr() *os.File {
	return c.origErr
}

// StartCapture replaces the console's output and error streams with wrappers
// that route non-whitespace writes through the Logger (INFO for stdout,
// ERROR for stderr) while forwarding the raw bytes to the original streams,
// so visible program output is unchanged. Plain print statements are
// captured without instrumentation while the capture is active.
func (l *Logger) StartCapture() error {
	return l.console.capture(l)
}

// StopCapture restores the streams saved when the Console was created, never
// an intermediate wrapper, and drains any in-flight captured writes before
// returning. Repeated or nested capture cycles always restore the same
// originals.
func (l *Logger) StopCapture() {
	l.console.restore()
}

func (c *Console) capture(l *Logger) error {
	if err := c.intercept(c.stdout, &loggedStream{logger: l, orig: c.origOut, level: InfoLevel}); err != nil {
		return err
	}
	if err := c.intercept(c.stderr, &loggedStream{logger: l, orig: c.origErr, level: ErrorLevel}); err != nil {
		c.restore()
		return err
	}
	return nil
}

// intercept swaps slot for the write end of a pipe and pumps the read end
// into dst until the write end is closed by restore.
func (c *Console) intercept(slot **os.File, dst *loggedStream) error {
	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("intercept stream: %w", err)
	}
	*slot = w
	c.pipes = append(c.pipes, w)
	c.pumps.Add(1)
	go func() {
		defer c.pumps.Done()
		defer r.Close()
		buf := make([]byte, 4096)
		for {
			n, rerr := r.Read(buf)
			if n > 0 {
				_, _ = dst.Write(buf[:n])
			}
			if rerr != nil {
				return
			}
		}
	}()
	return nil
}

func (c *Console) restore() {
	*c.stdout = c.origOut
	*c.stderr = c.origErr
	for _, w := range c.pipes {
		_ = w.Close()
	}
	c.pipes = nil
	c.pumps.Wait()
}

// loggedStream duplicates stream writes into the logging pipeline. Content
// that is whitespace-only skips the pipeline but is still forwarded, so
// blank lines stay visible without producing empty log records.
type loggedStream struct {
	logger *Logger
	orig   *os.File
	level  Level
}

func (s *loggedStream) Write(p []byte) (int, error) {
	// The pump may hand over several printed lines in one chunk; record each
	// line separately to keep one formatted record per source line. Best
	// effort: captured output must still reach the terminal even if the file
	// write fails.
	for _, line := range strings.Split(string(p), "\n") {
		if strings.TrimSpace(line) != "" {
			_ = s.logger.Log(s.level, line)
		}
	}
	n, err := s.orig.Write(p)
	_ = s.orig.Sync()
	return n, err
}

// Flush flushes the underlying stream only; it never re-enters the logger.
func (s *loggedStream) Flush() error {
	return s.orig.Sync()
}
