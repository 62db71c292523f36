package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureRoutesStreamsThroughLogger(t *testing.T) {
	or, ow, err := os.Pipe()
	require.NoError(t, err)
	er, ew, err := os.Pipe()
	require.NoError(t, err)

	termDone := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(or)
		termDone <- string(b)
	}()
	go func() { _, _ = io.Copy(io.Discard, er) }()

	stdout, stderr := ow, ew
	c := NewConsole(&stdout, &stderr)

	lg, err := New(Config{Dir: t.TempDir(), Filename: "capture", Console: c})
	require.NoError(t, err)
	require.NoError(t, lg.Start())

	// Writes through the captured slots, as fmt.Println would use os.Stdout.
	fmt.Fprintln(stdout, "plain print")
	fmt.Fprintln(stderr, "something broke")

	lg.Stop(nil)
	_ = ow.Close()
	_ = ew.Close()
	term := <-termDone

	log := readLog(t, lg.FilePath())
	assert.Contains(t, log, "[INFO    ] plain print", "stdout writes are recorded at INFO")
	assert.Contains(t, log, "[ERROR   ] something broke", "stderr writes are recorded at ERROR")

	// The raw content is still forwarded to the original streams unchanged.
	assert.Contains(t, term, "plain print\n")
}

func TestCaptureWhitespaceOnlyForwardedNotLogged(t *testing.T) {
	or, ow, err := os.Pipe()
	require.NoError(t, err)
	er, ew, err := os.Pipe()
	require.NoError(t, err)

	termDone := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(or)
		termDone <- string(b)
	}()
	go func() { _, _ = io.Copy(io.Discard, er) }()

	stdout, stderr := ow, ew
	c := NewConsole(&stdout, &stderr)

	lg, err := New(Config{Dir: t.TempDir(), Filename: "blank", Console: c})
	require.NoError(t, err)
	require.NoError(t, lg.Start())

	fmt.Fprint(stdout, "\n   \n")

	lg.Stop(nil)
	_ = ow.Close()
	_ = ew.Close()
	term := <-termDone

	// Only the three lifecycle lines: blank output produces no record.
	log := readLog(t, lg.FilePath())
	assert.Equal(t, 3, strings.Count(log, "\n"), "whitespace-only writes should not be logged, got: %q", log)

	// But the bytes still reach the terminal.
	assert.Contains(t, term, "\n   \n")
}

func TestRestoreAlwaysYieldsOriginalHandles(t *testing.T) {
	_, ow, err := os.Pipe()
	require.NoError(t, err)
	_, ew, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = ow.Close()
		_ = ew.Close()
	})

	stdout, stderr := ow, ew
	c := NewConsole(&stdout, &stderr)

	lg, err := New(Config{Dir: t.TempDir(), Filename: "restore", Console: c})
	require.NoError(t, err)

	// Nested captures: restore must reinstate the handles saved at Console
	// creation, not the wrapper installed by the outer capture.
	require.NoError(t, lg.StartCapture())
	require.NoError(t, lg.StartCapture())
	assert.NotSame(t, ow, stdout, "capture should have replaced the stdout slot")
	lg.StopCapture()
	assert.Same(t, ow, stdout)
	assert.Same(t, ew, stderr)

	// Repeated cycles keep restoring the same originals.
	for i := 0; i < 3; i++ {
		require.NoError(t, lg.StartCapture())
		lg.StopCapture()
	}
	assert.Same(t, ow, stdout)
	assert.Same(t, ew, stderr)
}

func TestCaptureWithoutSessionLogsToTerminalOnly(t *testing.T) {
	or, ow, err := os.Pipe()
	require.NoError(t, err)
	er, ew, err := os.Pipe()
	require.NoError(t, err)

	termDone := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(or)
		termDone <- string(b)
	}()
	go func() { _, _ = io.Copy(io.Discard, er) }()

	stdout, stderr := ow, ew
	c := NewConsole(&stdout, &stderr)

	lg, err := New(Config{Dir: t.TempDir(), Filename: "nofile", Console: c})
	require.NoError(t, err)

	require.NoError(t, lg.StartCapture())
	fmt.Fprintln(stdout, "captured without a file")
	lg.StopCapture()
	_ = ow.Close()
	_ = ew.Close()
	term := <-termDone

	assert.Contains(t, term, "[INFO    ] captured without a file")
	_, statErr := os.Stat(lg.FilePath())
	assert.True(t, os.IsNotExist(statErr), "no file should be created by capture alone")
}

func TestConcurrentCaptureLinesWellFormed(t *testing.T) {
	_, ow, err := os.Pipe()
	require.NoError(t, err)
	_, ew, err := os.Pipe()
	require.NoError(t, err)

	// Nothing reads the originals; keep the volume below the pipe buffer.
	t.Cleanup(func() {
		_ = ow.Close()
		_ = ew.Close()
	})

	stdout, stderr := ow, ew
	c := NewConsole(&stdout, &stderr)

	lg, err := New(Config{Dir: t.TempDir(), Filename: "mixed", Console: c})
	require.NoError(t, err)
	require.NoError(t, lg.Start())

	// The two pump goroutines feed the logger concurrently.
	for i := 0; i < 20; i++ {
		fmt.Fprintf(stdout, "out line %d\n", i)
		fmt.Fprintf(stderr, "err line %d\n", i)
	}

	lg.Stop(nil)

	log := readLog(t, lg.FilePath())
	for _, line := range strings.Split(strings.TrimSuffix(log, "\n"), "\n") {
		assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[[A-Z]+ *\] `, line, "every record should be a complete formatted line")
	}
	assert.Equal(t, 20, strings.Count(log, "[ERROR   ] err line"))
	assert.Equal(t, 20, strings.Count(log, "[INFO    ] out line"))
}
