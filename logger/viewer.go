package logger

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Entry is one parsed line of a log file written with DefaultTemplate.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Raw     string
	// IsValid reports whether the line matched the log format. Invalid lines
	// keep their raw text and are never level-filtered.
	IsValid bool
}

var linePattern = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\] \[([A-Z]+) *\] (.*)$`)

// ViewerConfig configures filtering and rendering for a Viewer.
type ViewerConfig struct {
	// MinLevel drops parsed entries below this level; zero keeps everything.
	MinLevel Level
	// Pattern keeps only entries whose message matches; nil keeps everything.
	Pattern *regexp.Regexp
	// NoColor disables ANSI colors in FormatEntry.
	NoColor bool
}

// Viewer reads, filters and renders log files produced by this package.
type Viewer struct {
	config ViewerConfig
	out    io.Writer
}

// NewViewer creates a log viewer writing rendered entries to out.
func NewViewer(cfg ViewerConfig, out io.Writer) *Viewer {
	return &Viewer{config: cfg, out: out}
}

// Tail reads the last n lines from the log file at path and returns the
// entries that pass the configured filters.
func (v *Viewer) Tail(path string, n int) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	// Room for long captured output lines.
	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	start := 0
	if len(lines) > n {
		start = len(lines) - n
	}

	var entries []Entry
	for _, line := range lines[start:] {
		entry := parseLine(line)
		if v.matchesFilter(entry) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// Follow watches the log file for appended lines and sends matching entries
// to the channel. It starts at the current end of file and blocks until the
// context is cancelled.
func (v *Viewer) Follow(ctx context.Context, path string, entries chan<- Entry) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch log file: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch log file: %w", err)
	}

	reader := bufio.NewReader(file)
	var pending string
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) {
				continue
			}
			if done := v.drain(ctx, reader, &pending, entries); done {
				return nil
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch log file: %w", werr)
		}
	}
}

// drain reads complete appended lines and forwards matching entries. A line
// caught mid-write is held in pending until the rest arrives. Reports true
// when the context was cancelled mid-send.
func (v *Viewer) drain(ctx context.Context, reader *bufio.Reader, pending *string, entries chan<- Entry) bool {
	for {
		chunk, err := reader.ReadString('\n')
		if err != nil {
			*pending += chunk
			return false
		}
		line := strings.TrimSuffix(*pending+chunk, "\n")
		*pending = ""
		if line == "" {
			continue
		}
		entry := parseLine(line)
		if !v.matchesFilter(entry) {
			continue
		}
		select {
		case entries <- entry:
		case <-ctx.Done():
			return true
		}
	}
}

// FormatEntry renders an entry for display, coloring the level tag unless
// NoColor is set. Invalid lines are returned raw.
func (v *Viewer) FormatEntry(entry Entry) string {
	if !entry.IsValid || v.config.NoColor {
		return entry.Raw
	}
	return fmt.Sprintf("[%s] [%s%s%s] %s",
		entry.Time.Format(timestampLayout),
		levelColors[entry.Level], entry.Level.padded(), colorReset,
		entry.Message)
}

// Print writes the formatted entries to the viewer's output.
func (v *Viewer) Print(entries []Entry) {
	for _, entry := range entries {
		fmt.Fprintln(v.out, v.FormatEntry(entry))
	}
}

func (v *Viewer) matchesFilter(entry Entry) bool {
	if entry.IsValid && entry.Level < v.config.MinLevel {
		return false
	}
	if v.config.Pattern != nil && !v.config.Pattern.MatchString(entry.Message) {
		return false
	}
	return true
}

func parseLine(line string) Entry {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{Raw: line, Message: line}
	}
	ts, err := time.ParseInLocation(timestampLayout, m[1], time.Local)
	if err != nil {
		return Entry{Raw: line, Message: line}
	}
	return Entry{
		Time:    ts,
		Level:   ParseLevel(m[2]),
		Message: m[3],
		Raw:     line,
		IsValid: true,
	}
}

// LatestLogFile returns the most recently modified .log file in dir.
func LatestLogFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return "", fmt.Errorf("scan log directory %s: %w", dir, err)
	}
	var newest string
	var newestMod time.Time
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = path
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no log files found in %s", dir)
	}
	return newest, nil
}
