package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// DefaultTemplate is the line template used when Config.Template is empty.
// The three slots are replaced with the wall-clock timestamp, the level name
// padded to 8 characters, and the trimmed message.
const DefaultTemplate = "[<asctime>] [<level>] <message>"

const timestampLayout = "2006-01-02 15:04:05"

// Config defines options for New.
type Config struct {
	// Dir is the directory for log files, created if missing.
	// Default: "logs" in the current directory
	Dir string
	// Filename names the log file inside Dir; a ".log" suffix is added when
	// absent. Empty synthesizes "<program>_<YYYYMMDD_HHMMSS>.log" so each run
	// gets its own file.
	// Default: "" (synthesized)
	Filename string
	// Level is the minimum severity name (DEBUG/INFO/WARNING/ERROR/CRITICAL,
	// case-insensitive). Unrecognized names fall back to INFO.
	// Default: "INFO"
	Level string
	// Template overrides the log line template. Only the <asctime>, <level>
	// and <message> slots are allowed; unknown slots are rejected by New.
	// Default: DefaultTemplate
	Template string
	// Overwrite truncates an existing log file when the session starts
	// instead of appending to it.
	// Default: false (append)
	Overwrite bool
	// Colorize enables ANSI colors for the level tag on terminal output.
	// Colors are only emitted when the terminal handle is a tty; the log
	// file always receives the plain line.
	// Default: false
	Colorize bool
	// Console is the stream resource to log to and capture. nil uses the
	// process's os.Stdout and os.Stderr.
	// Default: nil (system console)
	Console *Console
}

// Logger writes leveled log lines to both the terminal and a file, and can
// capture the process's standard output streams for the duration of a
// session. A Logger owns a single file handle: the handle is open exactly
// while a session is active, so one instance must not be shared by two
// overlapping sessions. Emission is serialized internally, but the relative
// order of captured output and direct log calls is not guaranteed.
type Logger struct {
	dir       string
	filePath  string
	minLevel  Level
	template  string
	overwrite bool
	colorize  bool
	console   *Console

	mu   sync.Mutex
	file *os.File
}

var slotPattern = regexp.MustCompile(`<[a-zA-Z_]+>`)

// New builds a Logger from cfg. The log directory is resolved to an absolute
// path and created if missing; the file path is computed once and never
// changes. No file is opened until Start. Errors resolving or creating the
// directory, and unknown slots in a custom template, are reported here.
func New(cfg Config) (*Logger, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "logs"
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve log directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", absDir, err)
	}

	name := cfg.Filename
	if name == "" {
		name = fmt.Sprintf("%s_%s.log", programName(), time.Now().Format("20060102_150405"))
	} else if !strings.HasSuffix(name, ".log") {
		name += ".log"
	}

	template := cfg.Template
	if template == "" {
		template = DefaultTemplate
	}
	if err := validateTemplate(template); err != nil {
		return nil, err
	}

	console := cfg.Console
	if console == nil {
		console = SystemConsole()
	}

	return &Logger{
		dir:       absDir,
		filePath:  filepath.Join(absDir, name),
		minLevel:  ParseLevel(cfg.Level),
		template:  template,
		overwrite: cfg.Overwrite,
		colorize:  cfg.Colorize && isTerminal(console.Stdout()),
		console:   console,
	}, nil
}

// FilePath returns the resolved log file path. The path is fixed for the
// Logger's lifetime; with no explicit filename, two Loggers created in the
// same clock second resolve the same path and append to the same file.
func (l *Logger) FilePath() string {
	return l.filePath
}

// Dir returns the absolute log directory.
func (l *Logger) Dir() string {
	return l.dir
}

// Log formats message at the given level and writes it to the original
// terminal handle and, when a session is open, to the log file followed by a
// sync to disk. Messages below the configured minimum level are dropped with
// no effect. File write and sync failures are returned; the terminal copy is
// best-effort. With no open file the file step is skipped silently.
func (l *Logger) Log(level Level, message string) error {
	if level < l.minLevel {
		return nil
	}

	ts := time.Now().Format(timestampLayout)
	msg := strings.TrimSpace(message)
	line := l.render(ts, level.padded(), msg)
	term := line
	if l.colorize {
		term = l.render(ts, levelColors[level]+level.padded()+colorReset, msg)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// The saved original handle, never the intercepted one, so log lines are
	// not re-captured while a capture is active.
	_, _ = fmt.Fprintln(l.console.Stdout(), term)

	if l.file != nil {
		if _, err := l.file.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("write log file %s: %w", l.filePath, err)
		}
		if err := l.file.Sync(); err != nil {
			return fmt.Errorf("sync log file %s: %w", l.filePath, err)
		}
	}
	return nil
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(message string) error { return l.Log(DebugLevel, message) }

// Info logs a message at INFO level.
func (l *Logger) Info(message string) error { return l.Log(InfoLevel, message) }

// Warning logs a message at WARNING level.
func (l *Logger) Warning(message string) error { return l.Log(WarningLevel, message) }

// Error logs a message at ERROR level.
func (l *Logger) Error(message string) error { return l.Log(ErrorLevel, message) }

// Critical logs a message at CRITICAL level.
func (l *Logger) Critical(message string) error { return l.Log(CriticalLevel, message) }

func (l *Logger) render(asctime, level, message string) string {
	return strings.NewReplacer(
		"<asctime>", asctime,
		"<level>", level,
		"<message>", message,
	).Replace(l.template)
}

func validateTemplate(template string) error {
	for _, slot := range slotPattern.FindAllString(template, -1) {
		switch slot {
		case "<asctime>", "<level>", "<message>":
		default:
			return fmt.Errorf("unknown template slot %s", slot)
		}
	}
	return nil
}

// programName derives the default filename prefix from the running binary.
func programName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "task"
	}
	base := filepath.Base(os.Args[0])
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var levelColors = map[Level]string{
	DebugLevel:    "\033[36m",
	InfoLevel:     "\033[32m",
	WarningLevel:  "\033[33m",
	ErrorLevel:    "\033[31m",
	CriticalLevel: "\033[91m",
}

const colorReset = "\033[0m"
