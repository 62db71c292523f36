package logger

import (
	"fmt"
	"strings"
)

// Level defines log severity. Higher values mean more critical logs.
type Level int

const (
	// DebugLevel enables debug logging.
	DebugLevel Level = 10
	// InfoLevel enables informational logging.
	InfoLevel Level = 20
	// WarningLevel enables warning logging.
	WarningLevel Level = 30
	// ErrorLevel enables error logging.
	ErrorLevel Level = 40
	// CriticalLevel enables critical logging.
	CriticalLevel Level = 50
)

// AllLevels returns all supported levels in ascending severity order.
func AllLevels() []Level {
	return []Level{
		DebugLevel,
		InfoLevel,
		WarningLevel,
		ErrorLevel,
		CriticalLevel,
	}
}

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// padded returns the level name left-justified to 8 characters so that
// columns line up across log lines.
func (l Level) padded() string {
	return fmt.Sprintf("%-8s", l.String())
}

// ParseLevel maps a level name to its Level. Matching is case-insensitive
// and ignores surrounding whitespace. Unrecognized names fall back to
// InfoLevel.
func ParseLevel(name string) Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARNING", "WARN":
		return WarningLevel
	case "ERROR":
		return ErrorLevel
	case "CRITICAL", "CRIT":
		return CriticalLevel
	default:
		return InfoLevel
	}
}
