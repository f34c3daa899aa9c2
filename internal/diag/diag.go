// Package diag carries non-fatal diagnostics from library code back to the
// caller, which decides how to render them.
package diag

import "fmt"

// Level is the severity of a diagnostic.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	default:
		return "INFO"
	}
}

// Diagnostic is a single message tied to an optional source location.
type Diagnostic struct {
	Level   Level
	Message string
	Path    string
	Line    int
}

// Location returns "path:line", "path" or "" depending on what is known.
func (d Diagnostic) Location() string {
	switch {
	case d.Path != "" && d.Line > 0:
		return fmt.Sprintf("%s:%d", d.Path, d.Line)
	case d.Path != "":
		return d.Path
	default:
		return ""
	}
}

func (d Diagnostic) String() string {
	if loc := d.Location(); loc != "" {
		return fmt.Sprintf("%s %s: %s", d.Level, loc, d.Message)
	}
	return fmt.Sprintf("%s %s", d.Level, d.Message)
}

// Warnf builds a warning diagnostic.
func Warnf(path string, line int, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Level: LevelWarn, Message: fmt.Sprintf(format, args...), Path: path, Line: line}
}

// Infof builds an informational diagnostic.
func Infof(path string, line int, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Level: LevelInfo, Message: fmt.Sprintf(format, args...), Path: path, Line: line}
}

// HasWarnings reports whether any diagnostic is at warning level.
func HasWarnings(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Level >= LevelWarn {
			return true
		}
	}
	return false
}
