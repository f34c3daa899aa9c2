package decklist

import "strings"

// CommentState is the carry-over state of the comment stripper between lines.
type CommentState int

const (
	StateNormal CommentState = iota
	StateInBlockComment
)

const annotationPrefix = "//?"

// IsAnnotationLine reports whether the line is a generated "//? " summary
// line. Such lines are never parsed as card lines.
func IsAnnotationLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, annotationPrefix) {
		return false
	}
	rest := trimmed[len(annotationPrefix):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// StripComments removes "#" and "//" line comments and "/* */" block
// comments from line. state is the state at the start of the line; the
// returned state applies to the next line. A backslash escapes "#" and "/".
func StripComments(line string, state CommentState) (string, CommentState) {
	var b strings.Builder
	b.Grow(len(line))

	for i := 0; i < len(line); {
		c := line[i]
		var next byte
		if i+1 < len(line) {
			next = line[i+1]
		}

		switch state {
		case StateInBlockComment:
			if c == '*' && next == '/' {
				state = StateNormal
				i += 2
				continue
			}
			i++

		case StateNormal:
			switch {
			case c == '\\' && (next == '#' || next == '/'):
				b.WriteByte(next)
				i += 2
			case c == '#':
				return b.String(), state
			case c == '/' && next == '/':
				return b.String(), state
			case c == '/' && next == '*':
				state = StateInBlockComment
				i += 2
			default:
				b.WriteByte(c)
				i++
			}
		}
	}

	return b.String(), state
}
