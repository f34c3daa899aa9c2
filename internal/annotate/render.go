package annotate

import (
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
)

type line struct {
	text string
	eol  string // "\n", "\r\n" or "" for an unterminated last line
}

func splitLines(text string) []line {
	var lines []line
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, line{text: text})
			break
		}
		l := line{text: text[:i], eol: "\n"}
		if strings.HasSuffix(l.text, "\r") {
			l.text = l.text[:len(l.text)-1]
			l.eol = "\r\n"
		}
		lines = append(lines, l)
		text = text[i+1:]
	}
	return lines
}

// newline returns the file's line ending, judged by its first line.
func newline(lines []line) string {
	for _, l := range lines {
		if l.eol != "" {
			return l.eol
		}
	}
	return "\n"
}

// Render removes existing annotation lines and inserts notes after the
// 1-based source lines they are keyed by. An annotation line is removed
// outside block comments, or anywhere when it directly follows a noted card
// line, so a note written into a block comment the card line opened is
// replaced rather than kept. New annotation lines copy the indentation of
// their card line. Line endings and the presence of a final newline are
// preserved, so rendering an already annotated file with the same notes
// returns it unchanged.
func Render(text string, notes map[int][]string) string {
	lines := splitLines(text)
	nl := newline(lines)

	var out []line
	state := decklist.StateNormal
	afterCard := false
	for i, l := range lines {
		if (state == decklist.StateNormal || afterCard) && decklist.IsAnnotationLine(l.text) {
			// An unterminated annotation ends the file; the line before it
			// gets its ending back.
			if l.eol == "" && len(out) > 0 && i == len(lines)-1 {
				out[len(out)-1].eol = ""
			}
			continue
		}
		_, state = decklist.StripComments(l.text, state)

		cardNotes := notes[i+1]
		afterCard = len(cardNotes) > 0
		if !afterCard {
			out = append(out, l)
			continue
		}

		indent := l.text[:len(l.text)-len(strings.TrimLeft(l.text, " \t"))]
		last := l.eol
		l.eol = nl
		out = append(out, l)
		for j, note := range cardNotes {
			eol := nl
			if j == len(cardNotes)-1 {
				eol = last
			}
			out = append(out, line{text: indent + note, eol: eol})
		}
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, l := range out {
		b.WriteString(l.text)
		b.WriteString(l.eol)
	}
	return b.String()
}
