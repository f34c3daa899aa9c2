package decklist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Dialect holds the per-game parts of the grammar: what an explicit code
// looks like and how a hint suffix is split off a name.
type Dialect interface {
	// IsCode reports whether bracket content is an explicit card code.
	IsCode(s string) bool
	// SplitHint strips a hint suffix from name and returns the remaining
	// name and the extracted hint.
	SplitHint(name string) (string, Hint)
}

var (
	trailingParenRegex = regexp.MustCompile(`^(.*?)\s*\(([^()]*)\)\s*$`)
	packCodeRegex      = regexp.MustCompile(`^[a-z0-9_]+$`)
	digitsRegex        = regexp.MustCompile(`^\d+$`)
)

// PackDialect is the dialect of games whose cards are numbered by position
// within a pack, e.g. "Backflip (core, 3)" and codes like "01001a".
type PackDialect struct{}

var packCodeShape = regexp.MustCompile(`^\d{1,6}[a-zA-Z]?$`)

func (PackDialect) IsCode(s string) bool {
	return packCodeShape.MatchString(strings.TrimSpace(s))
}

// SplitHint strips a trailing parenthetical only if it contains a digit, so
// subtitles such as "Spider-Man (Peter Parker)" are left alone.
func (PackDialect) SplitHint(name string) (string, Hint) {
	m := trailingParenRegex.FindStringSubmatch(name)
	if m == nil || !strings.ContainsAny(m[2], "0123456789") {
		return name, Hint{}
	}
	return strings.TrimSpace(m[1]), parsePackHint(m[2])
}

func parsePackHint(inner string) Hint {
	var h Hint
	var pack string

	if before, after, found := strings.Cut(inner, ","); found {
		pack = strings.TrimSpace(before)
		if pos := strings.TrimSpace(after); digitsRegex.MatchString(pos) {
			h.Position, _ = strconv.Atoi(pos)
		}
	} else {
		fields := strings.Fields(inner)
		if n := len(fields); n > 0 && digitsRegex.MatchString(fields[n-1]) {
			h.Position, _ = strconv.Atoi(fields[n-1])
			fields = fields[:n-1]
		}
		pack = strings.Join(fields, " ")
	}

	switch {
	case pack == "":
	case packCodeRegex.MatchString(pack):
		h.PackCode = pack
	default:
		h.PackName = pack
	}
	return h
}

// SetNumberDialect is the dialect of games whose cards are identified by a
// set code and collector number, e.g. "SOR-005".
type SetNumberDialect struct {
	// Sets are the set codes a bare "Name SET-NNN" suffix may name. When
	// empty any set-shaped suffix is taken as a hint. Parenthesized and
	// bracketed hints are not restricted.
	Sets []string
}

var (
	setCodeShape     = regexp.MustCompile(`(?i)^(?:[a-z]{2,5}[-_]\d{1,4}|\d{1,4})$`)
	embeddedSetRegex = regexp.MustCompile(`(?i)\b([a-z]{2,5})[-_ ]?(\d{1,4})\b`)
	bareSetSuffix    = regexp.MustCompile(`(?i)^(.*?)\s+([a-z]{2,5})[-_](\d{1,4})$`)
)

func (SetNumberDialect) IsCode(s string) bool {
	return setCodeShape.MatchString(strings.TrimSpace(s))
}

func (d SetNumberDialect) SplitHint(name string) (string, Hint) {
	if m := trailingParenRegex.FindStringSubmatch(name); m != nil && strings.ContainsAny(m[2], "0123456789") {
		inner := strings.TrimSpace(m[2])
		var h Hint
		if sm := embeddedSetRegex.FindStringSubmatch(inner); sm != nil {
			h = setNumberHint(sm[1], sm[2])
		} else if digitsRegex.MatchString(inner) {
			h.Number, _ = strconv.Atoi(inner)
		}
		return strings.TrimSpace(m[1]), h
	}
	if m := bareSetSuffix.FindStringSubmatch(name); m != nil && strings.TrimSpace(m[1]) != "" && d.knownSet(m[2]) {
		return strings.TrimSpace(m[1]), setNumberHint(m[2], m[3])
	}
	return name, Hint{}
}

func (d SetNumberDialect) knownSet(set string) bool {
	if len(d.Sets) == 0 {
		return true
	}
	for _, s := range d.Sets {
		if strings.EqualFold(strings.TrimSpace(s), set) {
			return true
		}
	}
	return false
}

func setNumberHint(set, number string) Hint {
	n, _ := strconv.Atoi(number)
	set = strings.ToUpper(set)
	return Hint{SetCode: set, Number: n, SetNumber: FormatSetNumber(set, n)}
}

// FormatSetNumber renders the canonical "SET-NNN" form.
func FormatSetNumber(set string, number int) string {
	return fmt.Sprintf("%s-%03d", strings.ToUpper(set), number)
}

var keySeparators = strings.NewReplacer(
	",", " ",
	":", " ",
	";", " ",
	"—", " ",
	"–", " ",
	"(", " ",
	")", " ",
	"’", "'",
	"‘", "'",
	"“", `"`,
	"”", `"`,
)

// NormalizeKey produces the lookup key for a card name: accents removed,
// case folded, whitespace collapsed, and the separators that differ between
// "Name — Subtitle", "Name, Subtitle" and "Name: Subtitle" dropped.
func NormalizeKey(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}

	folded := keySeparators.Replace(cases.Fold().String(stripped))

	fields := strings.Fields(folded)
	kept := fields[:0]
	for _, f := range fields {
		if f == "-" {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
