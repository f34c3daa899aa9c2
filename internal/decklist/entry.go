// Package decklist parses the textual deck-list format: comments, include
// directives, page breaks, section headers and card lines with bracketed
// codes or keywords.
package decklist

import "fmt"

// Section is the deck zone an entry belongs to.
type Section string

const (
	SectionLeader    Section = "leader"
	SectionBase      Section = "base"
	SectionDeck      Section = "deck"
	SectionSideboard Section = "sideboard"
	SectionOther     Section = "other"
)

// Source records where an entry came from.
type Source struct {
	Path string // Absolute path of the file the line was read from
	Line int    // 1-based line number
	Text string // Raw line text, without the line terminator
}

func (s Source) String() string {
	if s.Path == "" {
		return fmt.Sprintf("line %d", s.Line)
	}
	return fmt.Sprintf("%s:%d", s.Path, s.Line)
}

// Hint is a disambiguation signal extracted from a name suffix.
type Hint struct {
	PackCode  string // e.g. "core"
	PackName  string // e.g. "Core Set"
	Position  int    // Position within the pack, 0 if unknown
	SetCode   string // e.g. "SOR"
	Number    int    // Collector number within SetCode, 0 if unknown
	SetNumber string // Canonical "SOR-005" form when SetCode and Number are known
}

// IsZero reports whether the hint carries no information.
func (h Hint) IsZero() bool {
	return h == Hint{}
}

// Annotations are the recognized bracket keywords of a card line. Keywords
// keeps every keyword token as typed, recognized or not.
type Annotations struct {
	SkipProxy       bool
	SkipBack        bool
	MatchAll        bool
	IgnoreDeckLimit bool
	Permanent       bool
	Keywords        []string
}

// Entry is one card line of a deck list. Entries are not modified after
// the tokenizer creates them.
type Entry struct {
	Count       int
	Name        string
	Code        string // Explicit code from brackets, as typed
	Hint        Hint
	Annotations Annotations
	Section     Section
	Source      Source
}

// Label is a short human-readable form used in diagnostics.
func (e *Entry) Label() string {
	if e.Code != "" {
		return fmt.Sprintf("%s [%s]", e.Name, e.Code)
	}
	return e.Name
}

// Item is one element of a parsed deck in list order: either a card entry
// or a proxy page break.
type Item struct {
	Entry     *Entry
	PageBreak bool
	Source    Source
}

// Deck is a fully expanded deck list.
type Deck struct {
	Path  string
	Items []Item
	// Files lists every file read while expanding includes, the root first.
	Files []string
}

// Entries returns the card entries in list order, skipping page breaks.
func (d *Deck) Entries() []*Entry {
	entries := make([]*Entry, 0, len(d.Items))
	for _, item := range d.Items {
		if item.Entry != nil {
			entries = append(entries, item.Entry)
		}
	}
	return entries
}
