package resolve

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/diag"
)

// DefaultDisplayLimit caps how many candidates a match-all warning lists.
const DefaultDisplayLimit = 10

// Options configures a Resolver.
type Options struct {
	// Canonicalize turns a code as typed into lookup candidates, most
	// specific first. defaultFace is the face letter to complete bare
	// numeric codes with; it may be empty.
	Canonicalize func(code, defaultFace string) []string
	DefaultFace  string
	// DisplayLimit caps the candidates listed in match-all warnings.
	DisplayLimit int
}

// Resolver resolves deck entries against an index.
type Resolver[C Card] struct {
	index   *Index[C]
	options Options
}

// NewResolver creates a resolver over index.
func NewResolver[C Card](index *Index[C], options Options) *Resolver[C] {
	if options.Canonicalize == nil {
		options.Canonicalize = func(code, _ string) []string { return []string{strings.TrimSpace(code)} }
	}
	if options.DisplayLimit <= 0 {
		options.DisplayLimit = DefaultDisplayLimit
	}
	return &Resolver[C]{index: index, options: options}
}

// Resolve maps an entry to exactly one card.
func (r *Resolver[C]) Resolve(entry *decklist.Entry) (C, error) {
	cards, _, err := r.resolve(entry, false)
	if err != nil {
		var zero C
		return zero, err
	}
	return cards[0], nil
}

// ResolveAll maps an entry to every matching card, each counted once. A
// multi-card result comes with a warning listing the matches.
func (r *Resolver[C]) ResolveAll(entry *decklist.Entry) ([]C, []diag.Diagnostic, error) {
	return r.resolve(entry, true)
}

// ResolveEntry honors the entry's own "All" keyword.
func (r *Resolver[C]) ResolveEntry(entry *decklist.Entry) ([]C, []diag.Diagnostic, error) {
	return r.resolve(entry, entry.Annotations.MatchAll)
}

func (r *Resolver[C]) resolve(entry *decklist.Entry, matchAll bool) ([]C, []diag.Diagnostic, error) {
	if entry.Code != "" {
		card, err := r.resolveCode(entry)
		if err != nil {
			return nil, nil, err
		}
		return []C{card}, nil, nil
	}

	printings := r.index.LookupName(decklist.NormalizeKey(entry.Name))
	candidates := dedupe(printings)
	switch {
	case len(candidates) == 0:
		return nil, nil, &NotFoundError{
			Entry:       entry,
			Query:       entry.Name,
			Suggestions: r.index.Suggest(entry.Name),
		}
	case len(candidates) == 1:
		if card, ok := narrow(printings, entry.Hint); ok {
			return []C{card}, nil, nil
		}
		return candidates, nil, nil
	case matchAll:
		return candidates, []diag.Diagnostic{r.matchAllWarning(entry, candidates)}, nil
	}

	if card, ok := narrow(printings, entry.Hint); ok {
		return []C{card}, nil, nil
	}

	ambiguous := &AmbiguousNameError{Entry: entry, Candidates: make([]Candidate, len(candidates))}
	for i, c := range candidates {
		ambiguous.Candidates[i] = candidateOf(c)
	}
	return nil, nil, ambiguous
}

// resolveCode never consults the name map. Full codes are tried before
// short codes so a default face can complete a code whose bare number is
// itself ambiguous.
func (r *Resolver[C]) resolveCode(entry *decklist.Entry) (C, error) {
	var zero C
	codes := r.options.Canonicalize(entry.Code, r.options.DefaultFace)

	for _, code := range codes {
		if card, ok := r.index.lookupFullCode(code); ok {
			return card, nil
		}
	}
	for _, code := range codes {
		card, status, matches := r.index.LookupCode(code)
		switch status {
		case CodeFound:
			return card, nil
		case CodeAmbiguous:
			return zero, &AmbiguousCodeError{Entry: entry, Code: entry.Code, Matches: matches}
		}
	}
	return zero, &NotFoundError{Entry: entry, Query: entry.Code, ByCode: true}
}

func (r *Resolver[C]) matchAllWarning(entry *decklist.Entry, cards []C) diag.Diagnostic {
	shown := cards
	if len(shown) > r.options.DisplayLimit {
		shown = shown[:r.options.DisplayLimit]
	}

	parts := make([]string, len(shown))
	for i, c := range shown {
		parts[i] = candidateOf(c).String()
	}
	msg := fmt.Sprintf("%q matched %d cards: %s", entry.Name, len(cards), strings.Join(parts, "; "))
	if extra := len(cards) - len(shown); extra > 0 {
		msg += fmt.Sprintf("; and %d more", extra)
	}
	return diag.Warnf(entry.Source.Path, entry.Source.Line, "%s", msg)
}

// narrow filters every printing by the hint, so a hint can name a reprint
// or variant. It succeeds when the survivors are one physical card: a
// single surviving printing is returned as is, otherwise the canonical one.
func narrow[C Card](printings []C, hint decklist.Hint) (C, bool) {
	var zero C
	if hint.IsZero() {
		return zero, false
	}
	var matched []C
	for _, c := range printings {
		if c.MatchesHint(hint) {
			matched = append(matched, c)
		}
	}
	if len(matched) == 1 {
		return matched[0], true
	}
	if merged := dedupe(matched); len(merged) == 1 {
		return merged[0], true
	}
	return zero, false
}

// dedupe collapses printings of the same card, keeping the first position
// and preferring the canonical printing.
func dedupe[C Card](cards []C) []C {
	if len(cards) < 2 {
		return cards
	}
	out := make([]C, 0, len(cards))
	pos := make(map[string]int, len(cards))
	for _, c := range cards {
		key := c.DedupKey()
		if i, ok := pos[key]; ok {
			if out[i].Code() != key && c.Code() == key {
				out[i] = c
			}
			continue
		}
		pos[key] = len(out)
		out = append(out, c)
	}
	return out
}
