// Package annotate writes "//? " summary lines under the card lines of a
// deck list.
package annotate

import (
	"fmt"
	"os"
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/diag"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/fsutil"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/resolve"
)

// Card is a resolvable card that can describe itself on one line.
type Card interface {
	resolve.Card
	Summary() string
}

// Options configures File.
type Options struct {
	// Check reports whether the file would change without writing it.
	Check bool
}

// Result describes one annotation run.
type Result struct {
	Path        string
	Changed     bool
	Annotated   int // Card lines that received annotations
	Diagnostics []diag.Diagnostic
}

// File annotates the card lines of the deck list at path. Every entry,
// including those of included files, must resolve before anything is
// written; only the lines of path itself are annotated. When resolution
// fails the returned Result still carries the diagnostics gathered so far,
// such as a warning about a missing include.
func File[C Card](path string, parser *decklist.Parser, resolver *resolve.Resolver[C], options Options) (*Result, error) {
	deck, diags, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}

	resolved, err := resolver.ResolveDeck(deck)
	diags = append(diags, resolved.Diagnostics...)
	if err != nil {
		return &Result{Path: deck.Path, Diagnostics: diags}, err
	}

	notes := make(map[int][]string)
	for _, item := range resolved.Entries() {
		if item.Entry.Source.Path != deck.Path {
			continue
		}
		for _, card := range item.Cards {
			notes[item.Entry.Source.Line] = append(notes[item.Entry.Source.Line], Line(card))
		}
	}

	info, err := os.Stat(deck.Path)
	if err != nil {
		return nil, fmt.Errorf("stat deck list: %w", err)
	}
	original, err := os.ReadFile(deck.Path)
	if err != nil {
		return nil, fmt.Errorf("read deck list: %w", err)
	}

	updated := Render(string(original), notes)
	result := &Result{
		Path:        deck.Path,
		Changed:     updated != string(original),
		Annotated:   len(notes),
		Diagnostics: diags,
	}
	if !result.Changed || options.Check {
		return result, nil
	}

	if err := fsutil.WriteFileAtomic(deck.Path, []byte(updated), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("write annotated deck list: %w", err)
	}
	return result, nil
}

// Line formats the annotation for one card, without indentation.
func Line(c Card) string {
	line := fmt.Sprintf("//? [%s] %s", c.Code(), c.DisplayName())
	if summary := c.Summary(); summary != "" {
		line += ": " + summary
	}
	return oneLine(line)
}

func oneLine(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r'
	}), " ")
}
