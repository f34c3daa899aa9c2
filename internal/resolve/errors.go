package resolve

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
)

// Candidate describes one possible match in an ambiguity error.
type Candidate struct {
	Code   string
	Name   string
	Origin string
}

func (c Candidate) String() string {
	if c.Origin == "" {
		return fmt.Sprintf("[%s] %s", c.Code, c.Name)
	}
	return fmt.Sprintf("[%s] %s (%s)", c.Code, c.Name, c.Origin)
}

func candidateOf(c Card) Candidate {
	return Candidate{Code: c.Code(), Name: c.DisplayName(), Origin: c.Origin()}
}

// NotFoundError means an entry's code or name matched no card.
type NotFoundError struct {
	Entry       *decklist.Entry
	Query       string // The code or the name exactly as typed
	ByCode      bool
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if e.ByCode {
		return fmt.Sprintf("card code %q not found", e.Query)
	}
	msg := fmt.Sprintf("card %q not found", e.Query)
	if len(e.Suggestions) > 0 {
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		msg += "; did you mean " + strings.Join(quoted, ", ") + "?"
	}
	return msg
}

// AmbiguousCodeError means a short code matched several full codes.
type AmbiguousCodeError struct {
	Entry   *decklist.Entry
	Code    string
	Matches []string
}

func (e *AmbiguousCodeError) Error() string {
	return fmt.Sprintf("code %q matches %s; use the full code", e.Code, strings.Join(e.Matches, ", "))
}

// AmbiguousNameError means a name matched several cards and no hint could
// narrow them to one.
type AmbiguousNameError struct {
	Entry      *decklist.Entry
	Candidates []Candidate
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("%q matches %d cards; add an explicit code such as [%s]",
		e.Entry.Name, len(e.Candidates), e.Candidates[0].Code)
}

// IsNotFound returns true if err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAmbiguous returns true if err is or wraps an ambiguity error.
func IsAmbiguous(err error) bool {
	var code *AmbiguousCodeError
	var name *AmbiguousNameError
	return errors.As(err, &code) || errors.As(err, &name)
}

// Problem is one unresolved deck entry.
type Problem struct {
	Entry *decklist.Entry
	Err   error
}

// DeckError reports every entry of a deck that failed to resolve.
type DeckError struct {
	Problems []Problem
}

func newDeckError(problems []Problem) *DeckError {
	sorted := append([]Problem(nil), problems...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Entry, sorted[j].Entry
		if a.Source.Path != b.Source.Path {
			return a.Source.Path < b.Source.Path
		}
		if a.Source.Line != b.Source.Line {
			return a.Source.Line < b.Source.Line
		}
		return a.Name < b.Name
	})
	return &DeckError{Problems: sorted}
}

// Counts returns the number of ambiguous and not-found problems.
func (e *DeckError) Counts() (ambiguous, notFound int) {
	for _, p := range e.Problems {
		if IsAmbiguous(p.Err) {
			ambiguous++
		} else {
			notFound++
		}
	}
	return ambiguous, notFound
}

func (e *DeckError) Error() string {
	ambiguous, notFound := e.Counts()

	var b strings.Builder
	noun := "entries"
	if len(e.Problems) == 1 {
		noun = "entry"
	}
	fmt.Fprintf(&b, "%d deck %s could not be resolved (%d ambiguous, %d not found):",
		len(e.Problems), noun, ambiguous, notFound)

	for _, p := range e.Problems {
		loc := p.Entry.Source.String()
		var nameErr *AmbiguousNameError
		if errors.As(p.Err, &nameErr) {
			fmt.Fprintf(&b, "\n  %s: %s x%d is ambiguous; add an explicit code:", loc, p.Entry.Name, p.Entry.Count)
			for _, c := range nameErr.Candidates {
				fmt.Fprintf(&b, "\n      %s", c)
			}
			continue
		}
		fmt.Fprintf(&b, "\n  %s: %s x%d: %v", loc, p.Entry.Name, p.Entry.Count, p.Err)
	}
	return b.String()
}

// Unwrap exposes the per-entry errors to errors.Is and errors.As.
func (e *DeckError) Unwrap() []error {
	errs := make([]error, len(e.Problems))
	for i, p := range e.Problems {
		errs[i] = p.Err
	}
	return errs
}
