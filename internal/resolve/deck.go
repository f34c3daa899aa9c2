package resolve

import (
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/diag"
)

// Item is a resolved deck item: an entry with its cards, or a page break.
type Item[C Card] struct {
	Entry     *decklist.Entry
	Cards     []C
	PageBreak bool
}

// Result is a fully resolved deck in original list order.
type Result[C Card] struct {
	Deck        *decklist.Deck
	Items       []Item[C]
	Diagnostics []diag.Diagnostic
}

// Entries returns the resolved card items, skipping page breaks.
func (r *Result[C]) Entries() []Item[C] {
	out := make([]Item[C], 0, len(r.Items))
	for _, item := range r.Items {
		if !item.PageBreak {
			out = append(out, item)
		}
	}
	return out
}

// ResolveDeck resolves every entry of deck without stopping at the first
// failure. If any entry fails, the returned error is a *DeckError listing
// all of them; the result still carries the items that did resolve and the
// diagnostics gathered so far.
func (r *Resolver[C]) ResolveDeck(deck *decklist.Deck) (*Result[C], error) {
	result := &Result[C]{
		Deck:  deck,
		Items: make([]Item[C], 0, len(deck.Items)),
	}

	var problems []Problem
	for _, item := range deck.Items {
		if item.PageBreak {
			result.Items = append(result.Items, Item[C]{PageBreak: true})
			continue
		}

		cards, diags, err := r.ResolveEntry(item.Entry)
		result.Diagnostics = append(result.Diagnostics, diags...)
		if err != nil {
			problems = append(problems, Problem{Entry: item.Entry, Err: err})
			continue
		}
		result.Items = append(result.Items, Item[C]{Entry: item.Entry, Cards: cards})
	}

	if len(problems) > 0 {
		return result, newDeckError(problems)
	}
	return result, nil
}
