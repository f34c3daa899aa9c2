// Package resolve maps parsed deck entries to cards. It is generic over the
// per-game card type so every game shares one index and one resolution
// algorithm.
package resolve

import (
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/fuzzy"
)

// Card is what the index and resolver need from a game's card type.
type Card interface {
	// Code is the card's primary key, e.g. "01001a" or "SOR-005".
	Code() string
	// DedupKey identifies the physical card; reprints share it.
	DedupKey() string
	DisplayName() string
	// NameKeys are the normalized name spellings that should find the card.
	NameKeys() []string
	// ShortCodes are abbreviated codes that may collide across sets.
	ShortCodes() []string
	// Origin names the set or pack the card was printed in.
	Origin() string
	MatchesHint(h decklist.Hint) bool
}

// CodeStatus is the outcome of an exact-code lookup.
type CodeStatus int

const (
	CodeMissing CodeStatus = iota
	CodeFound
	CodeAmbiguous
)

type codeSlot[C Card] struct {
	card      C
	alias     bool
	ambiguous bool
	codes     []string
}

// Index holds the exact-code map and the name map for a card list. It is
// built once and read-only afterwards.
type Index[C Card] struct {
	byCode map[string]*codeSlot[C]
	byName map[string][]C
	keys   []string
	cards  int
}

// BuildIndex indexes cards in list order. When two cards share a full code
// the first one wins. A short code shared by several full codes is stored
// as ambiguous rather than missing.
func BuildIndex[C Card](cards []C) *Index[C] {
	ix := &Index[C]{
		byCode: make(map[string]*codeSlot[C], len(cards)),
		byName: make(map[string][]C, len(cards)),
		cards:  len(cards),
	}

	for _, card := range cards {
		key := codeKey(card.Code())
		if key == "" {
			continue
		}
		if _, exists := ix.byCode[key]; !exists {
			ix.byCode[key] = &codeSlot[C]{card: card, codes: []string{card.Code()}}
		}
	}

	for _, card := range cards {
		for _, short := range card.ShortCodes() {
			key := codeKey(short)
			if key == "" {
				continue
			}
			slot, exists := ix.byCode[key]
			switch {
			case !exists:
				ix.byCode[key] = &codeSlot[C]{card: card, alias: true, codes: []string{card.Code()}}
			case !slot.alias:
				// A full code always shadows a short code.
			case !containsString(slot.codes, card.Code()):
				slot.codes = append(slot.codes, card.Code())
				slot.ambiguous = true
			}
		}
	}

	for _, card := range cards {
		seen := make(map[string]bool)
		for _, key := range card.NameKeys() {
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			if _, exists := ix.byName[key]; !exists {
				ix.keys = append(ix.keys, key)
			}
			ix.byName[key] = append(ix.byName[key], card)
		}
	}

	return ix
}

func codeKey(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Len returns the number of cards the index was built from.
func (ix *Index[C]) Len() int {
	return ix.cards
}

// LookupCode looks up a full or short code. For CodeAmbiguous the returned
// slice lists the colliding full codes.
func (ix *Index[C]) LookupCode(code string) (C, CodeStatus, []string) {
	var zero C
	slot, ok := ix.byCode[codeKey(code)]
	if !ok {
		return zero, CodeMissing, nil
	}
	if slot.ambiguous {
		return zero, CodeAmbiguous, append([]string(nil), slot.codes...)
	}
	return slot.card, CodeFound, nil
}

// lookupFullCode is LookupCode restricted to full codes.
func (ix *Index[C]) lookupFullCode(code string) (C, bool) {
	var zero C
	slot, ok := ix.byCode[codeKey(code)]
	if !ok || slot.alias {
		return zero, false
	}
	return slot.card, true
}

// LookupName returns the candidates for a normalized name key in database
// order. The result may contain several printings of the same card.
func (ix *Index[C]) LookupName(key string) []C {
	return ix.byName[key]
}

// Suggest returns display names close to name, best first.
func (ix *Index[C]) Suggest(name string) []string {
	results := fuzzy.Search(decklist.NormalizeKey(name), ix.keys, fuzzy.SuggestionOptions())

	suggestions := make([]string, 0, len(results))
	seen := make(map[string]bool)
	for _, r := range results {
		cards := ix.byName[r.Item]
		if len(cards) == 0 {
			continue
		}
		display := cards[0].DisplayName()
		if seen[display] {
			continue
		}
		seen[display] = true
		suggestions = append(suggestions, display)
	}
	return suggestions
}
