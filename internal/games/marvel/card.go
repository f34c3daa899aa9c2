// Package marvel adapts Marvel Champions card data from MarvelCDB to the
// shared deck-list parser and resolver.
package marvel

import (
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/carddb"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/catalog"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
)

// CorePackCode is the pack code of the Core Set.
const CorePackCode = "core"

// Card is a normalized MarvelCDB card.
type Card struct {
	code        string
	Name        string
	Subname     string
	TypeCode    string
	TypeName    string
	FactionCode string
	FactionName string
	PackCode    string
	PackName    string
	Position    int
	Quantity    int
	DeckLimit   int // Zero when MarvelCDB gives no limit
	Unique      bool

	Cost     carddb.Stat
	Attack   carddb.Stat
	Thwart   carddb.Stat
	Defense  carddb.Stat
	Recover  carddb.Stat
	Health   carddb.Stat
	HandSize carddb.Stat

	Traits   []string
	Text     string // Raw rules text, may contain HTML
	BackText string

	ImageURL     string
	BackImageURL string

	DuplicateOf string
	LinkedTo    string

	canonical string
	inCore    bool
}

// Code returns the MarvelCDB card code, e.g. "01001a".
func (c *Card) Code() string { return c.code }

// CanonicalCode is the code reached by following the duplicate chain.
func (c *Card) CanonicalCode() string {
	if c.canonical == "" {
		return c.code
	}
	return c.canonical
}

// InCoreSet reports whether the card's canonical printing is in the Core Set.
func (c *Card) InCoreSet() bool { return c.inCore }

// DedupKey collapses reprints onto their canonical printing.
func (c *Card) DedupKey() string { return c.CanonicalCode() }

func (c *Card) DisplayName() string {
	if c.Subname != "" {
		return c.Name + " (" + c.Subname + ")"
	}
	return c.Name
}

// NameKeys covers the bare name and the name with its subname.
func (c *Card) NameKeys() []string {
	keys := []string{decklist.NormalizeKey(c.Name)}
	if c.Subname != "" {
		keys = append(keys, decklist.NormalizeKey(c.Name+" "+c.Subname))
	}
	return keys
}

// ShortCodes returns the numeric part of a lettered code, so "01001" finds
// either face when only one exists.
func (c *Card) ShortCodes() []string {
	number, face := splitCode(c.code)
	if face == "" || number == "" {
		return nil
	}
	return []string{number}
}

func (c *Card) Origin() string {
	if c.PackName != "" {
		return c.PackName
	}
	return c.PackCode
}

// MatchesHint requires every part the hint carries to agree.
func (c *Card) MatchesHint(h decklist.Hint) bool {
	if h.PackCode != "" && !strings.EqualFold(h.PackCode, c.PackCode) {
		return false
	}
	if h.PackName != "" && decklist.NormalizeKey(h.PackName) != decklist.NormalizeKey(c.PackName) {
		return false
	}
	if h.Position != 0 && h.Position != c.Position {
		return false
	}
	return h.PackCode != "" || h.PackName != "" || h.Position != 0
}

// CardType returns the display type, e.g. "Ally".
func (c *Card) CardType() string {
	if c.TypeName != "" {
		return c.TypeName
	}
	return c.TypeCode
}

// Groups returns the card's faction.
func (c *Card) Groups() []string {
	if c.FactionName != "" {
		return []string{c.FactionName}
	}
	if c.FactionCode != "" {
		return []string{c.FactionCode}
	}
	return nil
}

// CostValue returns the printed cost, if numeric.
func (c *Card) CostValue() (int, bool) { return c.Cost.Int() }

// CopyLimit is the deck limit; sections do not change it.
func (c *Card) CopyLimit(decklist.Section) int { return c.DeckLimit }

func (c *Card) FrontImage() string { return c.ImageURL }

func (c *Card) BackImage() string { return c.BackImageURL }

// CatalogCard converts the card to a catalog row.
func (c *Card) CatalogCard() catalog.Card {
	return catalog.Card{
		Code:          c.code,
		Name:          c.DisplayName(),
		Type:          c.CardType(),
		PackCode:      c.PackCode,
		PackName:      c.PackName,
		Position:      c.Position,
		Quantity:      c.Quantity,
		CanonicalCode: c.CanonicalCode(),
		InCoreSet:     c.inCore,
	}
}
