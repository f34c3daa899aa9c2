// Package swu adapts Star Wars: Unlimited card data from swu-db.com to the
// shared deck-list parser and resolver.
package swu

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/carddb"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/catalog"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
)

// Deck limits.
const (
	DefaultCopyLimit = 3
	ZoneCopyLimit    = 1 // Leaders and bases
)

// VariantNormal is the variant type of the regular printing.
const VariantNormal = "Normal"

var setNames = map[string]string{
	"SOR": "Spark of Rebellion",
	"SHD": "Shadows of the Galaxy",
	"TWI": "Twilight of the Republic",
	"JTL": "Jump to Lightspeed",
	"LOF": "Legends of the Force",
}

// Card is a normalized swu-db card.
type Card struct {
	code        string
	Set         string // Upper-case set code, e.g. "SOR"
	Number      int
	Name        string
	Subtitle    string
	Type        string
	Aspects     []string
	Traits      []string
	Arenas      []string
	Cost        carddb.Stat
	Power       carddb.Stat
	HP          carddb.Stat
	FrontText   string
	BackText    string
	EpicAction  string
	Unique      bool
	DoubleSided bool
	VariantType string
	Rarity      string
	FrontArt    string
	BackArt     string

	canonical string
}

// Code returns the "SET-NNN" code.
func (c *Card) Code() string { return c.code }

// CanonicalCode is the Normal printing for variant printings.
func (c *Card) CanonicalCode() string {
	if c.canonical == "" {
		return c.code
	}
	return c.canonical
}

func (c *Card) DedupKey() string { return c.CanonicalCode() }

func (c *Card) DisplayName() string {
	if c.Subtitle != "" {
		return c.Name + ", " + c.Subtitle
	}
	return c.Name
}

// NameKeys covers the bare name and the name with its subtitle.
func (c *Card) NameKeys() []string {
	keys := []string{decklist.NormalizeKey(c.Name)}
	if c.Subtitle != "" {
		keys = append(keys, decklist.NormalizeKey(c.Name+" "+c.Subtitle))
	}
	return keys
}

// ShortCodes returns the bare collector number, which collides across sets.
func (c *Card) ShortCodes() []string {
	return []string{fmt.Sprintf("%03d", c.Number)}
}

func (c *Card) Origin() string {
	origin := c.Set
	if name, ok := setNames[c.Set]; ok {
		origin = name
	}
	if c.VariantType != "" && c.VariantType != VariantNormal {
		origin += " " + c.VariantType
	}
	return origin
}

// MatchesHint requires every part the hint carries to agree.
func (c *Card) MatchesHint(h decklist.Hint) bool {
	if h.SetCode != "" && !strings.EqualFold(h.SetCode, c.Set) {
		return false
	}
	if h.Number != 0 && h.Number != c.Number {
		return false
	}
	return h.SetCode != "" || h.Number != 0
}

func (c *Card) CardType() string { return c.Type }

// Groups returns the card's aspects.
func (c *Card) Groups() []string { return c.Aspects }

func (c *Card) CostValue() (int, bool) { return c.Cost.Int() }

// CopyLimit is one for leaders and bases and three otherwise.
func (c *Card) CopyLimit(section decklist.Section) int {
	if section == decklist.SectionLeader || section == decklist.SectionBase || c.isZoneCard() {
		return ZoneCopyLimit
	}
	return DefaultCopyLimit
}

func (c *Card) isZoneCard() bool {
	return strings.EqualFold(c.Type, "Leader") || strings.EqualFold(c.Type, "Base")
}

func (c *Card) FrontImage() string { return c.FrontArt }

func (c *Card) BackImage() string {
	if !c.DoubleSided {
		return ""
	}
	return c.BackArt
}

// CatalogCard converts the card to a catalog row. Sets play the role of
// packs.
func (c *Card) CatalogCard() catalog.Card {
	return catalog.Card{
		Code:          c.code,
		Name:          c.DisplayName(),
		Type:          c.Type,
		PackCode:      c.Set,
		PackName:      setNames[c.Set],
		Position:      c.Number,
		Quantity:      1,
		CanonicalCode: c.CanonicalCode(),
	}
}
