package swu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/carddb"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
)

// Normalize maps one swu-db record onto a Card.
func Normalize(r carddb.Record) (*Card, error) {
	set := strings.ToUpper(r.String("Set"))
	numberText := r.String("Number")
	number, err := strconv.Atoi(numberText)
	if set == "" || err != nil {
		return nil, fmt.Errorf("card %q has no usable set/number (%q, %q)", r.String("Name"), set, numberText)
	}

	c := &Card{
		code:        decklist.FormatSetNumber(set, number),
		Set:         set,
		Number:      number,
		Name:        r.String("Name"),
		Subtitle:    r.String("Subtitle"),
		Type:        r.String("Type"),
		Aspects:     r.Strings("Aspects"),
		Traits:      r.Strings("Traits"),
		Arenas:      r.Strings("Arenas"),
		Cost:        r.Stat("Cost"),
		Power:       r.Stat("Power"),
		HP:          r.Stat("HP"),
		FrontText:   r.String("FrontText"),
		BackText:    r.String("BackText"),
		EpicAction:  r.String("EpicAction"),
		Unique:      r.Bool("Unique"),
		DoubleSided: r.Bool("DoubleSided"),
		VariantType: r.String("VariantType"),
		Rarity:      r.String("Rarity"),
		FrontArt:    r.String("FrontArt"),
		BackArt:     r.String("BackArt"),
	}
	if c.Name == "" {
		c.Name = c.code
	}
	return c, nil
}

// LinkVariants points every non-Normal printing at the Normal printing of
// the same set, name and subtitle.
func LinkVariants(cards []*Card) {
	normals := make(map[string]*Card)
	for _, c := range cards {
		if c.VariantType != "" && c.VariantType != VariantNormal {
			continue
		}
		key := variantKey(c)
		if _, exists := normals[key]; !exists {
			normals[key] = c
		}
	}

	for _, c := range cards {
		if c.VariantType == "" || c.VariantType == VariantNormal {
			continue
		}
		if normal, ok := normals[variantKey(c)]; ok {
			c.canonical = normal.code
		}
	}
}

func variantKey(c *Card) string {
	return c.Set + "|" + decklist.NormalizeKey(c.Name+" "+c.Subtitle)
}
