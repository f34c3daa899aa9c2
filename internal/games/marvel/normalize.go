package marvel

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/carddb"
)

// ImageBaseURL prefixes MarvelCDB's relative image paths.
const ImageBaseURL = "https://marvelcdb.com"

// Normalize maps one MarvelCDB record onto a Card. Override files may use
// other capitalizations of the same field names.
func Normalize(r carddb.Record) (*Card, error) {
	code := r.String("code")
	if code == "" {
		return nil, fmt.Errorf("card %q has no code", r.String("name"))
	}

	number, face := splitCode(code)
	c := &Card{
		code:        padNumber(number) + face,
		Name:        r.String("name"),
		Subname:     r.String("subname"),
		TypeCode:    r.String("type_code"),
		TypeName:    r.String("type_name", "type"),
		FactionCode: r.String("faction_code"),
		FactionName: r.String("faction_name", "faction"),
		PackCode:    r.String("pack_code"),
		PackName:    r.String("pack_name", "pack"),
		Unique:      r.Bool("is_unique"),

		Cost:     r.Stat("cost"),
		Attack:   r.Stat("attack").WithStar(r.Bool("attack_star")),
		Thwart:   r.Stat("thwart").WithStar(r.Bool("thwart_star")),
		Defense:  r.Stat("defense").WithStar(r.Bool("defense_star")),
		Recover:  r.Stat("recover").WithStar(r.Bool("recover_star")),
		Health:   r.Stat("health").WithStar(r.Bool("health_star")),
		HandSize: r.Stat("hand_size"),

		Traits:   splitTraits(r.String("traits")),
		Text:     r.String("text"),
		BackText: r.String("back_text"),

		ImageURL:     imageURL(r.String("imagesrc", "image")),
		BackImageURL: imageURL(r.String("backimagesrc", "back_image")),

		DuplicateOf: r.String("duplicate_of_code", "duplicate_of"),
		LinkedTo:    r.String("linked_to_code", "linked_to"),
	}
	c.Position, _ = r.Int("position")
	c.Quantity, _ = r.Int("quantity")
	c.DeckLimit, _ = r.Int("deck_limit")

	if c.Name == "" {
		c.Name = c.code
	}
	return c, nil
}

// splitTraits splits "Avenger. S.H.I.E.L.D." into its dotted traits.
func splitTraits(s string) []string {
	parts := strings.Split(strings.TrimSpace(s), ". ")
	traits := make([]string, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i < len(parts)-1 {
			part += "."
		}
		traits = append(traits, part)
	}
	return traits
}

func imageURL(src string) string {
	if src == "" || strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	if !strings.HasPrefix(src, "/") {
		src = "/" + src
	}
	return ImageBaseURL + src
}
