package marvel

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/carddb"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/games"
)

// Summary renders the card on one line for deck annotations, e.g.
// "Ally | Justice | Cost 3 | THW 2 ATK 1 HP 3 | Avenger. | Response: ...".
func (c *Card) Summary() string {
	var cost string
	if c.Cost.IsSet() {
		cost = "Cost " + c.Cost.String()
	}

	return games.JoinNonEmpty(" | ",
		c.CardType(),
		strings.Join(c.Groups(), "/"),
		cost,
		c.stats(),
		strings.Join(c.Traits, " "),
		games.StripHTML(c.Text),
	)
}

func (c *Card) stats() string {
	var parts []string
	add := func(label string, s carddb.Stat) {
		if s.IsSet() {
			parts = append(parts, fmt.Sprintf("%s %s", label, s))
		}
	}
	add("THW", c.Thwart)
	add("ATK", c.Attack)
	add("DEF", c.Defense)
	add("REC", c.Recover)
	add("HP", c.Health)
	add("HAND", c.HandSize)
	return strings.Join(parts, " ")
}
