package swu

import (
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/games"
)

// Summary renders the card on one line for deck annotations, e.g.
// "Unit | Vigilance/Villainy | Cost 3 | 3/3 | Ground | Imperial, Trooper | ...".
func (c *Card) Summary() string {
	var cost, stats string
	if c.Cost.IsSet() {
		cost = "Cost " + c.Cost.String()
	}
	if c.Power.IsSet() || c.HP.IsSet() {
		stats = c.Power.String() + "/" + c.HP.String()
	}

	text := games.StripHTML(c.FrontText)
	if c.EpicAction != "" {
		text = games.JoinNonEmpty(" ", text, games.StripHTML(c.EpicAction))
	}
	var back string
	if c.BackText != "" {
		back = "Back: " + games.StripHTML(c.BackText)
	}

	return games.JoinNonEmpty(" | ",
		c.Type,
		strings.Join(c.Aspects, "/"),
		cost,
		stats,
		strings.Join(c.Arenas, "/"),
		strings.Join(c.Traits, ", "),
		text,
		back,
	)
}
