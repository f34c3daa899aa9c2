package swu

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/carddb"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
)

// DefaultBaseURL serves one card list per set at <base>/<set>.
const DefaultBaseURL = "https://api.swu-db.com/cards"

// DefaultSets are the sets loaded when none are configured.
var DefaultSets = []string{"sor", "shd", "twi", "jtl", "lof"}

// Game implements games.Game for Star Wars: Unlimited.
type Game struct {
	BaseURL string
	Sets    []string
}

// New returns the game loading the given sets, or DefaultSets if none.
func New(sets ...string) *Game {
	if len(sets) == 0 {
		sets = DefaultSets
	}
	return &Game{BaseURL: DefaultBaseURL, Sets: sets}
}

func (g *Game) Name() string { return "swu" }

func (g *Game) Dialect() decklist.Dialect { return decklist.SetNumberDialect{Sets: g.Sets} }

func (g *Game) Feeds() []carddb.Feed {
	feeds := make([]carddb.Feed, 0, len(g.Sets))
	for _, set := range g.Sets {
		set = strings.ToLower(strings.TrimSpace(set))
		feeds = append(feeds, carddb.Feed{
			Name:      "swu/" + set,
			URL:       fmt.Sprintf("%s/%s", strings.TrimSuffix(g.BaseURL, "/"), set),
			CacheFile: "swu-" + set + ".json",
		})
	}
	return feeds
}

func (g *Game) Canonicalize(code, defaultFace string) []string {
	return Canonicalize(code, defaultFace)
}

// Build normalizes records and links variant printings.
func (g *Game) Build(records []carddb.Record) ([]*Card, error) {
	cards := make([]*Card, 0, len(records))
	for _, r := range records {
		c, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	LinkVariants(cards)
	return cards, nil
}
