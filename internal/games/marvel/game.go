package marvel

import (
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/carddb"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
)

// DefaultFeedURL is MarvelCDB's public card list, encounter cards included.
const DefaultFeedURL = "https://marvelcdb.com/api/public/cards/?encounter=1"

// Game implements games.Game for Marvel Champions.
type Game struct {
	FeedURL string
}

// New returns the Marvel Champions game using the public MarvelCDB feed.
func New() *Game {
	return &Game{FeedURL: DefaultFeedURL}
}

func (g *Game) Name() string { return "marvel" }

func (g *Game) Dialect() decklist.Dialect { return decklist.PackDialect{} }

func (g *Game) Feeds() []carddb.Feed {
	return []carddb.Feed{{Name: "marvel", URL: g.FeedURL, CacheFile: "marvelcdb-cards.json"}}
}

func (g *Game) Canonicalize(code, defaultFace string) []string {
	return Canonicalize(code, defaultFace)
}

// Build normalizes records and links reprints and faces.
func (g *Game) Build(records []carddb.Record) ([]*Card, error) {
	cards := make([]*Card, 0, len(records))
	for _, r := range records {
		c, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	Link(cards)
	return cards, nil
}

// Link resolves each card's canonical code through the duplicate chain,
// marks Core Set cards, and gives a card without a back image the front
// image of its linked face. Cycles in the chain stop at the last unseen
// code.
func Link(cards []*Card) {
	byCode := make(map[string]*Card, len(cards))
	for _, c := range cards {
		if _, exists := byCode[c.code]; !exists {
			byCode[c.code] = c
		}
	}

	for _, c := range cards {
		canonical := canonicalOf(c, byCode)
		c.canonical = canonical.code
		c.inCore = c.PackCode == CorePackCode || canonical.PackCode == CorePackCode

		if c.BackImageURL == "" && c.LinkedTo != "" {
			if linked, ok := byCode[normalizeRef(c.LinkedTo)]; ok {
				c.BackImageURL = linked.ImageURL
			}
		}
	}
}

func canonicalOf(c *Card, byCode map[string]*Card) *Card {
	seen := map[string]bool{c.code: true}
	current := c
	for current.DuplicateOf != "" {
		next, ok := byCode[normalizeRef(current.DuplicateOf)]
		if !ok || seen[next.code] {
			break
		}
		seen[next.code] = true
		current = next
	}
	return current
}

func normalizeRef(code string) string {
	number, face := splitCode(code)
	return padNumber(number) + face
}
