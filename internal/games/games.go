// Package games holds the plumbing shared by the per-game packages: the
// Game contract consumed by the CLI, and display helpers.
package games

import (
	"context"
	"fmt"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/carddb"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/resolve"
)

// Game adapts one trading card game to the shared parser and resolver.
type Game[C resolve.Card] interface {
	// Name is the short identifier used on the command line.
	Name() string
	Dialect() decklist.Dialect
	// Feeds lists the remote card database snapshots to load.
	Feeds() []carddb.Feed
	// Build normalizes raw records into cards, in record order.
	Build(records []carddb.Record) ([]C, error)
	// Canonicalize turns a typed code into lookup candidates.
	Canonicalize(code, defaultFace string) []string
}

// LoadCards loads and normalizes a game's card database.
func LoadCards[C resolve.Card](ctx context.Context, g Game[C], loader *carddb.Loader, overrides []string) ([]C, error) {
	records, err := loader.Load(ctx, g.Feeds(), overrides)
	if err != nil {
		return nil, err
	}
	cards, err := g.Build(records)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize %s cards: %w", g.Name(), err)
	}
	return cards, nil
}

// NewResolver indexes cards and returns a resolver using the game's code
// canonicalization.
func NewResolver[C resolve.Card](g Game[C], cards []C, defaultFace string) *resolve.Resolver[C] {
	return resolve.NewResolver(resolve.BuildIndex(cards), resolve.Options{
		Canonicalize: g.Canonicalize,
		DefaultFace:  defaultFace,
	})
}
