package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/analysis"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/annotate"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/carddb"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/catalog"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/config"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/diag"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/games"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/proxy"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/resolve"
)

// deckCard is everything the subcommands need from a game's card type.
type deckCard interface {
	annotate.Card
	analysis.Card
	proxy.Card
	CatalogCard() catalog.Card
}

// env is the state shared by every subcommand.
type env struct {
	cfg    *config.Config
	opts   *options
	args   []string
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
	client *carddb.Client
}

func (e *env) httpClient() *carddb.Client {
	if e.client == nil {
		e.client = carddb.NewClient(carddb.DefaultClientOptions())
	}
	return e.client
}

// deckPath returns the single positional deck file argument.
func (e *env) deckPath() (string, error) {
	if len(e.args) != 1 {
		return "", fmt.Errorf("expected exactly one deck file, got %d arguments", len(e.args))
	}
	return e.args[0], nil
}

// session is a loaded card database for one game.
type session[C deckCard] struct {
	*env
	game     games.Game[C]
	cards    []C
	parser   *decklist.Parser
	resolver *resolve.Resolver[C]
}

func newSession[C deckCard](ctx context.Context, g games.Game[C], e *env) (*session[C], error) {
	maxAge, err := e.cfg.GetCacheMaxAge()
	if err != nil {
		return nil, err
	}

	loader := carddb.NewLoader(carddb.LoaderOptions{
		CacheDir: e.cfg.Cache.Dir,
		MaxAge:   maxAge,
		Refresh:  e.opts.refresh,
		Client:   e.httpClient(),
		Logger:   e.logger,
	})

	overrides := append(gameOverrides(g.Name(), e.cfg), e.opts.overrides...)
	cards, err := games.LoadCards(ctx, g, loader, overrides)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("Card database loaded", "game", g.Name(), "cards", len(cards))

	return &session[C]{
		env:      e,
		game:     g,
		cards:    cards,
		parser:   decklist.NewParser(g.Dialect()),
		resolver: games.NewResolver(g, cards, e.cfg.Cards.DefaultFace),
	}, nil
}

func gameOverrides(game string, cfg *config.Config) []string {
	var paths []string
	switch game {
	case "marvel":
		paths = cfg.Cards.MarvelOverrides
	case "swu":
		paths = cfg.Cards.SWUOverrides
	}
	return append([]string(nil), paths...)
}

// resolveDeck parses and resolves path, printing diagnostics. The deck is
// returned even when resolution fails so callers can see which files were
// read.
func (s *session[C]) resolveDeck(path string) (*resolve.Result[C], *decklist.Deck, error) {
	deck, diags, err := s.parser.ParseFile(path)
	s.printDiagnostics(diags)
	if err != nil {
		return nil, deck, err
	}

	result, err := s.resolver.ResolveDeck(deck)
	s.printDiagnostics(result.Diagnostics)
	if err != nil {
		return nil, deck, err
	}
	return result, deck, nil
}

func (s *session[C]) printDiagnostics(diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(s.stderr, d.String())
	}
}
