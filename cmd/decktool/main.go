package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/config"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/games/marvel"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/games/swu"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/version"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// options holds every flag of every subcommand; each FlagSet registers the
// subset it understands.
type options struct {
	game       string
	face       string
	faceSet    bool
	refresh    bool
	maxAge     string
	overrides  stringList
	configPath string
	debug      bool

	check   bool   // annotate
	chart   string // analyze
	open    bool   // analyze
	out     string // proxy
	fetch   bool   // proxy
	perPage int    // proxy
	pack    string // packs
}

func newFlagSet(name string) (*flag.FlagSet, *options) {
	opts := &options{}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&opts.game, "game", "marvel", "Card game: marvel or swu")
	fs.StringVar(&opts.face, "face", "", "Default face for bare Marvel codes: a, b or none (default from config)")
	fs.BoolVar(&opts.refresh, "refresh", false, "Download the card database even if the cache is fresh")
	fs.StringVar(&opts.maxAge, "max-age", "", "Card database cache max age, e.g. 72h (default from config)")
	fs.Var(&opts.overrides, "override", "Local card override file (JSON or YAML, repeatable)")
	fs.StringVar(&opts.configPath, "config", "", "Path to config.toml")
	fs.BoolVar(&opts.debug, "debug", false, "Enable verbose debug logging")
	fs.BoolVar(&opts.debug, "d", false, "Enable debug logging (shorthand for -debug)")
	return fs, opts
}

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	command := os.Args[1]
	switch command {
	case "version", "-version", "--version":
		fmt.Printf("decktool %s\n", version.GetVersion())
		return
	case "help", "-h", "-help", "--help":
		printUsage()
		return
	}

	fs, opts := newFlagSet(command)
	switch command {
	case "resolve", "watch":
	case "annotate":
		fs.BoolVar(&opts.check, "check", false, "Report whether annotations are stale without writing")
	case "analyze":
		fs.StringVar(&opts.chart, "chart", "", "Write an HTML chart page to this path")
		fs.BoolVar(&opts.open, "open", false, "Open the chart page in the browser")
	case "proxy":
		fs.StringVar(&opts.out, "out", "", "Write the proxy plan JSON to this path (default stdout)")
		fs.BoolVar(&opts.fetch, "fetch", false, "Download card images into the local image cache")
		fs.IntVar(&opts.perPage, "per-page", 0, "Cards per printed page (default from config)")
	case "packs":
		fs.StringVar(&opts.pack, "pack", "", "List the cards of one pack")
	case "migrate", "config":
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(2)
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		log.Fatalf("Error parsing flags: %v", err)
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "face" {
			opts.faceSet = true
		}
	})

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	level := slog.LevelInfo
	if opts.debug || cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := &env{
		cfg:    cfg,
		opts:   opts,
		args:   fs.Args(),
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	switch command {
	case "migrate":
		err = runMigrate(e)
	case "config":
		err = runConfig(e)
	default:
		err = dispatch(ctx, command, e)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads config.toml and applies command-line overrides.
func loadConfig(opts *options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFrom(opts.configPath)
	}
	if err != nil {
		return nil, err
	}

	if opts.faceSet {
		face := strings.ToLower(strings.TrimSpace(opts.face))
		if face == "none" {
			face = ""
		}
		cfg.Cards.DefaultFace = face
	}
	if opts.maxAge != "" {
		cfg.Cache.MaxAge = opts.maxAge
	}
	if opts.perPage > 0 {
		cfg.Proxy.CardsPerPage = opts.perPage
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// dispatch instantiates the command for the selected game's card type.
func dispatch(ctx context.Context, command string, e *env) error {
	switch e.opts.game {
	case "marvel", "mc":
		return runCommand[*marvel.Card](ctx, command, marvel.New(), e)
	case "swu", "starwars":
		return runCommand[*swu.Card](ctx, command, swu.New(e.cfg.Cards.SWUSets...), e)
	default:
		return fmt.Errorf("unknown game %q: use marvel or swu", e.opts.game)
	}
}

func printUsage() {
	fmt.Println("TCG Deck Companion")
	fmt.Println("==================")
	fmt.Println()
	fmt.Println("Usage: decktool <command> [options] [deck.txt]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  resolve    - Resolve every card of a deck list")
	fmt.Println("  annotate   - Add card summaries under each card line (-check to verify only)")
	fmt.Println("  analyze    - Deck composition, cost curve and copy limits (-chart out.html)")
	fmt.Println("  proxy      - Proxy print plan as JSON (-out plan.json, -fetch, -per-page N)")
	fmt.Println("  packs      - Sync the pack catalog and list packs (-pack CODE for one pack)")
	fmt.Println("  migrate    - Catalog database migrations (up, down, status)")
	fmt.Println("  config     - Print the effective configuration (save to write it)")
	fmt.Println("  watch      - Re-resolve the deck whenever it or an include changes")
	fmt.Println("  version    - Print the version")
	fmt.Println()
	fmt.Println("Common options:")
	fmt.Println("  -game marvel|swu    Card game (default marvel)")
	fmt.Println("  -face a|b|none      Default face for bare Marvel codes")
	fmt.Println("  -refresh            Force a card database download")
	fmt.Println("  -max-age 72h        Card database cache max age")
	fmt.Println("  -override PATH      Local card override file (repeatable)")
	fmt.Println("  -config PATH        Config file (default ~/.tcg-deck-companion/config.toml)")
	fmt.Println("  -debug, -d          Verbose logging")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  decktool resolve decks/spider-man.txt")
	fmt.Println("  decktool annotate -check decks/spider-man.txt")
	fmt.Println("  decktool analyze -game swu -chart curve.html decks/luke.txt")
	fmt.Println("  decktool proxy -fetch -out plan.json decks/spider-man.txt")
	fmt.Println("  decktool packs -pack core")
	fmt.Println("  decktool config save -max-age 24h")
	fmt.Println()
}
