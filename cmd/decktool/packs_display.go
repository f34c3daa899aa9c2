package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/catalog"
)

// runPacks syncs the loaded cards into the catalog and lists packs, or the
// cards of one pack.
func (s *session[C]) runPacks(ctx context.Context) error {
	db, err := catalog.Open(catalog.DefaultConfig(s.cfg.Catalog.DBPath))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing catalog: %v", err)
		}
	}()

	rows := make([]catalog.Card, len(s.cards))
	for i, c := range s.cards {
		rows[i] = c.CatalogCard()
	}
	if err := db.SyncCards(ctx, s.game.Name(), rows); err != nil {
		return err
	}

	if s.opts.pack != "" {
		cards, err := db.PackCards(ctx, s.game.Name(), s.opts.pack)
		if err != nil {
			return err
		}
		displayPackCards(s, s.opts.pack, cards)
		return nil
	}

	packs, err := db.ListPacks(ctx, s.game.Name())
	if err != nil {
		return err
	}
	displayPacks(s, packs)
	return nil
}

func displayPacks[C deckCard](s *session[C], packs []catalog.Pack) {
	out := s.stdout
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-10s %-40s %6s %12s\n", "Code", "Name", "Cards", "Core Reprints")
	fmt.Fprintf(out, "%-10s %-40s %6s %12s\n", "----", "----", "-----", "-------------")
	total := 0
	for _, p := range packs {
		fmt.Fprintf(out, "%-10s %-40s %6d %12d\n", p.Code, truncate(p.Name, 40), p.Cards, p.CoreReprints)
		total += p.Cards
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d packs, %d cards\n", len(packs), total)
}

func displayPackCards[C deckCard](s *session[C], pack string, cards []catalog.Card) {
	out := s.stdout
	if len(cards) == 0 {
		fmt.Fprintf(out, "No cards found for pack %q\n", pack)
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s (%s)\n", cards[0].PackName, pack)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%4s  %-9s %-36s %-14s %3s  %s\n", "#", "Code", "Name", "Type", "Qty", "Canonical")
	for _, c := range cards {
		canonical := ""
		if c.CanonicalCode != c.Code {
			canonical = c.CanonicalCode
			if c.InCoreSet {
				canonical += " (core)"
			}
		}
		fmt.Fprintf(out, "%4d  %-9s %-36s %-14s %3d  %s\n",
			c.Position, c.Code, truncate(c.Name, 36), truncate(c.Type, 14), c.Quantity, canonical)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// runMigrate manages the catalog schema without loading any cards.
func runMigrate(e *env) error {
	if len(e.args) != 1 {
		printMigrationUsage()
		return fmt.Errorf("migrate needs exactly one of: up, down, status")
	}

	if err := os.MkdirAll(filepath.Dir(e.cfg.Catalog.DBPath), 0o755); err != nil {
		return fmt.Errorf("error creating database directory: %w", err)
	}

	mgr, err := catalog.NewMigrationManager(e.cfg.Catalog.DBPath)
	if err != nil {
		return fmt.Errorf("error creating migration manager: %w", err)
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			log.Printf("Error closing migration manager: %v", err)
		}
	}()

	switch e.args[0] {
	case "up":
		fmt.Fprintln(e.stdout, "Applying all pending migrations...")
		if err := mgr.Up(); err != nil {
			return fmt.Errorf("error applying migrations: %w", err)
		}
	case "down":
		fmt.Fprintln(e.stdout, "Rolling back all migrations...")
		if err := mgr.Down(); err != nil {
			return fmt.Errorf("error rolling back migration: %w", err)
		}
	case "status", "version":
	default:
		printMigrationUsage()
		return fmt.Errorf("unknown migration command: %s", e.args[0])
	}

	version, dirty, err := mgr.Version()
	if err != nil {
		return fmt.Errorf("error getting version: %w", err)
	}
	if dirty {
		fmt.Fprintf(e.stdout, "Current version: %d (dirty - migration failed or interrupted)\n", version)
	} else {
		fmt.Fprintf(e.stdout, "Current version: %d\n", version)
	}
	return nil
}

func printMigrationUsage() {
	fmt.Println("Usage:")
	fmt.Println("  decktool migrate <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up        Apply all pending migrations")
	fmt.Println("  down      Roll back all migrations")
	fmt.Println("  status    Show the current migration version")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  TCGDC_DB_PATH   Override the catalog database path")
}
