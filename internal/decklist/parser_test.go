package decklist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/diag"
)

func writeDeck(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func entryNames(d *Deck) []string {
	var names []string
	for _, e := range d.Entries() {
		names = append(names, e.Name)
	}
	return names
}

func TestParseFile_CommentsAndDirectives(t *testing.T) {
	dir := t.TempDir()
	path := writeDeck(t, dir, "deck.txt", strings.Join([]string{
		"# Spider-Man deck",
		"1 Spider-Man [01001a]",
		"//? Hero | Spider-Man",
		"/* sideboard ideas",
		"2 Not Parsed",
		"*/",
		"2 Backflip (core, 3) // comment",
		"[proxypagebreak]",
		"This line is prose and is ignored.",
		"3x Web-Shooter",
	}, "\r\n"))

	deck, diags, err := NewParser(PackDialect{}).ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	got := entryNames(deck)
	want := []string{"Spider-Man", "Backflip", "Web-Shooter"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("entries = %v, want %v", got, want)
	}

	if len(deck.Items) != 4 || !deck.Items[2].PageBreak {
		t.Fatalf("items = %+v, want page break as third item", deck.Items)
	}

	backflip := deck.Entries()[1]
	if backflip.Source.Line != 7 || backflip.Source.Path != path {
		t.Errorf("source = %+v, want %s:7", backflip.Source, path)
	}
	if strings.HasSuffix(backflip.Source.Text, "\r") {
		t.Error("source text keeps carriage return")
	}
	if backflip.Hint.PackCode != "core" || backflip.Hint.Position != 3 {
		t.Errorf("hint = %+v", backflip.Hint)
	}
}

func TestParseFile_Sections(t *testing.T) {
	dir := t.TempDir()
	path := writeDeck(t, dir, "swu.txt", `Leader:
Luke Skywalker, Faithful Friend
Base:
Echo Base
Deck:
3 Battlefield Marine
Sideboard:
1 Vanquish
`)

	deck, _, err := NewParser(SetNumberDialect{}).ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	entries := deck.Entries()
	wantSections := []Section{SectionLeader, SectionBase, SectionDeck, SectionSideboard}
	if len(entries) != len(wantSections) {
		t.Fatalf("entries = %d, want %d", len(entries), len(wantSections))
	}
	for i, e := range entries {
		if e.Section != wantSections[i] {
			t.Errorf("entry %d (%s) section = %s, want %s", i, e.Name, e.Section, wantSections[i])
		}
	}
}

func TestParseFile_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	a := writeDeck(t, dir, "a.txt", "1 Card A\n[include:b]\n1 Card A2\n")
	writeDeck(t, dir, "b.txt", "1 Card B\n[include:a.txt]\n")

	deck, diags, err := NewParser(PackDialect{}).ParseFile(a)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	got := strings.Join(entryNames(deck), ",")
	if got != "Card A,Card B,Card A2" {
		t.Errorf("entries = %s, want Card A,Card B,Card A2", got)
	}
	if len(deck.Files) != 2 {
		t.Errorf("files = %v, want 2", deck.Files)
	}
}

func TestParseFile_IncludeTwiceIsNotACycle(t *testing.T) {
	dir := t.TempDir()
	root := writeDeck(t, dir, "root.txt", "[include:shared/frag]\n[include:shared/frag.txt]\n")
	writeDeck(t, dir, "shared/frag.txt", "1 Shared Card\n")

	deck, _, err := NewParser(PackDialect{}).ParseFile(root)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if n := len(deck.Entries()); n != 2 {
		t.Errorf("entries = %d, want 2", n)
	}
}

func TestParseFile_IncludeInheritsSection(t *testing.T) {
	dir := t.TempDir()
	root := writeDeck(t, dir, "root.txt", "Sideboard:\n[include:side]\nDeck:\n1 Main Card\n")
	writeDeck(t, dir, "side.txt", "2 Side Card\n")

	deck, _, err := NewParser(SetNumberDialect{}).ParseFile(root)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	entries := deck.Entries()
	if entries[0].Section != SectionSideboard || entries[1].Section != SectionDeck {
		t.Errorf("sections = %s, %s", entries[0].Section, entries[1].Section)
	}
}

func TestParseFile_MissingIncludeWarns(t *testing.T) {
	dir := t.TempDir()
	root := writeDeck(t, dir, "root.txt", "1 Card\n[include:renamed]\n")

	deck, diags, err := NewParser(PackDialect{}).ParseFile(root)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(deck.Entries()) != 1 {
		t.Errorf("entries = %d, want 1", len(deck.Entries()))
	}
	if len(diags) != 1 || diags[0].Level != diag.LevelWarn || diags[0].Line != 2 {
		t.Fatalf("diagnostics = %v, want one warning on line 2", diags)
	}
	if !strings.Contains(diags[0].Message, "renamed.txt") {
		t.Errorf("message %q does not name the missing file", diags[0].Message)
	}
}

func TestParseString_SkipsAnnotationInsideBlockOpenedByCardLine(t *testing.T) {
	text := "1 Ally Card /* open\n//? [01002] Ally Card: text with */ inside\n1 Hidden\n*/\n1 Backflip\n"
	deck, _ := NewParser(PackDialect{}).ParseString("/decks/deck.txt", text)

	got := strings.Join(entryNames(deck), ",")
	if got != "Ally Card,Backflip" {
		t.Errorf("entries = %q, want Ally Card,Backflip", got)
	}
}

func TestParseFile_MissingRoot(t *testing.T) {
	_, _, err := NewParser(PackDialect{}).ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing deck file")
	}
}
