package resolve

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/diag"
)

type testCard struct {
	code      string
	canonical string
	name      string
	pack      string
	position  int
	short     []string
}

func (c testCard) Code() string { return c.code }
func (c testCard) DedupKey() string {
	if c.canonical != "" {
		return c.canonical
	}
	return c.code
}
func (c testCard) DisplayName() string  { return c.name }
func (c testCard) NameKeys() []string   { return []string{decklist.NormalizeKey(c.name)} }
func (c testCard) ShortCodes() []string { return c.short }
func (c testCard) Origin() string       { return c.pack }
func (c testCard) MatchesHint(h decklist.Hint) bool {
	if h.PackCode != "" && h.PackCode != c.pack {
		return false
	}
	if h.Position != 0 && h.Position != c.position {
		return false
	}
	return true
}

func testCards() []testCard {
	return []testCard{
		{code: "01002", name: "Ally Card", pack: "core", position: 2},
		{code: "01010", name: "Backflip", pack: "core", position: 10},
		{code: "02010", name: "Backflip", pack: "cap", position: 3},
		{code: "01020", name: "Heroic Rescue", pack: "core", position: 20},
		{code: "03020", name: "Heroic Rescue", pack: "thor", position: 5},
		{code: "04020", name: "Heroic Rescue", pack: "bw", position: 7},
		{code: "05001", canonical: "01030", name: "Reprinted", pack: "reprint", position: 1},
		{code: "01030", name: "Reprinted", pack: "core", position: 30},
		{code: "SOR-005", name: "Short A", pack: "SOR", short: []string{"005"}},
		{code: "SHD-005", name: "Short B", pack: "SHD", short: []string{"005"}},
		{code: "SHD-006", name: "Short C", pack: "SHD", short: []string{"006"}},
	}
}

func newTestResolver(t *testing.T) *Resolver[testCard] {
	t.Helper()
	return NewResolver(BuildIndex(testCards()), Options{})
}

func parse(t *testing.T, line string, dialect decklist.Dialect) *decklist.Entry {
	t.Helper()
	e := decklist.ParseLine(line, decklist.SectionOther, dialect)
	require.NotNil(t, e, "line %q did not parse", line)
	return e
}

func TestResolve_SingleMatchKeepsAnnotations(t *testing.T) {
	r := newTestResolver(t)
	entry := parse(t, "2 Ally Card[skipback]", decklist.PackDialect{})

	card, err := r.Resolve(entry)
	require.NoError(t, err)
	assert.Equal(t, "01002", card.Code())
	assert.Equal(t, 2, entry.Count)
	assert.True(t, entry.Annotations.SkipBack)
	assert.False(t, entry.Annotations.SkipProxy)
}

func TestResolve_CodeBypassesNames(t *testing.T) {
	r := newTestResolver(t)

	card, err := r.Resolve(parse(t, "1 Heroic Rescue[03020]", decklist.PackDialect{}))
	require.NoError(t, err)
	assert.Equal(t, "03020", card.Code())

	card, err = r.Resolve(parse(t, "1 Totally Wrong Name[01010]", decklist.PackDialect{}))
	require.NoError(t, err)
	assert.Equal(t, "Backflip", card.DisplayName())
}

func TestResolve_CodeNotFoundNamesTheCode(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve(parse(t, "1 Dup Card[SOR-001]", decklist.SetNumberDialect{}))
	require.Error(t, err)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.True(t, nf.ByCode)
	assert.Contains(t, err.Error(), "SOR-001")
	assert.NotContains(t, err.Error(), "Dup Card")
}

func TestResolve_ShortCodes(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve(parse(t, "1 Short[005]", decklist.SetNumberDialect{}))
	var ambiguous *AmbiguousCodeError
	require.True(t, errors.As(err, &ambiguous), "got %v", err)
	assert.ElementsMatch(t, []string{"SOR-005", "SHD-005"}, ambiguous.Matches)
	assert.False(t, IsNotFound(err))

	card, err := r.Resolve(parse(t, "1 Short[006]", decklist.SetNumberDialect{}))
	require.NoError(t, err)
	assert.Equal(t, "SHD-006", card.Code())

	card, err = r.Resolve(parse(t, "1 Short[shd-005]", decklist.SetNumberDialect{}))
	require.NoError(t, err)
	assert.Equal(t, "SHD-005", card.Code())
}

func TestResolve_DefaultFaceTriesFullCodesFirst(t *testing.T) {
	cards := []testCard{
		{code: "01001a", name: "Spider-Man", short: []string{"01001"}},
		{code: "01001b", name: "Peter Parker", short: []string{"01001"}},
	}
	canonicalize := func(code, face string) []string {
		out := []string{code}
		if face != "" {
			out = append(out, code+face)
		}
		return out
	}

	withFace := NewResolver(BuildIndex(cards), Options{Canonicalize: canonicalize, DefaultFace: "b"})
	card, err := withFace.Resolve(parse(t, "1 Hero[01001]", decklist.PackDialect{}))
	require.NoError(t, err)
	assert.Equal(t, "01001b", card.Code())

	noFace := NewResolver(BuildIndex(cards), Options{Canonicalize: canonicalize})
	_, err = noFace.Resolve(parse(t, "1 Hero[01001]", decklist.PackDialect{}))
	assert.True(t, IsAmbiguous(err), "got %v", err)
}

func TestResolve_HintDisambiguates(t *testing.T) {
	r := newTestResolver(t)

	card, err := r.Resolve(parse(t, "1 Backflip (cap, 3)", decklist.PackDialect{}))
	require.NoError(t, err)
	assert.Equal(t, "02010", card.Code())

	_, err = r.Resolve(parse(t, "1 Backflip (nowhere, 99)", decklist.PackDialect{}))
	var ambiguous *AmbiguousNameError
	require.True(t, errors.As(err, &ambiguous))
	assert.Len(t, ambiguous.Candidates, 2)
}

func TestResolve_HintNamesReprint(t *testing.T) {
	cards := append(testCards(), testCard{code: "06010", canonical: "02010", name: "Backflip", pack: "promo", position: 4})
	r := NewResolver(BuildIndex(cards), Options{})

	card, err := r.Resolve(parse(t, "1 Backflip (promo, 4)", decklist.PackDialect{}))
	require.NoError(t, err)
	assert.Equal(t, "06010", card.Code())

	card, err = r.Resolve(parse(t, "1 Reprinted (reprint, 1)", decklist.PackDialect{}))
	require.NoError(t, err)
	assert.Equal(t, "05001", card.Code())

	_, err = r.Resolve(parse(t, "1 Backflip (promo, 9)", decklist.PackDialect{}))
	var ambiguous *AmbiguousNameError
	require.True(t, errors.As(err, &ambiguous))
	assert.Len(t, ambiguous.Candidates, 2)
}

func TestResolve_HintMatchingSeveralPrintingsOfOneCard(t *testing.T) {
	cards := append(testCards(), testCard{code: "06010", canonical: "02010", name: "Backflip", pack: "cap", position: 3})
	r := NewResolver(BuildIndex(cards), Options{})

	card, err := r.Resolve(parse(t, "1 Backflip (cap, 3)", decklist.PackDialect{}))
	require.NoError(t, err)
	assert.Equal(t, "02010", card.Code())
}

func TestResolve_DuplicatesCollapseToCanonical(t *testing.T) {
	r := newTestResolver(t)

	card, err := r.Resolve(parse(t, "1 Reprinted", decklist.PackDialect{}))
	require.NoError(t, err)
	assert.Equal(t, "01030", card.Code())
}

func TestResolveAll_ExpandsEveryMatchOnce(t *testing.T) {
	cards := append(testCards(), testCard{code: "01020", name: "Heroic Rescue", pack: "core"})
	r := NewResolver(BuildIndex(cards), Options{DisplayLimit: 2})

	entry := parse(t, "1 Heroic Rescue[All]", decklist.PackDialect{})
	entry.Source = decklist.Source{Path: "deck.txt", Line: 4}

	got, diags, err := r.ResolveEntry(entry)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"01020", "03020", "04020"}, []string{got[0].Code(), got[1].Code(), got[2].Code()})

	require.Len(t, diags, 1)
	assert.Equal(t, diag.LevelWarn, diags[0].Level)
	assert.Equal(t, 4, diags[0].Line)
	assert.Contains(t, diags[0].Message, "matched 3 cards")
	assert.Contains(t, diags[0].Message, "[03020] Heroic Rescue (thor)")
	assert.Contains(t, diags[0].Message, "and 1 more")
}

func TestResolve_NotFoundSuggests(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve(parse(t, "1 Backflp", decklist.PackDialect{}))
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.False(t, nf.ByCode)
	assert.Equal(t, "Backflp", nf.Query)
	assert.Contains(t, nf.Suggestions, "Backflip")
}

func TestResolveDeck_AggregatesAndSorts(t *testing.T) {
	r := newTestResolver(t)
	parser := decklist.NewParser(decklist.PackDialect{})

	deck, _ := parser.ParseString("/decks/b.txt", strings.Join([]string{
		"1 Heroic Rescue",
		"2 Ally Card",
		"1 Missing One",
		"[proxypagebreak]",
		"1 Backflip",
	}, "\n"))
	other, _ := parser.ParseString("/decks/a.txt", strings.Join([]string{
		"1 Missing Two",
		"1 Reprinted",
		"3 Heroic Rescue",
	}, "\n"))
	deck.Items = append(deck.Items, other.Items...)

	result, err := r.ResolveDeck(deck)
	require.Error(t, err)

	var deckErr *DeckError
	require.True(t, errors.As(err, &deckErr))
	require.Len(t, deckErr.Problems, 5)

	ambiguous, notFound := deckErr.Counts()
	assert.Equal(t, 3, ambiguous)
	assert.Equal(t, 2, notFound)

	var order []string
	for _, p := range deckErr.Problems {
		order = append(order, p.Entry.Source.String())
	}
	assert.Equal(t, []string{"/decks/a.txt:1", "/decks/a.txt:3", "/decks/b.txt:1", "/decks/b.txt:3", "/decks/b.txt:5"}, order)

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "5 deck entries could not be resolved (3 ambiguous, 2 not found):"), msg)
	assert.Contains(t, msg, "/decks/a.txt:3: Heroic Rescue x3 is ambiguous; add an explicit code:\n      [01020] Heroic Rescue (core)")
	assert.Contains(t, msg, `/decks/b.txt:3: Missing One x1: card "Missing One" not found`)

	_, err2 := r.ResolveDeck(deck)
	assert.Equal(t, msg, err2.Error(), "diagnostics must be stable across runs")

	assert.True(t, IsNotFound(err))
	assert.True(t, IsAmbiguous(err))

	require.NotNil(t, result)
	var resolved []string
	for _, item := range result.Items {
		if item.PageBreak {
			resolved = append(resolved, "--")
			continue
		}
		resolved = append(resolved, item.Cards[0].Code())
	}
	assert.Equal(t, []string{"01002", "--", "01030"}, resolved)
}

func TestResolveDeck_Success(t *testing.T) {
	r := newTestResolver(t)
	deck, _ := decklist.NewParser(decklist.PackDialect{}).ParseString("/decks/ok.txt", "2 Ally Card\n[proxypagebreak]\n1 Heroic Rescue[All]\n")

	result, err := r.ResolveDeck(deck)
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.True(t, result.Items[1].PageBreak)
	assert.Len(t, result.Items[2].Cards, 3)
	assert.Len(t, result.Entries(), 2)
	assert.Len(t, result.Diagnostics, 1)
}
