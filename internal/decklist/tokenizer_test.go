package decklist

import (
	"reflect"
	"testing"
)

func TestParseLine_Counts(t *testing.T) {
	tests := []struct {
		text      string
		wantCount int
		wantName  string
	}{
		{"2 Backflip", 2, "Backflip"},
		{"2x Backflip", 2, "Backflip"},
		{"2 x Backflip", 2, "Backflip"},
		{"3×Backflip", 3, "Backflip"},
		{"1 Xavier's Study", 1, "Xavier's Study"},
		{"10 Energy", 10, "Energy"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			e := ParseLine(tt.text, SectionOther, PackDialect{})
			if e == nil {
				t.Fatal("ParseLine() = nil")
			}
			if e.Count != tt.wantCount || e.Name != tt.wantName {
				t.Errorf("ParseLine() = (%d, %q), want (%d, %q)", e.Count, e.Name, tt.wantCount, tt.wantName)
			}
		})
	}
}

func TestParseLine_NotCardLines(t *testing.T) {
	for _, text := range []string{
		"Some prose about the deck",
		"0 Backflip",
		"2",
		"3 [skipproxy]",
	} {
		if e := ParseLine(text, SectionDeck, PackDialect{}); e != nil {
			t.Errorf("ParseLine(%q) = %+v, want nil", text, e)
		}
	}
}

func TestParseLine_BareNameInZones(t *testing.T) {
	e := ParseLine("Luke Skywalker, Faithful Friend", SectionLeader, SetNumberDialect{})
	if e == nil {
		t.Fatal("bare leader line not parsed")
	}
	if e.Count != 1 || e.Name != "Luke Skywalker, Faithful Friend" || e.Section != SectionLeader {
		t.Errorf("got %+v", e)
	}

	if e := ParseLine("Luke Skywalker", SectionDeck, SetNumberDialect{}); e != nil {
		t.Errorf("bare deck line parsed: %+v", e)
	}
}

func TestParseLine_Brackets(t *testing.T) {
	e := ParseLine("2 Ally Card[skipback]", SectionOther, PackDialect{})
	if e == nil {
		t.Fatal("ParseLine() = nil")
	}
	if e.Count != 2 || e.Name != "Ally Card" {
		t.Errorf("got count=%d name=%q", e.Count, e.Name)
	}
	if !e.Annotations.SkipBack || e.Annotations.SkipProxy {
		t.Errorf("annotations = %+v, want skipBack only", e.Annotations)
	}

	e = ParseLine("1 Spider-Man [01001a] [skipproxy, Permanent, futureflag]", SectionOther, PackDialect{})
	if e.Code != "01001a" {
		t.Errorf("code = %q, want 01001a", e.Code)
	}
	if !e.Annotations.SkipProxy || !e.Annotations.Permanent {
		t.Errorf("annotations = %+v", e.Annotations)
	}
	wantKeywords := []string{"skipproxy", "Permanent", "futureflag"}
	if !reflect.DeepEqual(e.Annotations.Keywords, wantKeywords) {
		t.Errorf("keywords = %v, want %v", e.Annotations.Keywords, wantKeywords)
	}

	e = ParseLine("1 Heroic Rescue[All]", SectionOther, PackDialect{})
	if !e.Annotations.MatchAll {
		t.Error("MatchAll not set")
	}

	e = ParseLine("1 Dup Card[SOR-001]", SectionDeck, SetNumberDialect{})
	if e.Code != "SOR-001" || e.Name != "Dup Card" {
		t.Errorf("got code=%q name=%q", e.Code, e.Name)
	}

	e = ParseLine("2 [01002]", SectionOther, PackDialect{})
	if e == nil || e.Code != "01002" || e.Name != "01002" {
		t.Errorf("code-only line = %+v", e)
	}

	e = ParseLine("1 Rebel Trooper[ignoreForDeckLimit][skipBack]", SectionDeck, SetNumberDialect{})
	if !e.Annotations.IgnoreDeckLimit || !e.Annotations.SkipBack {
		t.Errorf("annotations = %+v", e.Annotations)
	}
}

func TestParseLine_NumericCodeIsKeptAsTyped(t *testing.T) {
	e := ParseLine("1 Spider-Man[1001]", SectionOther, PackDialect{})
	if e.Code != "1001" {
		t.Errorf("code = %q, want it untouched until resolution", e.Code)
	}
}
