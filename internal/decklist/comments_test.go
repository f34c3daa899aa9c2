package decklist

import "testing"

func TestStripComments(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		state     CommentState
		want      string
		wantState CommentState
	}{
		{"plain", "2 Backflip", StateNormal, "2 Backflip", StateNormal},
		{"hash comment", "2 Backflip # core", StateNormal, "2 Backflip ", StateNormal},
		{"slash comment", "2 Backflip // note", StateNormal, "2 Backflip ", StateNormal},
		{"escaped hash", `1 Card \#1`, StateNormal, "1 Card #1", StateNormal},
		{"inline block", "1 Foo /* x */ Bar", StateNormal, "1 Foo  Bar", StateNormal},
		{"block opens", "1 Foo /* start", StateNormal, "1 Foo ", StateInBlockComment},
		{"inside block", "2 Hidden", StateInBlockComment, "", StateInBlockComment},
		{"block closes", "end */ 3 Shown", StateInBlockComment, " 3 Shown", StateNormal},
		{"hash inside block ignored", "# still */1 X", StateInBlockComment, "1 X", StateNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotState := StripComments(tt.line, tt.state)
			if got != tt.want {
				t.Errorf("StripComments() text = %q, want %q", got, tt.want)
			}
			if gotState != tt.wantState {
				t.Errorf("StripComments() state = %v, want %v", gotState, tt.wantState)
			}
		})
	}
}

func TestIsAnnotationLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"//? Ally | Justice", true},
		{"   //? indented", true},
		{"//?", true},
		{"// regular comment", false},
		{"//?nospace", false},
		{"1 Card", false},
	}

	for _, tt := range tests {
		if got := IsAnnotationLine(tt.line); got != tt.want {
			t.Errorf("IsAnnotationLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestParseDirective(t *testing.T) {
	tests := []struct {
		text        string
		wantKind    DirectiveKind
		wantTarget  string
		wantSection Section
	}{
		{"[proxypagebreak]", DirectivePageBreak, "", ""},
		{"[ProxyPageBreak]", DirectivePageBreak, "", ""},
		{"[include:shared/core]", DirectiveInclude, "shared/core", ""},
		{"[INCLUDE: extras.txt ]", DirectiveInclude, "extras.txt", ""},
		{"Leader:", DirectiveSection, "", SectionLeader},
		{"Bases", DirectiveSection, "", SectionBase},
		{"main deck:", DirectiveSection, "", SectionDeck},
		{"Deck", DirectiveSection, "", SectionDeck},
		{"SIDEBOARD:", DirectiveSection, "", SectionSideboard},
		{"2 Leader of the Pack", DirectiveNone, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d := ParseDirective(tt.text)
			if d.Kind != tt.wantKind {
				t.Fatalf("kind = %v, want %v", d.Kind, tt.wantKind)
			}
			if d.Target != tt.wantTarget {
				t.Errorf("target = %q, want %q", d.Target, tt.wantTarget)
			}
			if d.Section != tt.wantSection {
				t.Errorf("section = %q, want %q", d.Section, tt.wantSection)
			}
		})
	}
}
