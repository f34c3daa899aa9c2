package decklist

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DirectiveKind identifies a structural line.
type DirectiveKind int

const (
	DirectiveNone DirectiveKind = iota
	DirectivePageBreak
	DirectiveInclude
	DirectiveSection
)

// Directive is a parsed structural line.
type Directive struct {
	Kind    DirectiveKind
	Target  string  // Include target as written
	Section Section // Section for DirectiveSection
}

var (
	pageBreakRegex = regexp.MustCompile(`(?i)^\[\s*proxypagebreak\s*\]$`)
	includeRegex   = regexp.MustCompile(`(?i)^\[\s*include\s*:\s*(.+?)\s*\]$`)
	sectionRegex   = regexp.MustCompile(`(?i)^(leaders?|bases?|main\s+deck|deck|sideboard)\s*:?$`)
)

// ParseDirective recognizes page breaks, includes and section headers in
// comment-stripped, trimmed text.
func ParseDirective(text string) Directive {
	if pageBreakRegex.MatchString(text) {
		return Directive{Kind: DirectivePageBreak}
	}
	if m := includeRegex.FindStringSubmatch(text); m != nil {
		return Directive{Kind: DirectiveInclude, Target: m[1]}
	}
	if m := sectionRegex.FindStringSubmatch(text); m != nil {
		return Directive{Kind: DirectiveSection, Section: sectionFor(m[1])}
	}
	return Directive{}
}

func sectionFor(header string) Section {
	h := strings.ToLower(strings.Join(strings.Fields(header), " "))
	switch h {
	case "leader", "leaders":
		return SectionLeader
	case "base", "bases":
		return SectionBase
	case "deck", "main deck":
		return SectionDeck
	case "sideboard":
		return SectionSideboard
	default:
		return SectionOther
	}
}

// ResolveIncludePath resolves an include target relative to the directory of
// the including file, appending ".txt" when the target has no extension.
func ResolveIncludePath(fromFile, target string) (string, error) {
	target = strings.TrimSpace(target)
	if filepath.Ext(target) == "" {
		target += ".txt"
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(fromFile), target)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}
