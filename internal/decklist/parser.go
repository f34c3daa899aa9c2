package decklist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/diag"
)

// Parser turns deck-list files into expanded decks.
type Parser struct {
	dialect  Dialect
	section  Section
	readFile func(string) ([]byte, error)
}

// NewParser creates a parser for the given game dialect.
func NewParser(dialect Dialect) *Parser {
	return &Parser{
		dialect:  dialect,
		section:  SectionOther,
		readFile: os.ReadFile,
	}
}

// expansion is the state of one ParseFile call. open holds the normalized
// paths of the files currently being expanded; an include of an open file
// is skipped, which breaks cycles without rejecting a fragment that is
// legitimately included twice.
type expansion struct {
	deck  *Deck
	open  map[string]bool
	read  map[string]bool
	diags []diag.Diagnostic
}

// ParseFile reads and expands the deck list at path. Failing to read the
// root file is an error; a missing include only produces a warning.
func (p *Parser) ParseFile(path string) (*Deck, []diag.Diagnostic, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve deck path %s: %w", path, err)
	}
	abs = filepath.Clean(abs)

	data, err := p.readFile(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("read deck list: %w", err)
	}

	x := &expansion{
		deck: &Deck{Path: abs},
		open: make(map[string]bool),
		read: make(map[string]bool),
	}
	p.expand(x, abs, string(data))
	return x.deck, x.diags, nil
}

// ParseString parses text as if it were the contents of the file at path.
// Includes are resolved relative to path.
func (p *Parser) ParseString(path, text string) (*Deck, []diag.Diagnostic) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	x := &expansion{
		deck: &Deck{Path: abs},
		open: make(map[string]bool),
		read: make(map[string]bool),
	}
	p.expand(x, abs, text)
	return x.deck, x.diags
}

func (p *Parser) expand(x *expansion, path, text string) {
	p.expandWithSection(x, path, text, p.section)
}

func (p *Parser) expandWithSection(x *expansion, path, text string, section Section) {
	x.open[path] = true
	defer delete(x.open, path)
	if !x.read[path] {
		x.read[path] = true
		x.deck.Files = append(x.deck.Files, path)
	}

	text = strings.TrimPrefix(text, "\ufeff")
	state := StateNormal
	// afterEntry is set while the previous lines were a card line and its
	// annotations; those are skipped even inside a block comment.
	afterEntry := false

	for i, line := range strings.Split(text, "\n") {
		raw := strings.TrimSuffix(line, "\r")
		src := Source{Path: path, Line: i + 1, Text: raw}

		if (state == StateNormal || afterEntry) && IsAnnotationLine(raw) {
			continue
		}
		afterEntry = false

		var visible string
		visible, state = StripComments(raw, state)
		content := strings.TrimSpace(visible)
		if content == "" {
			continue
		}

		directive := ParseDirective(content)
		switch directive.Kind {
		case DirectivePageBreak:
			x.deck.Items = append(x.deck.Items, Item{PageBreak: true, Source: src})
			continue
		case DirectiveSection:
			section = directive.Section
			continue
		case DirectiveInclude:
			p.include(x, src, directive.Target, section)
			continue
		}

		entry := ParseLine(content, section, p.dialect)
		if entry == nil {
			continue
		}
		entry.Source = src
		x.deck.Items = append(x.deck.Items, Item{Entry: entry, Source: src})
		afterEntry = true
	}
}

func (p *Parser) include(x *expansion, src Source, target string, section Section) {
	path, err := ResolveIncludePath(src.Path, target)
	if err != nil {
		x.diags = append(x.diags, diag.Warnf(src.Path, src.Line, "cannot resolve include %q: %v", target, err))
		return
	}
	if x.open[path] {
		return
	}

	data, err := p.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			x.diags = append(x.diags, diag.Warnf(src.Path, src.Line, "included file %s does not exist, skipping", path))
		} else {
			x.diags = append(x.diags, diag.Warnf(src.Path, src.Line, "cannot read included file %s: %v", path, err))
		}
		return
	}

	p.expandWithSection(x, path, string(data), section)
}
