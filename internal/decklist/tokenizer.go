package decklist

import (
	"regexp"
	"strconv"
	"strings"
)

// "2 Foo", "2x Foo", "2 x Foo", "2×Foo"
var countRegex = regexp.MustCompile(`^(\d+)(?:\s*[xX×]\s+|[xX×]|\s+)(.+)$`)

var trailingBracketRegex = regexp.MustCompile(`^(.*?)\[([^\[\]]*)\]\s*$`)

// ParseLine tokenizes a trimmed content line. It returns nil when the line
// is not a card line. Bare names without a count are accepted only in the
// leader and base sections. The returned entry has no Source set.
func ParseLine(text string, section Section, dialect Dialect) *Entry {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	count := 0
	rest := text
	if m := countRegex.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return nil
		}
		count = n
		rest = m[2]
	} else if section == SectionLeader || section == SectionBase {
		count = 1
	} else {
		return nil
	}

	rest, brackets := splitBrackets(rest)

	entry := &Entry{Count: count, Section: section}
	for _, content := range brackets {
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		if entry.Code == "" && dialect.IsCode(content) {
			entry.Code = content
			continue
		}
		for _, token := range strings.Split(content, ",") {
			applyKeyword(&entry.Annotations, strings.TrimSpace(token))
		}
	}

	name, hint := dialect.SplitHint(strings.TrimSpace(rest))
	if name == "" {
		if entry.Code == "" {
			return nil
		}
		name = entry.Code
	}
	entry.Name = name
	entry.Hint = hint

	return entry
}

// splitBrackets peels trailing "[...]" groups off s, returning the remaining
// text and the group contents in source order.
func splitBrackets(s string) (string, []string) {
	var groups []string
	for {
		m := trailingBracketRegex.FindStringSubmatch(s)
		if m == nil {
			return s, groups
		}
		groups = append([]string{m[2]}, groups...)
		s = m[1]
	}
}

func applyKeyword(a *Annotations, token string) {
	if token == "" {
		return
	}
	a.Keywords = append(a.Keywords, token)
	switch strings.ToLower(token) {
	case "all":
		a.MatchAll = true
	case "skipproxy":
		a.SkipProxy = true
	case "skipback":
		a.SkipBack = true
	case "ignorefordecklimit", "ignoredecklimit":
		a.IgnoreDeckLimit = true
	case "permanent":
		a.Permanent = true
	}
}
