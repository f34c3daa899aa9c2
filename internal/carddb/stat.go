package carddb

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Stat is a gameplay number that may be absent, zero, or a star marker.
// Zero is a real value and distinct from absent.
type Stat struct {
	Value *int
	Star  bool
	Text  string // Non-numeric marker other than a star, e.g. "X"
}

// IntStat returns a Stat holding n.
func IntStat(n int) Stat {
	return Stat{Value: &n}
}

// ParseStat coerces a JSON number, numeric string, star marker or null.
func ParseStat(raw json.RawMessage) Stat {
	if isNull(raw) {
		return Stat{}
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := strconv.Atoi(n.String()); err == nil {
			return IntStat(i)
		}
		if f, err := n.Float64(); err == nil {
			return IntStat(int(f))
		}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return Stat{}
	}
	return ParseStatString(s)
}

// ParseStatString coerces "3", "0", "*", "2*" or "X".
func ParseStatString(s string) Stat {
	s = strings.TrimSpace(s)
	switch s {
	case "", "-", "null":
		return Stat{}
	case "*", "★":
		return Stat{Star: true}
	}

	star := false
	if trimmed := strings.TrimRight(s, "*★"); trimmed != s {
		star = true
		s = trimmed
	}
	if i, err := strconv.Atoi(s); err == nil {
		st := IntStat(i)
		st.Star = star
		return st
	}
	return Stat{Text: s, Star: star}
}

// IsSet reports whether the stat carries any value or marker.
func (s Stat) IsSet() bool {
	return s.Value != nil || s.Star || s.Text != ""
}

// Int returns the numeric value, if any.
func (s Stat) Int() (int, bool) {
	if s.Value == nil {
		return 0, false
	}
	return *s.Value, true
}

// WithStar returns a copy with the star flag set.
func (s Stat) WithStar(star bool) Stat {
	s.Star = s.Star || star
	return s
}

// String renders the stat for display: "3", "0", "2*", "*", "X" or "-".
func (s Stat) String() string {
	var out string
	switch {
	case s.Value != nil:
		out = strconv.Itoa(*s.Value)
	case s.Text != "":
		out = s.Text
	case !s.Star:
		return "-"
	}
	if s.Star {
		out += "*"
	}
	return out
}
