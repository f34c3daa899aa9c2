// Package analysis summarizes the composition of a resolved deck.
package analysis

import (
	"sort"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/decklist"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/resolve"
)

// MaxCurveCost is the last cost-curve bucket; higher costs are counted in
// it.
const MaxCurveCost = 7

// Card is what the analyzer needs from a card.
type Card interface {
	resolve.Card
	CardType() string
	// Groups are the card's faction or aspects.
	Groups() []string
	CostValue() (int, bool)
	CopyLimit(section decklist.Section) int
}

// Count is a labelled number of cards.
type Count struct {
	Label string
	Cards int
}

// Violation is a card included more often than its limit allows.
type Violation struct {
	Code    string
	Name    string
	Copies  int
	Limit   int
	Sources []decklist.Source
}

// Report is the composition of a deck. Sideboard cards only appear in
// Sections.
type Report struct {
	TotalCards int
	Sections   []Count
	Types      []Count
	Groups     []Count
	CostCurve  []Count // Labels "0".."6" and "7+"
	Uncosted   int     // Cards without a numeric cost
	Permanent  int     // Copies marked [permanent]
	Violations []Violation
}

type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(label string, n int) {
	if _, ok := t.counts[label]; !ok {
		t.order = append(t.order, label)
	}
	t.counts[label] += n
}

// sorted returns counts by descending size, ties in first-seen order.
func (t *tally) sorted() []Count {
	out := t.inOrder()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Cards > out[j].Cards })
	return out
}

func (t *tally) inOrder() []Count {
	out := make([]Count, 0, len(t.order))
	for _, label := range t.order {
		out = append(out, Count{Label: label, Cards: t.counts[label]})
	}
	return out
}

type limitState struct {
	code    string
	name    string
	copies  int
	limit   int
	sources []decklist.Source
}

// Analyze builds the composition report of a resolved deck. Copies from
// entries marked [ignoreForDeckLimit] do not count towards deck limits.
func Analyze[C Card](result *resolve.Result[C]) *Report {
	report := &Report{}
	sections := newTally()
	types := newTally()
	groups := newTally()
	curve := make([]int, MaxCurveCost+1)

	var limitOrder []string
	limits := make(map[string]*limitState)

	for _, item := range result.Entries() {
		entry := item.Entry
		for _, card := range item.Cards {
			n := entry.Count
			report.TotalCards += n
			sections.add(string(entry.Section), n)
			if entry.Annotations.Permanent {
				report.Permanent += n
			}
			if entry.Section == decklist.SectionSideboard {
				continue
			}

			if t := card.CardType(); t != "" {
				types.add(t, n)
			}
			for _, g := range card.Groups() {
				groups.add(g, n)
			}
			if cost, ok := card.CostValue(); ok {
				curve[min(max(cost, 0), MaxCurveCost)] += n
			} else {
				report.Uncosted += n
			}

			if entry.Annotations.IgnoreDeckLimit {
				continue
			}
			key := card.DedupKey()
			st, ok := limits[key]
			if !ok {
				st = &limitState{code: card.Code(), name: card.DisplayName(), limit: card.CopyLimit(entry.Section)}
				limits[key] = st
				limitOrder = append(limitOrder, key)
			}
			st.copies += n
			st.sources = append(st.sources, entry.Source)
		}
	}

	report.Sections = sections.inOrder()
	report.Types = types.sorted()
	report.Groups = groups.sorted()
	report.CostCurve = make([]Count, len(curve))
	for cost, n := range curve {
		report.CostCurve[cost] = Count{Label: curveLabel(cost), Cards: n}
	}

	for _, key := range limitOrder {
		st := limits[key]
		if st.limit > 0 && st.copies > st.limit {
			report.Violations = append(report.Violations, Violation{
				Code:    st.code,
				Name:    st.name,
				Copies:  st.copies,
				Limit:   st.limit,
				Sources: st.sources,
			})
		}
	}
	return report
}

func curveLabel(cost int) string {
	if cost == MaxCurveCost {
		return "7+"
	}
	return string(rune('0' + cost))
}
