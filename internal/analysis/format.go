package analysis

import (
	"fmt"
	"io"
	"strings"
)

// Format writes a plain-text rendition of the report.
func (r *Report) Format(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Total cards: %d\n", r.TotalCards)

	writeCounts(&b, "Sections", r.Sections)
	writeCounts(&b, "Types", r.Types)
	writeCounts(&b, "Factions/Aspects", r.Groups)

	b.WriteString("\nCost curve:\n")
	for _, c := range r.CostCurve {
		fmt.Fprintf(&b, "  %-3s %3d %s\n", c.Label, c.Cards, strings.Repeat("#", c.Cards))
	}
	if r.Uncosted > 0 {
		fmt.Fprintf(&b, "  no cost: %d\n", r.Uncosted)
	}
	if r.Permanent > 0 {
		fmt.Fprintf(&b, "\nPermanent cards: %d\n", r.Permanent)
	}

	if len(r.Violations) == 0 {
		b.WriteString("\nDeck limits: OK\n")
	} else {
		fmt.Fprintf(&b, "\nDeck limit violations (%d):\n", len(r.Violations))
		for _, v := range r.Violations {
			fmt.Fprintf(&b, "  [%s] %s: %d copies, limit %d\n", v.Code, v.Name, v.Copies, v.Limit)
			for _, src := range v.Sources {
				fmt.Fprintf(&b, "      %s\n", src)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeCounts(b *strings.Builder, title string, counts []Count) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, c := range counts {
		fmt.Fprintf(b, "  %-20s %3d\n", c.Label, c.Cards)
	}
}
