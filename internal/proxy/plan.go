// Package proxy turns a resolved deck into a print plan: pages of card
// slots in list order. Drawing the pages is left to the caller.
package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/resolve"
)

// DefaultPerPage is a 3x3 grid.
const DefaultPerPage = 9

// Card is what a print plan needs from a game's card type.
type Card interface {
	resolve.Card
	FrontImage() string
	BackImage() string
}

// Slot is one printed copy of a card.
type Slot struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Front string `json:"front"`
	Back  string `json:"back,omitempty"`
}

// Page is one physical sheet.
type Page struct {
	Slots []Slot `json:"slots"`
}

// Plan is the ordered list of pages.
type Plan struct {
	PerPage int    `json:"per_page"`
	Pages   []Page `json:"pages"`
}

// Slots returns the total number of slots across all pages.
func (p *Plan) Slots() int {
	n := 0
	for _, page := range p.Pages {
		n += len(page.Slots)
	}
	return n
}

// Build lays out one slot per copy of every entry. Entries marked
// skipproxy are left out and skipback drops the back image. A page break
// starts a new page unless the current one is still empty.
func Build[C Card](result *resolve.Result[C], perPage int) *Plan {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	plan := &Plan{PerPage: perPage}
	var current []Slot

	flush := func() {
		if len(current) > 0 {
			plan.Pages = append(plan.Pages, Page{Slots: current})
			current = nil
		}
	}

	for _, item := range result.Items {
		if item.PageBreak {
			flush()
			continue
		}
		if item.Entry.Annotations.SkipProxy {
			continue
		}
		for _, card := range item.Cards {
			slot := Slot{
				Code:  card.Code(),
				Name:  card.DisplayName(),
				Front: card.FrontImage(),
			}
			if !item.Entry.Annotations.SkipBack {
				slot.Back = card.BackImage()
			}
			for i := 0; i < item.Entry.Count; i++ {
				current = append(current, slot)
				if len(current) == perPage {
					flush()
				}
			}
		}
	}
	flush()
	return plan
}

// ImageFetcher maps an image reference to a local file.
type ImageFetcher interface {
	Localize(ctx context.Context, ref string) (string, error)
}

// Localize replaces every image reference in the plan with a local path.
// Each distinct reference is fetched once. It stops at the first failure.
func (p *Plan) Localize(ctx context.Context, fetcher ImageFetcher) error {
	local := make(map[string]string)
	get := func(ref string) (string, error) {
		if ref == "" {
			return "", nil
		}
		if path, ok := local[ref]; ok {
			return path, nil
		}
		path, err := fetcher.Localize(ctx, ref)
		if err != nil {
			return "", err
		}
		local[ref] = path
		return path, nil
	}

	for i := range p.Pages {
		for j := range p.Pages[i].Slots {
			if err := ctx.Err(); err != nil {
				return err
			}
			slot := &p.Pages[i].Slots[j]
			front, err := get(slot.Front)
			if err != nil {
				return fmt.Errorf("%s front image: %w", slot.Code, err)
			}
			back, err := get(slot.Back)
			if err != nil {
				return fmt.Errorf("%s back image: %w", slot.Code, err)
			}
			slot.Front, slot.Back = front, back
		}
	}
	return nil
}

// WriteJSON writes the plan as indented JSON.
func (p *Plan) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode proxy plan: %w", err)
	}
	return nil
}
