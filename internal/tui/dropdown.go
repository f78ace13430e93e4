package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/wattfocus/internal/offer"
	"github.com/rshade/wattfocus/internal/pricing"
)

// EntryKind distinguishes dropdown rows.
type EntryKind int

const (
	// EntryHeader is a provider heading; it cannot be selected.
	EntryHeader EntryKind = iota
	// EntryOriginal is the user's own offer; selecting it clears the comparison.
	EntryOriginal
	// EntryOffer is a comparison candidate.
	EntryOffer
)

// Entry is one dropdown row.
type Entry struct {
	Kind    EntryKind
	Label   string
	Detail  string
	OfferID offer.ID
}

// Selectable reports whether the cursor may rest on e.
func (e Entry) Selectable() bool {
	return e.Kind != EntryHeader
}

// BuildEntries lists the original offer first, then every provider group as
// a header followed by its offers. A non-empty filter keeps offers whose name
// or provider name contains it, case-insensitively, and drops empty groups.
func BuildEntries(primary offer.Offer, groups []pricing.ProviderGroup, filter string) []Entry {
	filter = strings.ToLower(strings.TrimSpace(filter))

	name := primary.Name
	if name == "" {
		name = string(primary.ID)
	}
	entries := []Entry{{
		Kind:    EntryOriginal,
		Label:   name,
		Detail:  "your offer",
		OfferID: primary.ID,
	}}

	for _, g := range groups {
		providerMatch := filter == "" || strings.Contains(strings.ToLower(g.Provider.Name), filter)
		var rows []Entry
		for _, o := range g.Offers {
			if !providerMatch && !strings.Contains(strings.ToLower(o.Name), filter) {
				continue
			}
			label := o.Name
			if label == "" {
				label = string(o.ID)
			}
			rows = append(rows, Entry{Kind: EntryOffer, Label: label, Detail: string(o.Scheme()), OfferID: o.ID})
		}
		if len(rows) == 0 {
			continue
		}
		entries = append(entries, Entry{Kind: EntryHeader, Label: g.Provider.Name})
		entries = append(entries, rows...)
	}
	return entries
}

// RenderEntry renders a dropdown row. current marks the active comparison.
func RenderEntry(e Entry, selected, current bool) string {
	if e.Kind == EntryHeader {
		return lipgloss.NewStyle().Foreground(ColorHeader).Bold(true).Render(e.Label)
	}

	marker := "  "
	if current {
		marker = IconCheck + " "
	}
	row := marker + e.Label
	if e.Detail != "" {
		row += "  " + lipgloss.NewStyle().Foreground(ColorMuted).Render(e.Detail)
	}
	if selected {
		return SelectedStyle.Render(IconArrowRight + row)
	}
	return " " + row
}
