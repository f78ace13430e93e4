package pricing

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rshade/wattfocus/internal/offer"
)

// ProviderGroup is one provider's block in the comparison picker.
type ProviderGroup struct {
	Provider offer.Provider `json:"provider"`
	Offers   []offer.Offer  `json:"-"`
}

// GroupByProvider partitions offers by provider and orders the groups by
// provider display name using locale-aware collation.
//
// Offers whose provider is not in providers are dropped: the provider list is
// usually fetched separately and may simply not be loaded yet. Groups with
// equal names keep their first-seen order, and offers keep their input order
// within a group.
func GroupByProvider(offers []offer.Offer, providers []offer.Provider, tag language.Tag) []ProviderGroup {
	byID := make(map[offer.ProviderID]offer.Provider, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
	}

	index := make(map[offer.ProviderID]int)
	groups := make([]ProviderGroup, 0)
	for _, o := range offers {
		provider, ok := byID[o.ProviderID]
		if !ok {
			continue
		}
		i, seen := index[o.ProviderID]
		if !seen {
			i = len(groups)
			index[o.ProviderID] = i
			groups = append(groups, ProviderGroup{Provider: provider})
		}
		groups[i].Offers = append(groups[i].Offers, o)
	}

	// Collators keep internal buffers, so one is created per call.
	col := collate.New(tag)
	sort.SliceStable(groups, func(a, b int) bool {
		return col.CompareString(groups[a].Provider.Name, groups[b].Provider.Name) < 0
	})

	return groups
}

// Count returns the number of offers across all groups.
func Count(groups []ProviderGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Offers)
	}
	return n
}
