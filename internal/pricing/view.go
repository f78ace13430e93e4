package pricing

import (
	"fmt"

	"github.com/rshade/wattfocus/internal/offer"
)

// Input is everything the offer card needs to render.
type Input struct {
	// SelectedOffer is the offer whose pricing is rendered.
	SelectedOffer offer.Offer

	// IsComparisonMode is true when SelectedOffer is the comparison target
	// rather than the primary offer.
	IsComparisonMode bool

	// OriginalOffer is the primary offer; only used in comparison mode.
	OriginalOffer *offer.Offer

	// CompatibleOffers is the catalog eligible for comparison, in display order.
	CompatibleOffers []offer.Offer

	// Providers resolves provider ids to display names for grouping.
	Providers []offer.Provider

	// ComparisonOfferID is the currently chosen comparison offer, or empty.
	ComparisonOfferID offer.ID
}

// Banner identifies the primary offer while a comparison card is displayed.
type Banner struct {
	PrimaryID   offer.ID `json:"primary_id"`
	PrimaryName string   `json:"primary_name"`
	Message     string   `json:"message"`
	ReturnLabel string   `json:"return_label"`
}

// View is the display-ready state of the offer card.
type View struct {
	Breakdown         PriceBreakdown  `json:"breakdown"`
	Groups            []ProviderGroup `json:"-"`
	Banner            *Banner         `json:"banner,omitempty"`
	ComparisonOfferID offer.ID        `json:"comparison_offer_id,omitempty"`
	ComparisonActive  bool            `json:"comparison_active"`
}

// NewView assembles the card for in. It has no side effects and never fails.
func (f *Formatter) NewView(in Input) View {
	v := View{
		Breakdown: f.Breakdown(in.SelectedOffer),
		Groups:    GroupByProvider(in.CompatibleOffers, in.Providers, f.tag),
	}

	primary := in.SelectedOffer.ID
	if in.IsComparisonMode && in.OriginalOffer != nil {
		primary = in.OriginalOffer.ID
		v.Banner = NewBanner(*in.OriginalOffer)
	}

	if in.ComparisonOfferID != "" && in.ComparisonOfferID != primary {
		v.ComparisonOfferID = in.ComparisonOfferID
		v.ComparisonActive = true
	}

	return v
}

// NewBanner builds the comparison-mode banner for the primary offer.
func NewBanner(primary offer.Offer) *Banner {
	name := primary.Name
	if name == "" {
		name = string(primary.ID)
	}
	return &Banner{
		PrimaryID:   primary.ID,
		PrimaryName: name,
		Message:     fmt.Sprintf("Comparing with your current offer: %s", name),
		ReturnLabel: "Return to primary offer",
	}
}
