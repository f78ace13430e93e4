// Package report renders offer breakdowns and comparison candidates as
// tables, JSON or NDJSON for non-interactive output.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rshade/wattfocus/internal/offer"
	"github.com/rshade/wattfocus/internal/pricing"
)

// Role says which card a row belongs to.
type Role string

// Card roles.
const (
	RolePrimary    Role = "primary"
	RoleComparison Role = "comparison"
)

// Card is one rendered offer with its estimate.
type Card struct {
	Breakdown pricing.PriceBreakdown `json:"breakdown"`

	// Applicable is the per-kWh line billed at the report time, if any.
	Applicable pricing.LineKey `json:"applicable,omitempty"`

	Simulation pricing.Simulation `json:"simulation"`
}

// Show is the result of "offer show".
type Show struct {
	Primary    Card            `json:"primary"`
	Comparison *Card           `json:"comparison,omitempty"`
	Banner     *pricing.Banner `json:"banner,omitempty"`

	// ComparisonOfferID is set whenever a comparison is active, even when
	// the offer is missing from the catalog.
	ComparisonOfferID offer.ID `json:"comparison_offer_id,omitempty"`

	// Savings is primary minus comparison monthly total; positive means the
	// comparison is cheaper.
	Savings *decimal.Decimal `json:"monthly_savings,omitempty"`

	DayColor   pricing.DayColor `json:"day_color"`
	At         time.Time        `json:"at"`
	MonthlyKwh float64          `json:"monthly_kwh"`
}

// Missing reports whether a comparison was requested for an unknown offer.
func (s Show) Missing() bool {
	return s.ComparisonOfferID != "" && s.Comparison == nil
}

// ShowInput is what BuildShow needs.
type ShowInput struct {
	Formatter  *pricing.Formatter
	Primary    offer.Offer
	Comparison offer.ID
	Lookup     func(offer.ID) (offer.Offer, bool)
	Usage      pricing.Usage
	DayColor   pricing.DayColor
	Window     pricing.OffPeakWindow
	At         time.Time
}

// BuildShow assembles the primary card and, when Comparison names another
// offer, the comparison card with its banner and savings.
func BuildShow(in ShowInput) Show {
	f := in.Formatter
	view := f.NewView(pricing.Input{SelectedOffer: in.Primary, ComparisonOfferID: in.Comparison})

	s := Show{
		Primary:    buildCard(in.Primary, view.Breakdown, in),
		DayColor:   in.DayColor,
		At:         in.At,
		MonthlyKwh: in.Usage.MonthlyKwh,
	}
	if !view.ComparisonActive {
		return s
	}

	s.ComparisonOfferID = view.ComparisonOfferID
	s.Banner = pricing.NewBanner(in.Primary)
	if in.Lookup == nil {
		return s
	}
	target, ok := in.Lookup(view.ComparisonOfferID)
	if !ok {
		return s
	}

	cv := f.NewView(pricing.Input{
		SelectedOffer:     target,
		IsComparisonMode:  true,
		OriginalOffer:     &in.Primary,
		ComparisonOfferID: target.ID,
	})
	card := buildCard(target, cv.Breakdown, in)
	s.Comparison = &card
	s.Banner = cv.Banner

	savings := pricing.Savings(s.Primary.Simulation, card.Simulation)
	s.Savings = &savings
	return s
}

func buildCard(o offer.Offer, b pricing.PriceBreakdown, in ShowInput) Card {
	c := Card{Breakdown: b, Simulation: pricing.Simulate(o, in.Usage)}
	if k, ok := pricing.ApplicableKey(o, in.DayColor, in.At, in.Window); ok {
		c.Applicable = k
	}
	return c
}

// Candidate is one comparison candidate row.
type Candidate struct {
	ProviderID   offer.ProviderID `json:"provider_id"`
	ProviderName string           `json:"provider_name"`
	OfferID      offer.ID         `json:"offer_id"`
	OfferName    string           `json:"offer_name"`
	Scheme       offer.Scheme     `json:"scheme"`
}

// Group is one provider's candidates.
type Group struct {
	ProviderID   offer.ProviderID `json:"provider_id"`
	ProviderName string           `json:"provider_name"`
	Offers       []Candidate      `json:"offers"`
}

// BuildGroups flattens provider groups for output.
func BuildGroups(groups []pricing.ProviderGroup) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		rg := Group{ProviderID: g.Provider.ID, ProviderName: g.Provider.Name, Offers: make([]Candidate, 0, len(g.Offers))}
		for _, o := range g.Offers {
			rg.Offers = append(rg.Offers, Candidate{
				ProviderID:   g.Provider.ID,
				ProviderName: g.Provider.Name,
				OfferID:      o.ID,
				OfferName:    o.Name,
				Scheme:       o.Scheme(),
			})
		}
		out = append(out, rg)
	}
	return out
}
