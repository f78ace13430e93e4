// Package offer defines tariff offers, providers and the catalog wire record.
package offer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ID identifies a tariff offer in the catalog.
type ID string

// ProviderID identifies an energy provider.
type ProviderID string

// Scheme is the billing structure that decides which price fields apply to an offer.
type Scheme string

// Supported pricing schemes.
const (
	// SchemeFlat is a single per-kWh rate.
	SchemeFlat Scheme = "FLAT"
	// SchemePeakOffPeak splits the day into off-peak (HC) and peak (HP) hours.
	SchemePeakOffPeak Scheme = "PEAK_OFFPEAK"
	// SchemeColorTiered is the Tempo-style scheme: three day colors, each split off-peak/peak.
	SchemeColorTiered Scheme = "COLOR_TIERED"
	// SchemeCriticalPeak has a normal rate and a critical-peak rate for alert days.
	SchemeCriticalPeak Scheme = "CRITICAL_PEAK"
)

// schemeAliases maps the vendor names found in provider catalogs to a canonical scheme.
//
//nolint:gochecknoglobals // Read-only lookup table.
var schemeAliases = map[string]Scheme{
	"FLAT":          SchemeFlat,
	"BASE":          SchemeFlat,
	"PEAK_OFFPEAK":  SchemePeakOffPeak,
	"HC_HP":         SchemePeakOffPeak,
	"HCHP":          SchemePeakOffPeak,
	"COLOR_TIERED":  SchemeColorTiered,
	"TEMPO":         SchemeColorTiered,
	"CRITICAL_PEAK": SchemeCriticalPeak,
	"EJP":           SchemeCriticalPeak,
}

// ParseScheme normalizes a wire scheme name. Known aliases map to their canonical
// scheme; anything else is kept as written so the fallback renderer can label it.
func ParseScheme(s string) Scheme {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	if scheme, ok := schemeAliases[key]; ok {
		return scheme
	}
	return Scheme(strings.TrimSpace(s))
}

// Known reports whether the scheme is one of the four supported schemes.
func (s Scheme) Known() bool {
	switch s {
	case SchemeFlat, SchemePeakOffPeak, SchemeColorTiered, SchemeCriticalPeak:
		return true
	default:
		return false
	}
}

// Provider is an energy supplier. Offers reference providers by ID only.
type Provider struct {
	ID   ProviderID `json:"id"   yaml:"id"`
	Name string     `json:"name" yaml:"name"`
}

// Pricing is the scheme-specific part of an offer. Exactly one of the concrete
// variants below implements it; callers switch on the concrete type.
type Pricing interface {
	Scheme() Scheme
	isPricing()
}

// FlatPricing carries a single per-kWh rate.
type FlatPricing struct {
	Base *float64
}

// PeakOffPeakPricing carries the off-peak (HC) and peak (HP) rates.
type PeakOffPeakPricing struct {
	OffPeak *float64
	Peak    *float64
}

// ColorTieredPricing carries the six Tempo rates: {blue, white, red} x {off-peak, peak}.
type ColorTieredPricing struct {
	BlueOffPeak  *float64
	BluePeak     *float64
	WhiteOffPeak *float64
	WhitePeak    *float64
	RedOffPeak   *float64
	RedPeak      *float64
}

// CriticalPeakPricing carries the normal rate and the critical-peak rate.
type CriticalPeakPricing struct {
	Normal       *float64
	CriticalPeak *float64
}

// UnknownPricing keeps whatever generic rates an unrecognized scheme provided.
type UnknownPricing struct {
	Name    Scheme
	OffPeak *float64
	Peak    *float64
	Base    *float64
}

func (FlatPricing) Scheme() Scheme         { return SchemeFlat }
func (PeakOffPeakPricing) Scheme() Scheme  { return SchemePeakOffPeak }
func (ColorTieredPricing) Scheme() Scheme  { return SchemeColorTiered }
func (CriticalPeakPricing) Scheme() Scheme { return SchemeCriticalPeak }
func (p UnknownPricing) Scheme() Scheme    { return p.Name }

func (FlatPricing) isPricing()         {}
func (PeakOffPeakPricing) isPricing()  {}
func (ColorTieredPricing) isPricing()  {}
func (CriticalPeakPricing) isPricing() {}
func (UnknownPricing) isPricing()      {}

// Offer is a priced electricity tariff plan from a provider.
type Offer struct {
	ID         ID
	Name       string
	ProviderID ProviderID

	// Subscription is the monthly subscription fee; Valid is false when the
	// catalog did not state one.
	Subscription decimal.NullDecimal

	// PowerKVA is the contracted power rating, nil when the offer does not state one.
	PowerKVA *float64

	Pricing Pricing
}

// Scheme returns the offer's pricing scheme, or the empty scheme when no pricing is set.
func (o Offer) Scheme() Scheme {
	if o.Pricing == nil {
		return ""
	}
	return o.Pricing.Scheme()
}

// Float returns a pointer to v. Handy for building offers in code and tests.
func Float(v float64) *float64 {
	return &v
}
