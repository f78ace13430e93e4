package pricing

import (
	"github.com/rshade/wattfocus/internal/offer"
)

// LineKey identifies a breakdown line independent of its label.
type LineKey string

// Breakdown line keys.
const (
	KeyBase         LineKey = "base"
	KeyOffPeak      LineKey = "off_peak"
	KeyPeak         LineKey = "peak"
	KeyBlueOffPeak  LineKey = "blue_off_peak"
	KeyBluePeak     LineKey = "blue_peak"
	KeyWhiteOffPeak LineKey = "white_off_peak"
	KeyWhitePeak    LineKey = "white_peak"
	KeyRedOffPeak   LineKey = "red_off_peak"
	KeyRedPeak      LineKey = "red_peak"
	KeyNormal       LineKey = "normal"
	KeyCriticalPeak LineKey = "critical_peak"
	KeySubscription LineKey = "subscription"
	KeyPower        LineKey = "power"
)

// LineKind tells renderers what kind of value a line holds.
type LineKind string

// Line kinds.
const (
	KindPerKwh       LineKind = "per_kwh"
	KindSubscription LineKind = "subscription"
	KindPower        LineKind = "power"
)

// Tempo color groups used on color-tiered lines.
const (
	GroupBlue  = "blue"
	GroupWhite = "white"
	GroupRed   = "red"
)

// lineLabels holds the display label for each line key.
//
//nolint:gochecknoglobals // Read-only lookup table.
var lineLabels = map[LineKey]string{
	KeyBase:         "Price per kWh",
	KeyOffPeak:      "Off-peak (HC)",
	KeyPeak:         "Peak (HP)",
	KeyBlueOffPeak:  "Blue off-peak",
	KeyBluePeak:     "Blue peak",
	KeyWhiteOffPeak: "White off-peak",
	KeyWhitePeak:    "White peak",
	KeyRedOffPeak:   "Red off-peak",
	KeyRedPeak:      "Red peak",
	KeyNormal:       "Normal",
	KeyCriticalPeak: "Critical peak",
	KeySubscription: "Subscription",
	KeyPower:        "Power",
}

// Label returns the display label for a line key.
func (k LineKey) Label() string {
	if label, ok := lineLabels[k]; ok {
		return label
	}
	return string(k)
}

// PriceLine is one rendered field of an offer's pricing card.
type PriceLine struct {
	Key   LineKey  `json:"key"`
	Label string   `json:"label"`
	Value string   `json:"value"`
	Kind  LineKind `json:"kind"`

	// Group is the Tempo color for color-tiered lines, empty otherwise.
	Group string `json:"group,omitempty"`

	// Alert flags a price that should be visually highlighted as high-alert.
	Alert bool `json:"alert,omitempty"`
}

// PriceBreakdown is the display-ready pricing summary of one offer.
type PriceBreakdown struct {
	OfferID   offer.ID     `json:"offer_id"`
	OfferName string       `json:"offer_name"`
	Scheme    offer.Scheme `json:"scheme"`

	// Fallback is true when the scheme was not recognized and the generic
	// best-effort rendering was used.
	Fallback bool `json:"fallback,omitempty"`

	Lines []PriceLine `json:"lines"`
}

// Line returns the line with the given key.
func (b PriceBreakdown) Line(key LineKey) (PriceLine, bool) {
	for _, l := range b.Lines {
		if l.Key == key {
			return l, true
		}
	}
	return PriceLine{}, false
}

// PerKwhLines returns only the per-kWh lines, in display order.
func (b PriceBreakdown) PerKwhLines() []PriceLine {
	out := make([]PriceLine, 0, len(b.Lines))
	for _, l := range b.Lines {
		if l.Kind == KindPerKwh {
			out = append(out, l)
		}
	}
	return out
}

// Breakdown renders the pricing fields relevant to the offer's scheme.
// It never fails: unknown schemes use the fallback rendering and bad values
// render as the placeholder.
func (f *Formatter) Breakdown(o offer.Offer) PriceBreakdown {
	b := PriceBreakdown{
		OfferID:   o.ID,
		OfferName: o.Name,
		Scheme:    o.Scheme(),
	}

	switch p := o.Pricing.(type) {
	case offer.FlatPricing:
		b.Lines = append(b.Lines, f.kwhLine(KeyBase, p.Base, ""))

	case offer.PeakOffPeakPricing:
		b.Lines = append(b.Lines,
			f.kwhLine(KeyOffPeak, p.OffPeak, ""),
			f.kwhLine(KeyPeak, p.Peak, ""),
		)

	case offer.ColorTieredPricing:
		b.Lines = append(b.Lines,
			f.kwhLine(KeyBlueOffPeak, p.BlueOffPeak, GroupBlue),
			f.kwhLine(KeyBluePeak, p.BluePeak, GroupBlue),
			f.kwhLine(KeyWhiteOffPeak, p.WhiteOffPeak, GroupWhite),
			f.kwhLine(KeyWhitePeak, p.WhitePeak, GroupWhite),
			f.kwhLine(KeyRedOffPeak, p.RedOffPeak, GroupRed),
			f.kwhLine(KeyRedPeak, p.RedPeak, GroupRed),
		)

	case offer.CriticalPeakPricing:
		critical := f.kwhLine(KeyCriticalPeak, p.CriticalPeak, "")
		critical.Alert = true
		b.Lines = append(b.Lines, f.kwhLine(KeyNormal, p.Normal, ""), critical)

	case offer.UnknownPricing:
		b.Fallback = true
		b.Lines = append(b.Lines, f.presentLines(p.OffPeak, p.Peak, p.Base)...)

	default:
		// No pricing at all is treated like an unknown scheme with no rates.
		b.Fallback = true
	}

	b.Lines = append(b.Lines, PriceLine{
		Key:   KeySubscription,
		Label: KeySubscription.Label(),
		Value: f.Subscription(o.Subscription),
		Kind:  KindSubscription,
	})

	// The fallback rendering shows prices and subscription only.
	if b.Fallback {
		return b
	}

	if power, ok := f.Power(o.PowerKVA); ok {
		b.Lines = append(b.Lines, PriceLine{
			Key:   KeyPower,
			Label: KeyPower.Label(),
			Value: power,
			Kind:  KindPower,
		})
	}

	return b
}

func (f *Formatter) kwhLine(key LineKey, v *float64, group string) PriceLine {
	return PriceLine{
		Key:   key,
		Label: key.Label(),
		Value: f.PerKwh(v),
		Kind:  KindPerKwh,
		Group: group,
	}
}

// presentLines renders the generic rates that are present (non-nil), in
// off-peak, peak, base order. Absent rates are omitted rather than shown as
// the placeholder.
func (f *Formatter) presentLines(offPeak, peak, base *float64) []PriceLine {
	var lines []PriceLine
	if offPeak != nil {
		lines = append(lines, f.kwhLine(KeyOffPeak, offPeak, ""))
	}
	if peak != nil {
		lines = append(lines, f.kwhLine(KeyPeak, peak, ""))
	}
	if base != nil {
		lines = append(lines, f.kwhLine(KeyBase, base, ""))
	}
	return lines
}
