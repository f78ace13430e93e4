package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/rshade/wattfocus/internal/offer"
)

// Default consumption profile shares.
const (
	// DefaultOffPeakShare is the share of consumption billed at off-peak rates.
	DefaultOffPeakShare = 0.3

	daysPerYear      = 365.0
	tempoBlueDays    = 300.0
	tempoWhiteDays   = 43.0
	tempoRedDays     = 22.0
	criticalPeakDays = 22.0
)

// ColorShare splits consumption across Tempo day colors. Shares are
// normalized before use, so day counts work as well as fractions.
type ColorShare struct {
	Blue  float64 `json:"blue"  yaml:"blue"`
	White float64 `json:"white" yaml:"white"`
	Red   float64 `json:"red"   yaml:"red"`
}

// Usage is a monthly consumption profile.
type Usage struct {
	MonthlyKwh    float64    `json:"monthly_kwh"    yaml:"monthly_kwh"`
	OffPeakShare  float64    `json:"off_peak_share" yaml:"off_peak_share"`
	Colors        ColorShare `json:"colors"         yaml:"colors"`
	CriticalShare float64    `json:"critical_share" yaml:"critical_share"`
}

// DefaultUsage returns a profile with the regulated Tempo calendar split
// (300 blue, 43 white, 22 red days) and 22 critical-peak days a year.
func DefaultUsage(monthlyKwh float64) Usage {
	return Usage{
		MonthlyKwh:   monthlyKwh,
		OffPeakShare: DefaultOffPeakShare,
		Colors: ColorShare{
			Blue:  tempoBlueDays,
			White: tempoWhiteDays,
			Red:   tempoRedDays,
		},
		CriticalShare: criticalPeakDays / daysPerYear,
	}
}

// Simulation is the estimated monthly bill of an offer for a usage profile.
type Simulation struct {
	OfferID      offer.ID        `json:"offer_id"`
	Energy       decimal.Decimal `json:"energy"`
	Subscription decimal.Decimal `json:"subscription"`
	Total        decimal.Decimal `json:"total"`

	// Complete is false when a needed price was missing and counted as zero,
	// or when the scheme was unknown and the estimate is best-effort.
	Complete bool `json:"complete"`
}

// simulation accumulates energy cost and completeness.
type simulation struct {
	energy   decimal.Decimal
	complete bool
}

func (s *simulation) add(kwh float64, price *float64) {
	if !finite(kwh) {
		s.complete = false
		return
	}
	if kwh <= 0 {
		return
	}
	if !usable(price) {
		s.complete = false
		return
	}
	s.energy = s.energy.Add(decimal.NewFromFloat(kwh).Mul(decimal.NewFromFloat(*price)))
}

// Simulate estimates the monthly bill of o for usage u. It never fails;
// missing prices are counted as zero and mark the result incomplete, as does
// a non-finite consumption.
func Simulate(o offer.Offer, u Usage) Simulation {
	kwh := u.MonthlyKwh
	off := clampShare(u.OffPeakShare)
	s := simulation{complete: true}

	switch p := o.Pricing.(type) {
	case offer.FlatPricing:
		s.add(kwh, p.Base)

	case offer.PeakOffPeakPricing:
		s.add(kwh*off, p.OffPeak)
		s.add(kwh*(1-off), p.Peak)

	case offer.ColorTieredPricing:
		blue, white, red := normalizeColors(u.Colors)
		s.add(kwh*blue*off, p.BlueOffPeak)
		s.add(kwh*blue*(1-off), p.BluePeak)
		s.add(kwh*white*off, p.WhiteOffPeak)
		s.add(kwh*white*(1-off), p.WhitePeak)
		s.add(kwh*red*off, p.RedOffPeak)
		s.add(kwh*red*(1-off), p.RedPeak)

	case offer.CriticalPeakPricing:
		critical := kwh * clampShare(u.CriticalShare) * (1 - off)
		s.add(critical, p.CriticalPeak)
		s.add(kwh-critical, p.Normal)

	case offer.UnknownPricing:
		if p.Base != nil {
			s.add(kwh, p.Base)
		} else {
			s.add(kwh*off, p.OffPeak)
			s.add(kwh*(1-off), p.Peak)
		}
		s.complete = false

	default:
		s.complete = false
	}

	subscription := decimal.Zero
	if o.Subscription.Valid {
		subscription = o.Subscription.Decimal
	} else {
		s.complete = false
	}

	energy := s.energy.Round(fractionDigits)
	return Simulation{
		OfferID:      o.ID,
		Energy:       energy,
		Subscription: subscription,
		Total:        energy.Add(subscription).Round(fractionDigits),
		Complete:     s.complete,
	}
}

// Savings returns how much cheaper candidate is than reference per month.
// A negative value means candidate costs more.
func Savings(reference, candidate Simulation) decimal.Decimal {
	return reference.Total.Sub(candidate.Total)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clampShare(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func normalizeColors(c ColorShare) (float64, float64, float64) {
	blue, white, red := colorWeight(c.Blue), colorWeight(c.White), colorWeight(c.Red)
	total := blue + white + red
	if total == 0 || !finite(total) {
		d := DefaultUsage(0).Colors
		blue, white, red = d.Blue, d.White, d.Red
		total = blue + white + red
	}
	return blue / total, white / total, red / total
}

// colorWeight maps negative and non-finite weights to zero.
func colorWeight(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return v
}
