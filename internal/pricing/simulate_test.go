package pricing_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattfocus/internal/offer"
	"github.com/rshade/wattfocus/internal/pricing"
)

func TestSimulate_Flat(t *testing.T) {
	sim := pricing.Simulate(offer.Offer{
		ID:           "flat",
		Subscription: fee("12.00"),
		Pricing:      offer.FlatPricing{Base: offer.Float(0.25)},
	}, pricing.DefaultUsage(400))

	assert.True(t, sim.Complete)
	assert.Equal(t, "100", sim.Energy.String())
	assert.Equal(t, "112", sim.Total.String())
}

func TestSimulate_PeakOffPeak(t *testing.T) {
	u := pricing.Usage{MonthlyKwh: 100, OffPeakShare: 0.5}
	sim := pricing.Simulate(offer.Offer{
		Subscription: fee("10"),
		Pricing:      offer.PeakOffPeakPricing{OffPeak: offer.Float(0.2), Peak: offer.Float(0.3)},
	}, u)

	assert.True(t, sim.Complete)
	assert.True(t, decimal.NewFromInt(25).Equal(sim.Energy), "got %s", sim.Energy)
	assert.True(t, decimal.NewFromInt(35).Equal(sim.Total), "got %s", sim.Total)
}

func TestSimulate_ColorTieredNormalizesShares(t *testing.T) {
	u := pricing.Usage{
		MonthlyKwh:   100,
		OffPeakShare: 0,
		Colors:       pricing.ColorShare{Blue: 1, White: 1, Red: 2},
	}
	all := offer.Float(0.1)
	red := offer.Float(0.5)
	sim := pricing.Simulate(offer.Offer{
		Subscription: fee("0"),
		Pricing: offer.ColorTieredPricing{
			BlueOffPeak: all, BluePeak: all,
			WhiteOffPeak: all, WhitePeak: all,
			RedOffPeak: all, RedPeak: red,
		},
	}, u)

	// 25 kWh blue + 25 kWh white at 0.10, 50 kWh red peak at 0.50.
	assert.True(t, decimal.NewFromInt(30).Equal(sim.Energy), "got %s", sim.Energy)
	assert.True(t, sim.Complete)
}

func TestSimulate_MissingPriceIsIncomplete(t *testing.T) {
	sim := pricing.Simulate(offer.Offer{
		Subscription: fee("10"),
		Pricing:      offer.PeakOffPeakPricing{OffPeak: offer.Float(0.2)},
	}, pricing.Usage{MonthlyKwh: 100, OffPeakShare: 0.5})

	assert.False(t, sim.Complete)
	assert.True(t, decimal.NewFromInt(10).Equal(sim.Energy), "got %s", sim.Energy)
}

func TestSimulate_UnknownSchemeIsBestEffort(t *testing.T) {
	sim := pricing.Simulate(offer.Offer{
		Subscription: fee("5"),
		Pricing:      offer.UnknownPricing{Name: "X", Base: offer.Float(0.2)},
	}, pricing.Usage{MonthlyKwh: 50})

	assert.False(t, sim.Complete)
	assert.True(t, decimal.NewFromInt(15).Equal(sim.Total), "got %s", sim.Total)
}

func TestSimulate_MissingSubscription(t *testing.T) {
	sim := pricing.Simulate(offer.Offer{
		Pricing: offer.FlatPricing{Base: offer.Float(0.2)},
	}, pricing.Usage{MonthlyKwh: 10})

	assert.False(t, sim.Complete)
	assert.True(t, decimal.NewFromInt(2).Equal(sim.Total), "got %s", sim.Total)
}

func TestSimulate_NonFiniteUsage(t *testing.T) {
	tempo := offer.Offer{
		Subscription: fee("10"),
		Pricing: offer.ColorTieredPricing{
			BlueOffPeak: offer.Float(0.1), BluePeak: offer.Float(0.1),
			WhiteOffPeak: offer.Float(0.1), WhitePeak: offer.Float(0.1),
			RedOffPeak: offer.Float(0.1), RedPeak: offer.Float(0.1),
		},
	}
	ejp := offer.Offer{
		Subscription: fee("10"),
		Pricing:      offer.CriticalPeakPricing{Normal: offer.Float(0.1), CriticalPeak: offer.Float(0.5)},
	}
	flat := offer.Offer{
		Subscription: fee("10"),
		Pricing:      offer.FlatPricing{Base: offer.Float(0.2)},
	}

	nanShare := pricing.DefaultUsage(100)
	nanShare.OffPeakShare = math.NaN()
	infColors := pricing.DefaultUsage(100)
	infColors.Colors = pricing.ColorShare{Blue: math.Inf(1), White: math.NaN(), Red: 1}
	nanCritical := pricing.DefaultUsage(100)
	nanCritical.CriticalShare = math.NaN()

	tests := []struct {
		name         string
		offer        offer.Offer
		usage        pricing.Usage
		wantComplete bool
	}{
		{"infinite kwh", flat, pricing.DefaultUsage(math.Inf(1)), false},
		{"nan kwh", tempo, pricing.DefaultUsage(math.NaN()), false},
		{"nan off-peak share", tempo, nanShare, true},
		{"non-finite color weights", tempo, infColors, true},
		{"nan critical share", ejp, nanCritical, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sim pricing.Simulation
			require.NotPanics(t, func() { sim = pricing.Simulate(tt.offer, tt.usage) })
			assert.Equal(t, tt.wantComplete, sim.Complete)
			assert.True(t, sim.Total.GreaterThanOrEqual(sim.Subscription), "got %s", sim.Total)
		})
	}

	t.Run("nan off-peak share bills everything at peak", func(t *testing.T) {
		u := pricing.Usage{MonthlyKwh: 100, OffPeakShare: math.NaN()}
		sim := pricing.Simulate(offer.Offer{
			Subscription: fee("0"),
			Pricing:      offer.PeakOffPeakPricing{OffPeak: offer.Float(0.2), Peak: offer.Float(0.3)},
		}, u)
		assert.True(t, decimal.NewFromInt(30).Equal(sim.Energy), "got %s", sim.Energy)
	})
}

func TestSavings(t *testing.T) {
	ref := pricing.Simulation{Total: decimal.NewFromInt(100)}
	cand := pricing.Simulation{Total: decimal.RequireFromString("87.50")}
	assert.Equal(t, "12.5", pricing.Savings(ref, cand).String())
}
