package tui

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattfocus/internal/pricing"
)

func TestRenderCard(t *testing.T) {
	c := testCatalog(t)
	f := pricing.NewFormatter("en-US", "EUR")
	tempo, ok := c.Offer("edf-tempo")
	require.True(t, ok)

	sim := pricing.Simulate(tempo, pricing.DefaultUsage(400))
	out := RenderCard(f.Breakdown(tempo), CardOptions{
		Title:      "Your offer",
		Highlight:  pricing.KeyRedPeak,
		Simulation: &sim,
		Formatter:  f,
		MonthlyKwh: 400,
		Width:      60,
	})

	assert.Contains(t, out, "Your offer")
	assert.Contains(t, out, "Tempo")
	assert.Contains(t, out, "Blue days")
	assert.Contains(t, out, "Red days")
	assert.Contains(t, out, IconCurrent, "the billed line is marked")
	assert.Contains(t, out, "Est. 400 kWh/mo")
}

func TestRenderCard_Fallback(t *testing.T) {
	b := pricing.PriceBreakdown{OfferID: "x", Scheme: "DYNAMIC", Fallback: true}
	out := RenderCard(b, CardOptions{Width: 60})
	assert.Contains(t, out, "x", "id stands in for a missing name")
	assert.Contains(t, out, `Unrecognized pricing "DYNAMIC"`)
}

func TestRenderGroupHeader(t *testing.T) {
	assert.Contains(t, RenderGroupHeader(pricing.GroupWhite), "White days")
	assert.Empty(t, RenderGroupHeader(""))
}

func TestRenderSavings(t *testing.T) {
	f := pricing.NewFormatter("en-US", "EUR")
	ref := pricing.Simulation{Total: decimal.NewFromInt(100), Complete: true}
	cheaper := pricing.Simulation{Total: decimal.NewFromInt(80), Complete: true}
	dearer := pricing.Simulation{Total: decimal.NewFromInt(120), Complete: true}

	assert.Contains(t, RenderSavings(ref, cheaper, f), "cheaper")
	assert.Contains(t, RenderSavings(ref, dearer, f), "dearer")
	assert.Contains(t, RenderSavings(ref, ref, f), "same price")
}

func TestRenderSimulation_Incomplete(t *testing.T) {
	f := pricing.NewFormatter("fr-FR", "EUR")
	out := RenderSimulation(pricing.Simulation{Total: decimal.NewFromInt(10)}, f, 250)
	assert.Contains(t, out, "≈")
	assert.Contains(t, out, "some prices missing")
}

func TestRenderBanner(t *testing.T) {
	assert.Empty(t, RenderBanner(nil))

	c := testCatalog(t)
	tempo, _ := c.Offer("edf-tempo")
	out := RenderBanner(pricing.NewBanner(tempo))
	assert.Contains(t, out, "Comparing with your current offer: Tempo")
	assert.Contains(t, out, "[p] Return to primary offer")
}

func TestRenderMissingOffer(t *testing.T) {
	out := RenderMissingOffer("ghost", 40)
	assert.Contains(t, out, "ghost")
	assert.Contains(t, out, "Press r to reset")
}
