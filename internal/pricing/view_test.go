package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattfocus/internal/offer"
	"github.com/rshade/wattfocus/internal/pricing"
)

func TestNewView(t *testing.T) {
	f := pricing.NewFormatter("fr-FR", "EUR")
	primary := offer.Offer{ID: "p", Name: "Base EDF", ProviderID: "edf", Pricing: offer.FlatPricing{}}
	other := offer.Offer{ID: "o", Name: "Tempo", ProviderID: "edf", Pricing: offer.ColorTieredPricing{}}
	providers := []offer.Provider{{ID: "edf", Name: "EDF"}}

	t.Run("primary card without comparison", func(t *testing.T) {
		v := f.NewView(pricing.Input{
			SelectedOffer:    primary,
			CompatibleOffers: []offer.Offer{other},
			Providers:        providers,
		})

		assert.Nil(t, v.Banner)
		assert.False(t, v.ComparisonActive)
		assert.Equal(t, offer.ID("p"), v.Breakdown.OfferID)
		require.Len(t, v.Groups, 1)
	})

	t.Run("comparison card shows the banner", func(t *testing.T) {
		v := f.NewView(pricing.Input{
			SelectedOffer:     other,
			IsComparisonMode:  true,
			OriginalOffer:     &primary,
			Providers:         providers,
			ComparisonOfferID: "o",
		})

		require.NotNil(t, v.Banner)
		assert.Equal(t, offer.ID("p"), v.Banner.PrimaryID)
		assert.Contains(t, v.Banner.Message, "Base EDF")
		assert.True(t, v.ComparisonActive)
	})

	t.Run("comparison id equal to the primary is not active", func(t *testing.T) {
		v := f.NewView(pricing.Input{
			SelectedOffer:     primary,
			ComparisonOfferID: "p",
		})
		assert.False(t, v.ComparisonActive)
		assert.Empty(t, v.ComparisonOfferID)
	})

	t.Run("comparison mode without original has no banner", func(t *testing.T) {
		v := f.NewView(pricing.Input{SelectedOffer: other, IsComparisonMode: true})
		assert.Nil(t, v.Banner)
	})
}

func TestNewBanner_FallsBackToID(t *testing.T) {
	b := pricing.NewBanner(offer.Offer{ID: "anon"})
	assert.Equal(t, "anon", b.PrimaryName)
}
