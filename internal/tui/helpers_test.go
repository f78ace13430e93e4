package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/wattfocus/internal/catalog"
)

const testCatalogYAML = `
schema_version: "1.0.0"
providers:
  - id: edf
    name: EDF
  - id: engie
    name: Engie
offers:
  - id: edf-tempo
    name: Tempo
    provider_id: edf
    offer_type: TEMPO
    subscription_price: "15.50"
    power_kva: 9
    tempo_blue_hc: 0.1234
    tempo_blue_hp: 0.1590
    tempo_white_hc: 0.1412
    tempo_white_hp: 0.1728
    tempo_red_hc: 0.1496
    tempo_red_hp: 0.6586
  - id: edf-base
    name: Tarif Bleu Base
    provider_id: edf
    offer_type: BASE
    subscription_price: "12.44"
    base_price: 0.2516
  - id: engie-hchp
    name: Elec Reference
    provider_id: engie
    offer_type: HC_HP
    subscription_price: "13.10"
    hc_price: 0.2068
    hp_price: 0.2700
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	doc, err := catalog.Decode([]byte(testCatalogYAML), catalog.FormatYAML)
	require.NoError(t, err)
	c, err := catalog.New(doc)
	require.NoError(t, err)
	return c
}
