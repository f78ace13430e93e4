// Package catalog loads tariff offers and providers from files or a REST
// backend and indexes them for the offer card.
package catalog

import (
	"fmt"

	"github.com/rshade/wattfocus/internal/offer"
)

// Document is the on-disk and on-the-wire catalog layout.
type Document struct {
	SchemaVersion string           `json:"schema_version,omitempty" yaml:"schema_version,omitempty"`
	Providers     []offer.Provider `json:"providers"                yaml:"providers"`
	Offers        []offer.Record   `json:"offers"                   yaml:"offers"`
}

// Catalog is an indexed, validated set of offers and providers.
type Catalog struct {
	SchemaVersion string
	Providers     []offer.Provider
	Offers        []offer.Offer

	// Skipped lists records that could not be converted, in input order.
	Skipped []error

	offerIdx    map[offer.ID]int
	providerIdx map[offer.ProviderID]int
}

// New builds a catalog from a decoded document. Records without an id and
// duplicate ids are skipped and reported in Skipped rather than failing the
// whole catalog. The schema version must be supported.
func New(doc Document) (*Catalog, error) {
	version, err := CheckSchema(doc.SchemaVersion)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		SchemaVersion: version,
		offerIdx:      make(map[offer.ID]int, len(doc.Offers)),
		providerIdx:   make(map[offer.ProviderID]int, len(doc.Providers)),
	}

	for _, p := range doc.Providers {
		if _, dup := c.providerIdx[p.ID]; dup {
			continue
		}
		c.providerIdx[p.ID] = len(c.Providers)
		c.Providers = append(c.Providers, p)
	}

	for i, rec := range doc.Offers {
		o, convErr := rec.ToOffer()
		if convErr != nil {
			c.Skipped = append(c.Skipped, fmt.Errorf("offer #%d: %w", i, convErr))
			continue
		}
		if _, dup := c.offerIdx[o.ID]; dup {
			c.Skipped = append(c.Skipped, fmt.Errorf("offer #%d: %w: %s", i, ErrDuplicateOffer, o.ID))
			continue
		}
		c.offerIdx[o.ID] = len(c.Offers)
		c.Offers = append(c.Offers, o)
	}

	return c, nil
}

// Offer returns the offer with id.
func (c *Catalog) Offer(id offer.ID) (offer.Offer, bool) {
	i, ok := c.offerIdx[id]
	if !ok {
		return offer.Offer{}, false
	}
	return c.Offers[i], true
}

// Provider returns the provider with id.
func (c *Catalog) Provider(id offer.ProviderID) (offer.Provider, bool) {
	i, ok := c.providerIdx[id]
	if !ok {
		return offer.Provider{}, false
	}
	return c.Providers[i], true
}

// Compatible returns every offer other than primary, in catalog order.
func (c *Catalog) Compatible(primary offer.ID) []offer.Offer {
	out := make([]offer.Offer, 0, len(c.Offers))
	for _, o := range c.Offers {
		if o.ID != primary {
			out = append(out, o)
		}
	}
	return out
}

// Document converts the catalog back to its wire layout.
func (c *Catalog) Document() Document {
	doc := Document{
		SchemaVersion: c.SchemaVersion,
		Providers:     append([]offer.Provider(nil), c.Providers...),
		Offers:        make([]offer.Record, 0, len(c.Offers)),
	}
	for _, o := range c.Offers {
		doc.Offers = append(doc.Offers, offer.RecordFromOffer(o))
	}
	return doc
}
