package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rshade/wattfocus/internal/offer"
	"github.com/rshade/wattfocus/internal/pricing"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

const applicableMarker = "*"

// RenderShowTable writes the breakdown cards as aligned text.
func RenderShowTable(w io.Writer, s Show, f *pricing.Formatter) error {
	if s.Banner != nil {
		if _, err := fmt.Fprintf(w, "%s  [p] %s\n\n", s.Banner.Message, s.Banner.ReturnLabel); err != nil {
			return err
		}
	}
	if err := renderCardTable(w, "Your offer", s.Primary, f, s.MonthlyKwh); err != nil {
		return err
	}

	switch {
	case s.Comparison != nil:
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := renderCardTable(w, "Comparison", *s.Comparison, f, s.MonthlyKwh); err != nil {
			return err
		}
		if s.Savings != nil {
			if _, err := fmt.Fprintf(w, "\nMonthly difference: %s\n", savingsText(s, f)); err != nil {
				return err
			}
		}
	case s.Missing():
		if _, err := fmt.Fprintf(w, "\nComparison offer %q is not in the catalog.\n", string(s.ComparisonOfferID)); err != nil {
			return err
		}
	}
	return nil
}

func savingsText(s Show, f *pricing.Formatter) string {
	switch s.Savings.Sign() {
	case 1:
		return f.Amount(*s.Savings) + " cheaper"
	case -1:
		return f.Amount(s.Savings.Neg()) + " dearer"
	default:
		return "same price"
	}
}

func renderCardTable(w io.Writer, title string, c Card, f *pricing.Formatter, kwh float64) error {
	b := c.Breakdown
	name := b.OfferName
	if name == "" {
		name = string(b.OfferID)
	}
	if _, err := fmt.Fprintf(w, "%s: %s (%s)\n", title, name, b.Scheme); err != nil {
		return err
	}
	if b.Fallback {
		if _, err := fmt.Fprintf(w, "Unrecognized pricing %q: showing available prices\n", string(b.Scheme)); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	fmt.Fprintln(tw, "\tLINE\tVALUE\tGROUP")
	for _, l := range b.Lines {
		marker := ""
		if l.Key == c.Applicable && c.Applicable != "" {
			marker = applicableMarker
		}
		if l.Alert {
			marker += "!"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, l.Label, l.Value, l.Group)
	}

	estimate := f.Amount(c.Simulation.Total)
	if !c.Simulation.Complete {
		estimate = "≈ " + estimate
	}
	fmt.Fprintf(tw, "\t%s\t%s\t\n", fmt.Sprintf("Est. %g kWh/mo", kwh), estimate)
	return tw.Flush()
}

// RenderShowJSON writes s as indented JSON.
func RenderShowJSON(w io.Writer, s Show) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// lineRow is one NDJSON record of "offer show".
type lineRow struct {
	Role       Role         `json:"role"`
	OfferID    offer.ID     `json:"offer_id"`
	Scheme     offer.Scheme `json:"scheme"`
	Applicable bool         `json:"applicable,omitempty"`
	pricing.PriceLine
}

// RenderShowNDJSON writes one JSON object per price line.
func RenderShowNDJSON(w io.Writer, s Show) error {
	cards := []struct {
		role Role
		card *Card
	}{{RolePrimary, &s.Primary}, {RoleComparison, s.Comparison}}

	for _, c := range cards {
		if c.card == nil {
			continue
		}
		for _, l := range c.card.Breakdown.Lines {
			row := lineRow{
				Role:       c.role,
				OfferID:    c.card.Breakdown.OfferID,
				Scheme:     c.card.Breakdown.Scheme,
				Applicable: l.Key == c.card.Applicable && c.card.Applicable != "",
				PriceLine:  l,
			}
			if err := writeLine(w, row); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderGroupsTable writes candidates grouped under provider headings.
func RenderGroupsTable(w io.Writer, groups []Group) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, "No comparable offers.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	fmt.Fprintln(tw, "PROVIDER\tOFFER ID\tNAME\tSCHEME")
	for _, g := range groups {
		for i, c := range g.Offers {
			provider := ""
			if i == 0 {
				provider = g.ProviderName
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", provider, c.OfferID, c.OfferName, c.Scheme)
		}
	}
	return tw.Flush()
}

// RenderGroupsJSON writes groups as indented JSON.
func RenderGroupsJSON(w io.Writer, groups []Group) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(groups); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// RenderGroupsNDJSON writes one JSON object per candidate.
func RenderGroupsNDJSON(w io.Writer, groups []Group) error {
	for _, g := range groups {
		for _, c := range g.Offers {
			if err := writeLine(w, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling row: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("writing NDJSON line: %w", err)
	}
	return nil
}
