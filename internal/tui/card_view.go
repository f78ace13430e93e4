package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/wattfocus/internal/offer"
	"github.com/rshade/wattfocus/internal/pricing"
)

const (
	cardMinWidth   = 34
	cardLabelWidth = 18
	cardGap        = 2
)

// CardOptions tunes RenderCard.
type CardOptions struct {
	// Title is shown above the offer name, e.g. "Your offer".
	Title string

	// Highlight marks the line billed right now; empty for none.
	Highlight pricing.LineKey

	// Simulation, when set, adds an estimated monthly bill.
	Simulation *pricing.Simulation
	Formatter  *pricing.Formatter
	MonthlyKwh float64

	// Reference, when set with Simulation, is the primary offer's estimate;
	// the card then shows the monthly difference.
	Reference *pricing.Simulation

	Width int
}

// RenderCard renders one offer's pricing card.
func RenderCard(b pricing.PriceBreakdown, opts CardOptions) string {
	width := max(opts.Width, cardMinWidth)
	var sb strings.Builder

	if opts.Title != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(ColorMuted).Render(opts.Title))
		sb.WriteString("\n")
	}

	name := b.OfferName
	if name == "" {
		name = string(b.OfferID)
	}
	sb.WriteString(lipgloss.NewStyle().Foreground(ColorHeader).Bold(true).Render(name))
	if b.Scheme != "" {
		sb.WriteString(" ")
		sb.WriteString(lipgloss.NewStyle().Foreground(ColorMuted).Render(schemeLabel(b.Scheme)))
	}
	sb.WriteString("\n")

	if b.Fallback {
		note := fmt.Sprintf("Unrecognized pricing %q: showing available prices", string(b.Scheme))
		sb.WriteString(lipgloss.NewStyle().Foreground(ColorWarning).Italic(true).Width(width - cardGap).Render(note))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	group := ""
	for _, line := range b.Lines {
		if line.Kind != pricing.KindPerKwh {
			continue
		}
		if line.Group != "" && line.Group != group {
			group = line.Group
			sb.WriteString(RenderGroupHeader(group))
			sb.WriteString("\n")
		}
		sb.WriteString(renderLine(line, line.Key == opts.Highlight && opts.Highlight != ""))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	for _, line := range b.Lines {
		if line.Kind == pricing.KindPerKwh {
			continue
		}
		sb.WriteString(renderLine(line, false))
		sb.WriteString("\n")
	}

	if opts.Simulation != nil && opts.Formatter != nil {
		sb.WriteString("\n")
		sb.WriteString(RenderSimulation(*opts.Simulation, opts.Formatter, opts.MonthlyKwh))
		if opts.Reference != nil {
			sb.WriteString("\n")
			sb.WriteString(RenderSavings(*opts.Reference, *opts.Simulation, opts.Formatter))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Width(width).
		Render(strings.TrimRight(sb.String(), "\n"))
}

func renderLine(line pricing.PriceLine, current bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel).Width(cardLabelWidth)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	marker := "  "

	if line.Alert {
		valueStyle = valueStyle.Foreground(ColorWarning)
		marker = IconAlert + " "
	}
	if current {
		valueStyle = valueStyle.Foreground(ColorHighlight)
		marker = IconCurrent + " "
	}
	if line.Value == pricing.Placeholder {
		valueStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	}

	return marker + labelStyle.Render(line.Label) + valueStyle.Render(line.Value)
}

// RenderGroupHeader renders a Tempo day-color heading in its color.
func RenderGroupHeader(group string) string {
	if group == "" {
		return ""
	}
	var c lipgloss.TerminalColor
	switch group {
	case pricing.GroupBlue:
		c = ColorTempoBlue
	case pricing.GroupWhite:
		c = ColorTempoWhite
	case pricing.GroupRed:
		c = ColorTempoRed
	default:
		c = ColorLabel
	}
	title := strings.ToUpper(group[:1]) + group[1:] + " days"
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(title)
}

// RenderSimulation renders an estimated monthly bill. Incomplete estimates
// are marked with "≈" and a note.
func RenderSimulation(s pricing.Simulation, f *pricing.Formatter, kwh float64) string {
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel).Width(cardLabelWidth)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue).Bold(true)

	prefix := ""
	if !s.Complete {
		prefix = "≈ "
	}
	out := "  " + labelStyle.Render(fmt.Sprintf("Est. %g kWh/mo", kwh)) + valueStyle.Render(prefix+f.Amount(s.Total))
	if !s.Complete {
		out += "\n" + lipgloss.NewStyle().Foreground(ColorMuted).Italic(true).Render("  some prices missing, counted as 0")
	}
	return out
}

// RenderSavings renders how candidate compares with reference per month.
func RenderSavings(reference, candidate pricing.Simulation, f *pricing.Formatter) string {
	diff := pricing.Savings(reference, candidate)
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel).Width(cardLabelWidth)
	switch diff.Sign() {
	case 1:
		return "  " + labelStyle.Render("vs your offer") +
			lipgloss.NewStyle().Foreground(ColorOK).Bold(true).Render(IconArrowDown+" "+f.Amount(diff)+" cheaper")
	case -1:
		return "  " + labelStyle.Render("vs your offer") +
			lipgloss.NewStyle().Foreground(ColorWarning).Bold(true).Render(IconArrowUp+" "+f.Amount(diff.Neg())+" dearer")
	default:
		return "  " + labelStyle.Render("vs your offer") +
			lipgloss.NewStyle().Foreground(ColorMuted).Render("same price")
	}
}

// RenderBanner renders the comparison banner with its return hint.
func RenderBanner(b *pricing.Banner) string {
	if b == nil {
		return ""
	}
	msg := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true).Render(b.Message)
	hint := lipgloss.NewStyle().Foreground(ColorMuted).Render(fmt.Sprintf("[p] %s", b.ReturnLabel))
	return msg + "  " + hint
}

// RenderSideBySide places the primary and comparison cards next to each other.
func RenderSideBySide(primary, comparison string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, primary, strings.Repeat(" ", cardGap), comparison)
}

// RenderMissingOffer renders the comparison slot for an id the catalog does not hold.
func RenderMissingOffer(id offer.ID, width int) string {
	msg := fmt.Sprintf("Offer %q is not in the catalog.\nPress r to reset or c to pick another.", string(id))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1).
		Width(max(width, cardMinWidth)).
		Foreground(ColorMuted).
		Render(msg)
}

func schemeLabel(s offer.Scheme) string {
	switch s {
	case offer.SchemeFlat:
		return "· Base"
	case offer.SchemePeakOffPeak:
		return "· HC/HP"
	case offer.SchemeColorTiered:
		return "· Tempo"
	case offer.SchemeCriticalPeak:
		return "· EJP"
	default:
		return "· " + string(s)
	}
}
