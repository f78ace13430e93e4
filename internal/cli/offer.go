package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/wattfocus/internal/catalog"
	"github.com/rshade/wattfocus/internal/config"
	"github.com/rshade/wattfocus/internal/logging"
	"github.com/rshade/wattfocus/internal/offer"
	"github.com/rshade/wattfocus/internal/pricing"
	"github.com/rshade/wattfocus/internal/report"
	"github.com/rshade/wattfocus/internal/tui"
)

// ErrOfferNotFound is returned when the requested offer is not in the catalog.
var ErrOfferNotFound = errors.New("offer not found in catalog")

// ErrNotInteractive is returned by browse when stdout is not a terminal.
var ErrNotInteractive = errors.New("offer browse needs an interactive terminal; use offer show instead")

// ErrWatchNeedsFile is returned when --watch is used with a remote catalog.
var ErrWatchNeedsFile = errors.New("--watch needs a catalog file")

// simulationFlags are the usage and time flags shared by show and browse.
type simulationFlags struct {
	dayColor string
	at       string
	kwh      float64
}

func (f *simulationFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dayColor, "day-color", "", "Tempo day color: blue, white or red (default from simulation.day_color)")
	cmd.Flags().StringVar(&f.at, "at", "", "time of day HH:MM used to mark the applicable price (default now)")
	cmd.Flags().Float64Var(&f.kwh, "kwh", 0, "monthly consumption in kWh for the estimate (default from simulation.monthly_kwh)")
}

// resolve applies the flags on top of the simulation config.
func (f *simulationFlags) resolve(cfg *config.Config, now time.Time) (pricing.Usage, pricing.DayColor, time.Time, error) {
	usage := cfg.Simulation.Usage()
	if !config.ValidKwh(f.kwh) {
		return usage, "", now, fmt.Errorf("--kwh %v: %w", f.kwh, config.ErrInvalidKwh)
	}
	if f.kwh > 0 {
		usage.MonthlyKwh = f.kwh
	}

	color := cfg.Simulation.Color()
	if f.dayColor != "" {
		c, err := pricing.ParseDayColor(f.dayColor)
		if err != nil {
			return usage, "", now, err
		}
		color = c
	}

	at := now
	if f.at != "" {
		d, err := pricing.ParseClock(f.at)
		if err != nil {
			return usage, "", now, err
		}
		y, m, day := now.Date()
		at = time.Date(y, m, day, 0, 0, 0, 0, now.Location()).Add(d)
	}
	return usage, color, at, nil
}

// outputFormat returns the --output value or the configured default.
func outputFormat(flag string, cfg *config.Config) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flag))
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", config.ErrInvalidFormat, format)
	}
}

// NewOfferShowCmd creates the offer show command.
func NewOfferShowCmd() *cobra.Command {
	var (
		compare string
		output  string
		sim     simulationFlags
	)

	cmd := &cobra.Command{
		Use:   "show <offer-id>",
		Short: "Show an offer's prices, optionally next to a comparison offer",
		Example: `  # Show an offer
  wattfocus offer show edf-tempo

  # Compare with another offer for 250 kWh a month
  wattfocus offer show edf-tempo --compare engie-hchp --kwh 250

  # Machine-readable output
  wattfocus offer show edf-tempo --output ndjson`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetGlobalConfig()
			format, err := outputFormat(output, cfg)
			if err != nil {
				return err
			}
			usage, color, at, err := sim.resolve(cfg, time.Now())
			if err != nil {
				return err
			}

			c, err := loadCatalog(cmd, cfg)
			if err != nil {
				return err
			}
			primary, ok := c.Offer(offer.ID(args[0]))
			if !ok {
				return fmt.Errorf("%w: %s", ErrOfferNotFound, args[0])
			}

			f := newFormatter(cmd, cfg)
			s := report.BuildShow(report.ShowInput{
				Formatter:  f,
				Primary:    primary,
				Comparison: offer.ID(compare),
				Lookup:     c.Offer,
				Usage:      usage,
				DayColor:   color,
				Window:     cfg.Simulation.Window(),
				At:         at,
			})
			if s.Missing() {
				logging.FromContext(cmd.Context()).Warn().
					Str("comparison", compare).Msg("comparison offer not in catalog")
			}
			return renderShow(cmd.OutOrStdout(), format, s, f)
		},
	}

	cmd.Flags().StringVar(&compare, "compare", "", "offer id to compare with")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or ndjson")
	sim.register(cmd)
	return cmd
}

func renderShow(w io.Writer, format string, s report.Show, f *pricing.Formatter) error {
	switch format {
	case config.FormatJSON:
		return report.RenderShowJSON(w, s)
	case config.FormatNDJSON:
		return report.RenderShowNDJSON(w, s)
	}

	if tui.DetectOutputMode(false, false, false) == tui.OutputModePlain {
		return report.RenderShowTable(w, s, f)
	}
	_, err := fmt.Fprintln(w, renderStyledShow(s, f))
	return err
}

// renderStyledShow renders the show result as lipgloss cards.
func renderStyledShow(s report.Show, f *pricing.Formatter) string {
	var out []string
	if s.Banner != nil {
		out = append(out, tui.RenderBanner(s.Banner))
	}
	primary := tui.RenderCard(s.Primary.Breakdown, tui.CardOptions{
		Title:      "Your offer",
		Highlight:  s.Primary.Applicable,
		Simulation: &s.Primary.Simulation,
		Formatter:  f,
		MonthlyKwh: s.MonthlyKwh,
	})

	switch {
	case s.Comparison != nil:
		comparison := tui.RenderCard(s.Comparison.Breakdown, tui.CardOptions{
			Title:      "Comparison",
			Highlight:  s.Comparison.Applicable,
			Simulation: &s.Comparison.Simulation,
			Reference:  &s.Primary.Simulation,
			Formatter:  f,
			MonthlyKwh: s.MonthlyKwh,
		})
		out = append(out, tui.RenderSideBySide(primary, comparison))
	case s.Missing():
		out = append(out, tui.RenderSideBySide(primary, tui.RenderMissingOffer(s.ComparisonOfferID, 0)))
	default:
		out = append(out, primary)
	}
	return strings.Join(out, "\n\n")
}

// NewOfferGroupsCmd creates the offer groups command.
func NewOfferGroupsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "groups <offer-id>",
		Short: "List the offers that can be compared with an offer, by provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetGlobalConfig()
			format, err := outputFormat(output, cfg)
			if err != nil {
				return err
			}
			c, err := loadCatalog(cmd, cfg)
			if err != nil {
				return err
			}
			primary, ok := c.Offer(offer.ID(args[0]))
			if !ok {
				return fmt.Errorf("%w: %s", ErrOfferNotFound, args[0])
			}

			f := newFormatter(cmd, cfg)
			view := f.NewView(pricing.Input{
				SelectedOffer:    primary,
				CompatibleOffers: c.Compatible(primary.ID),
				Providers:        c.Providers,
			})
			groups := report.BuildGroups(view.Groups)

			w := cmd.OutOrStdout()
			switch format {
			case config.FormatJSON:
				return report.RenderGroupsJSON(w, groups)
			case config.FormatNDJSON:
				return report.RenderGroupsNDJSON(w, groups)
			default:
				return report.RenderGroupsTable(w, groups)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or ndjson")
	return cmd
}

// NewOfferBrowseCmd creates the interactive offer browser.
func NewOfferBrowseCmd() *cobra.Command {
	var (
		compare string
		watch   bool
		sim     simulationFlags
	)

	cmd := &cobra.Command{
		Use:   "browse <offer-id>",
		Short: "Browse and compare offers interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.DetectOutputMode(false, false, false) != tui.OutputModeInteractive {
				return ErrNotInteractive
			}
			cfg := config.GetGlobalConfig()
			if !cmd.Flags().Changed("watch") {
				watch = cfg.Catalog.Watch
			}
			return runBrowse(cmd, cfg, offer.ID(args[0]), offer.ID(compare), watch, sim)
		},
	}

	cmd.Flags().StringVar(&compare, "compare", "", "offer id to start comparing with")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload when the catalog file changes")
	sim.register(cmd)
	return cmd
}

func runBrowse(cmd *cobra.Command, cfg *config.Config, primary, compare offer.ID, watch bool, sim simulationFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	usage, color, _, err := sim.resolve(cfg, time.Now())
	if err != nil {
		return err
	}
	c, err := loadCatalog(cmd, cfg)
	if err != nil {
		return err
	}

	params := tui.OfferParams{
		Primary:   primary,
		Catalog:   c,
		Formatter: newFormatter(cmd, cfg),
		Compare:   compare,
		Usage:     usage,
		DayColor:  color,
		Window:    cfg.Simulation.Window(),
	}
	if sim.at != "" {
		params.Now = func() time.Time {
			_, _, at, _ := sim.resolve(cfg, time.Now())
			return at
		}
	}

	if watch {
		path, _ := catalogLocation(cmd, cfg)
		if path == "" {
			return ErrWatchNeedsFile
		}
		w, werr := catalog.NewWatcher(path)
		if werr != nil {
			return fmt.Errorf("watching catalog: %w", werr)
		}
		if werr = w.Start(ctx); werr != nil {
			return fmt.Errorf("watching catalog: %w", werr)
		}
		defer w.Stop()
		params.Updates = w.Updates()
		log.Debug().Str("path", path).Msg("watching catalog")
	}

	model, err := tui.NewOfferModel(ctx, params)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
