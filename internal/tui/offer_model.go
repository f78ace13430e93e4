package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/wattfocus/internal/catalog"
	"github.com/rshade/wattfocus/internal/comparison"
	"github.com/rshade/wattfocus/internal/logging"
	"github.com/rshade/wattfocus/internal/offer"
	"github.com/rshade/wattfocus/internal/pricing"
	listview "github.com/rshade/wattfocus/internal/tui/list"
)

// ErrOfferNotFound is returned when the primary offer is not in the catalog.
var ErrOfferNotFound = errors.New("offer not found in catalog")

const (
	defaultWidth         = 100
	defaultHeight        = 30
	dropdownMinRows      = 5
	filterInputCharLimit = 40
	filterInputWidth     = 30
	cardBorderAndPadding = 4
	sideBySideMinWidth   = 2*(cardMinWidth+cardBorderAndPadding) + cardGap
)

// OfferParams configures NewOfferModel.
type OfferParams struct {
	Primary   offer.ID
	Catalog   *catalog.Catalog
	Formatter *pricing.Formatter

	// Compare preselects a comparison offer; empty for none.
	Compare offer.ID

	Usage    pricing.Usage
	DayColor pricing.DayColor
	Window   pricing.OffPeakWindow

	// Now defaults to time.Now.
	Now func() time.Time

	// Updates, when set, delivers catalog reloads from a catalog.Watcher.
	Updates <-chan catalog.Update

	// OnChange is told about every comparison change after the card is rebuilt.
	OnChange comparison.ChangeFunc
}

// catalogUpdateMsg carries one watcher result. closed is set when the
// watcher has stopped.
type catalogUpdateMsg struct {
	update catalog.Update
	closed bool
}

// OfferModel is the bubbletea model for browsing and comparing offers.
type OfferModel struct {
	ctx    context.Context
	params OfferParams

	catalog   *catalog.Catalog
	primary   offer.Offer
	selection *comparison.Selection

	view        pricing.View
	compareView *pricing.View
	simulations map[offer.ID]pricing.Simulation

	picker    *listview.Model[Entry]
	filter    textinput.Model
	filtering bool

	keys KeyMap
	help help.Model

	width  int
	height int
	status string
	quit   bool
}

// NewOfferModel builds the browser for p.Primary. It fails only when the
// primary offer is not in the catalog.
func NewOfferModel(ctx context.Context, p OfferParams) (*OfferModel, error) {
	if p.Catalog == nil {
		return nil, fmt.Errorf("%w: %s", ErrOfferNotFound, p.Primary)
	}
	primary, ok := p.Catalog.Offer(p.Primary)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOfferNotFound, p.Primary)
	}
	if p.Formatter == nil {
		p.Formatter = pricing.NewFormatter("", "")
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.DayColor == "" {
		p.DayColor = pricing.ColorBlue
	}
	if p.Window == (pricing.OffPeakWindow{}) {
		p.Window = pricing.DefaultOffPeakWindow()
	}

	ti := textinput.New()
	ti.Placeholder = "Filter offers..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth

	m := &OfferModel{
		ctx:         ctx,
		params:      p,
		catalog:     p.Catalog,
		primary:     primary,
		simulations: make(map[offer.ID]pricing.Simulation),
		filter:      ti,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.selection = comparison.Restore(primary.ID, p.Compare, m.onComparisonChange)
	m.picker = listview.New[Entry](nil, m.dropdownRows(), m.renderEntry, Entry.Selectable)
	m.rebuild()
	return m, nil
}

// Selection exposes the comparison state.
func (m *OfferModel) Selection() *comparison.Selection {
	return m.selection
}

// CardView returns the primary card's view model.
func (m *OfferModel) CardView() pricing.View {
	return m.view
}

// ComparisonView returns the comparison card's view model, or nil.
func (m *OfferModel) ComparisonView() *pricing.View {
	return m.compareView
}

// Status returns the last status message.
func (m *OfferModel) Status() string {
	return m.status
}

// Init starts listening for catalog reloads when a watcher is attached.
func (m *OfferModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m *OfferModel) waitForUpdate() tea.Cmd {
	updates := m.params.Updates
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-updates
		return catalogUpdateMsg{update: u, closed: !ok}
	}
}

// Update handles messages.
func (m *OfferModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.picker.SetHeight(m.dropdownRows())
		return m, nil

	case catalogUpdateMsg:
		return m.handleCatalogUpdate(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *OfferModel) handleCatalogUpdate(msg catalogUpdateMsg) (tea.Model, tea.Cmd) {
	log := logging.FromContext(m.ctx)
	if msg.closed {
		m.params.Updates = nil
		return m, nil
	}
	if msg.update.Err != nil {
		m.status = "Catalog reload failed: " + msg.update.Err.Error()
		log.Warn().Str("component", "tui").Err(msg.update.Err).Msg("catalog reload failed")
		return m, m.waitForUpdate()
	}

	m.catalog = msg.update.Catalog
	if o, ok := m.catalog.Offer(m.primary.ID); ok {
		m.primary = o
		m.status = fmt.Sprintf("Catalog reloaded: %d offers", len(m.catalog.Offers))
	} else {
		m.status = fmt.Sprintf("Catalog reloaded, but %s is no longer listed", m.primary.ID)
	}
	m.simulations = make(map[offer.ID]pricing.Simulation)
	m.rebuild()
	log.Debug().Str("component", "tui").Int("offers", len(m.catalog.Offers)).Msg("catalog reloaded")
	return m, m.waitForUpdate()
}

func (m *OfferModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		m.quit = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.selection.DropdownOpen() {
		return m.handleDropdownKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Compare):
		m.selection.ToggleDropdown()
		m.picker.Select(func(e Entry) bool { return e.OfferID == m.currentTarget() })
	case key.Matches(msg, m.keys.Reset):
		m.selection.Reset()
	case key.Matches(msg, m.keys.Primary):
		m.selection.ReturnToPrimary()
	}
	return m, nil
}

func (m *OfferModel) handleDropdownKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Compare), key.Matches(msg, m.keys.Close):
		m.selection.CloseDropdown()
	case key.Matches(msg, m.keys.Up):
		m.picker.Up()
	case key.Matches(msg, m.keys.Down):
		m.picker.Down()
	case key.Matches(msg, m.keys.Select):
		if e, ok := m.picker.Current(); ok {
			m.selection.Select(e.OfferID)
		}
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Reset):
		m.selection.Reset()
	}
	return m, nil
}

func (m *OfferModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.rebuildEntries()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyUp:
		m.picker.Up()
		return m, nil
	case tea.KeyDown:
		m.picker.Down()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.rebuildEntries()
	return m, cmd
}

// onComparisonChange runs for every selection change.
func (m *OfferModel) onComparisonChange(target offer.ID, ok bool) {
	m.rebuild()
	logging.FromContext(m.ctx).Debug().
		Str("component", "tui").
		Str("primary", string(m.primary.ID)).
		Str("target", string(target)).
		Bool("comparing", ok).
		Msg("comparison changed")
	if m.params.OnChange != nil {
		m.params.OnChange(target, ok)
	}
}

func (m *OfferModel) currentTarget() offer.ID {
	t, _ := m.selection.Target()
	return t
}

// rebuild recomputes both cards and the dropdown from the catalog and selection.
func (m *OfferModel) rebuild() {
	if m.picker == nil {
		return
	}
	f := m.params.Formatter
	target := m.currentTarget()
	compatible := m.catalog.Compatible(m.primary.ID)

	m.view = f.NewView(pricing.Input{
		SelectedOffer:     m.primary,
		CompatibleOffers:  compatible,
		Providers:         m.catalog.Providers,
		ComparisonOfferID: target,
	})

	m.compareView = nil
	if m.view.ComparisonActive {
		if o, ok := m.catalog.Offer(target); ok {
			v := f.NewView(pricing.Input{
				SelectedOffer:     o,
				IsComparisonMode:  true,
				OriginalOffer:     &m.primary,
				ComparisonOfferID: target,
			})
			m.compareView = &v
		}
	}
	m.rebuildEntries()
}

func (m *OfferModel) rebuildEntries() {
	m.picker.SetItems(BuildEntries(m.primary, m.view.Groups, m.filter.Value()))
	target := m.currentTarget()
	if target == "" {
		target = m.primary.ID
	}
	m.picker.Select(func(e Entry) bool { return e.OfferID == target })
}

func (m *OfferModel) simulation(o offer.Offer) pricing.Simulation {
	if s, ok := m.simulations[o.ID]; ok {
		return s
	}
	s := pricing.Simulate(o, m.params.Usage)
	m.simulations[o.ID] = s
	return s
}

func (m *OfferModel) renderEntry(e Entry, selected bool) string {
	current := e.Kind == EntryOffer && e.OfferID == m.currentTarget()
	return RenderEntry(e, selected, current)
}

func (m *OfferModel) dropdownRows() int {
	return max(m.height/3, dropdownMinRows)
}

func (m *OfferModel) cardWidth() int {
	if m.width >= sideBySideMinWidth {
		return (m.width-cardGap)/2 - cardBorderAndPadding
	}
	return m.width - cardBorderAndPadding
}

// View renders the browser.
func (m *OfferModel) View() string {
	if m.quit {
		return ""
	}

	var sections []string
	if m.compareView != nil && m.compareView.Banner != nil {
		sections = append(sections, RenderBanner(m.compareView.Banner))
	} else if m.selection.Active() {
		sections = append(sections, RenderBanner(pricing.NewBanner(m.primary)))
	}

	sections = append(sections, m.renderCards())

	if m.selection.DropdownOpen() {
		sections = append(sections, m.renderDropdown())
	}
	if m.status != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(ColorMuted).Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))

	return strings.Join(sections, "\n\n")
}

func (m *OfferModel) renderCards() string {
	width := m.cardWidth()
	now := m.params.Now()
	primarySim := m.simulation(m.primary)

	primaryOpts := CardOptions{
		Title:      "Your offer",
		Simulation: &primarySim,
		Formatter:  m.params.Formatter,
		MonthlyKwh: m.params.Usage.MonthlyKwh,
		Width:      width,
	}
	if k, ok := pricing.ApplicableKey(m.primary, m.params.DayColor, now, m.params.Window); ok {
		primaryOpts.Highlight = k
	}
	left := RenderCard(m.view.Breakdown, primaryOpts)

	if !m.selection.Active() {
		return left
	}

	var right string
	if m.compareView == nil {
		right = RenderMissingOffer(m.currentTarget(), width)
	} else {
		o, _ := m.catalog.Offer(m.compareView.Breakdown.OfferID)
		sim := m.simulation(o)
		opts := CardOptions{
			Title:      "Comparison",
			Simulation: &sim,
			Reference:  &primarySim,
			Formatter:  m.params.Formatter,
			MonthlyKwh: m.params.Usage.MonthlyKwh,
			Width:      width,
		}
		if k, ok := pricing.ApplicableKey(o, m.params.DayColor, now, m.params.Window); ok {
			opts.Highlight = k
		}
		right = RenderCard(m.compareView.Breakdown, opts)
	}

	if m.width >= sideBySideMinWidth {
		return RenderSideBySide(left, right)
	}
	return lipgloss.JoinVertical(lipgloss.Left, left, right)
}

func (m *OfferModel) renderDropdown() string {
	title := lipgloss.NewStyle().Foreground(ColorHeader).Bold(true).
		Render(fmt.Sprintf("Compare with (%d offers)", pricing.Count(m.view.Groups)))
	body := m.picker.View()
	if m.filtering || m.filter.Value() != "" {
		body = m.filter.View() + "\n" + body
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Render(title + "\n" + body)
}
