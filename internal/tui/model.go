// Package tui is a terminal browser over the browse views: category and
// genre grids with page controls, a trending line, a details pane and a
// debounced search box.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marco/movieDeck/internal/browse"
	"github.com/marco/movieDeck/internal/catalog"
	"github.com/marco/movieDeck/internal/pagination"
	"github.com/marco/movieDeck/internal/search"
	"github.com/marco/movieDeck/internal/view"
	"github.com/marco/movieDeck/internal/viewstate"
)

// Config selects the starting view and loading behaviour.
type Config struct {
	Kind     catalog.Kind
	Category string
	Motion   bool // animated spinner instead of a static loading line
	Debounce time.Duration
	Timeout  time.Duration
	Logger   *slog.Logger
}

// refreshMsg tells the model that a controller published a new state.
type refreshMsg struct{}

// tab is one grid source: a category slug or a curated genre.
type tab struct {
	title   string
	slug    string
	genreID int
}

// Model is the bubbletea model of the browser.
type Model struct {
	svc    *browse.Service
	cfg    Config
	keys   keyMap
	logger *slog.Logger

	kind     catalog.Kind
	tabs     []tab
	tabIndex int
	grid     *browse.Grid
	cursor   int
	trending *viewstate.Controller[catalog.Kind, []view.Card]
	details  *details
	search   *search.QueryController

	input     textinput.Model
	spinner   spinner.Model
	searching bool
	width     int
	status    string

	updates chan refreshMsg
	done    chan struct{}
}

// New creates the model. Controllers start loading on Init.
func New(svc *browse.Service, cfg Config) (*Model, error) {
	if cfg.Kind == "" {
		cfg.Kind = catalog.KindMovie
	}
	if cfg.Category == "" {
		cfg.Category = "popular"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	cat, err := catalog.LookupCategory(cfg.Kind, cfg.Category)
	if err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Placeholder = "Search titles..."
	input.Prompt = "/ "
	input.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		svc:     svc,
		cfg:     cfg,
		keys:    defaultKeys(),
		logger:  cfg.Logger,
		input:   input,
		spinner: sp,
		updates: make(chan refreshMsg, 1),
		done:    make(chan struct{}),
	}

	tabs := m.tabsFor(cfg.Kind)
	start := 0
	for i, t := range tabs {
		if t.slug == cat.Slug {
			start = i
			break
		}
	}
	if err := m.selectTab(cfg.Kind, start); err != nil {
		return nil, err
	}

	m.trending = svc.TrendingController(m.options(), viewstate.Config[[]view.Card]{
		Logger:   m.logger,
		OnChange: func(viewstate.State[[]view.Card]) { m.signal() },
	})
	m.details = newDetails(svc, m.options(), m)
	m.search = svc.SearchController(m.options(), func(search.Snapshot) { m.signal() })
	return m, nil
}

func (m *Model) options() browse.Options {
	return browse.Options{Timeout: m.cfg.Timeout, Debounce: m.cfg.Debounce}
}

// tabsFor lists the categories of kind. Movies also get the curated genres.
func (m *Model) tabsFor(kind catalog.Kind) []tab {
	var tabs []tab
	for _, c := range catalog.Categories(kind) {
		tabs = append(tabs, tab{title: c.Title, slug: c.Slug})
	}
	if kind == catalog.KindMovie {
		for _, g := range m.svc.Genres() {
			tabs = append(tabs, tab{title: g.Name, genreID: g.ID})
		}
	}
	return tabs
}

// signal queues a refresh without blocking; one pending refresh is enough
// because the view always reads the latest controller state.
func (m *Model) signal() {
	select {
	case m.updates <- refreshMsg{}:
	case <-m.done:
	default:
	}
}

func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.updates:
			return msg
		case <-m.done:
			return nil
		}
	}
}

// selectTab replaces the grid with one for tabs[i] and leaves it unloaded.
func (m *Model) selectTab(kind catalog.Kind, i int) error {
	tabs := m.tabsFor(kind)
	t := tabs[i]
	cfg := viewstate.Config[browse.GridPage]{
		Logger:   m.logger,
		OnChange: func(viewstate.State[browse.GridPage]) { m.signal() },
	}

	var (
		grid *browse.Grid
		err  error
	)
	if t.genreID > 0 {
		grid, err = m.svc.NewGenreGrid(kind, t.genreID, m.options(), cfg)
	} else {
		grid, err = m.svc.NewGrid(kind, t.slug, m.options(), cfg)
	}
	if err != nil {
		return err
	}
	if m.grid != nil {
		m.grid.Close()
	}
	m.kind = kind
	m.tabs = tabs
	m.tabIndex = i
	m.grid = grid
	m.cursor = 0
	return nil
}

// Close stops every controller. Safe to call once the program has exited.
func (m *Model) Close() {
	close(m.done)
	m.grid.Close()
	m.trending.Close()
	m.details.close()
	m.search.Close()
}

// Init starts loading the first page and the trending line.
func (m *Model) Init() tea.Cmd {
	m.grid.Load()
	m.trending.Bind(m.kind)
	cmds := []tea.Cmd{m.waitForUpdate()}
	if m.cfg.Motion {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles keys and controller refreshes.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case refreshMsg:
		return m, m.waitForUpdate()

	case spinner.TickMsg:
		if !m.cfg.Motion {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.dismiss):
		m.search.Dismiss()
		m.input.Blur()
		m.searching = false
		return m, nil
	case key.Matches(msg, m.keys.submit):
		m.input.Blur()
		m.searching = false
		if snap := m.search.Snapshot(); len(snap.Results) > 0 {
			hit := snap.Results[0]
			m.search.Dismiss()
			m.details.show(browse.ItemKey{Kind: hit.Kind, ID: hit.ID})
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.search.Input(m.input.Value())
	}
	return m, cmd
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.search):
		m.searching = true
		return m, m.input.Focus()

	case m.details.open && key.Matches(msg, m.keys.back):
		m.details.hide()
	case key.Matches(msg, m.keys.dismiss):
		m.search.Dismiss()

	case key.Matches(msg, m.keys.up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.open):
		if c, ok := m.selectedCard(); ok {
			m.details.show(browse.ItemKey{Kind: c.Kind, ID: c.ID})
		}

	case key.Matches(msg, m.keys.nextPage):
		m.page(m.grid.Next())
	case key.Matches(msg, m.keys.prevPage):
		m.page(m.grid.Prev())
	case key.Matches(msg, m.keys.firstPage):
		m.page(m.grid.GoTo(1))
	case key.Matches(msg, m.keys.lastPage):
		m.page(m.grid.GoTo(m.grid.Window().Total))

	case key.Matches(msg, m.keys.nextCategory):
		m.switchTab((m.tabIndex + 1) % len(m.tabs))
	case key.Matches(msg, m.keys.prevCategory):
		m.switchTab((m.tabIndex + len(m.tabs) - 1) % len(m.tabs))

	case key.Matches(msg, m.keys.toggleKind):
		next := catalog.KindTV
		if m.kind == catalog.KindTV {
			next = catalog.KindMovie
		}
		if err := m.selectTab(next, 0); err == nil {
			m.grid.Load()
			m.trending.Bind(next)
		}

	case key.Matches(msg, m.keys.retry):
		if m.details.open {
			m.details.retry()
		}
		if m.grid.State().Status == viewstate.StatusFailed {
			m.grid.Retry()
		}
		if m.trending.State().Status == viewstate.StatusFailed {
			m.trending.Refresh()
		}
	}
	return m, nil
}

// selectedCard returns the card under the cursor of a loaded grid.
func (m *Model) selectedCard() (view.Card, bool) {
	st := m.grid.State()
	if st.Status != viewstate.StatusSuccess || len(st.Data.Items) == 0 {
		return view.Card{}, false
	}
	i := min(max(m.cursor, 0), len(st.Data.Items)-1)
	return st.Data.Items[i], true
}

// moveCursor moves the selection; an open details pane follows it.
func (m *Model) moveCursor(delta int) {
	st := m.grid.State()
	if st.Status != viewstate.StatusSuccess || len(st.Data.Items) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(st.Data.Items)-1)
	if m.details.open {
		c := st.Data.Items[m.cursor]
		m.details.show(browse.ItemKey{Kind: c.Kind, ID: c.ID})
	}
}

// page reports a rejected page move in the status line.
func (m *Model) page(err error) {
	if err != nil {
		m.logger.Debug("page change rejected", "error", err)
		m.status = "no more pages"
		return
	}
	m.cursor = 0
}

func (m *Model) switchTab(i int) {
	if err := m.selectTab(m.kind, i); err != nil {
		m.logger.Warn("tab switch failed", "error", err)
		return
	}
	m.grid.Load()
}

// View renders the whole screen.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("movieDeck"))
	b.WriteString(" ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderTrending(m.trending.State()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if dropdown := m.renderDropdown(m.search.Snapshot()); dropdown != "" {
		b.WriteString(dropdown)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	grid := m.renderGrid(m.grid.State())
	if m.details.open {
		grid = lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", m.renderDetails())
	}
	b.WriteString(grid)
	b.WriteString("\n")
	b.WriteString(renderPager(m.grid.Window()))
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) renderTabs() string {
	tabs := []string{tabStyle.Render(strings.ToUpper(string(m.kind)))}
	for i, t := range m.tabs {
		style := tabStyle
		if i == m.tabIndex {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(t.title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderTrending(st viewstate.State[[]view.Card]) string {
	label := sectionStyle.Render("Trending ")
	switch st.Status {
	case viewstate.StatusIdle, viewstate.StatusLoading:
		return label + m.loadingLine()
	case viewstate.StatusFailed:
		return label + errorStyle.Render(st.Error)
	}
	titles := make([]string, 0, len(st.Data))
	for _, c := range st.Data {
		titles = append(titles, c.Title)
	}
	return label + strings.Join(titles, dimStyle.Render(" • "))
}

func (m *Model) loadingLine() string {
	if m.cfg.Motion {
		return m.spinner.View() + " Loading..."
	}
	return dimStyle.Render("Loading...")
}

func (m *Model) renderGrid(st viewstate.State[browse.GridPage]) string {
	switch st.Status {
	case viewstate.StatusIdle, viewstate.StatusLoading:
		return m.loadingLine()
	case viewstate.StatusFailed:
		return errorStyle.Render(st.Error) + dimStyle.Render("  (r to retry)")
	}

	if len(st.Data.Items) == 0 {
		return dimStyle.Render(m.svc.Messages().NoResults)
	}
	selected := min(max(m.cursor, 0), len(st.Data.Items)-1)
	lines := make([]string, 0, len(st.Data.Items))
	for i, c := range st.Data.Items {
		lines = append(lines, renderCard(i+1, c, i == selected))
	}
	return strings.Join(lines, "\n")
}

func renderCard(n int, c view.Card, selected bool) string {
	marker := " "
	if selected {
		marker = cursorStyle.Render("›")
	}
	return fmt.Sprintf("%s%2d. %s %s %s",
		marker,
		n,
		cardTitleStyle.Render(c.Title),
		dimStyle.Render("("+c.YearText+")"),
		ratingStyle.Render("★ "+c.RatingText),
	)
}

// renderDropdown draws the search results. A dismissed dropdown stays
// closed even while a search is in flight.
func (m *Model) renderDropdown(snap search.Snapshot) string {
	if snap.Dismissed || strings.TrimSpace(snap.Query) == "" {
		return ""
	}
	waiting := snap.Loading || snap.Pending
	if !snap.Open && !waiting {
		return ""
	}
	var lines []string
	switch {
	case snap.Error != "":
		lines = append(lines, errorStyle.Render(snap.Error))
	case len(snap.Results) > 0:
		for _, h := range snap.Results {
			lines = append(lines, fmt.Sprintf("%s %s %s",
				cardTitleStyle.Render(h.Title),
				dimStyle.Render(h.YearText),
				ratingStyle.Render("★ "+h.RatingText),
			))
		}
	case waiting:
		lines = append(lines, m.loadingLine())
	default:
		lines = append(lines, dimStyle.Render(m.svc.Messages().NoResults))
	}
	if waiting && len(snap.Results) > 0 {
		lines = append(lines, m.loadingLine())
	}
	return dropdownStyle.Render(strings.Join(lines, "\n"))
}

// renderPager draws the page controls, highlighting the current page.
func renderPager(w pagination.Window) string {
	if w.Total == 0 {
		return ""
	}
	var parts []string
	if w.HasPrev() {
		parts = append(parts, pageStyle.Render("‹"))
	}
	button := func(p int) {
		style := pageStyle
		if p == w.Current {
			style = currentPageStyle
		}
		parts = append(parts, style.Render(fmt.Sprint(p)))
	}
	if w.ShowFirst {
		button(1)
	}
	if w.LeadingEllipsis {
		parts = append(parts, "...")
	}
	for _, p := range w.Pages {
		button(p)
	}
	if w.TrailingEllipsis {
		parts = append(parts, "...")
	}
	if w.ShowLast {
		button(w.Total)
	}
	if w.HasNext() {
		parts = append(parts, pageStyle.Render("›"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *Model) renderHelp() string {
	var parts []string
	for _, b := range m.keys.help(m.details.open) {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return dimStyle.Render(strings.Join(parts, " • "))
}
