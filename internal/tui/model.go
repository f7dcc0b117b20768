// Package tui implements the interactive catalog table view: a paginated
// artwork grid with per-row selection toggles and a popup that selects an
// arbitrary number of rows spanning multiple pages.
package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/articat/articat/pkg/catalog"
	"github.com/articat/articat/pkg/selection"
	"github.com/articat/articat/pkg/store"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Messages

// pageLoadedMsg carries a fetched page. gen guards against stale
// completions: only messages stamped with the model's current generation
// are applied.
type pageLoadedMsg struct {
	gen  int
	page catalog.Page
}

// accumulateDoneMsg carries a merged selection from the accumulator.
type accumulateDoneMsg struct {
	gen       int
	selection *selection.Set
}

// Model is the root Bubble Tea model.
type Model struct {
	// Terminal dimensions
	width  int
	height int
	ready  bool

	// View state
	state        store.State
	table        table.Model
	pager        paginator.Model
	spin         spinner.Model
	countInput   textinput.Model
	showPopup    bool
	accumulating bool

	// gen is a monotonically increasing operation id. Every page change
	// or accumulation bumps it; async completions stamped with an older
	// value are discarded instead of racing the newer operation.
	gen           int
	requestedPage int

	fetcher selection.PageFetcher
	acc     *selection.Accumulator
	keys    KeyMap
	logger  zerolog.Logger
}

// NewModel creates the table view over a page fetcher and an accumulator.
func NewModel(fetcher selection.PageFetcher, acc *selection.Accumulator, logger zerolog.Logger) Model {
	columns := []table.Column{
		{Title: " ", Width: 2},
		{Title: "ID", Width: 8},
		{Title: "Title", Width: 36},
		{Title: "Origin", Width: 16},
		{Title: "Artist", Width: 28},
		{Title: "Dates", Width: 11},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(ColorBlue).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(ColorGreen).Bold(true)
	tbl.SetStyles(styles)

	pager := paginator.New()
	pager.Type = paginator.Arabic

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = LoadingStyle

	input := textinput.New()
	input.Placeholder = "number of rows"
	input.CharLimit = 8
	input.Width = 20

	return Model{
		state:         store.NewState().WithLoading(),
		table:         tbl,
		pager:         pager,
		spin:          spin,
		countInput:    input,
		gen:           1,
		requestedPage: 1,
		fetcher:       fetcher,
		acc:           acc,
		keys:          DefaultKeyMap(),
		logger:        logger,
	}
}

// Init starts the spinner and loads the first page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		fetchPageCmd(m.fetcher, m.logger, m.gen, m.requestedPage),
	)
}

// fetchPageCmd fetches one page in the background. A fetch failure is
// collapsed into an empty page: logged, never surfaced as a distinct
// error state.
func fetchPageCmd(fetcher selection.PageFetcher, logger zerolog.Logger, gen, pageNumber int) tea.Cmd {
	return func() tea.Msg {
		page, err := fetcher.FetchPage(context.Background(), pageNumber)
		if err != nil {
			logger.Warn().
				Err(err).
				Int("page", pageNumber).
				Msg("Page load failed, showing empty page")
			page = catalog.Page{
				Pagination: catalog.Pagination{CurrentPage: pageNumber},
			}
		}
		return pageLoadedMsg{gen: gen, page: page}
	}
}

// accumulateCmd runs the multi-page accumulation in the background.
func accumulateCmd(acc *selection.Accumulator, gen int, rawCount string, startPage int, existing *selection.Set) tea.Cmd {
	return func() tea.Msg {
		merged := acc.Accumulate(context.Background(), rawCount, startPage, existing)
		return accumulateDoneMsg{gen: gen, selection: merged}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		height := msg.Height - 7
		if height < 3 {
			height = 3
		}
		m.table.SetHeight(height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		if msg.gen != m.gen {
			m.logger.Debug().
				Int("msg_gen", msg.gen).
				Int("current_gen", m.gen).
				Msg("Discarding stale page load")
			return m, nil
		}
		m.state = m.state.WithPage(msg.page)
		m.syncTable()
		m.syncPager()
		return m, nil

	case accumulateDoneMsg:
		if msg.gen != m.gen {
			m.logger.Debug().
				Int("msg_gen", msg.gen).
				Int("current_gen", m.gen).
				Msg("Discarding stale accumulation")
			return m, nil
		}
		m.accumulating = false
		m.state = m.state.WithSelection(msg.selection)
		m.syncTable()
		return m, nil

	case tea.KeyMsg:
		if m.showPopup {
			return m.updatePopup(msg)
		}
		return m.updateTable(msg)
	}

	return m, nil
}

// updatePopup handles keys while the count popup is open.
func (m Model) updatePopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.showPopup = false
		m.countInput.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		raw := m.countInput.Value()
		m.showPopup = false
		m.countInput.Reset()
		return m.startAccumulate(raw)

	case key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.countInput, cmd = m.countInput.Update(msg)
	return m, cmd
}

// updateTable handles keys on the main table view.
func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevPage):
		if current := m.currentPage(); current > 1 {
			return m.startPageLoad(current - 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		current := m.currentPage()
		if total := m.state.TotalPages(); total == 0 || current < total {
			return m.startPageLoad(current + 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.startPageLoad(m.currentPage())

	case key.Matches(msg, m.keys.Toggle):
		return m.toggleCursorRow(), nil

	case key.Matches(msg, m.keys.SelectN):
		m.showPopup = true
		m.countInput.Reset()
		return m, m.countInput.Focus()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// startPageLoad begins an async page change. Bumping gen invalidates any
// in-flight completion, so overlapping operations resolve deterministically
// in favor of the newest one.
func (m Model) startPageLoad(pageNumber int) (tea.Model, tea.Cmd) {
	m.gen++
	m.requestedPage = pageNumber
	m.state = m.state.WithLoading()
	return m, fetchPageCmd(m.fetcher, m.logger, m.gen, pageNumber)
}

// startAccumulate begins an async multi-page selection.
func (m Model) startAccumulate(rawCount string) (tea.Model, tea.Cmd) {
	m.gen++
	m.accumulating = true
	return m, accumulateCmd(m.acc, m.gen, rawCount, m.currentPage(), m.state.Selection)
}

// toggleCursorRow flips the selection state of the row under the cursor.
func (m Model) toggleCursorRow() Model {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= m.state.Page.Size() {
		return m
	}
	rec := m.state.Page.Records[cursor]
	m.state = m.state.WithToggle(rec, !m.state.Selection.Has(rec.ID))
	m.syncTable()
	return m
}

// currentPage returns the displayed page number, defaulting to the page
// being requested before anything has loaded.
func (m Model) currentPage() int {
	if page := m.state.CurrentPage(); page >= 1 {
		return page
	}
	return m.requestedPage
}

// syncTable rebuilds the table rows from the current page and selection.
func (m *Model) syncTable() {
	rows := make([]table.Row, 0, m.state.Page.Size())
	for _, rec := range m.state.Page.Records {
		mark := " "
		if m.state.Selection.Has(rec.ID) {
			mark = "✓"
		}
		rows = append(rows, table.Row{
			mark,
			strconv.Itoa(rec.ID),
			rec.Title,
			rec.PlaceOfOrigin,
			rec.ArtistDisplay,
			fmt.Sprintf("%d-%d", rec.DateStart, rec.DateEnd),
		})
	}
	m.table.SetRows(rows)
}

// syncPager mirrors the catalog's pagination into the footer widget.
func (m *Model) syncPager() {
	if total := m.state.TotalPages(); total > 0 {
		m.pager.SetTotalPages(total)
	}
	if current := m.state.CurrentPage(); current >= 1 {
		m.pager.Page = current - 1
	}
}

// View renders the table, footer, and popup.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.showPopup {
		popup := lipgloss.JoinVertical(lipgloss.Left,
			PopupTitleStyle.Render("Select rows"),
			"",
			m.countInput.View(),
			"",
			HelpStyle.Render("enter: submit • esc: cancel"),
		)
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			PopupStyle.Render(popup),
		)
	}

	header := HeaderStyle.Render("Artwork Catalog")

	status := fmt.Sprintf("Page %d/%d • %d records • %s selected",
		m.currentPage(),
		m.state.TotalPages(),
		m.state.TotalRecords(),
		SelectedCountStyle.Render(strconv.Itoa(m.state.Selection.Len())),
	)
	if m.state.Loading || m.accumulating {
		status += " • " + m.spin.View() + LoadingStyle.Render("loading")
	}

	footer := lipgloss.JoinVertical(lipgloss.Left,
		StatusBarStyle.Render(status+"  "+m.pager.View()),
		HelpStyle.Render(renderShortHelp(m.keys)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		TableBorderStyle.Render(m.table.View()),
		footer,
	)
}

// renderShortHelp formats the footer key hints.
func renderShortHelp(keys KeyMap) string {
	out := ""
	for i, binding := range keys.ShortHelp() {
		if i > 0 {
			out += " • "
		}
		out += binding.Help().Key + " " + binding.Help().Desc
	}
	return out
}
