// Package tui is the interactive operator loop: pick a file from the sorted
// listing, page through its raw rows, confirm, and see the result.
//
// The model holds no file state of its own. Listing, preview and conversion
// are injected as functions and the chosen path is passed to them explicitly.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ginjaninja78/csv-wizard/internal/catalog"
	"github.com/ginjaninja78/csv-wizard/internal/converter"
	"github.com/ginjaninja78/csv-wizard/internal/report"
	"github.com/ginjaninja78/csv-wizard/internal/types"
	"github.com/ginjaninja78/csv-wizard/pkg/utils"
)

/* ----------------------------------------
	DEPENDENCIES
---------------------------------------- */

// Deps are the operations the UI drives.
type Deps struct {
	// Dir is shown in the title.
	Dir string

	// PageSize numbers preview rows from the start of the file.
	PageSize int

	// Load returns the sorted, classified listing.
	Load func(sortBy string, descending bool) ([]catalog.Entry, error)

	// Preview returns one page of raw rows and the total page count.
	Preview func(path string, page int) ([]types.Row, int, error)

	// Convert rewrites one file in place.
	Convert func(path string) (converter.Result, error)

	// Console colors the format tags.
	Console *report.Console
}

/* ----------------------------------------
	MESSAGES
---------------------------------------- */

type listLoadedMsg struct {
	entries []catalog.Entry
	err     error
}

type previewLoadedMsg struct {
	page  int
	pages int
	rows  []types.Row
	err   error
}

type convertedMsg struct {
	result converter.Result
	err    error
}

/* ----------------------------------------
	MODEL
---------------------------------------- */

type screen int

const (
	screenList screen = iota
	screenPreview
	screenResult
)

// defaultVisibleRows is used until the terminal reports its size.
const defaultVisibleRows = 20

// Model is the bubbletea model for the operator loop.
type Model struct {
	deps Deps

	sortBy     string
	descending bool

	screen  screen
	entries []catalog.Entry
	cursor  int

	selected catalog.Entry
	page     int
	pages    int
	rows     []types.Row
	offset   int

	busy   bool
	result *converter.Result
	err    error
	height int
}

// New returns a model that lists files sorted by sortBy.
func New(deps Deps, sortBy string, descending bool) Model {
	if deps.Console == nil {
		deps.Console = report.NewConsole(nil)
	}
	if deps.PageSize <= 0 {
		deps.PageSize = 100
	}
	return Model{
		deps:       deps,
		sortBy:     sortBy,
		descending: descending,
	}
}

// Run starts the program on the terminal and blocks until the operator quits.
func Run(deps Deps, sortBy string, descending bool, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(deps, sortBy, descending), opts...).Run()
	return err
}

// Init loads the listing.
func (m Model) Init() tea.Cmd {
	return m.loadList()
}

func (m Model) loadList() tea.Cmd {
	sortBy, descending, load := m.sortBy, m.descending, m.deps.Load
	return func() tea.Msg {
		entries, err := load(sortBy, descending)
		return listLoadedMsg{entries: entries, err: err}
	}
}

func (m Model) loadPreview(page int) tea.Cmd {
	path, preview := m.selected.Path, m.deps.Preview
	return func() tea.Msg {
		rows, pages, err := preview(path, page)
		return previewLoadedMsg{page: page, pages: pages, rows: rows, err: err}
	}
}

func (m Model) convert() tea.Cmd {
	path, convert := m.selected.Path, m.deps.Convert
	return func() tea.Msg {
		result, err := convert(path)
		return convertedMsg{result: result, err: err}
	}
}

/* ----------------------------------------
	UPDATE
---------------------------------------- */

// Update handles keys and async results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case listLoadedMsg:
		m.entries, m.err = msg.entries, msg.err
		if m.cursor >= len(m.entries) {
			m.cursor = max(len(m.entries)-1, 0)
		}
		return m, nil

	case previewLoadedMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.page, m.pages, m.rows, m.offset = msg.page, msg.pages, msg.rows, 0
		}
		return m, nil

	case convertedMsg:
		m.busy = false
		m.screen = screenResult
		m.err = msg.err
		m.result = nil
		if msg.err == nil {
			result := msg.result
			m.result = &result
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch m.screen {
		case screenList:
			return m.updateList(msg)
		case screenPreview:
			return m.updatePreview(msg)
		case screenResult:
			// Back to a refreshed listing, as the file just changed.
			m.screen = screenList
			m.result, m.err = nil, nil
			return m, m.loadList()
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "n":
		m.sortBy, m.descending = utils.SortByName, !m.descending
		return m, m.loadList()
	case "d":
		m.sortBy, m.descending = utils.SortByDate, !m.descending
		return m, m.loadList()
	case "r":
		return m, m.loadList()
	case "enter":
		if len(m.entries) == 0 {
			return m, nil
		}
		m.selected = m.entries[m.cursor]
		m.screen = screenPreview
		m.rows, m.page, m.pages, m.err = nil, 0, 0, nil
		m.busy = true
		return m, m.loadPreview(0)
	}
	return m, nil
}

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "c", "q":
		m.screen = screenList
		m.err = nil
	case "up", "k":
		if m.offset > 0 {
			m.offset--
		}
	case "down", "j":
		if m.offset < len(m.rows)-1 {
			m.offset++
		}
	case "right", "pgdown", "l":
		if m.page+1 < m.pages {
			m.busy = true
			return m, m.loadPreview(m.page + 1)
		}
	case "left", "pgup", "h":
		if m.page > 0 {
			m.busy = true
			return m, m.loadPreview(m.page - 1)
		}
	case "y", "enter":
		m.busy = true
		return m, m.convert()
	}
	return m, nil
}

/* ----------------------------------------
	VIEW
---------------------------------------- */

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder

	switch m.screen {
	case screenList:
		m.viewList(&b)
	case screenPreview:
		m.viewPreview(&b)
	case screenResult:
		m.viewResult(&b)
	}

	if m.err != nil {
		fmt.Fprintf(&b, "\nError: %v\n", m.err)
	}
	return b.String()
}

func (m Model) viewList(b *strings.Builder) {
	order := "ascending"
	if m.descending {
		order = "descending"
	}
	fmt.Fprintf(b, "CSV Wizard - %s (by %s, %s)\n\n", m.deps.Dir, m.sortBy, order)

	if len(m.entries) == 0 {
		b.WriteString("No CSV files found.\n")
	}
	for i, e := range m.entries {
		pointer := "  "
		if i == m.cursor {
			pointer = "> "
		}
		tag := m.deps.Console.TagColor(e.Tag).Sprintf("(%s)", e.Tag)
		fmt.Fprintf(b, "%s%d: %s %s\n", pointer, e.Index, e.Name, tag)
	}

	b.WriteString("\nenter preview · n sort by name · d sort by date · r refresh · q quit\n")
}

func (m Model) viewPreview(b *strings.Builder) {
	fmt.Fprintf(b, "Do you want to convert %s?\n", m.selected.Name)
	fmt.Fprintf(b, "Page %d of %d\n\n", m.page+1, max(m.pages, 1))

	if m.busy && len(m.rows) == 0 {
		b.WriteString("Loading...\n")
	}

	visible := defaultVisibleRows
	if m.height > 8 {
		visible = m.height - 8
	}
	end := min(m.offset+visible, len(m.rows))
	for i := m.offset; i < end; i++ {
		fmt.Fprintf(b, "%4d  %s\n", m.page*m.deps.PageSize+i+1, strings.Join(m.rows[i], "  "))
	}

	b.WriteString("\ny convert · ←/→ page · ↑/↓ scroll · esc cancel\n")
}

func (m Model) viewResult(b *strings.Builder) {
	if m.result == nil {
		fmt.Fprintf(b, "%s was not converted.\n", m.selected.Name)
		b.WriteString("\npress any key to continue\n")
		return
	}

	r := m.result
	fmt.Fprintf(b, "%s has been converted from: (%s) to (%s)\n", filepath.Base(r.FilePath), r.From, r.To)
	fmt.Fprintf(b, "Processed %d rows out of %d total rows\n", r.Stats.RowsProcessed, r.Stats.TotalRows)

	if len(r.Skipped) > 0 {
		fmt.Fprintf(b, "\nSkipped %d malformed row(s):\n", len(r.Skipped))
		for i, skip := range r.Skipped {
			if i == 10 {
				fmt.Fprintf(b, "  ... and %d more (see log)\n", len(r.Skipped)-10)
				break
			}
			fmt.Fprintf(b, "  %v\n", skip)
		}
	}
	b.WriteString("\npress any key to continue\n")
}
