package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/road-remembers/internal/storage"
)

// Runs board layout constants
const (
	maxRuns       = 100 // Max runs to load
	boardChrome   = 9   // Title, stats, help and borders
	minTableRows  = 3
	boardMaxWidth = 96
)

// RunsOrder selects how the board sorts runs.
type RunsOrder int

const (
	RunsRecent RunsOrder = iota
	RunsBest
)

// String returns the board title for the order.
func (o RunsOrder) String() string {
	if o == RunsBest {
		return "LONGEST ROADS"
	}
	return "RECENT ROADS"
}

// RunsBoardKeyMap defines the key bindings for the runs board.
type RunsBoardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsBoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsBoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Quit},
	}
}

// DefaultRunsBoardKeyMap returns default key bindings.
func DefaultRunsBoardKeyMap() RunsBoardKeyMap {
	return RunsBoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab", "b"),
			key.WithHelp("tab", "recent/longest"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsBoardModel is the Bubble Tea model for browsing the run archive.
type RunsBoardModel struct {
	store    *storage.Store
	order    RunsOrder
	runs     []storage.RunEntry
	stats    *storage.RunStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     RunsBoardKeyMap
	width    int
	height   int
	quitting bool
}

// NewRunsBoardModel creates a runs board and loads the first page.
func NewRunsBoardModel(store *storage.Store, order RunsOrder, width, height int) RunsBoardModel {
	h := help.New()
	h.ShowAll = false

	m := RunsBoardModel{
		store:  store,
		order:  order,
		keys:   DefaultRunsBoardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a table sized to the window.
func (m *RunsBoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Distance", Width: 10},
		{Title: "Aid", Width: 5},
		{Title: "Duty", Width: 5},
		{Title: "Hunger", Width: 7},
		{Title: "Mood", Width: 8},
		{Title: "Date", Width: 14},
	}

	rows := m.height - boardChrome
	if rows < minTableRows {
		rows = minTableRows
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(rows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("238")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load queries the archive for the current order.
func (m *RunsBoardModel) load() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	ctx := context.Background()
	var err error
	if m.order == RunsBest {
		m.runs, err = m.store.BestRuns(ctx, maxRuns)
	} else {
		m.runs, err = m.store.RecentRuns(ctx, maxRuns)
	}
	if err != nil {
		m.loadErr = err
	}
	if stats, err := m.store.Stats(ctx); err == nil {
		m.stats = stats
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *RunsBoardModel) updateTableRows() {
	m.table.SetRows(RunRows(m.runs))
	m.table.GotoTop()
}

// RunRows formats archived runs as table rows.
func RunRows(runs []storage.RunEntry) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d m", int(r.Distance)),
			fmt.Sprintf("%d", r.Carrying),
			fmt.Sprintf("%d", r.Discipline),
			fmt.Sprintf("%d", r.Hunger),
			r.Mood,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the runs board model.
func (m RunsBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs board.
func (m RunsBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			if m.order == RunsBest {
				m.order = RunsRecent
			} else {
				m.order = RunsBest
			}
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the runs board.
func (m RunsBoardModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width > boardMaxWidth {
		width = boardMaxWidth
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15"))
	b.WriteString(titleStyle.Render(centerText(m.order.String(), width)))
	b.WriteString("\n")

	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(statsStyle.Render(centerText(m.statsLine(), width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the archive.
func (m RunsBoardModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "The road has no memories yet"
	}
	return fmt.Sprintf("%d runs  longest %d m  total %d m  Aid %d  Duty %d  Hunger %d",
		m.stats.Runs, int(m.stats.BestDistance), int(m.stats.TotalDistance),
		m.stats.Carrying, m.stats.Discipline, m.stats.Hunger)
}

// renderTableContent renders the table or an empty message.
func (m RunsBoardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Run archive unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs archived yet.\nWalk the road to leave a memory.")
	}
	return m.table.View()
}

// Order returns the current sort order.
func (m RunsBoardModel) Order() RunsOrder {
	return m.order
}

// Runs returns the loaded runs.
func (m RunsBoardModel) Runs() []storage.RunEntry {
	return m.runs
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}

// RunRunsBoard runs the runs board screen.
func RunRunsBoard(store *storage.Store, order RunsOrder, width, height int) error {
	model := NewRunsBoardModel(store, order, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
