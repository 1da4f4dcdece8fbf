package editor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/tabwatch/internal/detect"
	"github.com/vvka-141/tabwatch/internal/tui"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

const (
	maxColumnWidth = 24
	minColumnWidth = 3
	// Lines used by everything except the grid rows.
	chromeHeight = 9
)

// RefreshFunc reloads the table from disk.
type RefreshFunc func() (*tabwatch.Snapshot, error)

type savedMsg struct {
	path    string
	version int
	err     error
}

type refreshedMsg struct {
	snap *tabwatch.Snapshot
	err  error
}

type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingQuit
	pendingRefresh
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarning
	statusError
)

// Model is the bubbletea model of the editor.
type Model struct {
	snap    *tabwatch.Snapshot
	table   *tabwatch.Table
	saver   tabwatch.TableSaver
	refresh RefreshFunc
	keys    tui.KeyMap

	grid    table.Model
	input   textinput.Model
	col     int
	editing bool
	dirty   bool
	pending pendingAction

	// Incremented on every edit; a save only clears dirty for the version it wrote.
	version int

	status     string
	statusKind statusKind
	width      int
	height     int
	quitting   bool
}

// New creates an editor for snap. The snapshot's table is copied; it is
// never modified.
// Panics if snap, saver or refresh is nil.
func New(snap *tabwatch.Snapshot, saver tabwatch.TableSaver, refresh RefreshFunc) Model {
	if snap == nil || snap.Table == nil {
		panic("snapshot cannot be nil")
	}
	if saver == nil {
		panic("saver cannot be nil")
	}
	if refresh == nil {
		panic("refresh cannot be nil")
	}

	input := textinput.New()
	input.Prompt = ""

	m := Model{
		snap:    snap,
		table:   snap.Table.Clone(),
		saver:   saver,
		refresh: refresh,
		keys:    tui.DefaultKeyMap(),
		input:   input,
		width:   100,
		height:  24,
	}
	m.grid = table.New(table.WithFocused(true), table.WithHeight(m.gridHeight()))
	m.grid.SetStyles(gridStyles())
	m.syncGrid()
	m.setStatus(statusInfo, fmt.Sprintf("loaded %d rows from %s", m.table.NumRows(), filepath.Base(m.path())))
	return m
}

func gridStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = tui.HeaderStyle
	s.Selected = tui.SelectedStyle
	return s
}

// Table returns the working copy shown in the editor.
func (m Model) Table() *tabwatch.Table { return m.table }

// Dirty reports whether there are unsaved edits.
func (m Model) Dirty() bool { return m.dirty }

// Editing reports whether a cell is being edited.
func (m Model) Editing() bool { return m.editing }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Cursor returns the selected row and column. Row is -1 when the table has no rows.
func (m Model) Cursor() (int, int) {
	if m.table.NumRows() == 0 {
		return -1, m.col
	}
	return m.grid.Cursor(), m.col
}

func (m Model) path() string {
	if m.snap.File.Path != "" {
		return m.snap.File.Path
	}
	return m.table.Source
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.grid.SetHeight(m.gridHeight())
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.setStatus(statusError, tabwatch.UserMessage(msg.err))
			return m, nil
		}
		if msg.version != m.version {
			m.setStatus(statusWarning, "saved "+filepath.Base(msg.path)+", later edits are not saved yet")
			return m, nil
		}
		m.dirty = false
		m.setStatus(statusOK, "saved "+filepath.Base(msg.path))
		return m, nil

	case refreshedMsg:
		if msg.err != nil {
			m.setStatus(statusError, tabwatch.UserMessage(msg.err))
			return m, nil
		}
		m.snap = msg.snap
		m.table = msg.snap.Table.Clone()
		m.dirty = false
		m.col = 0
		m.grid.SetCursor(0)
		m.syncGrid()
		m.setStatus(statusOK, fmt.Sprintf("refreshed: %s (%d rows)", filepath.Base(m.path()), m.table.NumRows()))
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.editing:
			return m.updateInput(msg)
		case m.pending != pendingNone:
			return m.resolvePending(msg)
		default:
			return m.handleKey(msg)
		}
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty {
			m.pending = pendingQuit
			m.setStatus(statusWarning, "unsaved changes: press q or y to quit without saving, any other key to stay")
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.grid.MoveUp(1)
	case key.Matches(msg, m.keys.Down):
		m.grid.MoveDown(1)
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
			m.syncGrid()
		}
	case key.Matches(msg, m.keys.Right):
		if m.col < m.table.NumColumns()-1 {
			m.col++
			m.syncGrid()
		}

	case key.Matches(msg, m.keys.Edit):
		row, col := m.Cursor()
		if row < 0 || m.table.NumColumns() == 0 {
			m.setStatus(statusWarning, "no cell to edit, press a to add a row")
			return m, nil
		}
		m.editing = true
		m.input.SetValue(m.table.Rows[row][col])
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.AddRow):
		m.table.Rows = append(m.table.Rows, make([]string, m.table.NumColumns()))
		m.markEdited()
		m.syncGrid()
		m.grid.SetCursor(m.table.NumRows() - 1)
		m.setStatus(statusInfo, fmt.Sprintf("added row %d", m.table.NumRows()))

	case key.Matches(msg, m.keys.DeleteRow):
		row, _ := m.Cursor()
		if row < 0 {
			m.setStatus(statusWarning, "no row to delete")
			return m, nil
		}
		m.table.Rows = append(m.table.Rows[:row], m.table.Rows[row+1:]...)
		m.markEdited()
		m.syncGrid()
		m.setStatus(statusInfo, fmt.Sprintf("deleted row %d", row+1))

	case key.Matches(msg, m.keys.Save):
		m.setStatus(statusInfo, "saving "+filepath.Base(m.path())+"...")
		return m, m.saveCmd()

	case key.Matches(msg, m.keys.Refresh):
		if m.dirty {
			m.pending = pendingRefresh
			m.setStatus(statusWarning, "unsaved changes: press r or y to discard them and reload, any other key to keep editing")
			return m, nil
		}
		m.setStatus(statusInfo, "refreshing...")
		return m, m.refreshCmd()
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		m.editing = false
		m.input.Blur()
		m.setCell(m.input.Value())
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		m.setStatus(statusInfo, "edit cancelled")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) resolvePending(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.pending
	m.pending = pendingNone

	switch action {
	case pendingQuit:
		if key.Matches(msg, m.keys.Confirm) || key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	case pendingRefresh:
		if key.Matches(msg, m.keys.Confirm) || key.Matches(msg, m.keys.Refresh) {
			m.setStatus(statusInfo, "refreshing...")
			return m, m.refreshCmd()
		}
	}
	m.setStatus(statusInfo, "cancelled")
	return m, nil
}

func (m *Model) setCell(value string) {
	row, col := m.Cursor()
	if row < 0 {
		return
	}
	if m.table.Rows[row][col] == value {
		m.setStatus(statusInfo, "unchanged")
		return
	}
	m.table.Rows[row][col] = value
	m.markEdited()
	m.syncGrid()
	m.setStatus(statusInfo, fmt.Sprintf("updated %s in row %d", m.table.Columns[col], row+1))
}

func (m *Model) markEdited() {
	m.dirty = true
	m.version++
}

func (m Model) saveCmd() tea.Cmd {
	snapshot := m.table.Clone()
	path := m.path()
	version := m.version
	saver := m.saver
	return func() tea.Msg {
		return savedMsg{path: path, version: version, err: saver.Save(snapshot, path)}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	refresh := m.refresh
	return func() tea.Msg {
		snap, err := refresh()
		return refreshedMsg{snap: snap, err: err}
	}
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m Model) gridHeight() int {
	if h := m.height - chromeHeight; h > 3 {
		return h
	}
	return 3
}

// syncGrid rebuilds the grid's columns and rows from the working table.
func (m *Model) syncGrid() {
	if n := m.table.NumColumns(); m.col >= n {
		m.col = max(n-1, 0)
	}
	cursor := m.grid.Cursor()

	// Rows must never be wider than the columns while either is replaced.
	m.grid.SetRows(nil)
	m.grid.SetColumns(m.columns())
	m.grid.SetRows(m.rows())
	m.grid.SetCursor(cursor)
}

func (m Model) columns() []table.Column {
	cols := make([]table.Column, len(m.table.Columns))
	for i, name := range m.table.Columns {
		title := name
		if i == m.col {
			title = tui.SymbolArrowRight + " " + name
		}
		width := lipgloss.Width(title)
		for _, row := range m.table.Rows {
			width = max(width, lipgloss.Width(cellText(row[i])))
		}
		cols[i] = table.Column{Title: title, Width: min(max(width, minColumnWidth), maxColumnWidth)}
	}
	return cols
}

func (m Model) rows() []table.Row {
	rows := make([]table.Row, len(m.table.Rows))
	for i, row := range m.table.Rows {
		r := make(table.Row, len(row))
		for j, cell := range row {
			r[j] = cellText(cell)
		}
		rows[i] = r
	}
	return rows
}

// cellText flattens a cell onto one line for the grid.
func cellText(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("tabwatch"))
	b.WriteString(" ")
	b.WriteString(tui.SubtitleStyle.Render(m.path()))
	b.WriteString("\n")
	b.WriteString(m.describe())
	b.WriteString("\n")

	b.WriteString(tui.BoxStyle.Render(m.grid.View()))
	b.WriteString("\n")

	b.WriteString(m.cellLine())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	help := m.keys.HelpText()
	if m.editing {
		help = m.keys.InputHelpText()
	}
	b.WriteString(tui.HelpStyle.Render(help))
	return b.String()
}

func (m Model) describe() string {
	parts := []string{m.table.Format.String()}
	if m.table.Encoding != "" {
		parts = append(parts, m.table.Encoding)
	}
	if m.table.Delimiter != 0 {
		parts = append(parts, "delimiter "+detect.DelimiterName(m.table.Delimiter))
	}
	parts = append(parts, fmt.Sprintf("%d rows × %d columns", m.table.NumRows(), m.table.NumColumns()))

	line := tui.SubtitleStyle.Render(strings.Join(parts, " "+tui.SymbolBullet+" "))
	if m.dirty {
		line += " " + tui.WarningStyle.Render(tui.SymbolModified+" modified")
	}
	return line
}

func (m Model) cellLine() string {
	row, col := m.Cursor()
	if m.table.NumColumns() == 0 {
		return ""
	}
	label := tui.InputLabelStyle.Render(m.table.Columns[col] + ":")
	if m.editing {
		return label + m.input.View()
	}
	if row < 0 {
		return label
	}
	return label + m.table.Rows[row][col]
}

func (m Model) statusLine() string {
	switch m.statusKind {
	case statusOK:
		return tui.SuccessStyle.Render(tui.SymbolCheck + " " + m.status)
	case statusWarning:
		return tui.WarningStyle.Render(m.status)
	case statusError:
		return tui.ErrorStyle.Render(tui.SymbolCross + " " + m.status)
	default:
		return m.status
	}
}

// Verify Model implements the interface at compile time
var _ tea.Model = Model{}
