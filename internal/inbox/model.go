package inbox

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/folio/internal/model"
)

const (
	tabList = iota
	tabMessage
)

const queryTimeout = 5 * time.Second

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3B82F6"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Source is the message storage the inbox reads from.
type Source interface {
	ListMessages(ctx context.Context, cfg model.InboxConfig) ([]model.Message, error)
	DeleteMessage(ctx context.Context, id int64) (bool, error)
}

// Model implements the Bubble Tea inbox UI.
type Model struct {
	source Source
	cfg    model.InboxConfig

	messages []model.Message
	errMsg   string

	tabs      []string
	activeTab int
	list      table.Model
	reader    viewport.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	confirmDelete bool
}

// NewModel constructs an inbox UI model.
func NewModel(src Source, cfg model.InboxConfig) *Model {
	m := &Model{
		source: src,
		cfg:    cfg,
		tabs:   []string{"Messages", "Read"},
		reader: viewport.New(0, 0),
	}
	m.filterInputs = []textinput.Model{
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Limit: "),
	}
	m.list = table.New(
		table.WithColumns(listColumns(80)),
		table.WithFocused(true),
		table.WithHeight(1),
	)
	m.list.SetStyles(listStyles())
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.confirmDelete {
			m.confirmDelete = false
			if msg.String() == "y" {
				m.deleteSelected()
			}
			return m, nil
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h", "right", "l":
			m.toggleTab()
			return m, tea.ClearScreen
		case "enter":
			if m.activeTab == tabList && m.selected() != nil {
				m.activeTab = tabMessage
				m.renderReader()
			}
			return m, nil
		case "esc":
			m.activeTab = tabList
			return m, nil
		case "d":
			if m.selected() != nil {
				m.confirmDelete = true
			}
			return m, nil
		case "r":
			m.refresh()
			return m, nil
		case "/":
			m.filterMode = true
			m.filterError = ""
			m.setInputsFromConfig()
			return m, m.setFilterIndex(0)
		}
		var cmd tea.Cmd
		if m.activeTab == tabList {
			m.list, cmd = m.list.Update(msg)
		} else {
			m.reader, cmd = m.reader.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func listColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Received", Width: len(dateLayout)},
		{Title: "Name", Width: 18},
		{Title: "Email", Width: 26},
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 1
	}
	return append(cols, table.Column{Title: "Message", Width: max(10, width-used)})
}

func listStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.list.SetColumns(listColumns(m.width))
	m.list.SetWidth(m.width)
	// The header row and its border take two lines.
	m.list.SetHeight(max(1, bodyHeight-2))
	m.reader.Width = m.width
	m.reader.Height = bodyHeight
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = max(10, m.width-promptWidth-2)
	}
	m.renderReader()
}

func (m *Model) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	msgs, err := m.source.ListMessages(ctx, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.messages = msgs
	rows := make([]table.Row, 0, len(msgs))
	for _, r := range messageRows(msgs) {
		rows = append(rows, table.Row(r))
	}
	m.list.SetRows(rows)
	if m.list.Cursor() >= len(rows) {
		m.list.SetCursor(max(0, len(rows)-1))
	}
	m.renderReader()
}

func (m *Model) selected() *model.Message {
	if len(m.messages) == 0 {
		return nil
	}
	idx := m.list.Cursor()
	if idx < 0 || idx >= len(m.messages) {
		return nil
	}
	return &m.messages[idx]
}

func (m *Model) deleteSelected() {
	msg := m.selected()
	if msg == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	if _, err := m.source.DeleteMessage(ctx, msg.ID); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.activeTab = tabList
	m.refresh()
}

func (m *Model) toggleTab() {
	if m.activeTab == tabList {
		m.activeTab = tabMessage
		m.renderReader()
		return
	}
	m.activeTab = tabList
}

func (m *Model) renderReader() {
	msg := m.selected()
	if msg == nil {
		m.reader.SetContent("No message selected.")
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	lines := []string{
		labelStyle.Render("From:     ") + fmt.Sprintf("%s <%s>", msg.Name, msg.Email),
		labelStyle.Render("Received: ") + msg.CreatedAt.Local().Format(dateLayout),
		"",
		lipgloss.NewStyle().Width(width).Render(msg.Body),
	}
	m.reader.SetContent(strings.Join(lines, "\n"))
	m.reader.GotoTop()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return padLines(m.renderTabs(), m.width) + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	limit := "all"
	if m.cfg.Limit > 0 {
		limit = strconv.Itoa(m.cfg.Limit)
	}
	summary := fmt.Sprintf("Filter: since=%s  limit=%s  showing=%d", since, limit, len(m.messages))
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	switch {
	case m.filterMode:
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	case m.confirmDelete:
		return errorStyle.Render("Delete this message? y/n")
	}
	help := headerStyle.Render("Open: enter  Back: esc  Delete: d  Reload: r  Filter: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	if m.filterMode {
		lines := []string{"Filter (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return strings.Join(lines, "\n")
	}
	if m.activeTab == tabMessage {
		return m.reader.View()
	}
	if len(m.messages) == 0 {
		return "No messages found."
	}
	return tableMutedStyle.Render(m.list.View())
}

func (m *Model) setInputsFromConfig() {
	if m.cfg.Since != nil {
		m.filterInputs[0].SetValue(m.cfg.Since.Format("2006-01-02"))
	} else {
		m.filterInputs[0].SetValue("")
	}
	if m.cfg.Limit > 0 {
		m.filterInputs[1].SetValue(strconv.Itoa(m.cfg.Limit))
	} else {
		m.filterInputs[1].SetValue("")
	}
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == idx {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refresh()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) applyFilter() error {
	since, err := ParseSince(m.filterInputs[0].Value())
	if err != nil {
		return err
	}
	limit := 0
	if v := strings.TrimSpace(m.filterInputs[1].Value()); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			return fmt.Errorf("invalid limit: %q", v)
		}
	}
	m.cfg.Since = since
	m.cfg.Limit = limit
	return nil
}

// ParseSince parses a YYYY-MM-DD date in local time. Blank input means no bound.
func ParseSince(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid since date (expected YYYY-MM-DD): %w", err)
	}
	return &parsed, nil
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
