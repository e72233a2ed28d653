// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/credsift/internal/stats"
)

const (
	tabOverview = iota
	tabCharacters
	tabScans
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	report stats.Report

	tabs      []string
	activeTab int

	overview  viewport.Model
	charTable table.Model
	scanTable table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model over a prepared report.
func NewModel(report stats.Report) *Model {
	m := &Model{
		report: report,
		tabs:   []string{"Overview", "Characters", "Scans"},
	}
	m.initCharTable()
	m.initScanTable()
	m.overview = viewport.New(0, 0)
	m.overview.SetContent(m.overviewContent())
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
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabOverview:
		m.overview, cmd = m.overview.Update(msg)
	case tabCharacters:
		m.charTable, cmd = m.charTable.Update(msg)
	case tabScans:
		m.scanTable, cmd = m.scanTable.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderNav())
	b.WriteByte('\n')
	switch m.activeTab {
	case tabOverview:
		b.WriteString(m.overview.View())
	case tabCharacters:
		b.WriteString(m.charTable.View())
	case tabScans:
		b.WriteString(m.scanTable.View())
	}
	b.WriteByte('\n')
	b.WriteString(headerStyle.Render("h/l: switch tab - q: quit"))
	return b.String()
}

func (m *Model) moveTab(delta int) {
	m.activeTab += delta
	if m.activeTab < 0 {
		m.activeTab = len(m.tabs) - 1
	}
	if m.activeTab >= len(m.tabs) {
		m.activeTab = 0
	}
	if m.activeTab == tabCharacters {
		m.charTable.Focus()
	} else {
		m.charTable.Blur()
	}
	if m.activeTab == tabScans {
		m.scanTable.Focus()
	} else {
		m.scanTable.Blur()
	}
}

func (m *Model) renderNav() string {
	items := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			items = append(items, activeNavStyle.Render(tab))
		} else {
			items = append(items, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func (m *Model) updateLayout() {
	contentHeight := m.height - 6
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.overview.Width = m.width
	m.overview.Height = contentHeight
	m.charTable.SetHeight(contentHeight)
	m.scanTable.SetHeight(contentHeight)
}

func (m *Model) overviewContent() string {
	chars := 0
	if m.report.Characters != nil {
		chars = m.report.Characters.Len()
	}
	credentials := 0
	if n := len(m.report.Scans); n > 0 {
		credentials = m.report.Scans[n-1].Credentials
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Characters", strconv.Itoa(chars)),
		card("Scans", strconv.Itoa(len(m.report.Scans))),
		card("Credentials", strconv.Itoa(credentials)),
	)

	var spark string
	if m.report.Characters != nil {
		averages := make([]float64, 0, m.report.Characters.Len())
		for _, key := range m.report.Characters.Keys() {
			stat, _ := m.report.Characters.Get(key)
			averages = append(averages, stat.Average)
		}
		spark = stats.Sparkline(averages)
	}

	var b strings.Builder
	b.WriteString(cards)
	b.WriteByte('\n')
	if spark != "" {
		b.WriteString(headerStyle.Render("Averages"))
		b.WriteByte('\n')
		b.WriteString(spark)
		b.WriteByte('\n')
	}
	return b.String()
}

func card(title, value string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render(title),
		cardValueStyle.Render(value),
	)
	return cardStyle.Render(content)
}

func (m *Model) initCharTable() {
	columns := []table.Column{
		{Title: "Char", Width: 6},
		{Title: "Average", Width: 10},
		{Title: "Min", Width: 10},
		{Title: "Max", Width: 10},
	}
	var rows []table.Row
	if m.report.Characters != nil {
		for _, key := range m.report.Characters.Keys() {
			stat, _ := m.report.Characters.Get(key)
			rows = append(rows, table.Row{
				key,
				fmt.Sprintf("%.2f%%", stat.Average*100),
				fmt.Sprintf("%.2f%%", stat.MinRange*100),
				fmt.Sprintf("%.2f%%", stat.MaxRange*100),
			})
		}
	}
	m.charTable = table.New(table.WithColumns(columns), table.WithRows(rows))
}

func (m *Model) initScanTable() {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Started", Width: 20},
		{Title: "Root", Width: 30},
		{Title: "Threshold", Width: 10},
		{Title: "Files", Width: 7},
		{Title: "Credentials", Width: 12},
	}
	rows := make([]table.Row, 0, len(m.report.Scans))
	for _, scan := range m.report.Scans {
		rows = append(rows, table.Row{
			strconv.FormatInt(scan.ScanID, 10),
			scan.StartedAt.Local().Format(time.DateTime),
			scan.Root,
			strconv.Itoa(scan.Threshold),
			strconv.Itoa(scan.Files),
			strconv.Itoa(scan.Credentials),
		})
	}
	m.scanTable = table.New(table.WithColumns(columns), table.WithRows(rows))
}
