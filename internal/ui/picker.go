package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PickItem is one selectable declaration in the interactive picker.
type PickItem struct {
	Label      string
	Detail     string
	Documented bool
	Selected   bool
}

type pickerModel struct {
	title    string
	items    []PickItem
	cursor   int
	width    int
	aborted  bool
	finished bool
}

// NewPickerModel returns a Bubble Tea model that lets the user choose which
// declarations to document. Undocumented items start selected.
func NewPickerModel(title string, items []PickItem) tea.Model {
	m := &pickerModel{title: title, items: items, width: 80}
	for i := range m.items {
		m.items[i].Selected = !m.items[i].Documented
	}
	return m
}

func (m *pickerModel) Init() tea.Cmd { return nil }

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			if len(m.items) > 0 {
				m.items[m.cursor].Selected = !m.items[m.cursor].Selected
			}
		case "a":
			for i := range m.items {
				m.items[i].Selected = true
			}
		case "n":
			for i := range m.items {
				m.items[i].Selected = false
			}
		case "enter":
			m.finished = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *pickerModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	docStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	labelWidth := m.width - 24
	if labelWidth < 20 {
		labelWidth = 20
	}
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if item.Selected {
			box = "[x]"
		}
		mark := "  "
		if item.Documented {
			mark = docStyle.Render("✓ ")
		}
		label := truncate(item.Label, labelWidth)
		line := fmt.Sprintf("%s%s %s%s", cursor, box, mark, label)
		if item.Detail != "" {
			line += " " + dimStyle.Render(item.Detail)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("space toggle · a all · n none · enter confirm · q cancel"))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the indices the user confirmed, or aborted=true when the
// picker was cancelled.
func Selected(model tea.Model) (indices []int, aborted bool) {
	m, ok := model.(*pickerModel)
	if !ok || m.aborted {
		return nil, true
	}
	for i, item := range m.items {
		if item.Selected {
			indices = append(indices, i)
		}
	}
	return indices, false
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
