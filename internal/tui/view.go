package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/music-catalog/internal/library"
	"github.com/handiism/music-catalog/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500")).
			Underline(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Music Catalog"))
	b.WriteString("\n")
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Loading catalog..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewSection())
	}

	if m.mode != ModeBrowse {
		b.WriteString("\n")
		b.WriteString(m.viewForm())
	}

	b.WriteString("\n")
	if m.pending > 0 {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	if m.status.Message != "" {
		b.WriteString(renderEntry(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, len(model.Kinds))
	for _, kind := range model.Kinds {
		label := fmt.Sprintf("%s (%d)", kind.Title(), m.lib.Section(kind).Count)
		if kind == m.section {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, dimStyle.Render(label))
		}
	}
	return strings.Join(tabs, "   ")
}

func (m Model) viewSection() string {
	section := m.lib.Section(m.section)
	if section.Err != nil {
		return errorStyle.Render(fmt.Sprintf("Error loading %s: %v", m.section.Plural(), section.Err)) + "\n"
	}
	if section.Count == 0 {
		return dimStyle.Render(fmt.Sprintf("No %s yet. Press n to add one.", m.section.Plural())) + "\n"
	}

	var rows []string
	switch m.section {
	case model.KindArtist:
		for _, a := range m.lib.Artists() {
			rows = append(rows, a.FullName())
		}
	case model.KindAlbum:
		for _, a := range m.lib.Albums() {
			rows = append(rows, a.Label())
		}
	case model.KindSong:
		for _, s := range m.lib.Songs() {
			rows = append(rows, s.Label())
		}
	}

	editing := m.lib.Controller(m.section).Form().EditingID()
	var b strings.Builder
	for i, row := range rows {
		prefix := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor[m.section] {
			prefix = "› "
			style = selectedStyle
		}
		if editing != "" && editing == m.idAt(i) {
			row += dimStyle.Render("  (editing)")
		}
		b.WriteString(style.Render(prefix + row))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) idAt(i int) string {
	switch m.section {
	case model.KindArtist:
		if items := m.lib.Artists(); i < len(items) {
			return items[i].ID
		}
	case model.KindAlbum:
		if items := m.lib.Albums(); i < len(items) {
			return items[i].ID
		}
	case model.KindSong:
		if items := m.lib.Songs(); i < len(items) {
			return items[i].ID
		}
	}
	return ""
}

func (m Model) viewForm() string {
	var b strings.Builder

	title := fmt.Sprintf("New %s", m.section)
	if m.mode == ModeEdit {
		title = fmt.Sprintf("Edit %s %s", m.section, m.lib.Controller(m.section).Form().EditingID())
	}
	b.WriteString(subtitleStyle.Render(title))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		marker := "  "
		if i == m.focus {
			marker = "› "
		}
		b.WriteString(infoStyle.Render(fmt.Sprintf("%s%-13s", marker, f.label)))
		if f.selector {
			b.WriteString(fmt.Sprintf("‹ %s ›", m.selectorLabel(f.name)))
		} else {
			b.WriteString(f.input.View())
		}
		b.WriteString("\n")
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderEntry(e LogEntry) string {
	var style lipgloss.Style
	prefix := "•"
	switch e.Level {
	case library.LevelError:
		style = errorStyle
		prefix = "✗"
	case library.LevelWarning:
		style = warningStyle
		prefix = "!"
	case library.LevelSuccess:
		style = successStyle
		prefix = "✓"
	case library.LevelInfo:
		style = infoStyle
		prefix = "›"
	default:
		style = dimStyle
	}
	return style.Render(prefix + " " + e.Message)
}

func (m Model) renderLogs() string {
	var b strings.Builder
	for _, log := range m.logs {
		b.WriteString(renderEntry(log))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) getHelpText() string {
	switch m.mode {
	case ModeCreate:
		if m.section != model.KindArtist {
			return "enter: add • tab: next field • ←/→: choose • esc: back"
		}
		return "enter: add • tab: next field • esc: back"
	case ModeEdit:
		return "enter: save • tab: next field • esc: cancel"
	}
	return "tab: section • ↑/↓: move • n: new • e: edit • d: delete • r: reload • v: verbose • q: quit"
}
