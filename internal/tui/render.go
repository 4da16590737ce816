package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bunchhieng/arx/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	searchStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)
)

func (m appModel) renderHeader() string {
	header := fmt.Sprintf("arx - Bookmarks  [Filter: %s]  [%d bookmarks]", m.filter, len(m.filtered))
	return headerStyle.Render(header)
}

func (m appModel) renderSearchBar() string {
	return searchStyle.Width(max(m.width-2, 0)).Render("/" + m.searchQuery)
}

func (m appModel) renderList() string {
	if m.confirmDelete {
		return m.renderDeleteConfirmation()
	}
	if len(m.filtered) == 0 {
		return "No bookmarks found. Press tab to change the filter or 'q' to quit."
	}

	// Reserve space for header, search and status.
	listHeight := max(m.height-6, 1)
	start := 0
	if m.selected >= listHeight {
		start = m.selected - listHeight + 1
	}

	var b strings.Builder
	for i := start; i < len(m.filtered) && i < start+listHeight; i++ {
		b.WriteString(m.renderBookmark(m.filtered[i], i == m.selected))
		b.WriteString("\n")
	}
	return b.String()
}

func (m appModel) renderBookmark(bm model.Bookmark, selected bool) string {
	icon, iconStyle := "○", mutedStyle
	switch bm.Status {
	case model.StatusPending:
		icon, iconStyle = "◐", pendingStyle
	case model.StatusDone:
		icon = "●"
	}

	tags := ""
	if len(bm.Tags) > 0 {
		tags = fmt.Sprintf(" [%s]", strings.Join(bm.Tags, ","))
	}

	line := fmt.Sprintf("%s %s %s %s %s%s",
		iconStyle.Render(icon),
		mutedStyle.Render(fmt.Sprintf("#%-3d", bm.ID)),
		titleStyle.Render(truncate(bm.Title, 60)),
		mutedStyle.Render(bm.Category.String()),
		mutedStyle.Render(formatTime(bm.CreatedAt)),
		tagStyle.Render(tags),
	)

	if selected {
		return selectedStyle.Render(line)
	}
	return " " + line
}

func (m appModel) renderStatusBar() string {
	var parts []string
	if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	} else {
		pos := 0
		if len(m.filtered) > 0 {
			pos = m.selected + 1
		}
		parts = append(parts, fmt.Sprintf("%d/%d", pos, len(m.filtered)))
	}
	parts = append(parts, "[o]pen [c]opy [d]one [r]emove [/]search [tab]filter [q]uit")

	return statusBarStyle.Width(m.width).Render(strings.Join(parts, "  |  "))
}

func (m appModel) renderDeleteConfirmation() string {
	title := ""
	if b, ok := m.current(); ok {
		title = truncate(b.Title, 50)
	}
	text := fmt.Sprintf("Remove bookmark: %s?\n\n[y]es / [n]o", title)
	return selectedStyle.Width(max(m.width-4, 0)).Padding(1, 2).Render(text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
