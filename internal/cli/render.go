package cli

import (
	"strconv"

	"github.com/bunchhieng/arx/internal/config"
	"github.com/bunchhieng/arx/internal/model"
	"github.com/bunchhieng/arx/internal/storage"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	maxTitleLen = 50
	maxNotesLen = 50
	ellipsis    = "..."
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	idStyle      = cellStyle.Width(6).Align(lipgloss.Right)
	pendingStyle = cellStyle.Bold(true)
	doneStyle    = cellStyle.Foreground(lipgloss.Color("2"))
	italicStyle  = cellStyle.Italic(true)
	linkStyle    = cellStyle.Foreground(lipgloss.Color("4"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	categoryColors = map[model.Category]lipgloss.Color{
		model.CategoryBook:    lipgloss.Color("2"),
		model.CategoryArticle: lipgloss.Color("5"),
		model.CategoryTopic:   lipgloss.Color("4"),
		model.CategoryProject: lipgloss.Color("1"),
		model.CategoryTool:    lipgloss.Color("13"),
		model.CategoryCourse:  lipgloss.Color("3"),
		model.CategoryOther:   lipgloss.Color("7"),
	}
)

// Column indexes shared by every view.
const (
	colID = iota
	colName
	colExtra
	colStatus
)

func headers(view storage.View) []string {
	switch view {
	case storage.ViewURLs:
		return []string{"ID", "name", "url"}
	case storage.ViewNotes:
		return []string{"ID", "name", "notes"}
	default:
		return []string{"ID", "name", "category", "status"}
	}
}

func row(b model.Bookmark, view storage.View) []string {
	cells := []string{strconv.Itoa(b.ID), truncateString(b.Title, maxTitleLen)}
	switch view {
	case storage.ViewURLs:
		cells = append(cells, hyperlink(b.URL, "link"))
	case storage.ViewNotes:
		notes := b.Notes
		if notes == "" {
			notes = "-"
		}
		cells = append(cells, truncateString(notes, maxNotesLen))
	default:
		cells = append(cells, b.Category.String(), b.Status.String())
	}
	return cells
}

func renderTable(bookmarks []model.Bookmark, view storage.View, style config.TableStyle) string {
	rows := make([][]string, len(bookmarks))
	for i, b := range bookmarks {
		rows[i] = row(b, view)
	}

	t := table.New().
		Headers(headers(view)...).
		Rows(rows...).
		BorderStyle(borderStyle).
		StyleFunc(func(r, col int) lipgloss.Style {
			if r == table.HeaderRow {
				return headerStyle
			}
			if r < 0 || r >= len(bookmarks) {
				return cellStyle
			}
			b := bookmarks[r]
			switch col {
			case colID:
				return idStyle
			case colName:
				if b.Status == model.StatusPending {
					return pendingStyle
				}
			case colExtra:
				switch view {
				case storage.ViewURLs:
					return linkStyle
				case storage.ViewNotes:
					return cellStyle
				}
				return cellStyle.Foreground(categoryColors[b.Category])
			case colStatus:
				switch b.Status {
				case model.StatusDone:
					return doneStyle
				case model.StatusPending:
					return italicStyle
				}
			}
			return cellStyle
		})

	return applyBorders(t, style).String()
}

func applyBorders(t *table.Table, style config.TableStyle) *table.Table {
	switch style {
	case config.StyleASCIIFull:
		return t.Border(lipgloss.ASCIIBorder()).BorderRow(true)
	case config.StyleASCIIFullCondensed:
		return t.Border(lipgloss.ASCIIBorder())
	case config.StyleASCIINoBorders:
		return noOuter(t.Border(lipgloss.ASCIIBorder()))
	case config.StyleASCIIBordersOnly:
		return t.Border(lipgloss.ASCIIBorder()).BorderColumn(false).BorderRow(true)
	case config.StyleASCIIBordersOnlyCondensed:
		return t.Border(lipgloss.ASCIIBorder()).BorderColumn(false)
	case config.StyleASCIIHorizontalOnly:
		return horizontalOnly(t.Border(lipgloss.ASCIIBorder()))
	case config.StyleASCIIMarkdown:
		return t.Border(lipgloss.MarkdownBorder()).BorderTop(false).BorderBottom(false)
	case config.StyleUTF8FullCondensed:
		return t.Border(lipgloss.NormalBorder())
	case config.StyleUTF8NoBorders:
		return noOuter(t.Border(lipgloss.NormalBorder()))
	case config.StyleUTF8BordersOnly:
		return t.Border(lipgloss.NormalBorder()).BorderColumn(false).BorderRow(true)
	case config.StyleUTF8HorizontalOnly:
		return horizontalOnly(t.Border(lipgloss.NormalBorder()))
	case config.StyleNothing:
		return t.Border(lipgloss.HiddenBorder())
	default:
		return t.Border(lipgloss.NormalBorder()).BorderRow(true)
	}
}

func horizontalOnly(t *table.Table) *table.Table {
	return t.BorderColumn(false).BorderLeft(false).BorderRight(false).BorderRow(true)
}

func noOuter(t *table.Table) *table.Table {
	return t.BorderTop(false).BorderBottom(false).BorderLeft(false).BorderRight(false)
}

// hyperlink wraps label in an OSC 8 terminal hyperlink to url.
func hyperlink(url, label string) string {
	if url == "" {
		return "━━"
	}
	return "\x1b]8;;" + url + "\x1b\\" + label + "\x1b]8;;\x1b\\"
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-len(ellipsis)]) + ellipsis
}
