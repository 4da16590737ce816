package tui

import (
	"fmt"
	"time"

	"github.com/bunchhieng/arx/internal/model"
	"github.com/bunchhieng/arx/internal/storage"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

const statusTimeout = 3 * time.Second

type filterMode int

const (
	filterDefault filterMode = iota
	filterAll
	filterHidden
)

func (f filterMode) String() string {
	switch f {
	case filterAll:
		return "All"
	case filterHidden:
		return "Hidden"
	default:
		return "Default"
	}
}

func (f filterMode) options() storage.ListOptions {
	switch f {
	case filterAll:
		return storage.ListOptions{All: true}
	case filterHidden:
		return storage.ListOptions{View: storage.ViewHidden}
	default:
		return storage.ListOptions{}
	}
}

// appModel is mutated only from Update, so the store is never touched
// from a tea.Cmd goroutine.
type appModel struct {
	store    *storage.Store
	openURL  func(string) error
	copyText func(string) error

	filtered      []model.Bookmark
	selected      int
	filter        filterMode
	searchQuery   string
	searchMode    bool
	confirmDelete bool
	width         int
	height        int
	err           error
	statusMsg     string
	statusSeq     int
}

type clearStatusMsg struct {
	seq int
}

func initialModel(s *storage.Store, openURL, copyText func(string) error) appModel {
	m := appModel{
		store:    s,
		openURL:  openURL,
		copyText: copyText,
		filter:   filterDefault,
		width:    80,
		height:   24,
	}
	m.applyFilters()
	return m
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirmDelete {
			return m.handleDeleteConfirmation(msg)
		}
		if m.searchMode {
			return m.handleSearchInput(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "j", "down":
			if m.selected < len(m.filtered)-1 {
				m.selected++
			}
			return m, nil

		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "g":
			m.selected = 0
			return m, nil

		case "G":
			m.selected = max(len(m.filtered)-1, 0)
			return m, nil

		case "o", "enter":
			return m.openSelected()

		case "c":
			return m.copySelected()

		case "d":
			return m.markDone()

		case "r":
			if _, ok := m.current(); ok {
				m.confirmDelete = true
			}
			return m, nil

		case "/":
			m.searchMode = true
			m.searchQuery = ""
			return m, nil

		case "esc":
			m.searchQuery = ""
			m.applyFilters()
			return m, nil

		case "tab":
			m.filter = (m.filter + 1) % 3
			m.selected = 0
			m.applyFilters()
			return m, nil
		}
	}
	return m, nil
}

func (m appModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	s := m.renderHeader() + "\n"
	if m.searchMode || m.searchQuery != "" {
		s += m.renderSearchBar() + "\n"
	}
	s += m.renderList() + "\n"
	s += m.renderStatusBar()
	return s
}

// applyFilters recomputes the visible list from the store. A search query
// reorders results by fuzzy score.
func (m *appModel) applyFilters() {
	filtered, err := storage.Filter(m.store.Bookmarks, m.filter.options())
	if err != nil {
		m.err = err
		return
	}

	if m.searchQuery != "" {
		titles := make([]string, len(filtered))
		for i, b := range filtered {
			titles[i] = b.Title
		}
		matches := fuzzy.Find(m.searchQuery, titles)
		ranked := make([]model.Bookmark, len(matches))
		for i, match := range matches {
			ranked[i] = filtered[match.Index]
		}
		filtered = ranked
	}

	m.filtered = filtered
	if m.selected >= len(m.filtered) {
		m.selected = len(m.filtered) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m appModel) current() (model.Bookmark, bool) {
	if len(m.filtered) == 0 || m.selected >= len(m.filtered) {
		return model.Bookmark{}, false
	}
	return m.filtered[m.selected], true
}

func (m appModel) setStatus(format string, args ...any) (appModel, tea.Cmd) {
	m.statusSeq++
	m.statusMsg = fmt.Sprintf(format, args...)
	seq := m.statusSeq
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m appModel) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.searchQuery = ""
	case tea.KeyEnter:
		m.searchMode = false
	case tea.KeyBackspace:
		if r := []rune(m.searchQuery); len(r) > 0 {
			m.searchQuery = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.searchQuery += string(msg.Runes)
	default:
		return m, nil
	}
	m.applyFilters()
	return m, nil
}

func (m appModel) openSelected() (tea.Model, tea.Cmd) {
	b, ok := m.current()
	if !ok {
		return m, nil
	}
	if !b.HasURL() {
		return m.setStatus("Error: %v", &model.NoURLError{ID: b.ID})
	}
	if err := m.openURL(b.URL); err != nil {
		return m.setStatus("Error: %v: %v", model.ErrOpen, err)
	}
	return m.setStatus("Opened: %s", b.URL)
}

func (m appModel) copySelected() (tea.Model, tea.Cmd) {
	b, ok := m.current()
	if !ok {
		return m, nil
	}
	if !b.HasURL() {
		return m.setStatus("Error: %v", &model.NoURLError{ID: b.ID})
	}
	if err := m.copyText(b.URL); err != nil {
		return m.setStatus("Error: %v: %v", model.ErrClipboard, err)
	}
	return m.setStatus("Copied: %s", b.URL)
}

func (m appModel) markDone() (tea.Model, tea.Cmd) {
	b, ok := m.current()
	if !ok {
		return m, nil
	}
	if b.IsDone() {
		return m.setStatus("Already marked as done")
	}
	if _, err := m.store.MarkDone(storage.IDQuery(b.ID)); err != nil {
		return m.setStatus("Error: %v", err)
	}
	if err := m.store.Save(); err != nil {
		return m.setStatus("Error: %v", err)
	}
	m.applyFilters()
	return m.setStatus("Marked #%d as done", b.ID)
}

func (m appModel) handleDeleteConfirmation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmDelete = false
		b, ok := m.current()
		if !ok {
			return m, nil
		}
		if _, err := m.store.Remove([]storage.Query{storage.IDQuery(b.ID)}, nil); err != nil {
			return m.setStatus("Error: %v", err)
		}
		if err := m.store.Save(); err != nil {
			return m.setStatus("Error: %v", err)
		}
		m.applyFilters()
		return m.setStatus("Removed #%d - %s", b.ID, b.Title)

	case "n", "N", "esc":
		m.confirmDelete = false
	}
	return m, nil
}

// Run starts the interactive browser over s. Every change is saved immediately.
func Run(s *storage.Store, openURL, copyText func(string) error) error {
	p := tea.NewProgram(initialModel(s, openURL, copyText), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
