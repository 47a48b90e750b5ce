package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/feeddash/internal/feed"
	"github.com/glabrego/feeddash/internal/tui/actions"
	"github.com/glabrego/feeddash/internal/tui/pane"
)

// Update applies one message and returns the follow-up command, if any.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.message = ""
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.message = ""
		return m.handleMouse(msg)
	case tea.QuitMsg:
		m.quit = true
	case actions.StatusMsg:
		m.message = msg.Status
	case actions.MarkSuccessMsg:
		m.message = msg.Status
		m.items.MarkDirty()
		m.refreshFeeds()
	case actions.ReloadSuccessMsg:
		m.log.Debug("feeds reloaded", "source", msg.Source, "took", msg.Duration)
		m.items.SetRows(m.itemRows())
		m.refreshFeeds()
	case actions.FatalMsg:
		m.err = msg.Err
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.active().ScrollBy(-1)
	case "down", "j":
		m.active().ScrollBy(1)
	case "left", "h":
		m.cyclePane(-1, false)
	case "right", "l":
		m.cyclePane(1, false)
	case "tab":
		m.cyclePane(1, true)
	case "home", "g":
		m.active().SetStart()
	case "end", "G":
		m.active().SetEnd()
	case "pgup", "ctrl+b":
		m.active().ScrollPages(-1)
	case "pgdown", " ", "ctrl+f":
		m.active().ScrollPages(1)
	case "/", "?":
		if m.active().Len() == 0 {
			return nil
		}
		label := "Search (forward): "
		if msg.String() == "?" {
			label = "Search (backward): "
		}
		query, ok := m.prompt(label)
		if !ok {
			query = ""
		}
		m.lastQuery = query
		m.search(msg.String() == "/")
	case "n":
		m.search(true)
	case "N":
		m.search(false)
	case "ctrl+l":
		if err := m.resize(); err != nil {
			m.err = err
		}
	case "R":
		return actions.ReloadCmd(m.svc, "key")
	case "a", "e", "@":
		if it, ok := m.focusedItem(); ok {
			return actions.OpenCmd(m.runner, m.opts.Plumber, it.Enclosure())
		}
	case "m":
		m.mouse = !m.mouse
		if m.mouse {
			m.term.EnableMouse()
		} else {
			m.term.DisableMouse()
		}
	case "s":
		m.toggleSidebar()
	case "t":
		m.onlyNew = !m.onlyNew
		m.refreshFeeds()
	case "o", "enter":
		if m.selected == paneFeeds {
			m.loadSelectedFeed()
			return nil
		}
		return m.openCurrent()
	case "c", "p", "|":
		return m.pipeCurrent()
	case "y":
		if it, ok := m.focusedItem(); ok {
			return actions.YankCmd(m.runner, m.opts.Yanker, it.Link())
		}
	case "E":
		if it, ok := m.focusedItem(); ok {
			return actions.YankCmd(m.runner, m.opts.Yanker, it.Enclosure())
		}
	case "f", "F":
		if n := m.items.Len(); n > 0 {
			return actions.MarkReadCmd(m.svc, 0, n-1, msg.String() == "f")
		}
	case "r", "u":
		if m.selected == paneItems && m.items.Len() > 0 {
			pos := m.items.Pos()
			return actions.MarkReadCmd(m.svc, pos, pos, msg.String() == "r")
		}
	case "q", "ctrl+d":
		return tea.Quit
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.mouse || m.layout.TooSmall || msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonBackward:
		if !m.sidebarHidden {
			m.focus(paneFeeds)
		}
		return nil
	case tea.MouseButtonForward:
		m.focus(paneItems)
		return nil
	}

	for i := range paneCount {
		p := m.paneAt(i)
		if p.Hidden() || !p.Contains(msg.X, msg.Y) {
			continue
		}
		changed := m.selected != i
		m.focus(i)
		row := p.RowAtY(msg.Y)

		switch msg.Button {
		case tea.MouseButtonLeft:
			if row >= p.Len() {
				return nil
			}
			if i == paneFeeds {
				p.SetPos(row)
				m.loadSelectedFeed()
				return nil
			}
			if p.Pos() == row && !changed {
				return m.openCurrent()
			}
			p.SetPos(row)
		case tea.MouseButtonRight:
			if i == paneItems && row < p.Len() {
				p.SetPos(row)
				return m.pipeCurrent()
			}
		case tea.MouseButtonWheelUp:
			p.ScrollPages(-1)
		case tea.MouseButtonWheelDown:
			p.ScrollPages(1)
		}
		return nil
	}
	return nil
}

// focusedItem is the selected item when the item list has the focus.
func (m *Model) focusedItem() (*feed.Item, bool) {
	if m.selected != paneItems {
		return nil, false
	}
	return m.currentItem()
}

func (m *Model) openCurrent() tea.Cmd {
	it, ok := m.focusedItem()
	if !ok {
		return nil
	}
	return actions.OpenCmd(m.runner, m.opts.Plumber, it.Link())
}

func (m *Model) pipeCurrent() tea.Cmd {
	it, ok := m.focusedItem()
	if !ok {
		return nil
	}
	return actions.PipeCmd(m.runner, m, m.opts.Piper, it.Line+"\n", true)
}

func (m *Model) search(forward bool) {
	if m.lastQuery == "" {
		return
	}
	dir := pane.Forward
	if !forward {
		dir = pane.Backward
	}
	m.active().Search(m.lastQuery, dir)
}

func (m *Model) toggleSidebar() {
	m.sidebarHidden = !m.sidebarHidden
	m.feeds.SetHidden(m.sidebarHidden)
	m.feedsBar.SetHidden(m.sidebarHidden)
	if m.sidebarHidden && m.selected == paneFeeds {
		m.focus(paneItems)
	}
	m.relayout()
}
