package tui

import (
	"fmt"

	"github.com/glabrego/feeddash/internal/tui/view"
)

// draw paints every dirty widget and flushes the terminal. A lazy item
// that could not be read turns into an error here.
func (m *Model) draw() error {
	if m.clear {
		m.term.ClearScreen()
		m.clear = false
	}

	if title := view.Title(m.svc.Totals()); title != m.title {
		m.term.SetTitle(title)
		m.title = title
	}
	m.status.Update(m.statusText())

	m.feedsBar.Update(m.feeds.PageStart(), m.feeds.Len(), m.feeds.Bounds().H)
	m.itemsBar.Update(m.items.PageStart(), m.items.Len(), m.items.Bounds().H)

	m.feeds.Draw()
	m.feedsBar.Draw()
	m.items.Draw()
	m.itemsBar.Draw()
	m.status.Draw()

	if err := m.svc.Err(); err != nil {
		return fmt.Errorf("read item: %w", err)
	}
	return m.term.Flush()
}

// statusText is the pending message, or else the link of the selected
// item.
func (m *Model) statusText() string {
	if m.message != "" {
		return m.message
	}
	if it, ok := m.currentItem(); ok {
		return it.Link()
	}
	return ""
}
