package pane

import (
	"github.com/glabrego/feeddash/internal/tui/layout"
	"github.com/glabrego/feeddash/internal/tui/term"
	"github.com/glabrego/feeddash/internal/tui/theme"
	"github.com/glabrego/feeddash/internal/tui/view"
)

type StatusBar struct {
	term       term.Terminal
	bounds     layout.Rect
	text       string
	dirty      bool
	suppressed bool
}

func NewStatusBar(t term.Terminal) *StatusBar {
	return &StatusBar{term: t, dirty: true}
}

func (s *StatusBar) SetBounds(r layout.Rect) {
	if r != s.bounds {
		s.bounds = r
		s.dirty = true
	}
}

func (s *StatusBar) Bounds() layout.Rect { return s.bounds }

func (s *StatusBar) Text() string { return s.text }

// Update sets the text, marking the bar dirty only when it changes.
func (s *StatusBar) Update(text string) {
	if text != s.text {
		s.text = text
		s.dirty = true
	}
}

func (s *StatusBar) Dirty() bool { return s.dirty }

func (s *StatusBar) MarkDirty() { s.dirty = true }

func (s *StatusBar) SetSuppressed(suppressed bool) {
	if s.suppressed != suppressed {
		s.suppressed = suppressed
		s.dirty = true
	}
}

func (s *StatusBar) Draw() {
	if !s.dirty || s.suppressed || s.bounds.W <= 0 {
		return
	}
	s.term.MoveTo(s.bounds.X, s.bounds.Y)
	s.term.Print(view.Pad(s.text, s.bounds.W), theme.RoleStatus)
	s.dirty = false
}
