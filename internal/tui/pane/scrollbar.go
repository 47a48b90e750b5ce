package pane

import (
	"github.com/glabrego/feeddash/internal/tui/layout"
	"github.com/glabrego/feeddash/internal/tui/term"
	"github.com/glabrego/feeddash/internal/tui/theme"
)

const trackGlyph = "│"

// Scrollbar is a one column thumb showing which part of a pane is visible.
type Scrollbar struct {
	term       term.Terminal
	bounds     layout.Rect
	tickPos    int
	tickSize   int
	focused    bool
	hidden     bool
	dirty      bool
	suppressed bool
}

func NewScrollbar(t term.Terminal) *Scrollbar {
	return &Scrollbar{term: t, dirty: true}
}

func (s *Scrollbar) SetBounds(r layout.Rect) {
	if r != s.bounds {
		s.bounds = r
		s.dirty = true
	}
}

func (s *Scrollbar) Bounds() layout.Rect { return s.bounds }

// Thumb returns the thumb offset and size in cells. A zero size means the
// whole list fits on one page.
func (s *Scrollbar) Thumb() (offset, size int) { return s.tickPos, s.tickSize }

func (s *Scrollbar) Dirty() bool { return s.dirty }

func (s *Scrollbar) MarkDirty() { s.dirty = true }

func (s *Scrollbar) SetFocus(focused bool) {
	if s.focused != focused {
		s.focused = focused
		s.dirty = true
	}
}

func (s *Scrollbar) SetHidden(hidden bool) {
	if s.hidden != hidden {
		s.hidden = hidden
		s.dirty = true
	}
}

func (s *Scrollbar) SetSuppressed(suppressed bool) {
	if s.suppressed != suppressed {
		s.suppressed = suppressed
		s.dirty = true
	}
}

// Update recomputes the thumb for a list of n rows shown h rows at a time
// starting at pos.
func (s *Scrollbar) Update(pos, n, h int) {
	track := s.bounds.H
	tickPos, tickSize := 0, 0
	if n > h && h > 0 && track > 0 {
		tickSize = int(float64(track) / (float64(n) / float64(h)))
		if tickSize < 1 {
			tickSize = 1
		}
		tickPos = int(float64(pos) / float64(n) * float64(track))
		if pos+h >= n || tickPos+tickSize >= track {
			tickPos = track - tickSize
		}
	}
	if tickPos != s.tickPos || tickSize != s.tickSize {
		s.tickPos, s.tickSize = tickPos, tickSize
		s.dirty = true
	}
}

func (s *Scrollbar) Draw() {
	if !s.dirty || s.hidden || s.suppressed || s.bounds.H <= 0 {
		return
	}
	thumb, track := theme.RoleScrollThumb, theme.RoleScrollTrack
	if !s.focused {
		thumb, track = theme.Dim(thumb), theme.Dim(track)
	}
	for y := 0; y < s.bounds.H; y++ {
		s.term.MoveTo(s.bounds.X, s.bounds.Y+y)
		if y >= s.tickPos && y < s.tickPos+s.tickSize {
			s.term.Print(" ", thumb)
		} else {
			s.term.Print(trackGlyph, track)
		}
	}
	s.dirty = false
}
