// Package pane implements the scrollable list, scrollbar and status bar
// widgets. Widgets track whether they need repainting and only paint when
// dirty, except for cursor moves within a page which repaint the two
// affected rows right away.
package pane

import (
	"strings"

	"github.com/glabrego/feeddash/internal/tui/layout"
	"github.com/glabrego/feeddash/internal/tui/term"
	"github.com/glabrego/feeddash/internal/tui/theme"
	"github.com/glabrego/feeddash/internal/tui/view"
)

// Row is a record shown on one pane line.
type Row interface {
	Text() string
	Bold() bool
}

type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Pane is a vertical list of rows with a selected position. The optional
// hooks override how rows are looked up, displayed and searched.
type Pane[T Row] struct {
	term       term.Terminal
	bounds     layout.Rect
	rows       []T
	pos        int
	focused    bool
	hidden     bool
	dirty      bool
	suppressed bool

	RowAt  func(rows []T, i int) (T, bool)
	Format func(row T) string
	Match  func(row T, query string) bool
}

func New[T Row](t term.Terminal) *Pane[T] {
	return &Pane[T]{term: t, dirty: true}
}

func (p *Pane[T]) SetBounds(r layout.Rect) {
	if r != p.bounds {
		p.bounds = r
		p.dirty = true
	}
}

func (p *Pane[T]) Bounds() layout.Rect { return p.bounds }

// SetRows replaces the rows and keeps the position in range.
func (p *Pane[T]) SetRows(rows []T) {
	p.rows = rows
	p.pos = layout.ClampCursor(p.pos, len(rows))
	p.dirty = true
}

// Reset replaces the rows and moves to the first one.
func (p *Pane[T]) Reset(rows []T) {
	p.rows = rows
	p.pos = 0
	p.dirty = true
}

func (p *Pane[T]) Rows() []T { return p.rows }

func (p *Pane[T]) Len() int { return len(p.rows) }

func (p *Pane[T]) Pos() int { return p.pos }

func (p *Pane[T]) Current() (T, bool) { return p.row(p.pos) }

func (p *Pane[T]) PageStart() int { return layout.PageStart(p.pos, p.bounds.H) }

func (p *Pane[T]) Dirty() bool { return p.dirty }

func (p *Pane[T]) MarkDirty() { p.dirty = true }

func (p *Pane[T]) Focused() bool { return p.focused }

func (p *Pane[T]) SetFocus(focused bool) {
	if p.focused != focused {
		p.focused = focused
		p.dirty = true
	}
}

func (p *Pane[T]) Hidden() bool { return p.hidden }

func (p *Pane[T]) SetHidden(hidden bool) {
	if p.hidden != hidden {
		p.hidden = hidden
		p.dirty = true
	}
}

// SetSuppressed stops all painting while the screen is too small.
func (p *Pane[T]) SetSuppressed(suppressed bool) {
	if p.suppressed != suppressed {
		p.suppressed = suppressed
		p.dirty = true
	}
}

// Contains reports whether the cell belongs to the pane or to the
// scrollbar column right of it.
func (p *Pane[T]) Contains(x, y int) bool {
	r := p.bounds
	r.W++
	return r.Contains(x, y)
}

// RowAtY maps a screen row inside the pane to a row index.
func (p *Pane[T]) RowAtY(y int) int {
	return p.PageStart() + y - p.bounds.Y
}

// SetPos selects row pos, clamped into range. Moving within the current
// page repaints the old and new rows immediately; moving to another page
// marks the pane dirty.
func (p *Pane[T]) SetPos(pos int) {
	n := len(p.rows)
	if n == 0 {
		return
	}
	pos = layout.ClampCursor(pos, n)
	if pos == p.pos {
		return
	}
	prev := p.pos
	p.pos = pos

	h := p.bounds.H
	if h <= 0 || layout.PageStart(prev, h) != layout.PageStart(pos, h) {
		p.dirty = true
		return
	}
	if p.dirty || !p.drawable() {
		return
	}
	p.drawRow(prev)
	p.drawRow(pos)
}

func (p *Pane[T]) ScrollBy(n int) { p.SetPos(p.pos + n) }

// ScrollPages moves by whole pages and lands on a page boundary: the first
// row of the next page going down, the last row of the previous page going
// up.
func (p *Pane[T]) ScrollPages(k int) {
	h := p.bounds.H
	if h <= 0 || k == 0 {
		return
	}
	if k > 0 {
		p.SetPos(p.pos + k*h - p.pos%h)
		return
	}
	p.SetPos(p.pos + k*h - p.pos%h + h - 1)
}

func (p *Pane[T]) SetStart() { p.SetPos(0) }

func (p *Pane[T]) SetEnd() { p.SetPos(len(p.rows) - 1) }

// Search moves to the next row matching query in direction dir. It stops
// at the first or last row without wrapping.
func (p *Pane[T]) Search(query string, dir Direction) bool {
	if query == "" || len(p.rows) == 0 {
		return false
	}
	step := int(dir)
	for i := p.pos + step; i >= 0 && i < len(p.rows); i += step {
		row, ok := p.row(i)
		if ok && p.matches(row, query) {
			p.SetPos(i)
			return true
		}
	}
	return false
}

// Draw paints the page containing the selected row if the pane is dirty.
func (p *Pane[T]) Draw() {
	if !p.dirty || !p.drawable() {
		return
	}
	start := p.PageStart()
	for y := 0; y < p.bounds.H; y++ {
		p.drawRow(start + y)
	}
	p.dirty = false
}

func (p *Pane[T]) drawable() bool {
	return !p.hidden && !p.suppressed && p.bounds.W > 0 && p.bounds.H > 0
}

func (p *Pane[T]) drawRow(i int) {
	y := i - p.PageStart()
	if y < 0 || y >= p.bounds.H {
		return
	}
	p.term.MoveTo(p.bounds.X, p.bounds.Y+y)
	row, ok := p.row(i)
	if !ok {
		p.term.Print(strings.Repeat(" ", p.bounds.W), theme.RoleNormal)
		return
	}
	role := theme.RoleNormal
	switch {
	case i == p.pos && p.focused:
		role = theme.RoleSelected
	case i == p.pos:
		role = theme.RoleSelectedDim
	case row.Bold():
		role = theme.RoleBold
	}
	p.term.Print(view.Pad(p.text(row), p.bounds.W), role)
}

func (p *Pane[T]) row(i int) (T, bool) {
	if p.RowAt != nil {
		return p.RowAt(p.rows, i)
	}
	if i < 0 || i >= len(p.rows) {
		var zero T
		return zero, false
	}
	return p.rows[i], true
}

func (p *Pane[T]) text(row T) string {
	if p.Format != nil {
		return p.Format(row)
	}
	return row.Text()
}

func (p *Pane[T]) matches(row T, query string) bool {
	if p.Match != nil {
		return p.Match(row, query)
	}
	return ContainsFold(p.text(row), query)
}

// ContainsFold is a case-insensitive substring test.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
