package term

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/glabrego/feeddash/internal/tui/theme"
)

// Cell is one screen cell of a Recorder. A zero Rune marks the second
// half of a wide character.
type Cell struct {
	Rune rune
	Role theme.Role
}

// Recorder is an in-memory Terminal that keeps a cell grid and counts
// operations. It is meant for tests.
type Recorder struct {
	width, height int
	cells         [][]Cell
	x, y          int
	savedX        int
	savedY        int

	CursorVisible bool
	MouseEnabled  bool
	AltScreen     bool
	Title         string

	Prints  int
	Clears  int
	Flushes int
}

func NewRecorder(width, height int) *Recorder {
	r := &Recorder{CursorVisible: true}
	r.Resize(width, height)
	return r
}

// Resize discards the grid contents.
func (r *Recorder) Resize(width, height int) {
	r.width, r.height = width, height
	r.cells = make([][]Cell, height)
	for y := range r.cells {
		r.cells[y] = make([]Cell, width)
		r.clearFrom(0, y)
	}
}

func (r *Recorder) Size() (int, int) { return r.width, r.height }

// ResetCounters zeroes the operation counters.
func (r *Recorder) ResetCounters() {
	r.Prints, r.Clears, r.Flushes = 0, 0, 0
}

func (r *Recorder) Line(y int) string {
	if y < 0 || y >= r.height {
		return ""
	}
	var b strings.Builder
	for _, c := range r.cells[y] {
		if c.Rune != 0 {
			b.WriteRune(c.Rune)
		}
	}
	return b.String()
}

func (r *Recorder) RoleAt(x, y int) theme.Role {
	if y < 0 || y >= r.height || x < 0 || x >= r.width {
		return theme.RoleNormal
	}
	return r.cells[y][x].Role
}

func (r *Recorder) Cursor() (int, int) { return r.x, r.y }

func (r *Recorder) MoveTo(x, y int) { r.x, r.y = x, y }

func (r *Recorder) Print(text string, role theme.Role) {
	r.Prints++
	if r.y < 0 || r.y >= r.height {
		return
	}
	row := r.cells[r.y]
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if r.x+w > r.width {
			r.x = r.width
			return
		}
		row[r.x] = Cell{Rune: ch, Role: role}
		if w == 2 {
			row[r.x+1] = Cell{Role: role}
		}
		r.x += w
	}
}

func (r *Recorder) ClearScreen() {
	r.Clears++
	for y := range r.cells {
		r.clearFrom(0, y)
	}
	r.x, r.y = 0, 0
}

func (r *Recorder) ClearLineRight() {
	if r.y >= 0 && r.y < r.height {
		r.clearFrom(r.x, r.y)
	}
}

func (r *Recorder) clearFrom(x, y int) {
	for i := max(x, 0); i < r.width; i++ {
		r.cells[y][i] = Cell{Rune: ' '}
	}
}

func (r *Recorder) ShowCursor()     { r.CursorVisible = true }
func (r *Recorder) HideCursor()     { r.CursorVisible = false }
func (r *Recorder) SaveCursor()     { r.savedX, r.savedY = r.x, r.y }
func (r *Recorder) RestoreCursor()  { r.x, r.y = r.savedX, r.savedY }
func (r *Recorder) EnterAltScreen() { r.AltScreen = true }
func (r *Recorder) ExitAltScreen()  { r.AltScreen = false }
func (r *Recorder) EnableMouse()    { r.MouseEnabled = true }
func (r *Recorder) DisableMouse()   { r.MouseEnabled = false }

func (r *Recorder) SetTitle(title string) { r.Title = title }

func (r *Recorder) Flush() error {
	r.Flushes++
	return nil
}
