// Package term is the screen-side terminal interface of the dashboard:
// cursor movement, styled printing and mode toggles. Reading input and
// switching line discipline live in package tty.
package term

import (
	"bufio"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/glabrego/feeddash/internal/tui/theme"
)

// Terminal receives every byte the dashboard paints. Coordinates are
// 0-based cells.
type Terminal interface {
	MoveTo(x, y int)
	Print(text string, role theme.Role)
	ClearScreen()
	ClearLineRight()
	ShowCursor()
	HideCursor()
	SaveCursor()
	RestoreCursor()
	EnterAltScreen()
	ExitAltScreen()
	EnableMouse()
	DisableMouse()
	SetTitle(title string)
	Flush() error
}

// Output writes escape sequences through termenv and styles text with a
// lipgloss theme. Writes are buffered until Flush.
type Output struct {
	w     *bufio.Writer
	out   *termenv.Output
	theme theme.Theme
}

func NewOutput(w io.Writer) *Output {
	bw := bufio.NewWriterSize(w, 16*1024)
	r := lipgloss.NewRenderer(bw)
	r.SetColorProfile(termenv.ANSI)
	return &Output{
		w:     bw,
		out:   termenv.NewOutput(bw, termenv.WithProfile(termenv.ANSI)),
		theme: theme.New(r),
	}
}

func (o *Output) MoveTo(x, y int) { o.out.MoveCursor(y+1, x+1) }

func (o *Output) Print(text string, role theme.Role) {
	_, _ = o.w.WriteString(o.theme.Render(role, text))
}

func (o *Output) ClearScreen()    { o.out.ClearScreen() }
func (o *Output) ClearLineRight() { o.out.ClearLineRight() }
func (o *Output) ShowCursor()     { o.out.ShowCursor() }
func (o *Output) HideCursor()     { o.out.HideCursor() }
func (o *Output) SaveCursor()     { o.out.SaveCursorPosition() }
func (o *Output) RestoreCursor()  { o.out.RestoreCursorPosition() }
func (o *Output) EnterAltScreen() { o.out.AltScreen() }
func (o *Output) ExitAltScreen()  { o.out.ExitAltScreen() }
func (o *Output) EnableMouse()    { o.out.EnableMouse() }
func (o *Output) DisableMouse()   { o.out.DisableMouse() }

func (o *Output) SetTitle(title string) { o.out.SetWindowTitle(title) }

func (o *Output) Flush() error { return o.w.Flush() }
