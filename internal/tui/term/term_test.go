package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glabrego/feeddash/internal/tui/theme"
)

func TestOutput_EmitsSequences(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf)

	out.MoveTo(4, 2)
	out.Print("hi", theme.RoleSelected)
	out.EnableMouse()
	out.HideCursor()
	out.SetTitle("(1/2) - feeddash")
	require.Zero(t, buf.Len(), "output must be buffered until Flush")
	require.NoError(t, out.Flush())

	got := buf.String()
	require.Contains(t, got, "\x1b[3;5H")
	require.Contains(t, got, "\x1b[7mhi")
	require.Contains(t, got, "\x1b[?1000h")
	require.Contains(t, got, "\x1b[?25l")
	require.Contains(t, got, "(1/2) - feeddash")
}

func TestRecorder_GridAndRoles(t *testing.T) {
	r := NewRecorder(6, 2)
	r.MoveTo(1, 0)
	r.Print("abcdefgh", theme.RoleBold)
	require.Equal(t, " abcde", r.Line(0))
	require.Equal(t, theme.RoleBold, r.RoleAt(1, 0))
	require.Equal(t, theme.RoleNormal, r.RoleAt(0, 0))

	r.MoveTo(0, 1)
	r.Print("界x", theme.RoleNormal)
	require.Equal(t, "界x   ", r.Line(1))

	r.MoveTo(3, 0)
	r.ClearLineRight()
	require.Equal(t, " ab   ", r.Line(0))

	r.ClearScreen()
	require.Equal(t, strings.Repeat(" ", 6), r.Line(0))
	require.Equal(t, 1, r.Clears)
	require.Equal(t, 3, r.Prints)
}
