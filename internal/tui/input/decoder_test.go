package input

import (
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// script replays bytes and errors in order and returns io.EOF when done.
type script struct {
	steps []any
}

func bytesScript(s string) *script {
	sc := &script{}
	for i := 0; i < len(s); i++ {
		sc.steps = append(sc.steps, s[i])
	}
	return sc
}

func (s *script) then(steps ...any) *script {
	s.steps = append(s.steps, steps...)
	return s
}

func (s *script) ReadByte() (byte, error) {
	if len(s.steps) == 0 {
		return 0, io.EOF
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	switch v := step.(type) {
	case byte:
		return v, nil
	case error:
		return 0, v
	}
	panic("unexpected script step")
}

func nextKey(t *testing.T, d *Decoder) string {
	t.Helper()
	msg, err := d.Next()
	require.NoError(t, err)
	key, ok := msg.(tea.KeyMsg)
	require.True(t, ok, "expected key message, got %T", msg)
	return key.String()
}

func TestDecoder_PlainKeys(t *testing.T) {
	d := NewDecoder(bytesScript("jk \t\n\r\x0c\x04\x02\x06q"))
	for _, want := range []string{"j", "k", " ", "tab", "enter", "enter", "ctrl+l", "ctrl+d", "ctrl+b", "ctrl+f", "q"} {
		require.Equal(t, want, nextKey(t, d))
	}
	_, err := d.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestDecoder_EscapeSequences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "\x1b[A", want: "up"},
		{in: "\x1b[B", want: "down"},
		{in: "\x1bOC", want: "right"},
		{in: "\x1bOD", want: "left"},
		{in: "\x1b[H", want: "home"},
		{in: "\x1b[F", want: "end"},
		{in: "\x1b[1~", want: "home"},
		{in: "\x1b[7~", want: "home"},
		{in: "\x1b[4~", want: "end"},
		{in: "\x1b[8~", want: "end"},
		{in: "\x1b[5~", want: "pgup"},
		{in: "\x1b[6~", want: "pgdown"},
	}
	for _, tc := range cases {
		d := NewDecoder(bytesScript(tc.in))
		require.Equal(t, tc.want, nextKey(t, d), "input %q", tc.in)
	}
}

func TestDecoder_DiscardsUnrecognizedSequences(t *testing.T) {
	d := NewDecoder(bytesScript("\x1bx\x1b[5x\x1b[Zj"))
	require.Equal(t, "j", nextKey(t, d))
}

func TestDecoder_SentinelAbandonsSequence(t *testing.T) {
	d := NewDecoder(bytesScript("\x1b[").then(ErrTimeout, byte('A')))
	_, err := d.Next()
	require.ErrorIs(t, err, ErrTimeout)
	require.Equal(t, "A", nextKey(t, d))

	d = NewDecoder(bytesScript("\x1b").then(ErrInterrupted))
	_, err = d.Next()
	require.ErrorIs(t, err, ErrInterrupted)
}

func TestDecoder_MouseLeftClick(t *testing.T) {
	d := NewDecoder(bytesScript("\x1b[M &$"))
	msg, err := d.Next()
	require.NoError(t, err)
	mouse, ok := msg.(tea.MouseMsg)
	require.True(t, ok)
	require.Equal(t, 5, mouse.X)
	require.Equal(t, 3, mouse.Y)
	require.Equal(t, tea.MouseButtonLeft, mouse.Button)
	require.Equal(t, tea.MouseActionPress, mouse.Action)
}

func TestDecodeX10(t *testing.T) {
	release := DecodeX10(32+3, 33, 33)
	require.Equal(t, tea.MouseActionRelease, release.Action)
	require.Equal(t, tea.MouseButtonNone, release.Button)

	right := DecodeX10(32+2, 40, 34)
	require.Equal(t, tea.MouseButtonRight, right.Button)
	require.Equal(t, 7, right.X)
	require.Equal(t, 1, right.Y)

	wheelUp := DecodeX10(32+64, 33, 33)
	require.Equal(t, tea.MouseButtonWheelUp, wheelUp.Button)
	wheelDown := DecodeX10(32+65, 33, 33)
	require.Equal(t, tea.MouseButtonWheelDown, wheelDown.Button)

	back := DecodeX10(32+128, 33, 33)
	require.Equal(t, tea.MouseButtonBackward, back.Button)
	forward := DecodeX10(32+129, 33, 33)
	require.Equal(t, tea.MouseButtonForward, forward.Button)

	ctrlLeft := DecodeX10(32+16, 33, 33)
	require.True(t, ctrlLeft.Ctrl)
	require.Equal(t, tea.MouseButtonLeft, ctrlLeft.Button)
}

func TestDecoder_QueueIsReadFirst(t *testing.T) {
	d := NewDecoder(bytesScript("q"))
	d.Queue([]byte("tj"))
	require.Equal(t, "t", nextKey(t, d))
	require.Equal(t, "j", nextKey(t, d))
	require.Equal(t, "q", nextKey(t, d))
}

func TestReadLine(t *testing.T) {
	line, ok := ReadLine(bytesScript("helo\x7flo\x01\n"), nil)
	require.True(t, ok)
	require.Equal(t, "hello", line)

	line, ok = ReadLine(bytesScript("caf\xc3\xa9\x08e\r"), nil)
	require.True(t, ok)
	require.Equal(t, "cafe", line)

	_, ok = ReadLine(bytesScript("partial"), nil)
	require.False(t, ok, "EOF must yield no input")

	keepGoing := bytesScript("a").then(ErrTimeout, ErrInterrupted, byte('b'), byte('\n'))
	line, ok = ReadLine(keepGoing, func() bool { return false })
	require.True(t, ok)
	require.Equal(t, "ab", line)

	_, ok = ReadLine(bytesScript("a").then(ErrInterrupted), func() bool { return true })
	require.False(t, ok)

	_, ok = ReadLine(bytesScript("a").then(errors.New("boom")), nil)
	require.False(t, ok)
}
