// Package input turns the raw terminal byte stream into key and mouse
// messages.
package input

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	// ErrTimeout is returned when no byte arrived within the read timeout.
	ErrTimeout = errors.New("input: timeout")
	// ErrInterrupted is returned when a read was interrupted by a signal.
	ErrInterrupted = errors.New("input: interrupted")
)

// ByteReader returns one byte, io.EOF, ErrTimeout or ErrInterrupted.
type ByteReader interface {
	ReadByte() (byte, error)
}

const esc = 0x1b

// Decoder is a small state machine over a ByteReader. Bytes added with
// Queue are consumed before the reader is consulted.
type Decoder struct {
	r      ByteReader
	queued []byte
}

func NewDecoder(r ByteReader) *Decoder {
	return &Decoder{r: r}
}

func (d *Decoder) Queue(b []byte) {
	d.queued = append(d.queued, b...)
}

// ReadByte reads the next raw byte, honoring queued input.
func (d *Decoder) ReadByte() (byte, error) {
	if len(d.queued) > 0 {
		b := d.queued[0]
		d.queued = d.queued[1:]
		return b, nil
	}
	return d.r.ReadByte()
}

// Next returns the next tea.KeyMsg or tea.MouseMsg. A sentinel error in
// the middle of an escape sequence abandons the sequence and is returned.
// Unrecognized sequences are dropped.
func (d *Decoder) Next() (tea.Msg, error) {
	for {
		b, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != esc {
			return keyForByte(b), nil
		}
		msg, err := d.escape()
		if err != nil {
			return nil, err
		}
		if msg != nil {
			return msg, nil
		}
	}
}

func (d *Decoder) escape() (tea.Msg, error) {
	intro, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	if intro != '[' && intro != 'O' {
		return nil, nil
	}
	b, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch b {
	case 'A':
		return tea.KeyMsg{Type: tea.KeyUp}, nil
	case 'B':
		return tea.KeyMsg{Type: tea.KeyDown}, nil
	case 'C':
		return tea.KeyMsg{Type: tea.KeyRight}, nil
	case 'D':
		return tea.KeyMsg{Type: tea.KeyLeft}, nil
	case 'H':
		return tea.KeyMsg{Type: tea.KeyHome}, nil
	case 'F':
		return tea.KeyMsg{Type: tea.KeyEnd}, nil
	case '1', '7':
		return d.tilde(tea.KeyHome)
	case '4', '8':
		return d.tilde(tea.KeyEnd)
	case '5':
		return d.tilde(tea.KeyPgUp)
	case '6':
		return d.tilde(tea.KeyPgDown)
	case 'M':
		if intro == '[' {
			return d.mouse()
		}
	}
	return nil, nil
}

func (d *Decoder) tilde(k tea.KeyType) (tea.Msg, error) {
	b, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	if b != '~' {
		return nil, nil
	}
	return tea.KeyMsg{Type: k}, nil
}

func (d *Decoder) mouse() (tea.Msg, error) {
	var report [3]byte
	for i := range report {
		b, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		report[i] = b
	}
	return DecodeX10(report[0], report[1], report[2]), nil
}

// DecodeX10 decodes the three bytes following ESC [ M. Coordinates are
// returned 0-based.
func DecodeX10(cb, cx, cy byte) tea.MouseMsg {
	b := int(cb) - 32
	mods := b & (4 | 8 | 16)
	b &^= mods
	motion := b&32 != 0
	b &^= 32
	group := 0
	for b >= 64 {
		b -= 64
		group++
	}

	ev := tea.MouseEvent{
		X:      int(cx) - 33,
		Y:      int(cy) - 33,
		Shift:  mods&4 != 0,
		Alt:    mods&8 != 0,
		Ctrl:   mods&16 != 0,
		Action: tea.MouseActionPress,
	}
	button := b & 3
	switch group {
	case 0:
		switch button {
		case 0:
			ev.Button = tea.MouseButtonLeft
		case 1:
			ev.Button = tea.MouseButtonMiddle
		case 2:
			ev.Button = tea.MouseButtonRight
		default:
			ev.Button = tea.MouseButtonNone
			ev.Action = tea.MouseActionRelease
		}
	case 1:
		ev.Button = []tea.MouseButton{
			tea.MouseButtonWheelUp,
			tea.MouseButtonWheelDown,
			tea.MouseButtonWheelLeft,
			tea.MouseButtonWheelRight,
		}[button]
	default:
		ev.Button = []tea.MouseButton{
			tea.MouseButtonBackward,
			tea.MouseButtonForward,
			tea.MouseButton10,
			tea.MouseButton11,
		}[button]
	}
	if motion && ev.Action == tea.MouseActionPress {
		ev.Action = tea.MouseActionMotion
	}
	return tea.MouseMsg(ev)
}

func keyForByte(b byte) tea.KeyMsg {
	switch b {
	case '\r', '\n':
		return tea.KeyMsg{Type: tea.KeyEnter}
	case '\t':
		return tea.KeyMsg{Type: tea.KeyTab}
	case ' ':
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case 0x08, 0x7f:
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	if b < 0x20 {
		return tea.KeyMsg{Type: tea.KeyType(b)}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{rune(b)}}
}
