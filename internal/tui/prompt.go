package tui

import (
	"errors"
	"syscall"

	"github.com/glabrego/feeddash/internal/tui/input"
	"github.com/glabrego/feeddash/internal/tui/theme"
)

// prompt reads one line on the status row with the terminal in cooked
// mode. It reports false when the input ended or was interrupted.
func (m *Model) prompt(label string) (string, bool) {
	if err := m.console.Cooked(); err != nil {
		m.err = err
		return "", false
	}
	m.term.SaveCursor()
	m.term.MoveTo(m.layout.Status.X, m.layout.Status.Y)
	m.term.Print(label, theme.RolePromptLabel)
	m.term.ClearLineRight()
	m.term.ShowCursor()
	_ = m.term.Flush()

	text, ok := input.ReadLine(signalReader{r: m.dec, box: m.signals}, m.abortPrompt)

	if err := m.console.Raw(); err != nil {
		m.err = err
	}
	m.term.HideCursor()
	m.term.RestoreCursor()
	m.allDirty()
	return text, ok
}

// abortPrompt decides what a signal does to the prompt. SIGINT cancels
// the prompt only; SIGTERM cancels it and stays queued so the loop exits.
// Other signals wait for the loop.
func (m *Model) abortPrompt() bool {
	switch m.signals.Peek() {
	case syscall.SIGINT:
		m.signals.Take()
		return true
	case syscall.SIGTERM:
		return true
	}
	return false
}

// signalReader reports a pending signal as an interrupted read, so that a
// blocked prompt notices signals on its next timeout.
type signalReader struct {
	r   input.ByteReader
	box *Mailbox
}

func (s signalReader) ReadByte() (byte, error) {
	b, err := s.r.ReadByte()
	if errors.Is(err, input.ErrTimeout) && s.box.Peek() != nil {
		return 0, input.ErrInterrupted
	}
	return b, err
}
