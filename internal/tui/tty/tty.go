//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// Package tty owns the terminal file descriptor: line discipline, window
// size and byte reads with a timeout.
package tty

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/glabrego/feeddash/internal/tui/input"
)

// DefaultTimeout bounds each read so signals are noticed promptly.
const DefaultTimeout = 250 * time.Millisecond

type TTY struct {
	f       *os.File
	fd      int
	owned   bool
	saved   *term.State
	Timeout time.Duration
}

// Open opens a terminal device such as /dev/tty.
func Open(path string) (*TTY, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open terminal %s: %w", path, err)
	}
	t := New(f)
	t.owned = true
	return t, nil
}

// New wraps an already open terminal. Fd puts f into blocking mode, which
// the poll based reads rely on.
func New(f *os.File) *TTY {
	return &TTY{f: f, fd: int(f.Fd()), Timeout: DefaultTimeout}
}

func (t *TTY) IsTerminal() bool { return term.IsTerminal(t.fd) }

// Save records the current terminal state for Restore.
func (t *TTY) Save() error {
	st, err := term.GetState(t.fd)
	if err != nil {
		return fmt.Errorf("get terminal state: %w", err)
	}
	t.saved = st
	return nil
}

func (t *TTY) Restore() error {
	if t.saved == nil {
		return nil
	}
	if err := term.Restore(t.fd, t.saved); err != nil {
		return fmt.Errorf("restore terminal state: %w", err)
	}
	return nil
}

// Raw turns off echo and canonical input. Signal generation and output
// processing stay enabled.
func (t *TTY) Raw() error { return t.setLineMode(false) }

// Cooked turns echo and canonical input back on.
func (t *TTY) Cooked() error { return t.setLineMode(true) }

func (t *TTY) setLineMode(on bool) error {
	tio, err := unix.IoctlGetTermios(t.fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}
	if on {
		tio.Lflag |= unix.ECHO | unix.ICANON
	} else {
		tio.Lflag &^= unix.ECHO | unix.ICANON
		tio.Cc[unix.VMIN] = 1
		tio.Cc[unix.VTIME] = 0
	}
	if err := unix.IoctlSetTermios(t.fd, ioctlWriteTermios, tio); err != nil {
		return fmt.Errorf("set termios: %w", err)
	}
	return nil
}

// Size returns the window size in columns and rows.
func (t *TTY) Size() (int, int, error) {
	cols, rows, err := term.GetSize(t.fd)
	if err != nil {
		return 0, 0, fmt.Errorf("get window size: %w", err)
	}
	return cols, rows, nil
}

// ReadByte waits up to Timeout for one byte. It returns io.EOF on end of
// input, input.ErrTimeout when nothing arrived and input.ErrInterrupted
// when a signal interrupted the wait.
func (t *TTY) ReadByte() (byte, error) {
	ms := -1
	if t.Timeout > 0 {
		ms = int(t.Timeout / time.Millisecond)
	}
	fds := []unix.PollFd{{Fd: int32(t.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, input.ErrInterrupted
		}
		return 0, fmt.Errorf("poll terminal: %w", err)
	}
	if n == 0 {
		return 0, input.ErrTimeout
	}

	var b [1]byte
	n, err = unix.Read(t.fd, b[:])
	switch {
	case errors.Is(err, unix.EINTR):
		return 0, input.ErrInterrupted
	case errors.Is(err, unix.EAGAIN):
		return 0, input.ErrTimeout
	case err != nil:
		return 0, fmt.Errorf("read terminal: %w", err)
	case n == 0:
		return 0, io.EOF
	}
	return b[0], nil
}

func (t *TTY) Close() error {
	if !t.owned {
		return nil
	}
	return t.f.Close()
}
