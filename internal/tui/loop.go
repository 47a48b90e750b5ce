package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sys/unix"

	"github.com/glabrego/feeddash/internal/tui/actions"
	"github.com/glabrego/feeddash/internal/tui/input"
)

// Run takes over the terminal and processes input until the user quits,
// input ends, a terminating signal arrives or a fatal error occurs. It
// returns the process exit code. The terminal is restored on every path,
// panics included.
func (m *Model) Run(ctx context.Context) (int, error) {
	stop := m.signals.Listen()
	defer stop()
	defer m.cleanup()

	if err := m.setup(); err != nil {
		return 1, err
	}
	if m.opts.AutoCmd != "" {
		m.dec.Queue([]byte(m.opts.AutoCmd))
	}

	for !m.quit && m.err == nil {
		if err := m.draw(); err != nil {
			return 1, err
		}

		msg, err := m.dec.Next()
		switch {
		case err == nil:
			m.dispatch(msg)
		case errors.Is(err, input.ErrTimeout), errors.Is(err, input.ErrInterrupted):
		case errors.Is(err, io.EOF):
			m.quit = true
		default:
			return 1, err
		}

		if sig := m.signals.Take(); sig != nil {
			m.handleSignal(sig)
		}
		if ctx.Err() != nil {
			m.quit = true
		}
	}
	if m.err != nil {
		return 1, m.err
	}
	return m.exitCode, nil
}

// dispatch feeds msg and every command it produces through Update.
func (m *Model) dispatch(msg tea.Msg) {
	for msg != nil {
		cmd := m.Update(msg)
		if cmd == nil {
			return
		}
		msg = cmd()
	}
}

func (m *Model) handleSignal(sig os.Signal) {
	m.log.Debug("signal", "sig", sig.String())
	switch sig {
	case unix.SIGWINCH:
		if err := m.resize(); err != nil {
			m.err = err
		}
	case syscall.SIGHUP:
		m.dispatch(actions.ReloadCmd(m.svc, "signal")())
	case syscall.SIGINT, syscall.SIGTERM:
		m.exitCode = exitCode(sig)
		m.quit = true
	}
}

func (m *Model) setup() error {
	if err := m.console.Save(); err != nil {
		return err
	}
	m.armed = true
	if err := m.console.Raw(); err != nil {
		return err
	}
	m.term.EnterAltScreen()
	m.term.HideCursor()
	if m.mouse {
		m.term.EnableMouse()
	}
	return m.resize()
}

// cleanup gives the terminal back in the state it was found. It is safe
// to call more than once.
func (m *Model) cleanup() {
	if !m.armed {
		return
	}
	m.armed = false
	m.term.ShowCursor()
	m.term.DisableMouse()
	m.term.SetTitle("")
	m.term.ExitAltScreen()
	_ = m.term.Flush()
	if err := m.console.Restore(); err != nil {
		m.log.Warn("restore terminal", "err", err)
	}
}

// Suspend hands the terminal to an interactive child.
func (m *Model) Suspend() error {
	m.term.DisableMouse()
	m.term.ShowCursor()
	m.term.ExitAltScreen()
	if err := m.term.Flush(); err != nil {
		return err
	}
	return m.console.Restore()
}

// Resume takes the terminal back after Suspend and repaints everything.
func (m *Model) Resume() error {
	if err := m.console.Raw(); err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	m.term.EnterAltScreen()
	m.term.HideCursor()
	if m.mouse {
		m.term.EnableMouse()
	}
	return m.resize()
}
