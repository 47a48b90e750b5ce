package actions

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/feeddash/internal/app"
)

const reloadTimeout = 10 * time.Second

type Service interface {
	ReloadAll(ctx context.Context) error
	MarkRead(ctx context.Context, from, to int, read bool) (int, error)
}

type Runner interface {
	Open(program, target string) error
	Pipe(ctx context.Context, command, input string, interactive bool) error
	Yank(ctx context.Context, yanker, text string) error
}

// Suspender hands the terminal over to a child process and takes it back.
type Suspender interface {
	Suspend() error
	Resume() error
}

// StatusMsg carries a transient message for the status bar.
type StatusMsg struct {
	Status string
}

// FatalMsg ends the program with Err.
type FatalMsg struct {
	Err error
}

type ReloadSuccessMsg struct {
	Duration time.Duration
	Source   string
}

type MarkSuccessMsg struct {
	Count  int
	Read   bool
	Status string
}

func ReloadCmd(service Service, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		start := time.Now()

		if err := service.ReloadAll(ctx); err != nil {
			return FatalMsg{Err: fmt.Errorf("reload feeds: %w", err)}
		}
		return ReloadSuccessMsg{Duration: time.Since(start), Source: source}
	}
}

// MarkReadCmd waits for the marker however long it takes; its result
// decides whether the items change.
func MarkReadCmd(service Service, from, to int, read bool) tea.Cmd {
	return func() tea.Msg {
		n, err := service.MarkRead(context.Background(), from, to, read)
		if errors.Is(err, app.ErrNoSeenList) {
			return StatusMsg{Status: err.Error()}
		}
		if err != nil {
			return StatusMsg{Status: "Mark failed: " + err.Error()}
		}

		state := "unread"
		if read {
			state = "read"
		}
		status := fmt.Sprintf("Marked %d items %s", n, state)
		if n == 1 {
			status = "Marked 1 item " + state
		}
		return MarkSuccessMsg{Count: n, Read: read, Status: status}
	}
}

// OpenCmd starts program on target without waiting for it.
func OpenCmd(runner Runner, program, target string) tea.Cmd {
	return func() tea.Msg {
		if target == "" {
			return StatusMsg{Status: "Nothing to open"}
		}
		return startFailure(program, runner.Open(program, target))
	}
}

// PipeCmd runs command with input on its standard input. Interactive
// commands get the terminal for as long as they run.
func PipeCmd(runner Runner, suspender Suspender, command, input string, interactive bool) tea.Cmd {
	return func() tea.Msg {
		if interactive && suspender != nil {
			if err := suspender.Suspend(); err != nil {
				return FatalMsg{Err: fmt.Errorf("suspend terminal: %w", err)}
			}
		}
		runErr := runner.Pipe(context.Background(), command, input, interactive)
		if interactive && suspender != nil {
			if err := suspender.Resume(); err != nil {
				return FatalMsg{Err: fmt.Errorf("resume terminal: %w", err)}
			}
		}

		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return nil
		}
		return startFailure(command, runErr)
	}
}

func YankCmd(runner Runner, yanker, text string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return StatusMsg{Status: "Nothing to copy"}
		}
		err := runner.Yank(context.Background(), yanker, text)
		if err == nil {
			return StatusMsg{Status: "Copied " + text}
		}
		var exitErr *exec.ExitError
		if yanker == "" || errors.As(err, &exitErr) {
			return StatusMsg{Status: "Copy failed: " + err.Error()}
		}
		return startFailure(yanker, err)
	}
}

// startFailure maps an error from starting a child to a message. A
// missing program is reported on the status bar; anything else is fatal.
func startFailure(program string, err error) tea.Msg {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, exec.ErrNotFound):
		return StatusMsg{Status: program + ": command not found"}
	default:
		return FatalMsg{Err: err}
	}
}
