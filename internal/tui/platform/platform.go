package platform

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

const defaultShell = "/bin/sh"

var writeClipboard = clipboard.WriteAll

// DefaultPlumber is the program that opens URLs on goos.
func DefaultPlumber(goos string) string {
	if goos == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// Runner starts the external programs the dashboard hands items to.
type Runner struct {
	// Shell runs piped commands; empty means /bin/sh.
	Shell string
	// Env is added to the environment of every child.
	Env []string
	// Stdout and Stderr receive the output of interactive children.
	Stdout io.Writer
	Stderr io.Writer
}

func NewRunner(env ...string) Runner {
	return Runner{Env: env, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Open starts program with target as its only argument and does not wait
// for it. Its output is discarded.
func (r Runner) Open(program, target string) error {
	cmd := exec.Command(program, target)
	cmd.Env = r.environ()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", program, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Pipe runs command through the shell with input on its standard input
// and waits for it. Interactive children share the terminal; others have
// their output discarded. A non-zero exit is returned as *exec.ExitError.
func (r Runner) Pipe(ctx context.Context, command, input string, interactive bool) error {
	cmd := exec.CommandContext(ctx, r.shell(), "-c", command)
	cmd.Env = r.environ()
	cmd.Stdin = strings.NewReader(input)
	if interactive {
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %q: %w", command, err)
	}
	return nil
}

// Yank copies text with yanker, or with the system clipboard when yanker
// is empty.
func (r Runner) Yank(ctx context.Context, yanker, text string) error {
	if yanker == "" {
		if err := writeClipboard(text); err != nil {
			return fmt.Errorf("write clipboard: %w", err)
		}
		return nil
	}
	return r.Pipe(ctx, yanker, text, false)
}

func (r Runner) shell() string {
	if r.Shell != "" {
		return r.Shell
	}
	return defaultShell
}

func (r Runner) environ() []string {
	if len(r.Env) == 0 {
		return nil
	}
	return append(os.Environ(), r.Env...)
}

// CommandMarker marks links by piping them, one per line, to a shell
// command. The command's exit status decides success.
type CommandMarker struct {
	Runner    Runner
	ReadCmd   string
	UnreadCmd string
}

func (m CommandMarker) Mark(ctx context.Context, urls []string, read bool) error {
	command := m.UnreadCmd
	if read {
		command = m.ReadCmd
	}
	if command == "" {
		return fmt.Errorf("no mark command configured")
	}
	return m.Runner.Pipe(ctx, command, strings.Join(urls, "\n")+"\n", false)
}
