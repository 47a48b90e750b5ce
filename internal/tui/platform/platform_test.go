package platform

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestDefaultPlumber(t *testing.T) {
	cases := []struct {
		goos string
		want string
	}{
		{goos: "darwin", want: "open"},
		{goos: "linux", want: "xdg-open"},
		{goos: "freebsd", want: "xdg-open"},
	}
	for _, tc := range cases {
		if got := DefaultPlumber(tc.goos); got != tc.want {
			t.Fatalf("DefaultPlumber(%q)=%q want %q", tc.goos, got, tc.want)
		}
	}
}

func TestRunner_PipeWritesInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	r := NewRunner("FEEDDASH_TEST_OUT=" + out)

	if err := r.Pipe(context.Background(), `cat > "$FEEDDASH_TEST_OUT"`, "line one\n", false); err != nil {
		t.Fatalf("Pipe returned error: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "line one\n" {
		t.Fatalf("unexpected piped input: %q", got)
	}
}

func TestRunner_PipeExitStatus(t *testing.T) {
	err := NewRunner().Pipe(context.Background(), "exit 3", "", false)
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exit error, got %v", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Fatalf("unexpected exit code: %d", exitErr.ExitCode())
	}
}

func TestRunner_OpenMissingProgram(t *testing.T) {
	err := NewRunner().Open("feeddash-no-such-program", "https://example.com")
	if !errors.Is(err, exec.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRunner_YankFallsBackToClipboard(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	if err := NewRunner().Yank(context.Background(), "", "https://example.com"); err != nil {
		t.Fatalf("Yank returned error: %v", err)
	}
	if copied != "https://example.com" {
		t.Fatalf("unexpected clipboard contents: %q", copied)
	}
}

func TestCommandMarker(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "urls")
	m := CommandMarker{
		Runner:    NewRunner("SFEED_URL_FILE=" + out),
		ReadCmd:   `cat >> "$SFEED_URL_FILE"`,
		UnreadCmd: "exit 1",
	}

	if err := m.Mark(context.Background(), []string{"https://a", "https://b"}, true); err != nil {
		t.Fatalf("Mark returned error: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read url file: %v", err)
	}
	if string(got) != "https://a\nhttps://b\n" {
		t.Fatalf("unexpected url file: %q", got)
	}

	if err := m.Mark(context.Background(), []string{"https://a"}, false); err == nil {
		t.Fatal("expected failing unread command to return an error")
	}
}
