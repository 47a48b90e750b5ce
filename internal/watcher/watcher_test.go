package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, paths []string) <-chan struct{} {
	t.Helper()
	w, err := New(paths, 50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	fired := make(chan struct{}, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx, func() { fired <- struct{}{} })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return fired
}

func TestWatcher_NotifiesOnFeedChange(t *testing.T) {
	dir := t.TempDir()
	feedPath := filepath.Join(dir, "news")
	if err := os.WriteFile(feedPath, []byte("a\n"), 0o644); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	fired := startWatcher(t, []string{feedPath})

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(feedPath, []byte("a\nb\n"), 0o644); err != nil {
			t.Fatalf("write feed: %v", err)
		}
	}

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a reload request after the feed changed")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	feedPath := filepath.Join(dir, "news")
	if err := os.WriteFile(feedPath, []byte("a\n"), 0o644); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	fired := startWatcher(t, []string{feedPath})

	if err := os.WriteFile(filepath.Join(dir, "other"), []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}

	select {
	case <-fired:
		t.Fatal("unexpected reload request for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "feed")}, 0, nil)
	if err == nil {
		t.Fatal("expected error watching a missing directory")
	}
}
