package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glabrego/feeddash/internal/feed"
	"github.com/glabrego/feeddash/internal/storage"
)

func TestIntegration_MarkReadPersistsAcrossReload(t *testing.T) {
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "seen.db"))
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	first := writeFeed(t, "first",
		recordLine(testNow, "a", "https://example.com/a"),
		recordLine(testNow, "b", "https://example.com/b"),
	)
	second := writeFeed(t, "second",
		recordLine(testNow, "b again", "https://example.com/b"),
	)
	feeds := []*feed.Feed{feed.FromPath(first), feed.FromPath(second)}
	svc := NewService(Options{Feeds: feeds, Seen: repo, Marker: repo, NowFn: func() time.Time { return testNow }})
	t.Cleanup(func() { _ = svc.Close() })

	if err := svc.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if feeds[0].New != 2 || feeds[1].New != 1 {
		t.Fatalf("expected everything new before marking, got %d and %d", feeds[0].New, feeds[1].New)
	}

	if _, err := svc.MarkRead(ctx, 1, 1, true); err != nil {
		t.Fatalf("MarkRead returned error: %v", err)
	}
	if err := svc.ReloadAll(ctx); err != nil {
		t.Fatalf("ReloadAll returned error: %v", err)
	}
	if feeds[0].New != 1 {
		t.Fatalf("expected one new item in first feed after reload, got %d", feeds[0].New)
	}
	if feeds[1].New != 0 {
		t.Fatalf("expected link marked in one feed to be read in the other, got %d", feeds[1].New)
	}

	if err := svc.Load(feeds[1]); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if svc.Current() != feeds[1] || svc.Items()[0].New {
		t.Fatal("expected switched feed to reflect the stored seen list")
	}
}
