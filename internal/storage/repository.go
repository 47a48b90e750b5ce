package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/feeddash/internal/feed"
)

// Repository keeps the seen-URL list in a SQLite database.
type Repository struct {
	db    *sql.DB
	nowFn func() time.Time
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db, nowFn: time.Now}, nil
}

// IsDatabasePath reports whether a seen-list path names a SQLite file.
func IsDatabasePath(path string) bool {
	for _, ext := range []string{".db", ".sqlite", ".sqlite3"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS seen_urls (
  url TEXT PRIMARY KEY,
  marked_at TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (r *Repository) SeenURLs(ctx context.Context) (*feed.SeenList, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT url FROM seen_urls`)
	if err != nil {
		return nil, fmt.Errorf("query seen urls: %w", err)
	}
	defer rows.Close()

	urls := make([]string, 0, 256)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan seen url: %w", err)
		}
		urls = append(urls, url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return feed.NewSeenList(urls), nil
}

// Mark adds urls to the seen list when read is true and removes them
// otherwise. All urls are written in a single transaction.
func (r *Repository) Mark(ctx context.Context, urls []string, read bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `DELETE FROM seen_urls WHERE url = ?`
	if read {
		query = `
INSERT INTO seen_urls (url, marked_at)
VALUES (?, ?)
ON CONFLICT(url) DO UPDATE SET
  marked_at=excluded.marked_at
`
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare mark statement: %w", err)
	}
	defer stmt.Close()

	now := r.nowFn().UTC().Format(time.RFC3339Nano)
	for _, url := range urls {
		if read {
			_, err = stmt.ExecContext(ctx, url, now)
		} else {
			_, err = stmt.ExecContext(ctx, url)
		}
		if err != nil {
			return fmt.Errorf("mark url %q: %w", url, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
