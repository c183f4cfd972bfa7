// Package index keeps a local SQLite record of archived URLs so duplicate
// checks do not need a network round trip for URLs this instance has already
// saved. It is a cache in front of the Notion database, not the source of
// truth.
package index

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	_ "modernc.org/sqlite"
)

type Index struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS archived_urls (
	url TEXT PRIMARY KEY,
	page_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens (creating if needed) the index database at path.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		slog.Warn("index: failed to enable WAL mode", "error", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()

		return nil, err
	}

	slog.Debug("index: opened", "path", path)

	return &Index{db: db}, nil
}

// Has reports whether the URL was already archived by this instance. Lookup
// failures degrade to false so the caller falls through to the remote check.
func (i *Index) Has(ctx context.Context, url string) bool {
	var one int
	err := i.db.QueryRowContext(ctx, "SELECT 1 FROM archived_urls WHERE url = ?", url).Scan(&one)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("index: lookup failed", "url", url, "error", err)
		}

		return false
	}

	return true
}

// Add records an archived URL. Failures are logged but not returned; a
// missing index row only costs an extra remote lookup next time.
func (i *Index) Add(ctx context.Context, url string, pageID string, kind string) {
	_, err := i.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO archived_urls (url, page_id, kind) VALUES (?, ?, ?)",
		url, pageID, kind)
	if err != nil {
		slog.Warn("index: failed to record URL", "url", url, "error", err)
	}
}

func (i *Index) Close() error {
	return i.db.Close()
}
