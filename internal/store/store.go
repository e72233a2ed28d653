// Package store handles SQLite persistence for scan history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/verte-zerg/credsift/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for prefix-scan history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scans (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			root TEXT NOT NULL,
			threshold INTEGER NOT NULL,
			files INTEGER NOT NULL,
			credentials INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS scan_prefix_stats (
			scan_id INTEGER NOT NULL,
			source TEXT NOT NULL,
			prefix TEXT NOT NULL,
			standalone_count INTEGER NOT NULL,
			following_count INTEGER NOT NULL,
			PRIMARY KEY (scan_id, source, prefix)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scans_started_at ON scans(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertScan stores a completed prefix scan and its per-file statistics.
// summary.ScanID is ignored; the assigned id is returned.
func (s *Store) InsertScan(ctx context.Context, summary model.ScanSummary, stats map[string][]model.PrefixStat) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO scans (started_at, root, threshold, files, credentials)
		 VALUES (?, ?, ?, ?, ?)`,
		summary.StartedAt.Format(time.RFC3339Nano),
		summary.Root,
		summary.Threshold,
		summary.Files,
		summary.Credentials,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(stats) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO scan_prefix_stats (scan_id, source, prefix, standalone_count, following_count)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		sources := make([]string, 0, len(stats))
		for source := range stats {
			sources = append(sources, source)
		}
		sort.Strings(sources)
		for _, source := range sources {
			for _, ps := range stats[source] {
				if _, err := stmt.ExecContext(ctx, id, source, ps.Prefix, ps.StandaloneCount, ps.FollowingCount); err != nil {
					return 0, err
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListScans returns scan summaries in chronological order, limited to the
// most recent last entries when last > 0.
func (s *Store) ListScans(ctx context.Context, last int) ([]model.ScanSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, root, threshold, files, credentials
		 FROM scans
		 ORDER BY started_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var scans []model.ScanSummary
	for rows.Next() {
		var summary model.ScanSummary
		var startedAt string
		if err := rows.Scan(&summary.ScanID, &startedAt, &summary.Root, &summary.Threshold, &summary.Files, &summary.Credentials); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse scan timestamp: %w", err)
		}
		summary.StartedAt = parsed
		scans = append(scans, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if last > 0 && len(scans) > last {
		scans = scans[len(scans)-last:]
	}
	return scans, nil
}

// ListPrefixStats returns the per-source prefix statistics for one scan.
func (s *Store) ListPrefixStats(ctx context.Context, scanID int64) (map[string][]model.PrefixStat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, prefix, standalone_count, following_count
		 FROM scan_prefix_stats
		 WHERE scan_id = ?
		 ORDER BY source ASC, prefix ASC`, scanID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	stats := make(map[string][]model.PrefixStat)
	for rows.Next() {
		var source string
		var ps model.PrefixStat
		if err := rows.Scan(&source, &ps.Prefix, &ps.StandaloneCount, &ps.FollowingCount); err != nil {
			return nil, err
		}
		stats[source] = append(stats[source], ps)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
