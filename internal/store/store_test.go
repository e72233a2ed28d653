package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/credsift/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "credsift.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListScans(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		summary := model.ScanSummary{
			StartedAt:   time.Unix(0, 0).Add(time.Duration(i) * time.Minute),
			Root:        "OrganizedPasswords",
			Threshold:   1000,
			Files:       i + 1,
			Credentials: (i + 1) * 100,
		}
		stats := map[string][]model.PrefixStat{
			"site": {{Prefix: "ab", StandaloneCount: 3, FollowingCount: 3}},
		}
		id, err := st.InsertScan(ctx, summary, stats)
		if err != nil {
			t.Fatalf("insert scan: %v", err)
		}
		ids = append(ids, id)
	}

	scans, err := st.ListScans(ctx, 0)
	if err != nil {
		t.Fatalf("list scans: %v", err)
	}
	if len(scans) != 3 {
		t.Fatalf("expected 3 scans, got %d", len(scans))
	}
	for i, scan := range scans {
		if scan.ScanID != ids[i] {
			t.Fatalf("expected chronological order, got %v", scans)
		}
	}
	if scans[2].Files != 3 || scans[2].Credentials != 300 {
		t.Fatalf("unexpected summary: %+v", scans[2])
	}
}

func TestListScansLimitsToMostRecent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		summary := model.ScanSummary{
			StartedAt: time.Unix(0, 0).Add(time.Duration(i) * time.Minute),
			Root:      "root",
			Files:     i,
		}
		if _, err := st.InsertScan(ctx, summary, nil); err != nil {
			t.Fatalf("insert scan: %v", err)
		}
	}

	scans, err := st.ListScans(ctx, 2)
	if err != nil {
		t.Fatalf("list scans: %v", err)
	}
	if len(scans) != 2 {
		t.Fatalf("expected 2 scans, got %d", len(scans))
	}
	if scans[0].Files != 3 || scans[1].Files != 4 {
		t.Fatalf("expected the two most recent scans, got %+v", scans)
	}
}

func TestListPrefixStats(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	stats := map[string][]model.PrefixStat{
		"siteB": {{Prefix: "zz", StandaloneCount: 10, FollowingCount: 1}},
		"siteA": {
			{Prefix: "ab", StandaloneCount: 3, FollowingCount: 3},
			{Prefix: "cd", StandaloneCount: 5, FollowingCount: 0},
		},
	}
	id, err := st.InsertScan(ctx, model.ScanSummary{StartedAt: time.Unix(0, 0), Root: "root"}, stats)
	if err != nil {
		t.Fatalf("insert scan: %v", err)
	}

	loaded, err := st.ListPrefixStats(ctx, id)
	if err != nil {
		t.Fatalf("list prefix stats: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 sources, got %v", loaded)
	}
	if len(loaded["siteA"]) != 2 || loaded["siteA"][0].Prefix != "ab" {
		t.Fatalf("unexpected siteA stats: %+v", loaded["siteA"])
	}
	if loaded["siteB"][0].StandaloneCount != 10 {
		t.Fatalf("unexpected siteB stats: %+v", loaded["siteB"])
	}

	empty, err := st.ListPrefixStats(ctx, id+1)
	if err != nil {
		t.Fatalf("list prefix stats: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no stats for unknown scan, got %v", empty)
	}
}
