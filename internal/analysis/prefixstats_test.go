package analysis

import (
	"path/filepath"
	"testing"
)

func TestScanPrefixes(t *testing.T) {
	root := writeCorpus(t)

	scan, err := ScanPrefixes(root, 2, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if scan.Files != 1 {
		t.Fatalf("expected 1 file, got %d", scan.Files)
	}
	if scan.Credentials != 6 {
		t.Fatalf("expected 6 credentials, got %d", scan.Credentials)
	}

	stats, ok := scan.Stats["site"]
	if !ok {
		t.Fatalf("expected stats keyed by trimmed file name, got %v", scan.Stats)
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 qualifying prefix, got %v", stats)
	}
	if stats[0].Prefix != "ab" || stats[0].StandaloneCount != 3 || stats[0].FollowingCount != 3 {
		t.Fatalf("unexpected prefix stat: %+v", stats[0])
	}
}

func TestPrefixStatsJSONRoundTrip(t *testing.T) {
	root := writeCorpus(t)
	scan, err := ScanPrefixes(root, 2, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	path := filepath.Join(root, "prefix_statistics.json")
	if err := WritePrefixStats(path, scan.Stats); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := LoadPrefixStats(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != len(scan.Stats) {
		t.Fatalf("expected %d sources, got %d", len(scan.Stats), len(loaded))
	}
	if loaded["site"][0] != scan.Stats["site"][0] {
		t.Fatalf("stats drifted across round trip: %+v vs %+v", loaded["site"][0], scan.Stats["site"][0])
	}
}
