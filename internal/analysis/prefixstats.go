package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/verte-zerg/credsift/internal/credfile"
	"github.com/verte-zerg/credsift/internal/model"
)

// PrefixScan holds the result of one prefix-statistics run over a corpus.
type PrefixScan struct {
	Root        string
	Threshold   int
	Files       int
	Credentials int
	// Stats is keyed by the file name with the credential suffix trimmed.
	Stats map[string][]model.PrefixStat
}

// ScanPrefixes collects standalone and follow-on counts for every prefix
// above the threshold, per credential file under root.
func ScanPrefixes(root string, threshold int, progress func(path string)) (*PrefixScan, error) {
	scan := &PrefixScan{
		Root:      root,
		Threshold: threshold,
		Stats:     make(map[string][]model.PrefixStat),
	}

	err := credfile.Walk(root, func(path string) error {
		if progress != nil {
			progress(path)
		}
		passTrie, inserted, err := loadPasswordTrie(path)
		if err != nil {
			return err
		}
		scan.Files++
		scan.Credentials += inserted

		prefixes := passTrie.HighStandalone(threshold)
		sort.Strings(prefixes)
		stats := make([]model.PrefixStat, 0, len(prefixes))
		for _, prefix := range prefixes {
			following := 0
			for _, count := range passTrie.FollowingChars(prefix) {
				following += count
			}
			stats = append(stats, model.PrefixStat{
				Prefix:          prefix,
				StandaloneCount: passTrie.StandaloneCount(prefix),
				FollowingCount:  following,
			})
		}

		baseName := strings.TrimSuffix(filepath.Base(path), credfile.Suffix)
		scan.Stats[baseName] = stats
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan corpus: %w", err)
	}
	return scan, nil
}

// WritePrefixStats serializes per-file prefix statistics as indented JSON.
func WritePrefixStats(path string, stats map[string][]model.PrefixStat) error {
	data, err := json.MarshalIndent(stats, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode prefix stats: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write prefix stats: %w", err)
	}
	return nil
}

// LoadPrefixStats reads a prefix statistics JSON file.
func LoadPrefixStats(path string) (map[string][]model.PrefixStat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prefix stats: %w", err)
	}
	var stats map[string][]model.PrefixStat
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode prefix stats: %w", err)
	}
	return stats, nil
}
