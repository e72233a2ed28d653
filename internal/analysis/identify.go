package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/verte-zerg/credsift/internal/model"
)

// curveThreshold returns the maximum tolerable follow-on count for a prefix
// with the given standalone count. The curve was fit against known junk
// entries: a heavily repeated password that almost never continues into a
// longer one is machine-generated filler rather than a human choice.
func curveThreshold(standalone float64) (float64, bool) {
	switch {
	case standalone >= 3000 && standalone <= 5000:
		return 1, true
	case standalone > 5000 && standalone <= 20000:
		return standalone/500 - 10, true
	case standalone > 20000:
		return standalone/120 - 135, true
	default:
		return 0, false
	}
}

// Identify selects passwords with suspicious follow-on ratios from prefix
// statistics. The result is sorted and de-duplicated.
func Identify(stats map[string][]model.PrefixStat) []string {
	seen := make(map[string]struct{})
	for _, records := range stats {
		for _, record := range records {
			threshold, ok := curveThreshold(float64(record.StandaloneCount))
			if !ok {
				continue
			}
			if float64(record.FollowingCount) < threshold {
				seen[record.Prefix] = struct{}{}
			}
		}
	}
	suspects := make([]string, 0, len(seen))
	for password := range seen {
		suspects = append(suspects, password)
	}
	sort.Strings(suspects)
	return suspects
}

// WriteSuspects serializes the suspicious password list as indented JSON.
func WriteSuspects(path string, suspects []string) error {
	data, err := json.MarshalIndent(suspects, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode suspects: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write suspects: %w", err)
	}
	return nil
}

// LoadSuspects reads a suspicious password list JSON file.
func LoadSuspects(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suspects: %w", err)
	}
	var suspects []string
	if err := json.Unmarshal(data, &suspects); err != nil {
		return nil, fmt.Errorf("failed to decode suspects: %w", err)
	}
	return suspects, nil
}
