package stats

import (
	"context"
	"sort"

	"github.com/verte-zerg/credsift/internal/distribution"
	"github.com/verte-zerg/credsift/internal/model"
	"github.com/verte-zerg/credsift/internal/store"
)

// defaultTopPrefixes bounds the top-prefix table.
const defaultTopPrefixes = 15

// SourcePrefix pairs a prefix statistic with the file it came from.
type SourcePrefix struct {
	Source string
	model.PrefixStat
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Characters  *distribution.Distribution
	Scans       []model.ScanSummary
	TopPrefixes []SourcePrefix
}

// BuildReport loads and prepares data for stats rendering. dist may be nil
// when no distribution JSON is available; the top-prefix section comes from
// the most recent recorded scan.
func BuildReport(ctx context.Context, st *store.Store, dist *distribution.Distribution, last int) (Report, error) {
	scans, err := st.ListScans(ctx, last)
	if err != nil {
		return Report{}, err
	}

	report := Report{Characters: dist, Scans: scans}
	if len(scans) > 0 {
		latest := scans[len(scans)-1]
		stats, err := st.ListPrefixStats(ctx, latest.ScanID)
		if err != nil {
			return Report{}, err
		}
		report.TopPrefixes = TopPrefixes(stats, defaultTopPrefixes)
	}
	return report, nil
}

// TopPrefixes returns the n prefixes with the highest standalone counts
// across all sources.
func TopPrefixes(stats map[string][]model.PrefixStat, n int) []SourcePrefix {
	if n <= 0 {
		return nil
	}
	var items []SourcePrefix
	for source, records := range stats {
		for _, record := range records {
			items = append(items, SourcePrefix{Source: source, PrefixStat: record})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].StandaloneCount == items[j].StandaloneCount {
			if items[i].Source == items[j].Source {
				return items[i].Prefix < items[j].Prefix
			}
			return items[i].Source < items[j].Source
		}
		return items[i].StandaloneCount > items[j].StandaloneCount
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
