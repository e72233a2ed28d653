// Package analysis computes prefix and character statistics over a
// credential corpus tree.
package analysis

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/verte-zerg/credsift/internal/credfile"
	"github.com/verte-zerg/credsift/internal/distribution"
	"github.com/verte-zerg/credsift/internal/model"
	"github.com/verte-zerg/credsift/internal/trie"
)

// Percentile bounds for the reported range.
const (
	rangeLowerPercentile = 5
	rangeUpperPercentile = 95
)

// CalcDistributions scans every credential file under root, aggregates the
// percentage distribution of characters following high-standalone prefixes,
// and writes the textual report consumed by the convert command.
func CalcDistributions(root, output string, threshold int, progress func(path string)) error {
	perChar := make(map[rune][]float64)

	err := credfile.Walk(root, func(path string) error {
		if progress != nil {
			progress(path)
		}
		passTrie, _, err := loadPasswordTrie(path)
		if err != nil {
			return err
		}
		for _, prefix := range passTrie.HighStandalone(threshold) {
			following := passTrie.FollowingChars(prefix)
			total := 0
			for _, count := range following {
				total += count
			}
			if total == 0 {
				continue
			}
			for char, count := range following {
				percentage := float64(count) / float64(total) * 100
				perChar[char] = append(perChar[char], percentage)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan corpus: %w", err)
	}

	dist := summarize(perChar)
	return writeReportFile(output, dist)
}

// summarize reduces the aggregated percentages to average and percentile
// range per character, ordered by character for stable output.
func summarize(perChar map[rune][]float64) *distribution.Distribution {
	chars := make([]rune, 0, len(perChar))
	for char := range perChar {
		chars = append(chars, char)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	dist := distribution.New()
	for _, char := range chars {
		percentages := perChar[char]
		sort.Float64s(percentages)
		dist.Set(string(char), model.CharacterStat{
			Average:  mean(percentages) / 100,
			MinRange: percentile(percentages, rangeLowerPercentile) / 100,
			MaxRange: percentile(percentages, rangeUpperPercentile) / 100,
		})
	}
	return dist
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// percentile picks the value at the given percentile from sorted data.
func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func writeReportFile(path string, dist *distribution.Distribution) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close after explicit flush below.
			_ = cerr
		}
	}()

	writer := bufio.NewWriter(file)
	if err := distribution.WriteReport(writer, dist); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

// loadPasswordTrie inserts every non-empty password from a credential file
// into a fresh trie and reports how many were inserted.
func loadPasswordTrie(path string) (*trie.Trie, int, error) {
	creds, err := credfile.ReadCredentials(path)
	if err != nil {
		return nil, 0, err
	}
	passTrie := trie.New()
	inserted := 0
	for _, cred := range creds {
		password := strings.TrimSpace(cred.Password)
		if password == "" {
			continue
		}
		passTrie.Insert(password)
		inserted++
	}
	return passTrie, inserted, nil
}
