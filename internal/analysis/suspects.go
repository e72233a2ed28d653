package analysis

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/verte-zerg/credsift/internal/credfile"
	"github.com/verte-zerg/credsift/internal/distribution"
)

// minOutlierShare is the smallest next-character share worth flagging even
// when it exceeds the baseline range.
const minOutlierShare = 0.005

// ScanSuspects walks the corpus and writes a report of prefixes whose
// next-character distribution exceeds the baseline MaxRange. The baseline
// comes from a converted distribution JSON file.
func ScanSuspects(root, output string, baseline *distribution.Distribution, threshold int, progress func(path string)) error {
	file, err := os.Create(output)
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

	err = credfile.Walk(root, func(path string) error {
		if progress != nil {
			progress(path)
		}
		passTrie, _, err := loadPasswordTrie(path)
		if err != nil {
			return err
		}

		fmt.Fprintf(writer, "=== Analysis Results For %s ===\n\n", filepath.Base(path))
		fmt.Fprintf(writer, "------------------------\n\n")

		prefixes := passTrie.HighStandalone(threshold)
		sort.Strings(prefixes)
		for _, prefix := range prefixes {
			following := passTrie.FollowingChars(prefix)
			total := 0
			for _, count := range following {
				total += count
			}
			if total == 0 {
				continue
			}

			outliers := outlierChars(following, total, baseline)
			if len(outliers) == 0 {
				continue
			}
			fmt.Fprintf(writer, "Prefix: '%s'\n", prefix)
			fmt.Fprintf(writer, "    Standalone occurrences: %d\n", passTrie.StandaloneCount(prefix))
			fmt.Fprintf(writer, "    Total following occurrences: %d\n", total)
			fmt.Fprintf(writer, "    Outlier characters found: %s\n\n", strings.Join(outliers, ", "))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan corpus: %w", err)
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

// outlierChars lists the next characters whose share of the following count
// exceeds both the baseline MaxRange and the minimum reportable share.
func outlierChars(following map[rune]int, total int, baseline *distribution.Distribution) []string {
	chars := make([]rune, 0, len(following))
	for char := range following {
		chars = append(chars, char)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	var outliers []string
	for _, char := range chars {
		stat, ok := baseline.Get(string(char))
		if !ok {
			continue
		}
		share := float64(following[char]) / float64(total)
		if share > stat.MaxRange && share > minOutlierShare {
			outliers = append(outliers, fmt.Sprintf("'%c' (%.4f%%)", char, share*100))
		}
	}
	return outliers
}
