package analysis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/credsift/internal/distribution"
	"github.com/verte-zerg/credsift/internal/model"
)

func TestScanSuspectsFlagsOutlierDistributions(t *testing.T) {
	root := writeCorpus(t)
	output := filepath.Join(root, "suspicious_distributions.txt")

	// The corpus continues "ab" with 'a' two thirds of the time; a baseline
	// capping 'a' at 50% makes that an outlier. 'b' stays within range.
	baseline := distribution.New()
	baseline.Set("a", model.CharacterStat{Average: 0.3, MinRange: 0.1, MaxRange: 0.5})
	baseline.Set("b", model.CharacterStat{Average: 0.3, MinRange: 0.1, MaxRange: 0.9})

	if err := ScanSuspects(root, output, baseline, 2, nil); err != nil {
		t.Fatalf("scan: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	report := string(data)
	if !strings.Contains(report, "=== Analysis Results For site_passwords.txt ===") {
		t.Fatalf("expected per-file header, got:\n%s", report)
	}
	if !strings.Contains(report, "Prefix: 'ab'") {
		t.Fatalf("expected flagged prefix, got:\n%s", report)
	}
	if !strings.Contains(report, "Standalone occurrences: 3") {
		t.Fatalf("expected standalone count, got:\n%s", report)
	}
	if !strings.Contains(report, "'a' (66.6667%)") {
		t.Fatalf("expected outlier character share, got:\n%s", report)
	}
	if strings.Contains(report, "'b'") {
		t.Fatalf("did not expect 'b' to be flagged:\n%s", report)
	}
}

func TestScanSuspectsQuietWhenWithinBaseline(t *testing.T) {
	root := writeCorpus(t)
	output := filepath.Join(root, "suspicious_distributions.txt")

	baseline := distribution.New()
	baseline.Set("a", model.CharacterStat{Average: 0.5, MinRange: 0.1, MaxRange: 0.9})
	baseline.Set("b", model.CharacterStat{Average: 0.5, MinRange: 0.1, MaxRange: 0.9})

	if err := ScanSuspects(root, output, baseline, 2, nil); err != nil {
		t.Fatalf("scan: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if strings.Contains(string(data), "Prefix:") {
		t.Fatalf("expected no flagged prefixes, got:\n%s", data)
	}
}
