package distribution

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ConvertFile parses the report at inputPath and writes the JSON document to
// outputPath with 4-space indentation. The whole document is buffered before
// writing, so a failed write leaves no partial output behind. Returns the
// number of entries written.
func ConvertFile(inputPath, outputPath string, diag func(line string)) (int, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open input: %w", err)
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()

	dist, err := ParseReader(in, diag)
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}

	data, err := json.MarshalIndent(dist, "", "    ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode JSON: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write output: %w", err)
	}
	return dist.Len(), nil
}

// LoadJSON reads a previously generated distribution JSON file, preserving
// its key order.
func LoadJSON(path string) (*Distribution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read distribution JSON: %w", err)
	}
	dist := New()
	if err := json.Unmarshal(data, dist); err != nil {
		return nil, fmt.Errorf("failed to decode distribution JSON: %w", err)
	}
	return dist, nil
}

// WriteReport emits the textual report form, one line per entry, with
// fractions converted back to percentages.
func WriteReport(w io.Writer, dist *Distribution) error {
	for _, key := range dist.Keys() {
		stat, _ := dist.Get(key)
		_, err := fmt.Fprintf(w, "Character: '%s' - Average: %.2f%% - Range: [%.2f%%, %.2f%%]\n",
			key, stat.Average*100, stat.MinRange*100, stat.MaxRange*100)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}
