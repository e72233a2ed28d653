package stats

import (
	"fmt"
	"io"
	"strconv"
	"time"
)

// RenderText writes the plain-text stats report.
func RenderText(w io.Writer, report Report) error {
	if report.Characters != nil && report.Characters.Len() > 0 {
		if err := renderCharacters(w, report); err != nil {
			return err
		}
	}
	if err := renderScans(w, report); err != nil {
		return err
	}
	return renderTopPrefixes(w, report)
}

func renderCharacters(w io.Writer, report Report) error {
	keys := report.Characters.Keys()
	rows := make([][]string, 0, len(keys))
	averages := make([]float64, 0, len(keys))
	for _, key := range keys {
		stat, _ := report.Characters.Get(key)
		rows = append(rows, []string{
			key,
			fmt.Sprintf("%.2f%%", stat.Average*100),
			fmt.Sprintf("%.2f%%", stat.MinRange*100),
			fmt.Sprintf("%.2f%%", stat.MaxRange*100),
		})
		averages = append(averages, stat.Average)
	}

	if _, err := fmt.Fprintf(w, "Characters (%d)\n", len(keys)); err != nil {
		return err
	}
	headers := []string{"Char", "Average", "Min", "Max"}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	spark := Sparkline(averages)
	if width := TerminalWidth() - len("Averages: "); len(spark) > width && width > 0 {
		spark = spark[:width]
	}
	if _, err := fmt.Fprintf(w, "Averages: %s\n\n", spark); err != nil {
		return err
	}
	return nil
}

func renderScans(w io.Writer, report Report) error {
	if len(report.Scans) == 0 {
		_, err := fmt.Fprintln(w, "No recorded scans. Run: credsift prefixes")
		return err
	}
	rows := make([][]string, 0, len(report.Scans))
	for _, scan := range report.Scans {
		rows = append(rows, []string{
			strconv.FormatInt(scan.ScanID, 10),
			scan.StartedAt.Local().Format(time.DateTime),
			scan.Root,
			strconv.Itoa(scan.Threshold),
			strconv.Itoa(scan.Files),
			strconv.Itoa(scan.Credentials),
		})
	}
	if _, err := fmt.Fprintf(w, "Scans (%d)\n", len(report.Scans)); err != nil {
		return err
	}
	headers := []string{"ID", "Started", "Root", "Threshold", "Files", "Credentials"}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func renderTopPrefixes(w io.Writer, report Report) error {
	if len(report.TopPrefixes) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(report.TopPrefixes))
	for _, item := range report.TopPrefixes {
		rows = append(rows, []string{
			item.Source,
			item.Prefix,
			strconv.Itoa(item.StandaloneCount),
			strconv.Itoa(item.FollowingCount),
		})
	}
	if _, err := fmt.Fprintln(w, "Top prefixes (latest scan)"); err != nil {
		return err
	}
	headers := []string{"Source", "Prefix", "Standalone", "Following"}
	rightAlign := map[int]bool{2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
