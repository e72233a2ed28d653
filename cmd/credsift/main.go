// Package main provides the CLI entrypoint for credsift.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"

	"github.com/verte-zerg/credsift/internal/analysis"
	"github.com/verte-zerg/credsift/internal/config"
	"github.com/verte-zerg/credsift/internal/credfile"
	"github.com/verte-zerg/credsift/internal/distribution"
	"github.com/verte-zerg/credsift/internal/model"
	"github.com/verte-zerg/credsift/internal/stats"
	"github.com/verte-zerg/credsift/internal/statsui"
	"github.com/verte-zerg/credsift/internal/store"
)

const (
	defaultInput         = "character_distributions.txt"
	defaultOutput        = "char_distributions.json"
	defaultRoot          = "OrganizedPasswords"
	defaultCalcThreshold = 50000
	defaultScanThreshold = 1000
	defaultStatsLast     = 10
	defaultPrefixStats   = "prefix_statistics.json"
	defaultSuspectsOut   = "suspicious_distributions.txt"
	defaultIdentifiedOut = "suspicious_passwords.json"
	defaultRemovedOut    = "removed_credentials.txt"
)

var (
	convertInput  string
	convertOutput string

	sortRoot string

	calcRoot      string
	calcOutput    string
	calcThreshold int

	prefixRoot      string
	prefixOutput    string
	prefixThreshold int
	prefixNoStore   bool

	suspectRoot      string
	suspectDist      string
	suspectOutput    string
	suspectThreshold int

	identifyStats  string
	identifyOutput string

	cleanRoot    string
	cleanList    string
	cleanRemoved string

	statsLast        int
	statsDist        string
	statsInteractive bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "credsift",
		Short:         "Credential corpus toolkit",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadDotEnv()
		},
	}

	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newSortCmd())
	rootCmd.AddCommand(newCalcCmd())
	rootCmd.AddCommand(newPrefixesCmd())
	rootCmd.AddCommand(newSuspectsCmd())
	rootCmd.AddCommand(newIdentifyCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a distribution report to JSON",
		Args:  cobra.NoArgs,
		RunE:  runConvertCmd,
	}
	cmd.Flags().StringVar(&convertInput, "input", defaultInput, "distribution report path")
	cmd.Flags().StringVar(&convertOutput, "output", defaultOutput, "JSON output path")
	return cmd
}

func runConvertCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "input", &convertInput, config.EnvString(config.EnvInput), fileCfg.Convert.Input)
	applyStringConfig(cmd, "output", &convertOutput, config.EnvString(config.EnvOutput), fileCfg.Convert.Output)

	skipped := 0
	entries, err := distribution.ConvertFile(convertInput, convertOutput, func(line string) {
		skipped++
		logErrf("Skipping invalid line: %s\n", line)
	})
	if err != nil {
		return err
	}
	if skipped > 0 {
		logErrf("Skipped %d invalid lines\n", skipped)
	}
	return printf(cmd, "Conversion complete. JSON saved to %s (%d entries)\n", convertOutput, entries)
}

func newSortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort credential files in place by password",
		Args:  cobra.NoArgs,
		RunE:  runSortCmd,
	}
	cmd.Flags().StringVar(&sortRoot, "root", defaultRoot, "corpus root directory")
	return cmd
}

func runSortCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "root", &sortRoot, config.EnvString(config.EnvRoot), fileCfg.Corpus.Root)

	files, err := credfile.SortTree(sortRoot, func(path string) {
		logErrf("Sorting %s\n", path)
	})
	if err != nil {
		return err
	}
	return printf(cmd, "Sorted %d credential files by password in %s\n", files, sortRoot)
}

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the character distribution report for a corpus",
		Args:  cobra.NoArgs,
		RunE:  runCalcCmd,
	}
	cmd.Flags().StringVar(&calcRoot, "root", defaultRoot, "corpus root directory")
	cmd.Flags().StringVar(&calcOutput, "output", defaultInput, "distribution report output path")
	cmd.Flags().IntVar(&calcThreshold, "threshold", defaultCalcThreshold, "minimum standalone occurrences per prefix")
	return cmd
}

func runCalcCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "root", &calcRoot, config.EnvString(config.EnvRoot), fileCfg.Corpus.Root)
	if err := applyThreshold(cmd, &calcThreshold, fileCfg); err != nil {
		return err
	}
	if calcThreshold < 0 {
		return fmt.Errorf("--threshold must be >= 0")
	}

	err = analysis.CalcDistributions(calcRoot, calcOutput, calcThreshold, func(path string) {
		logErrf("Processing %s\n", path)
	})
	if err != nil {
		return err
	}
	return printf(cmd, "Character distributions logged to %s\n", calcOutput)
}

func newPrefixesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefixes",
		Short: "Collect per-file prefix statistics",
		Args:  cobra.NoArgs,
		RunE:  runPrefixesCmd,
	}
	cmd.Flags().StringVar(&prefixRoot, "root", defaultRoot, "corpus root directory")
	cmd.Flags().StringVar(&prefixOutput, "output", defaultPrefixStats, "prefix statistics JSON output path")
	cmd.Flags().IntVar(&prefixThreshold, "threshold", defaultScanThreshold, "minimum standalone occurrences per prefix")
	cmd.Flags().BoolVar(&prefixNoStore, "no-store", false, "skip recording the scan in the history database")
	return cmd
}

func runPrefixesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "root", &prefixRoot, config.EnvString(config.EnvRoot), fileCfg.Corpus.Root)
	if err := applyThreshold(cmd, &prefixThreshold, fileCfg); err != nil {
		return err
	}
	if prefixThreshold < 0 {
		return fmt.Errorf("--threshold must be >= 0")
	}

	started := time.Now()
	scan, err := analysis.ScanPrefixes(prefixRoot, prefixThreshold, func(path string) {
		logErrf("Processing %s\n", path)
	})
	if err != nil {
		return err
	}
	if err := analysis.WritePrefixStats(prefixOutput, scan.Stats); err != nil {
		return err
	}

	if !prefixNoStore {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		summary := model.ScanSummary{
			StartedAt:   started,
			Root:        scan.Root,
			Threshold:   scan.Threshold,
			Files:       scan.Files,
			Credentials: scan.Credentials,
		}
		id, err := st.InsertScan(context.Background(), summary, scan.Stats)
		if err != nil {
			return fmt.Errorf("failed to record scan: %w", err)
		}
		logErrf("Recorded scan %d\n", id)
	}

	return printf(cmd, "Prefix statistics for %d files written to %s\n", scan.Files, prefixOutput)
}

func newSuspectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suspects",
		Short: "Report prefixes with outlier character distributions",
		Args:  cobra.NoArgs,
		RunE:  runSuspectsCmd,
	}
	cmd.Flags().StringVar(&suspectRoot, "root", defaultRoot, "corpus root directory")
	cmd.Flags().StringVar(&suspectDist, "dist", defaultOutput, "distribution JSON baseline path")
	cmd.Flags().StringVar(&suspectOutput, "output", defaultSuspectsOut, "suspicious prefix report output path")
	cmd.Flags().IntVar(&suspectThreshold, "threshold", defaultScanThreshold, "minimum standalone occurrences per prefix")
	return cmd
}

func runSuspectsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "root", &suspectRoot, config.EnvString(config.EnvRoot), fileCfg.Corpus.Root)
	if err := applyThreshold(cmd, &suspectThreshold, fileCfg); err != nil {
		return err
	}
	if suspectThreshold < 0 {
		return fmt.Errorf("--threshold must be >= 0")
	}

	baseline, err := distribution.LoadJSON(suspectDist)
	if err != nil {
		return err
	}
	logErrf("Loaded %d character distribution statistics\n", baseline.Len())

	err = analysis.ScanSuspects(suspectRoot, suspectOutput, baseline, suspectThreshold, func(path string) {
		logErrf("Processing %s\n", path)
	})
	if err != nil {
		return err
	}
	return printf(cmd, "Suspicious prefixes have been logged in %s\n", suspectOutput)
}

func newIdentifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identify",
		Short: "Identify suspicious passwords from prefix statistics",
		Args:  cobra.NoArgs,
		RunE:  runIdentifyCmd,
	}
	cmd.Flags().StringVar(&identifyStats, "stats", defaultPrefixStats, "prefix statistics JSON path")
	cmd.Flags().StringVar(&identifyOutput, "output", defaultIdentifiedOut, "suspicious password list output path")
	return cmd
}

func runIdentifyCmd(cmd *cobra.Command, _ []string) error {
	prefixStats, err := analysis.LoadPrefixStats(identifyStats)
	if err != nil {
		return err
	}
	suspects := analysis.Identify(prefixStats)
	if err := analysis.WriteSuspects(identifyOutput, suspects); err != nil {
		return err
	}
	return printf(cmd, "Found %d suspicious passwords. Results written to %s\n", len(suspects), identifyOutput)
}

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove identified passwords from credential files",
		Args:  cobra.NoArgs,
		RunE:  runCleanCmd,
	}
	cmd.Flags().StringVar(&cleanRoot, "root", defaultRoot, "corpus root directory")
	cmd.Flags().StringVar(&cleanList, "list", defaultIdentifiedOut, "suspicious password list path")
	cmd.Flags().StringVar(&cleanRemoved, "removed", defaultRemovedOut, "removed credential log path")
	return cmd
}

func runCleanCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "root", &cleanRoot, config.EnvString(config.EnvRoot), fileCfg.Corpus.Root)

	suspects, err := analysis.LoadSuspects(cleanList)
	if err != nil {
		return err
	}

	removedFile, err := os.Create(cleanRemoved)
	if err != nil {
		return fmt.Errorf("failed to create removed log: %w", err)
	}
	defer func() {
		if cerr := removedFile.Close(); cerr != nil {
			logErrf("failed to close removed log: %v\n", cerr)
		}
	}()
	// Same tolerant codec as the credential files, so removed records keep
	// their original bytes.
	removed := bufio.NewWriter(charmap.ISO8859_1.NewEncoder().Writer(removedFile))

	kept, dropped, err := analysis.CleanTree(cleanRoot, suspects, removed, func(path string) {
		logErrf("Cleaning %s\n", path)
	})
	if err != nil {
		return err
	}
	if err := removed.Flush(); err != nil {
		return fmt.Errorf("failed to flush removed log: %w", err)
	}
	return printf(cmd, "Removed %d credentials (%d kept); removed records logged to %s\n", dropped, kept, cleanRemoved)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show scan history and distribution stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsLast, "last", defaultStatsLast, "limit to last N scans")
	cmd.Flags().StringVar(&statsDist, "dist", defaultOutput, "distribution JSON path")
	cmd.Flags().BoolVar(&statsInteractive, "interactive", false, "open the interactive stats UI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "last", &statsLast, nil, fileCfg.Stats.Last)
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	var dist *distribution.Distribution
	if statsDist != "" {
		if _, err := os.Stat(statsDist); err == nil {
			dist, err = distribution.LoadJSON(statsDist)
			if err != nil {
				return err
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat distribution JSON: %w", err)
		}
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, dist, statsLast)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if statsInteractive {
		program := tea.NewProgram(statsui.NewModel(report), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}
	return stats.RenderText(cmd.OutOrStdout(), report)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyThreshold(cmd *cobra.Command, target *int, fileCfg config.FileConfig) error {
	envThreshold, err := config.EnvInt(config.EnvThreshold)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "threshold", target, envThreshold, fileCfg.Corpus.Threshold)
	return nil
}

// applyStringConfig resolves a string setting with flag > env > config file
// precedence.
func applyStringConfig(cmd *cobra.Command, name string, target, env, file *string) {
	if cmd.Flags().Changed(name) {
		return
	}
	if env != nil {
		*target = *env
		return
	}
	if file != nil {
		*target = *file
	}
}

func applyIntConfig(cmd *cobra.Command, name string, target, env, file *int) {
	if cmd.Flags().Changed(name) {
		return
	}
	if env != nil {
		*target = *env
		return
	}
	if file != nil {
		*target = *file
	}
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# credsift configuration
# Uncomment a value to enable it. CLI flags override config values.

[convert]
# input = %q     # Distribution report path
# output = %q          # JSON output path

[corpus]
# root = %q               # Corpus root directory
# threshold = %d                        # Minimum standalone occurrences per prefix

[stats]
# last = %d                               # Scans shown by the stats command
`,
		defaultInput,
		defaultOutput,
		defaultRoot,
		defaultScanThreshold,
		defaultStatsLast,
	)
}

func printf(cmd *cobra.Command, format string, args ...any) error {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
