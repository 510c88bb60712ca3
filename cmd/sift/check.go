package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sift/internal/cache"
	"sift/internal/diag"
	"sift/internal/diagfmt"
	"sift/internal/driver"
	"sift/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.swift|directory>",
	Short: "Check Swift sources for discouraged patterns",
	Long:  `Check a Swift source file, or all *.swift files within a directory, and report findings`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

// init registers CLI flags for the check command.
func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("no-warnings", false, "report errors only, drop warnings and infos")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("no-source", false, "do not print source lines with underlines")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("disk-cache", false, "enable persistent disk cache for lint results")
	checkCmd.Flags().String("cache-dir", "", "override the disk cache directory")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	noSource, err := cmd.Flags().GetBool("no-source")
	if err != nil {
		return fmt.Errorf("failed to get no-source flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	opts, err := buildOptions(cmd, target)
	if err != nil {
		return err
	}
	opts.Jobs = jobs

	if opts.Cache, err = openCache(cmd); err != nil {
		return err
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		fileSet *source.FileSet
		results []driver.CheckResult
	)
	if st.IsDir() {
		fileSet, results, err = driver.CheckDir(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
	} else {
		fileSet = source.NewFileSet()
		fileID, loadErr := fileSet.Load(target)
		if loadErr != nil {
			return fmt.Errorf("failed to load file: %w", loadErr)
		}
		results = []driver.CheckResult{*driver.CheckFile(fileSet, fileID, opts)}
	}

	color, err := useColor(cmd)
	if err != nil {
		return err
	}
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	found := 0
	for _, r := range results {
		if warningsAsErrors {
			r.Bag.PromoteWarnings()
		}
		if noWarnings {
			// фильтр после промоушена: поднятые warnings переживают отсев
			r.Bag.DropBelow(diag.SevError)
		}
		found += r.Bag.Len()
	}

	// --quiet оставляет только код возврата
	out := io.Writer(cmd.OutOrStdout())
	if quiet {
		out = io.Discard
	}

	switch format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:      color,
			PathMode:   pathMode,
			ShowNotes:  withNotes,
			ShowSource: !noSource,
		}
		for _, r := range results {
			diagfmt.Pretty(out, r.Bag, fileSet, prettyOpts)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, r := range results {
			output[r.Path] = diagfmt.BuildDiagnosticsOutput(r.Bag, fileSet, jsonOpts)
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if found > 0 {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}

// openCache открывает дисковый кэш, если он включён флагами.
func openCache(cmd *cobra.Command) (*cache.DiskCache, error) {
	enabled, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	if !enabled {
		return nil, nil
	}
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	if dir != "" {
		return cache.OpenAt(dir)
	}
	return cache.Open("sift")
}
