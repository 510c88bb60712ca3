package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sift/internal/diagfmt"
	"sift/internal/driver"
	"sift/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.swift|directory>",
	Short: "Rewrite discouraged patterns in place",
	Long:  `Rewrite discouraged patterns in a Swift source file, or in all *.swift files within a directory, keeping the surrounding formatting intact`,
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
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

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		fileSet *source.FileSet
		results []driver.FixResult
	)
	if st.IsDir() {
		fileSet, results, err = driver.FixDir(cmd.Context(), target, opts, dryRun)
		if err != nil {
			return fmt.Errorf("fix failed: %w", err)
		}
	} else {
		fileSet = source.NewFileSet()
		fileID, loadErr := fileSet.Load(target)
		if loadErr != nil {
			return fmt.Errorf("failed to load file: %w", loadErr)
		}
		res, fixErr := driver.FixFile(fileSet, fileID, opts, dryRun)
		if fixErr != nil {
			return fmt.Errorf("fix failed: %w", fixErr)
		}
		results = []driver.FixResult{*res}
	}

	color, err := useColor(cmd)
	if err != nil {
		return err
	}
	prettyOpts := diagfmt.PrettyOpts{Color: color, ShowSource: true}

	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}

	skipped := 0
	for _, r := range results {
		if r.Skipped {
			skipped++
			// файл не переписан, показываем почему
			fmt.Fprintf(os.Stderr, "skipping %s:\n", r.Path)
			diagfmt.Pretty(os.Stderr, r.Bag, fileSet, prettyOpts)
			continue
		}
		if r.Changed && !quiet {
			fmt.Fprintf(os.Stdout, "%s %s (%d corrections)\n", verb, r.Path, len(r.Corrections))
		}
	}

	if skipped > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%d file(s) skipped because of parse errors", skipped)
	}
	return nil
}
