package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sift/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Sift Swift source linter",
	Long:  `Sift finds discouraged patterns in Swift source files and can rewrite them in place`,
}

// init registers subcommands and persistent flags on the root command.
func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to .sift.toml (default: discovered from the target upward)")
}

// main executes the root command. If command execution returns an error, the
// process exits with status code 1.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
