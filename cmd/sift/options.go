package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sift/internal/config"
	"sift/internal/driver"
	"sift/internal/rules"
)

// resolveConfig загружает конфиг: явный путь из --config или поиск
// .sift.toml вверх от цели.
func resolveConfig(cmd *cobra.Command, target string) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}

	dir := target
	if st, statErr := os.Stat(target); statErr == nil && !st.IsDir() {
		dir = filepath.Dir(target)
	}
	cfg, _, err := config.Discover(dir)
	return cfg, err
}

// buildOptions собирает опции драйвера из конфига и флагов.
// Флаг командной строки перекрывает значение из конфига.
func buildOptions(cmd *cobra.Command, target string) (driver.Options, error) {
	cfg, err := resolveConfig(cmd, target)
	if err != nil {
		return driver.Options{}, err
	}

	settings, err := cfg.RuleSettings()
	if err != nil {
		return driver.Options{}, err
	}
	registry := rules.NewRegistry()
	if err := registry.Apply(settings); err != nil {
		return driver.Options{}, err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		maxDiagnostics = int(cfg.MaxDiagnostics)
	}

	return driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Rules:          registry.Active(),
	}, nil
}

// useColor решает, красить ли вывод, по флагу --color и типу stdout.
func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)), nil
}
