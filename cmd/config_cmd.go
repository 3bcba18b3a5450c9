// Package cmd implements the ccq CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/theirongolddev/ccq/internal/config"
	"github.com/theirongolddev/ccq/internal/store"

	"github.com/spf13/cobra"
)

var flagConfigInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write a config file with default values if none exists")
	rootCmd.AddCommand(configCmd)
}

// initConfig writes the default configuration to path unless a file is
// already there. It reports whether a file was written.
func initConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("checking config file: %w", err)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return false, fmt.Errorf("writing config: %w", err)
	}
	return true, nil
}

// historyEntries counts the stored shell statements without creating the
// database when it does not exist yet.
func historyEntries(path string) (int, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	h, err := store.Open(path, 0)
	if err != nil {
		return 0, err
	}
	defer func() { _ = h.Close() }()
	return h.Count()
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigInit {
		created, err := initConfig(config.Path())
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("  Wrote defaults to %s\n\n", config.Path())
		} else {
			fmt.Printf("  Config file already exists: %s\n\n", config.Path())
		}
	}

	cfg, paths, err := loadEnv()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Projects root: %s\n", paths.ProjectsRoot)
	if cfg.General.Workers > 0 {
		fmt.Printf("    Workers:       %d\n", cfg.General.Workers)
	} else {
		fmt.Println("    Workers:       auto")
	}
	if paths.ProjectDir != "" {
		fmt.Printf("    %s: %s\n", config.ProjectDirEnv, paths.ProjectDir)
	}
	fmt.Println()

	fmt.Println("  [Output]")
	fmt.Printf("    Format: %s\n", cfg.Output.Format)
	fmt.Println()

	fmt.Println("  [History]")
	if cfg.History.Enabled {
		dbPath := config.HistoryPath(cfg)
		fmt.Printf("    Database: %s\n", dbPath)
		fmt.Printf("    Limit:    %d\n", cfg.History.Limit)
		if n, err := historyEntries(dbPath); err == nil {
			fmt.Printf("    Entries:  %d\n", n)
		}
	} else {
		fmt.Println("    Disabled")
	}
	return nil
}
