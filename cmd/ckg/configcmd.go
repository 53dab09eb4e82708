package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ckg/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect CKG configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  "Render the merged configuration (defaults, config file, CKG_* environment) as TOML",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	repoRoot, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return err
	}

	rendered, err := cfg.RenderTOML()
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	fmt.Print(rendered)
	return nil
}
