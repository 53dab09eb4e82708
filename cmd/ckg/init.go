package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ckg/internal/config"
	"ckg/internal/errors"
	"ckg/internal/logging"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize CKG configuration",
	Long:  "Creates a .ckg/ directory with default configuration in the current repository root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .ckg directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	cwd, err := os.Getwd()
	if err != nil {
		return errors.New(errors.InternalError, "Failed to get current directory", err)
	}

	ckgDir := filepath.Join(cwd, ".ckg")
	if _, statErr := os.Stat(ckgDir); statErr == nil {
		if !initForce {
			// Idempotent behavior: already initialized is success (CI-friendly)
			fmt.Println("CKG already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(ckgDir, "config.json"))
			fmt.Println("\nRun 'ckg init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(ckgDir); removeErr != nil {
			return errors.New(errors.InternalError, "Failed to remove existing .ckg directory", removeErr)
		}
		logger.Info("Removed existing .ckg directory", nil)
	}

	if mkdirErr := os.MkdirAll(ckgDir, 0o755); mkdirErr != nil {
		return errors.New(errors.InternalError, "Failed to create .ckg directory", mkdirErr)
	}

	cfg := config.DefaultConfig()
	cfg.RepoRoot = "."

	configPath := filepath.Join(ckgDir, "config.json")
	configData, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.New(errors.InternalError, "Failed to marshal config", err)
	}

	if writeErr := os.WriteFile(configPath, configData, 0o644); writeErr != nil {
		return errors.New(errors.InternalError, "Failed to write config file", writeErr)
	}

	logger.Info("CKG initialized", map[string]interface{}{
		"config_path": configPath,
	})

	fmt.Println("CKG initialized successfully!")
	fmt.Printf("Configuration written to: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'ckg build' to synthesize the knowledge graph")
	fmt.Println("  2. Run 'ckg status' to see store state")

	return nil
}
