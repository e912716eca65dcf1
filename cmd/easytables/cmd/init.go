/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/easytables/pkg/config"
)

func newInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create an EasyTables configuration file",
		Long: `Create a configuration file with a generated API key and make sure the
data directory exists.

Examples:
  easytables init
  easytables init --data-dir ./tables --print-key
  easytables init --config ./easytables.yaml --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			printKey, _ := cmd.Flags().GetBool("print-key")

			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				configPath = config.GetDefaultConfigPath()
			}

			if config.ConfigExists(configPath) && !force {
				cmd.Printf("Configuration already exists at %s. Use --force to regenerate it.\n", configPath)
				return nil
			}

			dataDir := ""
			if cmd.Flags().Changed("data-dir") {
				dataDir, _ = cmd.Flags().GetString("data-dir")
			}

			cfg, err := config.BootstrapConfig(configPath, dataDir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}

			cmd.Printf("✅ Configuration created at %s\n", configPath)
			cmd.Printf("📁 Data directory: %s\n", cfg.DataDir)
			if printKey {
				cmd.Printf("\n🔑 API Key: %s\n", cfg.Security.APIKey)
				cmd.Printf("⚠️  Store this key securely! It is also saved in %s\n", configPath)
			}
			return nil
		},
	}

	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
	initCmd.Flags().Bool("print-key", false, "Print the generated API key")
	return initCmd
}
