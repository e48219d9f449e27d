/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/yad/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap a configuration with a generated API key",
	Long: `Create a configuration file with a freshly generated API key. The
file is written with restrictive permissions; re-running against an
existing config is an error so keys are never silently rotated.

Example:
  yad init
  yad init --config=./yad.yaml --data-dir=/var/lib/yad`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		if config.ConfigExists(configPath) {
			return fmt.Errorf("config already exists at %s", configPath)
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return fmt.Errorf("failed to bootstrap config: %w", err)
		}

		cmd.Printf("wrote %s\n", configPath)
		cmd.Printf("api key: %s\n", cfg.Security.APIKey)
		return nil
	},
}

func init() {
	initCmd.Flags().String("config", "", "Path to write the configuration file")
	rootCmd.AddCommand(initCmd)
}
