/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/yad/pkg/api"
	"github.com/ssargent/yad/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the yad REST API server. Flags override the configuration
file; run "yad init" once to bootstrap a config with a generated API key.

Examples:
  yad serve --api-key=mysecretkey --port=8080
  yad serve --config=~/.config/yad/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		apiKey, _ := cmd.Flags().GetString("api-key")
		configPath, _ := cmd.Flags().GetString("config")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		if config.ConfigExists(configPath) {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if apiKey == "" {
				apiKey = cfg.Security.APIKey
			}
			if !cmd.Flags().Changed("port") {
				port = cfg.Port
			}
			if !cmd.Flags().Changed("data-dir") {
				_ = cmd.Flags().Set("data-dir", cfg.DataDir)
			}
		}

		if apiKey == "" || apiKey == "auto" {
			return fmt.Errorf("--api-key is required (or run 'yad init' first)")
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		dataDir, _ := cmd.Flags().GetString("data-dir")
		return api.StartServer(s, api.ServerConfig{
			Port:    port,
			APIKey:  apiKey,
			DataDir: dataDir,
		})
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "Port for the API server")
	serveCmd.Flags().String("api-key", "", "API key for client authentication")
	serveCmd.Flags().String("config", "", "Path to the configuration file")
	rootCmd.AddCommand(serveCmd)
}
