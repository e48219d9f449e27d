/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/yad/pkg/document"
	"github.com/ssargent/yad/pkg/store"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yad",
	Short: "yad - compact self-describing document serialization",
	Long: `yad works with compact self-describing binary documents: named rows
of named, typed keys. Documents convert losslessly to and from a typed
JSON view and can be kept in a local versioned store.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global data directory flag
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the document store")
}

// openStore opens the document store rooted at the --data-dir flag.
func openStore(cmd *cobra.Command) (*store.DocumentStore, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	s, err := store.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, nil
}

// readDocument loads a document from a file, choosing the parser by
// extension: .json is the typed JSON view, anything else the binary form.
// "-" reads the JSON view from stdin.
func readDocument(path string) (*document.Document, error) {
	if path == "-" {
		data, err := readAllStdin()
		if err != nil {
			return nil, err
		}
		return document.FromJSON(data)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return document.FromJSON(data)
	}
	return document.Unmarshal(data)
}

// writeDocument stores a document to a file, choosing the encoding by
// extension the same way readDocument does. "-" writes JSON to stdout.
func writeDocument(path string, d *document.Document) error {
	var (
		data []byte
		err  error
	)
	if path == "-" || strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = document.ToJSON(d)
		if err == nil {
			data = append(data, '\n')
		}
	} else {
		data, err = document.Marshal(d)
	}
	if err != nil {
		return err
	}

	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readAllStdin() ([]byte, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
