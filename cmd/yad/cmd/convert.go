package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a document between binary and JSON forms",
	Long: `Convert a document file between the binary form and the typed JSON
view. Both directions are lossless; the encoding on each side follows
the file extension (.json for the JSON view).

Example:
  yad convert users.yad users.json
  yad convert users.json users.yad`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[0])
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}
		if err := writeDocument(args[1], doc); err != nil {
			return fmt.Errorf("failed to convert: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
