package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <name> <file>",
	Short: "Store a document under a name",
	Long: `Store a document in the local store under a name. The file is parsed
by extension: .json as the typed JSON view, anything else as the binary
form. Use "-" to read the JSON view from stdin.

Example:
  yad put users ./users.json
  yad put users ./users.yad`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, path := args[0], args[1]

		doc, err := readDocument(path)
		if err != nil {
			return fmt.Errorf("failed to load document: %w", err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rev, err := s.Put(name, doc)
		if err != nil {
			return fmt.Errorf("failed to store document: %w", err)
		}

		cmd.Printf("stored %s (revision %s)\n", name, rev)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
