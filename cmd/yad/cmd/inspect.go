package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the structure of a serialized document",
	Long: `Parse a document file and print its format version, rows and typed
keys in a readable form. The file is parsed by extension like the other
commands.

Example:
  yad inspect ./users.yad`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[0])
		if err != nil {
			return fmt.Errorf("failed to parse document: %w", err)
		}

		cmd.Printf("version: %s\n", doc.Version)
		cmd.Printf("rows: %d\n", len(doc.Rows))

		rowNames := make([]string, 0, len(doc.Rows))
		for name := range doc.Rows {
			rowNames = append(rowNames, name)
		}
		sort.Strings(rowNames)

		for _, rn := range rowNames {
			row := doc.Rows[rn]
			cmd.Printf("\nrow %q (%d keys)\n", rn, len(row.Keys))

			keyNames := make([]string, 0, len(row.Keys))
			for name := range row.Keys {
				keyNames = append(keyNames, name)
			}
			sort.Strings(keyNames)

			for _, kn := range keyNames {
				cmd.Printf("  %s = %s\n", kn, row.Keys[kn].Value)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
