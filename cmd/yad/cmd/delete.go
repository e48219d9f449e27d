package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a document from the store",
	Long: `Delete a document's head copy. Its revision history is retained and
stays readable through "yad get --revision".

Example:
  yad delete users`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Delete(name); err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}

		cmd.Printf("deleted %s\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
