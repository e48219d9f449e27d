package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history <name>",
	Short: "Show the revision log of a document",
	Long: `Show every recorded write of a document, oldest first. Any listed
revision id can be fetched with "yad get --revision".

Example:
  yad history users`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		revs, err := s.History(name)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		if len(revs) == 0 {
			cmd.Printf("no revisions for %s\n", name)
			return nil
		}

		for _, rev := range revs {
			cmd.Printf("%s  %s\n", rev.ID, rev.Created.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
