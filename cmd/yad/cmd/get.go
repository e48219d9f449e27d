package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/yad/pkg/document"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Fetch a document from the store",
	Long: `Fetch a document and write it to --output (default: JSON view on
stdout). The output encoding follows the file extension; pass
--revision to read a historical write instead of the head copy.

Example:
  yad get users
  yad get users -o users.yad
  yad get users --revision 2N9zLkQq0T4sVdeFghijklmnopq`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		output, _ := cmd.Flags().GetString("output")
		revision, _ := cmd.Flags().GetString("revision")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		var doc *document.Document
		if revision != "" {
			doc, err = s.GetRevision(name, revision)
		} else {
			doc, err = s.Get(name)
		}
		if err != nil {
			return fmt.Errorf("failed to fetch document: %w", err)
		}

		return writeDocument(output, doc)
	},
}

func init() {
	getCmd.Flags().StringP("output", "o", "-", "Output file (extension selects the encoding)")
	getCmd.Flags().StringP("revision", "r", "", "Revision id to fetch instead of the head copy")
	rootCmd.AddCommand(getCmd)
}
