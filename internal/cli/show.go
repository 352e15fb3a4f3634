package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <doc_id>",
	Short: "Print the original text of a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid doc id %q", args[0])
		}

		c, err := openCorpus()
		if err != nil {
			return err
		}
		defer c.Close()

		text, err := c.Text(docID)
		if err != nil {
			return err
		}

		fmt.Print(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
