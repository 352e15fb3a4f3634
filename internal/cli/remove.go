package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "rm <doc_id>",
	Short: "Delete a document and its lemma statistics",
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

		deleted, err := c.Delete(docID)
		if err != nil {
			return err
		}

		if deleted {
			fmt.Printf("deleted document %d\n", docID)
		} else {
			fmt.Printf("no document %d\n", docID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
