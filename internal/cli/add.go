package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Ingest a document from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args)
		if err != nil {
			return err
		}

		c, err := openCorpus()
		if err != nil {
			return err
		}
		defer c.Close()

		res, err := c.Ingest(text)
		if err != nil {
			return err
		}

		if res.Duplicate {
			fmt.Printf("duplicate of document %d\n", res.DocID)
		} else {
			fmt.Printf("stored document %d\n", res.DocID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
