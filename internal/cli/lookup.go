package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [file]",
	Short: "Check whether identical content is already stored",
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

		if docID, ok := c.DuplicateLookup(text); ok {
			fmt.Printf("duplicate of document %d\n", docID)
		} else {
			fmt.Println("not in corpus")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
