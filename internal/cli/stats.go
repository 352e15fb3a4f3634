package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Corpus size and vocabulary size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCorpus()
		if err != nil {
			return err
		}
		defer c.Close()

		docs, err := c.Size()
		if err != nil {
			return err
		}
		lemmas, err := c.VocabularySize()
		if err != nil {
			return err
		}

		fmt.Printf("documents: %d\n", docs)
		fmt.Printf("lemmas:    %d\n", lemmas)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
