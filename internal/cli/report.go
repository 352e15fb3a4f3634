package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <doc_id>",
	Short: "Ranked lemma statistics (count, tf, idf, tf-idf) for a document",
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

		report, err := c.Report(docID)
		if err != nil {
			return err
		}
		if len(report) == 0 {
			fmt.Println("corpus is empty")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LEMMA\tCOUNT\tTF\tIDF\tTF-IDF")
		for _, stat := range report {
			fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\t%.4f\n",
				stat.Lemma, stat.Count, stat.TF, stat.IDF, stat.TFIDF)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
