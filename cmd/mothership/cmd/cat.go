package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timaa2k/motherlib"
	"github.com/timaa2k/motherlib/internal/compression"
)

var catCmd = &cobra.Command{
	Use:   "cat [tags...]",
	Short: "Print the latest content for a tag set",
	Long: "Fetch the latest match for the tag set. A unique match prints the content; " +
		"an ambiguous one lists the candidate records.",
	RunE: runCat,
}

func init() {
	catCmd.Flags().Bool("superset", false, "match records whose tags contain the query")
	rootCmd.AddCommand(catCmd)
}

func runCat(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	superset, _ := cmd.Flags().GetBool("superset")

	var result *motherlib.Result
	if superset {
		result, err = client.GetSupersetLatest(cmd.Context(), args)
	} else {
		result, err = client.GetLatest(cmd.Context(), args)
	}
	if err != nil {
		return err
	}

	if result.Unique() {
		content, err := compression.MaybeDecompress(result.Content)
		if err != nil {
			return fmt.Errorf("decompress: %w", err)
		}
		_, err = os.Stdout.Write(content)
		return err
	}

	fmt.Fprintf(os.Stderr, "%d records match; pick a ref:\n", len(result.Records))
	printRecords(result.Records)
	return nil
}

func printRecords(records []motherlib.Record) {
	for _, rec := range records {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%v\n", rec.Ref, rec.Created.Format("2006-01-02 15:04:05"), rec.Tags)
	}
}
