package cmd

import (
	"github.com/spf13/cobra"

	"github.com/timaa2k/motherlib"
)

var historyCmd = &cobra.Command{
	Use:   "history [tags...]",
	Short: "List all records for a tag set, newest first",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Bool("superset", false, "match records whose tags contain the query")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	superset, _ := cmd.Flags().GetBool("superset")

	var records []motherlib.Record
	if superset {
		records, err = client.GetSupersetHistory(cmd.Context(), args)
	} else {
		records, err = client.GetHistory(cmd.Context(), args)
	}
	if err != nil {
		return err
	}

	printRecords(records)
	return nil
}
