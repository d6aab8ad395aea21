package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm [tags...]",
	Short: "Delete content and its history for a tag set",
	RunE:  runRm,
}

func init() {
	rmCmd.Flags().Bool("superset", false, "match records whose tags contain the query")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	superset, _ := cmd.Flags().GetBool("superset")

	if superset {
		err = client.DeleteSupersetHistory(cmd.Context(), args)
	} else {
		err = client.DeleteHistory(cmd.Context(), args)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Deleted.")
	return nil
}
