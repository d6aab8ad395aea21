package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timaa2k/motherlib/internal/compression"
)

var blobCmd = &cobra.Command{
	Use:   "blob <ref>",
	Short: "Print the stored bytes for a ref",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlob,
}

func init() {
	rootCmd.AddCommand(blobCmd)
}

func runBlob(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	content, err := client.GetBlob(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	content, err = compression.MaybeDecompress(content)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}

	_, err = os.Stdout.Write(content)
	return err
}
