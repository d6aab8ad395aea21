package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/timaa2k/motherlib/internal/compression"
)

var putCmd = &cobra.Command{
	Use:   "put <tag> [tags...]",
	Short: "Store content under a tag set",
	Long:  "Store content (from stdin or --file) under the given tags and print the assigned ref.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPut,
}

func init() {
	putCmd.Flags().String("file", "", "read content from file instead of stdin")
	putCmd.Flags().Bool("zstd", false, "compress content with zstd before upload")
	rootCmd.AddCommand(putCmd)
}

func runPut(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	var content []byte
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		content, err = os.ReadFile(file)
	} else {
		content, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}

	if compress, _ := cmd.Flags().GetBool("zstd"); compress {
		content, err = compression.Compress(content)
		if err != nil {
			return fmt.Errorf("compress: %w", err)
		}
	}

	ref, err := client.PutLatest(cmd.Context(), args, bytes.NewReader(content))
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, ref)
	return nil
}
