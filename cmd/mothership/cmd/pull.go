package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/timaa2k/motherlib/internal/compression"
)

var pullCmd = &cobra.Command{
	Use:   "pull <dir> [tags...]",
	Short: "Download all matching blobs into a directory",
	Long: "Fetch the (superset) history for the tag set and download every blob " +
		"concurrently, one file per ref.",
	Args: cobra.MinimumNArgs(1),
	RunE: runPull,
}

func init() {
	pullCmd.Flags().Int("concurrency", 4, "parallel downloads")
	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, args []string) error {
	dir := args[0]
	tags := args[1:]

	client, err := newClient()
	if err != nil {
		return err
	}

	records, err := client.GetSupersetHistory(cmd.Context(), tags)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")

	p := pool.New().WithMaxGoroutines(concurrency).WithContext(cmd.Context()).WithCancelOnError()
	for _, rec := range records {
		p.Go(func(ctx context.Context) error {
			content, err := client.GetBlob(ctx, rec.Ref)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", rec.Ref, err)
			}
			content, err = compression.MaybeDecompress(content)
			if err != nil {
				return fmt.Errorf("decompress %s: %w", rec.Ref, err)
			}
			return os.WriteFile(filepath.Join(dir, rec.Ref), content, 0644)
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Pulled %d blobs into %s\n", len(records), dir)
	return nil
}
