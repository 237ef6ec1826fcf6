// Command specsync refreshes the local data/ mirror of the upstream
// specification repository.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"api-dispatcher-service/internal/adapters/secondary/gitmirror"
	"api-dispatcher-service/internal/core/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		remote  string
		ref     string
		dataDir string
		only    []string
	)

	cmd := &cobra.Command{
		Use:   "specsync",
		Short: "Refresh the local mirror of upstream specification schemas and examples",
		Long: `specsync clones the upstream specification repository and installs its
schemas/ and examples/ trees into the local data directory, replacing
whatever was there before.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sync := services.NewSyncService(gitmirror.New(), dataDir, remote, ref)
			upstream, branch := sync.Remote()
			fmt.Fprintf(cmd.OutOrStdout(), "syncing %s@%s into %s\n", upstream, branch, dataDir)
			if err := sync.Refresh(cmd.Context(), only); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "mirror is up to date")
			return nil
		},
	}

	cmd.Flags().StringVar(&remote, "remote", services.DefaultSyncRemote, "upstream repository URL")
	cmd.Flags().StringVar(&ref, "ref", services.DefaultSyncRef, "branch to sync from")
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "directory to install the mirror into")
	cmd.Flags().StringSliceVar(&only, "only", nil, "restrict the sync to these upstream directories")

	return cmd
}
