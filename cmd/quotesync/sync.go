package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-sync/internal/app"
)

func newSyncCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync cycle against the remote endpoint",
		Long: `Fetch the remote collection, merge it into the local one, persist the
result and push local quotes back. An unreachable remote is not an error:
the local collection is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWith(cmd, opts, wiring{}, func(ctx context.Context, env *appEnv) error {
				report, err := env.services.Sync.SyncNow(ctx)

				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")

					if encErr := enc.Encode(report); encErr != nil {
						return fmt.Errorf("encoding report: %w", encErr)
					}
				} else {
					printReport(cmd, report)
				}

				return err
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the sync report as JSON")

	return cmd
}

func printReport(cmd *cobra.Command, report app.SyncReport) {
	out := cmd.OutOrStdout()

	switch report.Status {
	case app.StatusSuccess:
		fmt.Fprintf(out, "synced: %d added, %d updated\n", report.Added, report.Updated)
	case app.StatusNoConflict:
		fmt.Fprintln(out, "synced: already up to date")
	case app.StatusServerUnavailable:
		fmt.Fprintln(out, "remote unavailable: local collection unchanged")
	case app.StatusSkipped:
		fmt.Fprintln(out, "sync already in progress")
	case app.StatusFailed:
		fmt.Fprintf(out, "sync failed: %s\n", report.Error)
	}

	if report.PushFailed {
		fmt.Fprintln(out, "warning: pushing local quotes failed")
	}
}
