package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-sync/internal/app"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configDir string
	profile   string
	logLevel  string
	quiet     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "quotesync",
		Short: "Keep a local quote collection in sync with a remote endpoint",
		Long: `quotesync manages a local collection of quotes and reconciles it with a
remote quote endpoint. Remote changes win only when they are strictly newer.

Examples:
  quotesync add "Simplicity is prerequisite for reliability." --category engineering
  quotesync list --category engineering
  quotesync sync
  quotesync export -o quotes.toml --format toml
  quotesync serve`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "configs", "Directory holding base.yaml and profile files")
	cmd.PersistentFlags().StringVar(&opts.profile, "profile", profile, "Config profile to load on top of base.yaml")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override log.level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print status notifications")

	cmd.AddCommand(
		newServeCmd(opts),
		newSyncCmd(opts),
		newAddCmd(opts),
		newListCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newFilterCmd(opts),
	)

	return cmd
}

// runWith bootstraps the shared runtime, runs fn and tears everything down.
// Status notifications are echoed to stderr unless --quiet is set.
func runWith(cmd *cobra.Command, opts *rootOptions, w wiring, fn func(ctx context.Context, env *appEnv) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := bootstrap(ctx, opts, w)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, env.Close(context.WithoutCancel(ctx)))
	}()

	if !opts.quiet {
		unsubscribe := env.services.Notifications.Subscribe(printNotification(cmd.ErrOrStderr()))
		defer unsubscribe()
	}

	return fn(ctx, env)
}

func printNotification(w io.Writer) func(app.Notification) {
	return func(n app.Notification) {
		fmt.Fprintf(w, "[%s] %s\n", n.Kind, n.Message)
	}
}
