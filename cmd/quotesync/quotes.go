package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-sync/internal/domain"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add TEXT --category CATEGORY",
		Short: "Add a quote to the local collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(cmd, opts, wiring{}, func(ctx context.Context, env *appEnv) error {
				q, err := env.services.Quotes.Add(ctx, args[0], category)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), q.ID)

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category of the quote")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List quotes, optionally restricted to one category",
		Long: `List quotes in collection order. Without --category the persisted
filter selected with "quotesync filter" applies.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWith(cmd, opts, wiring{}, func(ctx context.Context, env *appEnv) error {
				if !cmd.Flags().Changed("category") {
					category = env.services.Quotes.Filter(ctx)
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tCATEGORY\tSOURCE\tTEXT")

				for _, q := range env.services.Quotes.List(ctx, category) {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", q.ID, q.Category, q.Source, q.Text)
				}

				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list quotes in this category (case-insensitive)")

	return cmd
}

func newFilterCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "filter [CATEGORY]",
		Short: "Show or select the persisted category filter",
		Long: `Without an argument, print the selected filter and the known categories.
With one, select it; "all" clears the filter.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(cmd, opts, wiring{}, func(ctx context.Context, env *appEnv) error {
				out := cmd.OutOrStdout()

				if len(args) == 1 {
					selected, err := env.services.Quotes.SetFilter(ctx, args[0])
					if err != nil {
						return err
					}

					fmt.Fprintf(out, "filter: %s\n", selected)

					return nil
				}

				fmt.Fprintf(out, "filter: %s\n", env.services.Quotes.Filter(ctx))
				fmt.Fprintln(out, "categories:")
				fmt.Fprintf(out, "  %s\n", domain.FilterAll)

				for _, c := range env.services.Quotes.Categories(ctx) {
					fmt.Fprintf(out, "  %s\n", c)
				}

				return nil
			})
		},
	}
}
