package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-sync/internal/app"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the collection as a JSON or TOML document",
		Long: `Write every quote to stdout, or to the file given with -o. The format
defaults to the output file's extension, then to json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := app.ParseFormat(formatOrExt(format, output))
			if err != nil {
				return err
			}

			return runWith(cmd, opts, wiring{}, func(ctx context.Context, env *appEnv) error {
				if output == "" {
					return env.services.Quotes.Export(ctx, cmd.OutOrStdout(), f)
				}

				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer file.Close()

				if err := env.services.Quotes.Export(ctx, file, f); err != nil {
					return err
				}

				return file.Sync()
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Document format: json or toml")

	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Append the valid quotes of a JSON or TOML document",
		Long: `Append every element with non-blank text and category. Other elements
are skipped. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			f, err := app.ParseFormat(formatOrExt(format, path))
			if err != nil {
				return err
			}

			return runWith(cmd, opts, wiring{}, func(ctx context.Context, env *appEnv) error {
				var r io.Reader = cmd.InOrStdin()

				if path != "-" {
					file, err := os.Open(path)
					if err != nil {
						return fmt.Errorf("opening %s: %w", path, err)
					}
					defer file.Close()

					r = file
				}

				result, err := env.services.Quotes.Import(ctx, r, f)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d\n", result.Accepted, result.Skipped)

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Document format: json or toml")

	return cmd
}

// formatOrExt prefers an explicit format, then a .toml or .json extension.
func formatOrExt(format, path string) string {
	if format != "" {
		return format
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml", ".json":
		return strings.TrimPrefix(ext, ".")
	default:
		return ""
	}
}
