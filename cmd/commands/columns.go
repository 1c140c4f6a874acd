package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adforge/adforge-cli/internal/cli"
)

// NewColumnsCommand creates the columns command
func NewColumnsCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "columns <source-id>",
		Short: "Show the columns of a data source",
		Long: `Show the column snapshot of a data source: names, types, and a few
sample values. These are the names usable as {variable} tokens in
campaign patterns.

Examples:
  # Show columns for a source
  adforge columns demo-products

  # As YAML
  adforge columns demo-products --output yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}

			ctx := cli.NewCommandContext(apiURL, verbose)
			columns, err := ctx.Client.GetColumns(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch columns: %w", err)
			}

			if cli.OutputFormat(output) != cli.FormatText {
				return cli.OutputResults(os.Stdout, output, columns)
			}

			table := cli.NewTableFormatter(os.Stdout)
			table.Header("NAME", "TYPE", "SAMPLE VALUES")
			for _, c := range columns {
				samples := cli.TruncateString(strings.Join(c.SampleValues, ", "), 50)
				table.Row("{"+c.Name+"}", string(c.Type), samples)
			}
			table.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}
