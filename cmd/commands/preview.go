package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/adforge/adforge-cli/internal/cli"
	"github.com/adforge/adforge-cli/pkg/hierarchy"
	"github.com/adforge/adforge-cli/pkg/session"
	"github.com/adforge/adforge-cli/pkg/wizard"
)

// NewPreviewCommand creates the preview command
func NewPreviewCommand() *cobra.Command {
	var (
		setupFile string
		copyOut   bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the grouped campaign tree for the saved setup",
		Long: `Render the campaign → ad group → ad tree the current wizard setup would
produce. By default the setup is the last saved wizard session; --setup
reads a setup YAML file instead. Sample rows come from the saved
snapshot, or are fetched from the backend when missing.

Examples:
  # Preview the last wizard session
  adforge preview

  # Preview a setup file and copy the tree to the clipboard
  adforge preview --setup campaign.yaml --copy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}

			ctx := cli.NewCommandContext(apiURL, verbose)
			state, err := loadSetup(ctx, setupFile)
			if err != nil {
				return err
			}

			if len(state.SampleRows) == 0 && state.DataSourceID != "" {
				rows, err := ctx.Client.GetSampleRows(context.Background(), state.DataSourceID, 0)
				if err != nil {
					return fmt.Errorf("failed to fetch sample rows: %w", err)
				}
				state.SampleRows = rows
			}

			rows, excluded := state.FilteredRows()
			if len(rows) == 0 {
				return errors.New("no sample rows to preview; select a data source in the wizard first")
			}

			tree := hierarchy.Aggregate(state.Campaign.NamePattern, state.Hierarchy.AdGroups, rows)

			if cli.OutputFormat(output) != cli.FormatText {
				return cli.OutputResults(os.Stdout, output, tree)
			}

			text := formatPreview(tree, excluded)
			fmt.Print(text)

			if copyOut {
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("failed to copy preview: %w", err)
				}
				cli.PrintSuccess("Preview copied to clipboard")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&setupFile, "setup", "s", "", "Setup YAML file (default: last wizard session)")
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "Copy the preview to the clipboard")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}

// loadSetup reads the wizard state from a setup file or the session store.
func loadSetup(ctx *cli.CommandContext, setupFile string) (wizard.State, error) {
	if setupFile != "" {
		data, err := os.ReadFile(setupFile)
		if err != nil {
			return wizard.State{}, fmt.Errorf("failed to read setup file: %w", err)
		}
		var state wizard.State
		if err := yaml.Unmarshal(data, &state); err != nil {
			return wizard.State{}, fmt.Errorf("failed to parse setup file: %w", err)
		}
		return state, nil
	}

	state, err := ctx.Store.Load()
	if err != nil {
		if errors.Is(err, session.ErrNoSnapshot) {
			return wizard.State{}, errors.New("no saved wizard session; run 'adforge' first or pass --setup")
		}
		return wizard.State{}, err
	}
	return state, nil
}

// formatPreview renders the grouped tree as indented plain text.
func formatPreview(tree *hierarchy.GroupedPreview, excluded int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d campaigns, %d ad groups, %d ads", tree.CampaignCount, tree.AdGroupCount, tree.AdCount)
	if excluded > 0 {
		fmt.Fprintf(&b, " (%d rows excluded by rules)", excluded)
	}
	b.WriteString("\n\n")

	for _, c := range tree.Campaigns {
		fmt.Fprintf(&b, "%s\n", c.Name)
		for _, g := range c.AdGroups {
			fmt.Fprintf(&b, "  %s\n", g.Name)
			for _, ad := range g.Ads {
				fmt.Fprintf(&b, "    - %s\n", ad.Headline)
				if ad.Description != "" {
					fmt.Fprintf(&b, "      %s\n", ad.Description)
				}
			}
		}
	}
	return b.String()
}
