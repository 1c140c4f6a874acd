package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/adforge/adforge-cli/internal/cli"
	"github.com/adforge/adforge-cli/pkg/api"
	"github.com/adforge/adforge-cli/pkg/wizard"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	var (
		setupFile string
		output    string
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Submit the saved setup for campaign generation",
		Long: `Validate the saved wizard setup and submit it to the backend for
generation. By default the setup is the last saved wizard session;
--setup reads a setup YAML file instead.

Examples:
  # Generate from the last wizard session
  adforge generate

  # Generate from a setup file without the confirmation prompt
  adforge generate --setup campaign.yaml --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}

			ctx := cli.NewCommandContext(apiURL, verbose)
			state, err := loadSetup(ctx, setupFile)
			if err != nil {
				return err
			}

			if len(state.Columns) == 0 && state.DataSourceID != "" {
				cols, err := ctx.Client.GetColumns(context.Background(), state.DataSourceID)
				if err != nil {
					return fmt.Errorf("failed to fetch columns: %w", err)
				}
				state.Columns = cols
			}

			// Same gate as the wizard's review step.
			for _, step := range wizard.StepOrder {
				if result := wizard.Validate(step, state); !result.Valid {
					for _, e := range result.Errors {
						cli.PrintError("%s", e)
					}
					return fmt.Errorf("setup is not valid for generation")
				}
			}

			if !yes {
				ok, err := cli.Confirm(fmt.Sprintf("Generate campaigns for %d platforms?", len(state.Platforms)), false)
				if err != nil {
					return err
				}
				if !ok {
					cli.PrintInfo("Aborted.")
					return nil
				}
			}

			result, err := ctx.Client.SubmitGeneration(context.Background(), api.GenerationRequest{
				DataSourceID: state.DataSourceID,
				Campaign:     state.Campaign,
				Hierarchy:    state.Hierarchy,
				Platforms:    state.Platforms,
				Budgets:      state.Budgets,
				RuleIDs:      state.SelectedRules,
			})
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			if cli.OutputFormat(output) != cli.FormatText {
				return cli.OutputResults(os.Stdout, output, result)
			}

			cli.PrintSuccess("Created %d campaigns, %d ad groups, %d ads (%d rows processed, %d excluded)",
				result.Stats.CampaignCount, result.Stats.AdGroupCount, result.Stats.AdCount,
				result.Stats.RowsProcessed, result.Stats.RowsExcluded)

			table := cli.NewTableFormatter(os.Stdout)
			table.Header("NAME", "PLATFORM", "AD GROUPS", "ADS")
			for _, c := range result.Campaigns {
				table.Row(c.Name, string(c.Platform), strconv.Itoa(c.AdGroups), strconv.Itoa(c.Ads))
			}
			table.Flush()

			for _, w := range result.Warnings {
				cli.PrintWarning("%s", w)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&setupFile, "setup", "s", "", "Setup YAML file (default: last wizard session)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
