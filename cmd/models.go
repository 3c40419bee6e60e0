package cmd

import (
	"textcat/internal/config"
	"textcat/pkg/categorizer"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// modelsCmd lists the supported models and whether their credential is set.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported models and their required credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		creds := config.EnvCredentials()

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Model", "Provider", "Credential", "Set"})
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)

		for _, m := range categorizer.SupportedModels() {
			set := color.RedString("no")
			if _, ok := creds.Lookup(m.CredentialKey); ok {
				set = color.GreenString("yes")
			}
			name := m.Model
			if name == categorizer.DefaultModel {
				name += " (default)"
			}
			table.Append([]string{name, m.Provider, m.CredentialKey, set})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
