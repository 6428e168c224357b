package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"pmfolio/web/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile <identifier>",
	Short: "Assemble a profile and print it as JSON",
	Long: `Resolves the identifier with IDENTITY_STRATEGY, loads the profile from the
configured store and prints the resulting page. Useful to check a deployment's data.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.close()

		page := a.assembler.Load(cmd.Context(), args[0])
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(page); err != nil {
			return err
		}
		if page.State == profile.StateError {
			return page.Err
		}
		return nil
	},
}
