package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/nixdeploy/cmd/nixdeploy/handlers"
)

// Doctor returns the command that checks the local toolchain.
func Doctor() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the tools a deployment needs are installed",
		Long: `Check that ssh, nix-store and nix-copy-closure are available.

Binary overrides from NIXDEPLOY_SSH, NIXDEPLOY_NIX_STORE and
NIXDEPLOY_NIX_COPY_CLOSURE are honoured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.OutOrStdout())
		},
	}
}
