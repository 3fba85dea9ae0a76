package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/nixdeploy/cmd/nixdeploy/handlers"
)

// Deploy returns the command that deploys a system derivation.
//
// Flags must come before the positional arguments. Everything from the first
// positional argument on is passed through untouched, so build options such
// as "--option name value" are not parsed as nixdeploy flags.
//
// Optional flags:
//
//	--file, -f: Path to a deployment YAML file instead of positional arguments
//	--verbose, -v: Log every command that is run
func Deploy() *cobra.Command {
	var filePath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "deploy [flags] <drv> <out> <host> <port> <build-on-target> <key|-> <action> <retention> <gc> [build-option...] <end>",
		Short: "Deploy a system derivation to a remote host",
		Long: `Deploy a NixOS system derivation to a remote host over SSH.

Positional arguments:
  drv              Store path of the system derivation (required)
  out              Expected output path, used when a remote build reports none
  host             ssh destination, e.g. root@10.0.0.2 (required)
  port             ssh port (required)
  build-on-target  true to build on the target, false to build locally (required)
  key              Private key material, or "-" / "" for ambient credentials
  action           switch, boot, test or dry-activate (required)
  retention        Generations to delete when gc is true, e.g. "+5" or "14d"
  gc               true to delete generations and collect garbage

When more than nine arguments are given, the last one is discarded and the
arguments between the ninth and the last are passed to nix-store --realize.

Remote commands run through ./maybe-sudo.sh in the login user's home
directory. Host keys are not verified.

Environment variables:
  NIXDEPLOY_SSH, NIXDEPLOY_NIX_STORE, NIXDEPLOY_NIX_COPY_CLOSURE
                            Local binaries to use
  NIXDEPLOY_PROFILE         System profile on the target
  NIXDEPLOY_REMOTE_HELPER   Remote command prefix
  NIXDEPLOY_SSH_EXTRA_OPTS  Extra ssh options, shell-quoted

Examples:
  # Build locally, switch, keep the last five generations
  nixdeploy deploy /nix/store/...-nixos-system.drv "" root@10.0.0.2 22 false - switch +5 true end

  # Build on the target with an extra realize option
  nixdeploy deploy -v /nix/store/...-nixos-system.drv "" root@10.0.0.2 22 true - boot "" false --option cores 4 end

  # Use a deployment file
  nixdeploy deploy -f production.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Deploy(cmd.Context(), handlers.DeployOptions{
				Args:     args,
				FilePath: filePath,
				Verbose:  verbose,
			})
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Path to deployment file (default: nixdeploy.yaml when no arguments are given)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every command that is run")

	return cmd
}
