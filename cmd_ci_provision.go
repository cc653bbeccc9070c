package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sethmlarson/trytravis/pkg/cliutil"
	"github.com/sethmlarson/trytravis/pkg/provision"
)

func init() {
	var pinsFile string
	cmd := &cobra.Command{
		Use:   "provision [flags]",
		Short: "Run the install phase for the current build matrix cell",
		Long: "Read TOXENV and the host OS, and install the Python interpreter, " +
			"virtualenv, and tox that the script phase needs.  On macOS the " +
			"interpreter comes from a fresh user-local pyenv checkout; elsewhere the " +
			"pre-installed one is used.  The first failing step aborts provisioning " +
			"with that step's error and exit status; nothing is retried.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			pins := provision.DefaultPins()
			if pinsFile != "" {
				var err error
				pins, err = provision.LoadPins(pinsFile)
				if err != nil {
					return err
				}
			}
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}

			plan := provision.SelectPlan(runtime.GOOS, os.Getenv("TOXENV"), pins)
			env := provision.NewEnv(
				provision.ExecRunner{},
				provision.HTTPFetcher{UserAgent: userAgent()},
				home,
			)
			if err := plan.Apply(ctx, env); err != nil {
				// Travis treats the install phase's exit status as the
				// failing command's, so pass the step's status through
				// instead of collapsing everything to 1.
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: error: %v\n",
					cmd.Root().CommandPath(), err)
				os.Exit(provision.ExitCode(err))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pinsFile, "pins-file", "",
		"Read interpreter version pins from `IN_YAML_FILE` instead of the built-in ones")
	argparserCI.AddCommand(cmd)
}
