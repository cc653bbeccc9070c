package main

import (
	"github.com/spf13/cobra"

	"github.com/sethmlarson/trytravis/pkg/cliutil"
	"github.com/sethmlarson/trytravis/pkg/provision"
)

func init() {
	cmd := &cobra.Command{
		Use:   "config >TRAVIS_YML",
		Short: "Print the Travis pipeline definition",
		Long: "Render the declared build matrix (interpreter version x OS x test mode), " +
			"install/script/after_success phases, caching, and branch filter as " +
			"Travis config YAML.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			rendered, err := provision.DefaultPipeline().RenderYAML()
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(rendered); err != nil {
				return err
			}
			return nil
		},
	}
	argparserCI.AddCommand(cmd)
}
