package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sethmlarson/trytravis/pkg/cliutil"
	"github.com/sethmlarson/trytravis/pkg/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repo [flags] [URL]",
		Short: "Set the GitHub repository that changes get pushed to",
		Long: "Store the URL of the scratch GitHub repository that `trytravis submit` " +
			"force-pushes to.  The repository name must contain `trytravis`, which " +
			"keeps a mistyped URL from ever force-pushing over a repository you care " +
			"about.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := newPrompter(cmd)

			var url string
			if len(args) == 1 {
				url = args[0]
			} else {
				var err error
				url, err = prompt.Line(
					"Input the URL of the GitHub repository to use as a `trytravis` repository: ")
				if err != nil {
					return err
				}
			}
			if err := config.ValidateRepoURL(url); err != nil {
				return err
			}

			accept, err := prompt.Line(fmt.Sprintf(
				"Remember that `trytravis` will make commits on your behalf to `%s`. "+
					"Are you sure you wish to use this repository? Type `y` or `yes` to accept: ", url))
			if err != nil {
				return err
			}
			if accept != "y" && accept != "yes" {
				return fmt.Errorf("operation aborted by user")
			}

			if err := config.SaveRepo(url); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Repository saved successfully.")
			return nil
		},
	}
	argparser.AddCommand(cmd)
}
