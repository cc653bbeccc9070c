package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sethmlarson/trytravis/pkg/cliutil"
	"github.com/sethmlarson/trytravis/pkg/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "token [flags] [TOKEN]",
		Short: "Set the Travis API token used to read build state",
		Args:  cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				var err error
				token, err = newPrompter(cmd).Line(
					"Input the Travis API token used to read repository information: ")
				if err != nil {
					return err
				}
			}
			if token == "" {
				return fmt.Errorf("no token given")
			}

			if err := config.SaveToken(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token saved successfully.")
			return nil
		},
	}
	argparser.AddCommand(cmd)
}
