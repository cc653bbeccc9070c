package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sethmlarson/trytravis/pkg/cliutil"
)

func init() {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the trytravis version, useful when submitting an issue",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "trytravis %s (%s %s, %s)\n",
				Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
			return nil
		},
	}
	argparser.AddCommand(cmd)
}
