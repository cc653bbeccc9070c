package main

import (
	"github.com/spf13/cobra"

	"github.com/sethmlarson/trytravis/pkg/cliutil"
)

// The `ci` subcommands are plumbing for trytravis' own Travis pipeline, not
// part of the user-facing surface.
var argparserCI = &cobra.Command{
	Use:    "ci {[flags]|SUBCOMMAND...}",
	Short:  "Plumbing used by trytravis' own CI pipeline",
	Hidden: true,

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserCI)
}
