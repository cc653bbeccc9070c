// Command trytravis sends local git changes to Travis CI without commits or
// pushes to the repository you actually care about.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sethmlarson/trytravis/pkg/cliutil"
)

// Version is the released version string, reported by `trytravis version`
// and in the API User-Agent.
const Version = "2.0"

var argparser = &cobra.Command{
	Use:   "trytravis {[flags]|SUBCOMMAND...}",
	Short: "Send local git changes to Travis CI without commits or pushes",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,

	SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
	SilenceUsage:  true, // our FlagErrorFunc will handle it
}

func init() {
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
}

func main() {
	ctx := context.Background()

	if err := argparser.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(argparser.ErrOrStderr(), "%s: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
