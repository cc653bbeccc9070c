package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/datawire/dlib/dgroup"
	"github.com/spf13/cobra"

	"github.com/sethmlarson/trytravis/pkg/cliutil"
	"github.com/sethmlarson/trytravis/pkg/config"
	"github.com/sethmlarson/trytravis/pkg/gitremote"
	"github.com/sethmlarson/trytravis/pkg/travis"
)

func init() {
	var noWait bool
	cmd := &cobra.Command{
		Use:   "submit [flags]",
		Short: "Submit the current repository's local changes to Travis",
		Long: "Temporarily commit whatever is in the working tree, force-push it to the " +
			"configured scratch repository, and then follow the Travis build that " +
			"results.  The working tree and branch are restored before the build is " +
			"watched, so you can keep editing while Travis works.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			url, err := config.LoadRepo()
			if err != nil {
				return err
			}
			token, err := config.LoadToken()
			if err != nil {
				return err
			}
			slug, err := config.Slug(url)
			if err != nil {
				return err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			sub, err := gitremote.Submit(ctx, cwd, url)
			if err != nil {
				return err
			}

			client := travis.Client{
				Token:     token,
				UserAgent: userAgent(),
			}
			fmt.Fprintf(out, "Waiting for a Travis build to appear for `%s` after `%s`...\n",
				sub.Commit, sub.CommittedAt)
			buildID, err := client.WaitForBuild(ctx, sub.Commit, sub.CommittedAt)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Travis build id: `%d`\n", buildID)
			fmt.Fprintf(out, "Travis build URL: `%s`\n", travis.BuildURL(slug, buildID))

			if noWait {
				return nil
			}

			watcher := travis.Watcher{
				Client: client,
				Out:    out,
				Width:  cliutil.GetTerminalWidth(),
			}
			grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{
				EnableSignalHandling: true,
			})
			grp.Go("watch", func(ctx context.Context) error {
				return watcher.Watch(ctx, buildID)
			})
			// Ctrl-C stops watching; the build itself keeps running.
			if err := grp.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noWait, "no-wait", false,
		"Don't wait for the build to finish")
	argparser.AddCommand(cmd)
}
