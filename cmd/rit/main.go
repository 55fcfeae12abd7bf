// Command rit is the thin CLI adapter over the core engine: it parses
// arguments, drives the repo package, and renders results. None of the
// core semantics live here.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rit",
		Short:         "a minimal content-addressed version-control engine",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	verbose := cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	}

	cmd.AddCommand(
		newInitCmd(),
		newRemoveCmd(),
		newHashObjectCmd(),
		newCatFileCmd(),
		newBlobCmd(),
		newAddCmd(),
		newLsTreeCmd(),
		newCommitCmd(),
		newStatusCmd(),
		newLogCmd(),
		newBranchCmd(),
	)
	return cmd
}
