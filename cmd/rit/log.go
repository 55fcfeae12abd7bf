package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "walk HEAD -> parent* and print one line per commit",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		chain, err := r.Log()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, entry := range chain {
			when := time.Unix(entry.Commit.Time, 0).UTC().Format(time.RFC3339)
			fmt.Fprintf(out, "%s  %s  %s  %s\n", entry.Digest, entry.Commit.Committer, when, firstLine(entry.Commit.Message))
		}
		return nil
	}
	return cmd
}

// firstLine returns the first line of a commit message, for a one-line
// log entry.
func firstLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return message[:i]
	}
	return message
}
