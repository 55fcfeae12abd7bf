package main

import (
	"fmt"
	"io"

	"github.com/DillonJackson/rit/status"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "show staged, unstaged, and untracked changes",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		result, err := r.Status.Compute(r.Index)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printSection(out, "Changes to be committed", result.Staged, pterm.FgGreen)
		printSection(out, "Changes not staged for commit", result.NotStaged, pterm.FgRed)
		printSection(out, "Untracked files", result.Untracked, pterm.FgYellow)

		if len(result.Staged)+len(result.NotStaged)+len(result.Untracked) == 0 {
			fmt.Fprintln(out, pterm.FgGreen.Sprint("nothing to commit, working tree clean"))
		}
		return nil
	}
	return cmd
}

// printSection renders one status category as a bold section header
// followed by one colorized "<kind>: <path>" line per entry. Colouring
// is cosmetic, per §4.7 of the core contract the CLI sits on top of.
func printSection(out io.Writer, title string, entries []status.Entry, color pterm.Color) {
	if len(entries) == 0 {
		return
	}
	pterm.DefaultSection.WithWriter(out).Println(title)
	for _, e := range entries {
		fmt.Fprintln(out, color.Sprint(fmt.Sprintf("\t%s: %s", e.Kind, e.Path)))
	}
}
