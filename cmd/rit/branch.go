package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch NAME",
		Short: "point a new branch at the current branch's tip",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		tip, ok, err := r.Refs.CurrentBranchTip()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("current branch has no commits yet")
		}
		if err := r.Refs.CreateBranch(args[0], tip); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created branch %s at %s\n", args[0], tip)
		return nil
	}
	return cmd
}
