package main

import (
	"fmt"

	"github.com/DillonJackson/rit/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "create an empty repository in the current directory",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		root, err := repoRoot()
		if err != nil {
			return err
		}
		if _, err := repo.Init(root); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "initialized empty repository in", root)
		return nil
	}
	return cmd
}
