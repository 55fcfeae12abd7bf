package main

import (
	"fmt"

	"github.com/DillonJackson/rit/object"
	"github.com/spf13/cobra"
)

func newLsTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls-tree DIGEST",
		Short: "list the entries of a tree object",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		payload, err := r.Objects.GetTyped(args[0], object.TypeTree)
		if err != nil {
			return err
		}
		entries, err := object.DecodeTree(payload)
		if err != nil {
			return err
		}
		for _, e := range object.SortEntries(entries) {
			fmt.Fprintf(cmd.OutOrStdout(), "%06o %s\t%s\t%s\n", e.Mode, e.Type, e.Digest.String(), e.Name)
		}
		return nil
	}
	return cmd
}
