package main

import (
	"github.com/spf13/cobra"
)

func newCatFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat-file DIGEST",
		Short: "print the raw payload of a stored object",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		_, _, payload, err := r.Objects.Get(args[0])
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(payload)
		return err
	}
	return cmd
}
