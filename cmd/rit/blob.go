package main

import (
	"github.com/DillonJackson/rit/object"
	"github.com/spf13/cobra"
)

func newBlobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blob DIGEST",
		Short: "print a blob's payload, failing if the digest names another type",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		payload, err := r.Objects.GetTyped(args[0], object.TypeBlob)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(payload)
		return err
	}
	return cmd
}
