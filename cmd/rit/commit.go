package main

import (
	"fmt"

	"github.com/DillonJackson/rit/config"
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	var message string
	var committer string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "snapshot the index into a new commit",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringVar(&committer, "committer", "", "override the configured committer identity")
	_ = cmd.MarkFlagRequired("message")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		root, err := repoRoot()
		if err != nil {
			return err
		}
		r, err := openRepo()
		if err != nil {
			return err
		}

		identity := config.Identity{Name: committer}
		if committer == "" {
			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			identity, err = cfg.Identity()
			if err != nil {
				return err
			}
		}

		hex, err := r.Commit(message, identity, nowUnix())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hex)
		return nil
	}
	return cmd
}
