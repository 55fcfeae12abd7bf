package main

import (
	"os"

	"github.com/DillonJackson/rit/repo"
)

// repoRoot is the working directory the CLI treats as the repository
// root; the core requires no other environment configuration.
func repoRoot() (string, error) {
	return os.Getwd()
}

// openRepo wires up a Repo against the current working directory.
func openRepo() (*repo.Repo, error) {
	root, err := repoRoot()
	if err != nil {
		return nil, err
	}
	return repo.Open(root)
}
