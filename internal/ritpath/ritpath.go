// Package ritpath contains consts and helpers to work with paths inside
// the .rit directory.
package ritpath

import "path/filepath"

// .rit/ files and directories
const (
	DotRitPath    = ".rit"
	HEADPath      = "HEAD"
	IndexPath     = "index"
	ConfigPath    = "config"
	ObjectsPath   = "objects"
	RefsPath      = "refs"
	RefsHeadsPath = RefsPath + "/heads"
)

// Root returns the absolute path of the .rit directory for the given
// repository root (the directory containing .rit/).
func Root(repoRoot string) string {
	return filepath.Join(repoRoot, DotRitPath)
}

// Objects returns the absolute path of the object store directory.
func Objects(repoRoot string) string {
	return filepath.Join(Root(repoRoot), ObjectsPath)
}

// Head returns the absolute path of the HEAD file.
func Head(repoRoot string) string {
	return filepath.Join(Root(repoRoot), HEADPath)
}

// Index returns the absolute path of the index file.
func Index(repoRoot string) string {
	return filepath.Join(Root(repoRoot), IndexPath)
}

// Config returns the absolute path of the repo-local config file.
func Config(repoRoot string) string {
	return filepath.Join(Root(repoRoot), ConfigPath)
}

// RefsHeads returns the absolute path of the refs/heads directory.
func RefsHeads(repoRoot string) string {
	return filepath.Join(Root(repoRoot), RefsHeadsPath)
}

// Branch returns the absolute path of the ref file for the given branch.
func Branch(repoRoot, name string) string {
	return filepath.Join(RefsHeads(repoRoot), name)
}
