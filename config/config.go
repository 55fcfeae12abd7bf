// Package config reads the committer identity used to stamp commits,
// from the repository-local config file at .rit/config.
package config

import (
	"os"

	"github.com/DillonJackson/rit/internal/ritpath"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// ErrIdentityNotSet is returned when user.name is not configured,
// whether or not user.email is.
var ErrIdentityNotSet = errors.New("committer identity not set")

// loadOptions mirrors the permissive parsing used across the repo:
// an unrecognized or malformed line doesn't abort loading.
var loadOptions = ini.LoadOptions{SkipUnrecognizableLines: true}

// Identity is the committer identity stamped into commit records.
type Identity struct {
	Name  string
	Email string
}

// String renders the identity the way it's written into a commit
// payload's committer line: "Name <email>".
func (id Identity) String() string {
	if id.Email == "" {
		return id.Name
	}
	return id.Name + " <" + id.Email + ">"
}

// Config wraps the repository-local config file.
type Config struct {
	path string
	file *ini.File
}

// Load reads the config file at repoRoot/.rit/config. A missing file
// loads as an empty config rather than failing.
func Load(repoRoot string) (*Config, error) {
	path := ritpath.Config(repoRoot)

	file, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{path: path, file: ini.Empty(loadOptions)}, nil
		}
		return nil, errors.Wrap(err, "could not load config file")
	}
	return &Config{path: path, file: file}, nil
}

// Identity returns the configured committer identity. Fails with
// ErrIdentityNotSet if user.name isn't set.
func (c *Config) Identity() (Identity, error) {
	section := c.file.Section("user")
	name := section.Key("name").String()
	if name == "" {
		return Identity{}, ErrIdentityNotSet
	}
	return Identity{Name: name, Email: section.Key("email").String()}, nil
}

// SetIdentity writes user.name and user.email and persists the file.
func (c *Config) SetIdentity(id Identity) error {
	section := c.file.Section("user")
	if _, err := section.NewKey("name", id.Name); err != nil {
		return errors.Wrap(err, "could not set user.name")
	}
	if _, err := section.NewKey("email", id.Email); err != nil {
		return errors.Wrap(err, "could not set user.email")
	}
	if err := c.file.SaveTo(c.path); err != nil {
		return errors.Wrap(err, "could not save config file")
	}
	return nil
}
