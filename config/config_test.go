package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DillonJackson/rit/config"
	"github.com/DillonJackson/rit/internal/ritpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(ritpath.Root(root), 0o755))
	return root
}

func TestLoadMissingFileHasNoIdentity(t *testing.T) {
	t.Parallel()

	root := setupRoot(t)
	cfg, err := config.Load(root)
	require.NoError(t, err)

	_, err = cfg.Identity()
	assert.ErrorIs(t, err, config.ErrIdentityNotSet)
}

func TestSetIdentityThenLoadRoundTrips(t *testing.T) {
	t.Parallel()

	root := setupRoot(t)
	cfg, err := config.Load(root)
	require.NoError(t, err)

	require.NoError(t, cfg.SetIdentity(config.Identity{Name: "Ada Lovelace", Email: "ada@example.com"}))

	reloaded, err := config.Load(root)
	require.NoError(t, err)
	id, err := reloaded.Identity()
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", id.Name)
	assert.Equal(t, "ada@example.com", id.Email)
	assert.Equal(t, "Ada Lovelace <ada@example.com>", id.String())
}

func TestIdentityStringWithoutEmail(t *testing.T) {
	t.Parallel()

	id := config.Identity{Name: "Ada Lovelace"}
	assert.Equal(t, "Ada Lovelace", id.String())
}

func TestLoadExistingFileParsesIdentity(t *testing.T) {
	t.Parallel()

	root := setupRoot(t)
	content := "[user]\nname = Grace Hopper\nemail = grace@example.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(ritpath.Root(root), "config"), []byte(content), 0o644))

	cfg, err := config.Load(root)
	require.NoError(t, err)
	id, err := cfg.Identity()
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", id.Name)
	assert.Equal(t, "grace@example.com", id.Email)
}
