package plugin_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gplugin-go/gplugin/pkg/plugin"
)

const greeterManifest = `
id: demo/greeter
abi_version: 16777218
name: Greeter
version: 1.2.0
license_id: MIT
summary: Says hello
description: |
  A plugin that greets the user on load.
category: demo
authors:
  - Jess <jess@example.com>
website: https://example.com/greeter
dependencies:
  - demo/core>=1.0
  - demo/i18n|demo/fallback
load_on_query: true
bind_global: true
`

func TestParseManifest(t *testing.T) {
	info, err := plugin.ParseManifest([]byte(greeterManifest))
	require.NoError(t, err)

	assert.Equal(t, "demo/greeter", info.ID())
	assert.True(t, plugin.ABICompatible(info.ABIVersion()))
	assert.Equal(t, "Greeter", info.Name())
	assert.Equal(t, "1.2.0", info.Version())
	assert.Equal(t, "MIT", info.LicenseID())
	assert.Equal(t, []string{"Jess <jess@example.com>"}, info.Authors())
	assert.Equal(t, []string{"demo/core>=1.0", "demo/i18n|demo/fallback"}, info.Dependencies())
	assert.True(t, info.LoadOnQuery())
	assert.True(t, info.BindGlobal())
	assert.False(t, info.Internal())
}

func TestParseManifestMissingID(t *testing.T) {
	_, err := plugin.ParseManifest([]byte("name: No Identity\nversion: 1.0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no id")
}

func TestParseManifestMalformedYAML(t *testing.T) {
	_, err := plugin.ParseManifest([]byte("id: [unterminated"))
	require.Error(t, err)
}

func TestParseManifestBadDependency(t *testing.T) {
	_, err := plugin.ParseManifest([]byte("id: demo/a\ndependencies:\n  - 'demo/b>='\n"))
	require.Error(t, err)
}

func TestReadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(greeterManifest), 0o644))

	info, err := plugin.ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "demo/greeter", info.ID())
}

func TestReadManifestMissingFile(t *testing.T) {
	_, err := plugin.ReadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
