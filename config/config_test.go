package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, cfg.Package)
	assert.Empty(t, cfg.Includes)
	assert.False(t, cfg.Verbose)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `package: mypkg
includes:
  - "#include <Rcpp.h>"
  - "#include \"local.h\""
verbose: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "mypkg", cfg.Package)
	assert.Equal(t, []string{"#include <Rcpp.h>", `#include "local.h"`}, cfg.Includes)
	assert.True(t, cfg.Verbose)
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(":\n  - not yaml"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}
