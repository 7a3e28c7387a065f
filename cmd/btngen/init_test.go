package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindlemire/btngen/internal/config"
)

func TestInit(t *testing.T) {
	dir := inTempDir(t, nil)

	stdout, _, err := execute(context.Background(), "", "init")
	require.NoError(t, err)
	assert.Equal(t, "Wrote btngen.yaml\n", stdout)

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, _, err = execute(context.Background(), "", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_ForceReplacesInvalidConfig(t *testing.T) {
	dir := inTempDir(t, map[string]string{"btngen.yaml": "output_suffix: nope\n"})

	_, _, err := execute(context.Background(), "", "init", "--force")
	require.NoError(t, err)

	_, err = config.Load(filepath.Join(dir, config.DefaultFileName))
	require.NoError(t, err)
}

func TestInit_ConfigFlag(t *testing.T) {
	dir := inTempDir(t, nil)

	_, _, err := execute(context.Background(), "", "--config", "conf/btngen.yaml", "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "conf", "btngen.yaml"))
}
