package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-fit/internal/shopping"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("MENUFIT_DATABASE_PATH", filepath.Join(dir, "data", "menu-fit.db"))
	t.Setenv("MENUFIT_LOGGING_LEVEL", "error")
	return dir
}

func TestExport_Stdout(t *testing.T) {
	setupEnv(t)
	out, err := execute(t, "export", "--stdout")
	require.NoError(t, err)
	assert.Equal(t, shopping.NewSampleList().Export()+"\n", out)
}

func TestExport_File(t *testing.T) {
	dir := setupEnv(t)
	target := filepath.Join(dir, "exports")

	out, err := execute(t, "export", "--dir", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Lista exportada a")

	data, err := os.ReadFile(filepath.Join(target, shopping.ExportFilename))
	require.NoError(t, err)
	assert.Equal(t, shopping.NewSampleList().Export(), string(data))

	out, err = execute(t, "metrics", "--days", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "exportaciones=1")
}

func TestExport_Timestamped(t *testing.T) {
	dir := setupEnv(t)
	target := filepath.Join(dir, "exports")

	_, err := execute(t, "export", "--dir", target, "--timestamp")
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(target, "lista-compras-menu-fit_*.txt"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.NoFileExists(t, filepath.Join(target, shopping.ExportFilename))
}

func TestMetricsCleanup(t *testing.T) {
	setupEnv(t)
	out, err := execute(t, "metrics-cleanup", "--days", "30")
	require.NoError(t, err)
	assert.Equal(t, "Successfully removed 0 old usage records.\n", out)

	_, err = execute(t, "metrics-cleanup", "--days", "-1")
	assert.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv("MENUFIT_LOGGING_LEVEL", "loud")
	_, err := execute(t, "export", "--stdout")
	assert.Error(t, err)
}
