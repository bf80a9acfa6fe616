package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url" yaml:"base_url"`
	Timeout int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	Verbose bool   `json:"verbose" yaml:"verbose"`
}

func writeFile(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0666)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{
		// comments are allowed
		base_url: "https://example.com",
		timeout_seconds: 30,
	}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{timeout_seconds: 5}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://example.com", cfg.BaseUrl)
	require.Equal(t, 5, cfg.Timeout)
}

func TestReadConfigYaml(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.yaml"), "base_url: http://localhost\nverbose: true\n")

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.yaml"))
	require.NoError(t, err)
	require.Equal(t, "http://localhost", cfg.BaseUrl)
	require.True(t, cfg.Verbose)
}

func TestReadConfigNotFound(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "missing.json5"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSplitExt(t *testing.T) {
	prefix, ext := splitExt("telemetry.local.json5")
	require.Equal(t, "telemetry.local", prefix)
	require.Equal(t, "json5", ext)

	prefix, ext = splitExt("noext")
	require.Equal(t, "noext", prefix)
	require.Equal(t, "", ext)
}
