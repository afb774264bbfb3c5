package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Model   string `json:"model"`
	Timeout int    `json:"timeout"`
}

func TestReadConfigMergesLocalOverride(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(
		filepath.Join(dir, "steamlens.json5"),
		[]byte(`{model: "llama3", timeout: 60}`),
		0644,
	)
	require.NoError(t, err)
	err = os.WriteFile(
		filepath.Join(dir, "steamlens.local.json5"),
		[]byte(`{timeout: 120}`),
		0644,
	)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "steamlens.json5"))
	require.NoError(t, err)
	require.Equal(t, "llama3", cfg.Model)
	require.Equal(t, 120, cfg.Timeout)
}

func TestReadConfigMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadConfig[testConfig](filepath.Join(dir, "nope.json5"))
	require.True(t, os.IsNotExist(err))

	_, err = ReadRequired[testConfig](filepath.Join(dir, "nope.json5"))
	require.ErrorContains(t, err, "does not exist")
}
