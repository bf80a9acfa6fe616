package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectoryDump(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dump")

	dump, err := NewDirectoryDump(dir)
	require.NoError(t, err)

	require.NoError(t, dump.Write("1_200.txt", "---- REQUEST ----"))
	contents, err := os.ReadFile(filepath.Join(dir, "1_200.txt"))
	require.NoError(t, err)
	require.Equal(t, "---- REQUEST ----", string(contents))
}

func TestDirectoryDumpKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "scraped_gas_prices_20240510.csv")
	require.NoError(t, os.WriteFile(existing, []byte("Name,Address\n"), 0600))

	dump, err := NewDirectoryDump(dir)
	require.NoError(t, err)
	require.NoError(t, dump.Write("1_200.txt", "exchange"))

	contents, err := os.ReadFile(existing)
	require.NoError(t, err)
	require.Equal(t, "Name,Address\n", string(contents))
}
