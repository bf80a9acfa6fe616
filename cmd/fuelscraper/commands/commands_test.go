package commands

import (
	"context"
	"fmt"
	"fuelscraper/internal/export"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div class="GenericStationListItem-module__stationListItem___3Jmn4">
  <h3 class="header__header3___1b1oq">Costco</h3>
  <div class="StationDisplay-module__address___2_c7v">1 Warehouse Rd<br/>Springfield, IL</div>
  <span class="StationDisplayPrice-module__price___3rARL">$3.50</span>
  <span class="ReportedBy-module__postedTime___J5H9Z">2 Hours Ago</span>
</div>
<div class="GenericStationListItem-module__stationListItem___3Jmn4">
  <h3 class="header__header3___1b1oq">Arco</h3>
  <div class="StationDisplay-module__address___2_c7v">3 Elm St</div>
  <span class="StationDisplayPrice-module__price___3rARL">$3.00</span>
</div>
</body></html>`

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	config, err := loadConfig(filepath.Join(dir, "missing.json5"))
	require.NoError(t, err)
	require.Equal(t, Config{}, config)

	path := filepath.Join(dir, "fuelscraper.json5")
	err = os.WriteFile(path, []byte(`{
		// comments are allowed
		base_url: "http://localhost:1234",
		timeout_seconds: 5,
		db: "history.db",
	}`), 0666)
	require.NoError(t, err)

	config, err = loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:1234", config.BaseUrl)
	require.Equal(t, "history.db", config.Db)

	opts, err := config.scraperOptions()
	require.NoError(t, err)
	require.Nil(t, opts.Dump)
	require.Equal(t, 5*time.Second, opts.Timeout)
	require.Equal(t, "http://localhost:1234", opts.BaseUrl)
}

func TestStem(t *testing.T) {
	require.Equal(t, "gas_prices_20240510", stem("/tmp/out/gas_prices_20240510.csv"))
	require.Equal(t, "plain", stem("plain"))
}

func execute(t *testing.T, args ...string) {
	rootCmd.SetArgs(args)
	err := ExecuteContext(context.Background())
	require.NoError(t, err)
}

func singleMatch(t *testing.T, pattern string) string {
	matches, err := filepath.Glob(pattern)
	require.NoError(t, err)
	require.Len(t, matches, 1, pattern)
	return matches[0]
}

func TestCommands(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultsPage)
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "fuelscraper.json5")
	err := os.WriteFile(configPath, []byte(fmt.Sprintf(`{
		base_url: %q,
		db: %q,
	}`, server.URL, filepath.Join(dir, "history.db"))), 0666)
	require.NoError(t, err)

	global := []string{"--config", configPath, "--output-dir", dir}
	dumpDir := filepath.Join(dir, "http")

	execute(t, append(global, "--dump-http", dumpDir, "scrape", "--search", "Springfield")...)
	scraped := singleMatch(t, filepath.Join(dir, "scraped_gas_prices_*.csv"))
	singleMatch(t, filepath.Join(dumpDir, "1_200.txt"))

	execute(t, append(global, "sort", scraped, "--by", "price")...)
	sortedPath := singleMatch(t, filepath.Join(dir, "sorted_scraped_gas_prices_*.csv"))

	f, err := os.Open(sortedPath)
	require.NoError(t, err)
	sorted, err := export.Load(f, export.FORMAT_CSV)
	f.Close()
	require.NoError(t, err)
	require.Len(t, sorted, 2)
	require.Equal(t, "Arco", sorted[0].Name)
	require.Equal(t, "Costco", sorted[1].Name)

	execute(t, append(global, "fill", scraped, "--quantity", "10", "--unit", "gal", "--tax", "10")...)
	filled, err := os.ReadFile(filepath.Join(dir, "Total_Price_"+filepath.Base(scraped)))
	require.NoError(t, err)
	require.Contains(t, string(filled), "Costco,\"1 Warehouse Rd, Springfield, IL\",$3.50,2 Hours Ago,10%,10 gal,$38.50")

	execute(t, append(global, "graph", scraped)...)
	singleMatch(t, filepath.Join(dir, "gas_prices_*.svg"))

	execute(t, append(global, "runs")...)
}
