package history

import (
	"context"
	"fuelscraper/internal/stations"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	sqlite, err := OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer sqlite.Close()
	store := NewStore(sqlite)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		runs, err := store.Runs(ctx)
		require.NoError(t, err)
		require.Len(t, runs, 0)

		_, err = store.Records(ctx, uuid.New())
		require.ErrorIs(t, err, ErrRunNotFound)
	}

	first := []stations.StationRecord{
		stations.FromText("Costco", "1 Warehouse Rd", "$3.19", "2 hours ago"),
		stations.FromText("Shell", "2 Main St", "", ""),
		stations.FromText("Arco", "3 Elm St", "300¢", "2024-05-01"),
	}
	second := []stations.StationRecord{
		stations.FromText("Esso", "4 King St", "139.9¢", "Less than an hour ago"),
	}

	query := stations.Query{
		Search: "Springfield",
		Fuel:   stations.FUEL_DIESEL,
		Method: stations.PAYMENT_CREDIT,
		Pages:  3,
	}
	fetchedAt := time.Date(2024, time.May, 10, 18, 0, 0, 0, time.UTC)

	firstID, err := store.SaveRun(ctx, RunParams{Query: query, FetchedAt: fetchedAt}, first)
	require.NoError(t, err)
	secondID, err := store.SaveRun(ctx, RunParams{Query: query, FetchedAt: fetchedAt.Add(time.Hour)}, second)
	require.NoError(t, err)
	require.NotEqual(t, firstID, secondID)

	{
		runs, err := store.Runs(ctx)
		require.NoError(t, err)
		require.Len(t, runs, 2)

		require.Equal(t, secondID, runs[0].ID)
		require.Equal(t, 1, runs[0].Stations)
		require.Equal(t, firstID, runs[1].ID)
		require.Equal(t, 3, runs[1].Stations)
		require.Equal(t, query, runs[1].Query)
		require.True(t, fetchedAt.Equal(runs[1].FetchedAt))
	}
	{
		records, err := store.Records(ctx, firstID)
		require.NoError(t, err)

		diff := cmp.Diff(first, records, cmp.Comparer(func(a, b decimal.Decimal) bool {
			return a.Equal(b)
		}))
		if diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestSaveRunEmpty(t *testing.T) {
	sqlite, err := OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer sqlite.Close()
	store := NewStore(sqlite)

	ctx := context.Background()
	id, err := store.SaveRun(ctx, RunParams{FetchedAt: time.Now()}, nil)
	require.NoError(t, err)

	records, err := store.Records(ctx, id)
	require.NoError(t, err)
	require.Empty(t, records)

	runs, err := store.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, 0, runs[0].Stations)
}

func TestOpenDBUnderRegularFile(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "not_a_dir")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0600))

	_, err := OpenDB(filepath.Join(parent, "history.db"))
	require.ErrorContains(t, err, "open db")
}
