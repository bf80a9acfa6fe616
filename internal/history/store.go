// Package history keeps every acquisition in a local sqlite database so
// earlier listings can be looked at again without scraping.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"fuelscraper/internal/history/db"
	"fuelscraper/internal/stations"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

var ErrRunNotFound = errors.New("history: run not found")

func wrapOpenDB(err error) error {
	return fmt.Errorf("open db: %w", err)
}

// OpenDB opens (or creates) the database at path and makes sure the schema
// exists. ":memory:" opens a throwaway database.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapOpenDB(err)
	}

	// sqlite only allows a single writer
	database.SetMaxOpenConns(1)
	_, err = database.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		database.Close()
		return nil, wrapOpenDB(err)
	}
	_, err = database.Exec(db.Schema)
	if err != nil {
		database.Close()
		return nil, wrapOpenDB(err)
	}

	return database, nil
}

type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

type RunParams struct {
	Query     stations.Query
	FetchedAt time.Time
}

type Run struct {
	ID        uuid.UUID
	Query     stations.Query
	FetchedAt time.Time
	// Stations is the amount of records saved with the run.
	Stations int
}

// SaveRun stores an acquisition along with its records, all or nothing.
func (s Store) SaveRun(ctx context.Context, params RunParams, records []stations.StationRecord) (uuid.UUID, error) {
	id := uuid.New()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.CreateRun(ctx, db.CreateRunParams{
		ID:        id.String(),
		Search:    params.Query.Search,
		Fuel:      int64(params.Query.Fuel),
		Method:    string(params.Query.Method),
		Pages:     int64(params.Query.Pages),
		FetchedAt: params.FetchedAt.Unix(),
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("create run: %w", err)
	}

	for i, r := range records {
		var price sql.NullString
		if r.Price.Valid {
			price = sql.NullString{String: r.Price.Decimal.String(), Valid: true}
		}
		err = txqry.CreateStation(ctx, db.CreateStationParams{
			RunID:        id.String(),
			Idx:          int64(i),
			Name:         r.Name,
			Address:      r.Address,
			PriceDisplay: r.DisplayPrice,
			Price:        price,
			LastUpdated:  r.LastUpdated,
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("create station %d: %w", i, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func toQuery(r db.Run) stations.Query {
	return stations.Query{
		Search: r.Search,
		Fuel:   stations.FuelType(r.Fuel),
		Method: stations.PaymentMethod(r.Method),
		Pages:  int(r.Pages),
	}
}

// Runs lists every stored run, newest first.
func (s Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.qry.GetRuns(ctx)
	if err != nil {
		return nil, err
	}

	runs := make([]Run, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("run id %q: %w", r.ID, err)
		}
		runs = append(runs, Run{
			ID:        id,
			Query:     toQuery(r.Run),
			FetchedAt: time.Unix(r.FetchedAt, 0).UTC(),
			Stations:  int(r.Stations),
		})
	}
	return runs, nil
}

// Records returns the records of a run in the order they were saved.
func (s Store) Records(ctx context.Context, runID uuid.UUID) ([]stations.StationRecord, error) {
	_, err := s.qry.GetRun(ctx, runID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.qry.GetStations(ctx, runID.String())
	if err != nil {
		return nil, err
	}

	records := make([]stations.StationRecord, len(rows))
	for i, r := range rows {
		record := stations.StationRecord{
			Name:         r.Name,
			Address:      r.Address,
			DisplayPrice: r.PriceDisplay,
			LastUpdated:  r.LastUpdated,
		}
		if r.Price.Valid {
			price, err := decimal.NewFromString(r.Price.String)
			if err != nil {
				return nil, fmt.Errorf("station %d price: %w", r.Idx, err)
			}
			record.Price = decimal.NewNullDecimal(price)
		}
		records[i] = record
	}
	return records, nil
}
