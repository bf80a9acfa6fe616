package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Run struct {
	ID        string
	Search    string
	Fuel      int64
	Method    string
	Pages     int64
	FetchedAt int64
}

type Station struct {
	RunID        string
	Idx          int64
	Name         string
	Address      string
	PriceDisplay string
	Price        sql.NullString
	LastUpdated  string
}

const createRun = `insert into run (id, search, fuel, method, pages, fetched_at)
values (?, ?, ?, ?, ?, ?)`

type CreateRunParams = Run

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) error {
	_, err := q.db.ExecContext(ctx, createRun,
		arg.ID,
		arg.Search,
		arg.Fuel,
		arg.Method,
		arg.Pages,
		arg.FetchedAt,
	)
	return err
}

const createStation = `insert into station (run_id, idx, name, address, price_display, price, last_updated)
values (?, ?, ?, ?, ?, ?, ?)`

type CreateStationParams = Station

func (q *Queries) CreateStation(ctx context.Context, arg CreateStationParams) error {
	_, err := q.db.ExecContext(ctx, createStation,
		arg.RunID,
		arg.Idx,
		arg.Name,
		arg.Address,
		arg.PriceDisplay,
		arg.Price,
		arg.LastUpdated,
	)
	return err
}

const getRuns = `select
    run.id, run.search, run.fuel, run.method, run.pages, run.fetched_at,
    count(station.idx)
from run
left join station on station.run_id = run.id
group by run.id
order by run.fetched_at desc, run.rowid desc`

type GetRunsRow struct {
	Run
	Stations int64
}

func (q *Queries) GetRuns(ctx context.Context) ([]GetRunsRow, error) {
	rows, err := q.db.QueryContext(ctx, getRuns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GetRunsRow
	for rows.Next() {
		var i GetRunsRow
		err := rows.Scan(
			&i.ID,
			&i.Search,
			&i.Fuel,
			&i.Method,
			&i.Pages,
			&i.FetchedAt,
			&i.Stations,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getRun = `select id, search, fuel, method, pages, fetched_at from run where id = ?`

func (q *Queries) GetRun(ctx context.Context, id string) (Run, error) {
	row := q.db.QueryRowContext(ctx, getRun, id)
	var i Run
	err := row.Scan(
		&i.ID,
		&i.Search,
		&i.Fuel,
		&i.Method,
		&i.Pages,
		&i.FetchedAt,
	)
	return i, err
}

const getStations = `select run_id, idx, name, address, price_display, price, last_updated
from station
where run_id = ?
order by idx asc`

func (q *Queries) GetStations(ctx context.Context, runID string) ([]Station, error) {
	rows, err := q.db.QueryContext(ctx, getStations, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Station
	for rows.Next() {
		var i Station
		err := rows.Scan(
			&i.RunID,
			&i.Idx,
			&i.Name,
			&i.Address,
			&i.PriceDisplay,
			&i.Price,
			&i.LastUpdated,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
