// Package report renders listings, fill costs and stored runs as terminal
// tables.
package report

import (
	"fuelscraper/internal/chart"
	"fuelscraper/internal/fillcost"
	"fuelscraper/internal/history"
	"fuelscraper/internal/stations"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func Records(w io.Writer, records []stations.StationRecord) {
	t := NewTable(w)
	t.AppendHeader(table.Row{"#", "Name", "Address", "Price", "Last Updated"})
	for i, r := range records {
		t.AppendRow(table.Row{i + 1, r.Name, r.Address, r.PriceText(), r.LastUpdatedText()})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

func Filled(w io.Writer, lines []fillcost.Line, fill fillcost.Fill) {
	t := NewTable(w)
	t.SetTitle("%s at %s tax", fill.FilledText(), fill.TaxText())
	t.AppendHeader(table.Row{"Name", "Address", "Price", "Total Price"})
	for _, l := range lines {
		t.AppendRow(table.Row{l.Record.Name, l.Record.Address, l.Record.PriceText(), l.TotalText()})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

func Summary(w io.Writer, summary chart.Summary) {
	t := NewTable(w)
	t.AppendRows([]table.Row{
		{"Stations priced", len(summary.Bars)},
		{"Average price", summary.Average.StringFixed(2)},
		{"Lowest price", summary.Lowest.StringFixed(2)},
	})
	t.Render()
}

func Runs(w io.Writer, runs []history.Run) {
	t := NewTable(w)
	t.AppendHeader(table.Row{"Run", "Fetched At", "Search", "Fuel", "Method", "Pages", "Stations"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.ID.String(),
			r.FetchedAt.Local().Format(time.DateTime),
			r.Query.Search,
			r.Query.Fuel.String(),
			string(r.Query.Method),
			r.Query.Pages,
			r.Stations,
		})
	}
	t.Render()
}
