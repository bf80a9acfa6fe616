// Package export writes station listings to disk and reads them back.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"fuelscraper/internal/fillcost"
	"fuelscraper/internal/stations"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

type Format string

const (
	FORMAT_CSV Format = "csv"
	FORMAT_TXT Format = "txt"
)

var ErrUnknownFormat = errors.New("export: unknown format")

var (
	header     = []string{"name", "address", "price", "last_updated"}
	fillHeader = []string{"Tax", "Filled", "Total Price"}
)

func ParseFormat(text string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(text)))
	switch format {
	case FORMAT_CSV, FORMAT_TXT:
		return format, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, text)
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Filename returns "<prefix>_YYYYMMDDHHMMSS.<format>", only the base name of
// prefix is kept.
func Filename(prefix string, format Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", filepath.Base(prefix), now.Format("20060102150405"), format)
}

func recordRow(r stations.StationRecord) []string {
	return []string{r.Name, r.Address, r.PriceText(), r.LastUpdatedText()}
}

func write(w io.Writer, format Format, head []string, rows [][]string) error {
	switch format {
	case FORMAT_CSV:
		writer := csv.NewWriter(w)
		err := writer.Write(head)
		if err != nil {
			return err
		}
		err = writer.WriteAll(rows)
		if err != nil {
			return err
		}
		return nil
	case FORMAT_TXT:
		for _, row := range rows {
			_, err := fmt.Fprintln(w, strings.Join(row, ", "))
			if err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes records in the given format. csv gets a header row, txt is one
// comma separated line per record with no header.
func Save(w io.Writer, records []stations.StationRecord, format Format) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = recordRow(r)
	}
	return write(w, format, header, rows)
}

// SaveFilled writes fill cost lines, these are the usual four columns
// followed by the tax, the quantity filled and the total.
func SaveFilled(w io.Writer, lines []fillcost.Line, fill fillcost.Fill, format Format) error {
	rows := make([][]string, len(lines))
	for i, l := range lines {
		rows[i] = append(
			recordRow(l.Record),
			fill.TaxText(),
			fill.FilledText(),
			l.TotalText(),
		)
	}
	return write(w, format, slices.Concat(header, fillHeader), rows)
}

// Load reads records written by Save. Only csv can be read back, txt does
// not quote its fields so addresses containing commas are ambiguous.
func Load(r io.Reader, format Format) ([]stations.StationRecord, error) {
	if format != FORMAT_CSV {
		return nil, fmt.Errorf("%w: cannot load %q", ErrUnknownFormat, format)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	head, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(head))
	for i, name := range head {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range header {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	field := func(row []string, name string) string {
		i := columns[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []stations.StationRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		records = append(records, stations.FromText(
			field(row, "name"),
			field(row, "address"),
			field(row, "price"),
			field(row, "last_updated"),
		))
	}
	return records, nil
}
