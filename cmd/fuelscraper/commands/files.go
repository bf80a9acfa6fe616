package commands

import (
	"fmt"
	"fuelscraper/internal/export"
	"fuelscraper/internal/stations"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func writeFile(name string, write func(w io.Writer) error) (string, error) {
	err := os.MkdirAll(*outputDir, 0777)
	if err != nil {
		return "", err
	}
	path := filepath.Join(*outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	err = write(f)
	if err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	err = f.Close()
	if err != nil {
		return "", err
	}
	return path, nil
}

func saveRecords(prefix string, format export.Format, records []stations.StationRecord) (string, error) {
	name := export.Filename(prefix, format, clock.Now().Local())
	return writeFile(name, func(w io.Writer) error {
		return export.Save(w, records, format)
	})
}

func loadRecords(path string) ([]stations.StationRecord, export.Format, error) {
	format, err := export.FormatOf(path)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	records, err := export.Load(f, format)
	if err != nil {
		return nil, "", fmt.Errorf("load %s: %w", path, err)
	}
	return records, format, nil
}

// stem returns the file name without its directory and extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
