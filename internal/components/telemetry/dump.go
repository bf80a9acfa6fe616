package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
)

// HttpDump receives the full request/response exchange of every request
// made through an instrumented client.
type HttpDump interface {
	Write(id string, contents string) error
}

// DirectoryDump writes every exchange to its own file in a directory.
type DirectoryDump struct {
	directory string
}

// NewDirectoryDump creates dir if needed and returns a dump writing into it.
// Existing files in dir are left alone.
func NewDirectoryDump(dir string) (DirectoryDump, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return DirectoryDump{}, err
	}
	return DirectoryDump{directory: dir}, nil
}

func (d DirectoryDump) Write(id string, contents string) error {
	path := filepath.Join(d.directory, id)
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		return fmt.Errorf("write http dump %s: %w", path, err)
	}
	return nil
}
