package sheets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Export names one published sheet.
type Export string

const (
	StatusExport     Export = "status"     // gviz JSON daily status table
	DetailsExport    Export = "details"    // CSV component ledger by tail number
	EnginesExport    Export = "engines"    // CSV engine stores ledger
	PropellersExport Export = "propellers" // CSV propeller stores ledger
)

// Exports lists every export a load reads.
var Exports = []Export{StatusExport, DetailsExport, EnginesExport, PropellersExport}

// Source fetches raw export bodies.
type Source interface {
	Fetch(ctx context.Context, export Export) ([]byte, error)
}

// FileName is the file a DirSource reads for an export.
func FileName(export Export) string {
	if export == StatusExport {
		return string(export) + ".json"
	}
	return string(export) + ".csv"
}

// DirSource serves exports from files saved in a directory.
type DirSource struct {
	dir string
}

// NewDirSource creates a source over dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Dir returns the directory being read.
func (s *DirSource) Dir() string {
	return s.dir
}

// Fetch reads the export file.
func (s *DirSource) Fetch(ctx context.Context, export Export) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, FileName(export))
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export %s: %w", path, err)
	}
	return body, nil
}
