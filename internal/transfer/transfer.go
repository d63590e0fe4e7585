// Package transfer moves shelf data in and out of JSON files.
package transfer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/blackwell-systems/shelfscribe/internal/util"
)

// DefaultExportName is the file written when no path is given.
const DefaultExportName = "shelfscribe_data.json"

// ErrReadFile wraps failures to open or read an import file.
var ErrReadFile = errors.New("could not read file")

// Export writes d as indented JSON.
func Export(w io.Writer, d shelf.Data) error {
	data, err := shelf.MarshalIndent(d)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// ExportFile writes d to path, replacing any existing file atomically.
func ExportFile(path string, d shelf.Data) error {
	data, err := shelf.MarshalIndent(d)
	if err != nil {
		return err
	}
	if err := util.WriteFileAtomic(util.ExpandHome(path), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Read validates an import document from r. Errors match ErrReadFile,
// shelf.ErrInvalidJSON or shelf.ErrInvalidShape.
func Read(r io.Reader) (shelf.Data, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	return shelf.ParseImport(data)
}

// ReadFile is Read for a path. "-" reads standard input.
func ReadFile(path string) (shelf.Data, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	f, err := os.Open(util.ExpandHome(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// Summary describes what an import would change.
type Summary struct {
	Mode     shelf.ImportMode
	Cells    int // cells in the import file
	NewCells int
	Added    int
	Skipped  int // duplicates dropped by a merge
	Removed  int // current cells dropped by a replace
}

// Preview computes the Summary of importing incoming into current.
func Preview(current, incoming shelf.Data, mode shelf.ImportMode) Summary {
	s := Summary{Mode: mode, Cells: len(incoming)}
	if mode == shelf.ModeReplace {
		s.NewCells = len(incoming)
		s.Added = incoming.Count()
		for id := range current {
			if _, ok := incoming[id]; !ok {
				s.Removed++
			}
		}
		return s
	}
	st := shelf.PreviewMerge(current, incoming)
	s.NewCells, s.Added, s.Skipped = st.NewCells, st.Added, st.Skipped
	return s
}

func (s Summary) String() string {
	if s.Mode == shelf.ModeReplace {
		return fmt.Sprintf("replace: %d cells, %d notebooks, %d current cells dropped", s.Cells, s.Added, s.Removed)
	}
	return fmt.Sprintf("merge: %d new cells, %d notebooks added, %d duplicates skipped", s.NewCells, s.Added, s.Skipped)
}
