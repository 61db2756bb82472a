package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"

	"github.com/example/coffee-sales/pkg/sale"
)

var log = logging.MustGetLogger("loader")

// Options controls how the sales file is read
type Options struct {
	// Sheet is the worksheet to read from spreadsheet files; empty means the first sheet
	Sheet string
}

// LoadError reports why the sales file could not be loaded.
// Row is the 1-based line of the file and Column the header name, when known.
type LoadError struct {
	Path   string
	Row    int
	Column string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to load %s", e.Path)
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ", column %s", e.Column)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads the sales file at path into a dataset.
// The format is chosen by extension: .xlsx/.xlsm or .csv.
func Load(path string, opts Options) (*sale.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Reason: "file not found", Err: err}
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		rows, err = readSpreadsheet(path, opts.Sheet)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, &LoadError{Path: path, Reason: fmt.Sprintf("unsupported file type %q", ext)}
	}
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "malformed file", Err: err}
	}

	records, err := parseRows(rows)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	normalized := 0
	for _, r := range records {
		if strings.TrimSpace(r.Card) == "" || strings.TrimSpace(r.CashType) == "" {
			normalized++
		}
	}

	d := sale.NewDataset(records)
	log.Infof("Loaded %d sales from %s", d.Len(), path)
	log.Debugf("Assigned %q to %d sales without payment card data", sale.NonCard, normalized)
	return d, nil
}
