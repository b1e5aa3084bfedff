package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/cell"
	"github.com/parquet-go/parquet-go"
)

// Options controls how tables are read.
type Options struct {
	// GroundTruthDelimiter separates ground-truth cells. Entered tables are
	// always comma separated.
	GroundTruthDelimiter rune
	NullTokens           []string
	Entered              EnteredColumns
	GroundTruth          GroundTruthColumns
}

// DefaultOptions reads comma separated entered tables and a tab separated
// ground truth with the stock headers.
func DefaultOptions() Options {
	return Options{
		GroundTruthDelimiter: '\t',
		NullTokens:           cell.DefaultNullTokens,
		Entered:              DefaultEnteredColumns(),
		GroundTruth:          DefaultGroundTruthColumns(),
	}
}

// Loader reads entered and ground-truth tables. A missing or empty file is
// not an error: it loads as zero rows.
type Loader struct {
	opts Options
}

// NewLoader creates a new table loader
func NewLoader(opts Options) *Loader {
	if opts.GroundTruthDelimiter == 0 {
		opts.GroundTruthDelimiter = '\t'
	}
	return &Loader{opts: opts}
}

// LoadEntered loads one entered table.
func (l *Loader) LoadEntered(path string) ([]EnteredRecord, error) {
	var records []EnteredRecord
	err := l.readDelimited(path, ',', l.opts.Entered.Names(), func(line int, cells []cell.Value) {
		r := EnteredRecord{Source: path, Line: line}
		for i, dst := range enteredCells(&r) {
			*dst = cells[i]
		}
		records = append(records, r)
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Loaded entered table", "path", path, "rows", len(records))
	return records, nil
}

// LoadAllEntered loads every entered table and concatenates them in order.
func (l *Loader) LoadAllEntered(paths []string) ([]EnteredRecord, error) {
	var all []EnteredRecord
	for _, path := range paths {
		records, err := l.LoadEntered(path)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// LoadGroundTruth loads the reference table, delimited text or Parquet
// depending on the file extension.
func (l *Loader) LoadGroundTruth(path string) ([]GroundTruthRecord, error) {
	if strings.ToLower(filepath.Ext(path)) == ".parquet" {
		return l.loadGroundTruthParquet(path)
	}

	var records []GroundTruthRecord
	err := l.readDelimited(path, l.opts.GroundTruthDelimiter, l.opts.GroundTruth.Names(), func(line int, cells []cell.Value) {
		r := GroundTruthRecord{Line: line}
		for i, dst := range groundTruthCells(&r) {
			*dst = cells[i]
		}
		records = append(records, r)
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Loaded ground truth", "path", path, "rows", len(records))
	return records, nil
}

// readDelimited calls fn for every data row with the cells of the wanted
// columns, in the order given. Columns missing from the header read as
// absent.
func (l *Loader) readDelimited(path string, delim rune, wanted []string, fn func(line int, cells []cell.Value)) error {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Input table not found, treating as empty", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		slog.Warn("Input table is empty", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make([]int, len(wanted))
	for i, name := range wanted {
		index[i] = indexOf(header, name)
		if index[i] < 0 {
			slog.Warn("Column missing from table", "path", path, "column", name)
		}
	}

	line := 0
	cells := make([]cell.Value, len(wanted))
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		line++

		for i, col := range index {
			if col < 0 || col >= len(row) {
				cells[i] = cell.Null
				continue
			}
			cells[i] = cell.Parse(row[col], l.opts.NullTokens)
		}
		fn(line, cells)
	}

	if line == 0 {
		slog.Warn("Input table has no rows", "path", path)
	}
	return nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// loadGroundTruthParquet reads a ground-truth export written as Parquet
func (l *Loader) loadGroundTruthParquet(path string) ([]GroundTruthRecord, error) {
	slog.Debug("Opening Parquet file", "path", path)

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Input table not found, treating as empty", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() == 0 {
		slog.Warn("Input table is empty", "path", path)
		return nil, nil
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[groundTruthRow](pf)
	defer reader.Close()

	var records []GroundTruthRecord
	rows := make([]groundTruthRow, 128)
	for {
		n, err := reader.Read(rows)
		for i := 0; i < n; i++ {
			records = append(records, rows[i].record(len(records)+1))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Finished reading Parquet file", "total_records", len(records))
	return records, nil
}
