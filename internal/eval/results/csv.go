package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/evaluator"
)

// WriteCSV writes the evaluation table. With no rows only the header is
// written.
func WriteCSV(w io.Writer, rows []evaluator.Row) error {
	out := csv.NewWriter(w)
	if err := out.Write(Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range rows {
		if err := out.Write(record(&rows[i])); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("failed to flush evaluation table: %w", err)
	}
	return nil
}

// SaveCSV writes the evaluation table to path.
func SaveCSV(path string, rows []evaluator.Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, rows); err != nil {
		return err
	}
	slog.Debug("Wrote evaluation table", "path", path, "rows", len(rows))
	return file.Close()
}

// ReadCSV reads an evaluation table written by WriteCSV or by any tool
// that uses the same column names. Match methods are not part of the
// table and read back empty.
func ReadCSV(path string) ([]evaluator.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open evaluation table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	var rows []evaluator.Row
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}
		row, err := fromRecord(index, rec)
		if err != nil {
			return nil, fmt.Errorf("failed to parse line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
