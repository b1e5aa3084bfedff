package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteEntered writes records as one comma separated entered table with
// the given header. Absent cells are written empty.
func WriteEntered(w io.Writer, cols EnteredColumns, records []EnteredRecord) error {
	out := csv.NewWriter(w)
	if err := out.Write(cols.Names()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(cols.Names()))
	for _, r := range records {
		for i, v := range r.Values() {
			row[i] = v.String()
		}
		if err := out.Write(row); err != nil {
			return fmt.Errorf("failed to write %s line %d: %w", r.Source, r.Line, err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("failed to flush entered table: %w", err)
	}
	return nil
}
