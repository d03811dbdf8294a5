package csvstream

import (
	"fmt"
	"io"
	"strings"
)

// Writer emits CSV row by row so large exports never require buffering the
// whole result. Every cell is quoted, with internal quotes doubled, which
// standard CSV readers parse back to the original value.
type Writer struct {
	out     io.Writer
	columns []string
}

func New(out io.Writer, columns []string) *Writer {
	return &Writer{
		out:     out,
		columns: columns,
	}
}

func (w *Writer) WriteHeader() error {
	return w.writeLine(w.columns)
}

// WriteRow projects the row onto the configured columns, in order. Columns
// missing from the row render as empty cells.
func (w *Writer) WriteRow(row map[string]string) error {
	cells := make([]string, len(w.columns))
	for i, column := range w.columns {
		cells[i] = row[column]
	}
	return w.writeLine(cells)
}

func (w *Writer) writeLine(cells []string) error {
	quoted := make([]string, len(cells))
	for i, cell := range cells {
		quoted[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	if _, err := io.WriteString(w.out, strings.Join(quoted, ",")+"\n"); err != nil {
		return fmt.Errorf("error writing csv line: %w", err)
	}
	if flusher, ok := w.out.(interface{ Flush() }); ok {
		flusher.Flush()
	}
	return nil
}
