package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tjs392/otters/row"
	"golang.org/x/xerrors"
)

/*CSV is a row.RowConsumer writing rows as CSV, one row per Write call, in
Columns order. The header is written on the first ConsumeRow call. A
missing or null field is written as an empty cell; values are rendered with
fmt.Sprint, which is adequate for the scalar types batch.Column produces.*/
type CSV struct {
	Columns []string

	w           *csv.Writer
	wroteHeader bool
}

// NewCSV returns a CSV sink writing to w.
func NewCSV(w io.Writer, columns []string) *CSV {
	return &CSV{Columns: columns, w: csv.NewWriter(w)}
}

// ConsumeRow implements row.RowConsumer.
func (s *CSV) ConsumeRow(_ context.Context, r row.Row) error {
	if !s.wroteHeader {
		if err := s.w.Write(s.Columns); err != nil {
			return xerrors.Errorf("sink: writing csv header: %w", err)
		}
		s.wroteHeader = true
	}

	record := make([]string, len(s.Columns))
	for i, name := range s.Columns {
		if v, ok := r[name]; ok && v != nil {
			record[i] = fmt.Sprint(v)
		}
	}
	if err := s.w.Write(record); err != nil {
		return xerrors.Errorf("sink: writing csv row: %w", err)
	}
	s.w.Flush()
	return s.w.Error()
}

var _ row.RowConsumer = (*CSV)(nil)
