package source

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/tjs392/otters/batch"
	"github.com/tjs392/otters/row"
	"golang.org/x/xerrors"
)

/*CSV is a row.RowProducer reading rows from a CSV file whose first line is
a header naming each column. schema declares the logical type each named
column should be parsed into; a header column absent from schema is passed
through as a raw string. An empty field is read as null.*/
type CSV struct {
	r      *csv.Reader
	schema *batch.Schema
	header []string

	cur  row.Row
	err  error
	done bool
}

// NewCSV reads the header line from r and returns a ready-to-use CSV
// source.
func NewCSV(r io.Reader, schema *batch.Schema) (*CSV, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, xerrors.Errorf("source: reading csv header: %w", err)
	}
	return &CSV{r: cr, schema: schema, header: header}, nil
}

// Next implements row.RowProducer.
func (s *CSV) Next(ctx context.Context) bool {
	if s.err != nil || s.done {
		return false
	}

	record, err := s.r.Read()
	if err == io.EOF {
		s.done = true
		return false
	}
	if err != nil {
		s.err = xerrors.Errorf("source: reading csv row: %w", err)
		return false
	}

	r := make(row.Row, len(s.header))
	for i, name := range s.header {
		if i >= len(record) {
			continue
		}
		raw := record[i]
		if raw == "" {
			r[name] = nil
			continue
		}
		v, err := s.parse(name, raw)
		if err != nil {
			s.err = err
			return false
		}
		r[name] = v
	}
	s.cur = r
	return true
}

func (s *CSV) parse(name, raw string) (interface{}, error) {
	f, ok := s.schema.Field(name)
	if !ok {
		return raw, nil
	}
	switch f.Type {
	case batch.Float32, batch.Float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, xerrors.Errorf("source: column %q: %w", name, err)
		}
		return v, nil
	case batch.Int8, batch.Int16, batch.Int32, batch.Int64, batch.Timestamp:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, xerrors.Errorf("source: column %q: %w", name, err)
		}
		return v, nil
	case batch.Uint8, batch.Uint16, batch.Uint32, batch.Uint64:
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, xerrors.Errorf("source: column %q: %w", name, err)
		}
		return v, nil
	case batch.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, xerrors.Errorf("source: column %q: %w", name, err)
		}
		return v, nil
	default:
		return raw, nil
	}
}

// Row implements row.RowProducer.
func (s *CSV) Row() row.Row { return s.cur }

// Error implements row.RowProducer.
func (s *CSV) Error() error { return s.err }

var _ row.RowProducer = (*CSV)(nil)
