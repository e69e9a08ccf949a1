/*
Package batch implements the columnar record batch that flows through an
otters pipeline: a fixed Schema plus one Column per field, all sharing a
single row count. Everything downstream of the source deals exclusively in
*Batch; row.Row only exists at the edges, where a row-oriented source or
sink is adapted onto the columnar core.
*/
package batch

import (
	"github.com/tjs392/otters/pipeline"
	"golang.org/x/xerrors"
)

// ErrRowCountMismatch is returned by New when the supplied columns disagree
// on their length.
var ErrRowCountMismatch = xerrors.New("batch: columns have mismatched row counts")

// Batch is a named collection of equal-length Columns plus the Schema that
// declares their names, types, and order. A Batch is sent across pipeline
// Channels by reference: the sender must treat it as moved and never touch
// it again once Send returns.
type Batch struct {
	schema  *Schema
	columns map[string]*Column
	rows    int

	processed bool
}

// New builds a Batch from schema and one Column per schema.Fields() entry,
// in the same order. It returns ErrRowCountMismatch if any two columns
// disagree on length.
func New(schema *Schema, columns ...*Column) (*Batch, error) {
	fields := schema.Fields()
	if len(columns) != len(fields) {
		return nil, xerrors.Errorf("batch: schema declares %d columns, got %d", len(fields), len(columns))
	}

	rows := -1
	named := make(map[string]*Column, len(columns))
	for i, col := range columns {
		if rows == -1 {
			rows = col.Len()
		} else if col.Len() != rows {
			return nil, ErrRowCountMismatch
		}
		named[fields[i].Name] = col
	}
	if rows == -1 {
		rows = 0
	}

	return &Batch{schema: schema, columns: named, rows: rows}, nil
}

// Schema returns the batch's schema.
func (b *Batch) Schema() *Schema { return b.schema }

// NumRows returns the batch's row count. Zero is a legal, propagating
// heartbeat batch.
func (b *Batch) NumRows() int { return b.rows }

// Column returns the named column, or nil if the schema declares no such
// field.
func (b *Batch) Column(name string) *Column { return b.columns[name] }

// Has reports whether column name exists in this batch.
func (b *Batch) Has(name string) bool {
	_, ok := b.columns[name]
	return ok
}

/*WithColumn returns a new Batch with an additional column appended to the
schema. It is the operation every signal kernel uses to publish its output:
kernels never mutate the batch they were handed, since the batch may still
be read by a Broadcast sibling. The new column's length must equal the
batch's row count.*/
func (b *Batch) WithColumn(name string, col *Column) (*Batch, error) {
	if col.Len() != b.rows {
		return nil, xerrors.Errorf("batch: column %q has %d rows, batch has %d", name, col.Len(), b.rows)
	}
	next, err := b.schema.Append(Field{Name: name, Type: col.Type(), Unit: col.Unit()})
	if err != nil {
		return nil, err
	}

	columns := make(map[string]*Column, len(b.columns)+1)
	for k, v := range b.columns {
		columns[k] = v
	}
	columns[name] = col

	return &Batch{schema: next, columns: columns, rows: b.rows}, nil
}

// Clone implements pipeline.Payload. Column data is immutable once built, so
// Clone only needs to copy the lookup structure around it: a Broadcast
// stage can safely hand the clone to a sibling processor that appends its
// own column without the two clones stepping on each other.
func (b *Batch) Clone() pipeline.Payload {
	columns := make(map[string]*Column, len(b.columns))
	for k, v := range b.columns {
		columns[k] = v
	}
	return &Batch{schema: b.schema, columns: columns, rows: b.rows}
}

// MarkAsProcessed implements pipeline.Payload.
func (b *Batch) MarkAsProcessed() { b.processed = true }

var _ pipeline.Payload = (*Batch)(nil)
