package row

import (
	"context"
	"sort"

	"github.com/tjs392/otters/batch"
	"github.com/tjs392/otters/pipeline"
	"golang.org/x/xerrors"
)

// RowFunc transforms a single row. Returning ok=false drops the row from
// the stage's output entirely.
type RowFunc func(Row) (out Row, ok bool)

/*CustomStage applies a user-supplied RowFunc to every row of a batch,
unbatching, transforming, and rebatching internally. Its output schema is
inferred from the first row it ever emits and frozen from then on: a later
row whose key set differs is a fatal SchemaDrift, since nothing downstream
can widen a frozen Batch schema mid-stream.*/
type CustomStage struct {
	fn     RowFunc
	keys   []string
	schema *batch.Schema
}

// NewCustomStage returns a ready-to-use stage wrapping fn.
func NewCustomStage(fn RowFunc) *CustomStage { return &CustomStage{fn: fn} }

// Process implements pipeline.Processor. A batch from which fn dropped
// every row, or whose rows haven't yet established an output schema,
// yields a nil payload: FIFO treats that as "discard this batch".
func (s *CustomStage) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	in := p.(*batch.Batch)
	inFields := in.Schema().Fields()

	var rows []Row
	for i := 0; i < in.NumRows(); i++ {
		r := make(Row, len(inFields))
		for _, f := range inFields {
			r[f.Name] = in.Column(f.Name).Value(i)
		}
		out, ok := s.fn(r)
		if !ok {
			continue
		}
		if err := s.observe(out); err != nil {
			return nil, err
		}
		rows = append(rows, out)
	}

	if s.schema == nil || len(rows) == 0 {
		return nil, nil
	}

	builders := make(map[string]columnBuilder, len(s.keys))
	for _, f := range s.schema.Fields() {
		builders[f.Name] = newColumnBuilder(f)
	}
	for _, r := range rows {
		for _, k := range s.keys {
			if err := builders[k].append(r[k]); err != nil {
				return nil, &SchemaDrift{Column: k, Reason: err.Error()}
			}
		}
	}

	columns := make([]*batch.Column, len(s.keys))
	for i, k := range s.keys {
		columns[i] = builders[k].build()
	}
	out, err := batch.New(s.schema, columns...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// observe freezes the output schema on the first emitted row and validates
// every subsequent row against it.
func (s *CustomStage) observe(r Row) error {
	if s.schema == nil {
		keys := make([]string, 0, len(r))
		for k := range r {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fields := make([]batch.Field, len(keys))
		for i, k := range keys {
			typ, err := inferType(r[k])
			if err != nil {
				return &SchemaDrift{Column: k, Reason: err.Error()}
			}
			fields[i] = batch.Field{Name: k, Type: typ}
		}
		s.keys = keys
		s.schema = batch.NewSchema(fields...)
		return nil
	}

	if len(r) != len(s.keys) {
		return &SchemaDrift{Reason: "row key count does not match the schema established by the first emitted row"}
	}
	for _, k := range s.keys {
		if _, ok := r[k]; !ok {
			return &SchemaDrift{Column: k, Reason: "missing from row after schema was established"}
		}
	}
	return nil
}

func inferType(v interface{}) (batch.LogicalType, error) {
	switch v.(type) {
	case bool:
		return batch.Bool, nil
	case string:
		return batch.String, nil
	case float32, float64:
		return batch.Float64, nil
	case int, int8, int16, int32, int64:
		return batch.Int64, nil
	case uint, uint8, uint16, uint32, uint64:
		return batch.Uint64, nil
	default:
		return 0, xerrors.Errorf("row: cannot infer column type from %T", v)
	}
}

var _ pipeline.Processor = (*CustomStage)(nil)
