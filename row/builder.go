package row

import (
	"github.com/tjs392/otters/batch"
	"golang.org/x/xerrors"
)

// columnBuilder accumulates scalar values (or nulls) for one schema column
// and, once the batch is full, produces the typed batch.Column. Each
// logical type gets its own builder rather than a single builder that
// type-switches on every append: see newColumnBuilder.
type columnBuilder interface {
	append(v interface{}) error
	build() *batch.Column
}

// newColumnBuilder is the dispatch table from logical type to the builder
// that knows how to accumulate it. Row sources in the host system arrive as
// dynamically typed maps; this is the single point that commits each field
// to a concrete representation.
func newColumnBuilder(f batch.Field) columnBuilder {
	switch f.Type {
	case batch.Bool:
		return &boolBuilder{}
	case batch.Int8, batch.Int16, batch.Int32, batch.Int64:
		return &intBuilder{typ: f.Type}
	case batch.Uint8, batch.Uint16, batch.Uint32, batch.Uint64:
		return &uintBuilder{typ: f.Type}
	case batch.Float32, batch.Float64:
		return &floatBuilder{typ: f.Type}
	case batch.String:
		return &stringBuilder{}
	case batch.Timestamp:
		return &timestampBuilder{unit: f.Unit}
	default:
		return nil
	}
}

type boolBuilder struct {
	vals  []bool
	valid []bool
}

func (b *boolBuilder) append(v interface{}) error {
	if v == nil {
		b.vals, b.valid = append(b.vals, false), append(b.valid, false)
		return nil
	}
	bv, ok := v.(bool)
	if !ok {
		return xerrors.Errorf("row: expected bool, got %T", v)
	}
	b.vals, b.valid = append(b.vals, bv), append(b.valid, true)
	return nil
}

func (b *boolBuilder) build() *batch.Column { return batch.NewBoolColumn(b.vals, b.valid) }

type intBuilder struct {
	typ   batch.LogicalType
	vals  []int64
	valid []bool
}

func (b *intBuilder) append(v interface{}) error {
	if v == nil {
		b.vals, b.valid = append(b.vals, 0), append(b.valid, false)
		return nil
	}
	iv, err := toInt64(v)
	if err != nil {
		return err
	}
	b.vals, b.valid = append(b.vals, iv), append(b.valid, true)
	return nil
}

func (b *intBuilder) build() *batch.Column { return batch.NewIntColumn(b.typ, b.vals, b.valid) }

type uintBuilder struct {
	typ   batch.LogicalType
	vals  []uint64
	valid []bool
}

func (b *uintBuilder) append(v interface{}) error {
	if v == nil {
		b.vals, b.valid = append(b.vals, 0), append(b.valid, false)
		return nil
	}
	uv, err := toUint64(v)
	if err != nil {
		return err
	}
	b.vals, b.valid = append(b.vals, uv), append(b.valid, true)
	return nil
}

func (b *uintBuilder) build() *batch.Column { return batch.NewUintColumn(b.typ, b.vals, b.valid) }

type floatBuilder struct {
	typ   batch.LogicalType
	vals  []float64
	valid []bool
}

func (b *floatBuilder) append(v interface{}) error {
	if v == nil {
		b.vals, b.valid = append(b.vals, 0), append(b.valid, false)
		return nil
	}
	fv, err := toFloat64(v)
	if err != nil {
		return err
	}
	b.vals, b.valid = append(b.vals, fv), append(b.valid, true)
	return nil
}

func (b *floatBuilder) build() *batch.Column {
	return batch.NewFloatColumn(b.typ, b.vals, b.valid)
}

type stringBuilder struct {
	vals  []string
	valid []bool
}

func (b *stringBuilder) append(v interface{}) error {
	if v == nil {
		b.vals, b.valid = append(b.vals, ""), append(b.valid, false)
		return nil
	}
	sv, ok := v.(string)
	if !ok {
		return xerrors.Errorf("row: expected string, got %T", v)
	}
	b.vals, b.valid = append(b.vals, sv), append(b.valid, true)
	return nil
}

func (b *stringBuilder) build() *batch.Column { return batch.NewStringColumn(b.vals, b.valid) }

type timestampBuilder struct {
	unit  batch.TimeUnit
	vals  []int64
	valid []bool
}

func (b *timestampBuilder) append(v interface{}) error {
	if v == nil {
		b.vals, b.valid = append(b.vals, 0), append(b.valid, false)
		return nil
	}
	iv, err := toInt64(v)
	if err != nil {
		return err
	}
	b.vals, b.valid = append(b.vals, iv), append(b.valid, true)
	return nil
}

func (b *timestampBuilder) build() *batch.Column {
	return batch.NewTimestampColumn(b.vals, b.unit, b.valid)
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, xerrors.Errorf("row: expected integer, got %T", v)
	}
}

func toUint64(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	default:
		return 0, xerrors.Errorf("row: expected unsigned integer, got %T", v)
	}
}

func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, xerrors.Errorf("row: expected number, got %T", v)
	}
}
