package batch

import (
	"golang.org/x/text/unicode/norm"
	"golang.org/x/xerrors"
)

// ErrUnsupportedType is returned when a kernel is asked to operate on a
// Column whose LogicalType it cannot widen to the type it needs.
var ErrUnsupportedType = xerrors.New("batch: unsupported column type")

// Column is a contiguous typed array with an optional per-cell validity
// mask. A nil mask means every cell is valid. len(valid), when non-nil,
// always equals len of the underlying value slice.
type Column struct {
	typ   LogicalType
	unit  TimeUnit
	valid []bool

	bools   []bool
	ints    []int64
	uints   []uint64
	floats  []float64
	strings []string
}

func newValidity(n int, valid []bool) []bool {
	if valid == nil {
		return nil
	}
	if len(valid) != n {
		panic("batch: validity mask length must match value length")
	}
	out := make([]bool, n)
	copy(out, valid)
	return out
}

// NewBoolColumn builds a boolean column from vals, with an optional validity
// mask (nil means all valid).
func NewBoolColumn(vals []bool, valid []bool) *Column {
	c := &Column{typ: Bool, valid: newValidity(len(vals), valid)}
	c.bools = append([]bool(nil), vals...)
	return c
}

// NewIntColumn builds a signed-integer column of the given width.
func NewIntColumn(typ LogicalType, vals []int64, valid []bool) *Column {
	c := &Column{typ: typ, valid: newValidity(len(vals), valid)}
	c.ints = append([]int64(nil), vals...)
	return c
}

// NewUintColumn builds an unsigned-integer column of the given width.
func NewUintColumn(typ LogicalType, vals []uint64, valid []bool) *Column {
	c := &Column{typ: typ, valid: newValidity(len(vals), valid)}
	c.uints = append([]uint64(nil), vals...)
	return c
}

// NewFloatColumn builds a floating-point column of the given width.
func NewFloatColumn(typ LogicalType, vals []float64, valid []bool) *Column {
	c := &Column{typ: typ, valid: newValidity(len(vals), valid)}
	c.floats = append([]float64(nil), vals...)
	return c
}

// NewStringColumn builds a UTF-8 string column. Every value is normalized
// to NFC so two visually identical strings that arrived via different
// source encodings compare and hash equal downstream.
func NewStringColumn(vals []string, valid []bool) *Column {
	c := &Column{typ: String, valid: newValidity(len(vals), valid)}
	c.strings = make([]string, len(vals))
	for i, v := range vals {
		c.strings[i] = norm.NFC.String(v)
	}
	return c
}

// NewTimestampColumn builds a timestamp column. Values are stored as an
// integer count of unit since the epoch.
func NewTimestampColumn(vals []int64, unit TimeUnit, valid []bool) *Column {
	c := &Column{typ: Timestamp, unit: unit, valid: newValidity(len(vals), valid)}
	c.ints = append([]int64(nil), vals...)
	return c
}

// Type returns the column's logical type.
func (c *Column) Type() LogicalType { return c.typ }

// Unit returns the column's time unit. Only meaningful when Type() ==
// Timestamp.
func (c *Column) Unit() TimeUnit { return c.unit }

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	switch c.typ {
	case Bool:
		return len(c.bools)
	case String:
		return len(c.strings)
	case Float32, Float64:
		return len(c.floats)
	case Uint8, Uint16, Uint32, Uint64:
		return len(c.uints)
	default:
		return len(c.ints)
	}
}

// IsValid reports whether row i holds a non-null value.
func (c *Column) IsValid(i int) bool {
	if c.valid == nil {
		return true
	}
	return c.valid[i]
}

// Float64 widens row i to a float64. ok is false when the row is null or the
// column's type cannot be widened to a float.
func (c *Column) Float64(i int) (val float64, ok bool) {
	if !c.IsValid(i) {
		return 0, false
	}
	switch c.typ {
	case Float32, Float64:
		return c.floats[i], true
	case Uint8, Uint16, Uint32, Uint64:
		return float64(c.uints[i]), true
	case Int8, Int16, Int32, Int64, Timestamp:
		return float64(c.ints[i]), true
	default:
		return 0, false
	}
}

// Bool returns row i as a boolean. ok is false when the row is null or the
// column is not boolean.
func (c *Column) Bool(i int) (val bool, ok bool) {
	if c.typ != Bool || !c.IsValid(i) {
		return false, false
	}
	return c.bools[i], true
}

// String returns row i as a string. ok is false when the row is null or the
// column is not a string column.
func (c *Column) String(i int) (val string, ok bool) {
	if c.typ != String || !c.IsValid(i) {
		return "", false
	}
	return c.strings[i], true
}

// Int64 returns row i as an int64. ok is false when the row is null or the
// column cannot be widened to a signed integer.
func (c *Column) Int64(i int) (val int64, ok bool) {
	if !c.IsValid(i) {
		return 0, false
	}
	switch c.typ {
	case Int8, Int16, Int32, Int64, Timestamp:
		return c.ints[i], true
	case Uint8, Uint16, Uint32, Uint64:
		return int64(c.uints[i]), true
	default:
		return 0, false
	}
}

// IsNumeric reports whether the column's type widens cleanly to float64,
// which every signal kernel in this module requires of its input columns.
func (c *Column) IsNumeric() bool { return c.typ.numeric() }

// Value returns row i boxed as interface{}, or nil if the row is null. Used
// by the row package when unbatching a Batch back into scalar Rows.
func (c *Column) Value(i int) interface{} {
	if !c.IsValid(i) {
		return nil
	}
	switch c.typ {
	case Bool:
		return c.bools[i]
	case String:
		return c.strings[i]
	case Float32:
		return float32(c.floats[i])
	case Float64:
		return c.floats[i]
	case Uint8:
		return uint8(c.uints[i])
	case Uint16:
		return uint16(c.uints[i])
	case Uint32:
		return uint32(c.uints[i])
	case Uint64:
		return c.uints[i]
	case Int8:
		return int8(c.ints[i])
	case Int16:
		return int16(c.ints[i])
	case Int32:
		return int32(c.ints[i])
	case Int64, Timestamp:
		return c.ints[i]
	default:
		return nil
	}
}
