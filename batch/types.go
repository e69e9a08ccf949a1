// Package batch implements the columnar record batch that flows through an
// otters pipeline: named, typed columns sharing a row count, plus the schema
// that governs which columns a batch may carry.
package batch

// LogicalType identifies the scalar type stored in a Column.
type LogicalType uint8

const (
	Bool LogicalType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	String
	Timestamp
)

// String returns the name used for this type in error messages.
func (t LogicalType) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case String:
		return "string"
	case Timestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// numeric reports whether values of this type can be widened to float64 for
// use by the signal kernels.
func (t LogicalType) numeric() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float32, Float64:
		return true
	default:
		return false
	}
}

// TimeUnit is the resolution of a Timestamp column. It is meaningless for
// any other LogicalType.
type TimeUnit uint8

const (
	Second TimeUnit = iota
	Millisecond
	Microsecond
	Nanosecond
)
