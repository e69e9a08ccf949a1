/*
Package row adapts row-oriented sources and sinks onto the columnar core.
A Row is the only place in this module dynamically typed data is allowed to
exist; Batcher is the single point that commits a stream of Rows to a
declared Schema, after which everything is columnar and statically typed.
*/
package row

import "golang.org/x/xerrors"

// Row is a mapping from column name to scalar value. A missing key or an
// explicit nil value both mean null. Keys not present in the Batcher's
// schema are a SchemaDrift error, not silently ignored.
type Row map[string]interface{}

// SchemaDrift reports a row whose key set is incompatible with the frozen
// schema: an unknown key, or (for a CustomStage) a second row with a
// different key set than the one that froze the schema.
type SchemaDrift struct {
	Column string
	Reason string
}

func (e *SchemaDrift) Error() string {
	return xerrors.Errorf("row: schema drift at column %q: %s", e.Column, e.Reason).Error()
}
