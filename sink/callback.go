/*
Package sink collects reference row.RowConsumer implementations: a plain
function adapter, a CSV writer, and (in the searchsink subpackage) a bleve
full-text index. None of these are required by the core pipeline; they
exist so a caller can terminate a pipeline without writing a consumer
from scratch.
*/
package sink

import (
	"context"

	"github.com/tjs392/otters/row"
)

// RowCallback adapts a plain function to row.RowConsumer.
type RowCallback func(ctx context.Context, r row.Row) error

// ConsumeRow implements row.RowConsumer.
func (f RowCallback) ConsumeRow(ctx context.Context, r row.Row) error { return f(ctx, r) }

var _ row.RowConsumer = RowCallback(nil)

// Collector is a RowConsumer that appends every row it receives, for tests
// and small interactive scripts. It is not safe for concurrent use; the
// pipeline only ever has one sink worker, so none is needed.
type Collector struct {
	Rows []row.Row
}

// ConsumeRow implements row.RowConsumer.
func (c *Collector) ConsumeRow(_ context.Context, r row.Row) error {
	c.Rows = append(c.Rows, r)
	return nil
}

var _ row.RowConsumer = (*Collector)(nil)
