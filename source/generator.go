/*
Package source supplies reference row.RowProducer implementations: a
synthetic tick generator and a CSV reader. Production file-format and
network sources are left to separate collaborator packages; these exist for
tests.
*/
package source

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/tjs392/otters/row"
)

// TickFunc produces the row at stream position i (zero-based).
type TickFunc func(i int) row.Row

/*Generator is a synthetic row.RowProducer driven by a juju/clock.Clock so
its pacing is deterministic under test, standing in for websocket and other
live-feed sources implemented elsewhere. A zero Interval lets the source
outrun a slow downstream stage, which is useful for exercising channel
backpressure against an unbounded source and a slow sink.*/
type Generator struct {
	Clock    clock.Clock
	Interval time.Duration
	Limit    int // 0 means unbounded
	Tick     TickFunc

	i   int
	cur row.Row
	err error
}

// Next implements row.RowProducer.
func (g *Generator) Next(ctx context.Context) bool {
	if g.err != nil {
		return false
	}
	if g.Limit > 0 && g.i >= g.Limit {
		return false
	}
	if g.Interval > 0 {
		select {
		case <-g.Clock.After(g.Interval):
		case <-ctx.Done():
			return false
		}
	}
	g.cur = g.Tick(g.i)
	g.i++
	return true
}

// Row implements row.RowProducer.
func (g *Generator) Row() row.Row { return g.cur }

// Error implements row.RowProducer.
func (g *Generator) Error() error { return g.err }

var _ row.RowProducer = (*Generator)(nil)
