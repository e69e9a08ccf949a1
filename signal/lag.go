package signal

import (
	"context"
	"fmt"

	"github.com/tjs392/otters/batch"
	"github.com/tjs392/otters/pipeline"
	"golang.org/x/xerrors"
)

// Lag outputs, at row i, the value of Column at row i-Periods. The first
// Periods rows of the stream are null.
type Lag struct {
	Column  string
	Periods int

	r *ring
}

// NewLag returns a ready-to-use kernel. periods must be >= 1.
func NewLag(column string, periods int) *Lag {
	if periods < 1 {
		panic("signal: lag periods must be >= 1")
	}
	return &Lag{Column: column, Periods: periods, r: newRing(periods)}
}

// RequiredColumns implements pipeline.ColumnStage.
func (k *Lag) RequiredColumns() []string { return []string{k.Column} }

// OutputColumn implements pipeline.ColumnStage.
func (k *Lag) OutputColumn() string { return fmt.Sprintf("%s_lag_%d", k.Column, k.Periods) }

// Process implements pipeline.Processor.
func (k *Lag) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	b := p.(*batch.Batch)
	col := b.Column(k.Column)
	if col == nil {
		return nil, xerrors.Errorf("lag: column %q not found", k.Column)
	}
	if !col.IsNumeric() {
		return nil, batch.ErrUnsupportedType
	}

	n := b.NumRows()
	out := make([]float64, n)
	valid := make([]bool, n)

	for i := 0; i < n; i++ {
		v, ok := col.Float64(i)
		evictedVal, evictedOK, evicted := k.r.push(v, ok)
		if evicted {
			out[i] = evictedVal
			valid[i] = evictedOK
		}
	}

	outCol := batch.NewFloatColumn(batch.Float64, out, valid)
	result, err := b.WithColumn(k.OutputColumn(), outCol)
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ pipeline.ColumnStage = (*Lag)(nil)
