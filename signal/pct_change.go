package signal

import (
	"context"
	"fmt"

	"github.com/tjs392/otters/batch"
	"github.com/tjs392/otters/pipeline"
	"golang.org/x/xerrors"
)

// PctChange computes (x_i - x_{i-1}) / x_{i-1}. Row 0 of the stream is
// null, as is any row whose denominator is zero or whose input (at i or
// i-1) is null.
type PctChange struct {
	Column string

	hasPrev bool
	prev    float64
	prevOK  bool
}

// NewPctChange returns a ready-to-use kernel.
func NewPctChange(column string) *PctChange {
	return &PctChange{Column: column}
}

// RequiredColumns implements pipeline.ColumnStage.
func (k *PctChange) RequiredColumns() []string { return []string{k.Column} }

// OutputColumn implements pipeline.ColumnStage.
func (k *PctChange) OutputColumn() string { return fmt.Sprintf("%s_pct_change", k.Column) }

// Process implements pipeline.Processor.
func (k *PctChange) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	b := p.(*batch.Batch)
	col := b.Column(k.Column)
	if col == nil {
		return nil, xerrors.Errorf("pct_change: column %q not found", k.Column)
	}
	if !col.IsNumeric() {
		return nil, batch.ErrUnsupportedType
	}

	n := b.NumRows()
	out := make([]float64, n)
	valid := make([]bool, n)

	for i := 0; i < n; i++ {
		v, ok := col.Float64(i)

		if k.hasPrev && k.prevOK && ok && k.prev != 0 {
			out[i] = (v - k.prev) / k.prev
			valid[i] = true
		}

		k.prev, k.prevOK, k.hasPrev = v, ok, true
	}

	outCol := batch.NewFloatColumn(batch.Float64, out, valid)
	result, err := b.WithColumn(k.OutputColumn(), outCol)
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ pipeline.ColumnStage = (*PctChange)(nil)
