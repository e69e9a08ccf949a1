package signal

import (
	"context"
	"fmt"

	"github.com/tjs392/otters/batch"
	"github.com/tjs392/otters/pipeline"
	"golang.org/x/xerrors"
)

// RollingMean computes the arithmetic mean of the most recent `window`
// values of Column, up to and including the current row, over the whole
// stream rather than per batch.
type RollingMean struct {
	Column string
	Window int

	stats *windowStats
}

// NewRollingMean returns a ready-to-use kernel. window must be >= 1.
func NewRollingMean(column string, window int) *RollingMean {
	if window < 1 {
		panic("signal: rolling_mean window must be >= 1")
	}
	return &RollingMean{Column: column, Window: window, stats: newWindowStats(window)}
}

// RequiredColumns implements pipeline.ColumnStage.
func (k *RollingMean) RequiredColumns() []string { return []string{k.Column} }

// OutputColumn implements pipeline.ColumnStage.
func (k *RollingMean) OutputColumn() string {
	return fmt.Sprintf("%s_rolling_mean_%d", k.Column, k.Window)
}

// Process implements pipeline.Processor.
func (k *RollingMean) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	b := p.(*batch.Batch)
	col := b.Column(k.Column)
	if col == nil {
		return nil, xerrors.Errorf("rolling_mean: column %q not found", k.Column)
	}
	if !col.IsNumeric() {
		return nil, batch.ErrUnsupportedType
	}

	n := b.NumRows()
	out := make([]float64, n)
	valid := make([]bool, n)

	for i := 0; i < n; i++ {
		v, ok := col.Float64(i)
		k.stats.push(v, ok)
		if k.stats.ready() {
			out[i] = k.stats.mean()
			valid[i] = true
		}
	}

	outCol := batch.NewFloatColumn(batch.Float64, out, valid)
	result, err := b.WithColumn(k.OutputColumn(), outCol)
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ pipeline.ColumnStage = (*RollingMean)(nil)
