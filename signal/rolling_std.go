package signal

import (
	"context"
	"fmt"

	"github.com/tjs392/otters/batch"
	"github.com/tjs392/otters/pipeline"
	"golang.org/x/xerrors"
)

// RollingStd computes the sample standard deviation of the most recent
// `window` values of Column, up to and including the current row. A window
// of 1 or less can never produce a sample variance and always outputs
// null.
type RollingStd struct {
	Column string
	Window int

	stats *windowStats
}

// NewRollingStd returns a ready-to-use kernel. window must be >= 1.
func NewRollingStd(column string, window int) *RollingStd {
	if window < 1 {
		panic("signal: rolling_std window must be >= 1")
	}
	return &RollingStd{Column: column, Window: window, stats: newWindowStats(window)}
}

// RequiredColumns implements pipeline.ColumnStage.
func (k *RollingStd) RequiredColumns() []string { return []string{k.Column} }

// OutputColumn implements pipeline.ColumnStage.
func (k *RollingStd) OutputColumn() string {
	return fmt.Sprintf("%s_rolling_std_%d", k.Column, k.Window)
}

// Process implements pipeline.Processor.
func (k *RollingStd) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	b := p.(*batch.Batch)
	col := b.Column(k.Column)
	if col == nil {
		return nil, xerrors.Errorf("rolling_std: column %q not found", k.Column)
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
		if k.Window > 1 && k.stats.ready() {
			out[i] = k.stats.sampleStd()
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

var _ pipeline.ColumnStage = (*RollingStd)(nil)
