package signal

import (
	"context"
	"fmt"

	"github.com/tjs392/otters/batch"
	"github.com/tjs392/otters/pipeline"
	"golang.org/x/xerrors"
)

// ZScore computes (x_i - mean_i) / std_i, where mean and std are the rolling
// mean and sample standard deviation over the last `lookback` values
// including row i.
type ZScore struct {
	Column   string
	Lookback int

	stats *windowStats
}

// NewZScore returns a ready-to-use kernel. lookback must be >= 2, since a
// sample standard deviation needs at least two observations.
func NewZScore(column string, lookback int) *ZScore {
	if lookback < 2 {
		panic("signal: zscore lookback must be >= 2")
	}
	return &ZScore{Column: column, Lookback: lookback, stats: newWindowStats(lookback)}
}

// RequiredColumns implements pipeline.ColumnStage.
func (k *ZScore) RequiredColumns() []string { return []string{k.Column} }

// OutputColumn implements pipeline.ColumnStage.
func (k *ZScore) OutputColumn() string {
	return fmt.Sprintf("%s_zscore_%d", k.Column, k.Lookback)
}

// Process implements pipeline.Processor.
func (k *ZScore) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	b := p.(*batch.Batch)
	col := b.Column(k.Column)
	if col == nil {
		return nil, xerrors.Errorf("zscore: column %q not found", k.Column)
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
		if !k.stats.ready() {
			continue
		}
		std := k.stats.sampleStd()
		if std == 0 {
			continue // emit null rather than divide by zero
		}
		out[i] = (v - k.stats.mean()) / std
		valid[i] = true
	}

	outCol := batch.NewFloatColumn(batch.Float64, out, valid)
	result, err := b.WithColumn(k.OutputColumn(), outCol)
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ pipeline.ColumnStage = (*ZScore)(nil)
