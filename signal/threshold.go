package signal

import (
	"context"

	"github.com/tjs392/otters/batch"
	"github.com/tjs392/otters/pipeline"
	"golang.org/x/xerrors"
)

// Threshold appends a boolean column, named FlagAs, that is true iff
// Column's value at that row strictly exceeds Above. It carries no window
// state: each row is evaluated independently.
type Threshold struct {
	Column string
	Above  float64
	FlagAs string
}

// NewThreshold returns a ready-to-use kernel.
func NewThreshold(column string, above float64, flagAs string) *Threshold {
	return &Threshold{Column: column, Above: above, FlagAs: flagAs}
}

// RequiredColumns implements pipeline.ColumnStage.
func (k *Threshold) RequiredColumns() []string { return []string{k.Column} }

// OutputColumn implements pipeline.ColumnStage.
func (k *Threshold) OutputColumn() string { return k.FlagAs }

// Process implements pipeline.Processor.
func (k *Threshold) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	b := p.(*batch.Batch)
	col := b.Column(k.Column)
	if col == nil {
		return nil, xerrors.Errorf("threshold: column %q not found", k.Column)
	}
	if !col.IsNumeric() {
		return nil, batch.ErrUnsupportedType
	}

	n := b.NumRows()
	out := make([]bool, n)
	valid := make([]bool, n)

	for i := 0; i < n; i++ {
		v, ok := col.Float64(i)
		if !ok {
			continue
		}
		out[i] = v > k.Above
		valid[i] = true
	}

	outCol := batch.NewBoolColumn(out, valid)
	result, err := b.WithColumn(k.OutputColumn(), outCol)
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ pipeline.ColumnStage = (*Threshold)(nil)
