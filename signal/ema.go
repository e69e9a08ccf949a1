package signal

import (
	"context"
	"fmt"

	"github.com/tjs392/otters/batch"
	"github.com/tjs392/otters/pipeline"
	"golang.org/x/xerrors"
)

// EMA computes an exponentially weighted mean of Column with smoothing
// factor alpha = 2 / (span + 1). The first value observed on the stream
// seeds the running mean; a null input leaves the running mean unchanged
// and emits null at that position.
type EMA struct {
	Column string
	Span   int

	alpha       float64
	initialized bool
	prev        float64
}

// NewEMA returns a ready-to-use kernel. span must be >= 1.
func NewEMA(column string, span int) *EMA {
	if span < 1 {
		panic("signal: ema span must be >= 1")
	}
	return &EMA{Column: column, Span: span, alpha: 2 / (float64(span) + 1)}
}

// RequiredColumns implements pipeline.ColumnStage.
func (k *EMA) RequiredColumns() []string { return []string{k.Column} }

// OutputColumn implements pipeline.ColumnStage.
func (k *EMA) OutputColumn() string { return fmt.Sprintf("%s_ema_%d", k.Column, k.Span) }

// Process implements pipeline.Processor.
func (k *EMA) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	b := p.(*batch.Batch)
	col := b.Column(k.Column)
	if col == nil {
		return nil, xerrors.Errorf("ema: column %q not found", k.Column)
	}
	if !col.IsNumeric() {
		return nil, batch.ErrUnsupportedType
	}

	n := b.NumRows()
	out := make([]float64, n)
	valid := make([]bool, n)

	for i := 0; i < n; i++ {
		v, ok := col.Float64(i)
		if !ok {
			continue // ema state does not advance; output stays null
		}
		if !k.initialized {
			k.prev = v
			k.initialized = true
		} else {
			k.prev = k.alpha*v + (1-k.alpha)*k.prev
		}
		out[i] = k.prev
		valid[i] = true
	}

	outCol := batch.NewFloatColumn(batch.Float64, out, valid)
	result, err := b.WithColumn(k.OutputColumn(), outCol)
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ pipeline.ColumnStage = (*EMA)(nil)
