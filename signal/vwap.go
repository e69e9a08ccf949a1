package signal

import (
	"context"
	"fmt"

	"github.com/tjs392/otters/batch"
	"github.com/tjs392/otters/pipeline"
	"golang.org/x/xerrors"
)

// VWAP computes the volume-weighted average price over the last `window`
// rows: Sum(price*volume) / Sum(volume). A null in either input marks that
// row's contribution as absent from both running sums.
type VWAP struct {
	PriceColumn  string
	VolumeColumn string
	Window       int

	pv *windowStats
	v  *windowStats
}

// NewVWAP returns a ready-to-use kernel. window must be >= 1.
func NewVWAP(priceColumn, volumeColumn string, window int) *VWAP {
	if window < 1 {
		panic("signal: vwap window must be >= 1")
	}
	return &VWAP{
		PriceColumn:  priceColumn,
		VolumeColumn: volumeColumn,
		Window:       window,
		pv:           newWindowStats(window),
		v:            newWindowStats(window),
	}
}

// RequiredColumns implements pipeline.ColumnStage.
func (k *VWAP) RequiredColumns() []string { return []string{k.PriceColumn, k.VolumeColumn} }

// OutputColumn implements pipeline.ColumnStage.
func (k *VWAP) OutputColumn() string { return fmt.Sprintf("vwap_%d", k.Window) }

// Process implements pipeline.Processor.
func (k *VWAP) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	b := p.(*batch.Batch)
	priceCol := b.Column(k.PriceColumn)
	volCol := b.Column(k.VolumeColumn)
	if priceCol == nil {
		return nil, xerrors.Errorf("vwap: column %q not found", k.PriceColumn)
	}
	if volCol == nil {
		return nil, xerrors.Errorf("vwap: column %q not found", k.VolumeColumn)
	}
	if !priceCol.IsNumeric() || !volCol.IsNumeric() {
		return nil, batch.ErrUnsupportedType
	}

	n := b.NumRows()
	out := make([]float64, n)
	valid := make([]bool, n)

	for i := 0; i < n; i++ {
		price, priceOK := priceCol.Float64(i)
		vol, volOK := volCol.Float64(i)
		ok := priceOK && volOK

		k.pv.push(price*vol, ok)
		k.v.push(vol, ok)

		if !k.pv.ready() || k.v.sum == 0 {
			continue
		}
		out[i] = k.pv.sum / k.v.sum
		valid[i] = true
	}

	outCol := batch.NewFloatColumn(batch.Float64, out, valid)
	result, err := b.WithColumn(k.OutputColumn(), outCol)
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ pipeline.ColumnStage = (*VWAP)(nil)
