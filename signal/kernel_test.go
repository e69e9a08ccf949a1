package signal

import (
	"context"
	"testing"

	"github.com/tjs392/otters/batch"
	gc "gopkg.in/check.v1"
)

func Test(t *testing.T) { gc.TestingT(t) }

var _ = gc.Suite(new(KernelTestSuite))

type KernelTestSuite struct{}

func floatBatch(c *gc.C, name string, vals []float64) *batch.Batch {
	schema := batch.NewSchema(batch.Field{Name: name, Type: batch.Float64})
	col := batch.NewFloatColumn(batch.Float64, vals, nil)
	b, err := batch.New(schema, col)
	c.Assert(err, gc.IsNil)
	return b
}

func outValues(c *gc.C, b *batch.Batch, name string) []interface{} {
	col := b.Column(name)
	c.Assert(col, gc.NotNil)
	out := make([]interface{}, col.Len())
	for i := 0; i < col.Len(); i++ {
		out[i] = col.Value(i)
	}
	return out
}

func (s KernelTestSuite) TestRollingMeanBatchIndependence(c *gc.C) {
	xs := []float64{1, 2, 3, 4, 5}
	expected := []interface{}{nil, nil, 2.0, 3.0, 4.0}

	splits := [][]int{{5}, {2, 3}, {1, 1, 1, 1, 1}}
	for _, split := range splits {
		k := NewRollingMean("x", 3)
		var got []interface{}
		offset := 0
		for _, size := range split {
			b := floatBatch(c, "x", xs[offset:offset+size])
			offset += size
			out, err := k.Process(context.Background(), b)
			c.Assert(err, gc.IsNil)
			got = append(got, outValues(c, out.(*batch.Batch), "x_rolling_mean_3")...)
		}
		c.Assert(got, gc.DeepEquals, expected, gc.Commentf("split %v", split))
	}
}

func (s KernelTestSuite) TestEMA(c *gc.C) {
	k := NewEMA("x", 3) // alpha = 0.5
	b := floatBatch(c, "x", []float64{10, 20, 30, 40})
	out, err := k.Process(context.Background(), b)
	c.Assert(err, gc.IsNil)
	c.Assert(outValues(c, out.(*batch.Batch), "x_ema_3"), gc.DeepEquals,
		[]interface{}{10.0, 15.0, 22.5, 31.25})
}

func (s KernelTestSuite) TestVWAP(c *gc.C) {
	schema := batch.NewSchema(
		batch.Field{Name: "p", Type: batch.Float64},
		batch.Field{Name: "v", Type: batch.Float64},
	)
	b, err := batch.New(schema,
		batch.NewFloatColumn(batch.Float64, []float64{10, 12, 14}, nil),
		batch.NewFloatColumn(batch.Float64, []float64{1, 1, 0}, nil),
	)
	c.Assert(err, gc.IsNil)

	k := NewVWAP("p", "v", 2)
	out, err := k.Process(context.Background(), b)
	c.Assert(err, gc.IsNil)
	c.Assert(outValues(c, out.(*batch.Batch), "vwap_2"), gc.DeepEquals,
		[]interface{}{nil, 11.0, 12.0})
}

func (s KernelTestSuite) TestLagThenPctChange(c *gc.C) {
	b := floatBatch(c, "x", []float64{2, 4, 3})

	lag := NewLag("x", 1)
	afterLag, err := lag.Process(context.Background(), b)
	c.Assert(err, gc.IsNil)

	pct := NewPctChange("x")
	afterPct, err := pct.Process(context.Background(), afterLag)
	c.Assert(err, gc.IsNil)

	c.Assert(outValues(c, afterPct.(*batch.Batch), "x_pct_change"), gc.DeepEquals,
		[]interface{}{nil, 1.0, -0.25})
}

func (s KernelTestSuite) TestThreshold(c *gc.C) {
	b := floatBatch(c, "x", []float64{1, 5, 10})
	k := NewThreshold("x", 4, "spike")
	out, err := k.Process(context.Background(), b)
	c.Assert(err, gc.IsNil)
	c.Assert(outValues(c, out.(*batch.Batch), "spike"), gc.DeepEquals,
		[]interface{}{false, true, true})
}

func (s KernelTestSuite) TestRollingStd(c *gc.C) {
	// any 3 consecutive integers advancing by 1 have sample std 1.0
	b := floatBatch(c, "x", []float64{1, 2, 3, 4, 5, 6})
	k := NewRollingStd("x", 3)
	out, err := k.Process(context.Background(), b)
	c.Assert(err, gc.IsNil)
	c.Assert(outValues(c, out.(*batch.Batch), "x_rolling_std_3"), gc.DeepEquals,
		[]interface{}{nil, nil, 1.0, 1.0, 1.0, 1.0})
}

func (s KernelTestSuite) TestRollingStdWindowOfOneAlwaysNull(c *gc.C) {
	b := floatBatch(c, "x", []float64{5, 10, 15})
	k := NewRollingStd("x", 1)
	out, err := k.Process(context.Background(), b)
	c.Assert(err, gc.IsNil)
	c.Assert(outValues(c, out.(*batch.Batch), "x_rolling_std_1"), gc.DeepEquals,
		[]interface{}{nil, nil, nil})
}

func (s KernelTestSuite) TestZScore(c *gc.C) {
	// evenly-spaced integers: every full window has mean = middle value and
	// std 1.0, so z is always 1.0 once the lookback fills
	b := floatBatch(c, "x", []float64{1, 2, 3, 4, 5})
	k := NewZScore("x", 3)
	out, err := k.Process(context.Background(), b)
	c.Assert(err, gc.IsNil)
	c.Assert(outValues(c, out.(*batch.Batch), "x_zscore_3"), gc.DeepEquals,
		[]interface{}{nil, nil, 1.0, 1.0, 1.0})
}

func (s KernelTestSuite) TestZScoreNullWhenStdIsZero(c *gc.C) {
	b := floatBatch(c, "x", []float64{5, 5, 5, 5})
	k := NewZScore("x", 2)
	out, err := k.Process(context.Background(), b)
	c.Assert(err, gc.IsNil)
	c.Assert(outValues(c, out.(*batch.Batch), "x_zscore_2"), gc.DeepEquals,
		[]interface{}{nil, nil, nil, nil})
}

func (s KernelTestSuite) TestRollingMeanNullOnWindowViolation(c *gc.C) {
	schema := batch.NewSchema(batch.Field{Name: "x", Type: batch.Float64})
	col := batch.NewFloatColumn(batch.Float64, []float64{1, 0, 3, 4, 5}, []bool{true, false, true, true, true})
	b, err := batch.New(schema, col)
	c.Assert(err, gc.IsNil)

	k := NewRollingMean("x", 3)
	out, err := k.Process(context.Background(), b)
	c.Assert(err, gc.IsNil)
	// window [1,null,3] -> null; [null,3,4] -> null; [3,4,5] -> 4.0
	c.Assert(outValues(c, out.(*batch.Batch), "x_rolling_mean_3"), gc.DeepEquals,
		[]interface{}{nil, nil, nil, nil, 4.0})
}
