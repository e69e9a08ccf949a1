package row

import (
	"context"

	"github.com/tjs392/otters/batch"
	gc "gopkg.in/check.v1"
)

func (s RowTestSuite) TestCustomStageDropsRows(c *gc.C) {
	schema := batch.NewSchema(batch.Field{Name: "x", Type: batch.Int64})
	col := batch.NewIntColumn(batch.Int64, []int64{1, 2, 3}, nil)
	b, err := batch.New(schema, col)
	c.Assert(err, gc.IsNil)

	stage := NewCustomStage(func(r Row) (Row, bool) {
		x := r["x"].(int64)
		if x%2 != 0 {
			return nil, false
		}
		return Row{"x": x}, true
	})

	out, err := stage.Process(context.Background(), b)
	c.Assert(err, gc.IsNil)
	got := out.(*batch.Batch)
	c.Assert(got.NumRows(), gc.Equals, 1)
}

func (s RowTestSuite) TestCustomStageDetectsSchemaDrift(c *gc.C) {
	schema := batch.NewSchema(batch.Field{Name: "price", Type: batch.Float64})

	stage := NewCustomStage(func(r Row) (Row, bool) {
		if _, ok := r["qty"]; ok {
			return Row{"price": r["price"], "qty": r["qty"]}, true
		}
		return Row{"s": 1}, true
	})

	first, err := batch.New(schema, batch.NewFloatColumn(batch.Float64, []float64{1.0}, nil))
	c.Assert(err, gc.IsNil)
	_, err = stage.Process(context.Background(), first)
	c.Assert(err, gc.IsNil)

	schemaWithQty := batch.NewSchema(
		batch.Field{Name: "price", Type: batch.Float64},
		batch.Field{Name: "qty", Type: batch.Int64},
	)
	second, err := batch.New(schemaWithQty,
		batch.NewFloatColumn(batch.Float64, []float64{2.0}, nil),
		batch.NewIntColumn(batch.Int64, []int64{3}, nil),
	)
	c.Assert(err, gc.IsNil)

	_, err = stage.Process(context.Background(), second)
	_, ok := err.(*SchemaDrift)
	c.Assert(ok, gc.Equals, true)
}
