package row

import (
	"context"

	"github.com/tjs392/otters/batch"
	gc "gopkg.in/check.v1"
)

type recordingConsumer struct {
	rows []Row
}

func (c *recordingConsumer) ConsumeRow(_ context.Context, r Row) error {
	c.rows = append(c.rows, r)
	return nil
}

func (s RowTestSuite) TestUnbatcherPreservesOrderAndNulls(c *gc.C) {
	schema := batch.NewSchema(batch.Field{Name: "price", Type: batch.Float64})
	col := batch.NewFloatColumn(batch.Float64, []float64{1, 0, 3}, []bool{true, false, true})
	b, err := batch.New(schema, col)
	c.Assert(err, gc.IsNil)

	consumer := &recordingConsumer{}
	u := NewUnbatcher(consumer)
	c.Assert(u.Consume(context.Background(), b), gc.IsNil)

	c.Assert(consumer.rows, gc.HasLen, 3)
	c.Assert(consumer.rows[0]["price"], gc.Equals, 1.0)
	c.Assert(consumer.rows[1]["price"], gc.IsNil)
	c.Assert(consumer.rows[2]["price"], gc.Equals, 3.0)
}
