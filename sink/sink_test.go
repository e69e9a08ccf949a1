package sink

import (
	"bytes"
	"context"
	"testing"

	"github.com/tjs392/otters/row"
	gc "gopkg.in/check.v1"
)

func Test(t *testing.T) { gc.TestingT(t) }

var _ = gc.Suite(new(SinkTestSuite))

type SinkTestSuite struct{}

func (s SinkTestSuite) TestRowCallback(c *gc.C) {
	var got []row.Row
	cb := RowCallback(func(_ context.Context, r row.Row) error {
		got = append(got, r)
		return nil
	})
	c.Assert(cb.ConsumeRow(context.Background(), row.Row{"a": int64(1)}), gc.IsNil)
	c.Assert(got, gc.HasLen, 1)
}

func (s SinkTestSuite) TestCollector(c *gc.C) {
	col := &Collector{}
	c.Assert(col.ConsumeRow(context.Background(), row.Row{"a": int64(1)}), gc.IsNil)
	c.Assert(col.ConsumeRow(context.Background(), row.Row{"a": int64(2)}), gc.IsNil)
	c.Assert(col.Rows, gc.HasLen, 2)
}

func (s SinkTestSuite) TestCSVWritesHeaderAndNulls(c *gc.C) {
	var buf bytes.Buffer
	out := NewCSV(&buf, []string{"a", "b"})

	c.Assert(out.ConsumeRow(context.Background(), row.Row{"a": int64(1), "b": nil}), gc.IsNil)
	c.Assert(out.ConsumeRow(context.Background(), row.Row{"a": int64(2), "b": "x"}), gc.IsNil)

	c.Assert(buf.String(), gc.Equals, "a,b\n1,\n2,x\n")
}
