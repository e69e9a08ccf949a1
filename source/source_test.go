package source

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/tjs392/otters/batch"
	"github.com/tjs392/otters/row"
	gc "gopkg.in/check.v1"
)

func Test(t *testing.T) { gc.TestingT(t) }

var _ = gc.Suite(new(SourceTestSuite))

type SourceTestSuite struct{}

func (s SourceTestSuite) TestGeneratorRespectsLimit(c *gc.C) {
	clk := testclock.NewClock(time.Now())
	g := &Generator{
		Clock:    clk,
		Interval: 0,
		Limit:    3,
		Tick: func(i int) row.Row {
			return row.Row{"i": int64(i)}
		},
	}

	var got []row.Row
	for g.Next(context.Background()) {
		got = append(got, g.Row())
	}
	c.Assert(g.Error(), gc.IsNil)
	c.Assert(got, gc.HasLen, 3)
	c.Assert(got[0]["i"], gc.Equals, int64(0))
	c.Assert(got[2]["i"], gc.Equals, int64(2))
}

func (s SourceTestSuite) TestCSVParsesDeclaredTypes(c *gc.C) {
	schema := batch.NewSchema(
		batch.Field{Name: "price", Type: batch.Float64},
		batch.Field{Name: "qty", Type: batch.Int64},
	)
	src, err := NewCSV(strings.NewReader("price,qty\n1.5,10\n,20\n"), schema)
	c.Assert(err, gc.IsNil)

	c.Assert(src.Next(context.Background()), gc.Equals, true)
	r := src.Row()
	c.Assert(r["price"], gc.Equals, 1.5)
	c.Assert(r["qty"], gc.Equals, int64(10))

	c.Assert(src.Next(context.Background()), gc.Equals, true)
	r = src.Row()
	c.Assert(r["price"], gc.IsNil)
	c.Assert(r["qty"], gc.Equals, int64(20))

	c.Assert(src.Next(context.Background()), gc.Equals, false)
	c.Assert(src.Error(), gc.IsNil)
}
