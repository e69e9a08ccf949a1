package searchsink

import (
	"context"
	"testing"

	"github.com/tjs392/otters/row"
	gc "gopkg.in/check.v1"
)

func Test(t *testing.T) { gc.TestingT(t) }

var _ = gc.Suite(new(SearchTestSuite))

type SearchTestSuite struct{}

func (s SearchTestSuite) TestIndexAndSearch(c *gc.C) {
	idx, err := NewRowIndexer("symbol", []string{"note"}, "score")
	c.Assert(err, gc.IsNil)
	defer idx.Close()

	rows := []row.Row{
		{"symbol": "AAPL", "note": "quarterly earnings beat", "score": 2.0},
		{"symbol": "MSFT", "note": "cloud revenue miss", "score": 5.0},
	}
	for _, r := range rows {
		c.Assert(idx.ConsumeRow(context.Background(), r), gc.IsNil)
	}

	hits, err := idx.Search(Query{Type: QueryMatch, Expression: "revenue"})
	c.Assert(err, gc.IsNil)
	c.Assert(hits, gc.HasLen, 1)
	c.Assert(hits[0]["symbol"], gc.Equals, "MSFT")
}

func (s SearchTestSuite) TestMissingKeyColumn(c *gc.C) {
	idx, err := NewRowIndexer("symbol", nil, "")
	c.Assert(err, gc.IsNil)
	defer idx.Close()

	err = idx.ConsumeRow(context.Background(), row.Row{"note": "no symbol here"})
	c.Assert(err, gc.Equals, ErrMissingKey)
}
