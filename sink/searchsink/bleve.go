/*
Package searchsink adapts otters rows onto an in-memory bleve full-text
index, the same in-memory indexing approach textindexer/store/memory used
for crawled documents, repurposed here for rows emitted at the tail of an
otters pipeline.
*/
package searchsink

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/search/query"
	"github.com/tjs392/otters/row"
	"golang.org/x/xerrors"
)

// ErrMissingKey is returned when a row lacks its designated key column.
var ErrMissingKey = xerrors.New("search: row is missing its key column")

// QueryType selects the kind of bleve query Search builds.
type QueryType int

const (
	QueryMatch QueryType = iota
	QueryPhrase
)

// Query is a caller-issued search request.
type Query struct {
	Type       QueryType
	Expression string
	Offset     int
}

/*RowIndexer is a row.RowConsumer that indexes emitted rows into an
in-memory bleve index. KeyColumn names the row field bleve uses as the
document ID; TextColumns names the string fields bleve should index for
full-text search; RankColumn, if non-empty, names a float64 field search
results are sorted by, descending. A rank value of any other type is not
indexed.*/
type RowIndexer struct {
	KeyColumn   string
	TextColumns []string
	RankColumn  string

	mu   sync.RWMutex
	rows map[string]row.Row
	idx  bleve.Index
}

// NewRowIndexer builds an in-memory bleve index and a RowIndexer over it.
func NewRowIndexer(keyColumn string, textColumns []string, rankColumn string) (*RowIndexer, error) {
	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, xerrors.Errorf("search: %w", err)
	}
	return &RowIndexer{
		KeyColumn:   keyColumn,
		TextColumns: textColumns,
		RankColumn:  rankColumn,
		rows:        make(map[string]row.Row),
		idx:         idx,
	}, nil
}

// Close releases the underlying bleve index.
func (r *RowIndexer) Close() error { return r.idx.Close() }

// ConsumeRow implements row.RowConsumer.
func (r *RowIndexer) ConsumeRow(_ context.Context, rw row.Row) error {
	keyVal, ok := rw[r.KeyColumn]
	if !ok || keyVal == nil {
		return ErrMissingKey
	}
	key := fmt.Sprint(keyVal)

	doc := make(map[string]interface{}, len(r.TextColumns)+1)
	for _, col := range r.TextColumns {
		if s, ok := rw[col].(string); ok {
			doc[col] = s
		}
	}
	if r.RankColumn != "" {
		if f, ok := rw[r.RankColumn].(float64); ok {
			doc["rank"] = f
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[key] = rw
	if err := r.idx.Index(key, doc); err != nil {
		return xerrors.Errorf("search: indexing row %q: %w", key, err)
	}
	return nil
}

// Search runs q against the index and returns the matching rows in
// bleve's ranked order.
func (r *RowIndexer) Search(q Query) ([]row.Row, error) {
	var bq query.Query
	switch q.Type {
	case QueryPhrase:
		bq = bleve.NewMatchPhraseQuery(q.Expression)
	default:
		bq = bleve.NewMatchQuery(q.Expression)
	}

	req := bleve.NewSearchRequest(bq)
	if r.RankColumn != "" {
		req.SortBy([]string{"-rank", "-_score"})
	}
	req.From = q.Offset
	req.Size = 10

	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, err := r.idx.Search(req)
	if err != nil {
		return nil, xerrors.Errorf("search: %w", err)
	}

	out := make([]row.Row, 0, len(rs.Hits))
	for _, hit := range rs.Hits {
		if rw, found := r.rows[hit.ID]; found {
			out = append(out, rw)
		}
	}
	return out, nil
}

var _ row.RowConsumer = (*RowIndexer)(nil)
