package row

import (
	"context"

	"github.com/tjs392/otters/batch"
	"github.com/tjs392/otters/pipeline"
)

// RowConsumer is implemented by a row-oriented sink: a CSV writer, a
// callback, a search index. It mirrors pipeline.Sink but receives a Row
// instead of a batch.Batch.
type RowConsumer interface {
	ConsumeRow(ctx context.Context, r Row) error
}

// Unbatcher implements pipeline.Sink by emitting one Row per batch row, in
// batch order, to the wrapped RowConsumer. It is the inverse of Batcher.
type Unbatcher struct {
	consumer RowConsumer
}

// NewUnbatcher returns a ready-to-use Unbatcher wrapping consumer.
func NewUnbatcher(consumer RowConsumer) *Unbatcher {
	return &Unbatcher{consumer: consumer}
}

// Consume implements pipeline.Sink.
func (u *Unbatcher) Consume(ctx context.Context, p pipeline.Payload) error {
	b := p.(*batch.Batch)
	fields := b.Schema().Fields()

	for i := 0; i < b.NumRows(); i++ {
		r := make(Row, len(fields))
		for _, f := range fields {
			r[f.Name] = b.Column(f.Name).Value(i)
		}
		if err := u.consumer.ConsumeRow(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

var _ pipeline.Sink = (*Unbatcher)(nil)
