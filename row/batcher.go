package row

import (
	"context"

	"github.com/tjs392/otters/batch"
	"github.com/tjs392/otters/pipeline"
)

// RowProducer is implemented by a row-oriented source: a CSV reader, a
// websocket feed, a synthetic generator. It mirrors pipeline.Source but
// yields a Row instead of a batch.Batch.
type RowProducer interface {
	Next(ctx context.Context) bool
	Row() Row
	Error() error
}

/*Batcher wraps a RowProducer and accumulates its rows into columnar
builders, one per schema column, emitting a batch.Batch once either the
row count reaches batchSize or the producer is exhausted with at least one
row pending. Batcher implements pipeline.Source, so it is used directly as
the Source half of a Builder.*/
type Batcher struct {
	schema    *batch.Schema
	batchSize int
	producer  RowProducer

	builders map[string]columnBuilder
	pending  int

	current *batch.Batch
	err     error
}

// NewBatcher returns a Batcher that reads from producer and emits batches
// of at most batchSize rows, honoring schema's declared columns in order.
func NewBatcher(schema *batch.Schema, batchSize int, producer RowProducer) *Batcher {
	b := &Batcher{schema: schema, batchSize: batchSize, producer: producer}
	b.resetBuilders()
	return b
}

func (b *Batcher) resetBuilders() {
	b.builders = make(map[string]columnBuilder, len(b.schema.Fields()))
	for _, f := range b.schema.Fields() {
		b.builders[f.Name] = newColumnBuilder(f)
	}
	b.pending = 0
}

// Next implements pipeline.Source. It pulls rows from the wrapped producer
// until a full batch is assembled or the producer is exhausted.
func (b *Batcher) Next(ctx context.Context) bool {
	if b.err != nil {
		return false
	}

	for {
		if !b.producer.Next(ctx) {
			if perr := b.producer.Error(); perr != nil {
				b.err = perr
				return false
			}
			if b.pending == 0 {
				return false
			}
			return b.flush()
		}

		if err := b.appendRow(b.producer.Row()); err != nil {
			b.err = err
			return false
		}
		b.pending++

		if b.pending == b.batchSize {
			return b.flush()
		}
	}
}

func (b *Batcher) appendRow(r Row) error {
	for name := range r {
		if !b.schema.Has(name) {
			return &SchemaDrift{Column: name, Reason: "unexpected column in row"}
		}
	}
	for _, f := range b.schema.Fields() {
		v, ok := r[f.Name]
		if !ok {
			v = nil
		}
		if err := b.builders[f.Name].append(v); err != nil {
			return &SchemaDrift{Column: f.Name, Reason: err.Error()}
		}
	}
	return nil
}

func (b *Batcher) flush() bool {
	fields := b.schema.Fields()
	columns := make([]*batch.Column, len(fields))
	for i, f := range fields {
		columns[i] = b.builders[f.Name].build()
	}
	built, err := batch.New(b.schema, columns...)
	if err != nil {
		b.err = err
		b.resetBuilders()
		return false
	}
	b.current = built
	b.resetBuilders()
	return true
}

// Payload implements pipeline.Source.
func (b *Batcher) Payload() pipeline.Payload { return b.current }

// Error implements pipeline.Source.
func (b *Batcher) Error() error { return b.err }

var _ pipeline.Source = (*Batcher)(nil)
