package pipeline

import (
	"context"
	"fmt"
	"testing"

	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(StageTestSuite))

type StageTestSuite struct{}

func Test(t *testing.T) { gc.TestingT(t) }

func (s StageTestSuite) TestFIFO(c *gc.C) {
	b := NewBuilder()
	for i := 0; i < 10; i++ {
		b.AddStage(fmt.Sprintf("passthrough-%d", i), FIFO(makePassthroughProcessor()))
	}

	src := &sourceStub{data: stringPayloads(3)}
	sink := new(sinkStub)

	p, err := b.WithSource(src).WithSink(sink).Build()
	c.Assert(err, gc.IsNil)

	err = p.Run(context.Background())
	c.Assert(err, gc.IsNil)
	c.Assert(sink.data, gc.DeepEquals, src.data)
	assertAllProcessed(c, src.data)
}

func (s StageTestSuite) TestFixedWorkerPool(c *gc.C) {
	b := NewBuilder().AddStage("fan", FixedWorkerPool(makePassthroughProcessor(), 4))

	src := &sourceStub{data: stringPayloads(50)}
	sink := new(sinkStub)

	p, err := b.WithSource(src).WithSink(sink).Build()
	c.Assert(err, gc.IsNil)

	err = p.Run(context.Background())
	c.Assert(err, gc.IsNil)
	c.Assert(len(sink.data), gc.Equals, len(src.data))
	assertAllProcessed(c, src.data)
}

//passes payload through to next stage
func makePassthroughProcessor() Processor {
	return ProcessorFunc(func(_ context.Context, p Payload) (Payload, error) {
		return p, nil
	})
}

func assertAllProcessed(c *gc.C, payloads []Payload) {
	for i, p := range payloads {
		payload := p.(*stringPayload)
		c.Assert(payload.processed, gc.Equals, true, gc.Commentf("payload %d not processed", i))
	}
}
