package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(PipelineTestSuite))

type PipelineTestSuite struct{}

func buildTestStages(c *gc.C, stages ...testStage) *Builder {
	b := NewBuilder()
	for i, st := range stages {
		b.AddStage(fmt.Sprintf("test-%d", i), st)
	}
	return b
}

func (s *PipelineTestSuite) TestDataFlow(c *gc.C) {
	stages := make([]testStage, 10)
	for i := range stages {
		stages[i] = testStage{c: c}
	}

	src := &sourceStub{data: stringPayloads(3)}
	sink := new(sinkStub)

	p, err := buildTestStages(c, stages...).WithSource(src).WithSink(sink).Build()
	c.Assert(err, gc.IsNil)

	err = p.Run(context.Background())
	c.Assert(err, gc.IsNil)
	c.Assert(sink.data, gc.DeepEquals, src.data)
	assertAllProcessed(c, src.data)
}

func (s *PipelineTestSuite) TestProcessorErrorHandling(c *gc.C) {
	stages := make([]testStage, 10)
	for i := range stages {
		st := testStage{c: c}
		if i == 5 {
			st.err = xerrors.New("some error")
		}
		stages[i] = st
	}

	src := &sourceStub{data: stringPayloads(3)}
	sink := new(sinkStub)

	p, err := buildTestStages(c, stages...).WithSource(src).WithSink(sink).Build()
	c.Assert(err, gc.IsNil)

	err = p.Run(context.Background())
	c.Assert(err, gc.ErrorMatches, "(?s).*some error.*")
}

func (s *PipelineTestSuite) TestSourceErrorHandling(c *gc.C) {
	expErr := xerrors.New("some error")
	src := &sourceStub{err: expErr, data: stringPayloads(3)}
	sink := new(sinkStub)

	p, err := NewBuilder().AddStage("pass", testStage{c: c}).WithSource(src).WithSink(sink).Build()
	c.Assert(err, gc.IsNil)

	err = p.Run(context.Background())
	c.Assert(err, gc.ErrorMatches, "(?s).*some error.*")
}

func (s *PipelineTestSuite) TestSinkErrorHandling(c *gc.C) {
	expErr := xerrors.New("some error")
	src := &sourceStub{data: stringPayloads(3)}
	sink := &sinkStub{err: expErr}

	p, err := NewBuilder().AddStage("pass", testStage{c: c}).WithSource(src).WithSink(sink).Build()
	c.Assert(err, gc.IsNil)

	err = p.Run(context.Background())
	c.Assert(err, gc.ErrorMatches, "(?s).*some error.*")
}

func (s *PipelineTestSuite) TestZeroStagesWiresSourceDirectlyToSink(c *gc.C) {
	src := &sourceStub{data: stringPayloads(3)}
	sink := new(sinkStub)

	p, err := NewBuilder().WithSource(src).WithSink(sink).Build()
	c.Assert(err, gc.IsNil)

	err = p.Run(context.Background())
	c.Assert(err, gc.IsNil)
	c.Assert(sink.data, gc.DeepEquals, src.data)
	assertAllProcessed(c, src.data)
}

func (s *PipelineTestSuite) TestPayloadDiscarding(c *gc.C) {
	src := &sourceStub{data: stringPayloads(3)}
	sink := &sinkStub{}

	p, err := NewBuilder().
		AddStage("drop", testStage{c: c, dropPayloads: true}).
		WithSource(src).
		WithSink(sink).
		Build()
	c.Assert(err, gc.IsNil)

	err = p.Run(context.Background())
	c.Assert(err, gc.IsNil)
	c.Assert(sink.data, gc.HasLen, 0, gc.Commentf("expected all payloads to be discarded by stage processor"))
	assertAllProcessed(c, src.data)
}
