package pipeline_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/tjs392/otters/pipeline"
	"github.com/tjs392/otters/pipeline/mocks"
	gc "gopkg.in/check.v1"
)

func TestMocks(t *testing.T) { gc.TestingT(t) }

var _ = gc.Suite(new(MockSourceSinkTestSuite))

type MockSourceSinkTestSuite struct{}

type stubPayload struct{ marked bool }

func (p *stubPayload) Clone() pipeline.Payload { return &stubPayload{} }
func (p *stubPayload) MarkAsProcessed()        { p.marked = true }

/*TestMockedSourceAndSink runs a one-stage pipeline against gomock-driven
doubles for the Source/Sink collaborator interfaces.*/
func (s MockSourceSinkTestSuite) TestMockedSourceAndSink(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	src := mocks.NewMockSource(ctrl)
	sink := mocks.NewMockSink(ctrl)

	p := &stubPayload{}
	gomock.InOrder(
		src.EXPECT().Next(gomock.Any()).Return(true),
		src.EXPECT().Payload().Return(p),
		src.EXPECT().Next(gomock.Any()).Return(false),
		src.EXPECT().Error().Return(nil),
	)
	sink.EXPECT().Consume(gomock.Any(), p).Return(nil)

	b := pipeline.NewBuilder()
	b.AddStage("identity", pipeline.FIFO(pipeline.ProcessorFunc(
		func(_ context.Context, in pipeline.Payload) (pipeline.Payload, error) { return in, nil },
	)))
	built, err := b.WithSource(src).WithSink(sink).Build()
	c.Assert(err, gc.IsNil)

	c.Assert(built.Run(context.Background()), gc.IsNil)
	c.Assert(p.marked, gc.Equals, true)
}
