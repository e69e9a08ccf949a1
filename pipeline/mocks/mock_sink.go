package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tjs392/otters/pipeline"
)

// MockSink is a mock of the pipeline.Sink interface.
type MockSink struct {
	ctrl     *gomock.Controller
	recorder *MockSinkMockRecorder
}

// MockSinkMockRecorder records expected calls for MockSink.
type MockSinkMockRecorder struct {
	mock *MockSink
}

// NewMockSink returns a ready-to-use MockSink bound to ctrl.
func NewMockSink(ctrl *gomock.Controller) *MockSink {
	m := &MockSink{ctrl: ctrl}
	m.recorder = &MockSinkMockRecorder{m}
	return m
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSink) EXPECT() *MockSinkMockRecorder { return m.recorder }

func (m *MockSink) Consume(ctx context.Context, p pipeline.Payload) error {
	ret := m.ctrl.Call(m, "Consume", ctx, p)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockSinkMockRecorder) Consume(ctx, p interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Consume", reflect.TypeOf((*MockSink)(nil).Consume), ctx, p)
}

var _ pipeline.Sink = (*MockSink)(nil)
