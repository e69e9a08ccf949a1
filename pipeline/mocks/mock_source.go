// Package mocks holds hand-written gomock-style mocks for pipeline.Source
// and pipeline.Sink, in the shape mockgen would produce from
// pipeline/interfaces.go. They are checked in rather than generated, since
// this module's build process never invokes go:generate.
package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/tjs392/otters/pipeline"
)

// MockSource is a mock of the pipeline.Source interface.
type MockSource struct {
	ctrl     *gomock.Controller
	recorder *MockSourceMockRecorder
}

// MockSourceMockRecorder records expected calls for MockSource.
type MockSourceMockRecorder struct {
	mock *MockSource
}

// NewMockSource returns a ready-to-use MockSource bound to ctrl.
func NewMockSource(ctrl *gomock.Controller) *MockSource {
	m := &MockSource{ctrl: ctrl}
	m.recorder = &MockSourceMockRecorder{m}
	return m
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSource) EXPECT() *MockSourceMockRecorder { return m.recorder }

func (m *MockSource) Next(ctx context.Context) bool {
	ret := m.ctrl.Call(m, "Next", ctx)
	ret0, _ := ret[0].(bool)
	return ret0
}

func (mr *MockSourceMockRecorder) Next(ctx interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Next", reflect.TypeOf((*MockSource)(nil).Next), ctx)
}

func (m *MockSource) Payload() pipeline.Payload {
	ret := m.ctrl.Call(m, "Payload")
	ret0, _ := ret[0].(pipeline.Payload)
	return ret0
}

func (mr *MockSourceMockRecorder) Payload() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Payload", reflect.TypeOf((*MockSource)(nil).Payload))
}

func (m *MockSource) Error() error {
	ret := m.ctrl.Call(m, "Error")
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockSourceMockRecorder) Error() *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Error", reflect.TypeOf((*MockSource)(nil).Error))
}

var _ pipeline.Source = (*MockSource)(nil)
