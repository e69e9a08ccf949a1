package pipeline

import (
	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

// ErrClosed is observed by a worker blocked in Send or Recv once the
// pipeline's context has been cancelled, either because a sibling stage
// failed or because the caller asked for a shutdown. It is not itself a
// failure: a worker that unwinds because of ErrClosed reports nothing to
// the driver.
var ErrClosed = xerrors.New("pipeline: channel closed")

// Kind classifies the fatal errors a stage can report to the driver.
type Kind uint8

const (
	// KindConfig marks a failure raised by Builder.Build before the
	// pipeline ever starts running.
	KindConfig Kind = iota
	// KindSchemaDrift marks a row or batch that violates the declared
	// schema at runtime.
	KindSchemaDrift
	// KindCompute marks a kernel-internal failure, such as an
	// unsupported column type.
	KindCompute
	// KindSource marks an I/O failure at the source endpoint.
	KindSource
	// KindSink marks an I/O failure at the sink endpoint.
	KindSink
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindSchemaDrift:
		return "schema_drift"
	case KindCompute:
		return "compute"
	case KindSource:
		return "source"
	case KindSink:
		return "sink"
	default:
		return "unknown"
	}
}

// StageError is the fatal error type a stage worker reports to the driver.
// It names the run, the offending stage, and the error's Kind so callers
// can use errors.As/xerrors.Is instead of matching on message text.
type StageError struct {
	RunID      uuid.UUID
	StageIndex int
	Kind       Kind
	Err        error
}

func (e *StageError) Error() string {
	return xerrors.Errorf("pipeline stage %d (%s): %w", e.StageIndex, e.Kind, e.Err).Error()
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e *StageError) Unwrap() error { return e.Err }

// ConfigError marks a failure raised by Builder.Build. Unlike StageError it
// carries no RunID or StageIndex: the pipeline never started.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return xerrors.Errorf("pipeline config: %w", e.Err).Error() }
func (e *ConfigError) Unwrap() error { return e.Err }
