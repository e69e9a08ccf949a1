package pipeline

import (
	"io/ioutil"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

const (
	defaultBatchSize       = 1024
	defaultChannelCapacity = 4
)

// Builder assembles a Pipeline one stage at a time, validating the column
// symbol table as each stage is added so a malformed wiring is reported at
// construction time rather than the first time a batch reaches it.
type Builder struct {
	source Source
	sink   Sink

	stages     []StageRunner
	stageNames []string

	// columns tracks every column name known to exist by the time each
	// stage runs: the source schema's columns plus every OutputColumn
	// appended by a ColumnStage added so far.
	columns map[string]bool

	batchSize       int
	channelCapacity int
	logger          *logrus.Entry
	metrics         Metrics

	errs *multierror.Error
}

// NewBuilder returns an empty Builder. Columns lists the names produced by
// the configured Source's schema, seeding the symbol table AddSignal
// validates against.
func NewBuilder(sourceColumns ...string) *Builder {
	columns := make(map[string]bool, len(sourceColumns))
	for _, c := range sourceColumns {
		columns[c] = true
	}
	return &Builder{
		columns:         columns,
		batchSize:       defaultBatchSize,
		channelCapacity: defaultChannelCapacity,
		logger:          logrus.NewEntry(discardLogger()),
		metrics:         NoopMetrics,
	}
}

// WithSource sets the pipeline's input endpoint. Required.
func (b *Builder) WithSource(src Source) *Builder {
	b.source = src
	return b
}

// WithSink sets the pipeline's output endpoint. Required.
func (b *Builder) WithSink(sink Sink) *Builder {
	b.sink = sink
	return b
}

// WithBatchSize records the batch size Build validates and
// Pipeline.BatchSize reports. Must be >= 1. It does not resize the batches
// a row.Batcher emits; that size is the one passed to row.NewBatcher.
func (b *Builder) WithBatchSize(n int) *Builder {
	b.batchSize = n
	return b
}

// WithChannelCapacity overrides the bounded capacity of every Channel wiring
// adjacent stages together. Must be >= 1.
func (b *Builder) WithChannelCapacity(n int) *Builder {
	b.channelCapacity = n
	return b
}

// WithLogger overrides the structured logger stages and the driver log
// through. Defaults to a discard logger.
func (b *Builder) WithLogger(log *logrus.Entry) *Builder {
	b.logger = log
	return b
}

// WithMetrics overrides the Metrics sink stages report batch counts and
// backpressure events to. Defaults to NoopMetrics.
func (b *Builder) WithMetrics(m Metrics) *Builder {
	b.metrics = m
	return b
}

// AddStage appends a plain StageRunner, for row-level or infrastructural
// stages that don't participate in the column symbol table.
func (b *Builder) AddStage(name string, stage StageRunner) *Builder {
	b.stages = append(b.stages, stage)
	b.stageNames = append(b.stageNames, name)
	return b
}

/*AddSignal appends a signal kernel. Unlike AddStage it validates the kernel's
RequiredColumns against the columns known to exist by this point in the
chain, and records OutputColumn so later stages can depend on it. A kernel
is always wrapped in FIFO: stateful rolling-window state is only correct
under a single worker observing the stream in order.*/
func (b *Builder) AddSignal(name string, stage ColumnStage) *Builder {
	for _, req := range stage.RequiredColumns() {
		if !b.columns[req] {
			b.errs = multierror.Append(b.errs, xerrors.Errorf(
				"stage %q requires column %q, which no earlier stage produces", name, req))
		}
	}

	if out := stage.OutputColumn(); out != "" {
		if b.columns[out] {
			b.errs = multierror.Append(b.errs, xerrors.Errorf(
				"stage %q output column %q collides with an existing column", name, out))
		}
		b.columns[out] = true
	}

	b.stages = append(b.stages, FIFO(stage))
	b.stageNames = append(b.stageNames, name)
	return b
}

// Build validates the assembled configuration and returns the runnable
// Pipeline, or a *ConfigError aggregating every problem found.
func (b *Builder) Build() (*Pipeline, error) {
	errs := b.errs

	if b.source == nil {
		errs = multierror.Append(errs, xerrors.New("pipeline: source is required"))
	}
	if b.sink == nil {
		errs = multierror.Append(errs, xerrors.New("pipeline: sink is required"))
	}
	if b.batchSize < 1 {
		errs = multierror.Append(errs, xerrors.New("pipeline: batch size must be >= 1"))
	}
	if b.channelCapacity < 1 {
		errs = multierror.Append(errs, xerrors.New("pipeline: channel capacity must be >= 1"))
	}

	if errs.ErrorOrNil() != nil {
		return nil, &ConfigError{Err: errs.ErrorOrNil()}
	}

	return &Pipeline{
		source:    b.source,
		sink:      b.sink,
		stages:    b.stages,
		stageName: b.stageNames,
		capacity:  b.channelCapacity,
		batchSize: b.batchSize,
		logger:    b.logger,
		metrics:   b.metrics,
	}, nil
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(ioutil.Discard)
	return log
}
