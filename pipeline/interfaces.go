package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Payload is implemented by values that can be sent through a pipeline. A
// *batch.Batch is the only Payload implementation compute stages exchange;
// row-level adapters trade in row.Row at the pipeline's edges but never
// put a bare row on a Channel.
type Payload interface {
	// Clone returns a Payload a downstream stage may mutate without
	// affecting the original. Column data is immutable once built, so
	// implementations may share it and only copy the lookup structure
	// around it.
	Clone() Payload

	// MarkAsProcessed is invoked once a Payload reaches the sink or is
	// discarded by a stage.
	MarkAsProcessed()
}

// Processor is implemented by types that can process Payloads as part of a
// pipeline stage.
type Processor interface {
	/*
		Process operates on the input payload and returns back a new payload
		to be forwarded to the next pipeline stage. Processors may also prevent
		the payload from reaching later stages by returning a nil payload instead.
	*/
	Process(context.Context, Payload) (Payload, error)
}

// ProcessorFunc is an adapter to allow the use of plain functions
// as Processor instances. If f is a function with the appropriate signature,
// ProcessorFunc(f) is a Processor that calls f.
type ProcessorFunc func(ctx context.Context, p Payload) (Payload, error)

// Process calls f(ctx, p).
func (f ProcessorFunc) Process(ctx context.Context, p Payload) (Payload, error) {
	return f(ctx, p)
}

// ColumnStage is implemented by Processors whose effect on a batch is to
// read a known set of input columns and append one known output column.
// Builder uses this to validate the pipeline's column symbol table at
// construction time, without running anything.
type ColumnStage interface {
	Processor
	// RequiredColumns lists the columns that must already exist in the
	// schema for this stage to run.
	RequiredColumns() []string
	// OutputColumn names the column this stage appends, or "" if none.
	OutputColumn() string
}

//StageRunner is implemented by types that can be strung together to form a multi-stage pipeline
type StageRunner interface {
	/*Run implements the processing logic for a stage by reading
	incoming Payloads from an input channel, processing them and
	outputting the results to an output channel

	Calls to Run are expected to block until:
	- the stage's input Channel is closed and drained OR
	- the provided context expires OR
	- an error occurs while processing payloads */
	Run(context.Context, StageParams)
}

/*StageParams encapsulates the info required for executing a pipeline stage.
The pipeline passes a StageParams instance to the Run() method of each stage.*/
type StageParams interface {
	//StageIndex returns the position of this stage in the pipeline for annotation purposes
	StageIndex() int

	//Input returns the bounded channel this stage reads payloads from
	Input() *Channel

	//Output returns the bounded channel this stage writes payloads to
	Output() *Channel

	//Error returns a channel for writing errors encountered by a stage during processing
	Error() chan<- error

	// RunID identifies the Pipeline.Run call this stage is part of, for
	// log correlation and StageError annotation.
	RunID() uuid.UUID

	// Logger returns the entry stages should log through.
	Logger() *logrus.Entry

	// Metrics returns the sink stage runners report batch counts and
	// backpressure observations to.
	Metrics() Metrics
}

/*Source is implemnted by types that generate Payload instances which can be used
as inputs to a Pipeline*/
type Source interface {
	Next(context.Context) bool
	Payload() Payload
	Error() error
}

//Sink is implemented by types that can operate as the tail of a pipeline
type Sink interface {
	//Consume processes a Payload instance that has been emitted out of a Pipeline instance
	Consume(context.Context, Payload) error
}

// Metrics receives pipeline runtime observations. Implementations live
// outside this package (e.g. backed by Prometheus) so the core never
// depends on a metrics backend.
type Metrics interface {
	// BatchSent is called whenever a FIFO stage successfully delivers a
	// payload to its output Channel, and by the sink worker, with
	// stageIndex -1, after the Sink consumes a payload. DynamicWorkerPool
	// does not report it.
	BatchSent(stageIndex int)
	// BatchBlocked is called whenever a stage's send blocked because its
	// output Channel was full.
	BatchBlocked(stageIndex int)
}

type noopMetrics struct{}

func (noopMetrics) BatchSent(int)    {}
func (noopMetrics) BatchBlocked(int) {}

// NoopMetrics discards every observation. It is the Builder default.
var NoopMetrics Metrics = noopMetrics{}
