package pipeline

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

type workerParams struct {
	stage int

	//channels for the worker's input and output
	in  *Channel
	out *Channel

	errCh chan<- error

	runID   uuid.UUID
	logger  *logrus.Entry
	metrics Metrics
}

//Make workerParams implement StageParams interface
func (p *workerParams) StageIndex() int       { return p.stage }
func (p *workerParams) Input() *Channel       { return p.in }
func (p *workerParams) Output() *Channel      { return p.out }
func (p *workerParams) Error() chan<- error   { return p.errCh }
func (p *workerParams) RunID() uuid.UUID      { return p.runID }
func (p *workerParams) Logger() *logrus.Entry { return p.logger }
func (p *workerParams) Metrics() Metrics      { return p.metrics }

// Pipeline is an assembled, immutable chain of stages wired between a
// Source and a Sink. Build it with Builder; Run it as many times as needed.
type Pipeline struct {
	source    Source
	sink      Sink
	stages    []StageRunner
	stageName []string
	capacity  int
	batchSize int
	logger    *logrus.Entry
	metrics   Metrics
}

// BatchSize reports the batch size the Builder was configured with. A
// row.Batcher feeding this pipeline's Source should be built with the same
// value so WithBatchSize has a single point of configuration.
func (p *Pipeline) BatchSize() int { return p.batchSize }

/*Run reads the contents of the configured source, sends each payload through
every stage, and hands the result to the configured sink. Run blocks until:
- all data from the source has been processed OR
- a stage reports a fatal, non-Closed error OR
- the supplied context expires

Run returns the FIRST fatal error observed. Unlike a log that accumulates
every error a cancelled pipeline produces as its stages unwind, the driver
only surfaces the error that triggered the shutdown; every Closed error
observed afterward is a symptom of that cancellation, not a new fault, and is
discarded.*/
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.New()
	log := p.logger.WithField("run_id", runID.String())

	var wg sync.WaitGroup
	pCtx, ctxCancelFn := context.WithCancel(ctx)
	defer ctxCancelFn()

	//Allocate bounded channels for wiring together the source, stages, and sink
	stageCh := make([]*Channel, len(p.stages)+1)
	errCh := make(chan error, len(p.stages)+2)
	for i := range stageCh {
		stageCh[i] = NewChannel(p.capacity)
	}

	//start a worker for each stage
	for i := 0; i < len(p.stages); i++ {
		wg.Add(1)
		go func(stageIndex int) {
			defer wg.Done()
			p.stages[stageIndex].Run(pCtx, &workerParams{
				stage:   stageIndex,
				in:      stageCh[stageIndex],
				out:     stageCh[stageIndex+1], //the output channel of nth worker is input channel of worker n+1
				errCh:   errCh,
				runID:   runID,
				logger:  log.WithField("stage_name", p.stageName[stageIndex]),
				metrics: p.metrics,
			})

			//once the Run() method of worker n returns, its output channel is closed to
			//signal the next stage of the pipeline that no more data is available
			stageCh[stageIndex+1].CloseSend()
		}(i)
	}

	//spawn 2 additional workers, one for input source and one for output sink
	wg.Add(2)
	go func() {
		defer wg.Done()
		sourceWorker(pCtx, p.source, stageCh[0], errCh, runID)
		stageCh[0].CloseSend()
	}()

	go func() {
		defer wg.Done()
		sinkWorker(pCtx, p.sink, stageCh[len(stageCh)-1], errCh, runID, p.metrics)
	}()

	//spawn one final routine to act as a monitor. it waits for all workers
	//to complete before closing the shared error channel
	go func() {
		wg.Wait()
		close(errCh)
	}()

	//collect emitted errors, keeping only the first fatal one. receiving it
	//cancels the wrapped context, which unblocks every stage still parked on
	//a Send/Recv; those stages return without reporting anything, and any
	//ErrClosed that does reach the channel is filtered here rather than kept.
	var first error
	for pErr := range errCh {
		if xerrors.Is(pErr, ErrClosed) {
			continue
		}
		if first == nil {
			first = pErr
			log.WithError(pErr).Error("pipeline run failed")
			ctxCancelFn()
		}
	}

	return first
}

/*sourceWorker iterates the data source and publishes each incoming payload
to the specified channel. It runs inside its own goroutine to let the
source and the rest of the pipeline make progress concurrently.*/
func sourceWorker(
	ctx context.Context,
	source Source,
	out *Channel,
	errCh chan<- error,
	runID uuid.UUID) {

	for source.Next(ctx) {
		payload := source.Payload()
		if err := out.Send(ctx, payload); err != nil {
			return //shutdown
		}
	}

	//before returning, check for any errors reported by the input source and
	//publish them to the provided error channel
	if err := source.Error(); err != nil {
		wrappedErr := &StageError{RunID: runID, StageIndex: -1, Kind: KindSource, Err: err}
		maybeEmitError(wrappedErr, errCh)
	}
}

//sinkWorker reads payloads from the provided input channel and publishes them to the provided Sink instance.
func sinkWorker(
	ctx context.Context,
	sink Sink,
	in *Channel,
	errCh chan<- error,
	runID uuid.UUID,
	metrics Metrics) {

	for {
		payload, ok := in.Recv(ctx)
		if !ok {
			return
		}
		if err := sink.Consume(ctx, payload); err != nil {
			wrappedErr := &StageError{RunID: runID, StageIndex: -1, Kind: KindSink, Err: err}
			maybeEmitError(wrappedErr, errCh)
			return
		}
		payload.MarkAsProcessed()
		metrics.BatchSent(-1)
	}
}
