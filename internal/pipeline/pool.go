package pipeline

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/pixelvault/pixelvault/internal/domain"
	"github.com/pixelvault/pixelvault/internal/domain/transform"
)

// Job is a single pipeline invocation.
type Job struct {
	Source         []byte
	Spec           transform.Spec
	FallbackFormat string
}

// Pool runs pipeline executions on a bounded set of workers with a
// bounded queue. Submissions beyond the queue bound are rejected with
// domain.ErrPipelineBusy so callers get backpressure instead of
// unbounded queuing.
type Pool struct {
	executor  *Executor
	queue     chan task
	logger    *zap.Logger
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type task struct {
	ctx    context.Context
	job    Job
	result chan taskResult
}

type taskResult struct {
	res *Result
	err error
}

func NewPool(executor *Executor, workers, queueSize int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if queueSize <= 0 {
		queueSize = workers * 2
	}

	p := &Pool{
		executor: executor,
		queue:    make(chan task, queueSize),
		logger:   logger,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Process submits a job and waits for its result. It returns
// domain.ErrPipelineBusy immediately when the queue is full, and the
// context error if the caller goes away before a worker finishes.
func (p *Pool) Process(ctx context.Context, job Job) (*Result, error) {
	t := task{ctx: ctx, job: job, result: make(chan taskResult, 1)}

	select {
	case p.queue <- t:
	default:
		p.logger.Warn("pipeline queue full, rejecting transform request")
		return nil, domain.ErrPipelineBusy
	}

	select {
	case out := <-t.result:
		return out.res, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.queue {
		// Skip work the caller has already abandoned.
		if err := t.ctx.Err(); err != nil {
			t.result <- taskResult{err: err}
			continue
		}
		res, err := p.executor.Execute(t.job.Source, t.job.Spec, t.job.FallbackFormat)
		t.result <- taskResult{res: res, err: err}
	}
}

// Close drains the queue and stops the workers.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.queue)
		p.wg.Wait()
	})
}
