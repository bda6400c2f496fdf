package systems

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/facecube/engine/core"
)

/** @brief Entry point of a job. Runs on a worker goroutine. */
type JobStart func(ctx context.Context) (interface{}, error)

/** @brief Result callbacks. Always run on the goroutine calling Update. */
type JobOnComplete func(result interface{})
type JobOnFailure func(err error)

/**
 * @brief Describes a job to be run.
 */
type JobTask struct {
	/** @brief Used in log lines only. */
	Name string
	/** @brief Required. */
	OnStart JobStart
	/** @brief Optional. Invoked with the value returned by OnStart. */
	OnComplete JobOnComplete
	/** @brief Optional. Invoked with the error returned by OnStart. */
	OnFailure JobOnFailure
}

type jobResult struct {
	task   JobTask
	result interface{}
	err    error
}

// The max number of job results that can be waiting for Update at once.
const MAX_JOB_RESULTS int = 512

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	results    chan jobResult
	wg         sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrJobSystemClosed = errors.New("job system is shut down")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
		results:    make(chan jobResult, MAX_JOB_RESULTS),
		ctx:        ctx,
		cancel:     cancel,
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				// Run the job and hand the outcome back to the update loop
				result, err := job.OnStart(js.ctx)
				if err != nil {
					core.LogError("job %q failed: %s", job.Name, err.Error())
				}
				select {
				case js.results <- jobResult{task: job, result: result, err: err}:
				case <-js.ctx.Done():
				}
			}
		}()
	}
}

/**
 * @brief Shuts the job system down. Running jobs see their context cancelled;
 * results not yet collected by Update are dropped.
 */
func (js *JobSystem) Shutdown() error {
	// unblocks Submit calls waiting on a full queue
	js.cancel()

	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	return nil
}

/**
 * @brief Updates the job system. Should happen once an update cycle.
 * Runs the callbacks of every job finished since the previous call.
 */
func (js *JobSystem) Update() int {
	n := 0
	for {
		select {
		case r := <-js.results:
			n++
			if r.err != nil {
				if r.task.OnFailure != nil {
					r.task.OnFailure(r.err)
				}
				continue
			}
			if r.task.OnComplete != nil {
				r.task.OnComplete(r.result)
			}
		default:
			return n
		}
	}
}

// AddWorkNonBlocking adds work to the pool and returns immediately
func (js *JobSystem) AddWorkNonBlocking(jt JobTask) {
	go func() {
		if err := js.Submit(jt); err != nil {
			core.LogWarn("job %q dropped: %s", jt.Name, err.Error())
		}
	}()
}

/**
 * @brief Submits the provided job to be queued for execution.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	if jt.OnStart == nil {
		return fmt.Errorf("job %q has no entry point", jt.Name)
	}
	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		return ErrJobSystemClosed
	}
	select {
	case js.jobQueue <- jt:
		return nil
	case <-js.ctx.Done():
		return ErrJobSystemClosed
	}
}
