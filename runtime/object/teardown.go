package object

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// TeardownQueue delivers best-effort reclamation notifications through a
// small worker pool. Hooks run on arbitrary goroutines at arbitrary times
// relative to the rest of the program; they get no ordering guarantees,
// and a panic or error inside one is contained and logged, never allowed
// to reach unrelated code.
type TeardownQueue struct {
	work        chan *Instance
	workerCount int
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	log         *zap.Logger
	started     bool
	shutdown    bool
	mu          sync.Mutex
}

// NewTeardownQueue creates a teardown queue with the given worker count
func NewTeardownQueue(workerCount int, log *zap.Logger) *TeardownQueue {
	if workerCount <= 0 {
		workerCount = 2
	}
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &TeardownQueue{
		work:        make(chan *Instance, 64),
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		log:         log,
	}
}

// Start launches the worker pool
func (q *TeardownQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started {
		return
	}
	for i := 0; i < q.workerCount; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
}

func (q *TeardownQueue) worker() {
	defer q.wg.Done()

	for {
		select {
		case <-q.ctx.Done():
			return
		case in, ok := <-q.work:
			if !ok {
				return
			}
			q.runHooks(in)
		}
	}
}

// runHooks invokes each level's teardown hook, most-derived first, each
// under its own panic recovery so one failing hook cannot suppress the
// others.
func (q *TeardownQueue) runHooks(in *Instance) {
	for _, level := range in.typ.mro {
		hook := level.teardownHook
		if hook == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					q.log.Warn("panic in teardown hook",
						zap.String("type", level.name),
						zap.Any("panic", r))
				}
			}()
			hook(in)
		}()
	}
}

// Enqueue submits an instance for teardown notification. Delivery is best
// effort: a stopped or saturated queue drops the notification, which the
// teardown contract permits.
func (q *TeardownQueue) Enqueue(in *Instance) {
	q.mu.Lock()
	if !q.started || q.shutdown {
		q.mu.Unlock()
		return
	}
	q.mu.Unlock()

	select {
	case q.work <- in:
	case <-q.ctx.Done():
	default:
		q.log.Warn("teardown queue full, dropping notification",
			zap.String("type", in.typ.name))
	}
}

// Shutdown stops accepting work and waits for queued hooks to finish
func (q *TeardownQueue) Shutdown() {
	q.mu.Lock()
	if !q.started || q.shutdown {
		q.mu.Unlock()
		return
	}
	q.shutdown = true
	q.mu.Unlock()

	close(q.work)
	q.wg.Wait()
}

// Stop halts the workers without draining the queue
func (q *TeardownQueue) Stop() {
	q.cancel()
	q.wg.Wait()
}

var (
	teardownOnce    sync.Once
	teardownDefault *TeardownQueue
)

// defaultTeardown lazily starts the process-wide teardown queue used by
// finalizer-scheduled notifications.
func defaultTeardown() *TeardownQueue {
	teardownOnce.Do(func() {
		teardownDefault = NewTeardownQueue(2, zap.NewNop())
		teardownDefault.Start()
	})
	return teardownDefault
}
