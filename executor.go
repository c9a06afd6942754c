// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import (
	"context"
	"sync"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"github.com/go-logr/logr"
)

// defaultQueueCapacity is the bounded capacity of the ready ring.
// Jobs beyond it spill into an unbounded slice, so the capacity only
// decides how much of the queue stays on the lock-free fast path.
const defaultQueueCapacity = 64

// An Executor is a single-threaded event loop that drives tasks.
//
// All task code, continuations and classification run on the goroutine that
// calls [Executor.Run] (the loop goroutine). External operations may complete
// on any goroutine; their resumptions are queued and run on the loop
// goroutine on a later turn, never re-entrantly.
//
// The ready queue is a bounded SPSC ring from lfq. The loop goroutine is its
// only consumer; producers are serialized by mu. When the ring reports
// iox.ErrWouldBlock, jobs go to spill, and keep going there until the
// consumer has taken it, which preserves FIFO order.
type Executor struct {
	ready   lfq.SPSC[func()]
	mu      sync.Mutex
	spill   []func()
	backlog []func()
	pending int
	log     logr.Logger
}

// NewExecutor creates an [Executor].
func NewExecutor(opts ...Option) *Executor {
	cfg := config{
		log:      logr.Discard(),
		capacity: defaultQueueCapacity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	e := &Executor{log: cfg.log}
	e.ready.Init(cfg.capacity)
	return e
}

// Go starts driving src with k as its final continuation. k may be nil.
//
// Go must be called on the loop goroutine: before Run, or from task code or
// continuations. The first step runs synchronously, so usage errors panic
// from Go itself.
func (e *Executor) Go(src Source, k Continuation) {
	e.start("run", taskOf(src), k)
}

// Spawn queues src to be started on the loop goroutine.
//
// Spawn is safe for concurrent use. Usage errors panic from Run.
// Tasks spawned after Run returned are started by the next Run.
func (e *Executor) Spawn(src Source, k Continuation) {
	e.post(func() {
		e.Go(src, k)
	})
}

// Run runs queued jobs until the queue is empty and no suspension token is
// outstanding.
//
// A wrapped operation that never calls back keeps its token outstanding,
// and Run keeps waiting for it. Use [Executor.RunContext] to bound the wait.
//
// Run must not be called twice at the same time.
func (e *Executor) Run() {
	_ = e.RunContext(context.Background())
}

// RunContext is like Run, but gives up waiting for outstanding tokens when
// ctx is done, returning ctx.Err(). Tasks still suspended stay suspended and
// can be finished by a later call.
func (e *Executor) RunContext(ctx context.Context) error {
	var bo iox.Backoff
	for {
		if job, ok := e.next(); ok {
			job()
			bo.Reset()
			continue
		}
		if e.pending == 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		bo.Wait()
	}
}

// Pending returns the number of outstanding suspension tokens.
// Call it on the loop goroutine.
func (e *Executor) Pending() int {
	return e.pending
}

// post queues job. Safe for concurrent use.
func (e *Executor) post(job func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.spill) == 0 {
		if err := e.ready.Enqueue(&job); err == nil {
			return
		}
	}
	e.spill = append(e.spill, job)
}

// next pops the oldest queued job. Loop goroutine only.
func (e *Executor) next() (func(), bool) {
	for {
		if len(e.backlog) > 0 {
			job := e.backlog[0]
			e.backlog[0] = nil
			e.backlog = e.backlog[1:]
			return job, true
		}
		if job, err := e.ready.Dequeue(); err == nil {
			return job, true
		}
		e.mu.Lock()
		e.backlog, e.spill = e.spill, nil
		e.mu.Unlock()
		if len(e.backlog) == 0 {
			return nil, false
		}
	}
}
