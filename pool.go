package evroute

import (
	"fmt"
	"sync"
)

// DefaultPoolSize is the worker count of the pool a Router creates when
// none is supplied.
const DefaultPoolSize = 100

// Pool runs asynchronous rule executions and the per-route join task.
// Implementations must accept submissions without blocking the caller for
// longer than an enqueue.
//
// The router treats the pool as a process-wide singleton: install a custom
// pool with WithPool before routing begins, never while routes are in
// flight.
type Pool interface {
	Submit(fn func())
}

// WorkerPool is the default Pool: a fixed number of workers draining an
// unbounded FIFO queue. The queue is unbounded so that a burst of async
// matches never blocks Route; back-pressure, if needed, belongs upstream.
type WorkerPool struct {
	logger Logger

	mu     sync.Mutex
	queue  []func()
	closed bool
	signal chan struct{}

	wg sync.WaitGroup
}

// NewWorkerPool starts size workers. Size values below one fall back to
// DefaultPoolSize.
func NewWorkerPool(size int, logger Logger) *WorkerPool {
	if size < 1 {
		size = DefaultPoolSize
	}
	if logger == nil {
		logger = defaultLogger()
	}
	p := &WorkerPool{
		logger: logger,
		queue:  make([]func(), 0, 64),
		signal: make(chan struct{}, 1),
	}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.work(fmt.Sprintf("evroute-worker-%d", i))
	}
	return p
}

// Submit enqueues fn for execution by the next free worker. Submissions
// after Close are dropped with a warning.
func (p *WorkerPool) Submit(fn func()) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.logger.Warn("evroute: submit on closed pool")
		return
	}
	p.queue = append(p.queue, fn)
	// Coalescing signal: buffer of one is enough to wake an idle worker.
	// Sent under the lock so Close cannot close the channel mid-send.
	select {
	case p.signal <- struct{}{}:
	default:
	}
	p.mu.Unlock()
}

// Close stops accepting work and blocks until the workers have drained the
// queue and exited.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.signal)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *WorkerPool) work(name string) {
	defer p.wg.Done()
	for {
		fn, ok := p.next()
		if !ok {
			return
		}
		p.run(name, fn)
	}
}

// next blocks until work is available. It returns false once the pool is
// closed and the queue is empty.
func (p *WorkerPool) next() (func(), bool) {
	for {
		p.mu.Lock()
		if len(p.queue) > 0 {
			fn := p.queue[0]
			p.queue[0] = nil // release for GC
			p.queue = p.queue[1:]
			if len(p.queue) == 0 {
				p.queue = p.queue[:0:cap(p.queue)]
			}
			p.mu.Unlock()
			return fn, true
		}
		closed := p.closed
		p.mu.Unlock()

		if closed {
			return nil, false
		}
		<-p.signal
	}
}

// run executes one unit of work. A panicking submission must not take the
// worker down with it.
func (p *WorkerPool) run(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("evroute: panic in pool submission", "worker", name, "panic", r)
		}
	}()
	fn()
}
