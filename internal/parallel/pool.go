package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned when work is submitted to a closed pool.
var ErrPoolClosed = errors.New("parallel: pool closed")

// Task is a unit of work executed by the pool, typically one image section.
type Task func() error

// WorkerPool runs tasks on a fixed set of goroutines.
//
// Each worker owns a queue. Tasks are dealt round-robin and an idle worker
// steals from the other queues, so one slow section does not hold back the rest.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	queues []chan func()

	done chan struct{}
	wg   sync.WaitGroup

	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			fn()
		default:
			if fn := p.steal(id); fn != nil {
				fn()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case fn := <-own:
				fn()
			}
		}
	}
}

func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case fn := <-queue:
			fn()
		default:
			return
		}
	}
}

// steal takes one queued item from another worker, or returns nil.
func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Run executes all tasks and waits for every one of them to finish.
// A panicking task is converted into an error. The returned error joins
// the errors of all failed tasks, in task order.
func (p *WorkerPool) Run(tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}
	if !p.running.Load() {
		return ErrPoolClosed
	}

	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	wg.Add(len(tasks))

	for i, task := range tasks {
		fn := func() {
			defer wg.Done()
			errs[i] = protect(i, task)
		}
		select {
		case p.queues[i%p.workers] <- fn:
		case <-p.done:
			errs[i] = ErrPoolClosed
			wg.Done()
		}
	}

	wg.Wait()
	return errors.Join(errs...)
}

func protect(i int, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %d panicked: %v", i, r)
		}
	}()
	return task()
}

// Close stops the workers after the queued work is done.
// Close is safe to call multiple times but must not race with Run.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
