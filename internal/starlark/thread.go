package starlark

import (
	"log/slog"
	"sync"

	"go.starlark.net/starlark"
)

// DefaultMaxSteps bounds a single rule call so a runaway loop in a custom
// rule cannot stall a lint run.
const DefaultMaxSteps = 50_000_000

// ThreadPool hands out Starlark threads to concurrent callers. A thread is
// never shared: each Get returns one owned by the caller until Put.
type ThreadPool struct {
	mu       sync.Mutex
	threads  []*starlark.Thread
	maxSize  int
	maxSteps uint64
	logger   *slog.Logger
}

// NewThreadPool creates a pool keeping at most maxSize idle threads.
// Scripts calling print() log at debug level through logger.
func NewThreadPool(maxSize int, logger *slog.Logger) *ThreadPool {
	if maxSize <= 0 {
		maxSize = 10
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ThreadPool{
		threads:  make([]*starlark.Thread, 0, maxSize),
		maxSize:  maxSize,
		maxSteps: DefaultMaxSteps,
		logger:   logger,
	}
}

// Get retrieves an idle thread or creates a new one. The name shows up in
// Starlark backtraces.
func (p *ThreadPool) Get(name string) *starlark.Thread {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.threads); n > 0 {
		thread := p.threads[n-1]
		p.threads = p.threads[:n-1]
		thread.Name = name
		return thread
	}

	logger := p.logger
	thread := &starlark.Thread{
		Name: name,
		Print: func(th *starlark.Thread, msg string) {
			logger.Debug("custom rule output", slog.String("thread", th.Name), slog.String("msg", msg))
		},
	}
	return thread
}

// Put returns a thread for reuse. Threads beyond the pool size are dropped.
func (p *ThreadPool) Put(thread *starlark.Thread) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) < p.maxSize {
		thread.Name = ""
		p.threads = append(p.threads, thread)
	}
}

// Size returns the number of idle threads.
func (p *ThreadPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.threads)
}

// Call invokes fn on a pooled thread with a fresh step budget. A thread
// whose call failed may be cancelled, so it is not returned to the pool.
func (p *ThreadPool) Call(name string, fn starlark.Callable, args starlark.Tuple) (starlark.Value, error) {
	thread := p.Get(name)
	thread.Steps = 0
	thread.SetMaxExecutionSteps(p.maxSteps)

	v, err := starlark.Call(thread, fn, args, nil)
	if err != nil {
		return nil, err
	}
	p.Put(thread)
	return v, nil
}
