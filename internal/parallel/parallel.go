// Package parallel runs data-parallel loops over index ranges on a bounded set of workers.
package parallel

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// defaultWorkers is the worker count used when no WithWorkers option is given.
// Zero means GOMAXPROCS.
var defaultWorkers atomic.Int32

var forceSingleThread atomic.Bool

// SetDefaultWorkers sets the worker count used by For. n <= 0 restores GOMAXPROCS.
func SetDefaultWorkers(n int) {
	if n < 0 {
		n = 0
	}
	defaultWorkers.Store(int32(n))
}

// SetForceSingleThread makes every For call run sequentially, whatever its options.
func SetForceSingleThread(enabled bool) {
	forceSingleThread.Store(enabled)
}

// DefaultWorkers returns the worker count For uses when none is given.
func DefaultWorkers() int {
	if n := int(defaultWorkers.Load()); n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

type options struct {
	workers      int
	singleThread bool
	unbalanced   bool
}

// Option configures a For call.
type Option func(*options)

// WithWorkers limits the number of concurrent workers.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// SingleThread forces sequential execution in index order when enabled.
func SingleThread(enabled bool) Option {
	return func(o *options) { o.singleThread = enabled }
}

// Unbalanced hands out one index at a time instead of contiguous blocks. Use it when
// per-index cost varies a lot, for example one whole mesh layer per index.
func Unbalanced() Option {
	return func(o *options) { o.unbalanced = true }
}

// For calls fn(i) for every i in [0, n) and returns once all calls have finished.
// Each index is visited exactly once, so fn may write to per-index slots without locking.
func For(n int, fn func(i int), opts ...Option) {
	if n <= 0 {
		return
	}
	o := options{workers: DefaultWorkers()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = DefaultWorkers()
	}
	if o.singleThread || forceSingleThread.Load() || o.workers == 1 || n == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	blockSize := 1
	if !o.unbalanced {
		// a few blocks per worker keeps stragglers short
		blockSize = max(1, n/(o.workers*4))
	}
	numBlocks := (n + blockSize - 1) / blockSize

	var g errgroup.Group
	g.SetLimit(o.workers)
	for b := 0; b < numBlocks; b++ {
		start := b * blockSize
		end := min(start+blockSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	// fn cannot fail, so Wait only joins the workers
	_ = g.Wait()
}
