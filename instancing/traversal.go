package instancing

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Walker fans consumer work out across the sources of a Ready window using a
// bounded pool of reusable goroutines. Workers persist across walks, avoiding
// per-cycle goroutine spawn/teardown overhead, and idle out after a second
// when no walks are running.
//
// A Walker is safe for reuse across update cycles but a single walk must stay
// within one Ready window: do not Update or Release the instancer while a
// walk is in flight.
type Walker interface {
	// ForEachSource calls fn once per source, distributing sources across the
	// pool and blocking until all calls return. The first error returned by
	// any fn is the walk's error; the remaining sources are still visited.
	ForEachSource(inst Instancer, fn func(i int, s Source) error) error

	// Workers returns the configured worker count.
	Workers() int
}

type walker struct {
	pool    worker.DynamicWorkerPool
	workers int
	nextID  int
	mu      sync.Mutex
}

var _ Walker = &walker{}

// NewWalker creates a Walker with the given worker count. A count below one
// defaults to the machine's CPU count minus one, floored at one.
//
// Parameters:
//   - workers: pool size, or <= 0 for the default
//
// Returns:
//   - Walker: the reusable walker
func NewWalker(workers int) Walker {
	if workers <= 0 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	// Queue size of 256 accommodates typical source counts with headroom.
	return &walker{
		pool:    worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
		workers: workers,
	}
}

func (w *walker) Workers() int {
	return w.workers
}

func (w *walker) ForEachSource(inst Instancer, fn func(i int, s Source) error) error {
	if inst == nil || fn == nil {
		return nil
	}
	count := inst.SourceCount()
	if count == 0 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	w.mu.Lock()
	for i := 0; i < count; i++ {
		src := inst.Source(i)
		if src == nil {
			continue
		}
		wg.Add(1)
		idx := i // capture for closure
		id := w.nextID
		w.nextID++
		w.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				if err := fn(idx, src); err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
				}
				return nil, nil
			},
		})
	}
	w.mu.Unlock()
	wg.Wait()
	return firstErr
}
