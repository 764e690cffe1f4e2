package batch

import (
	"runtime"
	"sync"
)

// workerCount returns the configured worker count or NumCPU.
func workerCount(configured int) int {
	n := runtime.NumCPU()
	if configured > 0 {
		n = configured
	}
	if n < 1 {
		n = 1
	}
	return n
}

// runIndexedParallel executes fn for indices [0,n) using a worker pool and
// returns results positioned by index.
func runIndexedParallel[T any](n, workers int, fn func(int) T) []T {
	out := make([]T, n)
	if n == 0 {
		return out
	}
	if workers > n {
		workers = n
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				out[idx] = fn(idx)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}
