package analysis

import (
	"runtime"
	"sync"
)

// ParallelFor runs fn over [0, n) split into contiguous chunks, one worker
// per chunk. Ranges below minChunk run inline; otherwise the worker count is
// capped so no chunk shrinks past minChunk.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := runtime.NumCPU()
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	if max := n / minChunk; workers > max {
		workers = max
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
