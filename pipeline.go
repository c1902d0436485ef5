package prism

import "sync"

// task splits data in contiguous chunks, one goroutine per chunk, and waits for all of them.
// Fewer than one worker runs on DEFAULT_WORKERS.
func task[T any](workersCount int, data []T, fn func(data T)) {
	workersCount = max(DEFAULT_WORKERS, workersCount)
	dataSize := len(data)
	if dataSize == 0 {
		return
	}
	if workersCount == 1 {
		for _, d := range data {
			fn(d)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for start := 0; start < dataSize; start += chunkSize {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(data[i])
			}
		}(start, min(start+chunkSize, dataSize))
	}
	wg.Wait()
}
