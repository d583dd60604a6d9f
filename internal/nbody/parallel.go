package nbody

import "sync"

// parallelRows runs fn once per worker index and waits for all of them.
// A single worker runs inline.
func parallelRows(workers int, fn func(worker int)) {
	if workers <= 1 {
		fn(0)
		return
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for k := 0; k < workers; k++ {
		go func(worker int) {
			defer wg.Done()
			fn(worker)
		}(k)
	}
	wg.Wait()
}
