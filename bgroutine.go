package main

import (
	"log"
	"sync"
)

// startBackgroundRoutine runs workfn until the returned closer is
// called. The exit channel is closed, not signaled, so workfn may
// share it with any number of helpers.
func startBackgroundRoutine(name string, workfn func(<-chan struct{})) func() {
	log.Printf("Starting %s routine", name)
	closechan := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		workfn(closechan)
		wg.Done()
	}()
	return sync.OnceFunc(func() {
		log.Printf("Shutting down %s routine", name)
		close(closechan)
		wg.Wait()
		log.Printf("Routine %s done", name)
	})
}
