package blockinput

import (
	"sync"
	"testing"
)

func TestWithSerializesMutation(t *testing.T) {
	var g Guard
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.With(func() {
				counter++
			})
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("expected counter=50, got %d", counter)
	}
}

func TestWithReleasesOnPanic(t *testing.T) {
	var g Guard

	func() {
		defer func() { recover() }()
		g.With(func() {
			panic("hook failed mid-update")
		})
	}()

	// If the panic leaked the lock this blocks forever and the test times out.
	g.With(func() {})
}
