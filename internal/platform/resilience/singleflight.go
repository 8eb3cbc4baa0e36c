package resilience

import "sync"

// SingleFlight deduplicates concurrent calls for the same key.
type SingleFlight struct {
	mu       sync.Mutex
	inFlight map[string]*flight
}

type flight struct {
	done  chan struct{}
	value any
	err   error
}

// Do runs fn once per key at a time; concurrent callers for the same key wait
// for the in-flight call and share its result. The third return reports
// whether the result was shared.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.inFlight == nil {
		g.inFlight = make(map[string]*flight)
	}

	if f, running := g.inFlight[key]; running {
		g.mu.Unlock()
		<-f.done
		return f.value, f.err, true
	}

	f := &flight{done: make(chan struct{})}
	g.inFlight[key] = f
	g.mu.Unlock()

	f.value, f.err = fn()

	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()
	close(f.done)

	return f.value, f.err, false
}
