package observability

import "sync"

type observe struct {
	Kind   string
	Cache  string
	Source string
	Op     string
	Method string
	Route  string
	Status int
	DurMs  float64
}

// Inmem keeps the last max observations plus running cache counters.
// Good enough for tests and the debug endpoint.
type Inmem struct {
	mu     sync.Mutex
	last   []*observe
	max    int
	totals struct {
		hits, misses, errors map[string]int
	}
}

func NewInmem(max int) *Inmem {
	m := &Inmem{max: max}
	m.totals.hits = make(map[string]int)
	m.totals.misses = make(map[string]int)
	m.totals.errors = make(map[string]int)
	return m
}

func (m *Inmem) push(v *observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	for len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObserveLookup(cache, source string, durMs float64) {
	m.push(&observe{Kind: "lookup", Cache: cache, Source: source, DurMs: durMs})
}

func (m *Inmem) ObserveStoreWrite(op string, durMs float64) {
	m.push(&observe{Kind: "store_write", Op: op, DurMs: durMs})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(&observe{Kind: "http", Method: method, Route: route, Status: status, DurMs: durMs})
}

func (m *Inmem) IncCacheHit(cache string) {
	m.mu.Lock()
	m.totals.hits[cache]++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheMiss(cache string) {
	m.mu.Lock()
	m.totals.misses[cache]++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheError(cache string) {
	m.mu.Lock()
	m.totals.errors[cache]++
	m.mu.Unlock()
}

// CacheStats returns hit/miss counters for one cache.
func (m *Inmem) CacheStats(cache string) (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals.hits[cache], m.totals.misses[cache]
}
