package observability

// Metrics receives timing events from the services and the HTTP layer.
// Implementations must be safe for concurrent use.
type Metrics interface {
	// ObserveLookup records a read, tagged with the cache name the read went
	// through and where the value came from ("cache" or "db").
	ObserveLookup(cache, source string, durMs float64)
	ObserveStoreWrite(op string, durMs float64)
	ObserveHTTP(method, route string, status int, durMs float64)
	IncCacheHit(cache string)
	IncCacheMiss(cache string)
	IncCacheError(cache string)
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveLookup(string, string, float64)    {}
func (Noop) ObserveStoreWrite(string, float64)        {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) IncCacheHit(string)                       {}
func (Noop) IncCacheMiss(string)                      {}
func (Noop) IncCacheError(string)                     {}
