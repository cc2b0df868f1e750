package formula

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rxtech-lab/argo-formula/internal/indicator"
	"github.com/rxtech-lab/argo-formula/internal/types"
)

// CacheObserver receives cache events, typically to feed metrics.
type CacheObserver interface {
	CacheHit()
	CacheMiss()
	CompileFailed()
}

// DefaultMaxEntries bounds a cache created without WithMaxEntries.
const DefaultMaxEntries = 1024

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithObserver attaches an observer to the cache.
func WithObserver(observer CacheObserver) CacheOption {
	return func(c *Cache) {
		c.observer = observer
	}
}

// WithMaxEntries caps the number of cached formulas. The least recently used
// entry is evicted first. Non-positive values keep DefaultMaxEntries.
func WithMaxEntries(n int) CacheOption {
	return func(c *Cache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// Cache memoizes compiled formulas by trimmed source text.
// It is owned by one session; there is no process-wide cache.
// Concurrent first compiles of the same text keep the first stored entry.
// The cache holds at most its configured number of entries.
type Cache struct {
	registry   indicator.FunctionRegistry
	observer   CacheObserver
	maxEntries int
	entries    *lru.Cache[string, *CompiledFormula]
}

// NewCache creates an empty cache compiling against registry.
func NewCache(registry indicator.FunctionRegistry, opts ...CacheOption) *Cache {
	if registry == nil {
		registry = indicator.NewDefaultFunctionRegistry()
	}

	c := &Cache{
		registry:   registry,
		maxEntries: DefaultMaxEntries,
	}

	for _, opt := range opts {
		opt(c)
	}

	// lru.New only fails for a non-positive size, which WithMaxEntries rules out.
	entries, err := lru.New[string, *CompiledFormula](c.maxEntries)
	if err != nil {
		panic(err)
	}

	c.entries = entries

	return c
}

// Compile returns the cached formula for source, parsing it on first use.
// Failed compiles are not cached.
func (c *Cache) Compile(source string) (*CompiledFormula, error) {
	key := strings.TrimSpace(source)

	if compiled, ok := c.entries.Get(key); ok {
		c.notify(CacheObserver.CacheHit)

		return compiled, nil
	}

	c.notify(CacheObserver.CacheMiss)

	compiled, err := Compile(source, c.registry)
	if err != nil {
		c.notify(CacheObserver.CompileFailed)

		return nil, err
	}

	if existing, ok, _ := c.entries.PeekOrAdd(key, compiled); ok {
		return existing, nil
	}

	return compiled, nil
}

// Evaluate compiles source through the cache and evaluates it against ctx.
func (c *Cache) Evaluate(source string, ctx *EvaluationContext) (types.Series, error) {
	compiled, err := c.Compile(source)
	if err != nil {
		return nil, err
	}

	return compiled.Evaluate(ctx)
}

// Contains reports whether source has already been compiled.
func (c *Cache) Contains(source string) bool {
	return c.entries.Contains(strings.TrimSpace(source))
}

// Len returns the number of cached formulas.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Clear drops every cached formula.
func (c *Cache) Clear() {
	c.entries.Purge()
}

func (c *Cache) notify(event func(CacheObserver)) {
	if c.observer != nil {
		event(c.observer)
	}
}
