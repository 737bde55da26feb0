package parser

import "sync/atomic"

var templateCache atomic.Pointer[TemplateCache]

func init() {
	templateCache.Store(NewTemplateCache())
}

// ParseCached parses a template through the process-wide template cache.
func ParseCached(template string) (*MessageTemplate, error) {
	cache := templateCache.Load()
	if cached, ok := cache.Get(template); ok {
		return cached, nil
	}

	parsed, err := Parse(template)
	if err != nil {
		return nil, err
	}
	cache.Put(template, parsed)
	return parsed, nil
}

// ConfigureCache replaces the process-wide template cache with one built
// from opts. Templates cached so far are dropped.
func ConfigureCache(opts ...CacheOption) {
	if old := templateCache.Swap(NewTemplateCache(opts...)); old != nil {
		old.Close()
	}
}

// ClearCache empties the process-wide template cache.
func ClearCache() {
	templateCache.Load().Clear()
}

// GetCacheStats returns the process-wide template cache statistics.
func GetCacheStats() CacheStats {
	return templateCache.Load().Stats()
}
