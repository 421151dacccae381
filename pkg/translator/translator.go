// Package translator provides helpers around ports.Translator backends.
package translator

import (
	"context"
	"errors"
	"sync"

	"github.com/user/harview/pkg/ports"
)

// ErrDisabled is returned by the None backend.
var ErrDisabled = errors.New("translator: translation disabled")

// Func adapts a plain function to ports.Translator.
type Func func(ctx context.Context, text, target string) (string, error)

// Translate calls f.
func (f Func) Translate(ctx context.Context, text, target string) (string, error) {
	return f(ctx, text, target)
}

// None is a backend that always fails, so every label falls back to English.
type None struct{}

// Translate always returns ErrDisabled.
func (None) Translate(ctx context.Context, text, target string) (string, error) {
	return "", ErrDisabled
}

type cacheKey struct {
	text   string
	target string
}

// Cache memoizes successful translations per label and target language.
// Failures are passed through and not remembered, so a later call retries.
type Cache struct {
	next ports.Translator

	mu      sync.RWMutex
	entries map[cacheKey]string
	hits    int
	misses  int
}

// NewCache wraps next with an in-memory cache.
func NewCache(next ports.Translator) *Cache {
	return &Cache{
		next:    next,
		entries: make(map[cacheKey]string),
	}
}

// Translate returns a cached translation or asks the wrapped backend.
func (c *Cache) Translate(ctx context.Context, text, target string) (string, error) {
	key := cacheKey{text: text, target: target}

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return cached, nil
	}

	out, err := c.next.Translate(ctx, text, target)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
	if err != nil {
		return "", err
	}
	c.entries[key] = out
	return out, nil
}

// Stats returns the number of cache hits and misses.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Len returns the number of cached translations.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var (
	_ ports.Translator = Func(nil)
	_ ports.Translator = None{}
	_ ports.Translator = (*Cache)(nil)
)
