package source

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/zeebo/xxh3"
)

// BuildFunc derives a cached value from normalized source text.
type BuildFunc[T any] func(text string) (T, error)

// Entry is a cached value with the source state it was built from.
type Entry[T any] struct {
	Value   T
	Text    string
	ModTime time.Time
	ETag    string // Quoted fingerprint of Text
}

// Cache rebuilds a value from a source file only when the file changed.
// A changed modification time triggers a re-read; the value is rebuilt
// only if the content fingerprint differs too. Safe for concurrent use.
type Cache[T any] struct {
	path  string
	build BuildFunc[T]

	mu    sync.Mutex
	entry *Entry[T]
	hash  uint64
	size  int64
}

// NewCache creates a cache for the file at path.
func NewCache[T any](path string, build BuildFunc[T]) *Cache[T] {
	return &Cache[T]{path: path, build: build}
}

// Get returns the value for the current file contents. The returned entry
// must not be modified.
func (c *Cache[T]) Get() (*Entry[T], error) {
	info, err := os.Stat(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry != nil && info.ModTime().Equal(c.entry.ModTime) && info.Size() == c.size {
		return c.entry, nil
	}

	text, err := Read(c.path)
	if err != nil {
		return nil, err
	}

	hash := xxh3.HashString(text)
	if c.entry != nil && hash == c.hash {
		entry := *c.entry
		entry.ModTime = info.ModTime()
		c.entry, c.size = &entry, info.Size()
		return c.entry, nil
	}

	value, err := c.build(text)
	if err != nil {
		return nil, err
	}

	c.entry = &Entry[T]{
		Value:   value,
		Text:    text,
		ModTime: info.ModTime(),
		ETag:    Fingerprint(text),
	}
	c.hash, c.size = hash, info.Size()
	return c.entry, nil
}

// Invalidate drops the cached value.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}

// Fingerprint returns a quoted content hash usable as an HTTP ETag.
func Fingerprint(text string) string {
	return fmt.Sprintf(`"%016x"`, xxh3.HashString(text))
}
