package pattern

import (
	"container/list"
	"sync"

	"github.com/jhunt/go-log"
	"github.com/pkg/errors"
)

type cacheEntry struct {
	key     string
	pattern *Pattern
}

// NewCache creates a cache holding at most size compiled patterns. opts are
// passed to New on every miss.
func NewCache(size int, opts ...Option) *Cache {
	return &Cache{
		items: make(map[string]*list.Element, size),
		order: list.New(),
		size:  size,
		opts:  opts,
	}
}

// Cache keeps the most recently used compiled patterns, keyed by their
// expression, so routers can look patterns up by route instead of
// recompiling them.
type Cache struct {
	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List
	size  int
	opts  []Option
}

// Get returns the compiled pattern for strexp, compiling it on a miss.
// Compilation errors are not cached.
func (c *Cache) Get(strexp any) (*Pattern, error) {
	key, err := cacheKey(strexp)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToBack(elem)
		return elem.Value.(cacheEntry).pattern, nil
	}

	log.Debugf("pattern cache: compiling %s", key)
	pt, err := New(strexp, c.opts...)
	if err != nil {
		return nil, err
	}
	c.add(key, pt)
	return pt, nil
}

func (c *Cache) add(key string, pt *Pattern) {
	elem := c.order.PushBack(cacheEntry{key: key, pattern: pt})
	c.items[key] = elem
	if c.size > 0 && len(c.items) > c.size {
		front := c.order.Front()
		c.order.Remove(front)
		evicted := front.Value.(cacheEntry).key
		delete(c.items, evicted)
		log.Debugf("pattern cache: evicted %s", evicted)
	}
}

func (c *Cache) Has(strexp any) bool {
	key, err := cacheKey(strexp)
	if err != nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element, c.size)
	c.order.Init()
}

func cacheKey(strexp any) (string, error) {
	switch s := strexp.(type) {
	case string:
		return defaultStrexp(s).key(), nil
	case Strexp:
		return s.key(), nil
	case *Strexp:
		if s != nil {
			return s.key(), nil
		}
	}
	return "", errors.Wrapf(ErrUnsupportedExpression, "%T", strexp)
}
