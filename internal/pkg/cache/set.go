package cache

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

func NewSet[T any](prefix string) *Set[T] {
	return &Set[T]{
		prefix: prefix + ":",
		c:      cache.New(cache.NoExpiration, time.Minute*10),
	}
}

// Set caches values of one type under a shared key prefix.
type Set[T any] struct {
	// m is a mutex for MutexGetSet for concurrent prevention
	m sync.Mutex

	prefix string

	c *cache.Cache
}

func (c *Set[T]) key(key string) string {
	return c.prefix + key
}

func (c *Set[T]) Get(key string, dest *T) error {
	result, ok := c.c.Get(c.key(key))
	if !ok {
		return ErrNotFound
	}
	*dest = result.(T)
	return nil
}

func (c *Set[T]) Set(key string, value T, expire time.Duration) error {
	c.c.Set(c.key(key), value, expire)
	return nil
}

// MutexGetSet gets value from cache and writes to dest, or if the key does not exist, it
// executes valueFunc to get cache value if the key still not exists when serially dispatched,
// sets value to cache and writes value to dest.
// The first return value means whether the value is calculated or not. True means calculated;
// False means got from cache.
func (c *Set[T]) MutexGetSet(key string, dest *T, valueFunc func() (T, error), expire time.Duration) (bool, error) {
	if err := c.Get(key, dest); err == nil {
		return false, nil
	}
	// onwards, cache key does not exist

	return true, c.slowMutexGetSet(key, dest, valueFunc, expire)
}

func (c *Set[T]) slowMutexGetSet(key string, dest *T, valueFunc func() (T, error), expire time.Duration) error {
	c.m.Lock()
	defer c.m.Unlock()
	if err := c.Get(key, dest); err == nil {
		return nil
	}

	value, err := valueFunc()
	if err != nil {
		return err
	}

	if err := c.Set(key, value, expire); err != nil {
		return err
	}

	*dest = value
	return nil
}

func (c *Set[T]) Delete(key string) error {
	c.c.Delete(c.key(key))
	return nil
}

func (c *Set[T]) Flush() error {
	c.c.Flush()
	return nil
}
