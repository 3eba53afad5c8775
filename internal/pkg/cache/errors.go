package cache

import "github.com/pkg/errors"

// ErrNotFound is returned when a key misses the cache. Callers are expected to
// recompute and Set; a miss is never an application error.
var ErrNotFound = errors.New("cache: key not found")
