package common

import "time"

// CacheInterface abstracts the cache backend so handlers work with either
// the in-memory or the Redis implementation.
type CacheInterface interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)
	Close() error
}
