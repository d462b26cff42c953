package cache

import (
	"context"
	"time"
)

// Cache is the read-through layer in front of the livre table.
// Implementations: RedisCache, Nop.
type Cache interface {
	// Get decodes the cached value into dest.
	// found is false on a miss, in which case dest is untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}

// Nop is a Cache that never stores anything. Every Get is a miss.
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) (bool, error)        { return false, nil }
func (Nop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Nop) Delete(context.Context, ...string) error                       { return nil }
func (Nop) Ping(context.Context) error                                    { return nil }
