// Package cache stores JSON values in Redis. A Cache without a client misses on every
// read and ignores writes, so callers read through to storage.
//
// Each name carries a generation counter bumped by Invalidate. A reader takes the
// generation before loading from storage and writes back with SetIfGeneration, so a
// load that raced an invalidation is dropped instead of cached.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func New(rdb *redis.Client, ttl time.Duration, prefix string) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *Cache) Key(name string) string {
	return c.prefix + name
}

// Get decodes the value stored under name into dest and reports whether it was found.
func (c *Cache) Get(ctx context.Context, name string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	raw, err := c.rdb.Get(ctx, c.Key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, name string, value any) error {
	if !c.Enabled() {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.Key(name), raw, c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, names ...string) error {
	if !c.Enabled() || len(names) == 0 {
		return nil
	}
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = c.Key(n)
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// setIfGenerationScript writes KEYS[2] only while KEYS[1] still holds ARGV[1].
var setIfGenerationScript = redis.NewScript(`
local gen = redis.call("GET", KEYS[1]) or "0"
if gen ~= ARGV[1] then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call("SET", KEYS[2], ARGV[2], "PX", ttl)
else
	redis.call("SET", KEYS[2], ARGV[2])
end
return 1
`)

func (c *Cache) genKey(name string) string {
	return c.Key(name + ":gen")
}

// Generation returns the current generation of name. Unset counts as 0.
func (c *Cache) Generation(ctx context.Context, name string) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	gen, err := c.rdb.Get(ctx, c.genKey(name)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetIfGeneration stores value only if name was not invalidated since gen was read,
// and reports whether it did.
func (c *Cache) SetIfGeneration(ctx context.Context, name string, gen int64, value any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	stored, err := setIfGenerationScript.Run(ctx, c.rdb,
		[]string{c.genKey(name), c.Key(name)},
		strconv.FormatInt(gen, 10), raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// Invalidate bumps the generation of name and drops its value in one transaction.
func (c *Cache) Invalidate(ctx context.Context, name string) error {
	if !c.Enabled() {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey(name))
		pipe.Del(ctx, c.Key(name))
		return nil
	})
	return err
}
