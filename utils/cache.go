package utils

import (
	"context"
	"elearn/logger"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

const courseCachePrefix = "elearn:course:"

// CourseCache caches public catalog reads in Redis. A nil *CourseCache is a
// valid disabled cache: reads miss and writes are dropped.
type CourseCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewCourseCache connects to addr. An empty addr disables caching.
func NewCourseCache(addr, password string, ttl time.Duration) (*CourseCache, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, nil
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "redis ping")
	}
	return &CourseCache{rdb: rdb, ttl: ttl}, nil
}

func CatalogKey() string { return courseCachePrefix + "catalog" }

func CourseKey(courseID uint) string { return fmt.Sprintf("%s%d", courseCachePrefix, courseID) }

// GetJSON decodes the cached value into dst and reports whether it was found.
func (c *CourseCache) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			logger.Log.Warn("course cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		logger.Log.Warn("course cache decode failed", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CourseCache) SetJSON(ctx context.Context, key string, v interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Log.Warn("course cache write failed", "key", key, "error", err)
	}
}

// Invalidate drops the catalog and the listed course entries.
func (c *CourseCache) Invalidate(ctx context.Context, courseIDs ...uint) {
	if c == nil || c.rdb == nil {
		return
	}
	keys := []string{CatalogKey()}
	for _, id := range courseIDs {
		keys = append(keys, CourseKey(id))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("course cache invalidate failed", "keys", keys, "error", err)
	}
}

func (c *CourseCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
