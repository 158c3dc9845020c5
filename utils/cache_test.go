package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseCache_DisabledIsNoop(t *testing.T) {
	cache, err := NewCourseCache("", "", time.Minute)
	require.NoError(t, err)
	assert.Nil(t, cache)

	ctx := context.Background()
	cache.SetJSON(ctx, CatalogKey(), []string{"a"})
	var out []string
	assert.False(t, cache.GetJSON(ctx, CatalogKey(), &out))
	cache.Invalidate(ctx, 1, 2)
	assert.NoError(t, cache.Close())
}

func TestCourseCache_UnreachableFailsFast(t *testing.T) {
	_, err := NewCourseCache("127.0.0.1:1", "", time.Minute)
	assert.Error(t, err)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "elearn:course:catalog", CatalogKey())
	assert.Equal(t, "elearn:course:12", CourseKey(12))
}
