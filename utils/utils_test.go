package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "password124"))
}

func TestParsePagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 20}, ParsePagination("", ""))
	assert.Equal(t, Pagination{Page: 3, Limit: 5}, ParsePagination("3", "5"))
	assert.Equal(t, Pagination{Page: 1, Limit: 100}, ParsePagination("-2", "500"))
	assert.Equal(t, 10, ParsePagination("3", "5").Offset())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@test.io", NormalizeEmail("  Ada@Test.IO "))
}
