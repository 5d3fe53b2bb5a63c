package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenreCacheKey(t *testing.T) {
	assert.Equal(t, "genre:42", genreCacheKey(42))
	assert.Equal(t, "genre:1", genreCacheKey(1))
}
