package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResponseCacheContract runs a suite of tests to verify that a ResponseCache
// implementation adheres to the defined interface contract.
func RunResponseCacheContract(t *testing.T, cache ResponseCache) {
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405.000000")

	t.Run("Miss", func(t *testing.T) {
		line, ok, err := cache.Get(ctx, "missing-"+key)
		require.NoError(t, err, "a miss is not an error")
		assert.False(t, ok)
		assert.Empty(t, line)
	})

	t.Run("Set and Get", func(t *testing.T) {
		want := `[{"analysis":[{"lex":"мама","gr":"S,f,anim=nom,sg"}],"text":"мама"}]`
		require.NoError(t, cache.Set(ctx, key, want))

		line, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, line)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, "[]"))

		line, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "[]", line)
	})

	t.Run("Empty Line", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key+"-empty", ""))

		line, ok, err := cache.Get(ctx, key+"-empty")
		require.NoError(t, err)
		assert.True(t, ok, "an empty response is still a hit")
		assert.Empty(t, line)
	})
}
