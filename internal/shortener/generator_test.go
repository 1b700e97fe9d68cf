package shortener_test

import (
	"regexp"
	"testing"

	"github.com/isacvale/fcc-timestamp/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexCode = regexp.MustCompile(`^[0-9a-f]{8}$`)

func TestUUIDGenerator(t *testing.T) {
	gen := shortener.UUIDGenerator(shortener.CodeLength)

	seen := make(map[string]bool)

	for range 100 {
		code := gen()

		assert.Regexp(t, hexCode, code)
		seen[code] = true
	}

	assert.Greater(t, len(seen), 95)
}

func TestUUIDGenerator_ClampsLength(t *testing.T) {
	assert.Len(t, shortener.UUIDGenerator(64)(), 32)
}

func TestNewCodeGenerator(t *testing.T) {
	t.Run("defaults to uuid", func(t *testing.T) {
		gen, err := shortener.NewCodeGenerator("", 0)

		require.NoError(t, err)
		assert.Regexp(t, hexCode, gen())
	})

	t.Run("nanoid honours the length", func(t *testing.T) {
		gen, err := shortener.NewCodeGenerator(shortener.GeneratorNanoID, 10)

		require.NoError(t, err)
		assert.Len(t, gen(), 10)
	})

	t.Run("rejects unknown generators", func(t *testing.T) {
		_, err := shortener.NewCodeGenerator("sequential", 8)

		assert.Error(t, err)
	})
}
