package words

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickAvoidsExcluded(t *testing.T) {
	bank := Bank{"animals": {"cat", "dog", "fox"}}
	p := NewProvider(bank)

	exclude := map[string]struct{}{"cat": {}, "dog": {}}
	for i := 0; i < 50; i++ {
		word, category := p.Pick(exclude)
		assert.Equal(t, "animals", category)
		assert.Equal(t, "fox", word)
	}
}

func TestPickResetsOnExhaustedPool(t *testing.T) {
	bank := Bank{"animals": {"cat", "dog"}}
	p := NewProvider(bank)

	exclude := map[string]struct{}{"cat": {}, "dog": {}}
	word, category := p.Pick(exclude)
	assert.Equal(t, "animals", category)
	assert.Contains(t, []string{"cat", "dog"}, word)
}

func TestPickFromCategory(t *testing.T) {
	p := NewProvider(DefaultBank)

	word, category := p.PickFrom("food", nil)
	assert.Equal(t, "food", category)
	assert.Contains(t, DefaultBank["food"], word)

	// unknown category falls back to any category
	word, category = p.PickFrom("nonsense", nil)
	require.Contains(t, DefaultBank, category)
	assert.Contains(t, DefaultBank[category], word)
}

func TestDefaultBankPickIsFromChosenCategory(t *testing.T) {
	p := NewProvider(DefaultBank)
	for i := 0; i < 100; i++ {
		word, category := p.Pick(nil)
		require.Contains(t, DefaultBank, category)
		assert.Contains(t, DefaultBank[category], word)
	}
}

func TestHint(t *testing.T) {
	p := NewProvider(DefaultBank)

	t.Run("no letters revealed", func(t *testing.T) {
		assert.Equal(t, "_ _ _", p.Hint("cat", 0))
	})

	t.Run("partial reveal keeps positions", func(t *testing.T) {
		hint := p.Hint("giraffe", 2)
		parts := strings.Split(hint, " ")
		require.Len(t, parts, 7)

		revealed := 0
		for i, part := range parts {
			if part != "_" {
				revealed++
				assert.Equal(t, string("giraffe"[i]), part)
			}
		}
		assert.Equal(t, 2, revealed)
	})

	t.Run("reveal beyond length exposes everything", func(t *testing.T) {
		assert.Equal(t, "c a t", p.Hint("cat", 10))
	})
}

func TestNormalizeAndMatch(t *testing.T) {
	assert.Equal(t, "cat", Normalize("  CaT "))

	assert.True(t, Match("  CAT ", "cat"))
	assert.True(t, Match("Ice Cream", "ice cream"))
	assert.False(t, Match("cats", "cat"))
	assert.False(t, Match("", "cat"))
}
