package vocabulary_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/vocabulary"
)

func TestDefaultTypes(t *testing.T) {
	v := vocabulary.Default()

	assert.Equal(t, []string{"Exploration", "Traversal", "Social", "Event"}, v.Types(statblock.CategoryEnvironments))
	assert.Contains(t, v.Types(statblock.CategoryAdversaries), "Minion")
	assert.Len(t, v.Types(statblock.CategoryAdversaries), 10)
	assert.Equal(t, []string{}, v.Types("Hazards"))
	assert.Equal(t, []int{1, 2, 3, 4}, v.Tiers)
}

func TestTypesReturnsCopy(t *testing.T) {
	v := vocabulary.Default()

	types := v.Types(statblock.CategoryEnvironments)
	types[0] = "changed"

	assert.Equal(t, "Exploration", v.Types(statblock.CategoryEnvironments)[0])
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty path uses default", func(t *testing.T) {
		v, err := vocabulary.Load("")
		require.NoError(t, err)
		assert.Equal(t, vocabulary.Default(), v)
	})

	t.Run("reads categories and tiers", func(t *testing.T) {
		path := filepath.Join(dir, "vocab.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - name: Adversaries
    types: [Solo, Minion]
  - name: Hazards
    types: [Trap]
tiers: [1, 2]
`), 0o600))

		v, err := vocabulary.Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Trap"}, v.Types("Hazards"))
		assert.Equal(t, []int{1, 2}, v.Tiers)
		assert.Equal(t, map[statblock.Category][]string{
			"Adversaries": {"Solo", "Minion"},
			"Hazards":     {"Trap"},
		}, v.CategoryMap())
	})

	t.Run("missing tiers fall back", func(t *testing.T) {
		path := filepath.Join(dir, "no-tiers.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories:\n  - name: Adversaries\n"), 0o600))

		v, err := vocabulary.Load(path)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4}, v.Tiers)
	})

	t.Run("no categories", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tiers: [1]\n"), 0o600))

		_, err := vocabulary.Load(path)
		assert.ErrorContains(t, err, "no categories")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := vocabulary.Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}
