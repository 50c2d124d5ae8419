// Package vocabulary holds the category → type vocabulary and the tier list
// used to populate stat block forms and search filters
package vocabulary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/statblock-api/internal/entities/statblock"
)

// Vocabulary lists the categories, their types and the selectable tiers
type Vocabulary struct {
	Categories []CategoryTypes `yaml:"categories" json:"-"`
	Tiers      []int           `yaml:"tiers" json:"tiers"`
}

// CategoryTypes is one category and the types valid inside it
type CategoryTypes struct {
	Name  statblock.Category `yaml:"name"`
	Types []string           `yaml:"types"`
}

// Default returns the built-in vocabulary
func Default() *Vocabulary {
	return &Vocabulary{
		Categories: []CategoryTypes{
			{
				Name:  statblock.CategoryEnvironments,
				Types: []string{"Exploration", "Traversal", "Social", "Event"},
			},
			{
				Name: statblock.CategoryAdversaries,
				Types: []string{
					"Solo", "Bruiser", "Leader", "Horde", "Ranged",
					"Skulk", "Standard", "Support", "Minion", "Social",
				},
			},
		},
		Tiers: []int{1, 2, 3, 4},
	}
}

// Load reads a vocabulary from a YAML file. An empty path returns the default.
// Tiers missing from the file fall back to the default tiers.
func Load(path string) (*Vocabulary, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}

	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	if len(v.Categories) == 0 {
		return nil, fmt.Errorf("vocabulary %s: no categories", path)
	}
	for i, c := range v.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("vocabulary %s: category %d has no name", path, i)
		}
	}
	if len(v.Tiers) == 0 {
		v.Tiers = Default().Tiers
	}

	return &v, nil
}

// Types returns the types of a category, or an empty list for an unknown category
func (v *Vocabulary) Types(category statblock.Category) []string {
	for _, c := range v.Categories {
		if c.Name == category {
			return append([]string{}, c.Types...)
		}
	}
	return []string{}
}

// CategoryMap returns every category keyed by name
func (v *Vocabulary) CategoryMap() map[statblock.Category][]string {
	out := make(map[statblock.Category][]string, len(v.Categories))
	for _, c := range v.Categories {
		out[c.Name] = append([]string{}, c.Types...)
	}
	return out
}
