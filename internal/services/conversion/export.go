package conversion

import (
	"encoding/json"
	"strings"

	"github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/pkg/valueparse"
)

// Output is a normalized export object. It is one of *AdversaryExport,
// *EnvironmentExport or *Passthrough.
type Output interface {
	// Category reports which category produced the output
	Category() statblock.Category
}

// FeatureExport is a feature in export form
type FeatureExport struct {
	Name   string `json:"name"`
	Effect string `json:"effect"`
}

// Attack is an adversary's weapon attack in export form
type Attack struct {
	Name        string `json:"name"`
	AttackBonus int    `json:"attack_bonus"`
	Damage      string `json:"damage"`
	DamageType  string `json:"damage_type"`
	Range       string `json:"range"`
}

// AdversaryExport is the export form of an Adversaries record
type AdversaryExport struct {
	Name        string                  `json:"name"`
	HP          string                  `json:"hp"`
	Stress      string                  `json:"stress"`
	Thresholds  string                  `json:"thresholds"`
	Difficulty  string                  `json:"difficulty"`
	Experiences []valueparse.Experience `json:"experiences"`
	Attacks     []Attack                `json:"attacks"`
	Features    []FeatureExport         `json:"features"`
}

// Category implements Output
func (*AdversaryExport) Category() statblock.Category { return statblock.CategoryAdversaries }

// EnvironmentExport is the export form of an Environments record
type EnvironmentExport struct {
	Name        string          `json:"name"`
	Tier        int             `json:"tier"`
	Description string          `json:"description"`
	Impulses    []string        `json:"impulses"`
	Difficulty  string          `json:"difficulty"`
	Adversaries []string        `json:"adversaries"`
	Features    []FeatureExport `json:"features"`
}

// Category implements Output
func (*EnvironmentExport) Category() statblock.Category { return statblock.CategoryEnvironments }

// Passthrough is the export of a record whose category has no export form.
// It serializes to the record exactly as it was stored.
type Passthrough struct {
	*statblock.Other
}

// Category implements Output
func (p *Passthrough) Category() statblock.Category { return p.Other.Category }

// Export maps a record to the normalized export object for its category.
// Records of unmodeled categories come back unchanged inside a Passthrough.
func Export(record *statblock.Record) Output {
	e := &exporter{}
	statblock.Classify(record).Accept(e)
	return e.out
}

// MarshalOutput serializes an export object as indented JSON
func MarshalOutput(out Output) ([]byte, error) {
	return json.MarshalIndent(out, "", "  ")
}

type exporter struct {
	out Output
}

func (e *exporter) VisitAdversary(a *statblock.Adversary) {
	out := &AdversaryExport{
		Name:        a.Name,
		HP:          a.HP,
		Stress:      a.Stress,
		Thresholds:  a.Thresholds,
		Difficulty:  a.Difficulty,
		Experiences: []valueparse.Experience{},
		Attacks:     []Attack{},
		Features:    exportFeatures(a.Features),
	}

	for _, entry := range valueparse.SplitList(a.Experience) {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		out.Experiences = append(out.Experiences, valueparse.ParseExperienceEntry(entry))
	}

	if a.Weapon != "" {
		out.Attacks = append(out.Attacks, Attack{
			Name:        a.Weapon,
			AttackBonus: valueparse.ParseAttackBonus(a.Atk),
			Damage:      a.DamageDice,
			DamageType:  a.DamageType,
			Range:       a.Range,
		})
	}

	e.out = out
}

func (e *exporter) VisitEnvironment(env *statblock.Environment) {
	e.out = &EnvironmentExport{
		Name:        env.Name,
		Tier:        valueparse.CoerceTier(env.Tier),
		Description: env.Description,
		Impulses:    valueparse.SplitList(env.Impulses),
		Difficulty:  env.Difficulty,
		Adversaries: valueparse.SplitList(env.PotentialAdversaries),
		Features:    exportFeatures(env.Features),
	}
}

func (e *exporter) VisitOther(o *statblock.Other) {
	e.out = &Passthrough{Other: o}
}

func exportFeatures(features []statblock.Feature) []FeatureExport {
	out := make([]FeatureExport, 0, len(features))
	for _, f := range features {
		out = append(out, FeatureExport{
			Name:   f.Name.String(),
			Effect: f.Description.String(),
		})
	}
	return out
}

var _ statblock.Visitor = (*exporter)(nil)
