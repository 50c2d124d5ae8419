package statblock

import (
	"encoding/json"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Variant is a record viewed through its category. The set of variants is closed:
// Adversary, Environment and Other are the only implementations.
type Variant interface {
	// Accept dispatches to the visitor method for the concrete variant
	Accept(v Visitor)

	// Base returns the fields shared by every category
	Base() *Common

	sealed()
}

// Visitor handles each variant. A new category adds a method here, so every
// transform has to handle it before the module builds again.
type Visitor interface {
	VisitAdversary(a *Adversary)
	VisitEnvironment(e *Environment)
	VisitOther(o *Other)
}

// Common holds the fields every category carries
type Common struct {
	Name        string
	Category    Category
	Tier        string
	Type        string
	Description string
	Features    []Feature
}

// Adversary is a record in the Adversaries category
type Adversary struct {
	Common
	MotivesTactics string
	Difficulty     string
	Thresholds     string
	HP             string
	Stress         string
	Weapon         string
	Atk            string
	Range          string
	DamageDice     string
	DamageType     string
	Experience     StringList
}

// Environment is a record in the Environments category
type Environment struct {
	Common
	Impulses             StringList
	Difficulty           string
	PotentialAdversaries StringList
}

// Other is a record whose category has no dedicated variant. It keeps the
// record and the document it came from so it can be passed through unchanged.
type Other struct {
	Common
	Record *Record
}

// Accept implements Variant
func (a *Adversary) Accept(v Visitor) { v.VisitAdversary(a) }

// Accept implements Variant
func (e *Environment) Accept(v Visitor) { v.VisitEnvironment(e) }

// Accept implements Variant
func (o *Other) Accept(v Visitor) { v.VisitOther(o) }

// Base implements Variant
func (c *Common) Base() *Common { return c }

func (*Adversary) sealed()   {}
func (*Environment) sealed() {}
func (*Other) sealed()       {}

// GetID returns the lookup key of the adversary
func (a *Adversary) GetID() string {
	return Key(a.Name)
}

// GetType returns the entity type used by rpg-toolkit
func (a *Adversary) GetType() string {
	return "adversary"
}

// MarshalJSON writes the original document when there is one, otherwise the record
func (o *Other) MarshalJSON() ([]byte, error) {
	if raw := o.Record.Raw(); len(raw) > 0 {
		return raw, nil
	}
	return json.Marshal(o.Record)
}

// Classify returns the variant for a record's category. A nil record is
// treated as an empty record of no category.
func Classify(r *Record) Variant {
	if r == nil {
		r = &Record{}
	}

	common := Common{
		Name:        r.Name.String(),
		Category:    r.Category,
		Tier:        r.Tier.String(),
		Type:        r.Type.String(),
		Description: r.Description.String(),
		Features:    r.Features,
	}

	switch r.Category {
	case CategoryAdversaries:
		return &Adversary{
			Common:         common,
			MotivesTactics: r.MotivesTactics.String(),
			Difficulty:     r.Difficulty.String(),
			Thresholds:     r.Thresholds.String(),
			HP:             r.HP.String(),
			Stress:         r.Stress.String(),
			Weapon:         r.Weapon.String(),
			Atk:            r.Atk.String(),
			Range:          r.Range.String(),
			DamageDice:     r.DamageDice.String(),
			DamageType:     r.DamageType.String(),
			Experience:     r.Experience,
		}
	case CategoryEnvironments:
		return &Environment{
			Common:               common,
			Impulses:             r.Impulses,
			Difficulty:           r.Difficulty.String(),
			PotentialAdversaries: r.PotentialAdversaries,
		}
	default:
		return &Other{
			Common: common,
			Record: r,
		}
	}
}

// Compile-time checks
var (
	_ Variant     = (*Adversary)(nil)
	_ Variant     = (*Environment)(nil)
	_ Variant     = (*Other)(nil)
	_ core.Entity = (*Adversary)(nil)
)

// Encode returns the stored JSON form of a record. Records of an unknown
// category keep their original document; the others are written from their fields.
func Encode(r *Record) ([]byte, error) {
	if other, ok := Classify(r).(*Other); ok {
		return json.Marshal(other)
	}
	return json.Marshal(r)
}
