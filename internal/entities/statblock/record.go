// Package statblock defines the stored stat block record and its per-category variants
package statblock

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Category is the top-level kind of a stat block
type Category string

// Known categories
const (
	CategoryAdversaries  Category = "Adversaries"
	CategoryEnvironments Category = "Environments"
)

// String returns the category as stored
func (c Category) String() string {
	return string(c)
}

// Feature is a named ability attached to a stat block. Order is significant.
type Feature struct {
	Name        FlexString `json:"name"`
	Type        FlexString `json:"type"`
	Description FlexString `json:"description"`
}

// Record is the stored representation of one stat block.
// Fields that are not meaningful for the record's category are carried but ignored
// by every transform.
type Record struct {
	Name        FlexString `json:"name"`
	Category    Category   `json:"category"`
	Tier        FlexString `json:"tier"`
	Type        FlexString `json:"type"`
	Description FlexString `json:"description"`
	Features    []Feature  `json:"features"`

	// Adversaries
	MotivesTactics FlexString `json:"motives_tactics,omitempty"`
	Thresholds     FlexString `json:"thresholds,omitempty"`
	HP             FlexString `json:"hp,omitempty"`
	Stress         FlexString `json:"stress,omitempty"`
	Weapon         FlexString `json:"weapon,omitempty"`
	Atk            FlexString `json:"atk,omitempty"`
	Range          FlexString `json:"range,omitempty"`
	DamageDice     FlexString `json:"damage_dice,omitempty"`
	DamageType     FlexString `json:"damage_type,omitempty"`
	Experience     StringList `json:"experience,omitzero"`

	// Environments
	Impulses             StringList `json:"impulses,omitzero"`
	PotentialAdversaries StringList `json:"potential_adversaries,omitzero"`

	// Shared by both categories
	Difficulty FlexString `json:"difficulty,omitempty"`

	raw json.RawMessage
}

// recordAlias drops the Record methods so the default decoder can be reused
type recordAlias Record

// UnmarshalJSON decodes a record and keeps a copy of the original document
func (r *Record) UnmarshalJSON(data []byte) error {
	var alias recordAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*r = Record(alias)
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Raw returns the document the record was decoded from, or nil if it was built in code
func (r *Record) Raw() json.RawMessage {
	if r == nil {
		return nil
	}
	return r.raw
}

// FlexString is a scalar field that may be stored as a string, a number, a bool or null.
// Every form decodes to its display string; null decodes to "".
type FlexString string

// String returns the value
func (f FlexString) String() string {
	return string(f)
}

// UnmarshalJSON accepts any JSON scalar
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case '[', '{':
		// Composite values have no scalar display form
		*f = ""
	default:
		// numbers and booleans keep their literal text
		*f = FlexString(data)
	}
	return nil
}

// StringList is a field stored either as a comma-delimited string or as a list.
// The zero value is an absent field.
type StringList struct {
	Text  string
	Items []string
	// IsList reports whether the stored form was a JSON array
	IsList bool
}

// Text builds a StringList from its string form
func Text(s string) StringList {
	return StringList{Text: s}
}

// List builds a StringList from its list form
func List(items ...string) StringList {
	return StringList{Items: items, IsList: true}
}

// IsZero reports whether the field is absent or empty
func (l StringList) IsZero() bool {
	if l.IsList {
		return len(l.Items) == 0
	}
	return l.Text == ""
}

// String returns the display form; list items are joined with ", "
func (l StringList) String() string {
	if l.IsList {
		return strings.Join(l.Items, ", ")
	}
	return l.Text
}

// MarshalJSON writes the field back in the form it was stored in
func (l StringList) MarshalJSON() ([]byte, error) {
	if l.IsList {
		items := l.Items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(l.Text)
}

// UnmarshalJSON accepts a string, a list of scalars, or null
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*l = StringList{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '[' {
		var items []FlexString
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		l.IsList = true
		l.Items = make([]string, 0, len(items))
		for _, item := range items {
			l.Items = append(l.Items, item.String())
		}
		return nil
	}

	var s FlexString
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	l.Text = s.String()
	return nil
}
