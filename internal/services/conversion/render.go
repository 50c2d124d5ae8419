package conversion

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/pkg/valueparse"
)

// RenderText formats a record as a markdown-flavoured text block for display or copy.
//
// Every record gets the name line, the tier/type/category line, the description
// (when set) and the features section. Adversaries and Environments add their
// category block between the description and the features; other categories
// render without one. Missing fields render as empty strings.
func RenderText(record *statblock.Record) string {
	variant := statblock.Classify(record)
	base := variant.Base()

	r := &textRenderer{}
	r.header(base)
	variant.Accept(r)
	r.features(base.Features)

	return r.b.String()
}

type textRenderer struct {
	b strings.Builder
}

func (r *textRenderer) line(format string, args ...any) {
	fmt.Fprintf(&r.b, format, args...)
	r.b.WriteByte('\n')
}

func (r *textRenderer) header(c *statblock.Common) {
	r.line("**%s**", c.Name)
	r.line("*Tier %s %s %s*", c.Tier, c.Type, c.Category)
	if c.Description != "" {
		r.line("%s", c.Description)
	}
}

func (r *textRenderer) features(features []statblock.Feature) {
	r.line("**Features**")
	for _, f := range features {
		r.line("* **%s (%s):** %s", f.Name, f.Type, f.Description)
	}
}

func (r *textRenderer) VisitAdversary(a *statblock.Adversary) {
	if a.MotivesTactics != "" {
		r.line("**Motives & Tactics:** %s", a.MotivesTactics)
	}
	r.line("**Difficulty:** %s", a.Difficulty)
	r.line("**Thresholds:** %s | **HP:** %s | **Stress:** %s", a.Thresholds, a.HP, a.Stress)
	r.line("**%s** (%s, %s) - %s %s damage", a.Weapon, a.Atk, a.Range, a.DamageDice, a.DamageType)
	r.line("**Experience:** %s", joinList(a.Experience))
}

func (r *textRenderer) VisitEnvironment(e *statblock.Environment) {
	if !e.Impulses.IsZero() {
		r.line("**Impulses:** %s", joinList(e.Impulses))
	}
	r.line("**Difficulty:** %s", e.Difficulty)
	if !e.PotentialAdversaries.IsZero() {
		r.line("**Potential Adversaries:** %s", joinList(e.PotentialAdversaries))
	}
}

// VisitOther renders nothing: unmodeled categories only get the shared sections
func (r *textRenderer) VisitOther(*statblock.Other) {}

func joinList(l statblock.StringList) string {
	return strings.Join(valueparse.SplitList(l), ", ")
}

var _ statblock.Visitor = (*textRenderer)(nil)
