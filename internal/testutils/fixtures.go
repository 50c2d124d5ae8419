package testutils

import (
	"github.com/KirkDiggler/statblock-api/internal/entities/statblock"
)

// BanditName is the name of the adversary fixture
const BanditName = "Jagged Knife Bandit"

// Bandit returns an adversary with every field filled
func Bandit() *statblock.Record {
	return &statblock.Record{
		Name:           BanditName,
		Category:       statblock.CategoryAdversaries,
		Tier:           "1",
		Type:           "Standard",
		Description:    "A cunning criminal in a cloak.",
		MotivesTactics: "Escape, profit, throw smoke",
		Difficulty:     "12",
		Thresholds:     "8/14",
		HP:             "5",
		Stress:         "3",
		Weapon:         "Daggers",
		Atk:            "+1",
		Range:          "Melee",
		DamageDice:     "1d8+1",
		DamageType:     "phy",
		Experience:     statblock.List("Thief +2"),
		Features: []statblock.Feature{
			{Name: "Climber", Type: "Passive", Description: "Climbs as easily as it runs."},
		},
	}
}

// GroveName is the name of the environment fixture
const GroveName = "Abandoned Grove"

// Grove returns an environment with every field filled
func Grove() *statblock.Record {
	return &statblock.Record{
		Name:                 GroveName,
		Category:             statblock.CategoryEnvironments,
		Tier:                 "1",
		Type:                 "Exploration",
		Description:          "A former druidic grove lying fallow.",
		Impulses:             statblock.Text("Draw in the curious, echo the past"),
		Difficulty:           "11",
		PotentialAdversaries: statblock.List("Beasts", "Glass Snake"),
		Features: []statblock.Feature{
			{Name: "Overgrown Battlefield", Type: "Passive", Description: "There has been a battle here."},
		},
	}
}
