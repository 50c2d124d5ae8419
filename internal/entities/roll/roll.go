// Package roll holds the results of dice rolled for stat blocks
package roll

import "time"

// Attack is one attack with its damage
type Attack struct {
	RollID string `json:"roll_id"`
	// EntityID and EntityType identify the adversary as an rpg-toolkit entity
	EntityID   string    `json:"entity_id"`
	EntityType string    `json:"entity_type"`
	Name       string    `json:"name"`
	Weapon     string    `json:"weapon"`
	Range      string    `json:"range"`
	Attack     Dice      `json:"attack"`
	Damage     Dice      `json:"damage"`
	DamageType string    `json:"damage_type"`
	RolledAt   time.Time `json:"rolled_at"`
}

// Dice is a notation with the dice rolled for it
type Dice struct {
	Notation string `json:"notation"`
	Dice     []int  `json:"dice"`
	Modifier int    `json:"modifier"`
	Total    int    `json:"total"`
}
