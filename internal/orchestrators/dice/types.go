package dice

import (
	"github.com/KirkDiggler/statblock-api/internal/entities/roll"
)

// AttackRoll is one attack with its damage
type AttackRoll = roll.Attack

// DiceRoll is a notation with the dice rolled for it
type DiceRoll = roll.Dice

// RollAttackInput defines the request for an adversary's attack roll
type RollAttackInput struct {
	Name string
}

// RollAttackOutput defines the response for an adversary's attack roll
type RollAttackOutput struct {
	Roll *AttackRoll
}

// ListRollsInput defines the request for an adversary's recent rolls
type ListRollsInput struct {
	Name string
	// Limit caps the rolls returned; zero returns every kept roll
	Limit int
}

// ListRollsOutput holds the rolls newest first
type ListRollsOutput struct {
	Rolls []*AttackRoll
}
