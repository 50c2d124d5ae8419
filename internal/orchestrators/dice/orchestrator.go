// Package dice implements attack rolls for stored adversaries
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/statblock-api/internal/orchestrators/dice Service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/errors"
	"github.com/KirkDiggler/statblock-api/internal/pkg/clock"
	"github.com/KirkDiggler/statblock-api/internal/pkg/idgen"
	"github.com/KirkDiggler/statblock-api/internal/pkg/valueparse"
	rolllog "github.com/KirkDiggler/statblock-api/internal/repositories/roll_log"
	statblockrepo "github.com/KirkDiggler/statblock-api/internal/repositories/statblock"
)

// AttackNotation is the die rolled for every attack before the bonus
const AttackNotation = "1d20"

// Damage notation limits
const (
	MaxDiceCount   = 100
	MaxDieSize     = 1000
	MaxDamageBonus = 1000
)

var (
	// XdY with an optional flat modifier, e.g. "1d8", "2d6+3", "1d10 - 1"
	damageNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)\s*(?:([+-])\s*(\d+))?$`)
)

// Service defines the dice operations
type Service interface {
	RollAttack(ctx context.Context, input *RollAttackInput) (*RollAttackOutput, error)
	ListRolls(ctx context.Context, input *ListRollsInput) (*ListRollsOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	Repository  statblockrepo.Repository
	IDGenerator idgen.Generator
	Clock       clock.Clock
	// RollLog keeps roll history; without it rolls are not recorded
	RollLog rolllog.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateNotNil("Repository", c.Repository != nil, vb)
	errors.ValidateNotNil("IDGenerator", c.IDGenerator != nil, vb)

	return vb.Build()
}

type orchestrator struct {
	repo  statblockrepo.Repository
	idGen idgen.Generator
	clock clock.Clock
	log   rolllog.Repository
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		repo:  cfg.Repository,
		idGen: cfg.IDGenerator,
		clock: c,
		log:   cfg.RollLog,
	}, nil
}

// RollAttack rolls 1d20 plus the attack bonus and the weapon's damage dice
// for the named adversary
func (o *orchestrator) RollAttack(ctx context.Context, input *RollAttackInput) (*RollAttackOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	adversary, err := o.getAdversary(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(adversary.Weapon) == "" {
		return nil, errors.FailedPreconditionf("%s has no weapon", adversary.Name)
	}

	count, size, modifier, err := parseDamageNotation(adversary.DamageDice)
	if err != nil {
		return nil, err
	}

	attackDice, err := rollDice(1, 20)
	if err != nil {
		return nil, err
	}
	bonus := valueparse.ParseAttackBonus(adversary.Atk)

	damageDice, err := rollDice(count, size)
	if err != nil {
		return nil, err
	}

	var target core.Entity = adversary
	roll := &AttackRoll{
		RollID:     o.idGen.Generate(),
		EntityID:   target.GetID(),
		EntityType: target.GetType(),
		Name:       adversary.Name,
		Weapon:     adversary.Weapon,
		Range:      adversary.Range,
		Attack: DiceRoll{
			Notation: withModifier(AttackNotation, bonus),
			Dice:     attackDice,
			Modifier: bonus,
			Total:    sum(attackDice) + bonus,
		},
		Damage: DiceRoll{
			Notation: strings.TrimSpace(adversary.DamageDice),
			Dice:     damageDice,
			Modifier: modifier,
			Total:    sum(damageDice) + modifier,
		},
		DamageType: adversary.DamageType,
		RolledAt:   o.clock.Now(),
	}

	slog.InfoContext(ctx, "attack rolled",
		"roll_id", roll.RollID,
		"entity_id", roll.EntityID,
		"weapon", roll.Weapon,
		"attack_total", roll.Attack.Total,
		"damage_total", roll.Damage.Total)

	if o.log != nil {
		// A roll that cannot be recorded is still a valid roll
		if _, err := o.log.Append(ctx, rolllog.AppendInput{Roll: roll}); err != nil {
			slog.WarnContext(ctx, "failed to record roll", "roll_id", roll.RollID, "error", err)
		}
	}

	return &RollAttackOutput{Roll: roll}, nil
}

// ListRolls returns the recorded rolls of the named adversary, newest first
func (o *orchestrator) ListRolls(ctx context.Context, input *ListRollsInput) (*ListRollsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if o.log == nil {
		return nil, errors.FailedPrecondition("roll history is not enabled")
	}

	adversary, err := o.getAdversary(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	var target core.Entity = adversary
	listed, err := o.log.List(ctx, rolllog.ListInput{
		EntityID: target.GetID(),
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rolls")
	}

	return &ListRollsOutput{Rolls: listed.Rolls}, nil
}

// getAdversary loads the named record and requires it to be an adversary.
// Rolls are logged and listed under the adversary's entity ID.
func (o *orchestrator) getAdversary(ctx context.Context, name string) (*entity.Adversary, error) {
	got, err := o.repo.Get(ctx, statblockrepo.GetInput{Name: name})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get stat block %q", name)
	}

	adversary, ok := entity.Classify(got.Record).(*entity.Adversary)
	if !ok {
		return nil, errors.FailedPreconditionf("%s is not an adversary", name).
			WithMeta("category", got.Record.Category.String())
	}
	return adversary, nil
}

// parseDamageNotation parses XdY[+/-Z]
func parseDamageNotation(notation string) (count, size, modifier int, err error) {
	matches := damageNotationRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(notation)))
	if matches == nil {
		return 0, 0, 0, errors.InvalidArgumentf("invalid damage dice %q (expected format: XdY+Z)", notation)
	}

	count, _ = strconv.Atoi(matches[1])
	size, _ = strconv.Atoi(matches[2])
	if count <= 0 || size <= 0 {
		return 0, 0, 0, errors.InvalidArgumentf("dice count and size must be positive: %q", notation)
	}
	if count > MaxDiceCount || size > MaxDieSize {
		return 0, 0, 0, errors.InvalidArgumentf("damage dice %q exceed %dd%d", notation, MaxDiceCount, MaxDieSize)
	}

	if matches[4] != "" {
		modifier, _ = strconv.Atoi(matches[4])
		if modifier > MaxDamageBonus {
			return 0, 0, 0, errors.InvalidArgumentf("damage modifier in %q exceeds %d", notation, MaxDamageBonus)
		}
		if matches[3] == "-" {
			modifier = -modifier
		}
	}

	return count, size, modifier, nil
}

// rollDice rolls with rpg-toolkit and returns the individual dice
func rollDice(count, size int) ([]int, error) {
	roll, err := dice.NewRoll(count, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dice roll")
	}

	total := int(roll.GetValue())

	// The description reads like "+2d6[3,4]=7"; the toolkit does not expose dice directly
	description := roll.GetDescription()
	results := make([]int, 0, count)
	start := strings.Index(description, "[")
	end := strings.Index(description, "]")
	if start >= 0 && end > start {
		for _, part := range strings.Split(description[start+1:end], ",") {
			if d, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				results = append(results, d)
			}
		}
	}
	if len(results) != count || sum(results) != total {
		return nil, errors.Internalf("unexpected dice description %q", description)
	}

	return results, nil
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func withModifier(notation string, modifier int) string {
	switch {
	case modifier > 0:
		return fmt.Sprintf("%s+%d", notation, modifier)
	case modifier < 0:
		return fmt.Sprintf("%s%d", notation, modifier)
	default:
		return notation
	}
}
