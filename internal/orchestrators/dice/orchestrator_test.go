package dice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/errors"
	"github.com/KirkDiggler/statblock-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/statblock-api/internal/pkg/clock"
	"github.com/KirkDiggler/statblock-api/internal/pkg/idgen"
	rolllog "github.com/KirkDiggler/statblock-api/internal/repositories/roll_log"
	rolllogmock "github.com/KirkDiggler/statblock-api/internal/repositories/roll_log/mock"
	statblockrepo "github.com/KirkDiggler/statblock-api/internal/repositories/statblock"
	repomock "github.com/KirkDiggler/statblock-api/internal/repositories/statblock/mock"
	"github.com/KirkDiggler/statblock-api/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *repomock.MockRepository
	svc      dice.Service
	ctx      context.Context
	now      time.Time
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = repomock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	svc, err := dice.NewOrchestrator(&dice.Config{
		Repository:  s.mockRepo,
		IDGenerator: idgen.NewSequential("roll"),
		Clock:       &clock.Fixed{At: s.now},
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) expectGet(record *entity.Record) {
	s.mockRepo.EXPECT().
		Get(s.ctx, statblockrepo.GetInput{Name: record.Name.String()}).
		Return(&statblockrepo.GetOutput{Record: record}, nil)
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidatesConfig() {
	_, err := dice.NewOrchestrator(&dice.Config{})
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "IDGenerator")
}

func (s *OrchestratorTestSuite) TestRollAttack() {
	bandit := testutils.Bandit()
	bandit.DamageDice = "2d6+3"
	s.expectGet(bandit)

	out, err := s.svc.RollAttack(s.ctx, &dice.RollAttackInput{Name: testutils.BanditName})
	s.Require().NoError(err)

	roll := out.Roll
	s.Equal("roll_1", roll.RollID)
	s.Equal(entity.Key(testutils.BanditName), roll.EntityID)
	s.Equal("adversary", roll.EntityType)
	s.Equal("Daggers", roll.Weapon)
	s.Equal("Melee", roll.Range)
	s.Equal("phy", roll.DamageType)
	s.Equal(s.now, roll.RolledAt)

	s.Equal("1d20+1", roll.Attack.Notation)
	s.Require().Len(roll.Attack.Dice, 1)
	s.Equal(1, roll.Attack.Modifier)
	s.Equal(roll.Attack.Dice[0]+1, roll.Attack.Total)
	s.GreaterOrEqual(roll.Attack.Dice[0], 1)
	s.LessOrEqual(roll.Attack.Dice[0], 20)

	s.Equal("2d6+3", roll.Damage.Notation)
	s.Require().Len(roll.Damage.Dice, 2)
	s.Equal(3, roll.Damage.Modifier)
	s.Equal(roll.Damage.Dice[0]+roll.Damage.Dice[1]+3, roll.Damage.Total)
	for _, d := range roll.Damage.Dice {
		s.GreaterOrEqual(d, 1)
		s.LessOrEqual(d, 6)
	}
}

func (s *OrchestratorTestSuite) TestRollAttackBadBonusIsZero() {
	bandit := testutils.Bandit()
	bandit.Atk = "strong"
	s.expectGet(bandit)

	out, err := s.svc.RollAttack(s.ctx, &dice.RollAttackInput{Name: testutils.BanditName})
	s.Require().NoError(err)
	s.Equal("1d20", out.Roll.Attack.Notation)
	s.Equal(0, out.Roll.Attack.Modifier)
}

func (s *OrchestratorTestSuite) TestRollAttackFailures() {
	noWeapon := testutils.Bandit()
	noWeapon.Weapon = " "

	badDice := testutils.Bandit()
	badDice.DamageDice = "a handful"

	tooManyDice := testutils.Bandit()
	tooManyDice.DamageDice = "20000000d6"

	testCases := []struct {
		name   string
		record *entity.Record
		check  func(error) bool
	}{
		{name: "environment", record: testutils.Grove(), check: errors.IsFailedPrecondition},
		{name: "no weapon", record: noWeapon, check: errors.IsFailedPrecondition},
		{name: "malformed dice", record: badDice, check: errors.IsInvalidArgument},
		{name: "too many dice", record: tooManyDice, check: errors.IsInvalidArgument},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectGet(tc.record)

			_, err := s.svc.RollAttack(s.ctx, &dice.RollAttackInput{Name: tc.record.Name.String()})
			s.Require().Error(err)
			s.True(tc.check(err), "unexpected error: %v", err)
		})
	}
}

func (s *OrchestratorTestSuite) TestRollAttackNotFound() {
	s.mockRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("stat block not found"))

	_, err := s.svc.RollAttack(s.ctx, &dice.RollAttackInput{Name: "Nobody"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) newWithLog() (dice.Service, *rolllogmock.MockRepository) {
	mockLog := rolllogmock.NewMockRepository(s.ctrl)
	svc, err := dice.NewOrchestrator(&dice.Config{
		Repository:  s.mockRepo,
		IDGenerator: idgen.NewSequential("roll"),
		Clock:       &clock.Fixed{At: s.now},
		RollLog:     mockLog,
	})
	s.Require().NoError(err)
	return svc, mockLog
}

func (s *OrchestratorTestSuite) TestRollAttackRecordsRoll() {
	svc, mockLog := s.newWithLog()
	s.expectGet(testutils.Bandit())

	var recorded *dice.AttackRoll
	mockLog.EXPECT().
		Append(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input rolllog.AppendInput) (*rolllog.AppendOutput, error) {
			recorded = input.Roll
			return &rolllog.AppendOutput{Kept: 1}, nil
		})

	out, err := svc.RollAttack(s.ctx, &dice.RollAttackInput{Name: testutils.BanditName})
	s.Require().NoError(err)
	s.Same(out.Roll, recorded)
}

func (s *OrchestratorTestSuite) TestRollAttackSurvivesLogFailure() {
	svc, mockLog := s.newWithLog()
	s.expectGet(testutils.Bandit())
	mockLog.EXPECT().
		Append(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	out, err := svc.RollAttack(s.ctx, &dice.RollAttackInput{Name: testutils.BanditName})
	s.Require().NoError(err)
	s.Equal("roll_1", out.Roll.RollID)
}

func (s *OrchestratorTestSuite) TestListRolls() {
	svc, mockLog := s.newWithLog()
	s.expectGet(testutils.Bandit())

	rolls := []*dice.AttackRoll{{RollID: "roll_2"}, {RollID: "roll_1"}}
	mockLog.EXPECT().
		List(s.ctx, rolllog.ListInput{EntityID: entity.Key(testutils.BanditName), Limit: 5}).
		Return(&rolllog.ListOutput{Rolls: rolls}, nil)

	out, err := svc.ListRolls(s.ctx, &dice.ListRollsInput{Name: testutils.BanditName, Limit: 5})
	s.Require().NoError(err)
	s.Equal(rolls, out.Rolls)
}

func (s *OrchestratorTestSuite) TestRollsShareEntityID() {
	svc, mockLog := s.newWithLog()
	bandit := testutils.Bandit()
	bandit.Name = "  BANDIT Captain "
	s.mockRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(&statblockrepo.GetOutput{Record: bandit}, nil).
		Times(2)

	var appended string
	mockLog.EXPECT().
		Append(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input rolllog.AppendInput) (*rolllog.AppendOutput, error) {
			appended = input.Roll.EntityID
			return &rolllog.AppendOutput{}, nil
		})

	rolled, err := svc.RollAttack(s.ctx, &dice.RollAttackInput{Name: "bandit captain"})
	s.Require().NoError(err)
	s.Equal("bandit captain", rolled.Roll.EntityID)
	s.Equal(rolled.Roll.EntityID, appended)

	mockLog.EXPECT().
		List(s.ctx, rolllog.ListInput{EntityID: appended, Limit: 1}).
		Return(&rolllog.ListOutput{Rolls: []*dice.AttackRoll{rolled.Roll}}, nil)

	out, err := svc.ListRolls(s.ctx, &dice.ListRollsInput{Name: "Bandit Captain", Limit: 1})
	s.Require().NoError(err)
	s.Equal([]*dice.AttackRoll{rolled.Roll}, out.Rolls)
}

func (s *OrchestratorTestSuite) TestListRollsNotAdversary() {
	svc, _ := s.newWithLog()
	s.expectGet(testutils.Grove())

	_, err := svc.ListRolls(s.ctx, &dice.ListRollsInput{Name: testutils.GroveName})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestListRollsWithoutLog() {
	_, err := s.svc.ListRolls(s.ctx, &dice.ListRollsInput{Name: testutils.BanditName})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestListRollsNotFound() {
	svc, _ := s.newWithLog()
	s.mockRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("stat block not found"))

	_, err := svc.ListRolls(s.ctx, &dice.ListRollsInput{Name: "Nobody"})
	s.True(errors.IsNotFound(err))
}
