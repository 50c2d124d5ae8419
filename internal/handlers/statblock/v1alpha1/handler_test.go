package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/errors"
	"github.com/KirkDiggler/statblock-api/internal/handlers/statblock/v1alpha1"
	"github.com/KirkDiggler/statblock-api/internal/orchestrators/dice"
	dicemock "github.com/KirkDiggler/statblock-api/internal/orchestrators/dice/mock"
	"github.com/KirkDiggler/statblock-api/internal/orchestrators/statblock"
	statblockmock "github.com/KirkDiggler/statblock-api/internal/orchestrators/statblock/mock"
	"github.com/KirkDiggler/statblock-api/internal/services/conversion"
	"github.com/KirkDiggler/statblock-api/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockStatblock *statblockmock.MockService
	mockDice      *dicemock.MockService
	client        v1alpha1.StatblockServiceClient
	ctx           context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStatblock = statblockmock.NewMockService(s.ctrl)
	s.mockDice = dicemock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		StatblockService: s.mockStatblock,
		DiceService:      s.mockDice,
	})
	s.Require().NoError(err)

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	v1alpha1.RegisterStatblockServiceServer(srv, handler)
	go func() { _ = srv.Serve(lis) }()
	s.T().Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = conn.Close() })

	s.client = v1alpha1.NewStatblockServiceClient(conn)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) TestNewHandlerValidatesConfig() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestGetStatblock() {
	s.mockStatblock.EXPECT().
		GetStatblock(gomock.Any(), &statblock.GetStatblockInput{Name: testutils.BanditName}).
		Return(&statblock.GetStatblockOutput{Record: testutils.Bandit()}, nil)

	resp, err := s.client.GetStatblock(s.ctx, wrapperspb.String(testutils.BanditName))
	s.Require().NoError(err)

	var got entity.Record
	s.Require().NoError(v1alpha1.DecodeStruct(resp, &got))
	s.Equal(testutils.Bandit().Weapon, got.Weapon)
	s.Equal(testutils.Bandit().Experience, got.Experience)
}

func (s *HandlerTestSuite) TestGetStatblockNotFound() {
	s.mockStatblock.EXPECT().
		GetStatblock(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("stat block not found").WithMeta("name", "Nobody"))

	_, err := s.client.GetStatblock(s.ctx, wrapperspb.String("Nobody"))
	s.Equal(codes.NotFound, status.Code(err))

	back := errors.FromGRPCError(err)
	s.True(errors.IsNotFound(back))
	s.Equal("Nobody", errors.GetMeta(back)["name"])
}

func (s *HandlerTestSuite) TestSearchStatblocks() {
	s.mockStatblock.EXPECT().
		SearchStatblocks(gomock.Any(), &statblock.SearchStatblocksInput{Tier: "2", Text: "ogre"}).
		Return(&statblock.SearchStatblocksOutput{Results: []statblock.Summary{{Name: "Ogre", Tier: "2"}}}, nil)

	req, err := structpb.NewStruct(map[string]any{"tier": 2, "text": "ogre"})
	s.Require().NoError(err)

	resp, err := s.client.SearchStatblocks(s.ctx, req)
	s.Require().NoError(err)

	results := resp.GetFields()["results"].GetListValue().GetValues()
	s.Require().Len(results, 1)
	s.Equal("Ogre", results[0].GetStructValue().GetFields()["name"].GetStringValue())
}

func (s *HandlerTestSuite) TestSaveStatblock() {
	s.mockStatblock.EXPECT().
		SaveStatblock(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *statblock.SaveStatblockInput) (*statblock.SaveStatblockOutput, error) {
			s.Equal(entity.FlexString("Goblin"), in.Record.Name)
			s.Equal(entity.List("Sneak +2"), in.Record.Experience)
			return &statblock.SaveStatblockOutput{Record: in.Record, Replaced: true}, nil
		})

	req, err := structpb.NewStruct(map[string]any{
		"name":       "Goblin",
		"category":   "Adversaries",
		"experience": []any{"Sneak +2"},
	})
	s.Require().NoError(err)

	resp, err := s.client.SaveStatblock(s.ctx, req)
	s.Require().NoError(err)
	s.True(resp.GetFields()["saved"].GetBoolValue())
	s.True(resp.GetFields()["replaced"].GetBoolValue())
}

func (s *HandlerTestSuite) TestSaveStatblockNameRequired() {
	s.mockStatblock.EXPECT().
		SaveStatblock(gomock.Any(), gomock.Any()).
		Return(nil, errors.InvalidArgument(statblock.ErrNameRequired))

	_, err := s.client.SaveStatblock(s.ctx, &structpb.Struct{})
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestDeleteStatblock() {
	s.mockStatblock.EXPECT().
		DeleteStatblock(gomock.Any(), &statblock.DeleteStatblockInput{Name: "Goblin"}).
		Return(&statblock.DeleteStatblockOutput{}, nil)

	_, err := s.client.DeleteStatblock(s.ctx, wrapperspb.String("Goblin"))
	s.NoError(err)
}

func (s *HandlerTestSuite) TestVocabulary() {
	s.mockStatblock.EXPECT().
		ListTypes(gomock.Any(), &statblock.ListTypesInput{Category: "Environments"}).
		Return(&statblock.ListTypesOutput{Types: []string{"Event"}}, nil)
	s.mockStatblock.EXPECT().
		ListCategories(gomock.Any(), gomock.Any()).
		Return(&statblock.ListCategoriesOutput{
			Categories: map[entity.Category][]string{"Environments": {"Event"}},
			Tiers:      []int{1},
		}, nil)

	types, err := s.client.ListTypes(s.ctx, wrapperspb.String("Environments"))
	s.Require().NoError(err)
	s.Equal([]any{"Event"}, types.AsMap()["types"])

	cats, err := s.client.ListCategories(s.ctx, &emptypb.Empty{})
	s.Require().NoError(err)
	s.Equal([]any{float64(1)}, cats.AsMap()["tiers"])
}

func (s *HandlerTestSuite) TestRenderAndExport() {
	s.mockStatblock.EXPECT().
		RenderStatblock(gomock.Any(), &statblock.RenderStatblockInput{Name: testutils.GroveName}).
		Return(&statblock.RenderStatblockOutput{Text: conversion.RenderText(testutils.Grove())}, nil)

	export := conversion.Export(testutils.Grove())
	s.mockStatblock.EXPECT().
		ExportStatblock(gomock.Any(), &statblock.ExportStatblockInput{Name: testutils.GroveName}).
		Return(&statblock.ExportStatblockOutput{Export: export}, nil)

	text, err := s.client.RenderStatblock(s.ctx, wrapperspb.String(testutils.GroveName))
	s.Require().NoError(err)
	s.Equal(conversion.RenderText(testutils.Grove()), text.GetValue())

	doc, err := s.client.ExportStatblock(s.ctx, wrapperspb.String(testutils.GroveName))
	s.Require().NoError(err)
	expected, err := conversion.MarshalOutput(export)
	s.Require().NoError(err)
	s.Equal(string(expected), doc.GetValue())
}

func (s *HandlerTestSuite) TestRollAttack() {
	s.mockDice.EXPECT().
		RollAttack(gomock.Any(), &dice.RollAttackInput{Name: "Goblin"}).
		Return(&dice.RollAttackOutput{Roll: &dice.AttackRoll{
			RollID: "roll_1",
			Attack: dice.DiceRoll{Notation: "1d20+2", Dice: []int{11}, Modifier: 2, Total: 13},
		}}, nil)

	resp, err := s.client.RollAttack(s.ctx, wrapperspb.String("Goblin"))
	s.Require().NoError(err)
	s.Equal("roll_1", resp.GetFields()["roll_id"].GetStringValue())
	s.Equal(float64(13), resp.GetFields()["attack"].GetStructValue().GetFields()["total"].GetNumberValue())
}

func (s *HandlerTestSuite) TestRollAttackPrecondition() {
	s.mockDice.EXPECT().
		RollAttack(gomock.Any(), gomock.Any()).
		Return(nil, errors.FailedPrecondition("Grove is not an adversary"))

	_, err := s.client.RollAttack(s.ctx, wrapperspb.String("Grove"))
	s.Equal(codes.FailedPrecondition, status.Code(err))
}

func (s *HandlerTestSuite) TestListRolls() {
	s.mockDice.EXPECT().
		ListRolls(gomock.Any(), &dice.ListRollsInput{Name: "Goblin", Limit: 1}).
		Return(&dice.ListRollsOutput{Rolls: []*dice.AttackRoll{{RollID: "roll_3"}}}, nil)

	req, err := structpb.NewStruct(map[string]any{"name": "Goblin", "limit": 1})
	s.Require().NoError(err)

	resp, err := s.client.ListRolls(s.ctx, req)
	s.Require().NoError(err)

	rolls := resp.GetFields()["rolls"].GetListValue().GetValues()
	s.Require().Len(rolls, 1)
	s.Equal("roll_3", rolls[0].GetStructValue().GetFields()["roll_id"].GetStringValue())
}

func (s *HandlerTestSuite) TestListRollsNegativeLimit() {
	req, err := structpb.NewStruct(map[string]any{"name": "Goblin", "limit": -1})
	s.Require().NoError(err)

	_, err = s.client.ListRolls(s.ctx, req)
	s.Equal(codes.InvalidArgument, status.Code(err))
}
