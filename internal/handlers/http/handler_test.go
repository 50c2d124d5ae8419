package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/errors"
	handler "github.com/KirkDiggler/statblock-api/internal/handlers/http"
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
	handler       http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStatblock = statblockmock.NewMockService(s.ctrl)
	s.mockDice = dicemock.NewMockService(s.ctrl)

	h, err := handler.NewHandler(&handler.Config{
		StatblockService: s.mockStatblock,
		DiceService:      s.mockDice,
		CORSOrigins:      []string{"*"},
	})
	s.Require().NoError(err)
	s.handler = h
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) TestNewHandlerValidatesConfig() {
	_, err := handler.NewHandler(&handler.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestTypes() {
	s.mockStatblock.EXPECT().
		ListTypes(gomock.Any(), &statblock.ListTypesInput{Category: "Hazards"}).
		Return(&statblock.ListTypesOutput{Types: []string{}}, nil)

	rec := s.do(http.MethodGet, "/api/types?category=Hazards", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"types":[]}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestCategories() {
	s.mockStatblock.EXPECT().
		ListCategories(gomock.Any(), gomock.Any()).
		Return(&statblock.ListCategoriesOutput{
			Categories: map[entity.Category][]string{"Environments": {"Event"}},
			Tiers:      []int{1, 2},
		}, nil)

	rec := s.do(http.MethodGet, "/api/categories", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"categories":{"Environments":["Event"]},"tiers":[1,2]}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestSearch() {
	s.Run("numeric tier", func() {
		s.mockStatblock.EXPECT().
			SearchStatblocks(gomock.Any(), &statblock.SearchStatblocksInput{Category: "Adversaries", Tier: "1", Text: "knife"}).
			Return(&statblock.SearchStatblocksOutput{Results: []statblock.Summary{{Name: testutils.BanditName, Tier: "1"}}}, nil)

		rec := s.do(http.MethodPost, "/api/search", `{"category":"Adversaries","tier":1,"text":"knife"}`)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"results":[{"name":"Jagged Knife Bandit","tier":"1","type":"","category":"","description":""}]}`, rec.Body.String())
	})

	s.Run("empty body searches everything", func() {
		s.mockStatblock.EXPECT().
			SearchStatblocks(gomock.Any(), &statblock.SearchStatblocksInput{}).
			Return(&statblock.SearchStatblocksOutput{Results: []statblock.Summary{}}, nil)

		rec := s.do(http.MethodPost, "/api/search", "")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"results":[]}`, rec.Body.String())
	})

	s.Run("invalid json", func() {
		rec := s.do(http.MethodPost, "/api/search", `{"category":`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerTestSuite) TestGetStat() {
	s.Run("found", func() {
		s.mockStatblock.EXPECT().
			GetStatblock(gomock.Any(), &statblock.GetStatblockInput{Name: "Jagged Knife Bandit"}).
			Return(&statblock.GetStatblockOutput{Record: testutils.Bandit()}, nil)

		rec := s.do(http.MethodGet, "/api/stat/Jagged%20Knife%20Bandit", "")
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("application/json", rec.Header().Get("Content-Type"))

		var got entity.Record
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal(testutils.Bandit().Weapon, got.Weapon)
	})

	s.Run("not found", func() {
		s.mockStatblock.EXPECT().
			GetStatblock(gomock.Any(), gomock.Any()).
			Return(nil, errors.NotFound("stat block \"nobody\" not found"))

		rec := s.do(http.MethodGet, "/api/stat/nobody", "")
		s.Equal(http.StatusNotFound, rec.Code)
		s.JSONEq(`{"error":"Not found"}`, rec.Body.String())
	})
}

func (s *HandlerTestSuite) TestRenderStat() {
	s.mockStatblock.EXPECT().
		RenderStatblock(gomock.Any(), &statblock.RenderStatblockInput{Name: "Goblin"}).
		Return(&statblock.RenderStatblockOutput{Text: "**Goblin**\n"}, nil)

	rec := s.do(http.MethodGet, "/api/stat/Goblin/text", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	s.Equal("**Goblin**\n", rec.Body.String())
}

func (s *HandlerTestSuite) TestExportStat() {
	export := conversion.Export(testutils.Grove())
	s.mockStatblock.EXPECT().
		ExportStatblock(gomock.Any(), &statblock.ExportStatblockInput{Name: "Abandoned Grove"}).
		Return(&statblock.ExportStatblockOutput{Export: export}, nil)

	rec := s.do(http.MethodGet, "/api/stat/Abandoned%20Grove/export", "")
	s.Equal(http.StatusOK, rec.Code)

	expected, err := conversion.MarshalOutput(export)
	s.Require().NoError(err)
	s.Equal(string(expected), rec.Body.String())
}

func (s *HandlerTestSuite) TestSave() {
	s.Run("saved", func() {
		s.mockStatblock.EXPECT().
			SaveStatblock(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in *statblock.SaveStatblockInput) (*statblock.SaveStatblockOutput, error) {
				s.Equal(entity.FlexString("Goblin"), in.Record.Name)
				s.Equal(entity.FlexString("1"), in.Record.Tier)
				return &statblock.SaveStatblockOutput{Record: in.Record}, nil
			})

		rec := s.do(http.MethodPost, "/api/save", `{"name":"Goblin","category":"Adversaries","tier":1}`)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"saved":true}`, rec.Body.String())
	})

	s.Run("name required", func() {
		s.mockStatblock.EXPECT().
			SaveStatblock(gomock.Any(), gomock.Any()).
			Return(nil, errors.InvalidArgument(statblock.ErrNameRequired))

		rec := s.do(http.MethodPost, "/api/save", `{"name":"  "}`)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.JSONEq(`{"error":"Name is required"}`, rec.Body.String())
	})
}

func (s *HandlerTestSuite) TestDeleteStat() {
	s.mockStatblock.EXPECT().
		DeleteStatblock(gomock.Any(), &statblock.DeleteStatblockInput{Name: "Goblin"}).
		Return(&statblock.DeleteStatblockOutput{}, nil)

	rec := s.do(http.MethodDelete, "/api/stat/Goblin", "")
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *HandlerTestSuite) TestRollAttack() {
	s.Run("rolled", func() {
		s.mockDice.EXPECT().
			RollAttack(gomock.Any(), &dice.RollAttackInput{Name: "Goblin"}).
			Return(&dice.RollAttackOutput{Roll: &dice.AttackRoll{RollID: "roll_1", Weapon: "Spear"}}, nil)

		rec := s.do(http.MethodPost, "/api/stat/Goblin/roll", "")
		s.Equal(http.StatusOK, rec.Code)

		var got dice.AttackRoll
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal("roll_1", got.RollID)
		s.Equal("Spear", got.Weapon)
	})

	s.Run("not an adversary", func() {
		s.mockDice.EXPECT().
			RollAttack(gomock.Any(), gomock.Any()).
			Return(nil, errors.FailedPrecondition("Grove is not an adversary"))

		rec := s.do(http.MethodPost, "/api/stat/Grove/roll", "")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		s.JSONEq(`{"error":"Grove is not an adversary"}`, rec.Body.String())
	})
}

func (s *HandlerTestSuite) TestInternalErrorsAreHidden() {
	s.mockStatblock.EXPECT().
		GetStatblock(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("redis: connection refused"))

	rec := s.do(http.MethodGet, "/api/stat/Goblin", "")
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.JSONEq(`{"error":"Internal error"}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestListRolls() {
	s.Run("listed", func() {
		s.mockDice.EXPECT().
			ListRolls(gomock.Any(), &dice.ListRollsInput{Name: "Goblin", Limit: 2}).
			Return(&dice.ListRollsOutput{Rolls: []*dice.AttackRoll{{RollID: "roll_2"}, {RollID: "roll_1"}}}, nil)

		rec := s.do(http.MethodGet, "/api/stat/Goblin/rolls?limit=2", "")
		s.Equal(http.StatusOK, rec.Code)

		var got struct {
			Rolls []dice.AttackRoll `json:"rolls"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Require().Len(got.Rolls, 2)
		s.Equal("roll_2", got.Rolls[0].RollID)
	})

	s.Run("empty history", func() {
		s.mockDice.EXPECT().
			ListRolls(gomock.Any(), &dice.ListRollsInput{Name: "Goblin"}).
			Return(&dice.ListRollsOutput{}, nil)

		rec := s.do(http.MethodGet, "/api/stat/Goblin/rolls", "")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"rolls":[]}`, rec.Body.String())
	})

	s.Run("bad limit", func() {
		rec := s.do(http.MethodGet, "/api/stat/Goblin/rolls?limit=many", "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerTestSuite) TestNamesWithSlashes() {
	s.Run("get", func() {
		s.mockStatblock.EXPECT().
			GetStatblock(gomock.Any(), &statblock.GetStatblockInput{Name: "Ogre/Brute"}).
			Return(&statblock.GetStatblockOutput{Record: testutils.Bandit()}, nil)

		rec := s.do(http.MethodGet, "/api/stat/Ogre/Brute", "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("escaped slash", func() {
		s.mockStatblock.EXPECT().
			GetStatblock(gomock.Any(), &statblock.GetStatblockInput{Name: "Ogre/Brute"}).
			Return(&statblock.GetStatblockOutput{Record: testutils.Bandit()}, nil)

		rec := s.do(http.MethodGet, "/api/stat/Ogre%2FBrute", "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("text", func() {
		s.mockStatblock.EXPECT().
			RenderStatblock(gomock.Any(), &statblock.RenderStatblockInput{Name: "Ogre/Brute"}).
			Return(&statblock.RenderStatblockOutput{Text: "**Ogre/Brute**\n"}, nil)

		rec := s.do(http.MethodGet, "/api/stat/Ogre/Brute/text", "")
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("**Ogre/Brute**\n", rec.Body.String())
	})

	s.Run("rolls", func() {
		s.mockDice.EXPECT().
			ListRolls(gomock.Any(), &dice.ListRollsInput{Name: "Ogre/Brute", Limit: 1}).
			Return(&dice.ListRollsOutput{}, nil)

		rec := s.do(http.MethodGet, "/api/stat/Ogre/Brute/rolls?limit=1", "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("name ending in an action word", func() {
		s.mockStatblock.EXPECT().
			GetStatblock(gomock.Any(), &statblock.GetStatblockInput{Name: "Grimoire/text"}).
			Return(&statblock.GetStatblockOutput{Record: testutils.Bandit()}, nil)

		rec := s.do(http.MethodGet, "/api/stat/Grimoire%2Ftext", "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("delete", func() {
		s.mockStatblock.EXPECT().
			DeleteStatblock(gomock.Any(), &statblock.DeleteStatblockInput{Name: "Ogre/Brute"}).
			Return(&statblock.DeleteStatblockOutput{}, nil)

		rec := s.do(http.MethodDelete, "/api/stat/Ogre/Brute", "")
		s.Equal(http.StatusNoContent, rec.Code)
	})
}

func (s *HandlerTestSuite) TestStatRouteErrors() {
	s.Run("missing name", func() {
		rec := s.do(http.MethodGet, "/api/stat/", "")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("wrong method", func() {
		rec := s.do(http.MethodGet, "/api/stat/Goblin/roll", "")
		s.Equal(http.StatusMethodNotAllowed, rec.Code)
	})

	s.Run("trailing slash", func() {
		s.mockStatblock.EXPECT().
			GetStatblock(gomock.Any(), &statblock.GetStatblockInput{Name: "Goblin"}).
			Return(&statblock.GetStatblockOutput{Record: testutils.Bandit()}, nil)

		rec := s.do(http.MethodGet, "/api/stat/Goblin/", "")
		s.Equal(http.StatusOK, rec.Code)
	})
}
