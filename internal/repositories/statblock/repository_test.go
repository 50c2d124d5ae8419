package statblock_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/errors"
	"github.com/KirkDiggler/statblock-api/internal/repositories/statblock"
	"github.com/KirkDiggler/statblock-api/internal/testutils"
)

// RepositoryTestSuite runs the same behaviour checks against every backend
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func(t *testing.T) statblock.Repository
	repo    statblock.Repository
	ctx     context.Context
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: func(t *testing.T) statblock.Repository {
		client, _ := testutils.CreateTestRedisClient(t)
		repo, err := statblock.NewRedis(&statblock.RedisConfig{Client: client})
		if err != nil {
			t.Fatal(err)
		}
		return repo
	}})
}

func TestSQLiteRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: func(t *testing.T) statblock.Repository {
		repo, err := statblock.NewSQLite(context.Background(), &statblock.SQLiteConfig{
			Path: filepath.Join(t.TempDir(), "statblocks.db"),
		})
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = repo.Close() })
		return repo
	}})
}

func (s *RepositoryTestSuite) SetupTest() {
	s.repo = s.newRepo(s.T())
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) put(record *entity.Record) *statblock.PutOutput {
	out, err := s.repo.Put(s.ctx, statblock.PutInput{Record: record})
	s.Require().NoError(err)
	return out
}

func (s *RepositoryTestSuite) names() []string {
	out, err := s.repo.List(s.ctx, statblock.ListInput{})
	s.Require().NoError(err)

	names := make([]string, 0, len(out.Records))
	for _, r := range out.Records {
		names = append(names, r.Name.String())
	}
	return names
}

func (s *RepositoryTestSuite) TestGetIsCaseInsensitive() {
	s.put(testutils.Bandit())

	for _, name := range []string{testutils.BanditName, "jagged knife bandit", "  JAGGED KNIFE BANDIT "} {
		s.Run(name, func() {
			out, err := s.repo.Get(s.ctx, statblock.GetInput{Name: name})
			s.Require().NoError(err)
			s.Equal(testutils.Bandit().Weapon, out.Record.Weapon)
			s.Equal(testutils.Bandit().Experience, out.Record.Experience)
			s.Equal(testutils.Bandit().Features, out.Record.Features)
		})
	}
}

func (s *RepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, statblock.GetInput{Name: "Nobody"})
	s.True(errors.IsNotFound(err))
	s.Equal("Nobody", errors.GetMeta(err)["name"])
}

func (s *RepositoryTestSuite) TestBlankNames() {
	_, err := s.repo.Get(s.ctx, statblock.GetInput{Name: "  "})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Put(s.ctx, statblock.PutInput{Record: &entity.Record{Name: " "}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Put(s.ctx, statblock.PutInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Delete(s.ctx, statblock.DeleteInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestListEmpty() {
	out, err := s.repo.List(s.ctx, statblock.ListInput{})
	s.Require().NoError(err)
	s.NotNil(out.Records)
	s.Empty(out.Records)
}

func (s *RepositoryTestSuite) TestListKeepsInsertionOrder() {
	s.put(&entity.Record{Name: "Charlie"})
	s.put(&entity.Record{Name: "Alpha"})
	s.put(&entity.Record{Name: "Bravo"})

	s.Equal([]string{"Charlie", "Alpha", "Bravo"}, s.names())
}

func (s *RepositoryTestSuite) TestReplaceMovesToEnd() {
	s.False(s.put(&entity.Record{Name: "Alpha", Tier: "1"}).Replaced)
	s.put(&entity.Record{Name: "Bravo"})
	s.True(s.put(&entity.Record{Name: "ALPHA", Tier: "2"}).Replaced)

	s.Equal([]string{"Bravo", "ALPHA"}, s.names())

	out, err := s.repo.Get(s.ctx, statblock.GetInput{Name: "alpha"})
	s.Require().NoError(err)
	s.Equal(entity.FlexString("2"), out.Record.Tier)
}

func (s *RepositoryTestSuite) TestDelete() {
	s.put(testutils.Bandit())
	s.put(testutils.Grove())

	_, err := s.repo.Delete(s.ctx, statblock.DeleteInput{Name: "abandoned grove"})
	s.Require().NoError(err)
	s.Equal([]string{testutils.BanditName}, s.names())

	_, err = s.repo.Delete(s.ctx, statblock.DeleteInput{Name: testutils.GroveName})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestUnknownCategoryKeepsDocument() {
	doc := []byte(`{"name":"Arcane Rift","category":"Hazards","pulse":{"stress":1}}`)
	var record entity.Record
	s.Require().NoError(record.UnmarshalJSON(doc))
	s.put(&record)

	out, err := s.repo.Get(s.ctx, statblock.GetInput{Name: "arcane rift"})
	s.Require().NoError(err)
	s.JSONEq(string(doc), string(out.Record.Raw()))
}

func (s *RepositoryTestSuite) TestNamesMatchingBookkeepingKeys() {
	s.put(&entity.Record{Name: "Index", Category: entity.CategoryAdversaries})
	s.put(&entity.Record{Name: "Seq", Category: entity.CategoryEnvironments})
	s.put(&entity.Record{Name: "Goblin", Category: entity.CategoryAdversaries})

	s.Equal([]string{"Index", "Seq", "Goblin"}, s.names())

	got, err := s.repo.Get(s.ctx, statblock.GetInput{Name: "index"})
	s.Require().NoError(err)
	s.Equal(entity.CategoryAdversaries, got.Record.Category)
}
