//go:build integration

package candidate_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"smarthire/internal/hiring"
	"smarthire/internal/hiring/store/candidate"
	"smarthire/pkg/sentinel"
	"smarthire/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *candidate.PostgresStore
	userID   string
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = candidate.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()

	err := s.postgres.TruncateModuleTables(ctx)
	s.Require().NoError(err)

	s.userID = s.postgres.CreateTestUser(ctx, s.T())
}

// embedding pads the leading components out to the column's 1536 dimensions.
func embedding(lead ...float32) []float32 {
	v := make([]float32, 1536)
	copy(v, lead)
	return v
}

func (s *PostgresStoreSuite) newCandidate() *hiring.Candidate {
	expires := time.Now().Add(30 * 24 * time.Hour).Truncate(time.Second)
	return &hiring.Candidate{
		ID:               uuid.NewString(),
		UserID:           s.userID,
		FullName:         "Alex Candidate",
		Email:            "alex@example.com",
		OriginalFilename: "alex-cv.pdf",
		CVText:           "Senior backend engineer with Go and PostgreSQL.",
		CVSummary:        "Backend engineer",
		ExtractedSkills:  []string{"go", "postgresql"},
		CVEmbedding:      embedding(1, 0, 0),
		ExperienceLevel:  "senior",
		FileURL:          "https://files.example.com/alex-cv.pdf",
		FileType:         "application/pdf",
		FileSizeBytes:    2048,
		ProcessedAt:      time.Now().Truncate(time.Second),
		ExpiresAt:        &expires,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()

	c := s.newCandidate()
	s.Require().NoError(s.store.Create(ctx, c))

	found, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(c.FullName, found.FullName)
	s.Equal(c.Email, found.Email)
	s.Equal(c.ExtractedSkills, found.ExtractedSkills)
	s.Equal(c.ExperienceLevel, found.ExperienceLevel)
	s.Equal(c.FileSizeBytes, found.FileSizeBytes)
	s.Require().Len(found.CVEmbedding, 1536)
	s.InDelta(1.0, found.CVEmbedding[0], 1e-6)
	s.Require().NotNil(found.ExpiresAt)
	s.WithinDuration(*c.ExpiresAt, *found.ExpiresAt, time.Second)
	s.False(found.CreatedAt.IsZero())
}

func (s *PostgresStoreSuite) TestCreateDuplicateID() {
	ctx := context.Background()

	c := s.newCandidate()
	s.Require().NoError(s.store.Create(ctx, c))

	err := s.store.Create(ctx, c)
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *PostgresStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(context.Background(), uuid.NewString())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestNullableColumns() {
	ctx := context.Background()

	c := s.newCandidate()
	c.Email = ""
	c.Phone = ""
	c.CVSummary = ""
	c.CVEmbedding = nil
	c.ExperienceLevel = ""
	c.ExpiresAt = nil
	s.Require().NoError(s.store.Create(ctx, c))

	found, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.Empty(found.Email)
	s.Empty(found.CVSummary)
	s.Nil(found.CVEmbedding)
	s.Nil(found.ExpiresAt)
}

func (s *PostgresStoreSuite) TestUpdate() {
	ctx := context.Background()

	c := s.newCandidate()
	s.Require().NoError(s.store.Create(ctx, c))

	c.FullName = "Alex Updated"
	c.ExtractedSkills = []string{"go", "kubernetes"}
	c.ExperienceLevel = "lead"
	s.Require().NoError(s.store.Update(ctx, c))

	found, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Alex Updated", found.FullName)
	s.Equal([]string{"go", "kubernetes"}, found.ExtractedSkills)
	s.Equal("lead", found.ExperienceLevel)
}

func (s *PostgresStoreSuite) TestUpdateMissing() {
	c := s.newCandidate()
	err := s.store.Update(context.Background(), c)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()

	c := s.newCandidate()
	s.Require().NoError(s.store.Create(ctx, c))
	s.Require().NoError(s.store.Delete(ctx, c.ID))

	_, err := s.store.FindByID(ctx, c.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(ctx, c.ID), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListByUserNewestFirst() {
	ctx := context.Background()

	ids := make([]string, 3)
	for i := range ids {
		c := s.newCandidate()
		s.Require().NoError(s.store.Create(ctx, c))
		ids[i] = c.ID
		// created_at comes from the server clock; space the inserts out
		time.Sleep(10 * time.Millisecond)
	}

	list, err := s.store.ListByUser(ctx, s.userID, 2, 0)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(ids[2], list[0].ID)
	s.Equal(ids[1], list[1].ID)

	rest, err := s.store.ListByUser(ctx, s.userID, 2, 2)
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Equal(ids[0], rest[0].ID)
}

func (s *PostgresStoreSuite) TestSearchBySimilarity() {
	ctx := context.Background()

	exact := s.newCandidate()
	exact.CVEmbedding = embedding(1, 0, 0)
	s.Require().NoError(s.store.Create(ctx, exact))

	near := s.newCandidate()
	near.CVEmbedding = embedding(0.9, 0.1, 0)
	s.Require().NoError(s.store.Create(ctx, near))

	orthogonal := s.newCandidate()
	orthogonal.CVEmbedding = embedding(0, 0, 1)
	s.Require().NoError(s.store.Create(ctx, orthogonal))

	unembedded := s.newCandidate()
	unembedded.CVEmbedding = nil
	s.Require().NoError(s.store.Create(ctx, unembedded))

	hits, err := s.store.SearchBySimilarity(ctx, embedding(1, 0, 0), s.userID, 0.5, 10)
	s.Require().NoError(err)
	s.Require().Len(hits, 2)
	s.Equal(exact.ID, hits[0].ID)
	s.InDelta(1.0, hits[0].Similarity, 1e-4)
	s.Equal(near.ID, hits[1].ID)
	s.Greater(hits[1].Similarity, 0.5)
}

func (s *PostgresStoreSuite) TestSearchScopedToUser() {
	ctx := context.Background()

	mine := s.newCandidate()
	s.Require().NoError(s.store.Create(ctx, mine))

	otherUser := s.postgres.CreateTestUser(ctx, s.T())
	theirs := s.newCandidate()
	theirs.UserID = otherUser
	s.Require().NoError(s.store.Create(ctx, theirs))

	hits, err := s.store.SearchBySimilarity(ctx, embedding(1, 0, 0), s.userID, 0.5, 10)
	s.Require().NoError(err)
	s.Require().Len(hits, 1)
	s.Equal(mine.ID, hits[0].ID)
}

func (s *PostgresStoreSuite) TestNearExpiration() {
	ctx := context.Background()

	soon := s.newCandidate()
	in3Days := time.Now().Add(3 * 24 * time.Hour)
	soon.ExpiresAt = &in3Days
	s.Require().NoError(s.store.Create(ctx, soon))

	later := s.newCandidate()
	in30Days := time.Now().Add(30 * 24 * time.Hour)
	later.ExpiresAt = &in30Days
	s.Require().NoError(s.store.Create(ctx, later))

	never := s.newCandidate()
	never.ExpiresAt = nil
	s.Require().NoError(s.store.Create(ctx, never))

	expiring, err := s.store.NearExpiration(ctx, s.userID, 7)
	s.Require().NoError(err)
	s.Require().Len(expiring, 1)
	s.Equal(soon.ID, expiring[0].ID)
}

func (s *PostgresStoreSuite) TestSetExpiration() {
	ctx := context.Background()

	c := s.newCandidate()
	s.Require().NoError(s.store.Create(ctx, c))

	deadline := time.Now().AddDate(0, 0, 60).Truncate(time.Second)
	s.Require().NoError(s.store.SetExpiration(ctx, c.ID, deadline))

	found, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found.ExpiresAt)
	s.WithinDuration(deadline, *found.ExpiresAt, time.Second)

	err = s.store.SetExpiration(ctx, uuid.NewString(), deadline)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListBySkill() {
	ctx := context.Background()

	goDev := s.newCandidate()
	goDev.ExtractedSkills = []string{"go", "kubernetes"}
	s.Require().NoError(s.store.Create(ctx, goDev))

	pyDev := s.newCandidate()
	pyDev.ExtractedSkills = []string{"python"}
	s.Require().NoError(s.store.Create(ctx, pyDev))

	noSkills := s.newCandidate()
	noSkills.ExtractedSkills = nil
	s.Require().NoError(s.store.Create(ctx, noSkills))

	got, err := s.store.ListBySkill(ctx, s.userID, "go")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(goDev.ID, got[0].ID)

	got, err = s.store.ListBySkill(ctx, s.userID, "rust")
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *PostgresStoreSuite) TestStats() {
	ctx := context.Background()
	now := time.Now()

	fresh := s.newCandidate()
	fresh.ExpiresAt = nil
	s.Require().NoError(s.store.Create(ctx, fresh))

	expiring := s.newCandidate()
	in3 := now.Add(3 * 24 * time.Hour)
	expiring.ExpiresAt = &in3
	s.Require().NoError(s.store.Create(ctx, expiring))

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	stats, err := s.store.Stats(ctx, s.userID, monthStart, now.AddDate(0, 0, 7))
	s.Require().NoError(err)
	s.Equal(2, stats.TotalCandidates)
	s.Equal(2, stats.CandidatesThisMonth)
	s.Equal(1, stats.ExpiringSoon)
}
