package service

import (
	"time"

	"smarthire/internal/hiring"
	dErrors "smarthire/pkg/domain-errors"
)

func (s *ServiceSuite) TestCreateCandidate_AssignsIDAndTimestamp() {
	c := s.seedCandidate("u1")

	s.NotEmpty(c.ID)
	s.False(c.ProcessedAt.IsZero())

	got, err := s.service.GetCandidate(s.ctx, c.ID, "u1")
	s.Require().NoError(err)
	s.Equal("Alex Candidate", got.FullName)
}

func (s *ServiceSuite) TestCreateCandidate_RequiresCVText() {
	_, err := s.service.CreateCandidate(s.ctx, &hiring.Candidate{
		UserID:   "u1",
		FullName: "Alex Candidate",
		FileURL:  "https://files.test/cv.pdf",
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.Equal("cv_text", dErrors.FieldOf(err))
}

func (s *ServiceSuite) TestGetCandidate_OtherUserSeesNotFound() {
	c := s.seedCandidate("u1")

	_, err := s.service.GetCandidate(s.ctx, c.ID, "u2")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestGetCandidate_Missing() {
	_, err := s.service.GetCandidate(s.ctx, "missing", "u1")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpdateCandidate() {
	c := s.seedCandidate("u1")

	c.FullName = "Alex Renamed"
	c.ExperienceLevel = "lead"
	s.Require().NoError(s.service.UpdateCandidate(s.ctx, c))

	got, err := s.service.GetCandidate(s.ctx, c.ID, "u1")
	s.Require().NoError(err)
	s.Equal("Alex Renamed", got.FullName)
	s.Equal("lead", got.ExperienceLevel)
}

func (s *ServiceSuite) TestUpdateCandidate_OtherUserSeesNotFound() {
	c := s.seedCandidate("u1")

	foreign := *c
	foreign.UserID = "u2"
	err := s.service.UpdateCandidate(s.ctx, &foreign)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestDeleteCandidate() {
	c := s.seedCandidate("u1")

	err := s.service.DeleteCandidate(s.ctx, c.ID, "u2")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound), "ownership enforced")

	s.Require().NoError(s.service.DeleteCandidate(s.ctx, c.ID, "u1"))

	_, err = s.service.GetCandidate(s.ctx, c.ID, "u1")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestSearchCandidates_DefaultsApply() {
	exact := s.seedCandidate("u1")

	far, err := s.service.CreateCandidate(s.ctx, &hiring.Candidate{
		UserID:           "u1",
		FullName:         "Jamie Other",
		OriginalFilename: "cv2.pdf",
		CVText:           "unrelated background",
		CVEmbedding:      []float32{0, 1, 0},
		FileURL:          "https://files.test/cv2.pdf",
		FileType:         "application/pdf",
	})
	s.Require().NoError(err)

	// Zero threshold and limit fall back to 0.8 and 10; the orthogonal
	// embedding scores 0 and stays out.
	hits, err := s.service.SearchCandidates(s.ctx, "u1", []float32{1, 0, 0}, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(hits, 1)
	s.Equal(exact.ID, hits[0].ID)
	s.NotEqual(far.ID, hits[0].ID)
}

func (s *ServiceSuite) TestSearchCandidates_RequiresEmbedding() {
	_, err := s.service.SearchCandidates(s.ctx, "u1", nil, 0, 0)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.Equal("embedding", dErrors.FieldOf(err))
}

func (s *ServiceSuite) TestCandidatesNearExpiration() {
	c := s.seedCandidate("u1")
	in3 := time.Now().Add(3 * 24 * time.Hour)
	c.ExpiresAt = &in3
	s.Require().NoError(s.candidates.Update(s.ctx, c))

	s.seedCandidate("u1") // no expiry

	got, err := s.service.CandidatesNearExpiration(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(c.ID, got[0].ID)
}

func (s *ServiceSuite) TestExtendCandidateExpiration_DefaultDays() {
	c := s.seedCandidate("u1")

	got, err := s.service.ExtendCandidateExpiration(s.ctx, c.ID, "u1", 0)
	s.Require().NoError(err)
	s.Require().NotNil(got.ExpiresAt)
	s.WithinDuration(time.Now().AddDate(0, 0, 30), *got.ExpiresAt, time.Minute)
}

func (s *ServiceSuite) TestExtendCandidateExpiration_MeasuredFromNow() {
	c := s.seedCandidate("u1")
	far := time.Now().AddDate(0, 0, 100)
	c.ExpiresAt = &far
	s.Require().NoError(s.candidates.Update(s.ctx, c))

	got, err := s.service.ExtendCandidateExpiration(s.ctx, c.ID, "u1", 10)
	s.Require().NoError(err)
	s.Require().NotNil(got.ExpiresAt)
	s.WithinDuration(time.Now().AddDate(0, 0, 10), *got.ExpiresAt, time.Minute)
}

func (s *ServiceSuite) TestExtendCandidateExpiration_ForeignCandidate() {
	c := s.seedCandidate("u1")

	_, err := s.service.ExtendCandidateExpiration(s.ctx, c.ID, "u2", 10)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestListCandidatesBySkill() {
	goDev, err := s.service.CreateCandidate(s.ctx, &hiring.Candidate{
		UserID:           "u1",
		FullName:         "Go Dev",
		OriginalFilename: "cv.pdf",
		CVText:           "backend work",
		ExtractedSkills:  []string{"Go", "Postgres"},
		FileURL:          "https://files.test/cv.pdf",
		FileType:         "application/pdf",
	})
	s.Require().NoError(err)
	s.seedCandidate("u1") // no skills

	got, err := s.service.ListCandidatesBySkill(s.ctx, "u1", "Go")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(goDev.ID, got[0].ID)

	_, err = s.service.ListCandidatesBySkill(s.ctx, "u1", " ")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestCandidateStats() {
	s.seedCandidate("u1")

	expiring := s.seedCandidate("u1")
	in3 := time.Now().Add(3 * 24 * time.Hour)
	expiring.ExpiresAt = &in3
	s.Require().NoError(s.candidates.Update(s.ctx, expiring))

	// Seeded straight into the store to predate the current month.
	s.Require().NoError(s.candidates.Create(s.ctx, &hiring.Candidate{
		ID:        "old-candidate",
		UserID:    "u1",
		FullName:  "Old Upload",
		CVText:    "archived",
		CreatedAt: time.Now().AddDate(0, -2, 0),
	}))

	s.seedCandidate("u2")

	stats, err := s.service.CandidateStats(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(3, stats.TotalCandidates)
	s.Equal(2, stats.CandidatesThisMonth)
	s.Equal(1, stats.ExpiringSoon)
}
