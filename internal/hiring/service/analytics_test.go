package service

import (
	"smarthire/internal/hiring"
)

func (s *ServiceSuite) TestAnalytics_EmptyHistory() {
	got, err := s.service.Analytics(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(&hiring.Analytics{}, got)
}

func (s *ServiceSuite) TestAnalytics_Aggregates() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")

	m1, err := s.service.CreateMatch(s.ctx, &hiring.Match{
		UserID:            "u1",
		CandidateID:       c.ID,
		JobDescriptionID:  jd.ID,
		MatchPercentage:   90.5,
		ProcessingTimeMS:  1000,
		ProcessingCostUSD: 0.00125,
		Recommendation:    hiring.RecommendationStrongMatch,
	})
	s.Require().NoError(err)
	s.NotEmpty(m1.ID)

	_, err = s.service.CreateMatch(s.ctx, &hiring.Match{
		UserID:            "u1",
		CandidateID:       c.ID,
		JobDescriptionID:  jd.ID,
		MatchPercentage:   60.2,
		ProcessingTimeMS:  1500,
		ProcessingCostUSD: 0.00250,
		Recommendation:    hiring.RecommendationPotentialFit,
	})
	s.Require().NoError(err)

	_, err = s.service.CreateMatch(s.ctx, &hiring.Match{
		UserID:            "u1",
		CandidateID:       c.ID,
		JobDescriptionID:  jd.ID,
		MatchPercentage:   20.0,
		ProcessingTimeMS:  800,
		ProcessingCostUSD: 0.00100,
		Recommendation:    hiring.RecommendationNotRecommended,
	})
	s.Require().NoError(err)

	got, err := s.service.Analytics(s.ctx, "u1")
	s.Require().NoError(err)

	s.Equal(3, got.TotalMatches)
	s.Equal(1, got.StrongMatches)
	s.Equal(1, got.PotentialFits)
	s.Equal(1, got.NotRecommended)
	s.InDelta(56.9, got.AverageMatchPercentage, 1e-9, "average rounded to 2dp")
	s.Equal(1100, got.AverageProcessingTimeMS)
	s.InDelta(0.0048, got.TotalCostUSD, 1e-9, "total cost rounded to 4dp")
}

func (s *ServiceSuite) TestAnalytics_OnlyOwnMatches() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")
	s.seedMatch("u1", c.ID, jd.ID, 85, hiring.RecommendationStrongMatch)

	other, err := s.service.Analytics(s.ctx, "u2")
	s.Require().NoError(err)
	s.Equal(0, other.TotalMatches)
}
