package service

import (
	"smarthire/internal/hiring"
	"smarthire/internal/profile"
	dErrors "smarthire/pkg/domain-errors"
)

func (s *ServiceSuite) TestCreateMatch_RecordsJobDescriptionUse() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")

	m := s.seedMatch("u1", c.ID, jd.ID, 85, hiring.RecommendationStrongMatch)
	s.NotEmpty(m.ID)

	got, err := s.service.GetJobDescription(s.ctx, jd.ID, "u1")
	s.Require().NoError(err)
	s.Equal(1, got.TimesUsed)
}

func (s *ServiceSuite) TestCreateMatch_UnknownRecommendation() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")

	_, err := s.service.CreateMatch(s.ctx, &hiring.Match{
		UserID:           "u1",
		CandidateID:      c.ID,
		JobDescriptionID: jd.ID,
		MatchPercentage:  85,
		Recommendation:   "maybe",
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.Equal("recommendation", dErrors.FieldOf(err))
}

func (s *ServiceSuite) TestCreateMatch_PercentageOutOfRange() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")

	_, err := s.service.CreateMatch(s.ctx, &hiring.Match{
		UserID:           "u1",
		CandidateID:      c.ID,
		JobDescriptionID: jd.ID,
		MatchPercentage:  120,
		Recommendation:   hiring.RecommendationStrongMatch,
	})
	s.Require().Error(err)
	s.Equal("match_percentage", dErrors.FieldOf(err))
}

func (s *ServiceSuite) TestCreateMatch_ForeignCandidateRejected() {
	c := s.seedCandidate("u2")
	jd := s.seedJobDescription("u1")

	_, err := s.service.CreateMatch(s.ctx, &hiring.Match{
		UserID:           "u1",
		CandidateID:      c.ID,
		JobDescriptionID: jd.ID,
		MatchPercentage:  85,
		Recommendation:   hiring.RecommendationStrongMatch,
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestListMatchesByRecommendation() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")

	s.seedMatch("u1", c.ID, jd.ID, 90, hiring.RecommendationStrongMatch)
	s.seedMatch("u1", c.ID, jd.ID, 55, hiring.RecommendationPotentialFit)

	got, err := s.service.ListMatchesByRecommendation(s.ctx, "u1", hiring.RecommendationStrongMatch)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(90.0, got[0].MatchPercentage)

	_, err = s.service.ListMatchesByRecommendation(s.ctx, "u1", "maybe")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestListMatchesForCandidate_BestFirst() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")

	s.seedMatch("u1", c.ID, jd.ID, 55, hiring.RecommendationPotentialFit)
	s.seedMatch("u1", c.ID, jd.ID, 90, hiring.RecommendationStrongMatch)

	got, err := s.service.ListMatchesForCandidate(s.ctx, c.ID, "u1")
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(90.0, got[0].MatchPercentage)
}

func (s *ServiceSuite) TestSetMatchFeedback() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")
	m := s.seedMatch("u1", c.ID, jd.ID, 85, hiring.RecommendationStrongMatch)

	rating := 5
	s.Require().NoError(s.service.SetMatchFeedback(s.ctx, m.ID, "u1", hiring.Feedback{Rating: &rating}))

	got, err := s.service.GetMatch(s.ctx, m.ID, "u1")
	s.Require().NoError(err)
	s.Require().NotNil(got.UserRating)
	s.Equal(5, *got.UserRating)
}

func (s *ServiceSuite) TestSetMatchFeedback_RatingOutOfRange() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")
	m := s.seedMatch("u1", c.ID, jd.ID, 85, hiring.RecommendationStrongMatch)

	rating := 6
	err := s.service.SetMatchFeedback(s.ctx, m.ID, "u1", hiring.Feedback{Rating: &rating})
	s.Require().Error(err)
	s.Equal("user_rating", dErrors.FieldOf(err))
}

func (s *ServiceSuite) TestSetMatchFeedback_Empty() {
	err := s.service.SetMatchFeedback(s.ctx, "any", "u1", hiring.Feedback{})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestSetMatchFeedback_ForeignMatch() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")
	m := s.seedMatch("u1", c.ID, jd.ID, 85, hiring.RecommendationStrongMatch)

	rating := 3
	err := s.service.SetMatchFeedback(s.ctx, m.ID, "u2", hiring.Feedback{Rating: &rating})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestDeleteMatch() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")
	m := s.seedMatch("u1", c.ID, jd.ID, 85, hiring.RecommendationStrongMatch)

	s.Require().NoError(s.service.DeleteMatch(s.ctx, m.ID, "u1"))

	_, err := s.service.GetMatch(s.ctx, m.ID, "u1")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestDeleteMatch_ForeignMatch() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")
	m := s.seedMatch("u1", c.ID, jd.ID, 85, hiring.RecommendationStrongMatch)

	err := s.service.DeleteMatch(s.ctx, m.ID, "u2")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.GetMatch(s.ctx, m.ID, "u1")
	s.NoError(err)
}

func (s *ServiceSuite) TestTopMatches_DefaultThreshold() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")

	s.seedMatch("u1", c.ID, jd.ID, 95, hiring.RecommendationStrongMatch)
	s.seedMatch("u1", c.ID, jd.ID, 70, hiring.RecommendationPotentialFit)
	s.seedMatch("u1", c.ID, jd.ID, 69.9, hiring.RecommendationPotentialFit)
	s.seedMatch("u1", c.ID, jd.ID, 40, hiring.RecommendationNotRecommended)

	got, err := s.service.TopMatches(s.ctx, "u1", 0, 0)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(95.0, got[0].MatchPercentage)
	s.Equal(70.0, got[1].MatchPercentage)
}

func (s *ServiceSuite) TestTopMatches_CustomThresholdAndLimit() {
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")

	s.seedMatch("u1", c.ID, jd.ID, 95, hiring.RecommendationStrongMatch)
	s.seedMatch("u1", c.ID, jd.ID, 90, hiring.RecommendationStrongMatch)
	s.seedMatch("u1", c.ID, jd.ID, 85, hiring.RecommendationStrongMatch)

	got, err := s.service.TopMatches(s.ctx, "u1", 85, 2)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(95.0, got[0].MatchPercentage)

	_, err = s.service.TopMatches(s.ctx, "u1", 120, 0)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestCreateMatch_FreeTierLimitReached() {
	s.seedProfile("u1", profile.TierFree, profile.TierFree.UsageLimit())
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")

	_, err := s.service.CreateMatch(s.ctx, &hiring.Match{
		UserID:           "u1",
		CandidateID:      c.ID,
		JobDescriptionID: jd.ID,
		MatchPercentage:  85,
		Recommendation:   hiring.RecommendationStrongMatch,
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeRateLimited))
}

func (s *ServiceSuite) TestCreateMatch_UnderLimitCountsUsage() {
	s.seedProfile("u1", profile.TierFree, 3)
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")

	s.seedMatch("u1", c.ID, jd.ID, 85, hiring.RecommendationStrongMatch)

	p, err := s.profiles.FindByID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(4, p.MonthlyUsageCount)
}

func (s *ServiceSuite) TestCreateMatch_EnterpriseTierUnmetered() {
	s.seedProfile("u1", profile.TierEnterprise, 100000)
	c := s.seedCandidate("u1")
	jd := s.seedJobDescription("u1")

	m := s.seedMatch("u1", c.ID, jd.ID, 85, hiring.RecommendationStrongMatch)
	s.NotEmpty(m.ID)
}
