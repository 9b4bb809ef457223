package service

import (
	"smarthire/internal/hiring"
	dErrors "smarthire/pkg/domain-errors"
)

func (s *ServiceSuite) TestCreateJobDescription_AssignsID() {
	jd := s.seedJobDescription("u1")

	s.NotEmpty(jd.ID)

	got, err := s.service.GetJobDescription(s.ctx, jd.ID, "u1")
	s.Require().NoError(err)
	s.Equal("Senior Go Engineer", got.Title)
}

func (s *ServiceSuite) TestCreateJobDescription_RequiresTitle() {
	_, err := s.service.CreateJobDescription(s.ctx, &hiring.JobDescription{
		UserID:      "u1",
		Description: "Build backend services",
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.Equal("title", dErrors.FieldOf(err))
}

func (s *ServiceSuite) TestGetJobDescription_OtherUserSeesNotFound() {
	jd := s.seedJobDescription("u1")

	_, err := s.service.GetJobDescription(s.ctx, jd.ID, "u2")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpdateJobDescription() {
	jd := s.seedJobDescription("u1")

	jd.Title = "Staff Go Engineer"
	s.Require().NoError(s.service.UpdateJobDescription(s.ctx, jd))

	got, err := s.service.GetJobDescription(s.ctx, jd.ID, "u1")
	s.Require().NoError(err)
	s.Equal("Staff Go Engineer", got.Title)
}

func (s *ServiceSuite) TestDeleteJobDescription() {
	jd := s.seedJobDescription("u1")

	err := s.service.DeleteJobDescription(s.ctx, jd.ID, "u2")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound), "ownership enforced")

	s.Require().NoError(s.service.DeleteJobDescription(s.ctx, jd.ID, "u1"))
}

func (s *ServiceSuite) TestSearchJobDescriptions() {
	jd := s.seedJobDescription("u1")

	hits, err := s.service.SearchJobDescriptions(s.ctx, "u1", []float32{1, 0, 0}, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(hits, 1)
	s.Equal(jd.ID, hits[0].ID)
}

func (s *ServiceSuite) TestRecordJobDescriptionUse() {
	jd := s.seedJobDescription("u1")

	s.Require().NoError(s.service.RecordJobDescriptionUse(s.ctx, jd.ID, "u1"))
	s.Require().NoError(s.service.RecordJobDescriptionUse(s.ctx, jd.ID, "u1"))

	got, err := s.service.GetJobDescription(s.ctx, jd.ID, "u1")
	s.Require().NoError(err)
	s.Equal(2, got.TimesUsed)
	s.NotNil(got.LastUsedAt)
}

func (s *ServiceSuite) TestMostUsedJobDescriptions() {
	heavy := s.seedJobDescription("u1")
	light := s.seedJobDescription("u1")
	s.seedJobDescription("u1") // never used

	for range 3 {
		s.Require().NoError(s.service.RecordJobDescriptionUse(s.ctx, heavy.ID, "u1"))
	}
	s.Require().NoError(s.service.RecordJobDescriptionUse(s.ctx, light.ID, "u1"))

	got, err := s.service.MostUsedJobDescriptions(s.ctx, "u1", 2)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(heavy.ID, got[0].ID)
	s.Equal(light.ID, got[1].ID)
}
