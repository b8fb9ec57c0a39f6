package services

import (
	"context"
	"strings"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/models/dto"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/repositories"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/logger"
)

// MetaService serves the about-page developer list and accepts visitor
// feedback.
type MetaService struct {
	feedback   repositories.FeedbackStore
	developers repositories.DeveloperStore
}

// NewMetaService creates a new meta service instance.
func NewMetaService(feedback repositories.FeedbackStore, developers repositories.DeveloperStore) *MetaService {
	return &MetaService{feedback: feedback, developers: developers}
}

// GetDevelopers returns the developer list for the about page.
func (s *MetaService) GetDevelopers(ctx context.Context) ([]models.Developer, error) {
	return s.developers.GetAll(ctx)
}

// SubmitFeedback stores one feedback message.
func (s *MetaService) SubmitFeedback(ctx context.Context, req dto.FeedbackRequest) (*models.Feedback, error) {
	fb := &models.Feedback{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}

	created, err := s.feedback.Create(ctx, fb)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("feedback_id", created.ID).Msg("Feedback received")
	return created, nil
}
