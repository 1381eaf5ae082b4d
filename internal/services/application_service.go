package services

import (
	"context"

	"github.com/mentorstack/mentorstack-api/config"
	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/repository"
	"github.com/mentorstack/mentorstack-api/pkg/httpclient"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
	"github.com/mentorstack/mentorstack-api/pkg/trigger"
	"go.uber.org/zap"
)

// ApplicationService handles the public mentor application intake. The
// created profile stays unclaimed until the applicant signs in with the
// same phone number.
type ApplicationService struct {
	mentorRepo repository.MentorRepositoryInterface
	config     *config.Config
	httpClient httpclient.Client
}

// NewApplicationService creates a new application service
func NewApplicationService(
	mentorRepo repository.MentorRepositoryInterface,
	cfg *config.Config,
	httpClient httpclient.Client,
) *ApplicationService {
	return &ApplicationService{
		mentorRepo: mentorRepo,
		config:     cfg,
		httpClient: httpClient,
	}
}

// Apply records a new mentor application in pending status
func (s *ApplicationService) Apply(ctx context.Context, req *models.ApplyRequest) (*models.ApplyResponse, error) {
	mentor, err := s.mentorRepo.CreateApplication(ctx, req)
	if err != nil {
		metrics.MentorApplications.WithLabelValues("error").Inc()
		logger.Error("Failed to create mentor application", zap.Error(err))
		return nil, err
	}

	metrics.MentorApplications.WithLabelValues("success").Inc()
	logger.Info("Mentor application received",
		zap.String("mentor_id", mentor.ID),
		zap.String("phone", req.Phone))

	if s.config != nil && s.config.EventTriggers.MentorAppliedTriggerURL != "" {
		trigger.CallAsyncWithPayload(s.config.EventTriggers.MentorAppliedTriggerURL, map[string]interface{}{
			"mentor_id": mentor.ID,
			"full_name": req.FullName,
			"phone":     req.Phone,
		}, s.httpClient)
	}

	return &models.ApplyResponse{Success: true, MentorID: mentor.ID}, nil
}
