package services

import (
	"context"
	"fmt"

	"github.com/mentorstack/mentorstack-api/config"
	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/repository"
	apperrors "github.com/mentorstack/mentorstack-api/pkg/errors"
	"github.com/mentorstack/mentorstack-api/pkg/httpclient"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
	"github.com/mentorstack/mentorstack-api/pkg/trigger"
	"go.uber.org/zap"
)

// IdentityService maps an authenticated account to its mentor profile.
// The three branches are tried in priority order: already linked, unclaimed
// profile matching the account's phone, neither. First match wins.
type IdentityService struct {
	mentorRepo repository.MentorRepositoryInterface
	config     *config.Config
	httpClient httpclient.Client
}

// NewIdentityService creates a new identity service
func NewIdentityService(
	mentorRepo repository.MentorRepositoryInterface,
	cfg *config.Config,
	httpClient httpclient.Client,
) *IdentityService {
	return &IdentityService{
		mentorRepo: mentorRepo,
		config:     cfg,
		httpClient: httpClient,
	}
}

// Resolve returns the mentor profile for an authenticated account. A store
// failure here is fatal for the session: nothing downstream works without a
// mentor identifier.
func (s *IdentityService) Resolve(ctx context.Context, identity *models.Identity) (*models.ResolveResult, error) {
	if identity == nil || identity.AccountID == "" {
		return nil, apperrors.InvalidInputError("account_id", "missing")
	}

	// Branch one: account already linked to a mentor
	mentor, err := s.mentorRepo.GetByAccountID(ctx, identity.AccountID)
	if err == nil {
		metrics.IdentityResolutions.WithLabelValues("linked").Inc()
		return &models.ResolveResult{Mentor: mentor, Outcome: models.ResolveLinked}, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		metrics.IdentityResolutions.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("identity resolution failed: %w", err)
	}

	// Branch two: unclaimed profile matching the account's phone
	if identity.Phone != "" {
		unclaimed, err := s.mentorRepo.GetUnlinkedByPhone(ctx, identity.Phone)
		if err == nil {
			return s.claim(ctx, identity, unclaimed)
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			metrics.IdentityResolutions.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("identity resolution failed: %w", err)
		}
	}

	// Branch three: no profile anywhere, create a minimal pending one
	created, err := s.mentorRepo.CreatePending(ctx, identity.AccountID, identity.Phone, identity.Email)
	if err != nil {
		metrics.IdentityResolutions.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("identity resolution failed: %w", err)
	}

	metrics.IdentityResolutions.WithLabelValues("created").Inc()
	logger.Info("Created pending mentor for new account",
		zap.String("mentor_id", created.ID),
		zap.String("account_id", identity.AccountID))

	return &models.ResolveResult{Mentor: created, Outcome: models.ResolveCreated}, nil
}

// claim links the account to an existing unclaimed profile
func (s *IdentityService) claim(ctx context.Context, identity *models.Identity, unclaimed *models.Mentor) (*models.ResolveResult, error) {
	linked, err := s.mentorRepo.LinkAccount(ctx, unclaimed.ID, identity.AccountID)
	if err != nil {
		// A concurrent claim may have taken the row; the account wins it
		// on that path, so check once more before giving up.
		if apperrors.Is(err, apperrors.ErrNotFound) {
			if mentor, retryErr := s.mentorRepo.GetByAccountID(ctx, identity.AccountID); retryErr == nil {
				metrics.IdentityResolutions.WithLabelValues("linked").Inc()
				return &models.ResolveResult{Mentor: mentor, Outcome: models.ResolveLinked}, nil
			}
		}
		metrics.IdentityResolutions.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("identity resolution failed: %w", err)
	}

	metrics.IdentityResolutions.WithLabelValues("claimed").Inc()
	logger.Info("Linked account to existing mentor",
		zap.String("mentor_id", linked.ID),
		zap.String("account_id", identity.AccountID))

	if s.config != nil && s.config.EventTriggers.MentorClaimedTriggerURL != "" {
		trigger.CallAsyncWithPayload(s.config.EventTriggers.MentorClaimedTriggerURL, map[string]interface{}{
			"mentor_id":  linked.ID,
			"account_id": identity.AccountID,
		}, s.httpClient)
	}

	return &models.ResolveResult{Mentor: linked, Outcome: models.ResolveClaimed}, nil
}
