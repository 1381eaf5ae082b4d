package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mentorstack/mentorstack-api/internal/models"
	apperrors "github.com/mentorstack/mentorstack-api/pkg/errors"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
	"go.uber.org/zap"
)

const mentorColumns = `
	m.id, m.account_id, m.full_name, m.email, m.phone, m.location, m.bio,
	m.title, m.company, m.years_of_experience, m.hourly_rate,
	m.linkedin_url, m.github_url, m.portfolio_url, m.profile_image_url,
	m.status, m.created_at, m.updated_at`

func scanMentor(row pgx.Row) (*models.Mentor, error) {
	var m models.Mentor
	err := row.Scan(
		&m.ID, &m.AccountID, &m.FullName, &m.Email, &m.Phone, &m.Location, &m.Bio,
		&m.Title, &m.Company, &m.YearsOfExperience, &m.HourlyRate,
		&m.LinkedInURL, &m.GitHubURL, &m.PortfolioURL, &m.ProfileImageURL,
		&m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// getMentorByField is a helper that fetches a mentor by a specific field condition
func (c *Client) getMentorByField(ctx context.Context, operation, whereClause string, arg interface{}) (*models.Mentor, error) {
	start := time.Now()

	query := fmt.Sprintf("SELECT %s FROM mentors m WHERE %s", mentorColumns, whereClause)

	mentor, err := scanMentor(c.pool.QueryRow(ctx, query, arg))

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("mentor")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query mentor: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return mentor, nil
}

// GetMentorByID fetches a single mentor by primary key
func (c *Client) GetMentorByID(ctx context.Context, mentorID string) (*models.Mentor, error) {
	return c.getMentorByField(ctx, "getMentorByID", "m.id = $1", mentorID)
}

// GetMentorByAccountID fetches the mentor linked to an auth account
func (c *Client) GetMentorByAccountID(ctx context.Context, accountID string) (*models.Mentor, error) {
	return c.getMentorByField(ctx, "getMentorByAccountID", "m.account_id = $1", accountID)
}

// GetUnlinkedMentorByPhone fetches a mentor matching the phone number that
// has not been claimed by any account yet
func (c *Client) GetUnlinkedMentorByPhone(ctx context.Context, phone string) (*models.Mentor, error) {
	return c.getMentorByField(ctx, "getUnlinkedMentorByPhone",
		"m.phone = $1 AND m.account_id IS NULL", phone)
}

// LinkMentorAccount attaches an auth account to an unclaimed mentor row and
// returns the updated mentor. The account_id IS NULL guard makes the claim
// atomic: a concurrent claim loses with not found.
func (c *Client) LinkMentorAccount(ctx context.Context, mentorID, accountID string) (*models.Mentor, error) {
	start := time.Now()
	operation := "linkMentorAccount"

	query := fmt.Sprintf(`
		UPDATE mentors m SET account_id = $1, updated_at = NOW()
		WHERE m.id = $2 AND m.account_id IS NULL
		RETURNING %s`, mentorColumns)

	mentor, err := scanMentor(c.pool.QueryRow(ctx, query, accountID, mentorID))

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("unclaimed mentor")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to link mentor account: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("mentor_id", mentorID))

	return mentor, nil
}

// CreatePendingMentor inserts a minimal pending profile for a first-time
// sign-in with no matching application on file
func (c *Client) CreatePendingMentor(ctx context.Context, accountID, phone, email string) (*models.Mentor, error) {
	start := time.Now()
	operation := "createPendingMentor"

	query := fmt.Sprintf(`
		INSERT INTO mentors (account_id, full_name, email, phone, status)
		VALUES ($1, '', $2, $3, 'pending')
		RETURNING %s`, mentorColumns)

	var m models.Mentor
	err := c.pool.QueryRow(ctx, query, accountID, email, phone).Scan(
		&m.ID, &m.AccountID, &m.FullName, &m.Email, &m.Phone, &m.Location, &m.Bio,
		&m.Title, &m.Company, &m.YearsOfExperience, &m.HourlyRate,
		&m.LinkedInURL, &m.GitHubURL, &m.PortfolioURL, &m.ProfileImageURL,
		&m.Status, &m.CreatedAt, &m.UpdatedAt,
	)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create pending mentor: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("mentor_id", m.ID))

	return &m, nil
}

// CreateMentorApplication inserts an unclaimed pending profile from the
// public application form
func (c *Client) CreateMentorApplication(ctx context.Context, req *models.ApplyRequest) (*models.Mentor, error) {
	start := time.Now()
	operation := "createMentorApplication"

	query := fmt.Sprintf(`
		INSERT INTO mentors (full_name, email, phone, title, company, bio, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING %s`, mentorColumns)

	mentor, err := scanMentor(c.pool.QueryRow(ctx, query,
		req.FullName, req.Email, req.Phone, req.Title, req.Company, req.Bio))

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create mentor application: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("mentor_id", mentor.ID))

	return mentor, nil
}

// UpdateMentorProfile updates the editable profile fields
func (c *Client) UpdateMentorProfile(ctx context.Context, mentorID string, req *models.SaveProfileRequest) error {
	start := time.Now()
	operation := "updateMentorProfile"

	query := `
		UPDATE mentors SET
			full_name = $1, phone = $2, location = $3, bio = $4, title = $5,
			company = $6, years_of_experience = $7, hourly_rate = $8,
			linkedin_url = $9, github_url = $10, portfolio_url = $11,
			updated_at = NOW()
		WHERE id = $12`

	result, err := c.pool.Exec(ctx, query,
		req.FullName, req.Phone, req.Location, req.Bio, req.Title,
		req.Company, req.YearsOfExperience, req.HourlyRate,
		req.LinkedInURL, req.GitHubURL, req.PortfolioURL,
		mentorID)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to update mentor profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("mentor")
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("mentor_id", mentorID))

	return nil
}

// UpdateMentorImage updates a mentor's profile image URL
func (c *Client) UpdateMentorImage(ctx context.Context, mentorID, imageURL string) error {
	start := time.Now()
	operation := "updateMentorImage"

	query := "UPDATE mentors SET profile_image_url = $1, updated_at = NOW() WHERE id = $2"
	result, err := c.pool.Exec(ctx, query, imageURL, mentorID)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to update mentor image: %w", err)
	}

	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("mentor")
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("mentor_id", mentorID))

	return nil
}
