package services

import (
	"context"
	"time"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/adapters/persistence/repositories"
	"kpi-dashboard/internal/core/domain"
	"kpi-dashboard/internal/core/policy"
	"kpi-dashboard/internal/core/scoring"
	"kpi-dashboard/internal/pkg/pagination"

	"github.com/sirupsen/logrus"
)

// ReviewService handles performance reviews
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	userRepo   repositories.UserRepository
	teamRepo   repositories.TeamRepository
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewReviewService creates a new performance review service
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	log logrus.FieldLogger,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		teamRepo:   teamRepo,
		log:        log,
		now:        time.Now,
	}
}

// CreateReviewInput represents create review input
type CreateReviewInput struct {
	RevieweeID    string              `json:"revieweeId" validate:"required"`
	ReviewerID    *string             `json:"reviewerId"`
	PeriodStart   *time.Time          `json:"periodStart"`
	PeriodEnd     *time.Time          `json:"periodEnd"`
	OverallRating *domain.Rating      `json:"overallRating" validate:"omitempty,oneof=EXCEEDS_EXPECTATIONS MEETS_EXPECTATIONS NEEDS_IMPROVEMENT UNSATISFACTORY"`
	Strengths     string              `json:"strengths"`
	Improvements  string              `json:"improvements"`
	Feedback      string              `json:"feedback"`
	Status        domain.ReviewStatus `json:"status" validate:"omitempty,oneof=DRAFT SUBMITTED"`
}

// UpdateReviewInput represents update review input
type UpdateReviewInput struct {
	ReviewerID    *string              `json:"reviewerId"`
	PeriodStart   *time.Time           `json:"periodStart"`
	PeriodEnd     *time.Time           `json:"periodEnd"`
	OverallRating *domain.Rating       `json:"overallRating" validate:"omitempty,oneof=EXCEEDS_EXPECTATIONS MEETS_EXPECTATIONS NEEDS_IMPROVEMENT UNSATISFACTORY"`
	Strengths     *string              `json:"strengths"`
	Improvements  *string              `json:"improvements"`
	Feedback      *string              `json:"feedback"`
	Status        *domain.ReviewStatus `json:"status" validate:"omitempty,oneof=DRAFT SUBMITTED"`
}

// List lists every review for admins, otherwise the reviews where the
// actor is reviewee or reviewer.
func (s *ReviewService) List(ctx context.Context, actor *domain.Actor, status domain.ReviewStatus, page *pagination.Params) ([]*models.PerformanceReview, int64, error) {
	filter := repositories.ReviewFilter{Status: status}
	if !actor.IsAdmin() {
		filter.ParticipantID = actor.ID
	}
	return s.reviewRepo.List(ctx, filter, page.Offset, page.Limit)
}

// Get returns a review the actor may view
func (s *ReviewService) Get(ctx context.Context, actor *domain.Actor, id string) (*models.PerformanceReview, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrReviewNotFound)
	}
	if err := s.authorize(ctx, actor, policy.ReviewView, review.RevieweeID, review.ReviewerID); err != nil {
		return nil, err
	}
	return review, nil
}

// ListByEmployee lists the reviews of one employee
func (s *ReviewService) ListByEmployee(ctx context.Context, actor *domain.Actor, employeeID string, page *pagination.Params) ([]*models.PerformanceReview, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, employeeID); err != nil {
		return nil, 0, notFound(err, ErrEmployeeNotFound)
	}
	if err := s.authorize(ctx, actor, policy.ReviewView, employeeID, nil); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.List(ctx, repositories.ReviewFilter{RevieweeID: employeeID}, page.Offset, page.Limit)
}

// Create creates a review. The reviewer defaults to the actor.
func (s *ReviewService) Create(ctx context.Context, actor *domain.Actor, input *CreateReviewInput) (*models.PerformanceReview, error) {
	if err := s.authorize(ctx, actor, policy.ReviewCreate, input.RevieweeID, nil); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, input.RevieweeID); err != nil {
		return nil, notFound(err, ErrEmployeeNotFound)
	}
	if input.OverallRating != nil && !scoring.IsValidRating(*input.OverallRating) {
		return nil, ErrInvalidRating
	}

	reviewerID := emptyToNil(input.ReviewerID)
	if reviewerID == nil {
		reviewerID = strPtr(actor.ID)
	} else if _, err := s.userRepo.GetByID(ctx, *reviewerID); err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	status := input.Status
	if status == "" {
		status = domain.ReviewDraft
	}

	review := &models.PerformanceReview{
		RevieweeID:    input.RevieweeID,
		ReviewerID:    reviewerID,
		PeriodStart:   input.PeriodStart,
		PeriodEnd:     input.PeriodEnd,
		OverallRating: input.OverallRating,
		Strengths:     input.Strengths,
		Improvements:  input.Improvements,
		Feedback:      input.Feedback,
		Status:        status,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"review_id":   review.ID,
		"reviewee_id": review.RevieweeID,
		"actor_id":    actor.ID,
	}).Info("Performance review created")

	return review, nil
}

// Update edits a review. Finalized reviews are read-only for non-admins.
func (s *ReviewService) Update(ctx context.Context, actor *domain.Actor, id string, input *UpdateReviewInput) (*models.PerformanceReview, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrReviewNotFound)
	}
	if err := s.authorize(ctx, actor, policy.ReviewUpdate, review.RevieweeID, review.ReviewerID); err != nil {
		return nil, err
	}
	if review.IsFinalized && !actor.IsAdmin() {
		return nil, ErrReviewFinalized
	}
	if input.OverallRating != nil && !scoring.IsValidRating(*input.OverallRating) {
		return nil, ErrInvalidRating
	}

	if input.ReviewerID != nil {
		reviewerID := emptyToNil(input.ReviewerID)
		if reviewerID != nil {
			if _, err := s.userRepo.GetByID(ctx, *reviewerID); err != nil {
				return nil, notFound(err, ErrUserNotFound)
			}
		}
		review.ReviewerID = reviewerID
	}
	if input.PeriodStart != nil {
		review.PeriodStart = input.PeriodStart
	}
	if input.PeriodEnd != nil {
		review.PeriodEnd = input.PeriodEnd
	}
	if input.OverallRating != nil {
		review.OverallRating = input.OverallRating
	}
	if input.Strengths != nil {
		review.Strengths = *input.Strengths
	}
	if input.Improvements != nil {
		review.Improvements = *input.Improvements
	}
	if input.Feedback != nil {
		review.Feedback = *input.Feedback
	}
	if input.Status != nil && !review.IsFinalized {
		review.Status = *input.Status
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Finalize locks a rated review and marks it COMPLETED
func (s *ReviewService) Finalize(ctx context.Context, actor *domain.Actor, id string) (*models.PerformanceReview, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrReviewNotFound)
	}
	if err := s.authorize(ctx, actor, policy.ReviewFinalize, review.RevieweeID, review.ReviewerID); err != nil {
		return nil, err
	}
	if review.IsFinalized {
		return nil, ErrAlreadyFinalized
	}
	if review.OverallRating == nil {
		return nil, ErrRatingRequired
	}

	now := s.now()
	review.IsFinalized = true
	review.FinalizedAt = &now
	review.Status = domain.ReviewCompleted

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"review_id": review.ID, "actor_id": actor.ID}).Info("Performance review finalized")
	return review, nil
}

// Delete removes a review
func (s *ReviewService) Delete(ctx context.Context, actor *domain.Actor, id string) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, ErrReviewNotFound)
	}
	if err := s.authorize(ctx, actor, policy.ReviewDelete, review.RevieweeID, review.ReviewerID); err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"review_id": id, "actor_id": actor.ID}).Info("Performance review deleted")
	return nil
}

// authorize evaluates the review policy table for action
func (s *ReviewService) authorize(ctx context.Context, actor *domain.Actor, action policy.ReviewAction, revieweeID string, reviewerID *string) error {
	subject := policy.ReviewSubject{RevieweeID: revieweeID, ReviewerID: reviewerID}

	if policy.ReviewPolicy[action].TeamLeader && !actor.IsAdmin() {
		leaderID, err := s.teamLeaderOf(ctx, revieweeID)
		if err != nil {
			return err
		}
		subject.RevieweeTeamLeaderID = leaderID
	}

	if !policy.CanReview(actor, action, subject) {
		return ErrForbidden
	}
	return nil
}

// teamLeaderOf returns the leader of the reviewee's team, nil when the
// reviewee, their team or its leader is missing.
func (s *ReviewService) teamLeaderOf(ctx context.Context, revieweeID string) (*string, error) {
	reviewee, err := s.userRepo.GetByID(ctx, revieweeID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if reviewee.TeamID == nil {
		return nil, nil
	}

	team, err := s.teamRepo.GetByID(ctx, *reviewee.TeamID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return team.LeaderID, nil
}
