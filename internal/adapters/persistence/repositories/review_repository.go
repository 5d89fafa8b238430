package repositories

import (
	"context"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/core/domain"

	"gorm.io/gorm"
)

// reviewRepository implements ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new performance review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create creates a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.PerformanceReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// GetByID gets a review by ID
func (r *reviewRepository) GetByID(ctx context.Context, id string) (*models.PerformanceReview, error) {
	var review models.PerformanceReview
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Update updates a review
func (r *reviewRepository) Update(ctx context.Context, review *models.PerformanceReview) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete removes a review
func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PerformanceReview{}).Error
}

// List lists reviews matching filter with pagination
func (r *reviewRepository) List(ctx context.Context, filter ReviewFilter, offset, limit int) ([]*models.PerformanceReview, int64, error) {
	var reviews []*models.PerformanceReview
	var total int64

	query := r.db.WithContext(ctx).Model(&models.PerformanceReview{})
	if filter.RevieweeID != "" {
		query = query.Where("reviewee_id = ?", filter.RevieweeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ParticipantID != "" {
		query = query.Where("(reviewee_id = ? OR reviewer_id = ?)", filter.ParticipantID, filter.ParticipantID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// RatingsByReviewee returns the ratings of every review per reviewee.
// With no IDs it returns ratings for all reviewees.
func (r *reviewRepository) RatingsByReviewee(ctx context.Context, revieweeIDs ...string) (map[string][]*domain.Rating, error) {
	var reviews []*models.PerformanceReview
	query := r.db.WithContext(ctx).Select("id", "reviewee_id", "overall_rating", "created_at")
	if len(revieweeIDs) > 0 {
		query = query.Where("reviewee_id IN ?", revieweeIDs)
	}
	if err := query.Order("created_at ASC").Find(&reviews).Error; err != nil {
		return nil, err
	}

	ratings := make(map[string][]*domain.Rating)
	for _, review := range reviews {
		ratings[review.RevieweeID] = append(ratings[review.RevieweeID], review.OverallRating)
	}
	return ratings, nil
}

// CountByFinalized counts finalized and pending reviews
func (r *reviewRepository) CountByFinalized(ctx context.Context) (finalized, pending int64, err error) {
	if err = r.db.WithContext(ctx).Model(&models.PerformanceReview{}).
		Where("is_finalized = ?", true).
		Count(&finalized).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.WithContext(ctx).Model(&models.PerformanceReview{}).
		Where("is_finalized = ?", false).
		Count(&pending).Error; err != nil {
		return 0, 0, err
	}
	return finalized, pending, nil
}
