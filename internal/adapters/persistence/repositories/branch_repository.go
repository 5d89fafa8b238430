package repositories

import (
	"context"

	"kpi-dashboard/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// branchRepository implements BranchRepository interface
type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

// Create creates a new branch
func (r *branchRepository) Create(ctx context.Context, branch *models.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

// GetByID gets a branch by ID
func (r *branchRepository) GetByID(ctx context.Context, id string) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

// Update updates a branch
func (r *branchRepository) Update(ctx context.Context, branch *models.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

// Delete soft deletes a branch
func (r *branchRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Branch{}).Error
}

// List lists branches with pagination
func (r *branchRepository) List(ctx context.Context, offset, limit int) ([]*models.Branch, int64, error) {
	var branches []*models.Branch
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Branch{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Order("name ASC").Offset(offset).Limit(limit).Find(&branches).Error; err != nil {
		return nil, 0, err
	}

	return branches, total, nil
}

// ExistsByName checks if a branch name is taken by a branch other than excludeID
func (r *branchRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Unscoped().Model(&models.Branch{}).Where("name = ?", name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Count counts branches
func (r *branchRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Branch{}).Count(&count).Error
	return count, err
}
