package repositories

import (
	"context"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/core/domain"

	"gorm.io/gorm"
)

// goalRepository implements GoalRepository interface
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

// Create creates a new goal
func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

// GetByID gets a goal by ID
func (r *goalRepository) GetByID(ctx context.Context, id string) (*models.Goal, error) {
	var goal models.Goal
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// Update updates a goal
func (r *goalRepository) Update(ctx context.Context, goal *models.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

// Delete removes a goal
func (r *goalRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Goal{}).Error
}

// List lists goals matching filter with pagination
func (r *goalRepository) List(ctx context.Context, filter GoalFilter, offset, limit int) ([]*models.Goal, int64, error) {
	var goals []*models.Goal
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Goal{})
	if filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.TeamID != "" {
		query = query.Where("team_id = ?", filter.TeamID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if v := filter.Visibility; v != nil {
		if v.TeamID != "" {
			query = query.Where("(employee_id = ? OR team_id = ?)", v.OwnerID, v.TeamID)
		} else {
			query = query.Where("employee_id = ?", v.OwnerID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&goals).Error; err != nil {
		return nil, 0, err
	}

	return goals, total, nil
}

// CountByStatus returns goal counts per status, optionally for one employee
func (r *goalRepository) CountByStatus(ctx context.Context, employeeID string) (map[domain.GoalStatus]int64, error) {
	var rows []struct {
		Status domain.GoalStatus
		Total  int64
	}
	query := r.db.WithContext(ctx).Model(&models.Goal{}).Select("status, COUNT(*) AS total")
	if employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.GoalStatus]int64, len(domain.GoalStatuses))
	for _, status := range domain.GoalStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
