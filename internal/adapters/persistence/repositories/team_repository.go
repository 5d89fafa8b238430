package repositories

import (
	"context"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/core/domain"

	"gorm.io/gorm"
)

// teamRepository implements TeamRepository interface
type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// Create creates a new team
func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

// GetByID gets a team by ID
func (r *teamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// Update updates a team
func (r *teamRepository) Update(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

// Delete soft deletes a team
func (r *teamRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Team{}).Error
}

// List lists teams with pagination, optionally restricted to a branch
func (r *teamRepository) List(ctx context.Context, branchID string, offset, limit int) ([]*models.Team, int64, error) {
	var teams []*models.Team
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Team{})
	if branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&teams).Error; err != nil {
		return nil, 0, err
	}

	return teams, total, nil
}

// ListByBranch lists every team of a branch
func (r *teamRepository) ListByBranch(ctx context.Context, branchID string) ([]*models.Team, error) {
	var teams []*models.Team
	err := r.db.WithContext(ctx).Where("branch_id = ?", branchID).Order("name ASC").Find(&teams).Error
	return teams, err
}

// ListAll lists every team
func (r *teamRepository) ListAll(ctx context.Context) ([]*models.Team, error) {
	var teams []*models.Team
	err := r.db.WithContext(ctx).Order("name ASC").Find(&teams).Error
	return teams, err
}

// ExistsByName checks if a team name is taken by a team other than excludeID
func (r *teamRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Unscoped().Model(&models.Team{}).Where("name = ?", name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// AssignLeader makes userID the leader of teamID in a single transaction.
// The team row, the user's role and the user's team move together or not at all.
func (r *teamRepository) AssignLeader(ctx context.Context, teamID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.Where("id = ?", teamID).First(&team).Error; err != nil {
			return err
		}
		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		if err := tx.Model(&team).Update("leader_id", userID).Error; err != nil {
			return err
		}
		return tx.Model(&user).Updates(map[string]interface{}{
			"role":    domain.RoleLeader,
			"team_id": teamID,
		}).Error
	})
}

// Count counts teams
func (r *teamRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Team{}).Count(&count).Error
	return count, err
}
