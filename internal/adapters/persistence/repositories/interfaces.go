package repositories

import (
	"context"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/core/domain"
)

// UserFilter narrows user listings. Empty fields are ignored.
type UserFilter struct {
	Search   string
	Role     domain.Role
	TeamID   string
	BranchID string
}

// GoalFilter narrows goal listings. Empty fields are ignored.
type GoalFilter struct {
	EmployeeID string
	TeamID     string
	Status     domain.GoalStatus
	// Visibility limits results to goals owned by OwnerID or assigned to TeamID
	Visibility *GoalVisibility
}

// GoalVisibility is the "own or my team" scope used for leaders
type GoalVisibility struct {
	OwnerID string
	TeamID  string
}

// ReviewFilter narrows review listings. Empty fields are ignored.
type ReviewFilter struct {
	RevieweeID string
	Status     domain.ReviewStatus
	// ParticipantID matches reviews where the user is reviewee or reviewer
	ParticipantID string
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter, offset, limit int) ([]*models.User, int64, error)
	ListByTeam(ctx context.Context, teamID string) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountActiveByRole(ctx context.Context, role domain.Role) (int64, error)
	CountByRole(ctx context.Context) (map[domain.Role]int64, error)
	SetTeam(ctx context.Context, userID string, teamID *string) error
}

// TeamRepository defines team repository interface
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, branchID string, offset, limit int) ([]*models.Team, int64, error)
	ListByBranch(ctx context.Context, branchID string) ([]*models.Team, error)
	ListAll(ctx context.Context) ([]*models.Team, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	AssignLeader(ctx context.Context, teamID, userID string) error
	Count(ctx context.Context) (int64, error)
}

// BranchRepository defines branch repository interface
type BranchRepository interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, id string) (*models.Branch, error)
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.Branch, int64, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// GoalRepository defines goal repository interface
type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	GetByID(ctx context.Context, id string) (*models.Goal, error)
	Update(ctx context.Context, goal *models.Goal) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter GoalFilter, offset, limit int) ([]*models.Goal, int64, error)
	CountByStatus(ctx context.Context, employeeID string) (map[domain.GoalStatus]int64, error)
}

// ReviewRepository defines performance review repository interface
type ReviewRepository interface {
	Create(ctx context.Context, review *models.PerformanceReview) error
	GetByID(ctx context.Context, id string) (*models.PerformanceReview, error)
	Update(ctx context.Context, review *models.PerformanceReview) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ReviewFilter, offset, limit int) ([]*models.PerformanceReview, int64, error)
	RatingsByReviewee(ctx context.Context, revieweeIDs ...string) (map[string][]*domain.Rating, error)
	CountByFinalized(ctx context.Context) (finalized, pending int64, err error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id string) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
