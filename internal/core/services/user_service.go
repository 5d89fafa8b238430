package services

import (
	"context"
	"strings"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/adapters/persistence/repositories"
	"kpi-dashboard/internal/core/domain"
	"kpi-dashboard/internal/core/policy"
	"kpi-dashboard/internal/pkg/pagination"
	"kpi-dashboard/internal/pkg/password"

	"github.com/sirupsen/logrus"
)

// UserService handles user management business logic
type UserService struct {
	userRepo         repositories.UserRepository
	teamRepo         repositories.TeamRepository
	branchRepo       repositories.BranchRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	log              logrus.FieldLogger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	branchRepo repositories.BranchRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	log logrus.FieldLogger,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		teamRepo:         teamRepo,
		branchRepo:       branchRepo,
		refreshTokenRepo: refreshTokenRepo,
		log:              log,
	}
}

// CreateUserInput represents create user input (admin)
type CreateUserInput struct {
	Email     string      `json:"email" validate:"required,email,max=191"`
	Password  string      `json:"password" validate:"required,min=8,max=72"`
	FirstName string      `json:"firstName" validate:"required,max=100"`
	LastName  string      `json:"lastName" validate:"required,max=100"`
	Position  string      `json:"position" validate:"max=100"`
	Role      domain.Role `json:"role" validate:"omitempty,oneof=SUPER_ADMIN ADMIN LEADER SUB_LEADER MEMBER"`
	TeamID    *string     `json:"teamId"`
	BranchID  *string     `json:"branchId"`
}

// UpdateUserInput represents update user input.
// TeamID, BranchID and IsActive are admin-only; an empty id clears the link.
type UpdateUserInput struct {
	Email     *string `json:"email" validate:"omitempty,email,max=191"`
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Position  *string `json:"position" validate:"omitempty,max=100"`
	TeamID    *string `json:"teamId"`
	BranchID  *string `json:"branchId"`
	IsActive  *bool   `json:"isActive"`
}

// UpdateRoleInput represents role change input
type UpdateRoleInput struct {
	Role domain.Role `json:"role" validate:"required,oneof=SUPER_ADMIN ADMIN LEADER SUB_LEADER MEMBER"`
}

// ListUsers lists users with filters and pagination
func (s *UserService) ListUsers(ctx context.Context, filter repositories.UserFilter, page *pagination.Params) ([]*models.User, int64, error) {
	if filter.Role != "" && !filter.Role.IsValid() {
		return nil, 0, ErrInvalidRole
	}
	return s.userRepo.List(ctx, filter, page.Offset, page.Limit)
}

// GetUser returns a user visible to the actor
func (s *UserService) GetUser(ctx context.Context, actor *domain.Actor, id string) (*models.User, error) {
	if err := policy.OwnerOrAdmin(actor, id); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return user, nil
}

// CreateUser creates a user on behalf of an admin
func (s *UserService) CreateUser(ctx context.Context, actor *domain.Actor, input *CreateUserInput) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleMember
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if role == domain.RoleSuperAdmin && actor.Role != domain.RoleSuperAdmin {
		return nil, ErrSuperAdminOnly
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	teamID, err := s.resolveTeam(ctx, input.TeamID)
	if err != nil {
		return nil, err
	}
	branchID, err := s.resolveBranch(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Position:  strings.TrimSpace(input.Position),
		Role:      role,
		TeamID:    teamID,
		BranchID:  branchID,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"role":     user.Role,
		"actor_id": actor.ID,
	}).Info("User created")

	return user, nil
}

// UpdateUser updates a user. Owners may edit their profile; admin-tier
// actors may also move the user between teams and branches and toggle
// isActive.
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.Actor, id string, input *UpdateUserInput) (*models.User, error) {
	if err := policy.OwnerOrAdmin(actor, id); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && (input.TeamID != nil || input.BranchID != nil || input.IsActive != nil) {
		return nil, ErrAdminFieldsOnly
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Position != nil {
		user.Position = strings.TrimSpace(*input.Position)
	}

	if input.TeamID != nil {
		if user.TeamID, err = s.resolveTeam(ctx, input.TeamID); err != nil {
			return nil, err
		}
	}
	if input.BranchID != nil {
		if user.BranchID, err = s.resolveBranch(ctx, input.BranchID); err != nil {
			return nil, err
		}
	}

	if input.IsActive != nil && *input.IsActive != user.IsActive {
		if !*input.IsActive {
			if err := s.guardLastSuperAdmin(ctx, user, policy.OpDeactivate); err != nil {
				return nil, err
			}
		}
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if !user.IsActive {
		if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// UpdateUserRole changes a user's role
func (s *UserService) UpdateUserRole(ctx context.Context, actor *domain.Actor, id string, role domain.Role) (*models.User, error) {
	if id == actor.ID {
		return nil, ErrCannotChangeOwnRole
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if user.Role == role {
		return user, nil
	}

	if err := s.guardLastSuperAdmin(ctx, user, policy.OpChangeRole); err != nil {
		return nil, err
	}
	if role == domain.RoleSuperAdmin && actor.Role != domain.RoleSuperAdmin {
		return nil, ErrSuperAdminOnly
	}

	previous := user.Role
	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"from":     previous,
		"to":       role,
		"actor_id": actor.ID,
	}).Info("User role changed")

	return user, nil
}

// DeleteUser soft deletes a user and revokes their sessions
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.Actor, id string) error {
	if id == actor.ID {
		return ErrCannotDeleteSelf
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}

	if err := s.guardLastSuperAdmin(ctx, user, policy.OpDelete); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, id); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"user_id": id, "actor_id": actor.ID}).Info("User deleted")
	return nil
}

func (s *UserService) guardLastSuperAdmin(ctx context.Context, user *models.User, op policy.SuperAdminOp) error {
	return guardLastSuperAdmin(ctx, s.userRepo, user, op)
}

// guardLastSuperAdmin runs policy.GuardLastSuperAdmin against the current
// number of active super admins. Any path that rewrites a user's role or
// active flag goes through it.
func guardLastSuperAdmin(ctx context.Context, userRepo repositories.UserRepository, user *models.User, op policy.SuperAdminOp) error {
	if user.Role != domain.RoleSuperAdmin {
		return nil
	}
	count, err := userRepo.CountActiveByRole(ctx, domain.RoleSuperAdmin)
	if err != nil {
		return err
	}
	return policy.GuardLastSuperAdmin(user.Role, count, op)
}

// resolveTeam checks that a referenced team exists. Empty clears the link.
func (s *UserService) resolveTeam(ctx context.Context, teamID *string) (*string, error) {
	teamID = emptyToNil(teamID)
	if teamID == nil {
		return nil, nil
	}
	if _, err := s.teamRepo.GetByID(ctx, *teamID); err != nil {
		return nil, notFound(err, ErrTeamNotFound)
	}
	return strPtr(*teamID), nil
}

// resolveBranch checks that a referenced branch exists. Empty clears the link.
func (s *UserService) resolveBranch(ctx context.Context, branchID *string) (*string, error) {
	branchID = emptyToNil(branchID)
	if branchID == nil {
		return nil, nil
	}
	if _, err := s.branchRepo.GetByID(ctx, *branchID); err != nil {
		return nil, notFound(err, ErrBranchNotFound)
	}
	return strPtr(*branchID), nil
}
