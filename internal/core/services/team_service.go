package services

import (
	"context"
	"strings"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/adapters/persistence/repositories"
	"kpi-dashboard/internal/core/domain"
	"kpi-dashboard/internal/core/policy"
	"kpi-dashboard/internal/pkg/pagination"

	"github.com/sirupsen/logrus"
)

// TeamService handles team management
type TeamService struct {
	teamRepo   repositories.TeamRepository
	userRepo   repositories.UserRepository
	branchRepo repositories.BranchRepository
	log        logrus.FieldLogger
}

// NewTeamService creates a new team service
func NewTeamService(
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	branchRepo repositories.BranchRepository,
	log logrus.FieldLogger,
) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		branchRepo: branchRepo,
		log:        log,
	}
}

// CreateTeamInput represents create team input
type CreateTeamInput struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Description string  `json:"description"`
	BranchID    *string `json:"branchId"`
	LeaderID    *string `json:"leaderId"`
}

// UpdateTeamInput represents update team input
type UpdateTeamInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description"`
	BranchID    *string `json:"branchId"`
	IsActive    *bool   `json:"isActive"`
}

// SetLeaderInput represents leader reassignment input
type SetLeaderInput struct {
	LeaderID string `json:"leaderId" validate:"required"`
}

// AddMemberInput represents add member input
type AddMemberInput struct {
	UserID string `json:"userId" validate:"required"`
}

// TeamDetail is a team with its members
type TeamDetail struct {
	*models.Team
	Members []*models.User `json:"members"`
}

// List lists teams with pagination, optionally for one branch
func (s *TeamService) List(ctx context.Context, branchID string, page *pagination.Params) ([]*models.Team, int64, error) {
	return s.teamRepo.List(ctx, branchID, page.Offset, page.Limit)
}

// Get returns a team with its members
func (s *TeamService) Get(ctx context.Context, id string) (*TeamDetail, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTeamNotFound)
	}

	members, err := s.userRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TeamDetail{Team: team, Members: members}, nil
}

// Create creates a team. When a leader is given, attaching the user to
// the team is best effort: a failure is logged and the team is kept.
func (s *TeamService) Create(ctx context.Context, input *CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	exists, err := s.teamRepo.ExistsByName(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTeamNameExists
	}

	branchID := emptyToNil(input.BranchID)
	if branchID != nil {
		if _, err := s.branchRepo.GetByID(ctx, *branchID); err != nil {
			return nil, notFound(err, ErrBranchNotFound)
		}
	}

	team := &models.Team{
		Name:        name,
		Description: input.Description,
		BranchID:    branchID,
		LeaderID:    emptyToNil(input.LeaderID),
		IsActive:    true,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	if team.LeaderID != nil {
		if err := s.attachLeader(ctx, team, *team.LeaderID); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"team_id":   team.ID,
				"leader_id": *team.LeaderID,
			}).Warn("Team created but leader could not be attached")
		}
	}

	s.log.WithField("team_id", team.ID).Info("Team created")
	return team, nil
}

func (s *TeamService) attachLeader(ctx context.Context, team *models.Team, leaderID string) error {
	leader, err := s.userRepo.GetByID(ctx, leaderID)
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}
	if err := guardLastSuperAdmin(ctx, s.userRepo, leader, policy.OpChangeRole); err != nil {
		return err
	}
	leader.TeamID = strPtr(team.ID)
	leader.Role = domain.RoleLeader
	return s.userRepo.Update(ctx, leader)
}

// Update updates a team
func (s *TeamService) Update(ctx context.Context, id string, input *UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTeamNotFound)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != team.Name {
			exists, err := s.teamRepo.ExistsByName(ctx, name, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrTeamNameExists
			}
			team.Name = name
		}
	}
	if input.Description != nil {
		team.Description = *input.Description
	}
	if input.BranchID != nil {
		branchID := emptyToNil(input.BranchID)
		if branchID != nil {
			if _, err := s.branchRepo.GetByID(ctx, *branchID); err != nil {
				return nil, notFound(err, ErrBranchNotFound)
			}
		}
		team.BranchID = branchID
	}
	if input.IsActive != nil {
		team.IsActive = *input.IsActive
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// SetLeader makes a user the team leader. The team row, the user's role
// and the user's team are written in one transaction.
func (s *TeamService) SetLeader(ctx context.Context, id, leaderID string) (*TeamDetail, error) {
	if _, err := s.teamRepo.GetByID(ctx, id); err != nil {
		return nil, notFound(err, ErrTeamNotFound)
	}
	leader, err := s.userRepo.GetByID(ctx, leaderID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if err := guardLastSuperAdmin(ctx, s.userRepo, leader, policy.OpChangeRole); err != nil {
		return nil, err
	}

	if err := s.teamRepo.AssignLeader(ctx, id, leaderID); err != nil {
		return nil, notFound(err, ErrTeamNotFound)
	}

	s.log.WithFields(logrus.Fields{"team_id": id, "leader_id": leaderID}).Info("Team leader assigned")
	return s.Get(ctx, id)
}

// AddMember assigns a user to the team
func (s *TeamService) AddMember(ctx context.Context, id, userID string) (*TeamDetail, error) {
	if _, err := s.teamRepo.GetByID(ctx, id); err != nil {
		return nil, notFound(err, ErrTeamNotFound)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	if err := s.userRepo.SetTeam(ctx, userID, strPtr(id)); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// RemoveMember detaches a user from the team. Removing the leader also
// clears the team's leader.
func (s *TeamService) RemoveMember(ctx context.Context, id, userID string) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, ErrTeamNotFound)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}
	if user.TeamID == nil || *user.TeamID != id {
		return ErrNotTeamMember
	}

	if err := s.userRepo.SetTeam(ctx, userID, nil); err != nil {
		return err
	}
	if team.LeaderID != nil && *team.LeaderID == userID {
		team.LeaderID = nil
		if err := s.teamRepo.Update(ctx, team); err != nil {
			return err
		}
	}
	return nil
}

// Delete soft deletes a team
func (s *TeamService) Delete(ctx context.Context, id string) error {
	if _, err := s.teamRepo.GetByID(ctx, id); err != nil {
		return notFound(err, ErrTeamNotFound)
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.WithField("team_id", id).Info("Team deleted")
	return nil
}
