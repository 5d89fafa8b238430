package services

import (
	"context"
	"strings"
	"time"

	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/adapters/persistence/repositories"
	"kpi-dashboard/internal/core/domain"
	"kpi-dashboard/internal/core/policy"
	"kpi-dashboard/internal/pkg/pagination"

	"github.com/sirupsen/logrus"
)

// GoalService handles goal tracking
type GoalService struct {
	goalRepo repositories.GoalRepository
	userRepo repositories.UserRepository
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewGoalService creates a new goal service
func NewGoalService(goalRepo repositories.GoalRepository, userRepo repositories.UserRepository, log logrus.FieldLogger) *GoalService {
	return &GoalService{goalRepo: goalRepo, userRepo: userRepo, log: log, now: time.Now}
}

// CreateGoalInput represents create goal input
type CreateGoalInput struct {
	Title        string            `json:"title" validate:"required,max=200"`
	Description  string            `json:"description"`
	EmployeeID   string            `json:"employeeId"`
	TeamID       *string           `json:"teamId"`
	Status       domain.GoalStatus `json:"status" validate:"omitempty,oneof=NOT_STARTED IN_PROGRESS COMPLETED CANCELLED"`
	TargetValue  float64           `json:"targetValue" validate:"gte=0"`
	CurrentValue float64           `json:"currentValue" validate:"gte=0"`
	Unit         string            `json:"unit" validate:"max=50"`
	StartDate    *time.Time        `json:"startDate"`
	DueDate      *time.Time        `json:"dueDate"`
}

// UpdateGoalInput represents update goal input
type UpdateGoalInput struct {
	Title        *string            `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string            `json:"description"`
	Status       *domain.GoalStatus `json:"status" validate:"omitempty,oneof=NOT_STARTED IN_PROGRESS COMPLETED CANCELLED"`
	TargetValue  *float64           `json:"targetValue" validate:"omitempty,gte=0"`
	CurrentValue *float64           `json:"currentValue" validate:"omitempty,gte=0"`
	Unit         *string            `json:"unit" validate:"omitempty,max=50"`
	StartDate    *time.Time         `json:"startDate"`
	DueDate      *time.Time         `json:"dueDate"`
}

// UpdateProgressInput represents progress update input
type UpdateProgressInput struct {
	CurrentValue *float64           `json:"currentValue" validate:"required,gte=0"`
	Status       *domain.GoalStatus `json:"status" validate:"omitempty,oneof=NOT_STARTED IN_PROGRESS COMPLETED CANCELLED"`
}

// List lists the goals visible to the actor: everything for admins,
// own and team goals for leaders, own goals for members.
func (s *GoalService) List(ctx context.Context, actor *domain.Actor, status domain.GoalStatus, page *pagination.Params) ([]*models.Goal, int64, error) {
	if status != "" && !validGoalStatus(status) {
		return nil, 0, ErrInvalidGoalStatus
	}

	filter := repositories.GoalFilter{Status: status}
	switch {
	case actor.IsAdmin():
	case actor.Role.In(domain.LeaderRoles...) && actor.HasTeam():
		filter.Visibility = &repositories.GoalVisibility{OwnerID: actor.ID, TeamID: *actor.TeamID}
	default:
		filter.Visibility = &repositories.GoalVisibility{OwnerID: actor.ID}
	}

	return s.goalRepo.List(ctx, filter, page.Offset, page.Limit)
}

// Get returns a goal the actor may view
func (s *GoalService) Get(ctx context.Context, actor *domain.Actor, id string) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrGoalNotFound)
	}
	if !policy.CanViewGoal(actor, goalRef(goal)) {
		return nil, ErrForbidden
	}
	return goal, nil
}

// ListByEmployee lists an employee's goals
func (s *GoalService) ListByEmployee(ctx context.Context, actor *domain.Actor, employeeID string, page *pagination.Params) ([]*models.Goal, int64, error) {
	if err := policy.OwnerOrAdmin(actor, employeeID); err != nil {
		return nil, 0, err
	}
	return s.goalRepo.List(ctx, repositories.GoalFilter{EmployeeID: employeeID}, page.Offset, page.Limit)
}

// ListByTeam lists a team's goals
func (s *GoalService) ListByTeam(ctx context.Context, actor *domain.Actor, teamID string, page *pagination.Params) ([]*models.Goal, int64, error) {
	if err := policy.TeamLeaderOrAdmin(actor); err != nil {
		return nil, 0, err
	}
	return s.goalRepo.List(ctx, repositories.GoalFilter{TeamID: teamID}, page.Offset, page.Limit)
}

// Create creates a goal. The employee defaults to the actor and the team
// defaults to the employee's team.
func (s *GoalService) Create(ctx context.Context, actor *domain.Actor, input *CreateGoalInput) (*models.Goal, error) {
	employeeID := strings.TrimSpace(input.EmployeeID)
	if employeeID == "" {
		employeeID = actor.ID
	}

	employee, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, notFound(err, ErrEmployeeNotFound)
	}
	if !policy.CanManageEmployeeGoals(actor, employee.ID, employee.TeamID) {
		return nil, ErrForbidden
	}

	teamID := emptyToNil(input.TeamID)
	if teamID == nil {
		teamID = employee.TeamID
	}

	status := input.Status
	if status == "" {
		status = domain.GoalNotStarted
	}

	goal := &models.Goal{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		EmployeeID:   employee.ID,
		TeamID:       teamID,
		CreatedByID:  actor.ID,
		TargetValue:  input.TargetValue,
		CurrentValue: input.CurrentValue,
		Unit:         input.Unit,
		StartDate:    input.StartDate,
		DueDate:      input.DueDate,
	}
	goal.SetStatus(status, s.now())

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"goal_id":     goal.ID,
		"employee_id": goal.EmployeeID,
		"actor_id":    actor.ID,
	}).Info("Goal created")

	return goal, nil
}

// Update edits a goal. Moving into COMPLETED stamps completedAt.
func (s *GoalService) Update(ctx context.Context, actor *domain.Actor, id string, input *UpdateGoalInput) (*models.Goal, error) {
	goal, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		goal.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.TargetValue != nil {
		goal.TargetValue = *input.TargetValue
	}
	if input.CurrentValue != nil {
		goal.CurrentValue = *input.CurrentValue
	}
	if input.Unit != nil {
		goal.Unit = *input.Unit
	}
	if input.StartDate != nil {
		goal.StartDate = input.StartDate
	}
	if input.DueDate != nil {
		goal.DueDate = input.DueDate
	}
	if input.Status != nil {
		goal.SetStatus(*input.Status, s.now())
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// UpdateProgress sets the current value and optionally the status
func (s *GoalService) UpdateProgress(ctx context.Context, actor *domain.Actor, id string, input *UpdateProgressInput) (*models.Goal, error) {
	goal, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	goal.CurrentValue = *input.CurrentValue
	if input.Status != nil {
		goal.SetStatus(*input.Status, s.now())
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Delete removes a goal. A denied request leaves the row untouched.
func (s *GoalService) Delete(ctx context.Context, actor *domain.Actor, id string) error {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return err
	}
	if err := s.goalRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"goal_id": id, "actor_id": actor.ID}).Info("Goal deleted")
	return nil
}

// editable loads a goal and applies the delete rule, which also governs edits
func (s *GoalService) editable(ctx context.Context, actor *domain.Actor, id string) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrGoalNotFound)
	}
	if !policy.CanDeleteGoal(actor, goalRef(goal)) {
		return nil, ErrForbidden
	}
	return goal, nil
}

func goalRef(goal *models.Goal) policy.GoalRef {
	return policy.GoalRef{EmployeeID: goal.EmployeeID, TeamID: goal.TeamID}
}

func validGoalStatus(status domain.GoalStatus) bool {
	for _, s := range domain.GoalStatuses {
		if s == status {
			return true
		}
	}
	return false
}
